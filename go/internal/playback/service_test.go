package playback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/airwavehq/airwave/go/internal/models"
)

type fakeApp struct {
	session     *models.PlaybackSession
	devices     map[string]models.DeviceInfo
	activeID    string
	err         error
	lastUpdate  UpdateStateRequest
	lastRequest RegisterDeviceRequest
}

func (a *fakeApp) GetOrCreateSession(ctx context.Context, sessionID string) (*models.PlaybackSession, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.session, nil
}

func (a *fakeApp) ApplyUpdate(ctx context.Context, req UpdateStateRequest) (*models.PlaybackSession, error) {
	a.lastUpdate = req
	if a.err != nil {
		return nil, a.err
	}
	return a.session, nil
}

func (a *fakeApp) RegisterDevice(ctx context.Context, req RegisterDeviceRequest) (map[string]models.DeviceInfo, error) {
	a.lastRequest = req
	if a.err != nil {
		return nil, a.err
	}
	return a.devices, nil
}

func (a *fakeApp) ListDevices(ctx context.Context, sessionID string) (map[string]models.DeviceInfo, string, error) {
	if a.err != nil {
		return nil, "", a.err
	}
	return a.devices, a.activeID, nil
}

func testSession() *models.PlaybackSession {
	songID := int64(7)
	return &models.PlaybackSession{
		SessionID:       "sess-1",
		CurrentSongID:   &songID,
		PositionSeconds: 42.5,
		IsPlaying:       true,
		Volume:          0.8,
		ActiveDeviceID:  "dev-a",
	}
}

func TestHandleGetSession(t *testing.T) {
	service := NewService(&fakeApp{session: testSession()})

	req := httptest.NewRequest(http.MethodGet, "/playback/session?session_id=sess-1", nil)
	rec := httptest.NewRecorder()
	service.HandleGetSession(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		SessionID     string        `json:"session_id"`
		PlaybackState PlaybackState `json:"playback_state"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionID != "sess-1" {
		t.Errorf("session_id = %q, want sess-1", resp.SessionID)
	}
	if resp.PlaybackState.CurrentTime != 42.5 {
		t.Errorf("current_time = %v, want 42.5", resp.PlaybackState.CurrentTime)
	}
	if resp.PlaybackState.UpdatedBy != "" {
		t.Errorf("updated_by = %q, want empty on HTTP reads", resp.PlaybackState.UpdatedBy)
	}
}

func TestHandleGetSessionMethodNotAllowed(t *testing.T) {
	service := NewService(&fakeApp{session: testSession()})

	req := httptest.NewRequest(http.MethodPost, "/playback/session", nil)
	rec := httptest.NewRecorder()
	service.HandleGetSession(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestHandleUpdateState(t *testing.T) {
	app := &fakeApp{session: testSession()}
	service := NewService(app)

	body := `{"session_id":"sess-1","device_id":"dev-b","volume":0.8}`
	req := httptest.NewRequest(http.MethodPost, "/playback/update", strings.NewReader(body))
	rec := httptest.NewRecorder()
	service.HandleUpdateState(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Success       bool          `json:"success"`
		PlaybackState PlaybackState `json:"playback_state"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if app.lastUpdate.DeviceID != "dev-b" {
		t.Errorf("device_id = %q, want dev-b", app.lastUpdate.DeviceID)
	}
	if app.lastUpdate.Volume == nil || *app.lastUpdate.Volume != 0.8 {
		t.Error("volume not decoded")
	}
	if app.lastUpdate.IsPlaying != nil {
		t.Error("absent is_playing decoded as non-nil")
	}
}

func TestHandleUpdateStateSessionNotFound(t *testing.T) {
	service := NewService(&fakeApp{err: ErrSessionNotFound})

	body := `{"session_id":"nope","device_id":"dev-a"}`
	req := httptest.NewRequest(http.MethodPost, "/playback/update", strings.NewReader(body))
	rec := httptest.NewRecorder()
	service.HandleUpdateState(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "Session not found" {
		t.Errorf("error = %q, want %q", resp["error"], "Session not found")
	}
}

func TestHandleUpdateStateValidationError(t *testing.T) {
	service := NewService(&fakeApp{err: newValidationError("volume", "must be between 0.0 and 1.0")})

	body := `{"session_id":"sess-1","device_id":"dev-a","volume":1.5}`
	req := httptest.NewRequest(http.MethodPost, "/playback/update", strings.NewReader(body))
	rec := httptest.NewRecorder()
	service.HandleUpdateState(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["field"] != "volume" {
		t.Errorf("field = %q, want volume", resp["field"])
	}
}

func TestHandleUpdateStateBadBody(t *testing.T) {
	service := NewService(&fakeApp{session: testSession()})

	req := httptest.NewRequest(http.MethodPost, "/playback/update", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	service.HandleUpdateState(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestHandleRegisterDevice(t *testing.T) {
	app := &fakeApp{devices: map[string]models.DeviceInfo{
		"dev-a": {Name: "Phone", Type: models.DeviceTypeMobile},
	}}
	service := NewService(app)

	body := `{"session_id":"sess-1","device_id":"dev-a","device_name":"Phone","device_type":"mobile"}`
	req := httptest.NewRequest(http.MethodPost, "/playback/device/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	service.HandleRegisterDevice(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Success bool                         `json:"success"`
		Devices map[string]models.DeviceInfo `json:"devices"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if _, ok := resp.Devices["dev-a"]; !ok {
		t.Error("devices missing dev-a")
	}
}

func TestHandleGetDevices(t *testing.T) {
	service := NewService(&fakeApp{
		devices: map[string]models.DeviceInfo{
			"dev-a": {Name: "Phone", Type: models.DeviceTypeMobile},
			"dev-b": {Name: "Laptop", Type: models.DeviceTypeWeb},
		},
		activeID: "dev-b",
	})

	req := httptest.NewRequest(http.MethodGet, "/playback/devices?session_id=sess-1", nil)
	rec := httptest.NewRecorder()
	service.HandleGetDevices(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Devices        map[string]models.DeviceInfo `json:"devices"`
		ActiveDeviceID string                       `json:"active_device_id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Devices) != 2 {
		t.Errorf("devices = %d, want 2", len(resp.Devices))
	}
	if resp.ActiveDeviceID != "dev-b" {
		t.Errorf("active_device_id = %q, want dev-b", resp.ActiveDeviceID)
	}
}

func TestHandleGetDevicesUnknownSession(t *testing.T) {
	service := NewService(&fakeApp{err: ErrSessionNotFound})

	req := httptest.NewRequest(http.MethodGet, "/playback/devices?session_id=nope", nil)
	rec := httptest.NewRecorder()
	service.HandleGetDevices(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
