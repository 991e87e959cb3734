package playback

import (
	"context"
	"testing"
	"time"
)

func TestChannelPublisherScopesBySession(t *testing.T) {
	hub := NewChannelPublisher()
	chA := hub.Subscribe("sess-a")
	chB := hub.Subscribe("sess-b")
	defer hub.Unsubscribe("sess-a", chA)
	defer hub.Unsubscribe("sess-b", chB)

	broadcast := StateBroadcast{
		Event:     EventPlaybackUpdated,
		SessionID: "sess-a",
		Timestamp: time.Now().UTC(),
		PlaybackState: PlaybackState{
			IsPlaying: true,
			UpdatedBy: "dev-1",
		},
	}
	if err := hub.PublishState(context.Background(), broadcast); err != nil {
		t.Fatalf("PublishState: %v", err)
	}

	select {
	case got := <-chA:
		if got.PlaybackState.UpdatedBy != "dev-1" {
			t.Errorf("updated_by = %q, want dev-1", got.PlaybackState.UpdatedBy)
		}
	default:
		t.Fatal("subscriber on sess-a received nothing")
	}

	select {
	case got := <-chB:
		t.Fatalf("subscriber on sess-b received broadcast for %s", got.SessionID)
	default:
	}
}

func TestChannelPublisherDropsWhenSubscriberFull(t *testing.T) {
	hub := NewChannelPublisher()
	ch := hub.Subscribe("sess-a")
	defer hub.Unsubscribe("sess-a", ch)

	// Overrun the buffer; the publisher must not block.
	for i := 0; i < 32; i++ {
		if err := hub.PublishState(context.Background(), StateBroadcast{
			Event:     EventPlaybackUpdated,
			SessionID: "sess-a",
		}); err != nil {
			t.Fatalf("PublishState: %v", err)
		}
	}

	if got := len(ch); got != cap(ch) {
		t.Errorf("buffered = %d, want full buffer %d", got, cap(ch))
	}
}

func TestChannelPublisherUnsubscribe(t *testing.T) {
	hub := NewChannelPublisher()
	ch := hub.Subscribe("sess-a")
	hub.Unsubscribe("sess-a", ch)

	if err := hub.PublishState(context.Background(), StateBroadcast{SessionID: "sess-a"}); err != nil {
		t.Fatalf("PublishState: %v", err)
	}
	if len(ch) != 0 {
		t.Error("unsubscribed channel received broadcast")
	}
}

func TestSubjectForSession(t *testing.T) {
	if got := SubjectForSession("abc-123"); got != "playback.abc-123" {
		t.Errorf("subject = %q, want playback.abc-123", got)
	}
}
