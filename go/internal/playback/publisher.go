package playback

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// SubjectForSession returns the broadcast subject for one session's channel.
func SubjectForSession(sessionID string) string {
	return "playback." + sessionID
}

// SubjectAllSessions matches every session channel; used by the gateway
// consumer.
const SubjectAllSessions = "playback.>"

// NATSConfig holds connection settings for the broadcast broker.
type NATSConfig struct {
	URL           string
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultNATSConfig returns default broker settings.
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		MaxReconnects: -1, // Infinite
		ReconnectWait: 2 * time.Second,
	}
}

// NATSPublisher publishes state broadcasts on core NATS subjects. Delivery
// is at-most-once: there is no stream and no redelivery, because the store
// is the source of truth and a missed broadcast only delays sync until the
// next get-session call.
type NATSPublisher struct {
	nc *nats.Conn
}

// NewNATSPublisher connects to the broker and returns a publisher.
func NewNATSPublisher(config NATSConfig) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &NATSPublisher{nc: nc}, nil
}

// PublishState emits the broadcast on playback.<session_id>.
func (p *NATSPublisher) PublishState(ctx context.Context, broadcast StateBroadcast) error {
	data, err := json.Marshal(broadcast)
	if err != nil {
		return fmt.Errorf("marshal state broadcast: %w", err)
	}

	if err := p.nc.Publish(SubjectForSession(broadcast.SessionID), data); err != nil {
		return fmt.Errorf("publish state broadcast: %w", err)
	}

	log.Debug().
		Str("session_id", broadcast.SessionID).
		Str("updated_by", broadcast.PlaybackState.UpdatedBy).
		Msg("published playback state")
	return nil
}

// Close shuts the broker connection down.
func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}

// ChannelPublisher is an in-process pub/sub hub scoped by session id. It
// backs tests and single-process deployments that run without a broker.
// Subscriber channels are buffered; a subscriber that falls behind loses
// broadcasts rather than blocking the publisher, matching the at-most-once
// contract of the NATS path.
type ChannelPublisher struct {
	mu   sync.Mutex
	subs map[string]map[chan StateBroadcast]struct{}
}

// NewChannelPublisher creates a ready-to-use hub.
func NewChannelPublisher() *ChannelPublisher {
	return &ChannelPublisher{
		subs: make(map[string]map[chan StateBroadcast]struct{}),
	}
}

// Subscribe returns a channel receiving every broadcast for the session.
func (p *ChannelPublisher) Subscribe(sessionID string) chan StateBroadcast {
	ch := make(chan StateBroadcast, 16)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.subs[sessionID] == nil {
		p.subs[sessionID] = make(map[chan StateBroadcast]struct{})
	}
	p.subs[sessionID][ch] = struct{}{}
	return ch
}

// Unsubscribe removes a channel from the session's subscriber set.
func (p *ChannelPublisher) Unsubscribe(sessionID string, ch chan StateBroadcast) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if subs, ok := p.subs[sessionID]; ok {
		delete(subs, ch)
		if len(subs) == 0 {
			delete(p.subs, sessionID)
		}
	}
}

// PublishState delivers the broadcast to every subscriber without blocking.
func (p *ChannelPublisher) PublishState(ctx context.Context, broadcast StateBroadcast) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for ch := range p.subs[broadcast.SessionID] {
		select {
		case ch <- broadcast:
		default:
		}
	}
	return nil
}
