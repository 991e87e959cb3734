package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/airwavehq/airwave/go/internal/playback"
)

// ConsumerConfig holds configuration for the broadcast consumer.
type ConsumerConfig struct {
	URL           string
	SubjectFilter string
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultConsumerConfig returns default consumer configuration.
func DefaultConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		URL:           nats.DefaultURL,
		SubjectFilter: playback.SubjectAllSessions,
		MaxReconnects: -1, // Infinite
		ReconnectWait: 2 * time.Second,
	}
}

// EventConsumer subscribes to the per-session broadcast subjects and relays
// each state broadcast to the WebSocket pool for that session. Core NATS
// only: a broadcast missed while disconnected is gone, which is fine because
// clients recover truth from the store on their next get-session call.
type EventConsumer struct {
	connectionManager *ConnectionManager
	nc                *nats.Conn
	sub               *nats.Subscription
	config            ConsumerConfig
}

// NewEventConsumer connects to the broker and returns a consumer.
func NewEventConsumer(cm *ConnectionManager, config ConsumerConfig) (*EventConsumer, error) {
	opts := []nats.Option{
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &EventConsumer{
		connectionManager: cm,
		nc:                nc,
		config:            config,
	}, nil
}

// Start subscribes to the session channels.
func (ec *EventConsumer) Start() error {
	sub, err := ec.nc.Subscribe(ec.config.SubjectFilter, ec.handleMessage)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", ec.config.SubjectFilter, err)
	}
	ec.sub = sub

	log.Info().
		Str("subject", ec.config.SubjectFilter).
		Msg("playback event consumer started")
	return nil
}

func (ec *EventConsumer) handleMessage(msg *nats.Msg) {
	var broadcast playback.StateBroadcast
	if err := json.Unmarshal(msg.Data, &broadcast); err != nil {
		log.Error().
			Err(err).
			Str("subject", msg.Subject).
			Msg("failed to decode state broadcast")
		return
	}

	if broadcast.SessionID == "" {
		log.Warn().Str("subject", msg.Subject).Msg("state broadcast without session id")
		return
	}

	ec.connectionManager.BroadcastToSession(broadcast.SessionID, msg.Data, broadcast.PlaybackState.UpdatedBy)
}

// Stop gracefully shuts down the consumer.
func (ec *EventConsumer) Stop() error {
	if ec.sub != nil {
		if err := ec.sub.Unsubscribe(); err != nil {
			log.Error().Err(err).Msg("failed to unsubscribe")
		}
	}
	if ec.nc != nil {
		ec.nc.Close()
	}
	log.Info().Msg("playback event consumer stopped")
	return nil
}
