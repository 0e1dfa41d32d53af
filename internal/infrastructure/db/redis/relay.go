package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/madirex/funko-server/internal/core/ports"
)

// Relay republishes catalog mutation notifications on a Redis channel so
// out-of-process consumers can follow changes without holding a catalog
// connection. It is a hub subscriber like any other: if it falls behind it
// loses events under the hub's bounded-buffer policy.
type Relay struct {
	client  *redis.Client
	hub     ports.NotificationHub
	channel string
	log     zerolog.Logger
}

func NewRelay(client *redis.Client, hub ports.NotificationHub, channel string, log zerolog.Logger) *Relay {
	return &Relay{client: client, hub: hub, channel: channel, log: log}
}

// Run subscribes to the hub and forwards notifications until ctx is
// cancelled. Publish failures are logged and skipped; the relay never blocks
// the hub.
func (r *Relay) Run(ctx context.Context) {
	ch, cancel := r.hub.Subscribe()
	defer cancel()

	r.log.Info().Str("channel", r.channel).Msg("notification relay started")
	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("notification relay stopped")
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			payload, err := json.Marshal(n)
			if err != nil {
				r.log.Error().Err(err).Msg("marshal notification")
				continue
			}
			if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
				r.log.Warn().Err(err).Str("kind", string(n.Kind)).Msg("relay publish failed")
			}
		}
	}
}
