package redisx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AvailabilityPubSub fans out "seats changed" notifications so every
// instance can drop its cached availability for the event.
type AvailabilityPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewAvailabilityPubSub(rdb *redis.Client) *AvailabilityPubSub {
	return &AvailabilityPubSub{
		rdb:     rdb,
		channel: ChannelAvailabilityChanged(),
	}
}

type availabilityChangedMsg struct {
	Type    string    `json:"type"`
	EventID uuid.UUID `json:"event_id"`
	TsUnix  int64     `json:"ts_unix"`
}

func (p *AvailabilityPubSub) PublishAvailabilityChanged(ctx context.Context, eventID uuid.UUID) error {
	msg := availabilityChangedMsg{
		Type:    "availability_changed",
		EventID: eventID,
		TsUnix:  time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

func (p *AvailabilityPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, eventID uuid.UUID)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev availabilityChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil &&
				ev.EventID != uuid.Nil {
				handler(ctx, ev.EventID)
			}
		}
	}
}
