package rdx

import (
	"context"
	"encoding/json"
	"time"

	"evently/models"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// EventCache keeps a slug -> event mapping in Redis so slug lookups skip
// Mongo on the hot path. Redis being down only costs the shortcut; callers
// fall back to the document store.
type EventCache struct {
	Conn *redis.Client
	TTL  time.Duration
}

func NewEventCache(conn *redis.Client) *EventCache {
	return &EventCache{Conn: conn, TTL: 24 * time.Hour}
}

func slugKey(slug string) string { return "event:slug:" + slug }

func (c *EventCache) Set(ctx context.Context, event models.Event) error {
	if c == nil || c.Conn == nil {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return c.Conn.Set(ctx, slugKey(event.Slug), data, c.TTL).Err()
}

func (c *EventCache) Get(ctx context.Context, slug string) (models.Event, bool) {
	var event models.Event
	if c == nil || c.Conn == nil {
		return event, false
	}
	data, err := c.Conn.Get(ctx, slugKey(slug)).Bytes()
	if err != nil {
		return event, false
	}
	if err := json.Unmarshal(data, &event); err != nil {
		return event, false
	}
	return event, true
}

func (c *EventCache) Delete(ctx context.Context, slug string) error {
	if c == nil || c.Conn == nil {
		return nil
	}
	return c.Conn.Del(ctx, slugKey(slug)).Err()
}
