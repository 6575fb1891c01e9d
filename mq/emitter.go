package mq

import (
	"context"
	"encoding/json"
	"log"

	"evently/models"
	"evently/rdx"

	"github.com/redis/go-redis/v9"
)

const indexingChannel = "indexing-events"

// Emitter publishes indexing messages to Redis. Publishing is
// fire-and-forget: a failure is logged and never fails the request that
// triggered it.
type Emitter struct {
	Conn *redis.Client
}

func NewEmitter(conn *redis.Client) *Emitter {
	return &Emitter{Conn: conn}
}

func (e *Emitter) Emit(ctx context.Context, eventName string, content models.Index) {
	if e == nil || e.Conn == nil {
		return
	}
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] marshal failed for %s: %v", eventName, err)
		return
	}
	if err := e.Conn.Publish(ctx, indexingChannel, data).Err(); err != nil {
		log.Printf("[Emit] publish %s failed: %v", eventName, err)
	}
}

// EventFinder is the slice of the store the indexing worker needs.
type EventFinder interface {
	FindEventByID(ctx context.Context, eventID string) (models.Event, error)
}

// StartIndexingWorker consumes indexing messages and keeps the slug cache
// warm. It returns when ctx is cancelled.
func StartIndexingWorker(ctx context.Context, conn *redis.Client, cache *rdx.EventCache, store EventFinder) {
	sub := conn.Subscribe(ctx, indexingChannel)
	defer sub.Close()

	log.Println("[IndexingWorker] listening for indexing events")
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var idx models.Index
			if err := json.Unmarshal([]byte(msg.Payload), &idx); err != nil {
				log.Printf("[IndexingWorker] bad payload: %v", err)
				continue
			}
			if idx.EntityType != "event" || idx.Method == "DELETE" {
				continue
			}
			event, err := store.FindEventByID(ctx, idx.EntityId)
			if err != nil {
				log.Printf("[IndexingWorker] lookup %s failed: %v", idx.EntityId, err)
				continue
			}
			if err := cache.Set(ctx, event); err != nil {
				log.Printf("[IndexingWorker] cache set %s failed: %v", event.Slug, err)
			}
		}
	}
}
