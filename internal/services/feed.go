package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/cinelog/cinelog-backend/internal/database"
	"github.com/cinelog/cinelog-backend/internal/models"
)

// messageFeedChannel is the Redis Pub/Sub channel for newly created messages,
// so every instance fans the event out to its own websocket clients.
const messageFeedChannel = "messages:new"

// FeedEvent is the payload broadcast over Redis and the websocket feed.
type FeedEvent struct {
	Type    string          `json:"type"`
	Message *models.Message `json:"message,omitempty"`
}

type feedHub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]chan FeedEvent
}

var hub = &feedHub{subscribers: make(map[uuid.UUID]chan FeedEvent)}

var subscriberStarted sync.Once

// PublishMessageEvent announces a new message on the Redis channel.
// Best-effort: a publish failure never fails the write that triggered it.
func PublishMessageEvent(ctx context.Context, msg models.Message) {
	payload, err := json.Marshal(FeedEvent{Type: "message_created", Message: &msg})
	if err != nil {
		return
	}
	if err := database.RedisClient.Publish(ctx, messageFeedChannel, payload).Err(); err != nil {
		log.Printf("warning: failed to publish message event: %v", err)
	}
}

// StartMessageFeed subscribes to the Redis channel and fans events out to
// local websocket subscribers. Runs until ctx is canceled; safe to call more
// than once.
func StartMessageFeed(ctx context.Context) {
	subscriberStarted.Do(func() {
		go func() {
			sub := database.RedisClient.Subscribe(ctx, messageFeedChannel)
			defer sub.Close()

			for {
				select {
				case <-ctx.Done():
					return
				case m, ok := <-sub.Channel():
					if !ok {
						return
					}
					var event FeedEvent
					if err := json.Unmarshal([]byte(m.Payload), &event); err != nil {
						continue
					}
					hub.broadcast(event)
				}
			}
		}()
	})
}

// SubscribeFeed registers a local subscriber and returns its event channel
// plus an unsubscribe func. Slow consumers drop events instead of blocking
// the fan-out.
func SubscribeFeed() (<-chan FeedEvent, func()) {
	id := uuid.New()
	ch := make(chan FeedEvent, 16)

	hub.mu.Lock()
	hub.subscribers[id] = ch
	hub.mu.Unlock()

	unsubscribe := func() {
		hub.mu.Lock()
		if existing, ok := hub.subscribers[id]; ok {
			delete(hub.subscribers, id)
			close(existing)
		}
		hub.mu.Unlock()
	}
	return ch, unsubscribe
}

func (h *feedHub) broadcast(event FeedEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
