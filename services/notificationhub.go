package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"personalhub/model"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const DefaultNotificationChannel = "hub:notifications"

// NotificationEvent is one server-sent event for a user's stream.
type NotificationEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type hubEnvelope struct {
	UserID uint            `json:"user_id"`
	Type   string          `json:"type"`
	Data   json.RawMessage `json:"data,omitempty"`
	SentAt time.Time       `json:"sent_at"`
}

// NotificationHub fans events out to the open streams of a user. With a redis client
// attached, Deliver goes through a pub/sub channel so events raised in another
// process (the notification CLI) reach every server's subscribers.
type NotificationHub struct {
	mu          sync.RWMutex
	subscribers map[uint]map[chan NotificationEvent]struct{}

	redis   *redis.Client
	channel string
}

func NewNotificationHub() *NotificationHub {
	return &NotificationHub{subscribers: make(map[uint]map[chan NotificationEvent]struct{})}
}

// UseRedis routes Deliver through the given pub/sub channel.
func (h *NotificationHub) UseRedis(client *redis.Client, channel string) {
	if channel == "" {
		channel = DefaultNotificationChannel
	}
	h.redis = client
	h.channel = channel
}

// Subscribe returns the event channel and an unsubscribe func to call on disconnect.
func (h *NotificationHub) Subscribe(userID uint) (<-chan NotificationEvent, func()) {
	ch := make(chan NotificationEvent, 16)

	h.mu.Lock()
	set, ok := h.subscribers[userID]
	if !ok {
		set = make(map[chan NotificationEvent]struct{})
		h.subscribers[userID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers[userID], ch)
			if len(h.subscribers[userID]) == 0 {
				delete(h.subscribers, userID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish writes to local subscribers only. Slow subscribers miss the event.
func (h *NotificationHub) Publish(userID uint, ev NotificationEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers[userID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *NotificationHub) Subscribers(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[userID])
}

// Deliver implements NotificationSink.
func (h *NotificationHub) Deliver(ctx context.Context, n *model.Notification) error {
	ev := NotificationEvent{Type: "notification", Data: n}
	if h.redis == nil {
		h.Publish(n.UserID, ev)
		return nil
	}

	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	body, err := json.Marshal(hubEnvelope{UserID: n.UserID, Type: ev.Type, Data: data, SentAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	pubCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.redis.Publish(pubCtx, h.channel, body).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", h.channel, err)
	}
	return nil
}

// Listen replays events from the redis channel into the local subscribers until ctx ends.
func (h *NotificationHub) Listen(ctx context.Context) error {
	if h.redis == nil {
		return nil
	}
	pubsub := h.redis.Subscribe(ctx, h.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", h.channel, err)
	}
	logrus.WithField("channel", h.channel).Info("notification hub listening on redis")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var env hubEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				logrus.WithError(err).Warn("dropping malformed hub message")
				continue
			}
			if env.UserID == 0 || env.Type == "" {
				continue
			}
			h.Publish(env.UserID, NotificationEvent{Type: env.Type, Data: env.Data})
		}
	}
}
