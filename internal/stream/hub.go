package stream

import (
	"context"
	"strings"
	"sync"

	"github.com/hongjunna/toporider/internal/log"

	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix  = "course:"
	channelSuffix  = ":highlight"
	channelPattern = channelPrefix + "*" + channelSuffix
)

// Hub fans highlight messages out to the map viewers of a course. With Redis
// configured every message goes through the course channel, so viewers
// connected to other instances receive it too; without Redis delivery is
// local only.
type Hub struct {
	redis   *redis.Client
	pubsub  *redis.PubSub
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	CourseID string
	Send     chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		ctx := context.Background()
		pubsub := redisClient.PSubscribe(ctx, channelPattern)
		// Wait for the subscription to be confirmed so that nothing published
		// after NewHub returns is missed.
		if _, err := pubsub.Receive(ctx); err != nil {
			log.Warnw("redis subscribe failed, highlights stay local", "error", err)
			_ = pubsub.Close()
		} else {
			h.redis = redisClient
			h.pubsub = pubsub
			go h.subscribeRedis()
		}
	}
	return h
}

func (h *Hub) Register(courseID string) *Client {
	client := &Client{
		CourseID: courseID,
		Send:     make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[courseID] == nil {
		h.clients[courseID] = map[*Client]struct{}{}
	}
	h.clients[courseID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	courseClients, ok := h.clients[client.CourseID]
	if !ok {
		return
	}
	if _, ok := courseClients[client]; !ok {
		return
	}
	delete(courseClients, client)
	if len(courseClients) == 0 {
		delete(h.clients, client.CourseID)
	}
	close(client.Send)
}

// Broadcast delivers payload to every viewer of courseID. A viewer whose
// buffer is full misses the message.
func (h *Hub) Broadcast(courseID string, payload []byte) {
	if h.redis == nil {
		h.deliver(courseID, payload)
		return
	}

	err := h.redis.Publish(context.Background(), redisChannel(courseID), payload).Err()
	if err != nil {
		log.Warnw("redis publish failed, delivering locally", "course_id", courseID, "error", err)
		h.deliver(courseID, payload)
	}
}

// Viewers returns the number of local viewers of courseID.
func (h *Hub) Viewers(courseID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[courseID])
}

// Close stops the Redis subscription.
func (h *Hub) Close() error {
	if h.pubsub == nil {
		return nil
	}
	return h.pubsub.Close()
}

func (h *Hub) deliver(courseID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[courseID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	for msg := range h.pubsub.Channel() {
		courseID := courseIDFromChannel(msg.Channel)
		if courseID == "" {
			continue
		}
		h.deliver(courseID, []byte(msg.Payload))
	}
}

func redisChannel(courseID string) string {
	return channelPrefix + courseID + channelSuffix
}

func courseIDFromChannel(ch string) string {
	// course:{id}:highlight
	if !strings.HasPrefix(ch, channelPrefix) || !strings.HasSuffix(ch, channelSuffix) {
		return ""
	}
	if len(ch) <= len(channelPrefix)+len(channelSuffix) {
		return ""
	}
	return ch[len(channelPrefix) : len(ch)-len(channelSuffix)]
}
