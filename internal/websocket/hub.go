package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"doc-intel-be/internal/model"
	"doc-intel-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Redis channel carrying broadcasts between instances.
const clusterChannel = "cluster_events"

// Hub fans processing updates out to every connected client. There is no
// per-user routing; progress updates are visible to all clients.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// Instance id, used to skip replays of our own broadcasts
	instanceID string

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"clients": h.clientCount()})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"clients": h.clientCount()})
		}
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a processing update to all connected clients and relays it
// to the other instances via Redis.
func (h *Hub) Broadcast(update model.ProcessingUpdate) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "processing_update",
		"data": update,
	})

	h.sendToLocal(data)

	if h.rdb != nil {
		payload := map[string]interface{}{
			"origin":  h.instanceID,
			"message": data,
		}
		jsonPayload, _ := json.Marshal(payload)
		if err := h.rdb.Publish(context.Background(), clusterChannel, jsonPayload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to relay broadcast to cluster", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (h *Hub) sendToLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer; drop it rather than block the hub.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			Origin  string          `json:"origin"`
			Message json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		// Already delivered locally when we published it.
		if payload.Origin == h.instanceID {
			continue
		}

		h.sendToLocal(payload.Message)
	}
}
