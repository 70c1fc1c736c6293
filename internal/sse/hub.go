// Package sse streams pet events to the owner's open browser tabs.
package sse

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/NotionPet_Go/internal/metrics"
)

// Event represents an event sent over SSE
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`

	userID string // recipient, empty for everyone
}

// Client is one open stream. EventChannel is closed when the client is
// unregistered or the hub stops.
type Client struct {
	ID           string
	UserID       string
	EventChannel chan Event
	types        map[string]struct{} // nil accepts every type
}

func (c *Client) accepts(eventType string) bool {
	if c.types == nil {
		return true
	}
	_, ok := c.types[eventType]
	return ok
}

// Hub indexes open streams by user and fans events out to them from a single
// delivery goroutine
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client            // by client id
	byUser  map[string]map[string]*Client // user id -> client id -> client
	stopped bool

	outbox   chan Event
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewHub creates a new SSE Hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		byUser:  make(map[string]map[string]*Client),
		outbox:  make(chan Event, OutboxSize),
		done:    make(chan struct{}),
	}
}

// Start runs the delivery loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.deliver()
}

// Stop ends delivery and closes every client channel. Safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.wg.Wait()

		h.mu.Lock()
		defer h.mu.Unlock()
		h.stopped = true
		for id, c := range h.clients {
			close(c.EventChannel)
			delete(h.clients, id)
		}
		clear(h.byUser)
		metrics.SSEClients.Set(0)
	})
}

func (h *Hub) deliver() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			return
		case evt := <-h.outbox:
			h.fanOut(evt)
		}
	}
}

func (h *Hub) fanOut(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	targets := h.clients
	if evt.userID != "" {
		targets = h.byUser[evt.userID]
	}
	for _, c := range targets {
		if !c.accepts(evt.Type) {
			continue
		}
		// A slow tab misses the event rather than stalling the others
		select {
		case c.EventChannel <- evt:
		default:
		}
	}
}

// Register opens a stream for userID limited to eventTypes (all when empty).
// It returns nil once the hub is stopped.
func (h *Hub) Register(userID string, eventTypes []string) *Client {
	c := &Client{
		ID:           uuid.NewString(),
		UserID:       userID,
		EventChannel: make(chan Event, ClientEventBuffer),
	}
	for _, t := range eventTypes {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		if c.types == nil {
			c.types = make(map[string]struct{})
		}
		c.types[t] = struct{}{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return nil
	}
	h.clients[c.ID] = c
	if h.byUser[userID] == nil {
		h.byUser[userID] = make(map[string]*Client)
	}
	h.byUser[userID][c.ID] = c
	metrics.SSEClients.Set(float64(len(h.clients)))
	return c
}

// Unregister closes a client's stream. Unknown ids are ignored.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[clientID]
	if !ok {
		return
	}
	delete(h.clients, clientID)
	if tabs := h.byUser[c.UserID]; tabs != nil {
		delete(tabs, clientID)
		if len(tabs) == 0 {
			delete(h.byUser, c.UserID)
		}
	}
	close(c.EventChannel)
	metrics.SSEClients.Set(float64(len(h.clients)))
}

// Broadcast sends an event to every interested client
func (h *Hub) Broadcast(eventType string, payload interface{}) bool {
	return h.SendToUser("", eventType, payload)
}

// SendToUser queues an event for the streams of one user. It reports false when
// the event was dropped because the outbox is full.
func (h *Hub) SendToUser(userID, eventType string, payload interface{}) bool {
	evt := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
		userID:    userID,
	}
	select {
	case h.outbox <- evt:
		return true
	default:
		return false
	}
}

// Ping reports whether the hub still accepts clients
func (h *Hub) Ping(ctx context.Context) error {
	select {
	case <-h.done:
		return errors.New(ErrMsgHubStopped)
	default:
		return ctx.Err()
	}
}

// ClientCount returns the number of open streams
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// UserClientCount returns the number of open streams of one user
func (h *Hub) UserClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser[userID])
}

// FormatSSEMessage renders an event in text/event-stream framing
func FormatSSEMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.Grow(len(data) + len(evt.ID) + len(evt.Type) + 24)
	if evt.ID != "" {
		b.WriteString("id: " + evt.ID + "\n")
	}
	b.WriteString("event: " + evt.Type + "\n")
	b.WriteString("data: ")
	b.Write(data)
	b.WriteString("\n\n")
	return []byte(b.String()), nil
}
