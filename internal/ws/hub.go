package ws

import (
	"EnrollHub/internal/lib/sl"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Events pushed to the admin dashboard.
const (
	EventDashboardUpdated    = "dashboard_updated"
	EventRegistrationCreated = "registration_created"
	EventPong                = "pong"
	EventError               = "error"
)

// Commands accepted from the admin dashboard.
const (
	commandRefresh = "refresh"
	commandPing    = "ping"
)

// ClientMessageHandler serves commands that need the application.
type ClientMessageHandler interface {
	HandleRefresh(email string) error
}

type Event struct {
	Type string    `json:"type"`
	Data any       `json:"data,omitempty"`
	At   time.Time `json:"at"`
}

type command struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type directed struct {
	client *Client
	event  Event
}

// Hub owns the connected admin clients. Only Run touches a client's send
// channel, so a channel is closed exactly once.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	events  chan Event
	replies chan directed
	join    chan *Client
	leave   chan *Client
	done    chan struct{}

	handler ClientMessageHandler
	log     *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		events:  make(chan Event, 256),
		replies: make(chan directed, 64),
		join:    make(chan *Client),
		leave:   make(chan *Client),
		done:    make(chan struct{}),
		log:     log.With(sl.Module("ws.hub")),
	}
}

func (h *Hub) SetHandler(handler ClientMessageHandler) {
	h.handler = handler
}

// Run dispatches events until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				h.remove(c)
			}
			h.mu.Unlock()
			return

		case c := <-h.join:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			h.log.With(slog.String("admin", c.email), slog.Int("clients", n)).Debug("admin connected")

		case c := <-h.leave:
			h.mu.Lock()
			h.remove(c)
			h.mu.Unlock()

		case ev := <-h.events:
			payload, ok := h.encode(ev)
			if !ok {
				continue
			}
			h.mu.Lock()
			for c := range h.clients {
				h.deliver(c, payload)
			}
			h.mu.Unlock()

		case d := <-h.replies:
			payload, ok := h.encode(d.event)
			if !ok {
				continue
			}
			h.mu.Lock()
			if _, connected := h.clients[d.client]; connected {
				h.deliver(d.client, payload)
			}
			h.mu.Unlock()
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues an event for all connected admins. It never blocks the
// caller: when the queue is full the event is dropped.
func (h *Hub) Broadcast(eventType string, data any) {
	select {
	case h.events <- Event{Type: eventType, Data: data, At: time.Now()}:
	default:
		h.log.With(slog.String("type", eventType)).Warn("ws queue full, event dropped")
	}
}

func (h *Hub) reply(c *Client, eventType string, data any) {
	select {
	case h.replies <- directed{client: c, event: Event{Type: eventType, Data: data, At: time.Now()}}:
	case <-h.done:
	}
}

func (h *Hub) dispatch(c *Client, raw []byte) {
	var cmd command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		h.reply(c, EventError, "malformed message")
		return
	}

	switch cmd.Type {
	case commandPing:
		h.reply(c, EventPong, nil)
	case commandRefresh:
		if h.handler == nil {
			return
		}
		if err := h.handler.HandleRefresh(c.email); err != nil {
			h.log.With(slog.String("admin", c.email)).Error("dashboard refresh", sl.Err(err))
			h.reply(c, EventError, "refresh failed")
		}
	default:
		h.reply(c, EventError, "unknown message type")
	}
}

func (h *Hub) encode(ev Event) ([]byte, bool) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.log.With(slog.String("type", ev.Type)).Warn("encoding ws event", sl.Err(err))
		return nil, false
	}
	return payload, true
}

// deliver and remove expect h.mu to be held.
func (h *Hub) deliver(c *Client, payload []byte) {
	select {
	case c.send <- payload:
	default:
		h.log.With(slog.String("admin", c.email)).Warn("slow ws client dropped")
		h.remove(c)
	}
}

func (h *Hub) remove(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}
