package ws

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/sl"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout   = 10 * time.Second
	idleTimeout    = 60 * time.Second
	pingInterval   = 30 * time.Second
	maxCommandSize = 512
)

// The admin token is checked before the upgrade, so any origin is accepted.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Client is one admin dashboard connection.
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	email string
}

// Authenticator resolves a token to an identity and tells whether it is the administrator.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.Identity, error)
	IsAdmin(identity *entity.Identity) bool
}

// Handler upgrades admin dashboard connections. Browsers cannot set headers on
// the upgrade request, so the token comes in the query.
// Endpoint: GET /api/v1/admin/ws?token=...
func (h *Hub) Handler(auth Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		identity, err := auth.Authenticate(r.Context(), token)
		if err != nil || identity == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if !auth.IsAdmin(identity) {
			h.log.With(slog.String("email", identity.Email)).Warn("ws access denied")
			http.Error(w, "access denied", http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Error("websocket upgrade failed", sl.Err(err))
			return
		}

		c := &Client{
			hub:   h,
			conn:  conn,
			send:  make(chan []byte, 64),
			email: identity.Email,
		}
		select {
		case h.join <- c:
		case <-h.done:
			_ = conn.Close()
			return
		}

		go c.writeLoop()
		go c.readLoop()
	}
}

func (c *Client) readLoop() {
	defer func() {
		select {
		case c.hub.leave <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxCommandSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(idleTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(idleTimeout))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.With(slog.String("admin", c.email)).Debug("ws read", sl.Err(err))
			}
			return
		}
		c.hub.dispatch(c, raw)
	}
}

func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, open := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !open {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
