package ws

import (
	"EnrollHub/entity"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct{}

func (fakeAuth) Authenticate(_ context.Context, token string) (*entity.Identity, error) {
	switch token {
	case "admin":
		return &entity.Identity{Email: "admin@school.org"}, nil
	case "student":
		return &entity.Identity{Email: "student@school.org"}, nil
	}
	return nil, errors.New("invalid token")
}

func (fakeAuth) IsAdmin(identity *entity.Identity) bool {
	return identity != nil && identity.Email == "admin@school.org"
}

type refreshRecorder struct {
	emails chan string
}

func (r *refreshRecorder) HandleRefresh(email string) error {
	r.emails <- email
	return nil
}

func startServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := NewHub(log)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	srv := httptest.NewServer(hub.Handler(fakeAuth{}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/?token=" + token
}

func TestHandlerRejects(t *testing.T) {
	_, srv := startServer(t)

	tests := []struct {
		token  string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"forged", http.StatusUnauthorized},
		{"student", http.StatusForbidden},
	}
	for _, tt := range tests {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, tt.token), nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, tt.status, resp.StatusCode, tt.token)
	}
}

func TestBroadcastAndRefresh(t *testing.T) {
	hub, srv := startServer(t)
	rec := &refreshRecorder{emails: make(chan string, 1)}
	hub.SetHandler(rec)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "admin"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast(EventDashboardUpdated, map[string]int{"registrations": 3})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type string         `json:"type"`
		Data map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, EventDashboardUpdated, event.Type)
	assert.Equal(t, 3, event.Data["registrations"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"refresh"}`)))
	select {
	case email := <-rec.emails:
		assert.Equal(t, "admin@school.org", email)
	case <-time.After(2 * time.Second):
		t.Fatal("refresh not handled")
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestDirectReplies(t *testing.T) {
	hub, srv := startServer(t)

	first, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "admin"), nil)
	require.NoError(t, err)
	defer first.Close()
	second, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "admin"), nil)
	require.NoError(t, err)
	defer second.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 10*time.Millisecond)

	tests := []struct {
		message string
		want    string
	}{
		{`{"type":"ping"}`, EventPong},
		{`{"type":"launch"}`, EventError},
		{`not json`, EventError},
	}
	for _, tt := range tests {
		require.NoError(t, first.WriteMessage(websocket.TextMessage, []byte(tt.message)))
		assert.Equal(t, tt.want, readEvent(t, first).Type, tt.message)
	}

	// replies reach only the sender; the next thing the other client sees is a broadcast
	hub.Broadcast(EventRegistrationCreated, map[string]string{"id": "r1"})
	assert.Equal(t, EventRegistrationCreated, readEvent(t, second).Type)
	assert.Equal(t, EventRegistrationCreated, readEvent(t, first).Type)
}

func TestShutdownClosesClients(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := NewHub(log)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	srv := httptest.NewServer(hub.Handler(fakeAuth{}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "admin"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	assert.Zero(t, hub.Clients())
}
