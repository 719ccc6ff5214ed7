package push_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tarion/internal/api"
	"tarion/internal/auth"
	"tarion/internal/events"
	"tarion/internal/push"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func wsServer(t *testing.T, handler func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		handler(conn)
	}))
}

func TestQuotaPushReachesBus(t *testing.T) {
	srv := wsServer(t, func(conn *websocket.Conn) {
		env := push.MustEnvelope(push.MsgQuota, api.Quota{Limit: 10, Remaining: 2})
		require.NoError(t, conn.WriteJSON(env))
		// Keep the connection open until the client goes away.
		conn.ReadMessage()
	})
	defer srv.Close()

	bus := events.NewBus()
	got := make(chan api.Quota, 1)
	bus.Subscribe(events.QuotaUpdated, func(ev events.Event) {
		got <- ev.Data.(api.Quota)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := push.New("ws"+strings.TrimPrefix(srv.URL, "http"), auth.NewMemStore(), bus, zap.NewNop())
	go sub.Run(ctx)

	select {
	case q := <-got:
		assert.Equal(t, 2, q.Remaining)
	case <-time.After(3 * time.Second):
		t.Fatal("quota push never arrived")
	}
}

func TestLogoutPushClearsStore(t *testing.T) {
	srv := wsServer(t, func(conn *websocket.Conn) {
		require.NoError(t, conn.WriteJSON(push.MustEnvelope(push.MsgLogout, nil)))
		conn.ReadMessage()
	})
	defer srv.Close()

	store := auth.NewMemStore()
	store.SetTokens(auth.Tokens{Access: "acc-1"})

	bus := events.NewBus()
	loggedOut := make(chan struct{}, 1)
	bus.Subscribe(events.AuthLogout, func(events.Event) { loggedOut <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := push.New("ws"+strings.TrimPrefix(srv.URL, "http"), store, bus, zap.NewNop())
	go sub.Run(ctx)

	select {
	case <-loggedOut:
		assert.Equal(t, auth.Tokens{}, store.Tokens())
	case <-time.After(3 * time.Second):
		t.Fatal("logout push never arrived")
	}
}

func TestUserPushUpdatesProfile(t *testing.T) {
	srv := wsServer(t, func(conn *websocket.Conn) {
		require.NoError(t, conn.WriteJSON(push.MustEnvelope(push.MsgUser,
			auth.Profile{ID: "u1", Name: "Querent"})))
		conn.ReadMessage()
	})
	defer srv.Close()

	store := auth.NewMemStore()
	bus := events.NewBus()
	updated := make(chan struct{}, 1)
	bus.Subscribe(events.UserUpdated, func(events.Event) { updated <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := push.New("ws"+strings.TrimPrefix(srv.URL, "http"), store, bus, zap.NewNop())
	go sub.Run(ctx)

	select {
	case <-updated:
		p, ok := store.Profile()
		require.True(t, ok)
		assert.Equal(t, "Querent", p.Name)
	case <-time.After(3 * time.Second):
		t.Fatal("user push never arrived")
	}
}
