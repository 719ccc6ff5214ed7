package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tarion/internal/api"
	"tarion/internal/auth"
	"tarion/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newClient(t *testing.T, srv *httptest.Server, store auth.Store) (*api.Client, *events.Bus) {
	t.Helper()
	bus := events.NewBus()
	return api.NewClient(srv.Client(), srv.URL, store, bus, zap.NewNop()), bus
}

func TestQuota(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/vd/quota/", r.URL.Path)
		require.Equal(t, "Bearer acc-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(api.Quota{Limit: 10, Remaining: 7, Period: "day"})
	}))
	defer srv.Close()

	store := auth.NewMemStore()
	store.SetTokens(auth.Tokens{Access: "acc-1"})
	client, _ := newClient(t, srv, store)

	q, err := client.Quota(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 7, q.Remaining)
}

func TestStartSpreadSendsMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/vd/spreads/start/", r.URL.Path)
		var req api.StartSpreadRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "three", req.Spread)
		assert.Equal(t, "rider_waite", req.DeckID)
		assert.Equal(t, "en", req.Lang)
		json.NewEncoder(w).Encode(api.StartSpreadResult{
			SpreadID: "sp-1",
			Quota:    api.Quota{Limit: 10, Remaining: 6},
		})
	}))
	defer srv.Close()

	store := auth.NewMemStore()
	store.SetTokens(auth.Tokens{Access: "acc-1"})
	client, _ := newClient(t, srv, store)

	res, err := client.StartSpread(context.Background(), api.StartSpreadRequest{
		Spread: "three", DeckID: "rider_waite", Lang: "en", ClientRef: "ref-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "sp-1", res.SpreadID)
	assert.Equal(t, 6, res.Quota.Remaining)
}

func TestRefreshRetryOn401(t *testing.T) {
	var quotaCalls, refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/vd/quota/":
			if atomic.AddInt32(&quotaCalls, 1) == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			require.Equal(t, "Bearer acc-new", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(api.Quota{Remaining: 3})
		case "/api/auth/refresh/":
			atomic.AddInt32(&refreshCalls, 1)
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			require.Equal(t, "ref-1", body["refresh"])
			json.NewEncoder(w).Encode(map[string]string{"access": "acc-new"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	store := auth.NewMemStore()
	store.SetTokens(auth.Tokens{Access: "acc-stale", Refresh: "ref-1"})
	client, bus := newClient(t, srv, store)

	refreshed := 0
	bus.Subscribe(events.AuthRefresh, func(events.Event) { refreshed++ })

	q, err := client.Quota(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, q.Remaining)
	assert.Equal(t, int32(1), refreshCalls)
	assert.Equal(t, "acc-new", store.Tokens().Access)
	assert.Equal(t, 1, refreshed)
}

func TestRefreshFailureClearsTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := auth.NewMemStore()
	store.SetTokens(auth.Tokens{Access: "acc-stale", Refresh: "ref-dead"})
	client, bus := newClient(t, srv, store)

	loggedOut := 0
	bus.Subscribe(events.AuthLogout, func(events.Event) { loggedOut++ })

	_, err := client.Quota(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, auth.Tokens{}, store.Tokens())
	assert.Equal(t, 1, loggedOut)
}

func TestForbiddenIsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client, _ := newClient(t, srv, auth.NewMemStore())

	err := client.CompleteSpread(context.Background(), api.CompleteSpreadRequest{SpreadID: "sp-1"})
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestQuotaExhaustedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	store := auth.NewMemStore()
	store.SetTokens(auth.Tokens{Access: "acc-1"})
	client, _ := newClient(t, srv, store)

	_, err := client.StartSpread(context.Background(), api.StartSpreadRequest{Spread: "three"})
	assert.ErrorIs(t, err, api.ErrQuotaExhausted)
}

func TestCompleteSpreadBeacon(t *testing.T) {
	done := make(chan api.CompleteSpreadRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req api.CompleteSpreadRequest
		json.NewDecoder(r.Body).Decode(&req)
		done <- req
	}))
	defer srv.Close()

	store := auth.NewMemStore()
	store.SetTokens(auth.Tokens{Access: "acc-1"})
	client, _ := newClient(t, srv, store)

	client.CompleteSpreadBeacon(api.CompleteSpreadRequest{SpreadID: "sp-9", Outcome: "abandoned"})

	select {
	case req := <-done:
		assert.Equal(t, "sp-9", req.SpreadID)
	case <-time.After(2 * time.Second):
		t.Fatal("beacon request never arrived")
	}
}

func TestDeviceLoginFlow(t *testing.T) {
	var pollCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/device/":
			json.NewEncoder(w).Encode(api.DeviceLogin{
				DeviceCode:      "dev-1",
				UserCode:        "ABCD-1234",
				VerificationURL: "https://tarion.example/activate",
				IntervalSec:     1,
			})
		case "/api/auth/device/token/":
			if atomic.AddInt32(&pollCalls, 1) == 1 {
				w.WriteHeader(http.StatusPreconditionRequired)
				return
			}
			resp := api.DeviceTokens{Access: "acc-1", Refresh: "ref-1"}
			resp.Profile.ID = "u1"
			json.NewEncoder(w).Encode(resp)
		}
	}))
	defer srv.Close()

	store := auth.NewMemStore()
	client, bus := newClient(t, srv, store)

	loggedIn := 0
	bus.Subscribe(events.AuthLogin, func(events.Event) { loggedIn++ })

	dl, err := client.StartDeviceLogin(context.Background())
	require.NoError(t, err)
	require.NoError(t, client.PollDeviceLogin(context.Background(), dl))

	assert.Equal(t, "acc-1", store.Tokens().Access)
	assert.Equal(t, 1, loggedIn)
	p, ok := store.Profile()
	require.True(t, ok)
	assert.Equal(t, "u1", p.ID)
}
