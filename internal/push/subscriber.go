// Package push subscribes to the backend's live-updates socket and
// republishes server-side quota and account changes on the local event
// bus. The subscription is best-effort: when the socket is unavailable
// the client simply falls back to request-time quota fetches.
package push

import (
	"context"
	"encoding/json"
	"time"

	"tarion/internal/api"
	"tarion/internal/auth"
	"tarion/internal/events"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	initialBackoff = 2 * time.Second
	maxBackoff     = 60 * time.Second
)

// Subscriber maintains one live-updates connection with reconnects.
type Subscriber struct {
	url    string
	dialer *websocket.Dialer
	store  auth.Store
	bus    *events.Bus
	logger *zap.Logger
}

func New(url string, store auth.Store, bus *events.Bus, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		url:    url,
		dialer: websocket.DefaultDialer,
		store:  store,
		bus:    bus,
		logger: logger,
	}
}

// healthySession is how long a connection must live before the
// reconnect escalation resets.
const healthySession = time.Minute

// reconnectDelay resets the escalation after a session that lived long
// enough to count as healthy.
func reconnectDelay(prev, sessionLen time.Duration) time.Duration {
	if sessionLen >= healthySession {
		return initialBackoff
	}
	return prev
}

// Run connects and reads until ctx ends, reconnecting with backoff.
func (s *Subscriber) Run(ctx context.Context) {
	backoff := initialBackoff
	for {
		start := time.Now()
		err := s.runOnce(ctx)
		if ctx.Err() != nil {
			return
		}
		backoff = reconnectDelay(backoff, time.Since(start))
		s.logger.Debug("live-updates connection lost", zap.Error(err),
			zap.Duration("retry_in", backoff))

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (s *Subscriber) runOnce(ctx context.Context) error {
	header := map[string][]string{}
	if access := s.store.Tokens().Access; access != "" {
		header["Authorization"] = []string{"Bearer " + access}
	}

	conn, _, err := s.dialer.DialContext(ctx, s.url, header)
	if err != nil {
		return err
	}
	defer conn.Close()

	go s.writePump(ctx, conn)
	return s.readPump(conn)
}

// readPump decodes envelopes and fans them out on the bus.
func (s *Subscriber) readPump(conn *websocket.Conn) error {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			s.logger.Debug("live-updates parse error", zap.Error(err))
			continue
		}
		s.dispatch(env)
	}
}

func (s *Subscriber) dispatch(env Envelope) {
	switch env.Type {
	case MsgQuota:
		var q api.Quota
		if err := json.Unmarshal(env.Payload, &q); err != nil {
			s.logger.Debug("bad quota payload", zap.Error(err))
			return
		}
		s.bus.Publish(events.QuotaUpdated, q)
	case MsgUser:
		var p auth.Profile
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			s.logger.Debug("bad user payload", zap.Error(err))
			return
		}
		s.store.SetProfile(p)
		s.bus.Publish(events.UserUpdated, p)
	case MsgLogout:
		s.store.Clear()
		s.bus.Publish(events.AuthLogout, nil)
	default:
		s.logger.Debug("unknown live-updates message", zap.String("type", env.Type))
	}
}

// writePump keeps the connection alive with pings until ctx ends.
func (s *Subscriber) writePump(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			conn.Close()
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
