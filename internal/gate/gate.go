// Package gate guards spread starts against the remote per-user quota
// and keeps session-scoped idempotency: one client instance never charges
// the same uncommitted spread twice.
package gate

import (
	"context"
	"strconv"
	"time"

	"tarion/internal/api"
	"tarion/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the part of the API client the gate consumes.
type Service interface {
	Quota(ctx context.Context) (api.Quota, error)
	StartSpread(ctx context.Context, req api.StartSpreadRequest) (api.StartSpreadResult, error)
	CompleteSpread(ctx context.Context, req api.CompleteSpreadRequest) error
	CompleteSpreadBeacon(req api.CompleteSpreadRequest)
}

// Gate holds the authoritative server quota next to an optimistic local
// projection, reconciled on every fetch.
type Gate struct {
	svc     Service
	session SessionStore
	bus     *events.Bus
	logger  *zap.Logger

	authoritative api.Quota
	known         bool
	optimistic    int
}

func New(svc Service, session SessionStore, bus *events.Bus, logger *zap.Logger) *Gate {
	return &Gate{svc: svc, session: session, bus: bus, logger: logger}
}

// Refresh fetches server quota. Failure leaves the quota unknown and
// the gate open; the start-spread call is the real enforcement point.
func (g *Gate) Refresh(ctx context.Context) {
	q, err := g.svc.Quota(ctx)
	if err != nil {
		g.known = false
		g.logger.Debug("quota fetch failed, treating as unknown", zap.Error(err))
		return
	}
	g.authoritative = q
	g.known = true
	g.optimistic = q.Remaining
	g.bus.Publish(events.QuotaUpdated, q)
}

// Quota returns the last authoritative server quota, if any was fetched.
func (g *Gate) Quota() (api.Quota, bool) {
	return g.authoritative, g.known
}

// Remaining returns the optimistic local projection of remaining spreads.
func (g *Gate) Remaining() (int, bool) {
	return g.optimistic, g.known
}

// Allows reports whether a fresh spread may be started. Unknown quota
// allows; an already-active session-spread allows (no second charge).
func (g *Gate) Allows() bool {
	if _, active := g.ActiveSpread(); active {
		return true
	}
	if !g.known {
		return true
	}
	return g.optimistic > 0
}

// ActiveSpread returns the session-spread ID if one is currently charged.
func (g *Gate) ActiveSpread() (string, bool) {
	if _, ok := g.session.Get(keySpreadActive); !ok {
		return "", false
	}
	id, _ := g.session.Get(keySpreadID)
	return id, true
}

// Start charges a spread once per session. A replay while a session-spread
// marker exists short-circuits without a remote call and returns the
// cached remaining count.
func (g *Gate) Start(ctx context.Context, spreadID, deckID, lang string) (int, error) {
	if _, active := g.ActiveSpread(); active {
		return g.optimistic, nil
	}

	res, err := g.svc.StartSpread(ctx, api.StartSpreadRequest{
		Spread:    spreadID,
		DeckID:    deckID,
		Lang:      lang,
		ClientRef: uuid.NewString(),
	})
	if err != nil {
		return g.optimistic, err
	}

	g.session.Set(keySpreadActive, "1")
	g.session.Set(keySpreadID, res.SpreadID)
	g.session.Set(keySpreadTS, strconv.FormatInt(time.Now().Unix(), 10))

	g.authoritative = res.Quota
	g.known = true
	g.optimistic = res.Quota.Remaining
	g.bus.Publish(events.QuotaUpdated, res.Quota)
	return g.optimistic, nil
}

// Complete reports the end of the active spread. Remote failures are
// logged and swallowed; the local marker clears regardless.
func (g *Gate) Complete(ctx context.Context, outcome string, drawn int) {
	id, active := g.ActiveSpread()
	if !active {
		return
	}
	defer g.clearMarker()

	err := g.svc.CompleteSpread(ctx, api.CompleteSpreadRequest{
		SpreadID: id, Outcome: outcome, Drawn: drawn,
	})
	if err != nil {
		g.logger.Warn("complete-spread failed", zap.String("spread_id", id), zap.Error(err))
	}
}

// CompleteBeacon is the fire-and-forget variant for shutdown paths.
func (g *Gate) CompleteBeacon(outcome string, drawn int) {
	id, active := g.ActiveSpread()
	if !active {
		return
	}
	g.clearMarker()
	g.svc.CompleteSpreadBeacon(api.CompleteSpreadRequest{
		SpreadID: id, Outcome: outcome, Drawn: drawn,
	})
}

func (g *Gate) clearMarker() {
	g.session.Delete(keySpreadActive)
	g.session.Delete(keySpreadID)
	g.session.Delete(keySpreadTS)
}
