// Package testutil holds in-memory fakes shared across package tests.
package testutil

import (
	"context"

	"tarion/internal/anim"
	"tarion/internal/api"
)

// SpreadAPI is a scripted stand-in for the remote spread endpoints.
type SpreadAPI struct {
	QuotaResp api.Quota
	QuotaErr  error
	StartErr  error

	QuotaCalls    int
	StartCalls    int
	CompleteCalls int
	LastComplete  api.CompleteSpreadRequest
}

func (f *SpreadAPI) Quota(context.Context) (api.Quota, error) {
	f.QuotaCalls++
	return f.QuotaResp, f.QuotaErr
}

func (f *SpreadAPI) StartSpread(_ context.Context, req api.StartSpreadRequest) (api.StartSpreadResult, error) {
	f.StartCalls++
	if f.StartErr != nil {
		return api.StartSpreadResult{}, f.StartErr
	}
	q := f.QuotaResp
	q.Remaining--
	f.QuotaResp = q
	return api.StartSpreadResult{SpreadID: "sp-test", Quota: q}, nil
}

func (f *SpreadAPI) CompleteSpread(_ context.Context, req api.CompleteSpreadRequest) error {
	f.CompleteCalls++
	f.LastComplete = req
	return nil
}

func (f *SpreadAPI) CompleteSpreadBeacon(req api.CompleteSpreadRequest) {
	f.CompleteCalls++
	f.LastComplete = req
}

// StubGeometry returns fixed rects; enough for the state machine.
type StubGeometry struct{}

func (StubGeometry) DeckRect() anim.Rect { return anim.Rect{X: 0, Y: 0, W: 80, H: 140} }

func (StubGeometry) SlotRect(i int) anim.Rect {
	return anim.Rect{X: float64(100 + i*90), Y: 200, W: 80, H: 140}
}

// InstantFlier completes every flight synchronously.
type InstantFlier struct {
	Flights int
}

func (f *InstantFlier) Fly(_, _ anim.Rect, _ float64, onDone func()) {
	f.Flights++
	onDone()
}

// ManualFlier holds flights until released, for in-flight assertions.
type ManualFlier struct {
	pending []func()
}

func (f *ManualFlier) Fly(_, _ anim.Rect, _ float64, onDone func()) {
	f.pending = append(f.pending, onDone)
}

// Release completes the oldest pending flight.
func (f *ManualFlier) Release() {
	if len(f.pending) == 0 {
		return
	}
	done := f.pending[0]
	f.pending = f.pending[1:]
	done()
}

func (f *ManualFlier) Pending() int { return len(f.pending) }

// SeqRNG plays back a fixed sequence of values.
type SeqRNG struct {
	Vals []int
	i    int
}

func (r *SeqRNG) IntN(n int) int {
	if len(r.Vals) == 0 {
		return 0
	}
	v := r.Vals[r.i%len(r.Vals)] % n
	r.i++
	return v
}
