package ui

import (
	"time"

	"tarion/internal/anim"
)

const (
	settleFPS = 30 // matches framePeriod

	// Scale the landing spring starts from after a flight's overshoot.
	landingScale = 1.06
)

// flightRunner adapts anim.Flight to the board's Flier contract. The
// board requests a flight synchronously; the page advances it on frame
// ticks and fires the completion callback when it lands. After landing,
// a spring relaxes the card's emphasis back to rest.
type flightRunner struct {
	viewportH float64
	reduced   bool

	flight *anim.Flight
	settle *anim.Settle
	scale  float64
	frame  anim.Frame
	from   anim.Rect
	to     anim.Rect
	onDone func()
}

func (r *flightRunner) Fly(from, to anim.Rect, rotation float64, onDone func()) {
	f := anim.NewFlight(from, to, r.viewportH,
		anim.WithRotation(rotation),
		anim.ReducedMotion(r.reduced))
	f.Start(time.Now())
	r.flight = f
	r.from = from
	r.to = to
	r.onDone = onDone
	r.frame = anim.Frame{Transform: anim.Transform{Scale: 1}}
}

// active reports whether a flight is currently running.
func (r *flightRunner) active() bool { return r.flight != nil }

// settling reports whether the landed card is still springing to rest.
func (r *flightRunner) settling() bool { return r.settle != nil }

// step samples the flight; when it lands the commit callback runs and
// the settle spring takes over.
func (r *flightRunner) step(now time.Time) {
	if r.flight != nil {
		r.frame = r.flight.Step(now)
		if r.frame.Done {
			r.flight = nil
			if !r.reduced {
				r.settle = anim.NewSettle(settleFPS, landingScale)
				r.scale = landingScale
			}
			done := r.onDone
			r.onDone = nil
			if done != nil {
				done()
			}
		}
		return
	}
	if r.settle != nil {
		r.scale = r.settle.Step()
		if r.settle.Done() {
			r.settle = nil
			r.scale = 1
		}
	}
}
