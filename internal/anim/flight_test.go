package anim_test

import (
	"math"
	"testing"
	"time"

	"tarion/internal/anim"

	"github.com/stretchr/testify/assert"
)

var (
	slot    = anim.Rect{X: 100, Y: 200, W: 80, H: 140}
	preview = anim.Rect{X: 400, Y: 100, W: 240, H: 420}
)

func TestFlightEndsExactlyAtDestination(t *testing.T) {
	f := anim.NewFlight(slot, preview, 700)
	start := time.Now()
	f.Start(start)

	frame := f.Step(start.Add(anim.DefaultDuration))
	assert.True(t, frame.Done)
	assert.InDelta(t, preview.CenterX()-slot.CenterX(), frame.Transform.TranslateX, 0.001)
	assert.InDelta(t, preview.CenterY()-slot.CenterY(), frame.Transform.TranslateY, 0.001)
	assert.InDelta(t, 3.0, frame.Transform.Scale, 0.001) // 240/80
	assert.InDelta(t, 1.0, frame.Backdrop, 0.001)
}

func TestFlightStartsAtIdentity(t *testing.T) {
	f := anim.NewFlight(slot, preview, 700)
	start := time.Now()
	f.Start(start)

	frame := f.Step(start)
	assert.False(t, frame.Done)
	assert.InDelta(t, 0, frame.Transform.TranslateX, 0.001)
	assert.InDelta(t, 0, frame.Transform.TranslateY, 0.001)
	assert.InDelta(t, 1, frame.Transform.Scale, 0.001)
	assert.InDelta(t, 0, frame.Backdrop, 0.001)
}

func TestMidFlightArcsAboveStraightLine(t *testing.T) {
	f := anim.NewFlight(slot, preview, 700)
	start := time.Now()
	f.Start(start)

	// Sample several in-flight moments; at least one must sit above the
	// straight-line interpolation (smaller Y = lifted).
	lifted := false
	for ms := 40; ms < 400; ms += 40 {
		frame := f.Step(start.Add(time.Duration(ms) * time.Millisecond))
		if frame.Done {
			break
		}
		straightY := frame.Transform.TranslateX *
			(preview.CenterY() - slot.CenterY()) / (preview.CenterX() - slot.CenterX())
		if frame.Transform.TranslateY < straightY-1 {
			lifted = true
		}
	}
	assert.True(t, lifted, "flight should arc above the direct path")
}

func TestBackwardFlightFadesBackdropOut(t *testing.T) {
	f := anim.NewFlight(preview, slot, 700, anim.Backward())
	start := time.Now()
	f.Start(start)

	first := f.Step(start)
	last := f.Step(start.Add(anim.DefaultDuration))
	assert.InDelta(t, 1.0, first.Backdrop, 0.001)
	assert.InDelta(t, 0.0, last.Backdrop, 0.001)
	assert.True(t, last.Done)
}

func TestReducedMotionSkipsToEnd(t *testing.T) {
	f := anim.NewFlight(slot, preview, 700, anim.ReducedMotion(true))
	f.Start(time.Now())

	frame := f.Step(time.Now())
	assert.True(t, frame.Done)
	assert.InDelta(t, 3.0, frame.Transform.Scale, 0.001)
}

func TestRotationLandsExactly(t *testing.T) {
	f := anim.NewFlight(slot, preview, 700, anim.WithRotation(90))
	start := time.Now()
	f.Start(start)

	frame := f.Step(start.Add(2 * anim.DefaultDuration))
	assert.InDelta(t, 90.0, frame.Transform.Rotate, 0.001)
}

func TestSettleRelaxesToRest(t *testing.T) {
	s := anim.NewSettle(60, 1.08)

	var scale float64
	for i := 0; i < 600 && !s.Done(); i++ {
		scale = s.Step()
	}
	assert.True(t, s.Done(), "spring should come to rest within 10s of frames")
	assert.InDelta(t, 1.0, scale, 0.01)
	assert.False(t, math.IsNaN(scale))
}
