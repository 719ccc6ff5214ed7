// Package anim animates card flights between screen rectangles: deck to
// slot on draw, slot to centered preview on zoom, and back. A flight is a
// pure time-to-transform mapping; the UI samples it on its frame ticks.
package anim

import (
	"math"
	"time"
)

// Rect is an axis-aligned rectangle in render units.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Transform positions the flying ghost relative to its source rect.
type Transform struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
	Rotate     float64 // degrees
}

// Frame is one sampled moment of a flight.
type Frame struct {
	Transform Transform
	Backdrop  float64 // dimming overlay opacity, 0..1
	Done      bool
}

// DefaultDuration matches the web client's flight timing.
const DefaultDuration = 420 * time.Millisecond

// Midpoint lift as a fraction of viewport height; gives the arc effect.
const liftFraction = 0.06

// Flight interpolates three keyframes: identity start, a lifted and
// slightly overshot midpoint, and the exact end transform.
type Flight struct {
	from, to  Rect
	duration  time.Duration
	lift      float64
	endRotate float64
	backward  bool
	reduced   bool

	started time.Time
	running bool
}

// Option configures a Flight.
type Option func(*Flight)

// WithDuration overrides the default flight duration.
func WithDuration(d time.Duration) Option {
	return func(f *Flight) { f.duration = d }
}

// WithRotation sets the rotation the card lands with, in degrees.
func WithRotation(deg float64) Option {
	return func(f *Flight) { f.endRotate = deg }
}

// Backward marks a preview-to-slot flight: the backdrop fades out
// instead of in.
func Backward() Option {
	return func(f *Flight) { f.backward = true }
}

// ReducedMotion skips animation entirely; the first Step lands the card.
func ReducedMotion(on bool) Option {
	return func(f *Flight) { f.reduced = on }
}

// NewFlight builds a flight from one rect to another. The viewport
// height scales the midpoint lift.
func NewFlight(from, to Rect, viewportH float64, opts ...Option) *Flight {
	f := &Flight{
		from:     from,
		to:       to,
		duration: DefaultDuration,
		lift:     viewportH * liftFraction,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start stamps the flight's zero time.
func (f *Flight) Start(now time.Time) {
	f.started = now
	f.running = true
}

// Step samples the flight at a moment. Once the returned frame reports
// Done, every later frame is the exact end transform.
func (f *Flight) Step(now time.Time) Frame {
	end := f.endFrame()
	if f.reduced {
		return end
	}
	if !f.running {
		return Frame{Transform: Transform{Scale: 1}, Backdrop: f.backdrop(0)}
	}

	t := float64(now.Sub(f.started)) / float64(f.duration)
	if t >= 1 {
		return end
	}
	if t < 0 {
		t = 0
	}
	p := easeOutCubic(t)

	endT := end.Transform
	mid := Transform{
		TranslateX: endT.TranslateX * 0.5,
		TranslateY: endT.TranslateY*0.5 - f.lift,
		Scale:      1 + (endT.Scale-1)*0.5*1.08,
		Rotate:     endT.Rotate * 0.55,
	}

	var tr Transform
	if p < 0.5 {
		tr = lerpTransform(Transform{Scale: 1}, mid, p/0.5)
	} else {
		tr = lerpTransform(mid, endT, (p-0.5)/0.5)
	}
	return Frame{Transform: tr, Backdrop: f.backdrop(p)}
}

func (f *Flight) endFrame() Frame {
	scale := 1.0
	if f.from.W > 0 {
		scale = f.to.W / f.from.W
	}
	return Frame{
		Transform: Transform{
			TranslateX: f.to.CenterX() - f.from.CenterX(),
			TranslateY: f.to.CenterY() - f.from.CenterY(),
			Scale:      scale,
			Rotate:     f.endRotate,
		},
		Backdrop: f.backdrop(1),
		Done:     true,
	}
}

func (f *Flight) backdrop(p float64) float64 {
	if f.backward {
		return 1 - p
	}
	return p
}

func lerpTransform(a, b Transform, t float64) Transform {
	return Transform{
		TranslateX: lerp(a.TranslateX, b.TranslateX, t),
		TranslateY: lerp(a.TranslateY, b.TranslateY, t),
		Scale:      lerp(a.Scale, b.Scale, t),
		Rotate:     lerp(a.Rotate, b.Rotate, t),
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func easeOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}
