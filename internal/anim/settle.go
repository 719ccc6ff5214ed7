package anim

import "github.com/charmbracelet/harmonica"

// Settle is the small spring that relaxes a landed card's scale back to
// rest after a flight's overshoot.
type Settle struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

// NewSettle starts a spring at the given scale, relaxing toward 1.0.
func NewSettle(fps int, fromScale float64) *Settle {
	return &Settle{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 7.0, 0.4),
		pos:    fromScale,
		target: 1.0,
	}
}

// Step advances one frame and returns the current scale.
func (s *Settle) Step() float64 {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	return s.pos
}

// Done reports whether the spring has effectively come to rest.
func (s *Settle) Done() bool {
	const eps = 0.001
	return abs(s.pos-s.target) < eps && abs(s.vel) < eps
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
