// Package spring implements the damped-oscillator animation primitive
// used by menus and the camera. One Update call is one video frame; the
// stiffness/damping presets are tuned at that unit time step.
package spring

import "github.com/manicakes/progearsdk/internal/fixmath"

// Tuning presets. Snappy overshoots and settles in roughly a dozen
// frames; Soft eases in with barely visible overshoot; Bouncy wobbles;
// Quick is Snappy with less travel time.
var (
	SnappyStiffness = fixmath.FromFloat(0.35)
	SnappyDamping   = fixmath.FromFloat(0.65)

	SoftStiffness = fixmath.FromFloat(0.20)
	SoftDamping   = fixmath.FromFloat(0.80)

	BouncyStiffness = fixmath.FromFloat(0.25)
	BouncyDamping   = fixmath.FromFloat(0.45)

	QuickStiffness = fixmath.FromFloat(0.50)
	QuickDamping   = fixmath.FromFloat(0.70)
)

var (
	settleVelocity = fixmath.FromFloat(0.1)
	settlePosition = fixmath.FromFloat(0.5)
)

// Spring is a second-order integrator pulling Value toward Target.
type Spring struct {
	Value     fixmath.Fixed
	Velocity  fixmath.Fixed
	Target    fixmath.Fixed
	Stiffness fixmath.Fixed
	Damping   fixmath.Fixed
}

// New returns a spring at rest on initial with the snappy preset.
func New(initial fixmath.Fixed) Spring {
	return NewTuned(initial, SnappyStiffness, SnappyDamping)
}

// NewTuned returns a spring at rest on initial with explicit tuning.
func NewTuned(initial, stiffness, damping fixmath.Fixed) Spring {
	return Spring{
		Value:     initial,
		Target:    initial,
		Stiffness: stiffness,
		Damping:   damping,
	}
}

// SetTarget retargets the spring without disturbing its motion.
func (s *Spring) SetTarget(target fixmath.Fixed) {
	s.Target = target
}

// Snap teleports the spring to value, killing all motion.
func (s *Spring) Snap(value fixmath.Fixed) {
	s.Value = value
	s.Target = value
	s.Velocity = 0
}

// Impulse adds directly to the velocity.
func (s *Spring) Impulse(v fixmath.Fixed) {
	s.Velocity += v
}

// Update advances the spring one frame:
//
//	a = -k·(value−target) − d·velocity
func (s *Spring) Update() {
	displacement := s.Value - s.Target
	accel := -fixmath.Mul(s.Stiffness, displacement) - fixmath.Mul(s.Damping, s.Velocity)
	s.Velocity += accel
	s.Value += s.Velocity
}

// Settled reports whether the spring is close enough to its target to
// stop animating: |displacement| < 0.5 and |velocity| < 0.1.
func (s *Spring) Settled() bool {
	return fixmath.Abs(s.Value-s.Target) < settlePosition &&
		fixmath.Abs(s.Velocity) < settleVelocity
}

// Int returns the current value as an integer.
func (s *Spring) Int() int {
	return s.Value.Int()
}

// Spring2D is a pair of independent springs sharing tuning.
type Spring2D struct {
	X, Y Spring
}

func New2D(x, y fixmath.Fixed) Spring2D {
	return Spring2D{X: New(x), Y: New(y)}
}

func New2DTuned(x, y, stiffness, damping fixmath.Fixed) Spring2D {
	return Spring2D{
		X: NewTuned(x, stiffness, damping),
		Y: NewTuned(y, stiffness, damping),
	}
}

func (s *Spring2D) SetTarget(x, y fixmath.Fixed) {
	s.X.SetTarget(x)
	s.Y.SetTarget(y)
}

func (s *Spring2D) Snap(x, y fixmath.Fixed) {
	s.X.Snap(x)
	s.Y.Snap(y)
}

func (s *Spring2D) Update() {
	s.X.Update()
	s.Y.Update()
}

// Settled reports true only when both axes have settled.
func (s *Spring2D) Settled() bool {
	return s.X.Settled() && s.Y.Settled()
}
