// Package dynamics provides a second-order response filter used to give
// followers (cameras, sprites, UI) a natural lag toward a moving target.
//
// The filter is tuned with three numbers:
//   - Frequency: speed of the response in Hz, must be positive.
//   - Damping: 0 oscillates forever, (0, 1) overshoots and settles,
//     1 is critically damped, above 1 approaches slowly without overshoot.
//   - Response: initial reaction. 0 eases in, 1 reacts immediately,
//     above 1 overshoots and below 0 anticipates.
package dynamics

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidParams = errors.New("dynamics: invalid params")

// Value is anything the filter can integrate. cp.Vector satisfies it.
type Value[T any] interface {
	Add(T) T
	Sub(T) T
	Mult(float64) T
}

// Scalar adapts float64 to Value.
type Scalar float64

func (s Scalar) Add(o Scalar) Scalar { return s + o }

func (s Scalar) Sub(o Scalar) Scalar { return s - o }

func (s Scalar) Mult(f float64) Scalar { return Scalar(float64(s) * f) }

type Params struct {
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
	Response  float64 `yaml:"response"`
}

func (p Params) Validate() error {
	if !(p.Frequency > 0) || math.IsInf(p.Frequency, 0) {
		return fmt.Errorf("%w: frequency must be positive, got %g", ErrInvalidParams, p.Frequency)
	}
	if !(p.Damping >= 0) || math.IsInf(p.Damping, 0) {
		return fmt.Errorf("%w: damping must be >= 0, got %g", ErrInvalidParams, p.Damping)
	}
	if math.IsNaN(p.Response) || math.IsInf(p.Response, 0) {
		return fmt.Errorf("%w: response must be finite, got %g", ErrInvalidParams, p.Response)
	}
	return nil
}

// SecondOrder tracks a target with second-order dynamics. A zero value is
// not usable; build one with New.
type SecondOrder[T Value[T]] struct {
	params Params

	xp T // previous target
	y  T // output
	yd T // output velocity

	w, z, d    float64
	k1, k2, k3 float64
}

func New[T Value[T]](p Params, x0 T) (*SecondOrder[T], error) {
	s := &SecondOrder[T]{}
	if err := s.Configure(p, x0); err != nil {
		return nil, err
	}
	return s, nil
}

// Configure applies new tuning and reseeds the previous target and output
// from x0 with zero output velocity. Pass the current Output to retune
// without a visible jump. On error the filter is left untouched.
func (s *SecondOrder[T]) Configure(p Params, x0 T) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p
	s.w = 2 * math.Pi * p.Frequency
	s.z = p.Damping
	s.d = s.w * math.Sqrt(math.Abs(p.Damping*p.Damping-1))

	s.k1 = p.Damping / (math.Pi * p.Frequency)
	s.k2 = 1 / (s.w * s.w)
	s.k3 = p.Response * p.Damping / s.w

	var zero T
	s.xp = x0
	s.y = x0
	s.yd = zero
	return nil
}

// Retune reconfigures only when p differs from the current tuning, reseeding
// from the current output.
func (s *SecondOrder[T]) Retune(p Params) error {
	if p == s.params {
		return nil
	}
	return s.Configure(p, s.y)
}

func (s *SecondOrder[T]) Params() Params { return s.params }

func (s *SecondOrder[T]) Output() T { return s.y }

func (s *SecondOrder[T]) Velocity() T { return s.yd }

// Update advances the filter by dt toward x, estimating the target velocity
// from the previous target sample. A non-positive dt returns the current
// output without touching state.
func (s *SecondOrder[T]) Update(dt float64, x T) T {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return s.y
	}
	xd := x.Sub(s.xp).Mult(1 / dt)
	return s.UpdateWithVelocity(dt, x, xd)
}

// UpdateWithVelocity advances the filter using an explicit target velocity.
func (s *SecondOrder[T]) UpdateWithVelocity(dt float64, x, xd T) T {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return s.y
	}
	s.xp = x

	k1, k2 := s.stableCoefficients(dt)

	s.y = s.y.Add(s.yd.Mult(dt))
	// yd += dt * (x + k3*xd - y - k1*yd) / k2
	accel := x.Add(xd.Mult(s.k3)).Sub(s.y).Sub(s.yd.Mult(k1)).Mult(1 / k2)
	s.yd = s.yd.Add(accel.Mult(dt))
	return s.y
}

func (s *SecondOrder[T]) stableCoefficients(dt float64) (k1, k2 float64) {
	if s.w*dt < s.z {
		return s.clampedCoefficients(dt)
	}

	// pole matching
	t1 := math.Exp(-s.z * s.w * dt)
	var blend float64
	if s.z <= 1 {
		blend = math.Cos(dt * s.d)
	} else {
		blend = math.Cosh(dt * s.d)
	}
	alpha := 2 * t1 * blend
	beta := t1 * t1
	den := 1 + beta - alpha
	if den <= 0 {
		return s.clampedCoefficients(dt)
	}
	t2 := dt / den
	return (1 - beta) * t2, dt * t2
}

// clampedCoefficients floors k2 so the semi-implicit step stays stable.
func (s *SecondOrder[T]) clampedCoefficients(dt float64) (k1, k2 float64) {
	k2 = math.Max(s.k2, math.Max(dt*dt/2+dt*s.k1/2, dt*s.k1))
	return s.k1, k2
}
