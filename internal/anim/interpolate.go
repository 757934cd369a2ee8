package anim

import (
	"fmt"
	"math"
)

// Extrapolate selects what happens to inputs outside the breakpoint range
type Extrapolate int

const (
	// Extend continues the slope of the nearest segment
	Extend Extrapolate = iota
	// Clamp pins the output to the boundary value
	Clamp
)

func (e Extrapolate) String() string {
	if e == Clamp {
		return "clamp"
	}
	return "extend"
}

type options struct {
	left, right Extrapolate
}

// Option configures Interpolate
type Option func(*options)

// ExtrapolateLeft sets the behavior below the first breakpoint
func ExtrapolateLeft(e Extrapolate) Option {
	return func(o *options) { o.left = e }
}

// ExtrapolateRight sets the behavior above the last breakpoint
func ExtrapolateRight(e Extrapolate) Option {
	return func(o *options) { o.right = e }
}

// Clamped clamps both ends
func Clamped() Option {
	return func(o *options) {
		o.left = Clamp
		o.right = Clamp
	}
}

// InvalidRangeError reports a malformed breakpoint list.
// Index is the offending breakpoint, or -1 when the list as a whole is wrong.
type InvalidRangeError struct {
	Index  int
	Reason string
}

func (e *InvalidRangeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid interpolation range: %s", e.Reason)
	}
	return fmt.Sprintf("invalid interpolation range at breakpoint %d: %s", e.Index, e.Reason)
}

// Interpolate maps x through the piecewise-linear function defined by the
// input and output breakpoints. Input breakpoints must be strictly increasing.
// Both ends extend by default.
func Interpolate(x float64, input, output []float64, opts ...Option) (float64, error) {
	if err := validateRange(input, output); err != nil {
		return 0, err
	}

	o := options{left: Extend, right: Extend}
	for _, opt := range opts {
		opt(&o)
	}

	last := len(input) - 1

	if x < input[0] {
		if o.left == Clamp {
			return output[0], nil
		}
		return segment(x, input[0], input[1], output[0], output[1]), nil
	}

	if x > input[last] {
		if o.right == Clamp {
			return output[last], nil
		}
		return segment(x, input[last-1], input[last], output[last-1], output[last]), nil
	}

	// Find the segment containing x
	i := 0
	for i < last-1 && x >= input[i+1] {
		i++
	}
	return segment(x, input[i], input[i+1], output[i], output[i+1]), nil
}

// MustInterpolate is Interpolate for ranges known to be valid at compile time.
// It panics on a malformed range.
func MustInterpolate(x float64, input, output []float64, opts ...Option) float64 {
	v, err := Interpolate(x, input, output, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

func validateRange(input, output []float64) error {
	if len(input) < 2 {
		return &InvalidRangeError{Index: -1, Reason: fmt.Sprintf("need at least 2 breakpoints, got %d", len(input))}
	}
	if len(input) != len(output) {
		return &InvalidRangeError{Index: -1, Reason: fmt.Sprintf("input has %d breakpoints but output has %d", len(input), len(output))}
	}
	for i := range input {
		if math.IsNaN(input[i]) || math.IsInf(input[i], 0) {
			return &InvalidRangeError{Index: i, Reason: "input breakpoint is not finite"}
		}
		if math.IsNaN(output[i]) || math.IsInf(output[i], 0) {
			return &InvalidRangeError{Index: i, Reason: "output value is not finite"}
		}
		if i > 0 && input[i] <= input[i-1] {
			return &InvalidRangeError{Index: i, Reason: fmt.Sprintf("breakpoints must be strictly increasing (%g after %g)", input[i], input[i-1])}
		}
	}
	return nil
}

// segment evaluates the line through (x0,y0)-(x1,y1) at x
func segment(x, x0, x1, y0, y1 float64) float64 {
	if x == x0 {
		return y0
	}
	if x == x1 {
		return y1
	}
	t := (x - x0) / (x1 - x0)
	return lerp(y0, y1, t)
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseInOutCubic applies smooth in-out easing to t in [0,1]
func EaseInOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - pow(-2*t+2, 3)/2
}

// pow calculates x^n
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}
