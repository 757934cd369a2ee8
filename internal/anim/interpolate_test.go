package anim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name   string
		x      float64
		input  []float64
		output []float64
		opts   []Option
		want   float64
	}{
		{"Midpoint", 5, []float64{0, 10}, []float64{0, 100}, nil, 50},
		{"ExactBreakpoint", 10, []float64{0, 10, 20}, []float64{0, 1, 0}, nil, 1},
		{"SecondSegment", 15, []float64{0, 10, 20}, []float64{0, 1, 0}, nil, 0.5},
		{"DescendingOutput", 7.5, []float64{0, 15}, []float64{1, 0}, nil, 0.5},
		{"ExtendLeft", -5, []float64{0, 10}, []float64{0, 100}, nil, -50},
		{"ExtendRight", 20, []float64{0, 10}, []float64{0, 100}, nil, 200},
		{"ClampLeft", -5, []float64{0, 10}, []float64{0, 100}, []Option{ExtrapolateLeft(Clamp)}, 0},
		{"ClampRight", 20, []float64{0, 10}, []float64{0, 100}, []Option{ExtrapolateRight(Clamp)}, 100},
		{"ClampedBoth", 99, []float64{10, 20, 80, 90}, []float64{0, 1, 1, 0}, []Option{Clamped()}, 0},
		{"Plateau", 50, []float64{10, 20, 80, 90}, []float64{0, 1, 1, 0}, []Option{Clamped()}, 1},
		{"ExtendUsesNearestSegment", 100, []float64{0, 10, 20}, []float64{0, 10, 0}, nil, -80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Interpolate(tt.x, tt.input, tt.output, tt.opts...)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestInterpolate_InvalidRange(t *testing.T) {
	tests := []struct {
		name      string
		input     []float64
		output    []float64
		wantIndex int
	}{
		{"TooFew", []float64{0}, []float64{0}, -1},
		{"LengthMismatch", []float64{0, 1, 2}, []float64{0, 1}, -1},
		{"Equal", []float64{0, 10, 10}, []float64{0, 1, 2}, 2},
		{"Decreasing", []float64{0, 10, 5}, []float64{0, 1, 2}, 2},
		{"NaN", []float64{0, math.NaN()}, []float64{0, 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Interpolate(1, tt.input, tt.output)
			var rangeErr *InvalidRangeError
			require.True(t, errors.As(err, &rangeErr), "expected InvalidRangeError, got %v", err)
			assert.Equal(t, tt.wantIndex, rangeErr.Index)
		})
	}
}

func TestInterpolate_MonotonicWithinSegments(t *testing.T) {
	input := []float64{0, 8, 20, 45}
	output := []float64{0, 1, 0.25, 3}

	for seg := 0; seg < len(input)-1; seg++ {
		slope := output[seg+1] - output[seg]
		prev := MustInterpolate(input[seg], input, output)
		for x := input[seg] + 0.1; x <= input[seg+1]; x += 0.1 {
			cur := MustInterpolate(x, input, output)
			if slope > 0 {
				assert.GreaterOrEqual(t, cur, prev, "segment %d x=%.2f", seg, x)
			} else {
				assert.LessOrEqual(t, cur, prev, "segment %d x=%.2f", seg, x)
			}
			prev = cur
		}
	}
}

func TestInterpolate_Idempotent(t *testing.T) {
	input := []float64{0, 3, 7}
	output := []float64{0.1, 0.7, 0.3}
	for x := -2.0; x < 10; x += 0.37 {
		first := MustInterpolate(x, input, output)
		for i := 0; i < 5; i++ {
			// bit-identical, not just close
			assert.Equal(t, math.Float64bits(first), math.Float64bits(MustInterpolate(x, input, output)))
		}
	}
}

func TestMustInterpolate_Panics(t *testing.T) {
	assert.Panics(t, func() { MustInterpolate(0, []float64{1, 0}, []float64{0, 1}) })
}

func TestEaseInOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, EaseInOutCubic(0))
	assert.Equal(t, 1.0, EaseInOutCubic(1))
	assert.InDelta(t, 0.5, EaseInOutCubic(0.5), 1e-12)
	assert.Equal(t, 0.0, EaseInOutCubic(-1))
	assert.Equal(t, 1.0, EaseInOutCubic(2))

	prev := 0.0
	for x := 0.0; x <= 1; x += 0.01 {
		v := EaseInOutCubic(x)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}
