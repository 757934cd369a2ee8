package anim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var springConfigs = map[string]SpringConfig{
	"Default":    {},
	"Settle":     {Damping: 200},
	"Entry":      {Damping: 14, Stiffness: 80},
	"LowerThird": {Damping: 16, Stiffness: 80, Mass: 0.8},
	"EndCard":    {Damping: 12, Stiffness: 80, Mass: 0.8},
	"Critical":   {Damping: 20, Stiffness: 100, Mass: 1},
	"Undamped":   {Damping: 0, Stiffness: 50, Mass: 1},
	"Overdamped": {Damping: 60, Stiffness: 10, Mass: 2},
}

func TestSpringValue_ZeroAtStart(t *testing.T) {
	for name, cfg := range springConfigs {
		for _, fps := range []int{24, 30, 60} {
			assert.Equal(t, 0.0, SpringValue(0, fps, cfg), "%s @%dfps", name, fps)
			assert.Equal(t, 0.0, SpringValue(-5, fps, cfg), "%s @%dfps negative frame", name, fps)
		}
	}
}

func TestSpringValue_InvalidFPS(t *testing.T) {
	assert.Equal(t, 0.0, SpringValue(10, 0, SpringConfig{}))
	assert.Equal(t, 0.0, SpringValue(10, -30, SpringConfig{}))
}

func TestSpringValue_MatchesIterativeSimulation(t *testing.T) {
	for name, cfg := range springConfigs {
		t.Run(name, func(t *testing.T) {
			series := SpringSeries(240, 30, cfg)
			require.Len(t, series, 240)
			for f, want := range series {
				assert.InDelta(t, want, SpringValue(f, 30, cfg), 1e-9, "frame %d", f)
			}
		})
	}
}

func TestSpringValue_RandomAccessOrder(t *testing.T) {
	cfg := SpringConfig{Damping: 14, Stiffness: 80}
	forward := make([]float64, 120)
	for f := range forward {
		forward[f] = SpringValue(f, 30, cfg)
	}
	for f := len(forward) - 1; f >= 0; f -= 7 {
		assert.Equal(t, math.Float64bits(forward[f]), math.Float64bits(SpringValue(f, 30, cfg)))
	}
	assert.Equal(t, forward[47], SpringValue(47, 30, cfg))
}

func TestSpringValue_ConvergesWhenAtLeastCriticallyDamped(t *testing.T) {
	for _, cfg := range []SpringConfig{
		{Damping: 200},
		{Damping: 20, Stiffness: 100, Mass: 1},
		{Damping: 40, Stiffness: 100, Mass: 1},
	} {
		require.GreaterOrEqual(t, cfg.DampingRatio(), 1.0)

		settle := settleFrame(30, cfg, 1e-3)
		require.Positive(t, settle, "%+v should settle", cfg)

		prev := 0.0
		for f := 0; f <= settle+30; f++ {
			v := SpringValue(f, 30, cfg)
			assert.GreaterOrEqual(t, v, prev-1e-15, "non-decreasing at frame %d for %+v", f, cfg)
			assert.LessOrEqual(t, v, 1.0)
			prev = v
		}
		assert.InDelta(t, 1.0, SpringValue(settle+30, 30, cfg), 1e-3)
	}
}

func TestSpringValue_UnderdampedOvershoots(t *testing.T) {
	cfg := SpringConfig{Damping: 12, Stiffness: 80, Mass: 0.8}
	peak := 0.0
	for f := 0; f < 90; f++ {
		peak = math.Max(peak, SpringValue(f, 30, cfg))
	}
	assert.Greater(t, peak, 1.0)

	cfg.OvershootClamping = true
	for f := 0; f < 90; f++ {
		assert.LessOrEqual(t, SpringValue(f, 30, cfg), 1.0)
	}
}

func TestSettle_Undamped(t *testing.T) {
	assert.Equal(t, -1, settleFrame(30, SpringConfig{Damping: 0, Stiffness: 50, Mass: 1}, 1e-3))
	assert.Equal(t, -1, settleFrame(0, SpringConfig{}, 1e-3))
}

func TestStagger(t *testing.T) {
	cfg := SpringConfig{Damping: 12, Stiffness: 80, Mass: 0.8}
	start := SpringValue(0, 30, cfg)

	for _, delay := range []int{0, 5, 12, 24} {
		assert.Equal(t, start, Stagger(delay, 30, cfg)(delay), "frame == delay")
		for frame := 0; frame < delay; frame++ {
			assert.Equal(t, start, Stagger(frame, 30, cfg)(delay), "frame %d < delay %d", frame, delay)
		}
		assert.Equal(t, SpringValue(40, 30, cfg), Stagger(40+delay, 30, cfg)(delay))
	}
}

func TestSpringConfig_WithDefaults(t *testing.T) {
	assert.Equal(t, SpringConfig{Damping: 10, Stiffness: 100, Mass: 1}, SpringConfig{}.WithDefaults())
	assert.Equal(t, SpringConfig{Damping: 200, Stiffness: 100, Mass: 1}, SpringConfig{Damping: 200}.WithDefaults())
	assert.Equal(t, SpringConfig{Damping: 0, Stiffness: 50, Mass: 1}, SpringConfig{Stiffness: 50}.WithDefaults())
	assert.InDelta(t, 10.0, SpringConfig{Damping: 200}.DampingRatio(), 1e-12)
}

// settleFrame returns the first frame from which the spring stays within
// tolerance of 1, or -1 if it is still moving after ten minutes.
func settleFrame(fps int, cfg SpringConfig, tolerance float64) int {
	if fps <= 0 || tolerance <= 0 {
		return -1
	}
	limit := fps * 600
	lastOutside := 0
	for f := 0; f <= limit; f++ {
		if math.Abs(1-SpringValue(f, fps, cfg)) > tolerance {
			lastOutside = f
		}
	}
	if lastOutside >= limit-fps {
		return -1
	}
	return lastOutside + 1
}

func TestSpringTable_MatchesClosedForm(t *testing.T) {
	for _, cfg := range []SpringConfig{
		{Damping: 200},
		{Damping: 14, Stiffness: 80},
		{Damping: 12, Stiffness: 80, Mass: 0.8},
		{Damping: 20, Stiffness: 100, Mass: 1},
		{Damping: 12, Stiffness: 80, Mass: 0.8, OvershootClamping: true},
	} {
		table := NewSpringTable(120, 30, cfg)
		require.Equal(t, 120, table.Len())
		assert.Equal(t, 30, table.FPS())

		// frames past the table use the closed form
		for f := -3; f < 160; f++ {
			assert.InDelta(t, SpringValue(f, 30, cfg), table.At(f), 1e-6, "frame %d of %+v", f, cfg)
		}
		assert.Equal(t, SpringValue(150, 30, cfg), table.At(150))

		for _, delay := range []int{0, 5, 24} {
			assert.InDelta(t, Stagger(60, 30, cfg)(delay), table.Stagger(60)(delay), 1e-6)
			assert.Equal(t, 0.0, table.Stagger(3)(delay+3))
		}
	}
}
