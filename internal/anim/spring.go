package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Spring defaults, matching the usual web animation presets.
const (
	DefaultDamping   = 10.0
	DefaultStiffness = 100.0
	DefaultMass      = 1.0
)

// SpringConfig describes a damped harmonic oscillator.
// Zero or negative Stiffness and Mass, and negative Damping, fall back to the defaults.
type SpringConfig struct {
	Damping           float64 `yaml:"damping"`
	Stiffness         float64 `yaml:"stiffness"`
	Mass              float64 `yaml:"mass"`
	OvershootClamping bool    `yaml:"overshoot_clamping,omitempty"`
}

// WithDefaults fills unset fields
func (c SpringConfig) WithDefaults() SpringConfig {
	if c.Damping < 0 || c.Damping == 0 && c.Stiffness == 0 && c.Mass == 0 {
		c.Damping = DefaultDamping
	}
	if c.Stiffness <= 0 {
		c.Stiffness = DefaultStiffness
	}
	if c.Mass <= 0 {
		c.Mass = DefaultMass
	}
	return c
}

// AngularFrequency returns the undamped angular frequency sqrt(k/m)
func (c SpringConfig) AngularFrequency() float64 {
	c = c.WithDefaults()
	return math.Sqrt(c.Stiffness / c.Mass)
}

// DampingRatio returns c / (2*sqrt(k*m)); 1 is critical damping
func (c SpringConfig) DampingRatio() float64 {
	c = c.WithDefaults()
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// SpringValue returns the step response of the spring at the given frame:
// 0 at frame 0, converging to 1. It is evaluated in closed form, so any
// frame can be requested in any order.
func SpringValue(frame, fps int, cfg SpringConfig) float64 {
	if frame <= 0 || fps <= 0 {
		return 0
	}

	cfg = cfg.WithDefaults()
	t := float64(frame) / float64(fps)
	w0 := cfg.AngularFrequency()
	zeta := cfg.DampingRatio()

	var v float64
	switch {
	case zeta < 1:
		wd := w0 * math.Sqrt(1-zeta*zeta)
		decay := math.Exp(-zeta * w0 * t)
		v = 1 - decay*(math.Cos(wd*t)+(zeta*w0/wd)*math.Sin(wd*t))
	case zeta == 1:
		v = 1 - math.Exp(-w0*t)*(1+w0*t)
	default:
		s := w0 * math.Sqrt(zeta*zeta-1)
		// r1 = -zeta*w0 + s, written to avoid cancellation for large zeta
		r1 := -(w0 * w0) / (zeta*w0 + s)
		r2 := -zeta*w0 - s
		v = 1 - (r2*math.Exp(r1*t)-r1*math.Exp(r2*t))/(r2-r1)
	}

	if cfg.OvershootClamping && v > 1 {
		return 1
	}
	return v
}

// SpringSeries simulates the spring frame by frame and returns the values
// for frames 0..frames-1. It matches SpringValue for every frame.
func SpringSeries(frames, fps int, cfg SpringConfig) []float64 {
	if frames <= 0 {
		return nil
	}
	out := make([]float64, frames)
	if fps <= 0 {
		return out
	}

	cfg = cfg.WithDefaults()
	spring := harmonica.NewSpring(harmonica.FPS(fps), cfg.AngularFrequency(), cfg.DampingRatio())

	pos, vel := 0.0, 0.0
	for f := 1; f < frames; f++ {
		pos, vel = spring.Update(pos, vel, 1.0)
		out[f] = pos
		if cfg.OvershootClamping && out[f] > 1 {
			out[f] = 1
		}
	}
	return out
}

// SpringTable is a spring sampled once, frame by frame, for frames
// [0, len). Frames past the table fall back to SpringValue. A table is
// read-only after construction and safe for concurrent use.
type SpringTable struct {
	fps    int
	cfg    SpringConfig
	values []float64
}

// NewSpringTable samples cfg for frames [0, frames) at fps
func NewSpringTable(frames, fps int, cfg SpringConfig) *SpringTable {
	return &SpringTable{fps: fps, cfg: cfg, values: SpringSeries(frames, fps, cfg)}
}

// FPS returns the frame rate the table was sampled at
func (t *SpringTable) FPS() int { return t.fps }

// Len returns the number of sampled frames
func (t *SpringTable) Len() int { return len(t.values) }

// At returns the spring value at frame
func (t *SpringTable) At(frame int) float64 {
	if frame <= 0 {
		return 0
	}
	if frame < len(t.values) {
		return t.values[frame]
	}
	return SpringValue(frame, t.fps, t.cfg)
}

// Stagger is the table-backed counterpart of the package-level Stagger
func (t *SpringTable) Stagger(frame int) func(delayFrames int) float64 {
	return func(delayFrames int) float64 {
		return t.At(max(0, frame-delayFrames))
	}
}

// Stagger returns a family of springs sharing fps and cfg, each delayed by
// delayFrames. A delayed spring never sees a negative frame.
func Stagger(frame, fps int, cfg SpringConfig) func(delayFrames int) float64 {
	return func(delayFrames int) float64 {
		return SpringValue(max(0, frame-delayFrames), fps, cfg)
	}
}
