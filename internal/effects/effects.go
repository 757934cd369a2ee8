package effects

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ivlev/teaserkit/internal/anim"
	"github.com/ivlev/teaserkit/internal/config"
)

// CurveKind selects an entrance animation preset
type CurveKind int

const (
	Fade CurveKind = iota
	SlideUp
	SlideDown
	Zoom
	Typewriter
	Glitch
	BlurIn
)

var curveNames = map[CurveKind]string{
	Fade:       "fade",
	SlideUp:    "slide-up",
	SlideDown:  "slide-down",
	Zoom:       "zoom",
	Typewriter: "typewriter",
	Glitch:     "glitch",
	BlurIn:     "blur-in",
}

func (k CurveKind) String() string {
	if name, ok := curveNames[k]; ok {
		return name
	}
	return fmt.Sprintf("curve(%d)", int(k))
}

// ParseCurveKind parses a preset name such as "slide-up"
func ParseCurveKind(name string) (CurveKind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Fade, nil
	}
	for k, v := range curveNames {
		if v == n {
			return k, nil
		}
	}
	return Fade, fmt.Errorf("unknown animation preset: %s", name)
}

// Preset timing constants
const (
	slideDistance  = 80.0
	zoomFromScale  = 0.5
	glitchFrames   = 20
	glitchMaxShift = 15.0
	glitchFadeIn   = 8
	blurFrames     = 25
	blurStart      = 20.0
	blurFadeIn     = 15
)

// Default springs: a heavily damped one reveals opacity, a bouncier one drives motion
var (
	SettleSpring = anim.SpringConfig{Damping: 200}
	EntrySpring  = anim.SpringConfig{Damping: 14, Stiffness: 80}
)

// CurveConfig parameterises one preset
type CurveConfig struct {
	Kind      CurveKind
	Settle    anim.SpringConfig // opacity
	Entry     anim.SpringConfig // transform
	Distance  float64           // slide distance in px
	FromScale float64           // zoom start scale
}

// NewCurve returns the preset with its default parameters
func NewCurve(kind CurveKind) CurveConfig {
	return CurveConfig{
		Kind:      kind,
		Settle:    SettleSpring,
		Entry:     EntrySpring,
		Distance:  slideDistance,
		FromScale: zoomFromScale,
	}
}

// Transform is a 2D translate + uniform scale
type Transform struct {
	TranslateX float64 `yaml:"translate_x"`
	TranslateY float64 `yaml:"translate_y"`
	Scale      float64 `yaml:"scale"`
}

// Identity is the neutral transform
var Identity = Transform{Scale: 1}

// Sample is the visual state of an animated element at one frame
type Sample struct {
	Opacity     float64   `yaml:"opacity"`
	Transform   Transform `yaml:"transform"`
	DisplayText *string   `yaml:"display_text,omitempty"`
	Blur        *float64  `yaml:"blur,omitempty"`
}

type evaluator func(c CurveConfig, frame int, p config.SegmentParams) Sample

var evaluators = map[CurveKind]evaluator{
	Fade:       evalSpring,
	SlideUp:    evalSpring,
	SlideDown:  evalSpring,
	Zoom:       evalSpring,
	Typewriter: evalTypewriter,
	Glitch:     evalGlitch,
	BlurIn:     evalBlur,
}

// Evaluate computes the sample of a preset at a scene-local frame.
// The result depends only on the arguments.
func Evaluate(c CurveConfig, frame int, p config.SegmentParams) (Sample, error) {
	if p.FPS <= 0 {
		return Sample{}, fmt.Errorf("fps must be positive, got %d", p.FPS)
	}
	if p.DurationFrames <= 0 {
		return Sample{}, fmt.Errorf("duration must be positive, got %d frames", p.DurationFrames)
	}
	eval, ok := evaluators[c.Kind]
	if !ok {
		return Sample{}, fmt.Errorf("unknown curve kind %d", int(c.Kind))
	}
	return eval(c, frame, p), nil
}

func evalSpring(c CurveConfig, frame int, p config.SegmentParams) Sample {
	progress := anim.SpringValue(frame, p.FPS, c.Settle)
	entry := anim.SpringValue(frame, p.FPS, c.Entry)

	s := Sample{Opacity: clamp01(progress), Transform: Identity}
	switch c.Kind {
	case SlideUp:
		s.Transform.TranslateY = anim.MustInterpolate(entry, []float64{0, 1}, []float64{c.Distance, 0})
	case SlideDown:
		s.Transform.TranslateY = anim.MustInterpolate(entry, []float64{0, 1}, []float64{-c.Distance, 0})
	case Zoom:
		s.Transform.Scale = anim.MustInterpolate(entry, []float64{0, 1}, []float64{c.FromScale, 1})
	}
	return s
}

// RevealedChars returns how many characters of a textLength-long string are
// visible at frame. Never negative, never more than textLength.
func RevealedChars(frame, durationFrames, textLength int) int {
	if textLength <= 0 {
		return 0
	}
	end := math.Min(float64(2*textLength), 0.6*float64(durationFrames))
	if end <= 0 {
		return textLength
	}
	v := anim.MustInterpolate(float64(frame), []float64{0, end}, []float64{0, float64(textLength)},
		anim.ExtrapolateRight(anim.Clamp))
	n := int(math.Floor(v))
	return max(0, min(n, textLength))
}

func evalTypewriter(_ CurveConfig, frame int, p config.SegmentParams) Sample {
	n := RevealedChars(frame, p.DurationFrames, utf8.RuneCountInString(p.Text))
	text := string([]rune(p.Text)[:n])
	return Sample{Opacity: 1, Transform: Identity, DisplayText: &text}
}

// CursorVisible reports whether the typewriter cursor blinks on at frame
func CursorVisible(frame int) bool {
	return frame%16 < 8
}

// GlitchOffset returns the jitter at frame; exactly zero from frame 20 on
func GlitchOffset(frame int) (x, y float64) {
	if frame >= glitchFrames {
		return 0, 0
	}
	intensity := anim.MustInterpolate(float64(frame), []float64{0, glitchFrames}, []float64{glitchMaxShift, 0},
		anim.ExtrapolateRight(anim.Clamp))
	f := float64(frame)
	return math.Sin(f*7.3) * intensity, math.Cos(f*5.1) * intensity * 0.5
}

func evalGlitch(_ CurveConfig, frame int, _ config.SegmentParams) Sample {
	x, y := GlitchOffset(frame)
	opacity := anim.MustInterpolate(float64(frame), []float64{0, glitchFadeIn}, []float64{0, 1}, anim.Clamped())
	return Sample{
		Opacity:   opacity,
		Transform: Transform{TranslateX: x, TranslateY: y, Scale: 1},
	}
}

func evalBlur(_ CurveConfig, frame int, _ config.SegmentParams) Sample {
	blur := anim.MustInterpolate(float64(frame), []float64{0, blurFrames}, []float64{blurStart, 0}, anim.Clamped())
	opacity := anim.MustInterpolate(float64(frame), []float64{0, blurFadeIn}, []float64{0, 1}, anim.Clamped())
	return Sample{Opacity: opacity, Transform: Identity, Blur: &blur}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
