package effects

import (
	"math"
	"strings"

	"github.com/ivlev/teaserkit/internal/anim"
)

// LowerThirdStyle names a lower-third presentation
type LowerThirdStyle string

const (
	StyleModern    LowerThirdStyle = "modern"
	StyleMinimal   LowerThirdStyle = "minimal"
	StyleBroadcast LowerThirdStyle = "broadcast"
)

// LowerThirdPosition anchors a lower third on screen
type LowerThirdPosition string

const (
	BottomLeft   LowerThirdPosition = "bottom-left"
	BottomRight  LowerThirdPosition = "bottom-right"
	BottomCenter LowerThirdPosition = "bottom-center"
)

// LowerThirdSpring drives the slide-in of every style
var LowerThirdSpring = anim.SpringConfig{Damping: 16, Stiffness: 80, Mass: 0.8}

// LowerThirdLook is the style record of a lower third at one frame
type LowerThirdLook struct {
	Style          LowerThirdStyle `yaml:"style"`
	SlideX         float64         `yaml:"slide_x"`
	Opacity        float64         `yaml:"opacity"`
	AccentBarScale float64         `yaml:"accent_bar_scale,omitempty"` // modern
	UnderlineWidth float64         `yaml:"underline_width,omitempty"`  // minimal
	Uppercase      bool            `yaml:"uppercase,omitempty"`        // broadcast
	Panel          bool            `yaml:"panel"`
}

type lookFunc func(progress, exit float64) LowerThirdLook

var lowerThirdStyles = map[LowerThirdStyle]lookFunc{
	StyleModern: func(progress, exit float64) LowerThirdLook {
		return LowerThirdLook{
			Style:   StyleModern,
			SlideX:  anim.MustInterpolate(progress, []float64{0, 1}, []float64{-400, 0}),
			Opacity: math.Min(progress, exit),
			// bar grows only in the second half of the entrance
			AccentBarScale: anim.MustInterpolate(progress, []float64{0, 0.5, 1}, []float64{0, 0, 1},
				anim.ExtrapolateRight(anim.Clamp)),
			Panel: true,
		}
	},
	StyleMinimal: func(progress, exit float64) LowerThirdLook {
		return LowerThirdLook{
			Style:          StyleMinimal,
			Opacity:        math.Min(progress, exit),
			UnderlineWidth: anim.MustInterpolate(progress, []float64{0, 1}, []float64{0, 200}),
		}
	},
	StyleBroadcast: func(progress, exit float64) LowerThirdLook {
		return LowerThirdLook{
			Style:     StyleBroadcast,
			SlideX:    anim.MustInterpolate(progress, []float64{0, 1}, []float64{-500, 0}),
			Opacity:   math.Min(progress, exit),
			Uppercase: true,
			Panel:     true,
		}
	},
}

// ParseLowerThirdStyle returns the style for name; unknown names fall back to modern
func ParseLowerThirdStyle(name string) LowerThirdStyle {
	s := LowerThirdStyle(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := lowerThirdStyles[s]; ok {
		return s
	}
	return StyleModern
}

// LowerThird evaluates a lower-third style at a scene-local frame
func LowerThird(style LowerThirdStyle, frame, fps, durationFrames int) LowerThirdLook {
	look, ok := lowerThirdStyles[style]
	if !ok {
		look = lowerThirdStyles[StyleModern]
	}
	progress := anim.SpringValue(frame, fps, LowerThirdSpring)
	exit := ExitFade(frame, durationFrames, ExitWindowLowerThird)
	l := look(progress, exit)
	l.Opacity = clamp01(l.Opacity)
	return l
}

// Anchor is the screen placement of a lower third, in px from the edges
type Anchor struct {
	Bottom   float64 `yaml:"bottom"`
	Left     float64 `yaml:"left,omitempty"`
	Right    float64 `yaml:"right,omitempty"`
	Centered bool    `yaml:"centered,omitempty"`
}

// AnchorFor returns the placement of a position; unknown positions anchor bottom-left
func AnchorFor(pos LowerThirdPosition) Anchor {
	switch pos {
	case BottomRight:
		return Anchor{Bottom: 80, Right: 60}
	case BottomCenter:
		return Anchor{Bottom: 80, Centered: true}
	default:
		return Anchor{Bottom: 80, Left: 60}
	}
}
