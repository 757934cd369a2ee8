package timeline

import (
	"fmt"
	"strings"

	"github.com/ivlev/teaserkit/internal/anim"
)

// TransitionKind is how two adjacent segments hand over
type TransitionKind int

const (
	None TransitionKind = iota
	Fade
	Slide
	Wipe
)

func (k TransitionKind) String() string {
	switch k {
	case Fade:
		return "fade"
	case Slide:
		return "slide"
	case Wipe:
		return "wipe"
	default:
		return "none"
	}
}

// Direction is where an incoming slide or wipe enters from
type Direction int

const (
	FromRight Direction = iota
	FromLeft
	FromTop
	FromBottom
)

func (d Direction) String() string {
	switch d {
	case FromLeft:
		return "from-left"
	case FromTop:
		return "from-top"
	case FromBottom:
		return "from-bottom"
	default:
		return "from-right"
	}
}

// ParseDirection parses "from-left" etc.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "from-right", "right":
		return FromRight, nil
	case "from-left", "left":
		return FromLeft, nil
	case "from-top", "top":
		return FromTop, nil
	case "from-bottom", "bottom":
		return FromBottom, nil
	}
	return FromRight, fmt.Errorf("unknown transition direction: %s", s)
}

// Timing eases the linear progress through a transition window
type Timing int

const (
	Linear Timing = iota
	EaseInOut
)

// Apply maps linear progress t in [0,1] through the timing curve
func (tm Timing) Apply(t float64) float64 {
	if tm == EaseInOut {
		return anim.EaseInOutCubic(t)
	}
	return t
}

// TransitionSpec describes the overlap between two adjacent segments
type TransitionSpec struct {
	Kind           TransitionKind
	Direction      Direction
	DurationFrames int
	Timing         Timing
}

func (t TransitionSpec) String() string {
	switch t.Kind {
	case Slide, Wipe:
		return fmt.Sprintf("%s(%s, %df)", t.Kind, t.Direction, t.DurationFrames)
	default:
		return fmt.Sprintf("%s(%df)", t.Kind, t.DurationFrames)
	}
}

// ParseTransition parses "fade", "slide", "wipe:from-top" or "none".
// Slides default to from-right, wipes to from-left.
func ParseTransition(s string, durationFrames int) (TransitionSpec, error) {
	name, dir, hasDir := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")
	spec := TransitionSpec{DurationFrames: durationFrames}
	switch name {
	case "", "fade":
		spec.Kind = Fade
	case "slide":
		spec.Kind = Slide
		spec.Direction = FromRight
	case "wipe":
		spec.Kind = Wipe
		spec.Direction = FromLeft
	case "none":
		spec.Kind = None
		spec.DurationFrames = 0
	default:
		return TransitionSpec{}, fmt.Errorf("unknown transition: %s", s)
	}
	if hasDir {
		d, err := ParseDirection(dir)
		if err != nil {
			return TransitionSpec{}, err
		}
		spec.Direction = d
	}
	return spec, nil
}
