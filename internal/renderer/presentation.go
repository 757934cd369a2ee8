package renderer

import "github.com/ivlev/teaserkit/internal/timeline"

// Inset is a visible-region clip, as fractions of the frame cut from each edge
type Inset struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// Presentation is how a layer is composited while a transition runs
type Presentation struct {
	Opacity    float64 `yaml:"opacity"`
	TranslateX float64 `yaml:"translate_x"` // px
	TranslateY float64 `yaml:"translate_y"` // px
	Clip       *Inset  `yaml:"clip,omitempty"`
}

// Solo is the presentation of a layer outside any transition
var Solo = Presentation{Opacity: 1}

// Present maps transition progress p to the presentation of one side.
// Fade cross-blends opacity, slide pushes the outgoing layer out while the
// incoming one moves in, wipe reveals the incoming layer over the outgoing one.
func Present(tr timeline.TransitionSpec, role timeline.Role, p float64, width, height int) Presentation {
	if role == timeline.Solo {
		return Solo
	}
	w, h := float64(width), float64(height)

	switch tr.Kind {
	case timeline.Fade:
		if role == timeline.Exiting {
			return Presentation{Opacity: 1 - p}
		}
		return Presentation{Opacity: p}

	case timeline.Slide:
		// unit vector pointing from where the incoming layer starts
		dx, dy := slideVector(tr.Direction)
		if role == timeline.Entering {
			return Presentation{Opacity: 1, TranslateX: dx * (1 - p) * w, TranslateY: dy * (1 - p) * h}
		}
		return Presentation{Opacity: 1, TranslateX: -dx * p * w, TranslateY: -dy * p * h}

	case timeline.Wipe:
		if role == timeline.Exiting {
			return Solo
		}
		hidden := 1 - p
		var in Inset
		switch tr.Direction {
		case timeline.FromLeft:
			in.Right = hidden
		case timeline.FromTop:
			in.Bottom = hidden
		case timeline.FromBottom:
			in.Top = hidden
		default:
			in.Left = hidden
		}
		return Presentation{Opacity: 1, Clip: &in}
	}
	return Solo
}

func slideVector(d timeline.Direction) (dx, dy float64) {
	switch d {
	case timeline.FromLeft:
		return -1, 0
	case timeline.FromTop:
		return 0, -1
	case timeline.FromBottom:
		return 0, 1
	default:
		return 1, 0
	}
}
