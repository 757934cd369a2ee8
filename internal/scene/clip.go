package scene

import (
	"github.com/ivlev/teaserkit/internal/anim"
	"github.com/ivlev/teaserkit/internal/effects"
	"github.com/ivlev/teaserkit/internal/theme"
)

// Clip plays a source video with a vignette, an optional label and an
// optional beat flash at its head
type Clip struct {
	Src       string
	Label     string
	BeatFlash bool
	Theme     theme.Theme
}

// LabelOpacity is the label fade: in over frames 10-20, out over 80-90
func LabelOpacity(frame int) float64 {
	return anim.MustInterpolate(float64(frame), []float64{10, 20, 80, 90}, []float64{0, 1, 1, 0}, anim.Clamped())
}

// FlashOpacity is the beat flash peak of 0.3 at frame 4
func FlashOpacity(frame int) float64 {
	return anim.MustInterpolate(float64(frame), []float64{0, 4, 8}, []float64{0, 0.3, 0},
		anim.ExtrapolateRight(anim.Clamp))
}

// Render implements Content
func (c *Clip) Render(frame, _, _ int) Frame {
	f := Frame{Background: c.Theme.Bg}
	f.add(Element{ID: "video", Kind: Video, Src: c.Src, Opacity: 1, Transform: effects.Identity})
	f.add(Element{ID: "vignette", Kind: Overlay, Color: "#00000066", Opacity: 1, Transform: effects.Identity})

	if c.Label != "" {
		f.add(Element{ID: "label", Kind: Text, Text: c.Label, Color: c.Theme.Fg, Opacity: LabelOpacity(frame), Transform: effects.Identity})
	}
	if c.BeatFlash {
		f.add(Element{ID: "flash", Kind: Overlay, Color: c.Theme.Fg, Opacity: FlashOpacity(frame), Transform: effects.Identity})
	}
	return f
}
