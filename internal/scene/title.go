package scene

import (
	"github.com/ivlev/teaserkit/internal/anim"
	"github.com/ivlev/teaserkit/internal/config"
	"github.com/ivlev/teaserkit/internal/effects"
	"github.com/ivlev/teaserkit/internal/theme"
)

const subtitleDelay = 12

var logoSpring = anim.SpringConfig{Damping: 14, Stiffness: 100}

// TitleCard shows a title with an entrance preset, an optional subtitle
// under an accent divider and an optional logo
type TitleCard struct {
	Text      string
	Subtitle  string
	Logo      string
	Animation effects.CurveKind
	Theme     theme.Theme
}

// Render implements Content
func (c *TitleCard) Render(frame, fps, durationFrames int) Frame {
	f := Frame{Background: c.Theme.Bg}
	f.add(Element{ID: "glow", Kind: Overlay, Color: theme.WithAlpha(c.Theme.Accent, 0x11), Opacity: 1, Transform: effects.Identity})

	if c.Logo != "" {
		p := anim.SpringValue(frame, fps, logoSpring)
		f.add(Element{
			ID:        "logo",
			Kind:      Image,
			Src:       c.Logo,
			Opacity:   opacity(p),
			Transform: effects.Transform{Scale: ramp(p, 0.6, 1)},
		})
	}

	s, err := effects.Evaluate(effects.NewCurve(c.Animation), frame,
		config.SegmentParams{FPS: fps, DurationFrames: durationFrames, Text: c.Text})
	if err != nil {
		return f
	}
	title := Element{
		ID:        "title",
		Kind:      Text,
		Text:      c.Text,
		Color:     c.Theme.Fg,
		Opacity:   s.Opacity,
		Transform: s.Transform,
	}
	if s.DisplayText != nil {
		title.Text = *s.DisplayText
	}
	if s.Blur != nil {
		title.Blur = *s.Blur
	}
	f.add(title)

	if c.Animation == effects.Typewriter && effects.CursorVisible(frame) {
		f.add(Element{ID: "cursor", Kind: Text, Text: "|", Color: c.Theme.Accent, Opacity: 1, Transform: effects.Identity})
	}

	if c.Subtitle != "" {
		p := anim.Stagger(frame, fps, effects.SettleSpring)(subtitleDelay)
		f.add(Element{ID: "divider", Kind: Shape, Color: c.Theme.Accent, Opacity: 1, Width: ramp(p, 0, 120), Transform: effects.Identity})
		f.add(Element{
			ID:        "subtitle",
			Kind:      Text,
			Text:      c.Subtitle,
			Color:     theme.WithAlpha(c.Theme.Fg, 0xBB),
			Opacity:   opacity(p),
			Transform: effects.Transform{TranslateY: ramp(p, 20, 0), Scale: 1},
		})
	}
	return f
}
