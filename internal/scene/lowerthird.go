package scene

import (
	"strings"

	"github.com/ivlev/teaserkit/internal/effects"
	"github.com/ivlev/teaserkit/internal/theme"
)

// LowerThird is a name/title caption anchored near the bottom of the frame
type LowerThird struct {
	Name     string
	Title    string
	Style    effects.LowerThirdStyle
	Position effects.LowerThirdPosition
	Theme    theme.Theme
}

// Render implements Content
func (c *LowerThird) Render(frame, fps, durationFrames int) Frame {
	look := effects.LowerThird(c.Style, frame, fps, durationFrames)
	anchor := effects.AnchorFor(c.Position)
	move := effects.Transform{TranslateX: look.SlideX, Scale: 1}

	var f Frame
	el := func(id string, kind ElementKind, text, color string) Element {
		return Element{ID: id, Kind: kind, Text: text, Color: color, Opacity: look.Opacity, Transform: move, Anchor: &anchor}
	}

	switch look.Style {
	case effects.StyleMinimal:
		f.add(el("name", Text, c.Name, "#FFFFFF"))
		if c.Title != "" {
			f.add(el("title", Text, c.Title, "#FFFFFFA6"))
		}
		line := el("underline", Shape, "", c.Theme.Accent)
		line.Width = look.UnderlineWidth
		f.add(line)

	case effects.StyleBroadcast:
		f.add(el("name-bar", Shape, "", c.Theme.Accent))
		f.add(el("name", Text, strings.ToUpper(c.Name), "#FFFFFF"))
		if c.Title != "" {
			f.add(el("title-bar", Shape, "", "#000000D9"))
			f.add(el("title", Text, c.Title, "#FFFFFFE6"))
		}

	default:
		bar := el("accent-bar", Shape, "", c.Theme.Accent)
		bar.Width = 5
		bar.Transform.Scale = look.AccentBarScale
		f.add(bar)
		f.add(el("panel", Shape, "", "#000000BF"))
		f.add(el("name", Text, c.Name, "#FFFFFF"))
		if c.Title != "" {
			f.add(el("title", Text, c.Title, "#FFFFFFB3"))
		}
	}
	return f
}
