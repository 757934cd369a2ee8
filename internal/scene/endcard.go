package scene

import (
	"fmt"
	"math"

	"github.com/ivlev/teaserkit/internal/anim"
	"github.com/ivlev/teaserkit/internal/effects"
	"github.com/ivlev/teaserkit/internal/theme"
	"github.com/skip2/go-qrcode"
)

// EndCardSpring drives the staggered entrances of the end card
var EndCardSpring = anim.SpringConfig{Damping: 12, Stiffness: 80, Mass: 0.8}

// Entrance delays in frames
const (
	delayLogo     = 0
	delayText     = 5
	delayLine     = 10
	delaySubtitle = 12
	delayURL      = 18
	delaySocial   = 24
)

// EndCard is the closing call to action
type EndCard struct {
	Text     string
	Subtitle string
	URL      string
	Social   string
	Logo     string
	Theme    theme.Theme
	QR       [][]bool // modules of URL, nil for no code

	// Springs, when sampled at the render fps, replaces per-frame closed-form
	// evaluation of EndCardSpring. See NewEndCardSprings.
	Springs *anim.SpringTable
}

// NewEndCardSprings samples EndCardSpring for a card of durationFrames
func NewEndCardSprings(durationFrames, fps int) *anim.SpringTable {
	return anim.NewSpringTable(durationFrames, fps, EndCardSpring)
}

// QRMatrix encodes content as QR modules without the quiet zone
func QRMatrix(content string) ([][]bool, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	q.DisableBorder = true
	return q.Bitmap(), nil
}

// PulseScale is the slow breathing of the background glow
func PulseScale(frame int) float64 {
	return anim.MustInterpolate(math.Sin(float64(frame)*0.05), []float64{-1, 1}, []float64{0.95, 1.05})
}

// Render implements Content
func (c *EndCard) Render(frame, fps, durationFrames int) Frame {
	stagger := anim.Stagger(frame, fps, EndCardSpring)
	if c.Springs != nil && c.Springs.FPS() == fps {
		stagger = c.Springs.Stagger(frame)
	}
	bg := anim.MustInterpolate(float64(frame), []float64{0, 20}, []float64{0, 1}, anim.ExtrapolateRight(anim.Clamp))
	exit := effects.ExitFade(frame, durationFrames, effects.ExitWindowEndCard)

	f := Frame{Background: c.Theme.Bg}
	f.add(Element{
		ID:        "glow",
		Kind:      Overlay,
		Color:     theme.WithAlpha(c.Theme.Accent, 0x33),
		Opacity:   bg * 0.4,
		Transform: effects.Transform{Scale: PulseScale(frame)},
	})
	f.add(Element{ID: "grid", Kind: Overlay, Color: c.Theme.Fg, Opacity: 0.03, Transform: effects.Identity})

	// rise adds an element entering after delay, lifted by dy px at its start
	rise := func(e Element, delay int, dy float64) {
		p := stagger(delay)
		e.Opacity = opacity(p * exit)
		e.Transform = effects.Transform{TranslateY: ramp(p, dy, 0), Scale: 1}
		f.add(e)
	}

	if c.Logo != "" {
		p := stagger(delayLogo)
		f.add(Element{ID: "logo", Kind: Image, Src: c.Logo, Opacity: opacity(p * exit), Transform: effects.Transform{Scale: p}})
	}
	rise(Element{ID: "text", Kind: Text, Text: c.Text, Color: c.Theme.Fg}, delayText, 30)
	f.add(Element{ID: "underline", Kind: Shape, Color: c.Theme.Accent, Opacity: exit,
		Width: ramp(stagger(delayLine), 0, 160), Transform: effects.Identity})

	if c.Subtitle != "" {
		rise(Element{ID: "subtitle", Kind: Text, Text: c.Subtitle, Color: theme.WithAlpha(c.Theme.Fg, 0xBB)}, delaySubtitle, 20)
	}
	if c.URL != "" {
		rise(Element{ID: "url", Kind: Text, Text: c.URL, Color: c.Theme.Accent}, delayURL, 15)
		if c.QR != nil {
			rise(Element{ID: "qr", Kind: QR, Text: c.URL, Color: c.Theme.Fg, Modules: c.QR}, delayURL, 15)
		}
	}
	if c.Social != "" {
		rise(Element{ID: "social", Kind: Text, Text: c.Social, Color: theme.WithAlpha(c.Theme.Fg, 0x88)}, delaySocial, 15)
	}
	return f
}
