// Package scene holds the content rendered inside timeline segments.
// Every Content is a pure function of the scene-local frame.
package scene

import (
	"math"

	"github.com/ivlev/teaserkit/internal/anim"
	"github.com/ivlev/teaserkit/internal/effects"
)

// Content renders the visual state of a scene at a local frame
type Content interface {
	Render(localFrame, fps, durationFrames int) Frame
}

// ElementKind tells the renderer how to draw an element
type ElementKind string

const (
	Text    ElementKind = "text"
	Shape   ElementKind = "shape"
	Image   ElementKind = "image"
	Video   ElementKind = "video"
	Overlay ElementKind = "overlay"
	QR      ElementKind = "qr"
)

// Element is one drawable of a frame
type Element struct {
	ID        string            `yaml:"id"`
	Kind      ElementKind       `yaml:"kind"`
	Text      string            `yaml:"text,omitempty"`
	Src       string            `yaml:"src,omitempty"`
	Color     string            `yaml:"color,omitempty"`
	Opacity   float64           `yaml:"opacity"`
	Transform effects.Transform `yaml:"transform"`
	Width     float64           `yaml:"width,omitempty"`
	Blur      float64           `yaml:"blur,omitempty"`
	Anchor    *effects.Anchor   `yaml:"anchor,omitempty"`
	Modules   [][]bool          `yaml:"-"`
}

// Frame is the rendered state of one scene, elements bottom to top
type Frame struct {
	Background string    `yaml:"background,omitempty"`
	Elements   []Element `yaml:"elements"`
}

func (f *Frame) add(e Element) {
	f.Elements = append(f.Elements, e)
}

// Element returns the element with id, if present
func (f Frame) Element(id string) (Element, bool) {
	for _, e := range f.Elements {
		if e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}

// ramp maps spring progress p onto [from, to]
func ramp(p, from, to float64) float64 {
	return anim.MustInterpolate(p, []float64{0, 1}, []float64{from, to})
}

func opacity(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
