// Package theme resolves colour palettes for scene content.
//
// A theme is resolved field by field from layers, highest first: explicit
// overrides, a named preset from the configuration, an external palette file
// and finally the built-in preset. Resolution never fails; problems are
// reported as warnings and the next layer is used.
package theme

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// DefaultID is the preset used when no or an unknown theme is requested
const DefaultID = "wad"

// Theme is a fully resolved palette
type Theme struct {
	Primary     string `yaml:"primary"`
	Bg          string `yaml:"bg"`
	Accent      string `yaml:"accent"`
	Fg          string `yaml:"fg"`
	BgSecondary string `yaml:"bg_secondary,omitempty"`
	BgTertiary  string `yaml:"bg_tertiary,omitempty"`
}

// Partial is a palette with possibly absent fields; "" means absent
type Partial struct {
	Primary     string `yaml:"primary,omitempty"`
	Bg          string `yaml:"bg,omitempty"`
	Accent      string `yaml:"accent,omitempty"`
	Fg          string `yaml:"fg,omitempty"`
	BgSecondary string `yaml:"bg_secondary,omitempty"`
	BgTertiary  string `yaml:"bg_tertiary,omitempty"`
}

// IsZero reports whether no field is set
func (p Partial) IsZero() bool {
	return p == Partial{}
}

func (p *Partial) each(fn func(name string, v *string)) {
	fn("primary", &p.Primary)
	fn("bg", &p.Bg)
	fn("accent", &p.Accent)
	fn("fg", &p.Fg)
	fn("bg_secondary", &p.BgSecondary)
	fn("bg_tertiary", &p.BgTertiary)
}

// fill sets every empty field of t from p
func (t *Theme) fill(p Partial) {
	var src []string
	p.each(func(_ string, v *string) { src = append(src, *v) })

	dst := Partial(*t)
	i := 0
	dst.each(func(_ string, v *string) {
		if *v == "" {
			*v = src[i]
		}
		i++
	})
	*t = Theme(dst)
}

var builtin = map[string]Theme{
	"wad": {
		Primary:     "#7C3AED",
		Bg:          "#09090B",
		Accent:      "#EC4899",
		Fg:          "#FFFFFF",
		BgSecondary: "#18181B",
		BgTertiary:  "#27272A",
	},
	"bloghead": {
		Primary:     "#3B82F6",
		Bg:          "#0F172A",
		Accent:      "#F59E0B",
		Fg:          "#FFFFFF",
		BgSecondary: "#1E293B",
		BgTertiary:  "#334155",
	},
	"ea": {
		Primary:     "#8B5CF6",
		Bg:          "#0A0A1A",
		Accent:      "#EC4899",
		Fg:          "#FFFFFF",
		BgSecondary: "#1E293B",
		BgTertiary:  "#334155",
	},
}

// Builtin returns a copy of the built-in presets
func Builtin() map[string]Theme {
	out := make(map[string]Theme, len(builtin))
	for id, t := range builtin {
		out[id] = t
	}
	return out
}

// Available lists the built-in preset ids, default first
func Available() []string {
	return sortedIDs(builtin)
}

func sortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		if id != DefaultID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if _, ok := m[DefaultID]; ok {
		ids = append([]string{DefaultID}, ids...)
	}
	return ids
}

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa" or a CSS colour name
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Hex formats c as "#RRGGBB", or "#RRGGBBAA" when not opaque
func Hex(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// WithAlpha returns the colour with its alpha replaced; unparsable colours
// are returned unchanged
func WithAlpha(s string, alpha uint8) string {
	c, err := ParseColor(s)
	if err != nil {
		return s
	}
	c.A = alpha
	return Hex(c)
}
