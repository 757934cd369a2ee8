package director

import (
	"fmt"

	"github.com/ivlev/teaserkit/internal/theme"
	"gopkg.in/yaml.v3"
)

// Scenario describes one video: the title, the clips and how they are joined
type Scenario struct {
	Version     string           `yaml:"version"`
	Composition string           `yaml:"composition,omitempty"`
	Title       string           `yaml:"title"`
	Subtitle    string           `yaml:"subtitle,omitempty"`
	Logo        string           `yaml:"logo,omitempty"`
	Animation   string           `yaml:"animation,omitempty"`   // title entrance preset
	Clips       []Clip           `yaml:"clips"`                 // bare source paths or clip records
	Transitions string           `yaml:"transitions,omitempty"` // fade, slide, wipe or none, optionally ":from-top" etc.
	Timing      string           `yaml:"timing,omitempty"`      // linear or ease-in-out
	BeatFlash   bool             `yaml:"beat_flash,omitempty"`
	Theme       ThemeRef         `yaml:"theme,omitempty"`
	ShowEndCard bool             `yaml:"show_end_card"`
	EndCard     EndCardSpec      `yaml:"end_card,omitempty"`
	LowerThirds []LowerThirdSpec `yaml:"lower_thirds,omitempty"`
}

// Clip is one source video of a teaser
type Clip struct {
	Src            string `yaml:"src"`
	DurationFrames int    `yaml:"duration_frames,omitempty"` // 0 = DefaultClipDuration
	Label          string `yaml:"label,omitempty"`
}

// UnmarshalYAML accepts a bare source path as well as a mapping
func (c *Clip) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*c = Clip{Src: value.Value}
		return nil
	}
	type plain Clip
	var p plain
	if err := value.Decode(&p); err != nil {
		return fmt.Errorf("line %d: invalid clip: %w", value.Line, err)
	}
	*c = Clip(p)
	return nil
}

// ThemeRef selects a theme by id, optionally with field overrides.
// In YAML it is either an id string or a mapping of colours with an optional id.
type ThemeRef struct {
	ID       string
	Override theme.Partial
}

type themeMapping struct {
	ID            string `yaml:"id,omitempty"`
	theme.Partial `yaml:",inline"`
}

// UnmarshalYAML implements yaml.Unmarshaler
func (t *ThemeRef) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*t = ThemeRef{ID: value.Value}
		return nil
	}
	var m themeMapping
	if err := value.Decode(&m); err != nil {
		return fmt.Errorf("line %d: invalid theme: %w", value.Line, err)
	}
	*t = ThemeRef{ID: m.ID, Override: m.Partial}
	return nil
}

// MarshalYAML writes the short id form when there are no overrides
func (t ThemeRef) MarshalYAML() (any, error) {
	if t.Override.IsZero() {
		return t.ID, nil
	}
	return themeMapping{ID: t.ID, Partial: t.Override}, nil
}

// IsZero lets omitempty drop an unset theme
func (t ThemeRef) IsZero() bool {
	return t.ID == "" && t.Override.IsZero()
}

// Request converts the reference into a resolver request; fallbackID is
// used when the scenario names no theme and sets no overrides
func (t ThemeRef) Request(fallbackID string) theme.Request {
	if t.IsZero() {
		return theme.Request{ID: fallbackID}
	}
	return theme.Request{ID: t.ID, Override: t.Override}
}

// EndCardSpec is the closing call to action
type EndCardSpec struct {
	Text     string `yaml:"text,omitempty"` // defaults to the title
	Subtitle string `yaml:"subtitle,omitempty"`
	URL      string `yaml:"url,omitempty"`
	Social   string `yaml:"social,omitempty"`
	Logo     string `yaml:"logo,omitempty"`
}

// LowerThirdSpec is one name caption
type LowerThirdSpec struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title,omitempty"`
	Style    string `yaml:"style,omitempty"`    // modern, minimal, broadcast
	Position string `yaml:"position,omitempty"` // bottom-left, bottom-right, bottom-center
}
