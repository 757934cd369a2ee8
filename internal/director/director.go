package director

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ivlev/teaserkit/internal/config"
	"github.com/ivlev/teaserkit/internal/effects"
	"github.com/ivlev/teaserkit/internal/scene"
	"github.com/ivlev/teaserkit/internal/theme"
	"github.com/ivlev/teaserkit/internal/timeline"
)

// Teaser layout, in frames at 30fps
const (
	TitleDuration      = 90
	TransitionDuration = 15
	EndCardDuration    = 120
)

// Composition ids
const (
	TitleCardID  = "TitleCard"
	LowerThirdID = "LowerThird"
	EndCardID    = "EndCard"
	TeaserID     = "Teaser"
)

// Composition is a buildable video format
type Composition struct {
	ID             string
	DurationFrames int // 0 = derived from the scenario
	FPS            int
	Width, Height  int
}

// Compositions lists the registered formats
func Compositions() []Composition {
	return []Composition{
		{ID: TitleCardID, DurationFrames: 90, FPS: 30, Width: 1920, Height: 1080},
		{ID: LowerThirdID, DurationFrames: 150, FPS: 30, Width: 1920, Height: 1080},
		{ID: EndCardID, DurationFrames: 150, FPS: 30, Width: 1920, Height: 1080},
		{ID: TeaserID, FPS: 30, Width: 1920, Height: 1080},
	}
}

// LookupComposition finds a composition by id, ignoring case
func LookupComposition(id string) (Composition, bool) {
	for _, c := range Compositions() {
		if strings.EqualFold(c.ID, id) {
			return c, true
		}
	}
	return Composition{}, false
}

// Director turns scenarios into timelines
type Director struct {
	FPS            int
	DurationFrames int // overrides the length of single-scene compositions when > 0
	Theme          theme.Theme
	Logger         *slog.Logger
}

// NewDirector creates a Director for the job configuration and resolved theme
func NewDirector(cfg *config.Config, th theme.Theme, logger *slog.Logger) *Director {
	if logger == nil {
		logger = slog.Default()
	}
	return &Director{
		FPS:            cfg.FPS,
		DurationFrames: cfg.DurationFrames,
		Theme:          th,
		Logger:         logger,
	}
}

// Build creates the timeline of composition id for s
func (d *Director) Build(id string, s *Scenario) (*timeline.Timeline, error) {
	comp, ok := LookupComposition(id)
	if !ok {
		return nil, fmt.Errorf("unknown composition %q", id)
	}

	switch comp.ID {
	case TitleCardID:
		animation, err := effects.ParseCurveKind(s.Animation)
		if err != nil {
			return nil, err
		}
		return timeline.NewSequential(d.FPS, []timeline.Segment{
			{ID: "title", DurationFrames: d.duration(comp), Content: d.titleCard(s, animation)},
		})

	case LowerThirdID:
		specs := s.LowerThirds
		if len(specs) == 0 {
			specs = []LowerThirdSpec{{Name: "Name", Title: "Title"}}
		}
		segments := make([]timeline.Segment, len(specs))
		for i, lt := range specs {
			segments[i] = timeline.Segment{
				ID:             fmt.Sprintf("lower-third-%d", i),
				DurationFrames: d.duration(comp),
				Content: &scene.LowerThird{
					Name:     lt.Name,
					Title:    lt.Title,
					Style:    effects.ParseLowerThirdStyle(lt.Style),
					Position: effects.LowerThirdPosition(lt.Position),
					Theme:    d.Theme,
				},
			}
		}
		return timeline.NewSequential(d.FPS, segments)

	case EndCardID:
		card, err := d.endCard(s, d.duration(comp))
		if err != nil {
			return nil, err
		}
		return timeline.NewSequential(d.FPS, []timeline.Segment{
			{ID: "end", DurationFrames: d.duration(comp), Content: card},
		})

	default:
		return d.BuildTeaser(s)
	}
}

func (d *Director) duration(c Composition) int {
	if d.DurationFrames > 0 {
		return d.DurationFrames
	}
	return c.DurationFrames
}

// BuildTeaser lays out the title card, one segment per clip and the optional
// end card. Clips are joined by the scenario transition, the end card always
// fades in. Without clips the teaser is the title card alone.
func (d *Director) BuildTeaser(s *Scenario) (*timeline.Timeline, error) {
	animation := effects.Zoom
	if s.Animation != "" {
		a, err := effects.ParseCurveKind(s.Animation)
		if err != nil {
			return nil, err
		}
		animation = a
	}

	segments := []timeline.Segment{
		{ID: "title", DurationFrames: TitleDuration, Content: d.titleCard(s, animation)},
	}

	clips := NormalizeClips(s.Clips)
	if len(clips) == 0 {
		return timeline.NewSequential(d.FPS, segments)
	}

	for i, c := range clips {
		segments = append(segments, timeline.Segment{
			ID:             fmt.Sprintf("clip-%d", i),
			DurationFrames: c.DurationFrames,
			Content:        &scene.Clip{Src: c.Src, Label: c.Label, BeatFlash: s.BeatFlash, Theme: d.Theme},
		})
	}

	if s.ShowEndCard {
		card, err := d.endCard(s, EndCardDuration)
		if err != nil {
			return nil, err
		}
		segments = append(segments, timeline.Segment{ID: "end", DurationFrames: EndCardDuration, Content: card})
	}

	spec, err := timeline.ParseTransition(s.Transitions, TransitionDuration)
	if err != nil {
		return nil, err
	}
	if spec.Kind == timeline.None {
		return timeline.NewSequential(d.FPS, segments)
	}
	timing, err := parseTiming(s.Timing)
	if err != nil {
		return nil, err
	}
	spec.Timing = timing

	transitions := make([]timeline.TransitionSpec, len(segments)-1)
	for i := range transitions {
		transitions[i] = spec
	}
	if s.ShowEndCard {
		transitions[len(transitions)-1] = timeline.TransitionSpec{
			Kind:           timeline.Fade,
			DurationFrames: TransitionDuration,
			Timing:         timing,
		}
	}

	tl, err := timeline.New(d.FPS, segments, transitions)
	if err != nil {
		return nil, err
	}
	for _, adj := range tl.Adjustments() {
		d.Logger.Warn("Transition shortened to fit its segments",
			"transition", adj.Transition, "requested", adj.Requested, "applied", adj.Applied)
	}
	return tl, nil
}

func (d *Director) titleCard(s *Scenario, animation effects.CurveKind) *scene.TitleCard {
	return &scene.TitleCard{
		Text:      s.Title,
		Subtitle:  s.Subtitle,
		Logo:      s.Logo,
		Animation: animation,
		Theme:     d.Theme,
	}
}

func (d *Director) endCard(s *Scenario, durationFrames int) (*scene.EndCard, error) {
	spec := s.EndCard
	card := &scene.EndCard{
		Text:     spec.Text,
		Subtitle: spec.Subtitle,
		URL:      spec.URL,
		Social:   spec.Social,
		Logo:     spec.Logo,
		Theme:    d.Theme,
		Springs:  scene.NewEndCardSprings(durationFrames, d.FPS),
	}
	if card.Text == "" {
		card.Text = s.Title
	}
	if card.URL != "" {
		qr, err := scene.QRMatrix(card.URL)
		if err != nil {
			return nil, err
		}
		card.QR = qr
	}
	return card, nil
}

func parseTiming(s string) (timeline.Timing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return timeline.Linear, nil
	case "ease-in-out", "ease":
		return timeline.EaseInOut, nil
	}
	return timeline.Linear, fmt.Errorf("unknown transition timing: %s", s)
}
