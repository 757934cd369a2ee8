package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/teaserkit/internal/config"
	"github.com/ivlev/teaserkit/internal/renderer"
	"github.com/ivlev/teaserkit/internal/system"
	"github.com/ivlev/teaserkit/internal/theme"
	"github.com/ivlev/teaserkit/internal/timeline"
)

// ErrInvalidRange is returned for a frame range outside the timeline
var ErrInvalidRange = errors.New("invalid frame range")

// Project is one composition ready to be evaluated frame by frame
type Project struct {
	Config      *config.Config
	Composition string
	Host        *renderer.Host
	Theme       theme.Theme
	Logger      *slog.Logger
}

func NewProject(cfg *config.Config, composition string, tl *timeline.Timeline, th theme.Theme, logger *slog.Logger) *Project {
	if logger == nil {
		logger = slog.Default()
	}
	return &Project{
		Config:      cfg,
		Composition: composition,
		Host:        &renderer.Host{Timeline: tl, Width: cfg.Width, Height: cfg.Height},
		Theme:       th,
		Logger:      logger,
	}
}

// SegmentInfo places one segment on the output timeline
type SegmentInfo struct {
	ID             string `yaml:"id"`
	Start          int    `yaml:"start"`
	DurationFrames int    `yaml:"duration_frames"`
}

// Plan is the evaluated frame range of a project, ready for a rasterizer
type Plan struct {
	JobID       string           `yaml:"job_id"`
	Composition string           `yaml:"composition"`
	FPS         int              `yaml:"fps"`
	Width       int              `yaml:"width"`
	Height      int              `yaml:"height"`
	TotalFrames int              `yaml:"total_frames"`
	From        int              `yaml:"from"`
	To          int              `yaml:"to"`
	Theme       theme.Theme      `yaml:"theme"`
	Segments    []SegmentInfo    `yaml:"segments"`
	XfadeGraph  string           `yaml:"xfade_graph,omitempty"`
	Frames      []renderer.Frame `yaml:"frames"`
}

// Workers returns the number of frame workers for n frames
func (p *Project) Workers(n int) int {
	workers := p.Config.Workers
	if workers <= 0 {
		workers = system.DefaultWorkers()
	}
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// Plan evaluates frames [from, to) in parallel. to <= 0 means the end of the
// timeline. Frames land in the plan by index, so the result does not depend
// on the worker count.
func (p *Project) Plan(ctx context.Context, from, to int) (*Plan, error) {
	tl := p.Host.Timeline
	total := tl.TotalFrames()
	if to <= 0 {
		to = total
	}
	if from < 0 || from >= to || to > total {
		return nil, fmt.Errorf("%w: [%d, %d) of %d frames", ErrInvalidRange, from, to, total)
	}

	start := time.Now()
	n := to - from
	frames := make([]renderer.Frame, n)
	workers := p.Workers(n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := from; i < to; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := p.Host.FrameAt(i)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			frames[i-from] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plan := &Plan{
		JobID:       uuid.NewString(),
		Composition: p.Composition,
		FPS:         tl.FPS(),
		Width:       p.Host.Width,
		Height:      p.Host.Height,
		TotalFrames: total,
		From:        from,
		To:          to,
		Theme:       p.Theme,
		Frames:      frames,
	}
	for i, s := range tl.Segments() {
		plan.Segments = append(plan.Segments, SegmentInfo{ID: s.ID, Start: tl.StartOf(i), DurationFrames: s.DurationFrames})
	}
	if tl.Len() > 1 {
		plan.XfadeGraph = renderer.XfadeGraph(tl)
	}

	elapsed := time.Since(start)
	p.Logger.Info("Plan ready",
		"job", plan.JobID,
		"composition", p.Composition,
		"frames", n,
		"workers", workers,
		"elapsed", elapsed.Round(time.Millisecond),
		"frames_per_sec", fmt.Sprintf("%.1f", float64(n)/elapsed.Seconds()),
	)
	return plan, nil
}

// WritePlan saves the plan as YAML, creating the directory if needed
func WritePlan(plan *Plan, path string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create plan directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}
