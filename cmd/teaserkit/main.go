package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/teaserkit/internal/config"
	"github.com/ivlev/teaserkit/internal/director"
	"github.com/ivlev/teaserkit/internal/engine"
	"github.com/ivlev/teaserkit/internal/logging"
	"github.com/ivlev/teaserkit/internal/renderer"
	"github.com/ivlev/teaserkit/internal/system"
	"github.com/ivlev/teaserkit/internal/theme"
)

const scenariosDir = "scenarios"

func main() {
	configPtr := flag.String("config", "teaserkit.yaml", "Path to the config file (created with defaults when missing)")
	scenarioPtr := flag.String("scenario", "", "Scenario file (default: the newest file in scenarios/)")
	newScenarioPtr := flag.Bool("new-scenario", false, "Write a sample scenario to scenarios/ and exit")
	compositionPtr := flag.String("composition", "", "Composition: TitleCard, LowerThird, EndCard, Teaser")
	themePtr := flag.String("theme", "", "Theme id (overrides the config)")
	presetPtr := flag.String("preset", "", "Frame format: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	framePtr := flag.Int("frame", -1, "Print a single frame as YAML and exit")
	fromPtr := flag.Int("from", 0, "First frame of the plan")
	toPtr := flag.Int("to", 0, "End of the plan, exclusive (0 = whole timeline)")
	outputPtr := flag.String("output", "", "Plan output path (overrides the config)")
	xfadePtr := flag.String("xfade", "", "Print the ffmpeg command joining per-segment renders (<segment>.mp4) into this file")
	workersPtr := flag.Int("workers", -1, "Frame workers (0 = one per CPU)")
	logLevelPtr := flag.String("log-level", "", "DEBUG, INFO, WARN, ERROR")
	listPtr := flag.Bool("list", false, "List compositions and themes and exit")

	flag.Parse()

	cfg, err := config.Load(*configPtr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if *logLevelPtr != "" {
		cfg.Log.Level = *logLevelPtr
	}
	cleanup, err := logging.Init(cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := run(cfg, options{
		scenario:    *scenarioPtr,
		newScenario: *newScenarioPtr,
		composition: *compositionPtr,
		theme:       *themePtr,
		preset:      *presetPtr,
		frame:       *framePtr,
		from:        *fromPtr,
		to:          *toPtr,
		output:      *outputPtr,
		xfade:       *xfadePtr,
		workers:     *workersPtr,
		list:        *listPtr,
	}); err != nil {
		slog.Error("Failed", "error", err)
		cleanup()
		os.Exit(1)
	}
}

type options struct {
	scenario, composition, theme, preset, output, xfade string
	newScenario, list                                   bool
	frame, from, to, workers                            int
}

func run(cfg *config.Config, opts options) error {
	if opts.composition != "" {
		cfg.Composition = opts.composition
	}
	if opts.theme != "" {
		cfg.Theme.ID = opts.theme
	}
	if opts.output != "" {
		cfg.OutputPlan = opts.output
	}
	if opts.workers >= 0 {
		cfg.Workers = opts.workers
	}
	switch opts.preset {
	case "":
	case "16:9":
		cfg.Width, cfg.Height = 1920, 1080
	case "9:16":
		cfg.Width, cfg.Height = 1080, 1920
	case "4:5":
		cfg.Width, cfg.Height = 1080, 1350
	default:
		return fmt.Errorf("unknown preset %q", opts.preset)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	resolver := theme.NewResolver(cfg.Theme, slog.Default())

	if opts.list {
		for _, c := range director.Compositions() {
			fmt.Printf("composition %-10s %dx%d @ %dfps\n", c.ID, c.Width, c.Height, c.FPS)
		}
		fmt.Printf("themes      %s\n", strings.Join(resolver.Available(), ", "))
		return nil
	}

	if opts.newScenario {
		path := director.GenerateScenarioPath(scenariosDir)
		if err := director.WriteScenario(sampleScenario(cfg.Theme.ID), path); err != nil {
			return err
		}
		fmt.Printf("Scenario written: %s\n", path)
		return nil
	}

	scenarioPath := opts.scenario
	if scenarioPath == "" {
		scenarioPath = cfg.ScenarioPath
	}
	if scenarioPath == "" {
		scenarioPath = latestScenario(scenariosDir, slog.Default())
	}

	scenario := &director.Scenario{Title: "Untitled"}
	if scenarioPath != "" {
		s, err := director.ReadScenario(scenarioPath)
		if err != nil {
			return err
		}
		scenario = s
		slog.Info("Scenario loaded", "path", scenarioPath, "clips", len(s.Clips))
	}
	if scenario.Composition != "" && opts.composition == "" {
		cfg.Composition = scenario.Composition
	}

	resolved := resolver.Resolve(scenario.Theme.Request(cfg.Theme.ID))

	d := director.NewDirector(cfg, resolved.Theme, slog.Default())
	tl, err := d.Build(cfg.Composition, scenario)
	if err != nil {
		return err
	}

	res := system.Probe()
	slog.Info("Timeline ready",
		"composition", cfg.Composition,
		"theme", resolved.ID,
		"segments", tl.Len(),
		"frames", tl.TotalFrames(),
		"cpus", res.LogicalCPUs,
	)

	if opts.xfade != "" {
		inputs := make([]string, tl.Len())
		for i, s := range tl.Segments() {
			inputs[i] = s.ID + ".mp4"
		}
		args, err := renderer.EncodeArgs(tl, inputs, opts.xfade, cfg.Encoder, cfg.Quality)
		if err != nil {
			return err
		}
		fmt.Println("ffmpeg " + strings.Join(args, " "))
		return nil
	}

	project := engine.NewProject(cfg, cfg.Composition, tl, resolved.Theme, slog.Default())

	if opts.frame >= 0 {
		f, err := project.Host.FrameAt(opts.frame)
		if err != nil {
			return err
		}
		return yaml.NewEncoder(os.Stdout).Encode(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	plan, err := project.Plan(ctx, opts.from, opts.to)
	if err != nil {
		return err
	}
	if err := engine.WritePlan(plan, cfg.OutputPlan); err != nil {
		return err
	}
	fmt.Printf("Plan written: %s (%d frames)\n", cfg.OutputPlan, len(plan.Frames))
	return nil
}

// latestScenario returns the newest scenario in dir, or "" when there is none
func latestScenario(dir string, logger *slog.Logger) string {
	path, err := director.FindLatestScenario(dir)
	if err != nil {
		logger.Debug("No scenario found, using an empty one", "dir", dir, "error", err)
		return ""
	}
	return path
}

func sampleScenario(themeID string) *director.Scenario {
	return &director.Scenario{
		Version:     "1.0",
		Composition: director.TeaserID,
		Title:       "Product Launch",
		Subtitle:    "Coming this spring",
		Clips:       director.ClipsFromSources([]string{"clips/intro.mp4", "clips/demo.mp4", "clips/outro.mp4"}),
		Transitions: "fade",
		Theme:       director.ThemeRef{ID: themeID},
		ShowEndCard: true,
		EndCard: director.EndCardSpec{
			URL:    "https://example.com",
			Social: "@example",
		},
		LowerThirds: []director.LowerThirdSpec{{Name: "Jane Doe", Title: "Founder", Style: "modern"}},
	}
}
