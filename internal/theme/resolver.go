package theme

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ivlev/teaserkit/internal/config"
)

// Warnings reported by Resolve. They never abort resolution.
var (
	ErrUnknownTheme      = errors.New("unknown theme")
	ErrSourceUnavailable = errors.New("theme source unavailable")
	ErrInvalidColor      = errors.New("invalid colour")
)

// Resolver resolves theme requests. The zero value resolves built-in
// presets only. A Resolver is safe for concurrent use as long as its
// fields are not modified.
type Resolver struct {
	Presets map[string]Partial // named presets layered above the built-ins
	Source  Source             // optional external palettes
	Default string             // default id; DefaultID when empty or unknown
	Logger  *slog.Logger
}

// NewResolver builds a resolver from the theme section of the configuration
func NewResolver(cfg config.ThemeConfig, logger *slog.Logger) *Resolver {
	presets := make(map[string]Partial, len(cfg.Presets))
	for id, p := range cfg.Presets {
		presets[id] = Partial(p)
	}
	return &Resolver{
		Presets: presets,
		Source:  FileSource{Dir: cfg.ResolvedPalettesDir(), Files: cfg.Files},
		Logger:  logger,
	}
}

// Request asks for a theme by id, with optional field overrides
type Request struct {
	ID       string
	Override Partial
}

// Result is a resolved theme and the warnings raised on the way
type Result struct {
	ID       string
	Theme    Theme
	Warnings []error
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Resolver) known(id string) bool {
	if _, ok := builtin[id]; ok {
		return true
	}
	_, ok := r.Presets[id]
	return ok
}

func (r *Resolver) defaultID() string {
	if r.Default != "" && r.known(r.Default) {
		return r.Default
	}
	return DefaultID
}

// Available lists the ids the resolver knows, default first
func (r *Resolver) Available() []string {
	ids := make(map[string]struct{}, len(builtin)+len(r.Presets))
	for id := range builtin {
		ids[id] = struct{}{}
	}
	for id := range r.Presets {
		ids[id] = struct{}{}
	}
	return sortedIDs(ids)
}

// Resolve returns the theme for req. An empty id resolves the default
// preset from built-in data only; an unknown id is reported and replaced by
// the default preset.
func (r *Resolver) Resolve(req Request) Result {
	res := Result{ID: req.ID}
	external := true

	switch {
	case req.ID == "":
		res.ID = r.defaultID()
		external = false
	case !r.known(req.ID):
		res.ID = r.defaultID()
		external = false
		res.Warnings = append(res.Warnings, fmt.Errorf("%w %q, falling back to %q (available: %s)",
			ErrUnknownTheme, req.ID, res.ID, strings.Join(r.Available(), ", ")))
	}

	layers := []Partial{req.Override}
	if p, ok := r.Presets[res.ID]; ok {
		layers = append(layers, p)
	}
	if external && r.Source != nil {
		p, err := r.Source.Lookup(res.ID)
		if err != nil {
			res.Warnings = append(res.Warnings, err)
		} else {
			layers = append(layers, p)
		}
	}

	base, ok := builtin[res.ID]
	if !ok {
		base = builtin[DefaultID]
	}

	for _, layer := range layers {
		valid, invalid := sanitize(layer)
		res.Warnings = append(res.Warnings, invalid...)
		res.Theme.fill(valid)
	}
	res.Theme.fill(Partial(base))

	for _, w := range res.Warnings {
		r.logger().Warn("Theme fallback", "id", req.ID, "resolved", res.ID, "error", w)
	}
	return res
}

// sanitize drops fields that are not valid colours
func sanitize(p Partial) (Partial, []error) {
	var errs []error
	p.each(func(name string, v *string) {
		if *v == "" {
			return
		}
		if _, err := ParseColor(*v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			*v = ""
		}
	})
	return p, errs
}
