package palette

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/opencode-ai/palette/internal/colors"
	"github.com/opencode-ai/palette/internal/logging"
)

const (
	// DefaultStep is the lightness change applied per adjustment step.
	DefaultStep = 0.1
	// MinStep is the smallest accepted step; it keeps the step budget small.
	MinStep = 0.001
	// DefaultConcurrency bounds DeriveAll workers.
	DefaultConcurrency = 4
)

// Deriver adjusts foreground colors until they meet AA contrast.
// It holds no mutable state and is safe for concurrent use.
type Deriver struct {
	step        float64
	maxSteps    int
	strategy    Strategy
	concurrency int
	logger      *zerolog.Logger
}

// Option configures a Deriver.
type Option func(*Deriver)

// WithStep sets the per-step adjustment in [MinStep, 1]. Other values are
// ignored.
func WithStep(step float64) Option {
	return func(d *Deriver) {
		if step >= MinStep && step <= 1 {
			d.step = step
		}
	}
}

// WithMaxSteps caps the number of adjustment steps. Zero keeps the
// strategy's own bound.
func WithMaxSteps(n int) Option {
	return func(d *Deriver) {
		if n > 0 {
			d.maxSteps = n
		}
	}
}

// WithStrategy selects the lighten/darken transform.
func WithStrategy(s Strategy) Option {
	return func(d *Deriver) {
		if s != "" {
			d.strategy = s
		}
	}
}

// WithConcurrency bounds DeriveAll workers.
func WithConcurrency(n int) Option {
	return func(d *Deriver) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

// WithLogger overrides the component logger. Without it the logger is
// resolved from the logging package on each call.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Deriver) {
		d.logger = &logger
	}
}

// New creates a Deriver.
func New(opts ...Option) *Deriver {
	d := &Deriver{
		step:        DefaultStep,
		strategy:    StrategyHSL,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// MaxSteps returns the step budget for one color.
func (d *Deriver) MaxSteps() int {
	if d.maxSteps > 0 {
		return d.maxSteps
	}
	return d.strategy.stepBound(d.step)
}

// AccessibleColor moves color in dir until it meets AA against background.
// It takes at most MaxSteps steps, the last of which is always the lightness
// bound; when even that fails the bound is returned with Resolved false.
func (d *Deriver) AccessibleColor(color, background colors.Color, dir Direction) (colors.Color, Adjustment) {
	adj := Adjustment{Original: color.String()}
	bound := dir.Bound()
	limit := d.MaxSteps()

	cur := color
	for {
		scores := colors.Guidelines(cur, background)
		adj.Ratio = scores.Ratio
		if scores.AA {
			adj.Resolved = true
			return cur, adj
		}
		if cur.Fade(1).Equal(bound) {
			return cur, adj
		}

		adj.Steps++
		if adj.Steps >= limit {
			cur = bound.Fade(color.Alpha())
		} else {
			cur = d.strategy.at(color, dir, d.step, adj.Steps)
		}
	}
}

func (d *Deriver) log() *zerolog.Logger {
	if d.logger != nil {
		return d.logger
	}
	logger := logging.Component("palette")
	return &logger
}

// DeriveAccessibleColor parses both colors and runs AccessibleColor.
func (d *Deriver) DeriveAccessibleColor(color, background string, dir Direction) (string, Adjustment, error) {
	fg, err := colors.Parse(color)
	if err != nil {
		return "", Adjustment{}, err
	}
	bg, err := colors.Parse(background)
	if err != nil {
		return "", Adjustment{}, err
	}
	out, adj := d.AccessibleColor(fg, bg, dir)
	return out.String(), adj, nil
}

// DerivePalette returns primary and secondary colors that meet AA against
// the request background. Colors that already pass are returned unchanged.
func (d *Deriver) DerivePalette(req Request) (Result, error) {
	if req.Mode != ModeDark && req.Mode != ModeLight {
		return Result{}, fmt.Errorf("unknown mode %q", req.Mode)
	}
	bg, err := colors.Parse(req.Background)
	if err != nil {
		return Result{}, fmt.Errorf("background: %w", err)
	}
	primary, err := colors.Parse(req.Primary)
	if err != nil {
		return Result{}, fmt.Errorf("primary: %w", err)
	}
	secondary, err := colors.Parse(req.Secondary)
	if err != nil {
		return Result{}, fmt.Errorf("secondary: %w", err)
	}

	dir := req.Mode.Direction()
	p, padj := d.role(primary, req.Primary, bg, dir)
	s, sadj := d.role(secondary, req.Secondary, bg, dir)

	d.log().Debug().
		Str("mode", string(req.Mode)).
		Str("background", bg.String()).
		Str("primary", p).
		Int("primary_steps", padj.Steps).
		Str("secondary", s).
		Int("secondary_steps", sadj.Steps).
		Msg("palette derived")

	return Result{
		Primary:             p,
		Secondary:           s,
		PrimaryAdjustment:   padj,
		SecondaryAdjustment: sadj,
	}, nil
}

// role keeps passing candidates verbatim so their original spelling survives.
func (d *Deriver) role(candidate colors.Color, raw string, bg colors.Color, dir Direction) (string, Adjustment) {
	scores := colors.Guidelines(bg, candidate)
	if scores.AA {
		return raw, Adjustment{Original: raw, Resolved: true, Ratio: scores.Ratio}
	}
	out, adj := d.AccessibleColor(candidate, bg, dir)
	adj.Original = raw
	return out.String(), adj
}

// DeriveAll derives many palettes concurrently. Results keep input order.
// The first invalid request cancels the remaining work.
func (d *Deriver) DeriveAll(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := d.DerivePalette(req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

var defaultDeriver = New()

// DeriveAccessibleColor runs the default Deriver.
func DeriveAccessibleColor(color, background string, dir Direction) (string, Adjustment, error) {
	return defaultDeriver.DeriveAccessibleColor(color, background, dir)
}

// DerivePalette runs the default Deriver.
func DerivePalette(req Request) (Result, error) {
	return defaultDeriver.DerivePalette(req)
}
