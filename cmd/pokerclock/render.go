package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/pokerclock/internal/board"
	"github.com/tinytelemetry/pokerclock/internal/fit"
	"github.com/tinytelemetry/pokerclock/internal/model"
	"github.com/tinytelemetry/pokerclock/internal/raster"
	"github.com/tinytelemetry/pokerclock/internal/svgout"
	"github.com/tinytelemetry/pokerclock/internal/ticker"
)

type renderFlags struct {
	format   string
	out      string
	watch    bool
	noLabels bool
}

// boardRenderer is satisfied by the svg and png hosts.
type boardRenderer interface {
	Render(w io.Writer, b board.Board, values map[string]string) error
}

func newRenderCmd(gf *globalFlags) *cobra.Command {
	var rf renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the board as an SVG document or PNG image",
		Example: `  pokerclock render --format svg --out board.svg
  pokerclock render -f tourney.yaml --format png --out board.png --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRenderCmd(cmd, *gf, rf)
		},
	}
	cmd.Flags().StringVar(&rf.format, "format", "svg", "Output format: svg or png")
	cmd.Flags().StringVarP(&rf.out, "out", "o", "-", "Output file, - for stdout")
	cmd.Flags().BoolVarP(&rf.watch, "watch", "w", false, "Keep tickers running and rewrite the output on every change")
	cmd.Flags().BoolVar(&rf.noLabels, "no-labels", false, "Hide panel labels")
	return cmd
}

func runRenderCmd(cmd *cobra.Command, gf globalFlags, rf renderFlags) error {
	if rf.watch && rf.out == "-" {
		return fmt.Errorf("--watch needs --out to name a file")
	}

	cfg, err := resolveConfig(gf)
	if err != nil {
		return err
	}
	logger, cleanup := newLogger(false, "", gf.verbose)
	defer cleanup()

	face, err := fit.LoadFace(cfg.Font, cfg.FontSize)
	if err != nil {
		return fmt.Errorf("loading font: %w", err)
	}
	style, err := ticker.ParseClockStyle(cfg.ClockStyle)
	if err != nil {
		return err
	}
	renderer, err := newBoardRenderer(rf, cfg, face)
	if err != nil {
		return err
	}

	src := contentSource(cfg, logger)
	c, err := src.Load()
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	job := &renderJob{
		renderer: renderer,
		layout:   cfg.layout(),
		style:    style,
		interval: cfg.TickInterval,
		clock:    ticker.SystemClock{},
		log:      logrus.NewEntry(logger).WithField("component", "render"),
		write:    outputWriter(rf.out, cmd.OutOrStdout()),
	}

	if !rf.watch {
		return job.once(c)
	}

	ctx, stop := signalContext(cmd.Context(), logger)
	defer stop()
	return job.watch(ctx, src, c)
}

func newBoardRenderer(rf renderFlags, cfg appConfig, face *fit.Face) (boardRenderer, error) {
	labelHeight := cfg.RenderHeight / model.RenderLabelDivisor
	gap := cfg.Gap * model.RenderGapPixels
	if rf.noLabels {
		labelHeight = 0
	}
	switch strings.ToLower(rf.format) {
	case "svg":
		return svgout.NewRenderer(face, svgout.Options{
			Width:       cfg.RenderWidth,
			Height:      cfg.RenderHeight,
			Gap:         gap,
			Padding:     gap,
			LabelHeight: labelHeight,
		}), nil
	case "png":
		return raster.NewRenderer(face, raster.Options{
			Width:       cfg.RenderWidth,
			Height:      cfg.RenderHeight,
			Gap:         gap,
			Padding:     gap,
			LabelHeight: labelHeight,
		})
	}
	return nil, fmt.Errorf("unknown format %q (want svg or png)", rf.format)
}

// outputWriter returns a function that replaces the output with data.
// Files are written through a temporary sibling and renamed so viewers never
// see a partial document.
func outputWriter(out string, stdout io.Writer) func([]byte) error {
	if out == "-" || out == "" {
		return func(data []byte) error {
			_, err := stdout.Write(data)
			return err
		}
	}
	return func(data []byte) error {
		tmp, err := os.CreateTemp(filepath.Dir(out), "."+filepath.Base(out)+".*")
		if err != nil {
			return fmt.Errorf("creating temp output: %w", err)
		}
		if _, err := tmp.Write(data); err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
			return fmt.Errorf("writing %s: %w", out, err)
		}
		if err := tmp.Close(); err != nil {
			_ = os.Remove(tmp.Name())
			return fmt.Errorf("writing %s: %w", out, err)
		}
		if err := os.Rename(tmp.Name(), out); err != nil {
			_ = os.Remove(tmp.Name())
			return fmt.Errorf("replacing %s: %w", out, err)
		}
		return nil
	}
}

// renderJob composes content and writes it through a renderer, either once
// or for as long as its tickers run.
type renderJob struct {
	renderer boardRenderer
	layout   model.Layout
	style    ticker.ClockStyle
	interval time.Duration
	clock    ticker.Clock
	log      *logrus.Entry
	write    func([]byte) error
}

func (j *renderJob) compose(c model.Content) (board.Board, error) {
	grid, err := board.ResolveLayout(c, j.layout)
	if err != nil {
		return board.Board{}, fmt.Errorf("parsing layout: %w", err)
	}
	b, rep := board.Compose(c, grid)
	board.LogReport(j.log, rep)
	return b, nil
}

// sample returns the current value of every ticker panel.
func (j *renderJob) sample(b board.Board) map[string]string {
	now := j.clock.Now()
	values := make(map[string]string)
	for _, p := range b.Panels {
		if p.Ticker != nil {
			values[p.Key] = ticker.Format(*p.Ticker, j.style, now)
		}
	}
	return values
}

func (j *renderJob) flush(b board.Board, values map[string]string) error {
	var buf bytes.Buffer
	if err := j.renderer.Render(&buf, b, values); err != nil {
		return err
	}
	return j.write(buf.Bytes())
}

func (j *renderJob) once(c model.Content) error {
	b, err := j.compose(c)
	if err != nil {
		return err
	}
	return j.flush(b, j.sample(b))
}

// watch rewrites the output whenever a ticker value or the content changes.
func (j *renderJob) watch(ctx context.Context, src model.ContentSource, c model.Content) error {
	g, gctx := errgroup.WithContext(ctx)
	revisions := make(chan model.Content, 1)

	if w, ok := src.(model.ContentWatcher); ok {
		g.Go(func() error {
			return w.Watch(gctx, func(next model.Content) {
				select {
				case revisions <- next:
				case <-gctx.Done():
				}
			})
		})
	}

	g.Go(func() error {
		current := c
		for {
			next, err := j.cycle(gctx, current, revisions)
			if err != nil || next == nil {
				return err
			}
			current = *next
		}
	})

	return g.Wait()
}

// errRevision stops a cycle when new content arrives.
var errRevision = errors.New("content revised")

type tickerUpdate struct {
	key   string
	value string
}

// cycle runs one ticker per ticker panel until ctx is done or a new content
// revision arrives, which it returns.
func (j *renderJob) cycle(ctx context.Context, c model.Content, revisions <-chan model.Content) (*model.Content, error) {
	b, err := j.compose(c)
	if err != nil {
		// A broken layout keeps the last written output.
		j.log.WithError(err).Error("invalid layout; waiting for the next revision")
		select {
		case next := <-revisions:
			return &next, nil
		case <-ctx.Done():
			return nil, nil
		}
	}

	values := j.sample(b)
	if err := j.flush(b, values); err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	updates := make(chan tickerUpdate)
	for _, p := range b.Panels {
		if p.Ticker == nil {
			continue
		}
		key := p.Key
		tk := ticker.New(*p.Ticker,
			ticker.WithInterval(j.interval),
			ticker.WithClock(j.clock),
			ticker.WithClockStyle(j.style),
		)
		g.Go(func() error {
			return tk.Run(gctx, func(v string) {
				select {
				case updates <- tickerUpdate{key: key, value: v}:
				case <-gctx.Done():
				}
			})
		})
	}

	var next *model.Content
	g.Go(func() error {
		for {
			select {
			case u := <-updates:
				if values[u.key] == u.value {
					continue
				}
				values[u.key] = u.value
				if err := j.flush(b, values); err != nil {
					return err
				}
			case rev := <-revisions:
				next = &rev
				return errRevision
			case <-gctx.Done():
				return nil
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errRevision) {
		return nil, err
	}
	return next, nil
}
