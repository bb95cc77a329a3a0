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
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytelemetry/pokerclock/internal/content"
	"github.com/tinytelemetry/pokerclock/internal/fit"
	"github.com/tinytelemetry/pokerclock/internal/model"
	"github.com/tinytelemetry/pokerclock/internal/svgout"
	"github.com/tinytelemetry/pokerclock/internal/ticker"
)

const mismatched = `
layout:
  - "title clock"
  - "left  orphan"
entries:
  - key: title
    kind: title
    text: Friday Turbo
  - key: clock
    kind: ticker
    ticker:
      mode: clock
  - key: left
    label: Left
    text: "9"
  - key: stray
    label: Stray
    text: "1"
`

// execute runs the root command with args and a config file that does not exist.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yml")))
	err := root.Execute()
	return out.String(), err
}

func TestCheck_DefaultBoardPasses(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 18 entries on a 7x5 grid")
}

func TestCheck_ReportsMismatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(mismatched), 0o644))

	out, err := execute(t, "check", "-f", path)
	require.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, `content key has no layout area: "stray"`)
	assert.Contains(t, out, `layout area has no content: "orphan"`)
	assert.NotContains(t, out, "ok:")
}

func TestCheck_InvalidContentFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries: []\n"), 0o644))

	_, err := execute(t, "check", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading content")
}

func TestRender_SVGToStdout(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "render", "--format", "svg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `preserveAspectRatio="xMidYMid meet"`)
	assert.Contains(t, out, `id="remainingRoundTime"`)
}

func TestRender_RejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "render", "--format", "gif")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestRender_WatchNeedsFile(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "render", "--watch")
	require.Error(t, err)
}

func TestOutputWriter_ReplacesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "board.svg")
	write := outputWriter(path, io.Discard)
	require.NoError(t, write([]byte("first")))
	require.NoError(t, write([]byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// steppingClock advances one second per reading.
type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestJob(t *testing.T, writes chan<- string) *renderJob {
	t.Helper()
	face, err := fit.LoadFace("", 48)
	require.NoError(t, err)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &renderJob{
		renderer: svgout.NewRenderer(face, svgout.Options{Width: 640, Height: 360}),
		style:    ticker.Clock24h,
		interval: model.MinTickInterval,
		clock:    &steppingClock{now: time.Date(2026, 10, 17, 16, 3, 8, 0, time.UTC)},
		log:      logrus.NewEntry(logger),
		write: func(data []byte) error {
			select {
			case writes <- string(data):
			default:
			}
			return nil
		},
	}
}

func TestRenderJob_CycleRewritesOnTick(t *testing.T) {
	t.Parallel()

	writes := make(chan string, 16)
	job := newTestJob(t, writes)
	c := content.Default(time.Date(2026, 10, 17, 16, 0, 0, 0, time.UTC))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		next, err := job.cycle(ctx, c, nil)
		if next != nil {
			err = errors.New("unexpected revision")
		}
		done <- err
	}()

	first := <-writes
	select {
	case second := <-writes:
		assert.NotEqual(t, first, second)
	case <-time.After(5 * time.Second):
		t.Fatalf("no rewrite after a tick")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("cycle did not stop")
	}
}

func TestRenderJob_CycleReturnsRevision(t *testing.T) {
	t.Parallel()

	writes := make(chan string, 16)
	job := newTestJob(t, writes)
	now := time.Date(2026, 10, 17, 16, 0, 0, 0, time.UTC)

	revisions := make(chan model.Content, 1)
	revised := content.Default(now)
	revised.Entries[0].Text = "Revised"
	revisions <- revised

	next, err := job.cycle(context.Background(), content.Default(now), revisions)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "Revised", next.Entries[0].Text)
}

func TestRenderJob_ComposeSkipsUnplaced(t *testing.T) {
	t.Parallel()

	job := newTestJob(t, make(chan string, 1))
	c, err := content.Parse([]byte(mismatched), time.Now())
	require.NoError(t, err)

	b, err := job.compose(c)
	require.NoError(t, err)
	_, ok := b.Panel("stray")
	assert.False(t, ok)
}

func TestNewBoardRenderer_ScalesGapAndLabels(t *testing.T) {
	t.Parallel()

	face, err := fit.LoadFace("", 48)
	require.NoError(t, err)
	c, err := content.Parse([]byte(mismatched), time.Now())
	require.NoError(t, err)
	job := newTestJob(t, make(chan string, 1))
	b, err := job.compose(c)
	require.NoError(t, err)

	cfg := appConfig{RenderWidth: 720, RenderHeight: 360, Gap: 2}
	r, err := newBoardRenderer(renderFlags{format: "svg"}, cfg, face)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, b, nil))
	out := buf.String()
	pad := cfg.Gap * model.RenderGapPixels
	label := cfg.RenderHeight / model.RenderLabelDivisor
	assert.Contains(t, out, fmt.Sprintf(`<rect x="%d" y="%d"`, pad, pad))
	assert.Contains(t, out, fmt.Sprintf(`height="%d" fill="%s"`, label, model.DefaultPalette.LabelBG))

	r, err = newBoardRenderer(renderFlags{format: "svg", noLabels: true}, cfg, face)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, r.Render(&buf, b, nil))
	assert.NotContains(t, buf.String(), model.DefaultPalette.LabelBG)
}
