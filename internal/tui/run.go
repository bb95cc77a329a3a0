package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/pokerclock/internal/model"
)

// Run shows the board in the alternate screen until the user quits or ctx is
// cancelled. When src also watches for changes, each new revision is sent to
// the board through the program.
func Run(ctx context.Context, cfg Config, src model.ContentSource) error {
	content, err := src.Load()
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	boardModel := NewBoardModel(cfg, content)
	defer boardModel.Close()
	app := NewApp(boardModel, NewReportPage(boardModel))

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	g, gctx := errgroup.WithContext(ctx)
	watchCtx, stopWatch := context.WithCancel(gctx)
	defer stopWatch()

	if w, ok := src.(model.ContentWatcher); ok {
		g.Go(func() error {
			return w.Watch(watchCtx, func(c model.Content) {
				p.Send(ContentMsg{Content: c})
			})
		})
	}

	g.Go(func() error {
		defer stopWatch()
		if _, err := p.Run(); err != nil {
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
				return fmt.Errorf("board requires a real terminal")
			}
			return fmt.Errorf("error running board: %w", err)
		}
		return nil
	})

	return g.Wait()
}
