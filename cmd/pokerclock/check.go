package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tinytelemetry/pokerclock/internal/board"
)

// errCheckFailed is returned when the content does not fit the layout.
var errCheckFailed = errors.New("board check failed")

func newCheckCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate content against the layout",
		Long: `check loads the content and layout the board would use and reports every
content key without an area, every area without content, and every invalid
entry. It exits non-zero when anything is wrong; warnings alone pass.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheckCmd(cmd, *gf)
		},
	}
}

func runCheckCmd(cmd *cobra.Command, gf globalFlags) error {
	cfg, err := resolveConfig(gf)
	if err != nil {
		return err
	}
	logger, cleanup := newLogger(false, "", gf.verbose)
	defer cleanup()

	c, err := contentSource(cfg, logger).Load()
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	grid, err := board.ResolveLayout(c, cfg.layout())
	if err != nil {
		return fmt.Errorf("parsing layout: %w", err)
	}

	rep := board.Validate(c, grid)
	if !printReport(cmd.OutOrStdout(), rep, len(c.Entries), grid) {
		return errCheckFailed
	}
	return nil
}

// printReport writes rep to w and reports whether the board passed.
func printReport(w io.Writer, rep board.Report, entries int, grid board.Grid) bool {
	err := rep.Err()
	if err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(w, "error: %s\n", line)
		}
	}
	for _, warning := range rep.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	if err != nil {
		return false
	}
	fmt.Fprintf(w, "ok: %d entries on a %dx%d grid\n", entries, grid.Rows, grid.Cols)
	return true
}
