package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tinytelemetry/pokerclock/internal/fit"
	"github.com/tinytelemetry/pokerclock/internal/ticker"
	"github.com/tinytelemetry/pokerclock/internal/tui"
)

func newBoardCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show the board in the terminal (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBoardCmd(cmd, *gf)
		},
	}
}

func runBoardCmd(cmd *cobra.Command, gf globalFlags) error {
	cfg, err := resolveConfig(gf)
	if err != nil {
		return err
	}

	logger, cleanup := newLogger(true, cfg.LogFile, gf.verbose)
	defer cleanup()

	if dir, err := configDir(); err == nil {
		if err := tui.InitializeSkin(cfg.Skin, dir); err != nil {
			logger.WithError(err).Warn("skin not loaded; using default")
		}
	}

	face, err := fit.LoadFace(cfg.Font, cfg.FontSize)
	if err != nil {
		return fmt.Errorf("loading font: %w", err)
	}
	style, err := ticker.ParseClockStyle(cfg.ClockStyle)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context(), logger)
	defer stop()

	logger.WithFields(logrus.Fields{
		"content": cfg.ContentFile,
		"skin":    cfg.Skin,
		"font":    face.Name(),
	}).Info("board starting")

	return tui.Run(ctx, tui.Config{
		Face:         face,
		Layout:       cfg.layout(),
		Skin:         cfg.Skin,
		TickInterval: cfg.TickInterval,
		ClockStyle:   style,
		Gap:          cfg.Gap,
		Logger:       logrus.NewEntry(logger),
	}, contentSource(cfg, logger))
}
