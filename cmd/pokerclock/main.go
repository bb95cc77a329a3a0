package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tinytelemetry/pokerclock/internal/content"
	"github.com/tinytelemetry/pokerclock/internal/model"
)

// Version information (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = runtime.Version()
)

// globalFlags are the persistent flags every command reads.
type globalFlags struct {
	configPath  string
	contentFile string
	skin        string
	verbose     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var gf globalFlags

	root := &cobra.Command{
		Use:   "pokerclock",
		Short: "Tournament clock board for terminals, SVG and PNG",
		Long: `pokerclock shows a poker tournament board: named stat panels placed on a
grid, each value scaled to fill its panel, with live clocks and countdowns.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBoardCmd(cmd, gf)
		},
	}

	root.PersistentFlags().StringVar(&gf.configPath, "config", "", "Path to config file (default ~/.config/pokerclock/config.yml)")
	root.PersistentFlags().StringVarP(&gf.contentFile, "content", "f", "", "Content YAML file; watched for changes (default built-in board)")
	root.PersistentFlags().StringVar(&gf.skin, "skin", "", "Terminal skin name")
	root.PersistentFlags().BoolVarP(&gf.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newBoardCmd(&gf), newRenderCmd(&gf), newCheckCmd(&gf))

	root.Version = version
	root.Annotations = map[string]string{"commit": commit, "buildTime": buildTime, "goVersion": goVersion}
	root.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\nbuilt: %s\\ngo: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"buildTime\") (index .Annotations \"goVersion\")}}")

	return root
}

// resolveConfig loads the config file and applies flag overrides.
func resolveConfig(gf globalFlags) (appConfig, error) {
	cfg, err := loadConfig(gf.configPath)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	if gf.contentFile != "" {
		cfg.ContentFile = gf.contentFile
	}
	if gf.skin != "" {
		cfg.Skin = gf.skin
	}
	return cfg, nil
}

// contentSource returns a watched file source when a content file is set and
// the built-in board otherwise.
func contentSource(cfg appConfig, log *logrus.Logger) model.ContentSource {
	if cfg.ContentFile == "" {
		return content.NewStaticSource(content.Default(time.Now()))
	}
	return content.NewFileSource(cfg.ContentFile, content.WithLogger(logrus.NewEntry(log)))
}

// signalContext is cancelled on SIGINT or SIGTERM. A second signal exits.
func signalContext(parent context.Context, log *logrus.Logger) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-done:
			return
		}
		log.Info("shutting down (signal again to force)")
		cancel()

		select {
		case <-sigCh:
			log.Warn("forced shutdown")
			os.Exit(1)
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		close(done)
		cancel()
	}
}
