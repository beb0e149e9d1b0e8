package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ksk-aiko/ResumeWebsite/internal/progress"
	"github.com/ksk-aiko/ResumeWebsite/internal/site"
	"github.com/ksk-aiko/ResumeWebsite/internal/watch"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Pre-render the site into the output directory",
	Long: `Renders every page in the public directory (partials injected, navigation
highlighted, portfolio filled in) and copies the remaining files to the
output directory.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	buildCmd.Flags().Bool("watch", false, "rebuild whenever the public directory changes")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}

	if info, err := os.Stat(cfg.PublicDir); err != nil || !info.IsDir() {
		return fmt.Errorf("public directory not found at %s", cfg.PublicDir)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	generator := site.NewSiteGenerator(cfg.PublicDir, cfg.OutputDir, newRenderer(cfg, logger))
	generator.Include = cfg.Include
	generator.Exclude = cfg.Exclude
	generator.Reporter = progress.NewReporter(cmd.ErrOrStderr())
	generator.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := generator.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}
	fmt.Printf("Site generated: %s (%d pages, %d files copied)\n", cfg.OutputDir, res.Pages, res.Copied)

	watchFlag, _ := cmd.Flags().GetBool("watch")
	if !watchFlag {
		return nil
	}

	outAbs, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return err
	}
	rootAbs, err := filepath.Abs(cfg.PublicDir)
	if err != nil {
		return err
	}
	w := &watch.Watcher{
		Root:   rootAbs,
		Ignore: []string{outAbs},
		Logger: logger,
	}

	fmt.Printf("Watching %s for changes. Press Ctrl+C to stop.\n", cfg.PublicDir)
	return w.Run(ctx, func(ctx context.Context) {
		res, err := generator.Generate(ctx)
		if err != nil {
			logger.Error("rebuild failed", zap.Error(err))
			return
		}
		logger.Info("rebuilt", zap.Int("pages", res.Pages), zap.Int("copied", res.Copied))
	})
}
