package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ksk-aiko/ResumeWebsite/internal/config"
	"github.com/ksk-aiko/ResumeWebsite/internal/fetch"
	"github.com/ksk-aiko/ResumeWebsite/internal/logging"
	"github.com/ksk-aiko/ResumeWebsite/internal/portfolio"
	"github.com/ksk-aiko/ResumeWebsite/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `resumesite init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the logger for a command run.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogFormat, verbose)
}

// newFetcher reads partials and the portfolio from the configured origin
// when one is set, otherwise from the public directory.
func newFetcher(cfg *config.Config) fetch.Fetcher {
	if cfg.Origin != "" {
		return fetch.NewHTTPFetcher(cfg.Origin)
	}
	return fetch.NewDirFetcher(cfg.PublicDir)
}

// newRenderer creates the page renderer shared by build and serve.
func newRenderer(cfg *config.Config, logger *zap.Logger) *site.Renderer {
	return site.NewRenderer(newFetcher(cfg), site.Options{
		SiteTitle:      cfg.SiteTitle,
		Lang:           cfg.Lang,
		PartialsDir:    cfg.Partials.Dir,
		MaxConcurrency: cfg.Partials.MaxConcurrency,
		Portfolio: portfolio.Options{
			Path:         cfg.Portfolio.Path,
			ErrorMessage: cfg.Portfolio.ErrorMessage,
			DateLayout:   cfg.Portfolio.DateLayout,
		},
	}, logger)
}
