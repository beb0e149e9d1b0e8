package config

import (
	"slices"

	"github.com/ksk-aiko/ResumeWebsite/internal/partials"
	"github.com/ksk-aiko/ResumeWebsite/internal/portfolio"
)

// DefaultInclude selects the files rendered as pages.
var DefaultInclude = []string{
	"**/*.html",
	"**/*.md",
}

// DefaultExclude keeps fragments and static assets out of the page set.
var DefaultExclude = []string{
	"partials/**",
	"assets/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteTitle: "Resume",
		Lang:      "ja",
		PublicDir: "public",
		OutputDir: "dist",
		Include:   slices.Clone(DefaultInclude),
		Exclude:   slices.Clone(DefaultExclude),
		LogFormat: "console",
		Partials: PartialsConfig{
			Dir:            partials.DefaultDir,
			MaxConcurrency: 8,
		},
		Portfolio: PortfolioConfig{
			Path:         portfolio.DefaultPath,
			ErrorMessage: portfolio.DefaultErrorMessage,
			DateLayout:   portfolio.DefaultDateLayout,
		},
		Server: ServerConfig{
			Port:           8080,
			TimeoutSeconds: 60,
		},
	}
}
