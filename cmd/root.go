package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ksk-aiko/ResumeWebsite/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "resumesite",
	Short: "Render and serve a personal resume and portfolio website",
	Long: `resumesite renders a small static website: shared HTML partials are
spliced into every page, the navigation link for the current page is
highlighted, and the portfolio page is filled from assets/portfolio.json.
Pages can be pre-rendered with "build" or rendered per request with "serve".`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
