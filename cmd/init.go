package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ksk-aiko/ResumeWebsite/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize resumesite configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure resumesite and writes the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
