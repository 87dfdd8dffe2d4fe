package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sketchbook/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize sketchbook configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the portfolio and writes a .sketchbook.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
