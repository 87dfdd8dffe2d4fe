package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sketchbook/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Turn through the sketchbook in the terminal",
	Long: `Opens the page stack in a full-screen terminal view. j/k or the arrow keys
turn one page, w/p/c jump to Work, Process and Connect, q quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		stack, err := loadStack(cfg)
		if err != nil {
			return err
		}
		return tui.Run(tui.Config{
			Stack:      stack,
			Brand:      cfg.Brand,
			Duration:   cfg.TurnDuration(),
			FrameRate:  cfg.FrameRate,
			Thresholds: thresholds(cfg),
		})
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
