package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sketchbook/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sketchbook",
	Short: "An artist's portfolio that turns like a sketchbook",
	Long: `Sketchbook serves a portfolio as a stack of full-screen pages that turn
like the leaves of a book. The wheel, arrow keys or a swipe flip one page;
the navigation bar jumps straight to a section. Commission requests and
page-turn history are kept in a local SQLite database.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
