package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the pages of the sketchbook in turning order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		stack, err := loadStack(cfg)
		if err != nil {
			return err
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("%-5s %-14s %-13s %s", "PAGE", "ID", "KIND", "TITLE")))
		for i, sec := range stack.Sections {
			line := fmt.Sprintf("%-5d %-14s %-13s %s", i, sec.ID, sec.Kind, sec.Title)
			if sec.Source != "" && verbose {
				line += dimStyle.Render("  " + sec.Source)
			}
			fmt.Println(line)
		}

		bar := stack.NavBar(cfg.Brand, 1)
		fmt.Println()
		for _, l := range bar.Links {
			fmt.Printf("%s %s -> page %d\n", dimStyle.Render("nav"), l.Label, l.Index)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}
