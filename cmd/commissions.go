package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sketchbook/internal/commission"
)

var commissionsCmd = &cobra.Command{
	Use:   "commissions",
	Short: "List commission requests, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		reqs, err := commission.NewStore(database).List(context.Background(), limit)
		if err != nil {
			return err
		}
		if len(reqs) == 0 {
			fmt.Println("No commission requests yet.")
			return nil
		}
		for _, r := range reqs {
			rush := ""
			if r.Rush {
				rush = " (rush)"
			}
			fmt.Println(headerStyle.Render(fmt.Sprintf("%s  %s <%s>", r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Name, r.Email)))
			if q := commission.Quote(r); q > 0 {
				fmt.Printf("  %s%s, quote from $%d\n", r.ProjectType, rush, q/100)
			} else {
				fmt.Printf("  %s%s, no listed price\n", r.ProjectType, rush)
			}
			if verbose && r.Message != "" {
				fmt.Println(dimStyle.Render("  " + r.Message))
			}
		}
		return nil
	},
}

func init() {
	commissionsCmd.Flags().Int("limit", 50, "number of requests to show")
	rootCmd.AddCommand(commissionsCmd)
}
