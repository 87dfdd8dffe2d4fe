package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sketchbook/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent page turns and the most visited pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		stack, err := loadStack(cfg)
		if err != nil {
			return err
		}
		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		store := history.NewStore(database)
		ctx := context.Background()
		limit, _ := cmd.Flags().GetInt("limit")
		session, _ := cmd.Flags().GetString("session")

		events, err := store.Query(ctx, history.QueryFilter{SessionID: session, Limit: limit})
		if err != nil {
			return err
		}
		fmt.Println(headerStyle.Render(fmt.Sprintf("%-20s %-10s %-9s %s", "TIME", "SESSION", "KIND", "TURN")))
		for _, ev := range events {
			fmt.Printf("%-20s %-10s %-9s %s -> %s\n",
				ev.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				shortID(ev.SessionID), ev.Kind,
				pageName(stack.Sections, ev.From), pageName(stack.Sections, ev.To))
		}

		counts, err := store.PageCounts(ctx)
		if err != nil {
			return err
		}
		if len(counts) > 0 {
			fmt.Println()
			fmt.Println(headerStyle.Render("ARRIVALS"))
			for _, c := range counts {
				fmt.Printf("%-14s %d\n", pageName(stack.Sections, c.Index), c.Count)
			}
		}
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete page-turn history older than the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		days, _ := cmd.Flags().GetInt("days")
		if !cmd.Flags().Changed("days") {
			days = cfg.HistoryDays
		}
		if days <= 0 {
			return fmt.Errorf("retention must be at least one day")
		}
		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		cutoff := time.Now().UTC().AddDate(0, 0, -days)
		n, err := history.NewStore(database).DeleteBefore(context.Background(), cutoff)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d events older than %d days\n", n, days)
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of events to show")
	historyCmd.Flags().String("session", "", "only show one session")
	historyPruneCmd.Flags().Int("days", 0, "retention in days (defaults to history_days)")
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}
