package cmd

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sketchbook/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Export a static copy of the sketchbook",
	Long: `Writes a self-contained copy of the page (index.html, pages.json and assets)
that turns pages locally without a server session.`,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().String("output", "", "override output directory (defaults to {data_dir}/site)")
	siteCmd.Flags().Bool("serve", false, "start a local HTTP server after exporting")
	siteCmd.Flags().Int("port", 8080, "port for the local preview server")
	siteCmd.Flags().Bool("open", false, "open browser automatically when serving")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	stack, err := loadStack(cfg)
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = filepath.Join(cfg.DataDir, "site")
	}

	s, err := site.New(site.Config{
		Title:          cfg.Title,
		Artist:         cfg.Artist,
		Brand:          cfg.Brand,
		AssetsDir:      cfg.AssetsDir(),
		TurnDuration:   cfg.TurnDuration(),
		WheelThreshold: cfg.WheelThreshold,
		SwipeThreshold: cfg.SwipeThreshold,
	}, stack)
	if err != nil {
		return err
	}
	n, err := s.Export(outputDir)
	if err != nil {
		return fmt.Errorf("exporting site: %w", err)
	}
	fmt.Printf("Static site exported: %s (%d pages, %d files)\n", outputDir, stack.Len(), n)

	serve, _ := cmd.Flags().GetBool("serve")
	if !serve {
		return nil
	}
	port, _ := cmd.Flags().GetInt("port")
	url := fmt.Sprintf("http://localhost:%d", port)
	if open, _ := cmd.Flags().GetBool("open"); open {
		site.OpenBrowser(url)
	}
	fmt.Printf("Serving at %s (press Ctrl+C to stop)\n", url)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), http.FileServer(http.Dir(outputDir)))
}
