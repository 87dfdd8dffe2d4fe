package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sketchbook/internal/book"
	"github.com/ziadkadry99/sketchbook/internal/progress"
	"github.com/ziadkadry99/sketchbook/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one page turn as PNG frames",
	Long: `Draws a single page turn frame by frame into numbered PNG files. The stack
renderer shows flat pages rotating about the spine; the skeleton renderer
shows bending pages from above.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("output", "", "override output directory (defaults to render.output_dir)")
	renderCmd.Flags().String("renderer", "", "stack or skeleton (defaults to renderer)")
	renderCmd.Flags().Int("from", 0, "page the turn starts from")
	renderCmd.Flags().Bool("back", false, "turn to the previous page instead of the next")
	renderCmd.Flags().Int("frames", 0, "number of frames (defaults to render.frames)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
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
		outputDir = cfg.Render.OutputDir
	}
	kind := render.Kind(cfg.Renderer)
	if r, _ := cmd.Flags().GetString("renderer"); r != "" {
		kind = render.Kind(r)
	}
	frames := cfg.Render.Frames
	if f, _ := cmd.Flags().GetInt("frames"); f > 0 {
		frames = f
	}
	from, _ := cmd.Flags().GetInt("from")
	dir := book.DirectionNext
	if back, _ := cmd.Flags().GetBool("back"); back {
		dir = book.DirectionPrev
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	paths, err := render.Export(ctx, outputDir, render.Options{
		Kind:      kind,
		Width:     cfg.Render.Width,
		Height:    cfg.Render.Height,
		Frames:    frames,
		Duration:  cfg.TurnDuration(),
		Total:     stack.Len(),
		From:      from,
		Direction: dir,
		Dark:      darkPages(stack),
	}, progress.NewReporter("Rendering frames"))
	if err != nil {
		return fmt.Errorf("rendering frames: %w", err)
	}
	fmt.Printf("Rendered %d %s frames to %s\n", len(paths), kind, outputDir)
	return nil
}
