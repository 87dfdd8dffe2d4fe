package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"

	"github.com/ziadkadry99/sketchbook/internal/book"
	"github.com/ziadkadry99/sketchbook/internal/progress"
	"github.com/ziadkadry99/sketchbook/internal/skeleton"
)

// Defaults for Options fields left zero.
const (
	DefaultWidth  = 1280
	DefaultHeight = 800
	DefaultFrames = 24
)

// skeletonStep is the simulation step of the skeletal book; frames are
// sampled every other step.
const skeletonStep = time.Second / 60

// preRoll lets the skeletal book settle on the starting page before the
// turn begins.
const preRoll = 2 * time.Second

// Options describe one exported page turn.
type Options struct {
	Kind      Kind
	Width     int
	Height    int
	Frames    int
	Duration  time.Duration
	Total     int
	From      int
	Direction book.Direction
	Dark      map[int]bool
	Palette   Palette
}

func (o *Options) applyDefaults() {
	if o.Kind == "" {
		o.Kind = KindStack
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Frames <= 0 {
		o.Frames = DefaultFrames
	}
	if o.Duration <= 0 {
		o.Duration = book.DefaultTurnDuration
	}
	if o.Direction == book.DirectionNone {
		o.Direction = book.DirectionNext
	}
	if o.Palette == (Palette{}) {
		o.Palette = DefaultPalette()
	}
}

func (o Options) validate() error {
	if o.Kind != KindStack && o.Kind != KindSkeleton {
		return fmt.Errorf("unknown renderer %q", o.Kind)
	}
	if o.Frames < 2 {
		return fmt.Errorf("need at least 2 frames, got %d", o.Frames)
	}
	if o.Total < 2 {
		return fmt.Errorf("a page turn needs at least 2 pages, got %d", o.Total)
	}
	if o.From < 0 || o.From >= o.Total {
		return fmt.Errorf("start page %d outside stack of %d", o.From, o.Total)
	}
	if o.From+o.Direction.Step() < 0 || o.From+o.Direction.Step() >= o.Total {
		return fmt.Errorf("cannot turn %s from page %d: %w", o.Direction, o.From, book.ErrAtBoundary)
	}
	return nil
}

// Export renders one page turn into dir as numbered PNG frames and returns
// the written paths.
func Export(ctx context.Context, dir string, opts Options, rep progress.Reporter) ([]string, error) {
	opts.applyDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if rep == nil {
		rep = progress.Nop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	nav, err := book.NewNavigator(opts.Total)
	if err != nil {
		return nil, err
	}
	start := time.Unix(0, 0)
	clock := start
	now := func() time.Time { return clock }
	engine := book.NewEngine(nav, book.WithDuration(opts.Duration), book.WithClock(now))
	defer engine.Close()

	canvas := &Canvas{Width: opts.Width, Height: opts.Height, Palette: opts.Palette, Dark: opts.Dark, Total: opts.Total}
	dc := gg.NewContext(opts.Width, opts.Height)
	defer dc.Close()

	if opts.From > 0 {
		if err := nav.JumpTo(opts.From); err != nil {
			return nil, err
		}
	}

	var (
		sheets  *skeleton.Book
		simTime time.Time
	)
	if opts.Kind == KindSkeleton {
		sheets = skeleton.NewBook(opts.Total)
		cancel := sheets.Follow(nav, now)
		defer cancel()
		for simTime = start; simTime.Sub(start) < preRoll; simTime = simTime.Add(skeletonStep) {
			clock = simTime
			sheets.Update(simTime)
		}
		start = simTime
		clock = start
	}

	if opts.Direction == book.DirectionNext {
		err = nav.Next()
	} else {
		err = nav.Prev()
	}
	if err != nil {
		return nil, fmt.Errorf("starting turn: %w", err)
	}

	rep.Start(opts.Frames)
	defer rep.Finish()

	paths := make([]string, 0, opts.Frames)
	for i := 0; i < opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return paths, err
		}

		var drawErr error
		switch opts.Kind {
		case KindStack:
			clock = start.Add(opts.Duration * time.Duration(i) / time.Duration(opts.Frames-1))
			f, ok := engine.Advance(clock)
			if !ok {
				f = engine.Frame()
			}
			drawErr = canvas.DrawFrame(dc, f)
		case KindSkeleton:
			target := start.Add(2 * skeletonStep * time.Duration(i))
			for ; !simTime.After(target); simTime = simTime.Add(skeletonStep) {
				clock = simTime
				engine.Advance(simTime)
				sheets.Update(simTime)
			}
			drawErr = canvas.DrawBook(dc, sheets)
		}
		if drawErr != nil {
			return paths, fmt.Errorf("frame %d: %w", i, drawErr)
		}

		name := fmt.Sprintf("frame_%03d.png", i)
		path := filepath.Join(dir, name)
		if err := writePNG(dc, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
		rep.Update(i+1, name)
	}
	return paths, nil
}

func writePNG(dc *gg.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := dc.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
