package render

import (
	"context"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"

	"github.com/ziadkadry99/sketchbook/internal/book"
	"github.com/ziadkadry99/sketchbook/internal/skeleton"
)

func TestProjectRestingPage(t *testing.T) {
	c := &Canvas{Width: 1280, Height: 800}
	q, ok := c.project(book.SlotTransform{Origin: book.OriginCenter})
	if !ok {
		t.Fatal("resting page should be visible")
	}
	x, y, w, h := c.pageRect()
	want := quad{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i := range want {
		for k := 0; k < 2; k++ {
			if math.Abs(q[i][k]-want[i][k]) > 1e-9 {
				t.Errorf("corner %d = %v, want %v", i, q[i], want[i])
			}
		}
	}
}

func TestProjectHingeStaysPut(t *testing.T) {
	c := &Canvas{Width: 1280, Height: 800}
	x, y, _, h := c.pageRect()

	// Turning forward hinges on the leading (left) edge.
	q, ok := c.project(book.SlotTransform{RotationY: -60, Origin: book.OriginLeading})
	if !ok {
		t.Fatal("page at -60 deg should be visible")
	}
	if math.Abs(q[0][0]-x) > 1e-9 || math.Abs(q[0][1]-y) > 1e-9 || math.Abs(q[3][1]-(y+h)) > 1e-9 {
		t.Errorf("hinge edge moved: %v %v", q[0], q[3])
	}
	// The free edge swings toward the viewer and so grows taller.
	if height := q[2][1] - q[1][1]; height <= h {
		t.Errorf("free edge height %v should exceed %v", height, h)
	}
}

func TestProjectHidesBackface(t *testing.T) {
	c := &Canvas{Width: 1280, Height: 800}
	for _, deg := range []float64{-178, 120, 90} {
		if _, ok := c.project(book.SlotTransform{RotationY: deg}); ok {
			t.Errorf("page at %v deg should show its back", deg)
		}
	}
}

func TestDrawFrame(t *testing.T) {
	c := &Canvas{Width: 320, Height: 200, Palette: DefaultPalette(), Total: 3}
	dc := gg.NewContext(c.Width, c.Height)
	defer dc.Close()

	if err := c.DrawFrame(dc, book.RestFrame(1)); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}
	img := dc.Image()
	centre := img.At(c.Width/2, c.Height/2)
	corner := img.At(1, 1)
	if centre == corner {
		t.Error("page should differ from the background")
	}
}

func TestExportStack(t *testing.T) {
	dir := t.TempDir()
	paths, err := Export(context.Background(), dir, Options{
		Width: 160, Height: 100, Frames: 5, Total: 4, From: 1,
	}, nil)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(paths) != 5 {
		t.Fatalf("wrote %d frames, want 5", len(paths))
	}
	if filepath.Base(paths[4]) != "frame_004.png" {
		t.Errorf("last frame = %s", paths[4])
	}

	f, err := os.Open(paths[2])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 100 {
		t.Errorf("bounds = %v", b)
	}
}

func TestExportSkeleton(t *testing.T) {
	paths, err := Export(context.Background(), t.TempDir(), Options{
		Kind: KindSkeleton, Width: 160, Height: 100, Frames: 3, Total: 5,
	}, nil)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(paths) != 3 {
		t.Errorf("wrote %d frames, want 3", len(paths))
	}
}

func TestExportValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"single page", Options{Total: 1}},
		{"too few frames", Options{Total: 3, Frames: 1}},
		{"unknown renderer", Options{Total: 3, Kind: "watercolor"}},
		{"start outside stack", Options{Total: 3, From: 3}},
		{"prev from first page", Options{Total: 3, Direction: book.DirectionPrev}},
		{"next from last page", Options{Total: 3, From: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Export(context.Background(), t.TempDir(), tt.opts, nil); err == nil {
				t.Error("expected error")
			}
		})
	}

	_, err := Export(context.Background(), t.TempDir(), Options{Total: 3, From: 2}, nil)
	if !errors.Is(err, book.ErrAtBoundary) {
		t.Errorf("err = %v, want ErrAtBoundary", err)
	}
}

func TestExportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	paths, err := Export(ctx, t.TempDir(), Options{Width: 64, Height: 64, Total: 2}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(paths) != 0 {
		t.Errorf("wrote %d frames after cancel", len(paths))
	}
}

func TestDrawBook(t *testing.T) {
	c := &Canvas{Width: 200, Height: 120, Palette: DefaultPalette()}
	dc := gg.NewContext(c.Width, c.Height)
	defer dc.Close()

	if err := c.DrawBook(dc, skeleton.NewBook(4)); err != nil {
		t.Fatalf("DrawBook: %v", err)
	}
}
