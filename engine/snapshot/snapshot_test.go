package snapshot

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-bulb/engine/camera"
	"github.com/Carmen-Shannon/oxy-bulb/engine/fractal"
)

var testParams = fractal.Params{
	Epsilon: 0.0026,
	MaxIter: 5,
	Power:   8,
	Bailout: 1.25,
	ColorA:  fractal.DefaultColorA,
	ColorB:  fractal.DefaultColorB,
}

func TestRenderDefaultPose(t *testing.T) {
	s := NewSnapshot(WithSize(16, 12), WithWorkers(4))
	img, err := s.Render(context.Background(), camera.NewCamera().Uniform(), testParams)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
		t.Fatalf("bounds = %v", b)
	}

	center := img.RGBAAt(8, 6)
	if center.R == 0 && center.G == 0 && center.B == 0 {
		t.Fatalf("center pixel is background, expected the fractal")
	}
	corner := img.RGBAAt(0, 0)
	if corner.R != 0 || corner.G != 0 || corner.B != 0 || corner.A != 255 {
		t.Fatalf("corner pixel = %v, expected opaque black", corner)
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewSnapshot(WithSize(8, 8), WithWorkers(2))
	if _, err := s.Render(ctx, camera.NewCamera().Uniform(), testParams); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestSaveWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bulb.png")
	s := NewSnapshot(WithSize(8, 6), WithWorkers(2), WithAntialias(true))
	if err := s.Save(context.Background(), camera.NewCamera().Uniform(), testParams, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestSaveBadPath(t *testing.T) {
	s := NewSnapshot(WithSize(2, 2), WithWorkers(1))
	err := s.Save(context.Background(), camera.NewCamera().Uniform(), testParams, filepath.Join(t.TempDir(), "missing", "x.png"))
	if err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
