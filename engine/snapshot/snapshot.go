package snapshot

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/Carmen-Shannon/oxy-bulb/engine/camera"
	"github.com/Carmen-Shannon/oxy-bulb/engine/fractal"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultWidth   = 640
	DefaultHeight  = 480
	DefaultWorkers = 8
)

// supersampleOffsets are the sub-pixel positions used when antialiasing, in pixels from the center.
var supersampleOffsets = [...]float32{-1.0 / 3.0, 0, 1.0 / 3.0}

type snapshotImpl struct {
	mu *sync.Mutex

	width     int
	height    int
	workers   int
	antialias bool
	tuning    fractal.Tuning

	pool worker.DynamicWorkerPool
}

// Snapshot renders the fractal on the CPU with the same ray setup, march and shading as the
// fragment shader. Rows are rendered in parallel on a worker pool; the pool is reused across
// renders.
type Snapshot interface {
	// Render traces one image from the given camera state. The camera's aspect ratio is ignored
	// in favour of the snapshot size.
	//
	// Parameters:
	//   - ctx: cancels the render between rows
	//   - view: eye position and basis, usually Camera.Uniform()
	//   - params: fractal parameters
	//
	// Returns:
	//   - *image.RGBA: the rendered image
	//   - error: ctx.Err() if the render was cancelled
	Render(ctx context.Context, view camera.GPUCameraUniform, params fractal.Params) (*image.RGBA, error)

	// Save renders an image and writes it to path as PNG.
	//
	// Parameters:
	//   - ctx: cancels the render between rows
	//   - view: eye position and basis
	//   - params: fractal parameters
	//   - path: output file
	//
	// Returns:
	//   - error: render or encoding failure
	Save(ctx context.Context, view camera.GPUCameraUniform, params fractal.Params, path string) error

	// Size returns the output image size in pixels.
	Size() (width, height int)
}

var _ Snapshot = &snapshotImpl{}

// NewSnapshot creates a new Snapshot renderer.
//
// Parameters:
//   - options: functional options to configure the renderer
//
// Returns:
//   - Snapshot: the newly created renderer
func NewSnapshot(options ...SnapshotBuilderOption) Snapshot {
	s := &snapshotImpl{
		mu:      &sync.Mutex{},
		width:   DefaultWidth,
		height:  DefaultHeight,
		workers: DefaultWorkers,
		tuning:  fractal.DefaultTuning(),
	}
	for _, option := range options {
		option(s)
	}

	s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	return s
}

func (s *snapshotImpl) Size() (width, height int) {
	return s.width, s.height
}

func (s *snapshotImpl) Render(ctx context.Context, view camera.GPUCameraUniform, params fractal.Params) (*image.RGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	view.Aspect = float32(s.width) / float32(s.height)
	march := params.March(s.tuning)

	// rows write disjoint spans of img.Pix so no further locking is needed
	var wg sync.WaitGroup
	for y := range s.height {
		wg.Add(1)
		row := y
		s.pool.SubmitTask(worker.Task{
			ID: row,
			Do: func() (any, error) {
				defer wg.Done()
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				for x := range s.width {
					img.SetRGBA(x, row, s.pixel(view, params, march, x, row))
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("snapshot render cancelled: %w", err)
	}
	return img, nil
}

func (s *snapshotImpl) Save(ctx context.Context, view camera.GPUCameraUniform, params fractal.Params, path string) error {
	start := time.Now()
	img, err := s.Render(ctx, view, params)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	log.Printf("[Snapshot] wrote %s (%dx%d) in %s", path, s.width, s.height, time.Since(start).Round(time.Millisecond))
	return nil
}

// pixel traces one pixel, averaging a 3x3 grid of sub-pixel rays when antialiasing.
func (s *snapshotImpl) pixel(view camera.GPUCameraUniform, params fractal.Params, march fractal.MarchParams, x, y int) color.RGBA {
	if !s.antialias {
		return toRGBA(s.trace(view, params, march, float32(x)+0.5, float32(y)+0.5))
	}

	var sum mgl32.Vec3
	for _, dy := range supersampleOffsets {
		for _, dx := range supersampleOffsets {
			c := s.trace(view, params, march, float32(x)+0.5+dx, float32(y)+0.5+dy)
			sum = sum.Add(mgl32.Vec3(c.Array()))
		}
	}
	n := float32(len(supersampleOffsets) * len(supersampleOffsets))
	return toRGBA(common.Color{R: sum[0] / n, G: sum[1] / n, B: sum[2] / n})
}

// trace shoots the ray through pixel coordinate (px, py), y growing downwards.
func (s *snapshotImpl) trace(view camera.GPUCameraUniform, params fractal.Params, march fractal.MarchParams, px, py float32) common.Color {
	ndcX := px/float32(s.width)*2 - 1
	ndcY := 1 - py/float32(s.height)*2
	dir := fractal.RayDirection(view.Right, view.Up, view.Forward, view.Aspect, ndcX, ndcY)
	hit := fractal.March(view.Eye, dir, march)
	return fractal.Shade(hit, march.MaxSteps, params.ColorA, params.ColorB)
}

func toRGBA(c common.Color) color.RGBA {
	toByte := func(v float32) uint8 {
		return uint8(common.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.RGBA{R: toByte(c.R), G: toByte(c.G), B: toByte(c.B), A: 255}
}
