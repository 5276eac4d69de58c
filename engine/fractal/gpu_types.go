package fractal

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUParamsSource is the canonical WGSL definition of the FractalParams struct.
// Matches GPUParams layout exactly (48 bytes).
//
//go:embed assets/params_uniform.wgsl
var GPUParamsSource string

// FullscreenVertexSource draws a single triangle covering the viewport from vertex_index
// alone and passes normalized device coordinates to the fragment stage.
//
//go:embed assets/fullscreen.vert.wgsl
var FullscreenVertexSource string

// MandelbulbFragmentSource raymarches the Mandelbulb per pixel using the camera and
// fractal_params uniforms.
//
//go:embed assets/mandelbulb.frag.wgsl
var MandelbulbFragmentSource string

// GPUParams is the GPU-aligned representation of the fractal parameter uniform.
// The ray caps ride in the w slots of the two colour vectors.
// Size: 48 bytes.
type GPUParams struct {
	Epsilon      float32    // offset  0
	MaxIter      float32    // offset  4
	Power        float32    // offset  8
	Bailout      float32    // offset 12
	ColorA       [3]float32 // offset 16: gradient colour for few march steps
	MaxRayLength float32    // offset 28
	ColorB       [3]float32 // offset 32: gradient colour for many march steps
	MaxSteps     float32    // offset 44
}

// Size returns the size of the GPUParams struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPUParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUParams) Marshal() []byte {
	buf := make([]byte, g.Size())
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
	}
	put(0, g.Epsilon)
	put(4, g.MaxIter)
	put(8, g.Power)
	put(12, g.Bailout)
	for i := range 3 {
		put(16+i*4, g.ColorA[i])
		put(32+i*4, g.ColorB[i])
	}
	put(28, g.MaxRayLength)
	put(44, g.MaxSteps)
	return buf
}
