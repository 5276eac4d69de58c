package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (64 bytes, four vec4 slots).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Each vec3 occupies a 16 byte slot; the aspect ratio rides in the eye slot's w component.
// Size: 64 bytes.
type GPUCameraUniform struct {
	Eye     mgl32.Vec3 // offset  0: world-space camera position
	Aspect  float32    // offset 12: viewport width / height
	Right   mgl32.Vec3 // offset 16: camera right basis vector
	_pad0   float32    // offset 28
	Up      mgl32.Vec3 // offset 32: camera up basis vector
	_pad1   float32    // offset 44
	Forward mgl32.Vec3 // offset 48: camera forward basis vector
	_pad2   float32    // offset 60
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	putVec4(buf[0:], g.Eye, g.Aspect)
	putVec4(buf[16:], g.Right, 0)
	putVec4(buf[32:], g.Up, 0)
	putVec4(buf[48:], g.Forward, 0)
	return buf
}

func putVec4(buf []byte, v mgl32.Vec3, w float32) {
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v[i]))
	}
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(w))
}
