package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (144 bytes, std430 aligned).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the camera uniform block.
// Size: 144 bytes (std430 / WGSL aligned).
type GPUCameraUniform struct {
	View        [16]float32 // offset   0: view matrix (mat4x4<f32>)
	Projection  [16]float32 // offset  64: projection matrix (mat4x4<f32>)
	EyePosition [3]float32  // offset 128: world-space eye position (vec3<f32>)
	_pad        float32     // offset 140: padding to 144 bytes
}

// NewGPUCameraUniform packs matrices and the eye point into a GPUCameraUniform.
//
// Parameters:
//   - view: the view matrix
//   - projection: the projection matrix
//   - eye: the world-space eye position
//
// Returns:
//   - GPUCameraUniform: the packed block
func NewGPUCameraUniform(view, projection mgl32.Mat4, eye mgl32.Vec3) GPUCameraUniform {
	return GPUCameraUniform{
		View:        view,
		Projection:  projection,
		EyePosition: eye,
	}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.View[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Projection[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[128+i*4:], math.Float32bits(g.EyePosition[i]))
	}
	binary.LittleEndian.PutUint32(buf[140:], 0) // _pad
	return buf
}
