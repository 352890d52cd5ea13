// Package uniform defines the sink the camera pushes its matrices into. A sink hides the graphics
// backend: the camera only ever names a program handle and a uniform.
package uniform

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoLocation is returned by backends when the named uniform does not exist in the program.
var ErrNoLocation = errors.New("uniform location not found")

// Program is an opaque shader program handle. For OpenGL it is the program object name,
// other backends treat it as a namespace key.
type Program uint32

// Sink accepts uniform values for a program.
type Sink interface {
	// SetMat4 uploads a column-major 4x4 matrix.
	//
	// Parameters:
	//   - program: target program handle
	//   - name: uniform name as declared in the shader
	//   - m: the matrix value
	//
	// Returns:
	//   - error: backend failure, or ErrNoLocation
	SetMat4(program Program, name string, m mgl32.Mat4) error

	// SetVec3 uploads a 3-component vector.
	//
	// Parameters:
	//   - program: target program handle
	//   - name: uniform name as declared in the shader
	//   - v: the vector value
	//
	// Returns:
	//   - error: backend failure, or ErrNoLocation
	SetVec3(program Program, name string, v mgl32.Vec3) error
}

// BlockSink is implemented by sinks that accept a packed uniform block in a single write.
type BlockSink interface {
	Sink

	// SetBlock uploads raw block bytes.
	//
	// Parameters:
	//   - program: target program handle
	//   - name: block name
	//   - data: packed little-endian block
	//
	// Returns:
	//   - error: backend failure
	SetBlock(program Program, name string, data []byte) error
}

// Key identifies one uniform slot.
type Key struct {
	Program Program
	Name    string
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%s", k.Program, k.Name)
}

// Recorder is an in-memory BlockSink. It keeps the latest value of each slot and counts writes.
// Useful headless and in tests.
type Recorder struct {
	mu     sync.Mutex
	mat4s  map[Key]mgl32.Mat4
	vec3s  map[Key]mgl32.Vec3
	blocks map[Key][]byte
	writes int
}

var _ BlockSink = &Recorder{}

// NewRecorder creates an empty Recorder.
//
// Returns:
//   - *Recorder: the recorder
func NewRecorder() *Recorder {
	return &Recorder{
		mat4s:  make(map[Key]mgl32.Mat4),
		vec3s:  make(map[Key]mgl32.Vec3),
		blocks: make(map[Key][]byte),
	}
}

func (r *Recorder) SetMat4(program Program, name string, m mgl32.Mat4) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mat4s[Key{program, name}] = m
	r.writes++
	return nil
}

func (r *Recorder) SetVec3(program Program, name string, v mgl32.Vec3) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vec3s[Key{program, name}] = v
	r.writes++
	return nil
}

func (r *Recorder) SetBlock(program Program, name string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks[Key{program, name}] = append([]byte(nil), data...)
	r.writes++
	return nil
}

// Mat4 returns the last matrix written to the slot.
func (r *Recorder) Mat4(program Program, name string) (mgl32.Mat4, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.mat4s[Key{program, name}]
	return m, ok
}

// Vec3 returns the last vector written to the slot.
func (r *Recorder) Vec3(program Program, name string) (mgl32.Vec3, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vec3s[Key{program, name}]
	return v, ok
}

// Block returns a copy of the last block written to the slot.
func (r *Recorder) Block(program Program, name string) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blocks[Key{program, name}]
	return append([]byte(nil), b...), ok
}

// Writes returns the total number of writes across all slots.
func (r *Recorder) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// Keys lists every slot written so far, sorted by program then name.
func (r *Recorder) Keys() []Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[Key]struct{}, len(r.mat4s)+len(r.vec3s)+len(r.blocks))
	for k := range r.mat4s {
		seen[k] = struct{}{}
	}
	for k := range r.vec3s {
		seen[k] = struct{}{}
	}
	for k := range r.blocks {
		seen[k] = struct{}{}
	}
	keys := make([]Key, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Program != keys[j].Program {
			return keys[i].Program < keys[j].Program
		}
		return keys[i].Name < keys[j].Name
	})
	return keys
}
