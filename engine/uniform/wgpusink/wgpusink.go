// Package wgpusink writes camera uniforms into WebGPU uniform buffers, one buffer per program and name.
// Buffers are created on first write; callers fetch them with Buffer to build bind groups.
package wgpusink

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rig/engine/uniform"
)

// uniformAlignment is the size granularity used for every buffer created by the sink.
const uniformAlignment = 16

// bufferAllocator is the part of *wgpu.Device the sink uses.
type bufferAllocator interface {
	CreateBuffer(descriptor *wgpu.BufferDescriptor) (*wgpu.Buffer, error)
}

// bufferWriter is the part of *wgpu.Queue the sink uses.
type bufferWriter interface {
	WriteBuffer(buffer *wgpu.Buffer, bufferOffset uint64, data []byte) error
}

type slot struct {
	buffer *wgpu.Buffer
	size   uint64
}

// Sink is a uniform.BlockSink backed by WebGPU queue writes.
type Sink struct {
	mu     *sync.Mutex
	device bufferAllocator
	queue  bufferWriter
	slots  map[uniform.Key]slot
}

var _ uniform.BlockSink = &Sink{}

// New creates a Sink that allocates buffers on device and writes through queue.
//
// Parameters:
//   - device: the WebGPU device
//   - queue: the device queue
//
// Returns:
//   - *Sink: the sink
func New(device *wgpu.Device, queue *wgpu.Queue) *Sink {
	return newSink(device, queue)
}

func newSink(device bufferAllocator, queue bufferWriter) *Sink {
	return &Sink{
		mu:     &sync.Mutex{},
		device: device,
		queue:  queue,
		slots:  make(map[uniform.Key]slot),
	}
}

// write uploads data into the slot's buffer, (re)creating it when missing or too small.
// Caller must hold the mutex.
func (s *Sink) write(k uniform.Key, data []byte) error {
	sl, ok := s.slots[k]
	if !ok || sl.size < uint64(len(data)) {
		if ok {
			sl.buffer.Release()
		}
		size := (uint64(len(data)) + uniformAlignment - 1) / uniformAlignment * uniformAlignment
		buf, err := s.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            k.String() + " Uniform Buffer",
			Size:             size,
			Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			delete(s.slots, k)
			return fmt.Errorf("failed to create uniform buffer %s: %w", k, err)
		}
		sl = slot{buffer: buf, size: size}
		s.slots[k] = sl
	}
	if err := s.queue.WriteBuffer(sl.buffer, 0, data); err != nil {
		return fmt.Errorf("failed to write uniform buffer %s: %w", k, err)
	}
	return nil
}

func (s *Sink) SetMat4(program uniform.Program, name string, m mgl32.Mat4) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(uniform.Key{Program: program, Name: name}, floatBytes(m[:]))
}

func (s *Sink) SetVec3(program uniform.Program, name string, v mgl32.Vec3) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// vec3 occupies a 16-byte slot in WGSL uniform layout
	return s.write(uniform.Key{Program: program, Name: name}, floatBytes([]float32{v[0], v[1], v[2], 0}))
}

func (s *Sink) SetBlock(program uniform.Program, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(uniform.Key{Program: program, Name: name}, data)
}

// Buffer returns the buffer backing a slot, or nil if nothing was written to it yet.
//
// Parameters:
//   - program: the program handle
//   - name: the uniform name
//
// Returns:
//   - *wgpu.Buffer: the buffer or nil
func (s *Sink) Buffer(program uniform.Program, name string) *wgpu.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[uniform.Key{Program: program, Name: name}].buffer
}

// Release frees every buffer created by the sink.
func (s *Sink) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, sl := range s.slots {
		sl.buffer.Release()
		delete(s.slots, k)
	}
}

func floatBytes(f []float32) []byte {
	buf := make([]byte, len(f)*4)
	for i, v := range f {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
