package wgpusink

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rig/engine/uniform"
)

type fakeDevice struct {
	created []*wgpu.BufferDescriptor
	err     error
}

func (d *fakeDevice) CreateBuffer(desc *wgpu.BufferDescriptor) (*wgpu.Buffer, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.created = append(d.created, desc)
	return &wgpu.Buffer{}, nil
}

type write struct {
	buffer *wgpu.Buffer
	data   []byte
}

type fakeQueue struct {
	writes []write
	err    error
}

func (q *fakeQueue) WriteBuffer(buffer *wgpu.Buffer, _ uint64, data []byte) error {
	if q.err != nil {
		return q.err
	}
	q.writes = append(q.writes, write{buffer, append([]byte(nil), data...)})
	return nil
}

func TestSetVec3PadsToSlot(t *testing.T) {
	dev, q := &fakeDevice{}, &fakeQueue{}
	s := newSink(dev, q)
	if err := s.SetVec3(1, "viewPos", mgl32.Vec3{1, 2, 3}); err != nil {
		t.Fatalf("Sink.SetVec3\nhave %v\nwant nil", err)
	}
	if len(dev.created) != 1 || dev.created[0].Size != 16 {
		t.Fatalf("created buffers\nhave %v\nwant one of 16 bytes", dev.created)
	}
	if u := dev.created[0].Usage; u != wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst {
		t.Fatalf("buffer usage\nhave %v\nwant Uniform|CopyDst", u)
	}
	data := q.writes[0].data
	if len(data) != 16 || math.Float32frombits(binary.LittleEndian.Uint32(data[8:])) != 3 {
		t.Fatalf("written data\nhave %v\nwant 16 bytes ending in z=3 and padding", data)
	}
	if s.Buffer(1, "viewPos") != q.writes[0].buffer {
		t.Fatal("Sink.Buffer did not return the written buffer")
	}
	if s.Buffer(1, "view") != nil {
		t.Fatal("Sink.Buffer returned a buffer for an unwritten slot")
	}
}

func TestBufferReused(t *testing.T) {
	dev, q := &fakeDevice{}, &fakeQueue{}
	s := newSink(dev, q)
	for i := 0; i < 3; i++ {
		if err := s.SetMat4(2, "view", mgl32.Ident4()); err != nil {
			t.Fatalf("Sink.SetMat4\nhave %v\nwant nil", err)
		}
	}
	if len(dev.created) != 1 || dev.created[0].Size != 64 {
		t.Fatalf("created buffers\nhave %d\nwant 1 of 64 bytes", len(dev.created))
	}
	if len(q.writes) != 3 {
		t.Fatalf("writes\nhave %d\nwant 3", len(q.writes))
	}
}

func TestWriteError(t *testing.T) {
	errQueue := errors.New("queue lost")
	s := newSink(&fakeDevice{}, &fakeQueue{err: errQueue})
	err := s.SetBlock(3, "camera", make([]byte, 144))
	if !errors.Is(err, errQueue) {
		t.Fatalf("Sink.SetBlock\nhave %v\nwant %v", err, errQueue)
	}
}

func TestCreateError(t *testing.T) {
	errDevice := errors.New("out of memory")
	s := newSink(&fakeDevice{err: errDevice}, &fakeQueue{})
	if err := s.SetMat4(4, "projection", mgl32.Ident4()); !errors.Is(err, errDevice) {
		t.Fatalf("Sink.SetMat4\nhave %v\nwant %v", err, errDevice)
	}
	if s.Buffer(4, "projection") != nil {
		t.Fatal("failed slot left a buffer behind")
	}
	var _ uniform.BlockSink = s
}
