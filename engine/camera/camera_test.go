package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/uniform"
)

func TestCameraWithoutController(t *testing.T) {
	c := NewCamera()
	if out := c.Update(FrameInput{Time: 1}); out != (FrameOutput{}) {
		t.Fatalf("Update without controller\nhave %+v\nwant zero", out)
	}
	if c.ViewMatrix() != mgl32.Ident4() {
		t.Fatal("ViewMatrix without controller is not identity")
	}
}

func TestCameraProjection(t *testing.T) {
	c := NewCamera(WithFov(mgl32.DegToRad(70)), WithAspect(1024.0/768.0), WithNear(0.01), WithFar(300))
	want := mgl32.Perspective(mgl32.DegToRad(70), 1024.0/768.0, 0.01, 300)
	if c.ProjectionMatrix() != want {
		t.Fatalf("ProjectionMatrix\nhave %v\nwant %v", c.ProjectionMatrix(), want)
	}
	c.SetAspect(0)
	if want := mgl32.Perspective(mgl32.DegToRad(70), 1, 0.01, 300); c.ProjectionMatrix() != want {
		t.Fatalf("ProjectionMatrix with aspect 0\nhave %v\nwant %v", c.ProjectionMatrix(), want)
	}
}

func TestCameraUpdate(t *testing.T) {
	cc := NewCameraController()
	cc.Initialize(mgl32.Vec3{0, 1, 20}, mgl32.Vec3{0, 0, -1}, 0, 0, 0)
	c := NewCamera(WithController(cc))
	if c.ViewMatrix() != cc.ViewMatrix() {
		t.Fatal("NewCamera did not pick up the controller view")
	}

	proj := c.ProjectionMatrix()
	out := c.Update(FrameInput{Actions: input.NewActionSet(input.ActionForward), Time: 1})
	if c.ViewMatrix() != out.View || c.LastFrame().View != out.View {
		t.Fatal("Camera view does not match the controller output")
	}
	if want := proj.Mul4(out.View); c.ViewProjectionMatrix() != want {
		t.Fatalf("ViewProjectionMatrix\nhave %v\nwant %v", c.ViewProjectionMatrix(), want)
	}
	if c.ProjectionMatrix() != proj {
		t.Fatal("Update changed the projection")
	}
}

func TestCameraPush(t *testing.T) {
	const scene, body uniform.Program = 3, 7

	cc := NewCameraController(WithViewMode(ViewModeThirdPersonFree))
	cc.Initialize(mgl32.Vec3{0, 1, 20}, mgl32.Vec3{0, 0, -1}, 0, 0, 0)
	c := NewCamera(WithController(cc), WithBodyProgram(body), WithUniformNames(UniformNames{EyePos: "eye"}))
	out := c.Update(FrameInput{Time: 0.1})

	rec := uniform.NewRecorder()
	if err := c.Push(rec, scene); err != nil {
		t.Fatal(err)
	}
	if m, ok := rec.Mat4(scene, "view"); !ok || m != out.View {
		t.Fatalf("view\nhave %v (%v)\nwant %v", m, ok, out.View)
	}
	if m, ok := rec.Mat4(scene, "projection"); !ok || m != c.ProjectionMatrix() {
		t.Fatalf("projection\nhave %v (%v)", m, ok)
	}
	if v, ok := rec.Vec3(scene, "eye"); !ok || v != out.Eye {
		t.Fatalf("eye\nhave %v (%v)\nwant %v", v, ok, out.Eye)
	}
	if m, ok := rec.Mat4(body, "model"); !ok || m != out.Body {
		t.Fatalf("model\nhave %v (%v)\nwant %v", m, ok, out.Body)
	}
	block, ok := rec.Block(scene, "camera")
	if !ok || len(block) != 144 {
		t.Fatalf("camera block\nhave %d bytes (%v)\nwant 144", len(block), ok)
	}
	if have := math.Float32frombits(binary.LittleEndian.Uint32(block[128:])); have != out.Eye[0] {
		t.Fatalf("block eye.x\nhave %v\nwant %v", have, out.Eye[0])
	}

	// First person frames carry no body.
	cc.SetViewMode(ViewModeFirstPerson)
	c.Update(FrameInput{Time: 0.2})
	rec = uniform.NewRecorder()
	if err := c.Push(rec, scene); err != nil {
		t.Fatal(err)
	}
	if _, ok := rec.Mat4(body, "model"); ok {
		t.Fatal("first person frame uploaded a body transform")
	}
}

func TestGPUCameraUniform(t *testing.T) {
	view := mgl32.Translate3D(1, 2, 3)
	proj := mgl32.Perspective(1, 1, 0.1, 10)
	u := NewGPUCameraUniform(view, proj, mgl32.Vec3{4, 5, 6})
	if u.Size() != 144 {
		t.Fatalf("Size\nhave %d\nwant 144", u.Size())
	}
	buf := u.Marshal()
	read := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	if have := read(12 * 4); have != 1 {
		t.Fatalf("view[12]\nhave %v\nwant 1", have)
	}
	if have := read(64 + 11*4); have != proj[11] {
		t.Fatalf("projection[11]\nhave %v\nwant %v", have, proj[11])
	}
	if have := read(136); have != 6 {
		t.Fatalf("eye.z\nhave %v\nwant 6", have)
	}
	if GPUCameraUniformSource == "" {
		t.Fatal("embedded WGSL source is empty")
	}
}
