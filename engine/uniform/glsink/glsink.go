// Package glsink uploads camera uniforms through OpenGL. An OpenGL context must be current on the
// calling thread before New is called and for every subsequent call.
package glsink

import (
	"fmt"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rig/engine/uniform"
)

// Option is a functional option for configuring a Sink.
type Option func(*Sink)

// WithStrict makes writes to uniforms the program does not declare fail with uniform.ErrNoLocation.
// By default they are skipped, matching OpenGL's handling of location -1.
//
// Returns:
//   - Option: option enabling strict lookups
func WithStrict() Option {
	return func(s *Sink) {
		s.strict = true
	}
}

// Sink is a uniform.Sink backed by glUniform* calls. Locations are cached per program and name.
type Sink struct {
	mu        *sync.Mutex
	locations map[uniform.Key]int32
	strict    bool
}

var _ uniform.Sink = &Sink{}

// New loads the OpenGL function pointers and returns a Sink.
//
// Parameters:
//   - options: functional options to configure the sink
//
// Returns:
//   - *Sink: the sink
//   - error: error if OpenGL could not be initialized
func New(options ...Option) (*Sink, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	s := &Sink{
		mu:        &sync.Mutex{},
		locations: make(map[uniform.Key]int32),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// location binds program and resolves the uniform location.
// Reference: https://registry.khronos.org/OpenGL-Refpages/gl4/html/glGetUniformLocation.xhtml
func (s *Sink) location(program uniform.Program, name string) (int32, error) {
	gl.UseProgram(uint32(program))

	k := uniform.Key{Program: program, Name: name}
	loc, ok := s.locations[k]
	if !ok {
		loc = gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
		s.locations[k] = loc
	}
	if loc < 0 && s.strict {
		return loc, fmt.Errorf("%w: %s", uniform.ErrNoLocation, k)
	}
	return loc, nil
}

func (s *Sink) SetMat4(program uniform.Program, name string, m mgl32.Mat4) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	loc, err := s.location(program, name)
	if err != nil || loc < 0 {
		return err
	}
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
	return nil
}

func (s *Sink) SetVec3(program uniform.Program, name string, v mgl32.Vec3) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	loc, err := s.location(program, name)
	if err != nil || loc < 0 {
		return err
	}
	gl.Uniform3fv(loc, 1, &v[0])
	return nil
}

// Forget drops cached locations for program, e.g. after it was relinked.
//
// Parameters:
//   - program: the program whose locations are invalid
func (s *Sink) Forget(program uniform.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.locations {
		if k.Program == program {
			delete(s.locations, k)
		}
	}
}
