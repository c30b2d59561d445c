package render

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/OCharnyshevich/voxelmesh/pkg/mesh"
)

// Target identifies the chunk a mesh belongs to.
type Target struct {
	ID     uuid.UUID
	Origin mgl32.Vec3
}

// Backend receives every rebuilt chunk mesh. The mesh is only valid for the
// duration of the call; implementations that keep it must copy it.
type Backend interface {
	Apply(t Target, m *mesh.Mesh) error
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(t Target, m *mesh.Mesh) error

func (f BackendFunc) Apply(t Target, m *mesh.Mesh) error { return f(t, m) }

// Discard drops every mesh.
var Discard Backend = BackendFunc(func(Target, *mesh.Mesh) error { return nil })

// Multi fans a mesh out to several backends. All backends are called even
// if some fail; the errors are joined.
type Multi []Backend

func (ms Multi) Apply(t Target, m *mesh.Mesh) error {
	var errs []error
	for _, b := range ms {
		if err := b.Apply(t, m); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
