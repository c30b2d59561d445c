package render

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/OCharnyshevich/voxelmesh/pkg/mesh"
)

// Uploaded is the state a display/collider would hold for one chunk.
type Uploaded struct {
	Target  Target
	Mesh    *mesh.Mesh
	Normals []mgl32.Vec3
	Version int
}

// Memory keeps the latest mesh of every chunk with recomputed normals.
type Memory struct {
	mu     sync.RWMutex
	chunks map[uuid.UUID]*Uploaded
}

// NewMemory creates an empty Memory backend.
func NewMemory() *Memory {
	return &Memory{chunks: make(map[uuid.UUID]*Uploaded)}
}

func (m *Memory) Apply(t Target, msh *mesh.Mesh) error {
	if err := msh.Validate(); err != nil {
		return err
	}
	cp := msh.Clone()
	normals := mesh.Normals(cp)

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.chunks[t.ID]
	if !ok {
		u = &Uploaded{Target: t}
		m.chunks[t.ID] = u
	}
	u.Mesh = cp
	u.Normals = normals
	u.Version++
	return nil
}

// Get returns the latest upload for chunk id.
func (m *Memory) Get(id uuid.UUID) (Uploaded, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.chunks[id]
	if !ok {
		return Uploaded{}, false
	}
	return *u, true
}

// Len returns the number of chunks uploaded.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks)
}

// Faces returns the total number of faces across all chunks.
func (m *Memory) Faces() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, u := range m.chunks {
		n += u.Mesh.Faces()
	}
	return n
}
