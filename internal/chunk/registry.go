package chunk

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Registry is an insertion-ordered set of chunks with spatial lookup.
// Chunks are assumed not to overlap; lookups return the first match.
type Registry struct {
	mu     sync.RWMutex
	chunks []*Chunk
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends c to the registry.
func (r *Registry) Add(c *Chunk) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chunks = append(r.chunks, c)
}

// Find returns the first registered chunk containing world position p.
func (r *Registry) Find(p mgl32.Vec3) (*Chunk, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.chunks {
		if c.Contains(p) {
			return c, true
		}
	}
	return nil, false
}

// Len returns the number of registered chunks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chunks)
}

// All returns the registered chunks in insertion order.
func (r *Registry) All() []*Chunk {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Chunk(nil), r.chunks...)
}

// Clear removes every chunk.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chunks = nil
}
