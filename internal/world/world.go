package world

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxelmesh/internal/chunk"
	"github.com/OCharnyshevich/voxelmesh/internal/config"
	"github.com/OCharnyshevich/voxelmesh/internal/render"
	"github.com/OCharnyshevich/voxelmesh/pkg/atlas"
	"github.com/OCharnyshevich/voxelmesh/pkg/voxel"
	"github.com/OCharnyshevich/voxelmesh/pkg/world/gen"
)

// ErrNoChunk is returned when no registered chunk contains a position.
var ErrNoChunk = fmt.Errorf("no chunk contains position: %w", chunk.ErrOutOfRange)

// World is one session of chunks sharing a generator, atlas and backend.
// It owns the chunk registry for its lifetime.
type World struct {
	log       *slog.Logger
	size      voxel.Size
	atlas     *atlas.Atlas
	generator gen.Generator
	backend   render.Backend
	workers   int

	chunks *chunk.Registry

	// mu keeps one block edit in flight at a time.
	mu sync.Mutex
}

// NewGenerator builds the terrain generator selected by cfg.
func NewGenerator(cfg *config.Config) gen.Generator {
	switch cfg.GeneratorType {
	case "flat":
		return gen.NewTerrain(gen.FlatHeight(cfg.FlatHeight))
	default:
		h := gen.NewNoiseHeight(cfg.Seed)
		h.Base = cfg.Terrain.Base
		h.Amplitude = cfg.Terrain.Amplitude
		h.Scale = cfg.Terrain.Scale
		h.Octaves = cfg.Terrain.Octaves
		h.Persistence = cfg.Terrain.Persistence
		return gen.NewTerrain(h)
	}
}

// New creates an empty world. A nil backend discards meshes.
func New(cfg *config.Config, a *atlas.Atlas, backend render.Backend, log *slog.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if backend == nil {
		backend = render.Discard
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	return &World{
		log:       log,
		size:      voxel.Size{X: cfg.ChunkSize[0], Y: cfg.ChunkSize[1], Z: cfg.ChunkSize[2]},
		atlas:     a,
		generator: NewGenerator(cfg),
		backend:   backend,
		workers:   workers,
		chunks:    chunk.NewRegistry(),
	}, nil
}

// Chunks returns the world's chunk registry.
func (w *World) Chunks() *chunk.Registry { return w.chunks }

// ChunkSize returns the size of every chunk in the world.
func (w *World) ChunkSize() voxel.Size { return w.size }

// ChunkOrigin returns the origin of grid chunk (cx, cz).
func (w *World) ChunkOrigin(cx, cz int) mgl32.Vec3 {
	return mgl32.Vec3{float32(cx * w.size.X), 0, float32(cz * w.size.Z)}
}

// AddChunk creates a chunk at origin, generates its terrain and builds its
// mesh. The chunk is registered only once generation succeeds.
func (w *World) AddChunk(origin mgl32.Vec3) (*chunk.Chunk, error) {
	c, err := chunk.New(origin, w.size, w.atlas, w.backend)
	if err != nil {
		return nil, err
	}
	if err := c.Generate(w.generator); err != nil {
		return nil, err
	}
	w.chunks.Add(c)
	return c, nil
}

// Bootstrap creates the (2r+1)² chunks around the origin. Chunks are
// generated and meshed on a worker pool, then registered in row order.
// A chunk whose generation failed or never ran is not registered.
// It returns the number of chunks registered.
func (w *World) Bootstrap(ctx context.Context, radius int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	start := time.Now()

	var pending []*chunk.Chunk
	for cx := -radius; cx <= radius; cx++ {
		for cz := -radius; cz <= radius; cz++ {
			c, err := chunk.New(w.ChunkOrigin(cx, cz), w.size, w.atlas, w.backend)
			if err != nil {
				return 0, err
			}
			pending = append(pending, c)
		}
	}

	generated := make([]bool, len(pending))
	pool := pond.NewPool(w.workers, pond.WithContext(ctx))
	group := pool.NewGroup()
	for i, c := range pending {
		group.SubmitErr(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := c.Generate(w.generator); err != nil {
				return err
			}
			generated[i] = true
			return nil
		})
	}
	genErr := group.Wait()
	// Wait for tasks still running after a failure before reading results.
	pool.StopAndWait()

	n, faces := 0, 0
	for i, c := range pending {
		if !generated[i] {
			continue
		}
		w.chunks.Add(c)
		n++
		faces += c.Mesh().Faces()
	}
	if genErr != nil {
		w.log.Warn("world generation failed",
			"registered", n,
			"requested", len(pending),
			"error", genErr,
		)
		return n, fmt.Errorf("generate chunks: %w", genErr)
	}

	w.log.Info("world generated",
		"chunks", n,
		"faces", faces,
		"workers", w.workers,
		"elapsed", time.Since(start),
	)
	return n, nil
}

// FindChunk returns the chunk containing world position p.
func (w *World) FindChunk(p mgl32.Vec3) (*chunk.Chunk, bool) {
	return w.chunks.Find(p)
}

// Block returns the block at world position p.
func (w *World) Block(p mgl32.Vec3) (voxel.Type, error) {
	c, ok := w.chunks.Find(p)
	if !ok {
		return voxel.Air, fmt.Errorf("get block at %v: %w", p, ErrNoChunk)
	}
	return c.Block(p)
}

// SetBlock writes t at world position p and rebuilds the owning chunk's
// mesh. Positions outside every chunk return ErrNoChunk and change nothing.
func (w *World) SetBlock(p mgl32.Vec3, t voxel.Type) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	c, ok := w.chunks.Find(p)
	if !ok {
		return fmt.Errorf("set block at %v: %w", p, ErrNoChunk)
	}
	if err := c.SetBlock(p, t); err != nil {
		return fmt.Errorf("set block at %v: %w", p, err)
	}
	w.log.Debug("block set", "pos", p, "type", t, "faces", c.Mesh().Faces())
	return nil
}

// SurfaceHeight returns the generator's terrain height at world column (x, z).
func (w *World) SurfaceHeight(x, z float64) float64 {
	return w.generator.SurfaceHeight(x, z)
}

// Close drops every chunk from the registry.
func (w *World) Close() {
	n := w.chunks.Len()
	w.chunks.Clear()
	w.log.Info("world closed", "chunks", n)
}
