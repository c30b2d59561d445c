package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/OCharnyshevich/voxelmesh/internal/render"
	"github.com/OCharnyshevich/voxelmesh/pkg/mesh"
)

// WriteOBJ writes the meshes as Wavefront OBJ objects. Vertices are moved
// into world space by each target's origin. OBJ indices are 1-based and
// global to the file.
func WriteOBJ(w io.Writer, targets []render.Target, meshes []*mesh.Mesh) error {
	if len(targets) != len(meshes) {
		return fmt.Errorf("write obj: %d targets for %d meshes", len(targets), len(meshes))
	}
	bw := bufio.NewWriterSize(w, 256*1024)

	base := 1
	for i, m := range meshes {
		t := targets[i]
		fmt.Fprintf(bw, "o chunk_%s\n", t.ID)
		for _, v := range m.Vertices {
			p := v.Add(t.Origin)
			fmt.Fprintf(bw, "v %g %g %g\n", p.X(), p.Y(), p.Z())
		}
		for _, uv := range m.UV {
			fmt.Fprintf(bw, "vt %g %g\n", uv.X(), uv.Y())
		}
		for j := 0; j+2 < len(m.Triangles); j += 3 {
			a := base + int(m.Triangles[j])
			b := base + int(m.Triangles[j+1])
			c := base + int(m.Triangles[j+2])
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
		}
		base += len(m.Vertices)
	}
	return bw.Flush()
}

// OBJDir is a backend that rewrites one OBJ file per chunk on every rebuild.
type OBJDir struct {
	dir string
	mu  sync.Mutex
}

// NewOBJDir creates dir if needed and returns a backend writing into it.
func NewOBJDir(dir string) (*OBJDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	return &OBJDir{dir: dir}, nil
}

// Path returns the file written for chunk t.
func (d *OBJDir) Path(t render.Target) string {
	name := fmt.Sprintf("chunk_%g_%g_%g.obj", t.Origin.X(), t.Origin.Y(), t.Origin.Z())
	return filepath.Join(d.dir, name)
}

func (d *OBJDir) Apply(t render.Target, m *mesh.Mesh) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return atomicWrite(d.Path(t), func(w io.Writer) error {
		return WriteOBJ(w, []render.Target{t}, []*mesh.Mesh{m})
	})
}

// atomicWrite writes through fn to a temp file and renames it over path.
func atomicWrite(path string, fn func(w io.Writer) error) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if err := fn(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
