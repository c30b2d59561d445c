package export

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/OCharnyshevich/voxelmesh/internal/render"
	"github.com/OCharnyshevich/voxelmesh/pkg/mesh"
)

// Archive appends every rebuilt mesh as one JSON line to a zstd stream.
type Archive struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// CreateArchive creates (or truncates) the archive at path.
func CreateArchive(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	return &Archive{f: f, enc: enc, w: bufio.NewWriterSize(enc, 128*1024)}, nil
}

func (a *Archive) Apply(t render.Target, m *mesh.Mesh) error {
	b, err := json.Marshal(render.NewFrame(t, m))
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.w == nil {
		return errors.New("archive closed")
	}
	if _, err := a.w.Write(b); err != nil {
		return err
	}
	return a.w.WriteByte('\n')
}

// Close flushes and closes the archive.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.w == nil {
		return nil
	}
	err := a.w.Flush()
	if cerr := a.enc.Close(); err == nil {
		err = cerr
	}
	if cerr := a.f.Close(); err == nil {
		err = cerr
	}
	a.w, a.enc, a.f = nil, nil, nil
	return err
}

// ReadArchive decodes every frame of an archive written by Archive.
func ReadArchive(r io.Reader) ([]render.Frame, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	var frames []render.Frame
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)
	for sc.Scan() {
		var f render.Frame
		if err := json.Unmarshal(sc.Bytes(), &f); err != nil {
			return nil, fmt.Errorf("decode frame %d: %w", len(frames), err)
		}
		frames = append(frames, f)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	return frames, nil
}
