package render

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/OCharnyshevich/voxelmesh/pkg/mesh"
)

// FrameType is the type tag of every frame sent to viewers.
const FrameType = "MESH"

// Frame is the JSON message carrying one chunk mesh. Vector buffers are
// flattened: three floats per vertex, two per UV.
type Frame struct {
	Type      string     `json:"type"`
	Chunk     uuid.UUID  `json:"chunk"`
	Origin    [3]float32 `json:"origin"`
	Vertices  []float32  `json:"vertices"`
	Triangles []uint32   `json:"triangles"`
	UV        []float32  `json:"uv"`
}

// NewFrame flattens m into a Frame for chunk t.
func NewFrame(t Target, m *mesh.Mesh) Frame {
	f := Frame{
		Type:      FrameType,
		Chunk:     t.ID,
		Origin:    [3]float32(t.Origin),
		Vertices:  make([]float32, 0, len(m.Vertices)*3),
		Triangles: append([]uint32{}, m.Triangles...),
		UV:        make([]float32, 0, len(m.UV)*2),
	}
	for _, v := range m.Vertices {
		f.Vertices = append(f.Vertices, v[0], v[1], v[2])
	}
	for _, uv := range m.UV {
		f.UV = append(f.UV, uv[0], uv[1])
	}
	return f
}

// Stream broadcasts chunk meshes to websocket viewers. New viewers first
// receive the latest frame of every chunk.
type Stream struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	latest  map[uuid.UUID][]byte
	order   []uuid.UUID
	viewers map[*viewer]struct{}
}

type viewer struct {
	out  chan []byte
	once sync.Once
}

func (v *viewer) close() {
	v.once.Do(func() { close(v.out) })
}

const viewerQueue = 64

// NewStream creates a Stream with no viewers.
func NewStream(log *slog.Logger) *Stream {
	return &Stream{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		latest:  make(map[uuid.UUID][]byte),
		viewers: make(map[*viewer]struct{}),
	}
}

func (s *Stream) Apply(t Target, m *mesh.Mesh) error {
	b, err := json.Marshal(NewFrame(t, m))
	if err != nil {
		return fmt.Errorf("encode mesh frame: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.latest[t.ID]; !ok {
		s.order = append(s.order, t.ID)
	}
	s.latest[t.ID] = b

	for v := range s.viewers {
		select {
		case v.out <- b:
		default:
			// Slow viewer; drop it rather than stall the caller.
			delete(s.viewers, v)
			v.close()
			s.log.Warn("dropped slow mesh viewer")
		}
	}
	return nil
}

// Viewers returns the number of connected viewers.
func (s *Stream) Viewers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.viewers)
}

func (s *Stream) subscribe() *viewer {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := &viewer{out: make(chan []byte, len(s.order)+viewerQueue)}
	for _, id := range s.order {
		v.out <- s.latest[id]
	}
	s.viewers[v] = struct{}{}
	return v
}

func (s *Stream) unsubscribe(v *viewer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.viewers[v]; ok {
		delete(s.viewers, v)
		v.close()
	}
}

// Handler upgrades the request to a websocket and streams frames until the
// viewer disconnects.
func (s *Stream) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.log.Debug("websocket upgrade", "error", err)
			return
		}
		defer conn.Close()

		v := s.subscribe()
		defer s.unsubscribe(v)
		s.log.Info("mesh viewer connected", "remote", r.RemoteAddr)

		// Reader loop only watches for the close.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				s.log.Info("mesh viewer disconnected", "remote", r.RemoteAddr)
				return
			case b, ok := <-v.out:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too slow"),
						time.Now().Add(time.Second))
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}
	}
}
