package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/OCharnyshevich/voxelmesh/internal/config"
	"github.com/OCharnyshevich/voxelmesh/internal/export"
	"github.com/OCharnyshevich/voxelmesh/internal/index"
	"github.com/OCharnyshevich/voxelmesh/internal/render"
	"github.com/OCharnyshevich/voxelmesh/internal/world"
	"github.com/OCharnyshevich/voxelmesh/pkg/atlas"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "optional YAML config file")
	flag.StringVar(&cfg.AtlasFile, "atlas", cfg.AtlasFile, "JSON atlas tile table (default: built-in table)")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "terrain noise seed")
	flag.StringVar(&cfg.GeneratorType, "generator", cfg.GeneratorType, "terrain generator: noise or flat")
	flag.IntVar(&cfg.Radius, "radius", cfg.Radius, "chunks generated around the origin")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "generation workers, 0 = one per CPU")
	flag.StringVar(&cfg.StreamAddr, "stream", cfg.StreamAddr, "websocket mesh stream address, e.g. :8080")
	flag.StringVar(&cfg.ExportDir, "export", cfg.ExportDir, "directory for OBJ files and the mesh archive")
	flag.StringVar(&cfg.IndexPath, "index", cfg.IndexPath, "SQLite build index path")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flag.Parse()

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			slog.Error("load config", "error", err)
			os.Exit(1)
		}
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("voxeld error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	a, err := loadAtlas(cfg)
	if err != nil {
		return err
	}

	mem := render.NewMemory()
	backends := render.Multi{mem}
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				log.Warn("close output", "error", err)
			}
		}
	}()

	var stream *render.Stream
	if cfg.StreamAddr != "" {
		stream = render.NewStream(log)
		backends = append(backends, stream)
	}
	if cfg.ExportDir != "" {
		objs, err := export.NewOBJDir(cfg.ExportDir)
		if err != nil {
			return err
		}
		archive, err := export.CreateArchive(filepath.Join(cfg.ExportDir, "meshes.jsonl.zst"))
		if err != nil {
			return err
		}
		closers = append(closers, archive)
		backends = append(backends, objs, archive)
	}
	var idx *index.SQLite
	if cfg.IndexPath != "" {
		idx, err = index.OpenSQLite(cfg.IndexPath)
		if err != nil {
			return err
		}
		closers = append(closers, idx)
		backends = append(backends, idx)
	}

	w, err := world.New(cfg, a, backends, log)
	if err != nil {
		return err
	}
	defer w.Close()

	n, err := w.Bootstrap(ctx, cfg.Radius)
	if err != nil {
		return err
	}
	log.Info("meshes ready",
		"chunks", n,
		"faces", mem.Faces(),
		"spawn_height", w.SurfaceHeight(0, 0),
	)
	if idx != nil {
		builds, chunks, err := idx.Totals()
		if err != nil {
			return err
		}
		log.Info("build index updated", "builds", builds, "chunks", chunks)
	}

	if stream == nil {
		return nil
	}
	return serve(ctx, cfg.StreamAddr, stream, log)
}

func loadAtlas(cfg *config.Config) (*atlas.Atlas, error) {
	if cfg.AtlasFile == "" {
		return atlas.New(cfg.AtlasTiles, atlas.DefaultTable())
	}
	f, err := os.Open(cfg.AtlasFile)
	if err != nil {
		return nil, fmt.Errorf("open atlas: %w", err)
	}
	defer f.Close()
	return atlas.Load(f)
}

func serve(ctx context.Context, addr string, stream *render.Stream, log *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", stream.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("mesh stream listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down mesh stream")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
