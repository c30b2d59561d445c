package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/voxelmesh/pkg/atlas"
)

func main() {
	var (
		src   = flag.String("src", "", "atlas source url, any go-getter form (git::, http, s3::, local path)")
		out   = flag.String("o", "./atlas", "output dir path")
		table = flag.String("table", "atlas.json", "tile table file inside the fetched directory")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *src == "" {
		log.Error("atlas source url required")
		os.Exit(2)
	}
	if *out == "" {
		log.Error("output dir path required")
		os.Exit(2)
	}

	if err := os.RemoveAll(*out); err != nil {
		log.Error("clean output dir", "path", *out, "error", err)
		os.Exit(1)
	}

	log.Info("downloading atlas", "src", *src, "dst", *out)
	if err := get.Get(*out, *src); err != nil {
		log.Error("download atlas", "error", err)
		os.Exit(1)
	}

	path := filepath.Join(*out, *table)
	a, err := check(path)
	if err != nil {
		log.Error("invalid atlas table", "path", path, "error", err)
		os.Exit(1)
	}
	log.Info("atlas ready", "path", path, "tiles", a.Tiles())
}

func check(path string) (*atlas.Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()
	return atlas.Load(f)
}
