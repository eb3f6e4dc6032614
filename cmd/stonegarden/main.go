// Command stonegarden runs the Stone Garden counting toy.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/talgya/stone-garden/internal/app"
	"github.com/talgya/stone-garden/internal/progress"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	width := flag.Int("width", 960, "window width")
	height := flag.Int("height", 640, "window height")
	dbPath := flag.String("db", "data/stonegarden.db", "progress database path")
	seed := flag.Int64("seed", 0, "scatter seed, 0 picks one from the clock")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	os.MkdirAll(filepath.Dir(*dbPath), 0755)
	db, err := progress.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	game, err := app.New(app.Config{
		Width:  *width,
		Height: *height,
		Seed:   *seed,
		DB:     db,
	})
	if err != nil {
		slog.Error("failed to build game", "error", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Stone Garden")
	slog.Info("stone garden ready", "width", *width, "height", *height, "seed", *seed)

	if err := ebiten.RunGame(game); err != nil {
		slog.Error("game stopped", "error", err)
		os.Exit(1)
	}
}
