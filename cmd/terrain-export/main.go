// Package main generates a terrain from config and flags and writes it as
// OBJ/MTL without opening a window.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/heightforge/internal/config"
	"github.com/Faultbox/heightforge/internal/export"
	"github.com/Faultbox/heightforge/internal/logger"
	"github.com/Faultbox/heightforge/internal/terrain"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("export failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	p := cfg.TerrainParams()

	start := time.Now()
	mesh, err := terrain.Generate(ctx, p)
	if err != nil {
		return err
	}
	logger.Info("Terrain generated",
		zap.Int("width", p.Width),
		zap.Int("height", p.Height),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Duration("took", time.Since(start)),
	)

	err = export.Export(cfg.Export.Path, mesh, export.Options{
		Params:      &p,
		WriteParams: cfg.Export.WriteParams,
	})
	if err != nil {
		return err
	}

	stats, err := export.Inspect(cfg.Export.Path)
	if err != nil {
		return fmt.Errorf("verifying %s: %w", cfg.Export.Path, err)
	}
	if stats.Vertices != mesh.VertexCount() || stats.Faces != mesh.TriangleCount() {
		return fmt.Errorf("verifying %s: wrote %d vertices and %d faces, expected %d and %d",
			cfg.Export.Path, stats.Vertices, stats.Faces, mesh.VertexCount(), mesh.TriangleCount())
	}

	fields := []zap.Field{
		zap.String("path", cfg.Export.Path),
		zap.String("mtllib", stats.MaterialLib),
	}
	for _, b := range terrain.Bands() {
		fields = append(fields, zap.Int(b.Name(), stats.Materials[b.Name()]))
	}
	logger.Info("Export verified", fields...)
	return nil
}
