// Package app wires configuration, textures, the regeneration session and
// export-on-exit together for the interactive shells and the exporter.
package app

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/heightforge/internal/assets"
	"github.com/Faultbox/heightforge/internal/config"
	"github.com/Faultbox/heightforge/internal/engine/camera"
	"github.com/Faultbox/heightforge/internal/engine/scene"
	"github.com/Faultbox/heightforge/internal/export"
	"github.com/Faultbox/heightforge/internal/logger"
	"github.com/Faultbox/heightforge/internal/session"
	"github.com/Faultbox/heightforge/internal/terrain"
)

// TextureNames lists the band texture files in band order.
func TextureNames() []string {
	bands := terrain.Bands()
	names := make([]string, len(bands))
	for i, b := range bands {
		names[i] = b.Texture()
	}
	return names
}

// LoadTextures fetches the configured texture pack when needed and decodes
// one image per band from the texture directory.
func LoadTextures(ctx context.Context, cfg *config.Config) ([terrain.NumBands]*image.RGBA, error) {
	if cfg.Textures.Source != "" {
		if err := assets.Fetch(ctx, cfg.Textures.Source, cfg.Textures.Dir, TextureNames()...); err != nil {
			return [terrain.NumBands]*image.RGBA{}, err
		}
	}

	m := assets.NewManager(cfg.Textures.Dir)
	defer m.Close()
	if missing := m.Missing(TextureNames()...); len(missing) > 0 {
		return [terrain.NumBands]*image.RGBA{}, fmt.Errorf("%w: %v in %s", assets.ErrNotFound, missing, cfg.Textures.Dir)
	}
	return scene.LoadBandTextures(m.Load)
}

// StartSession creates a session and builds the initial mesh synchronously,
// so the first frame already has something to draw.
func StartSession(ctx context.Context, cfg *config.Config) (*session.Session, error) {
	p := cfg.TerrainParams()
	s := session.New(p)
	if err := s.Commit(ctx, p); err != nil {
		s.Close()
		return nil, fmt.Errorf("initial terrain: %w", err)
	}

	m := s.Mesh()
	logger.Info("Terrain ready",
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
	)
	return s, nil
}

// Apply commits p, in the background when terrain.async is set. Invalid
// parameters are rejected either way and leave the current mesh installed.
func Apply(ctx context.Context, cfg *config.Config, s *session.Session, p terrain.Params) error {
	if cfg.Terrain.Async {
		return s.CommitAsync(p)
	}
	return s.Commit(ctx, p)
}

// NewCamera builds the orbit camera from the camera section.
func NewCamera(cfg *config.Config) *camera.OrbitCamera {
	c := camera.NewOrbitCamera(cfg.Camera.Distance, cfg.Camera.RotationX, cfg.Camera.RotationY)
	if cfg.Camera.ZoomStep > 0 {
		c.ZoomStep = cfg.Camera.ZoomStep
	}
	return c
}

// Shutdown stops the session and exports its final mesh when export is enabled.
// An in-flight build is cancelled; the last installed mesh is what gets written.
func Shutdown(cfg *config.Config, s *session.Session) error {
	s.Close()
	if !cfg.Export.Enabled {
		logger.Debug("Export on exit disabled")
		return nil
	}

	params := s.Params()
	return export.OnExit(cfg.Export.Path, s.Mesh(), export.Options{
		Params:      &params,
		WriteParams: cfg.Export.WriteParams,
	})
}

// Title summarizes p and the session state for a window title.
func Title(name string, p terrain.Params, state session.State) string {
	return fmt.Sprintf("%s - scale %.1f  octaves %d  persistence %.2f  lacunarity %.2f  factor %.0f  seed %d [%s]",
		name, p.Scale, p.Octaves, p.Persistence, p.Lacunarity, p.ScaleFactor, p.Seed, state)
}

// Status collects panel statistics for the current mesh.
func Status(s *session.Session) (vertices, triangles int, bands [terrain.NumBands]int) {
	m := s.Mesh()
	if m == nil {
		return 0, 0, bands
	}
	return m.VertexCount(), m.TriangleCount(), m.BandHistogram()
}
