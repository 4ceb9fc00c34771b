package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/heightforge/internal/assets"
	"github.com/Faultbox/heightforge/internal/config"
	"github.com/Faultbox/heightforge/internal/export"
	"github.com/Faultbox/heightforge/internal/session"
	"github.com/Faultbox/heightforge/internal/terrain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Terrain.Width = 16
	cfg.Terrain.Height = 16
	cfg.Textures.Dir = t.TempDir()
	cfg.Export.Path = filepath.Join(t.TempDir(), "out", "terrain.obj")
	return cfg
}

func writeTextures(t *testing.T, dir string, names []string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 90, G: 140, B: 60, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestTextureNames(t *testing.T) {
	want := []string{"water_texture.jpg", "sand_texture.jpg", "grass_texture.jpg", "rock_texture.jpg", "snow_texture.jpg"}
	got := TextureNames()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestLoadTextures(t *testing.T) {
	cfg := testConfig(t)
	writeTextures(t, cfg.Textures.Dir, TextureNames())

	images, err := LoadTextures(context.Background(), cfg)
	if err != nil {
		t.Fatalf("LoadTextures: %v", err)
	}
	for b, img := range images {
		if img == nil || img.Bounds().Dx() != 4 {
			t.Errorf("band %s: expected 4px image, got %v", terrain.Band(b), img)
		}
	}
}

func TestLoadTexturesMissing(t *testing.T) {
	cfg := testConfig(t)
	writeTextures(t, cfg.Textures.Dir, TextureNames()[:3])

	_, err := LoadTextures(context.Background(), cfg)
	if !errors.Is(err, assets.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "rock_texture.jpg") || !strings.Contains(err.Error(), "snow_texture.jpg") {
		t.Errorf("expected missing names in error, got %v", err)
	}
}

func TestLoadTexturesFetchesSource(t *testing.T) {
	cfg := testConfig(t)
	src := t.TempDir()
	writeTextures(t, src, TextureNames())
	cfg.Textures.Source = src
	cfg.Textures.Dir = filepath.Join(t.TempDir(), "pack")

	if _, err := LoadTextures(context.Background(), cfg); err != nil {
		t.Fatalf("LoadTextures: %v", err)
	}
}

func TestStartSessionAndShutdown(t *testing.T) {
	cfg := testConfig(t)
	cfg.Export.WriteParams = true

	s, err := StartSession(context.Background(), cfg)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if s.State() != session.Ready {
		t.Errorf("expected Ready, got %s", s.State())
	}

	if err := Shutdown(cfg, s); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	stats, err := export.Inspect(cfg.Export.Path)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if stats.Vertices != 16*16 {
		t.Errorf("expected %d vertices, got %d", 16*16, stats.Vertices)
	}
	if stats.Faces != 2*15*15 {
		t.Errorf("expected %d faces, got %d", 2*15*15, stats.Faces)
	}
	if _, err := os.Stat(export.PathsFor(cfg.Export.Path).Params); err != nil {
		t.Errorf("expected params sidecar: %v", err)
	}
}

func TestShutdownExportDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Export.Enabled = false

	s, err := StartSession(context.Background(), cfg)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if err := Shutdown(cfg, s); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if _, err := os.Stat(cfg.Export.Path); !os.IsNotExist(err) {
		t.Errorf("expected no export, got %v", err)
	}
}

func TestStartSessionInvalid(t *testing.T) {
	cfg := testConfig(t)
	cfg.Terrain.Octaves = 0

	if _, err := StartSession(context.Background(), cfg); !errors.Is(err, terrain.ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
}

func TestApply(t *testing.T) {
	for _, async := range []bool{false, true} {
		cfg := testConfig(t)
		cfg.Terrain.Async = async

		s, err := StartSession(context.Background(), cfg)
		if err != nil {
			t.Fatalf("StartSession: %v", err)
		}
		before := s.Mesh()

		p := s.Params()
		p.Octaves = 2
		if err := Apply(context.Background(), cfg, s, p); err != nil {
			t.Fatalf("Apply(async=%v): %v", async, err)
		}
		s.Wait()

		if s.Mesh() == before {
			t.Errorf("async=%v: expected a new mesh", async)
		}
		if s.Params().Octaves != 2 {
			t.Errorf("async=%v: expected octaves 2, got %d", async, s.Params().Octaves)
		}

		bad := p
		bad.Persistence = 0
		if err := Apply(context.Background(), cfg, s, bad); !errors.Is(err, terrain.ErrInvalidParams) {
			t.Errorf("async=%v: expected ErrInvalidParams, got %v", async, err)
		}
		s.Close()
	}
}

func TestNewCamera(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.ZoomStep = 35

	c := NewCamera(cfg)
	if c.Distance != 500 {
		t.Errorf("expected distance 500, got %v", c.Distance)
	}
	if c.ZoomStep != 35 {
		t.Errorf("expected zoom step 35, got %v", c.ZoomStep)
	}
	pitch, yaw := c.Degrees()
	if pitch < 44.99 || pitch > 45.01 || yaw < 44.99 || yaw > 45.01 {
		t.Errorf("expected 45/45 degrees, got %v/%v", pitch, yaw)
	}
}

func TestTitle(t *testing.T) {
	got := Title("Terrain", terrain.DefaultParams(), session.Ready)
	for _, want := range []string{"Terrain", "scale 50.0", "octaves 5", "persistence 0.50", "lacunarity 2.00", "factor 200", "[ready]"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
}

func TestStatus(t *testing.T) {
	cfg := testConfig(t)
	s, err := StartSession(context.Background(), cfg)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	defer s.Close()

	v, tris, bands := Status(s)
	if v != 256 || tris != 450 {
		t.Errorf("expected 256 vertices and 450 triangles, got %d and %d", v, tris)
	}
	var total int
	for _, n := range bands {
		total += n
	}
	if total != tris {
		t.Errorf("expected histogram total %d, got %d", tris, total)
	}
}
