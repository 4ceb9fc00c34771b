package terrain

import (
	"context"
	"testing"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		avg  float32
		want Band
	}{
		{-1, Water},
		{0, Water},
		{9.999, Water},
		{10, Sand},
		{14.999, Sand},
		{15, Grass},
		{24.999, Grass},
		{25, Rock},
		{34.999, Rock},
		{35, Snow},
		{50, Snow},
	}

	for _, tt := range tests {
		if got := Classify(tt.avg); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.avg, got, tt.want)
		}
	}
}

func TestBandNamesAndTextures(t *testing.T) {
	want := []struct{ name, texture string }{
		{"water", "water_texture.jpg"},
		{"sand", "sand_texture.jpg"},
		{"grass", "grass_texture.jpg"},
		{"rock", "rock_texture.jpg"},
		{"snow", "snow_texture.jpg"},
	}

	bands := Bands()
	if len(bands) != NumBands {
		t.Fatalf("expected %d bands, got %d", NumBands, len(bands))
	}
	for i, b := range bands {
		if b.Name() != want[i].name {
			t.Errorf("band %d: expected name %q, got %q", i, want[i].name, b.Name())
		}
		if b.Texture() != want[i].texture {
			t.Errorf("band %d: expected texture %q, got %q", i, want[i].texture, b.Texture())
		}
	}
	if Band(99).Name() != "unknown" {
		t.Errorf("expected unknown for out-of-range band, got %q", Band(99).Name())
	}
}

func TestTriangleHeight(t *testing.T) {
	m := &Mesh{
		Positions: [][3]float32{{0, 9, 0}, {1, 12, 0}, {0, 9, 1}},
		Triangles: []Triangle{{0, 1, 2}},
	}
	if got := m.TriangleHeight(0); got != 10 {
		t.Errorf("TriangleHeight(0) = %v, want 10", got)
	}
	if got := m.TriangleBand(0); got != Sand {
		t.Errorf("TriangleBand(0) = %s, want sand", got)
	}
}

func TestGroupByBandCoversAllTriangles(t *testing.T) {
	p := smallParams()
	p.Width, p.Height = 25, 25
	p.Octaves = 5

	m, err := Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	groups := m.GroupByBand()
	hist := m.BandHistogram()
	total := 0
	for b, idx := range groups {
		if len(idx)%3 != 0 {
			t.Errorf("band %s: index count %d not a multiple of 3", Band(b), len(idx))
		}
		if len(idx)/3 != hist[b] {
			t.Errorf("band %s: expected %d triangles, got %d", Band(b), hist[b], len(idx)/3)
		}
		total += len(idx) / 3
	}
	if total != m.TriangleCount() {
		t.Errorf("expected %d grouped triangles, got %d", m.TriangleCount(), total)
	}

	// Normalization spans 0..50, so both extremes must be present.
	if hist[Water] == 0 {
		t.Error("expected some water triangles")
	}
	if hist[Snow] == 0 {
		t.Error("expected some snow triangles")
	}
}
