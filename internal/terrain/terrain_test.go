package terrain

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Faultbox/heightforge/internal/noise"
)

func smallParams() Params {
	return Params{
		Width:       4,
		Height:      4,
		Scale:       50,
		Octaves:     1,
		Persistence: 0.5,
		Lacunarity:  2,
		ScaleFactor: 200,
		Amplitude:   DefaultAmplitude,
	}
}

func flatHeightmap(w, h int, v float64) *Heightmap {
	values := make([][]float64, w)
	for x := range values {
		values[x] = make([]float64, h)
		for y := range values[x] {
			values[x][y] = v
		}
	}
	return &Heightmap{Values: values, Width: w, Height: h}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(p *Params)
		wantErr bool
	}{
		{"defaults", func(p *Params) {}, false},
		{"zero scale", func(p *Params) { p.Scale = 0 }, true},
		{"negative scale", func(p *Params) { p.Scale = -5 }, true},
		{"nan scale", func(p *Params) { p.Scale = math.NaN() }, true},
		{"one column", func(p *Params) { p.Width = 1 }, true},
		{"one row", func(p *Params) { p.Height = 1 }, true},
		{"zero scale factor", func(p *Params) { p.ScaleFactor = 0 }, true},
		{"zero octaves", func(p *Params) { p.Octaves = 0 }, true},
		{"negative workers", func(p *Params) { p.Workers = -1 }, true},
		{"unknown noise", func(p *Params) { p.Noise = "value" }, true},
		{"simplex", func(p *Params) { p.Noise = noise.KindSimplex }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestParamsClamp(t *testing.T) {
	p := Params{Scale: 1, Octaves: 20, Persistence: 2, Lacunarity: 0.5, ScaleFactor: 1000}
	got := p.Clamp()

	if got.Scale != MinScale {
		t.Errorf("expected scale %v, got %v", MinScale, got.Scale)
	}
	if got.Octaves != MaxOctaves {
		t.Errorf("expected octaves %d, got %d", MaxOctaves, got.Octaves)
	}
	if got.Persistence != MaxPersistence {
		t.Errorf("expected persistence %v, got %v", MaxPersistence, got.Persistence)
	}
	if got.Lacunarity != MinLacunarity {
		t.Errorf("expected lacunarity %v, got %v", MinLacunarity, got.Lacunarity)
	}
	if got.ScaleFactor != MaxScaleFactor {
		t.Errorf("expected scale factor %v, got %v", MaxScaleFactor, got.ScaleFactor)
	}

	def := DefaultParams()
	if def.Clamp() != def {
		t.Error("defaults should already be within slider ranges")
	}
}

func TestBuildHeightmapDeterministic(t *testing.T) {
	p := DefaultParams()
	p.Width, p.Height = 32, 24

	a, err := BuildHeightmap(context.Background(), p)
	if err != nil {
		t.Fatalf("BuildHeightmap: %v", err)
	}
	p.Workers = 1
	b, err := BuildHeightmap(context.Background(), p)
	if err != nil {
		t.Fatalf("BuildHeightmap: %v", err)
	}

	if a.Width != 32 || a.Height != 24 || len(a.Values) != 32 {
		t.Fatalf("expected 32x24 heightmap, got %dx%d (%d columns)", a.Width, a.Height, len(a.Values))
	}
	for x := range a.Width {
		if len(a.Values[x]) != 24 {
			t.Fatalf("column %d: expected 24 values, got %d", x, len(a.Values[x]))
		}
		for y := range a.Height {
			if math.Float64bits(a.At(x, y)) != math.Float64bits(b.At(x, y)) {
				t.Fatalf("(%d,%d): %v vs %v", x, y, a.At(x, y), b.At(x, y))
			}
			if math.IsNaN(a.At(x, y)) || math.IsInf(a.At(x, y), 0) {
				t.Fatalf("(%d,%d): non-finite height %v", x, y, a.At(x, y))
			}
		}
	}
}

func TestBuildHeightmapAmplitude(t *testing.T) {
	p := DefaultParams()
	p.Width, p.Height = 16, 16
	p.Amplitude = 0

	hm, err := BuildHeightmap(context.Background(), p)
	if err != nil {
		t.Fatalf("BuildHeightmap: %v", err)
	}
	lo, hi := hm.Range()
	if lo != 0 || hi != 0 {
		t.Errorf("expected flat heightmap with zero amplitude, got range [%v, %v]", lo, hi)
	}
}

func TestBuildHeightmapInvalid(t *testing.T) {
	p := DefaultParams()
	p.Scale = 0

	hm, err := BuildHeightmap(context.Background(), p)
	if err == nil {
		t.Fatal("expected error for zero scale, got nil")
	}
	if hm != nil {
		t.Error("expected nil heightmap on error")
	}
	if !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
}

func TestBuildHeightmapCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hm, err := BuildHeightmap(ctx, DefaultParams())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if hm != nil {
		t.Error("expected nil heightmap after cancellation")
	}
}

func TestGenerateCounts(t *testing.T) {
	sizes := []struct{ w, h int }{{2, 2}, {4, 4}, {7, 3}, {3, 9}}

	for _, s := range sizes {
		p := smallParams()
		p.Width, p.Height = s.w, s.h

		m, err := Generate(context.Background(), p)
		if err != nil {
			t.Fatalf("Generate(%dx%d): %v", s.w, s.h, err)
		}

		n := s.w * s.h
		if len(m.Positions) != n || len(m.TexCoords) != n || len(m.Normals) != n {
			t.Errorf("%dx%d: expected %d vertices, got positions=%d texcoords=%d normals=%d",
				s.w, s.h, n, len(m.Positions), len(m.TexCoords), len(m.Normals))
		}
		wantTris := 2 * (s.w - 1) * (s.h - 1)
		if m.TriangleCount() != wantTris {
			t.Errorf("%dx%d: expected %d triangles, got %d", s.w, s.h, wantTris, m.TriangleCount())
		}
		for i, tri := range m.Triangles {
			for _, idx := range tri {
				if int(idx) >= n {
					t.Fatalf("%dx%d: triangle %d index %d out of range", s.w, s.h, i, idx)
				}
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := smallParams()
	p.Width, p.Height = 20, 20
	p.Octaves = 4

	a, err := Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] || a.Normals[i] != b.Normals[i] || a.TexCoords[i] != b.TexCoords[i] {
			t.Fatalf("vertex %d differs between runs", i)
		}
	}
	for i := range a.Triangles {
		if a.Triangles[i] != b.Triangles[i] {
			t.Fatalf("triangle %d differs between runs", i)
		}
	}
}

func TestScenarioFourByFour(t *testing.T) {
	m, err := Generate(context.Background(), smallParams())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if m.VertexCount() != 16 {
		t.Errorf("expected 16 vertices, got %d", m.VertexCount())
	}
	if m.TriangleCount() != 18 {
		t.Errorf("expected 18 triangles, got %d", m.TriangleCount())
	}

	// Column 0 occupies indices 0..3, column 3 occupies 12..15.
	for y := range 4 {
		if x := m.Positions[y][0]; x != -100 {
			t.Errorf("vertex %d: expected x=-100, got %v", y, x)
		}
		if x := m.Positions[12+y][0]; x != 100 {
			t.Errorf("vertex %d: expected x=100, got %v", 12+y, x)
		}
	}
	if m.Bounds.Min[0] != -100 || m.Bounds.Max[0] != 100 {
		t.Errorf("expected x bounds [-100,100], got [%v,%v]", m.Bounds.Min[0], m.Bounds.Max[0])
	}
	if m.Bounds.Min[2] != -100 || m.Bounds.Max[2] != 100 {
		t.Errorf("expected z bounds [-100,100], got [%v,%v]", m.Bounds.Min[2], m.Bounds.Max[2])
	}
}

func TestBuildVerticesNormalization(t *testing.T) {
	hm := flatHeightmap(3, 3, 0)
	hm.Values[1][1] = 4
	hm.Values[2][2] = -4

	positions, texCoords := BuildVertices(hm, 100)

	if got := positions[1*3+1][1]; got != HeightRange {
		t.Errorf("max height: expected %v, got %v", HeightRange, got)
	}
	if got := positions[2*3+2][1]; got != 0 {
		t.Errorf("min height: expected 0, got %v", got)
	}
	if got := positions[0][1]; got != HeightRange/2 {
		t.Errorf("mid height: expected %v, got %v", HeightRange/2, got)
	}

	if texCoords[0] != [2]float32{0, 0} {
		t.Errorf("expected first texcoord (0,0), got %v", texCoords[0])
	}
	if texCoords[8] != [2]float32{1, 1} {
		t.Errorf("expected last texcoord (1,1), got %v", texCoords[8])
	}
	if texCoords[1*3+2] != [2]float32{0.5, 1} {
		t.Errorf("expected texcoord (0.5,1), got %v", texCoords[1*3+2])
	}
}

func TestFlatHeightmap(t *testing.T) {
	m, err := BuildMesh(flatHeightmap(5, 5, 3.5), 200)
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}

	for i, p := range m.Positions {
		if p[1] != 0 {
			t.Fatalf("vertex %d: expected y=0, got %v", i, p[1])
		}
	}
	for i, n := range m.Normals {
		if n[0] != 0 || n[2] != 0 || math.Abs(float64(n[1])-1) > 1e-6 {
			t.Fatalf("normal %d: expected (0,1,0), got %v", i, n)
		}
	}
	for i := range m.Triangles {
		if b := m.TriangleBand(i); b != Water {
			t.Fatalf("triangle %d: expected water, got %s", i, b)
		}
	}
}

func TestNormalsUnitLength(t *testing.T) {
	p := smallParams()
	p.Width, p.Height = 30, 30
	p.Octaves = 6

	m, err := Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for i, n := range m.Normals {
		l := math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
		if math.Abs(l-1) > 1e-5 {
			t.Fatalf("normal %d: expected unit length, got %v", i, l)
		}
		if n[1] <= 0 {
			t.Fatalf("normal %d: expected upward facing, got %v", i, n)
		}
	}
}

func TestBuildNormalsDegenerate(t *testing.T) {
	positions := [][3]float32{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {5, 5, 5}}
	normals := BuildNormals(positions, []Triangle{{0, 1, 2}})

	for i, n := range normals {
		if n != [3]float32{0, 1, 0} {
			t.Errorf("normal %d: expected fallback (0,1,0), got %v", i, n)
		}
	}
}

func TestBuildTopologyWinding(t *testing.T) {
	tris := BuildTopology(3, 4)
	if len(tris) != 12 {
		t.Fatalf("expected 12 triangles, got %d", len(tris))
	}
	if tris[0] != (Triangle{0, 1, 5}) {
		t.Errorf("expected first triangle (0,1,5), got %v", tris[0])
	}
	if tris[1] != (Triangle{0, 5, 4}) {
		t.Errorf("expected second triangle (0,5,4), got %v", tris[1])
	}
	if BuildTopology(1, 5) != nil {
		t.Error("expected no triangles for a single column")
	}
}

func TestBuildMeshRejectsBadHeightmap(t *testing.T) {
	if _, err := BuildMesh(nil, 100); err == nil {
		t.Error("expected error for nil heightmap")
	}
	if _, err := BuildMesh(flatHeightmap(1, 4, 0), 100); err == nil {
		t.Error("expected error for 1-column heightmap")
	}
}
