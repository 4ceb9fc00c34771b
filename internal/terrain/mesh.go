package terrain

import (
	"context"
	"fmt"

	"github.com/Faultbox/heightforge/pkg/math"
)

// HeightRange is the span of normalized vertex heights.
const HeightRange = 50.0

// Triangle holds three vertex indices.
type Triangle [3]uint32

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Mesh is an immutable terrain mesh. Positions, TexCoords and Normals are index-aligned.
type Mesh struct {
	Positions  [][3]float32
	TexCoords  [][2]float32
	Normals    [][3]float32
	Triangles  []Triangle
	GridWidth  int
	GridHeight int
	Bounds     Bounds
}

// Generate builds a heightmap and turns it into a mesh.
func Generate(ctx context.Context, p Params) (*Mesh, error) {
	hm, err := BuildHeightmap(ctx, p)
	if err != nil {
		return nil, err
	}
	return BuildMesh(hm, p.ScaleFactor)
}

// BuildMesh converts a heightmap into a centered mesh spanning scaleFactor on x and z.
func BuildMesh(hm *Heightmap, scaleFactor float64) (*Mesh, error) {
	if hm == nil || hm.Width < 2 || hm.Height < 2 {
		return nil, fmt.Errorf("%w: heightmap must be at least 2x2", ErrInvalidParams)
	}
	if len(hm.Values) != hm.Width {
		return nil, fmt.Errorf("%w: heightmap has %d columns, want %d", ErrInvalidParams, len(hm.Values), hm.Width)
	}

	positions, texCoords := BuildVertices(hm, scaleFactor)
	triangles := BuildTopology(hm.Width, hm.Height)

	return &Mesh{
		Positions:  positions,
		TexCoords:  texCoords,
		Normals:    BuildNormals(positions, triangles),
		Triangles:  triangles,
		GridWidth:  hm.Width,
		GridHeight: hm.Height,
		Bounds:     computeBounds(positions),
	}, nil
}

// BuildVertices lays out one vertex per grid cell, index x*Height + y.
func BuildVertices(hm *Heightmap, scaleFactor float64) ([][3]float32, [][2]float32) {
	w, h := hm.Width, hm.Height
	lo, hi := hm.Range()
	span := hi - lo
	if span == 0 {
		span = 1
	}

	positions := make([][3]float32, 0, w*h)
	texCoords := make([][2]float32, 0, w*h)
	for x := range w {
		px := axis(x, w, scaleFactor)
		u := float32(float64(x) / float64(w-1))
		for y := range h {
			py := HeightRange * (hm.Values[x][y] - lo) / span
			positions = append(positions, [3]float32{px, float32(py), axis(y, h, scaleFactor)})
			texCoords = append(texCoords, [2]float32{u, float32(float64(y) / float64(h-1))})
		}
	}
	return positions, texCoords
}

// axis maps grid index i of n onto [-size/2, size/2].
func axis(i, n int, size float64) float32 {
	return float32(size*float64(i)/float64(n-1) - size/2)
}

// BuildTopology emits two triangles per grid quad.
func BuildTopology(w, h int) []Triangle {
	if w < 2 || h < 2 {
		return nil
	}
	tris := make([]Triangle, 0, 2*(w-1)*(h-1))
	stride := uint32(h)
	for x := range w - 1 {
		for y := range h - 1 {
			i := uint32(x*h + y)
			tris = append(tris,
				Triangle{i, i + 1, i + stride + 1},
				Triangle{i, i + stride + 1, i + stride},
			)
		}
	}
	return tris
}

// BuildNormals sums the unnormalized face normals around each vertex, so larger
// faces weigh more, then normalizes.
func BuildNormals(positions [][3]float32, triangles []Triangle) [][3]float32 {
	acc := make([]math.Vec3, len(positions))
	for _, t := range triangles {
		a, b, c := vec(positions[t[0]]), vec(positions[t[1]]), vec(positions[t[2]])
		n := b.Sub(a).Cross(c.Sub(a))
		for _, idx := range t {
			acc[idx] = acc[idx].Add(n)
		}
	}

	normals := make([][3]float32, len(positions))
	for i, n := range acc {
		if n.Length() < 1e-6 {
			normals[i] = [3]float32{0, 1, 0}
			continue
		}
		normals[i] = n.Normalize().Array()
	}
	return normals
}

func vec(p [3]float32) math.Vec3 {
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

func computeBounds(positions [][3]float32) Bounds {
	b := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for _, p := range positions {
		for i := range 3 {
			b.Min[i] = min(b.Min[i], p[i])
			b.Max[i] = max(b.Max[i], p[i])
		}
	}
	return b
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Triangles) }
