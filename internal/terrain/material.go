package terrain

// Band is a height-based material class.
type Band int

const (
	Water Band = iota
	Sand
	Grass
	Rock
	Snow

	NumBands = 5
)

// Upper bounds (exclusive) of the normalized average height for each band.
const (
	waterLimit = 10
	sandLimit  = 15
	grassLimit = 25
	rockLimit  = 35
)

var bandNames = [NumBands]string{"water", "sand", "grass", "rock", "snow"}

// Bands returns all bands in material-library order.
func Bands() []Band {
	return []Band{Water, Sand, Grass, Rock, Snow}
}

// Name returns the material name used in MTL and OBJ files.
func (b Band) Name() string {
	if b < 0 || b >= NumBands {
		return "unknown"
	}
	return bandNames[b]
}

// Texture returns the band's diffuse texture filename.
func (b Band) Texture() string {
	return b.Name() + "_texture.jpg"
}

func (b Band) String() string { return b.Name() }

// Classify maps an average normalized height to a band.
func Classify(avg float32) Band {
	switch {
	case avg < waterLimit:
		return Water
	case avg < sandLimit:
		return Sand
	case avg < grassLimit:
		return Grass
	case avg < rockLimit:
		return Rock
	default:
		return Snow
	}
}

// TriangleHeight returns the mean y of triangle i's vertices.
func (m *Mesh) TriangleHeight(i int) float32 {
	t := m.Triangles[i]
	return (m.Positions[t[0]][1] + m.Positions[t[1]][1] + m.Positions[t[2]][1]) / 3
}

// TriangleBand classifies triangle i. Rendering and export both use it.
func (m *Mesh) TriangleBand(i int) Band {
	return Classify(m.TriangleHeight(i))
}

// GroupByBand returns flattened index lists per band for batched drawing.
func (m *Mesh) GroupByBand() [NumBands][]uint32 {
	var groups [NumBands][]uint32
	for i, t := range m.Triangles {
		b := m.TriangleBand(i)
		groups[b] = append(groups[b], t[0], t[1], t[2])
	}
	return groups
}

// BandHistogram counts triangles per band.
func (m *Mesh) BandHistogram() [NumBands]int {
	var counts [NumBands]int
	for i := range m.Triangles {
		counts[m.TriangleBand(i)]++
	}
	return counts
}
