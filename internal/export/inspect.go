package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/heightforge/pkg/formats"
)

// Stats summarizes an exported OBJ file.
type Stats struct {
	Vertices    int
	TexCoords   int
	Normals     int
	Faces       int
	MaterialLib string
	Materials   map[string]int
}

// Inspect parses an exported OBJ back and checks that its material library exists
// and defines every referenced material.
func Inspect(objPath string) (*Stats, error) {
	f, err := os.Open(objPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	obj, err := formats.ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", objPath, err)
	}

	stats := &Stats{
		Vertices:    len(obj.Positions),
		TexCoords:   len(obj.TexCoords),
		Normals:     len(obj.Normals),
		Faces:       len(obj.Faces),
		MaterialLib: obj.MaterialLib,
		Materials:   obj.MaterialCounts(),
	}

	if obj.MaterialLib == "" {
		return stats, nil
	}
	mtlPath := filepath.Join(filepath.Dir(objPath), obj.MaterialLib)
	mf, err := os.Open(mtlPath)
	if err != nil {
		return stats, fmt.Errorf("opening material library: %w", err)
	}
	defer mf.Close()

	mtl, err := formats.ParseMTL(mf)
	if err != nil {
		return stats, fmt.Errorf("parsing %s: %w", mtlPath, err)
	}
	for name := range stats.Materials {
		if name != "" && mtl.Material(name) == nil {
			return stats, fmt.Errorf("%w: material %q not defined in %s", formats.ErrMalformedMTL, name, obj.MaterialLib)
		}
	}
	return stats, nil
}
