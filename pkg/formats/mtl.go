package formats

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// MTLMaterial is a material with a single diffuse texture map.
type MTLMaterial struct {
	Name       string
	DiffuseMap string
}

// MTL is a Wavefront material library.
type MTL struct {
	Materials []MTLMaterial
}

// Encode writes one newmtl/map_Kd block per material, separated by blank lines.
func (m *MTL) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, mat := range m.Materials {
		if mat.Name == "" {
			return fmt.Errorf("%w: material without name", ErrMalformedMTL)
		}
		fmt.Fprintf(bw, "newmtl %s\n", mat.Name)
		if mat.DiffuseMap != "" {
			fmt.Fprintf(bw, "map_Kd %s\n", mat.DiffuseMap)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Material returns the named material, or nil.
func (m *MTL) Material(name string) *MTLMaterial {
	for i := range m.Materials {
		if m.Materials[i].Name == name {
			return &m.Materials[i]
		}
	}
	return nil
}

// ParseMTL reads newmtl and map_Kd statements. Other statements are ignored.
func ParseMTL(r io.Reader) (*MTL, error) {
	mtl := &MTL{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: line %d: newmtl needs one name", ErrMalformedMTL, lineNo)
			}
			mtl.Materials = append(mtl.Materials, MTLMaterial{Name: fields[1]})
		case "map_Kd":
			if len(mtl.Materials) == 0 {
				return nil, fmt.Errorf("%w: line %d: map_Kd before newmtl", ErrMalformedMTL, lineNo)
			}
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: map_Kd needs a file", ErrMalformedMTL, lineNo)
			}
			// Texture options precede the filename.
			mtl.Materials[len(mtl.Materials)-1].DiffuseMap = fields[len(fields)-1]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read mtl: %w", err)
	}
	return mtl, nil
}
