package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// OBJFace is a triangle whose corners share the same index into positions,
// texcoords and normals. Indices are 0-based in memory.
type OBJFace struct {
	Material string
	Indices  [3]uint32
}

// OBJ is the subset of Wavefront OBJ used for terrain meshes.
type OBJ struct {
	MaterialLib string
	Positions   [][3]float32
	TexCoords   [][2]float32
	Normals     [][3]float32
	Faces       []OBJFace
}

// Encode writes the mesh with 1-based "f a/a/a" faces. usemtl is emitted
// whenever a face's material differs from the previous one.
func (o *OBJ) Encode(w io.Writer) error {
	n := uint32(len(o.Positions))
	if len(o.TexCoords) != int(n) || len(o.Normals) != int(n) {
		return fmt.Errorf("%w: %d positions, %d texcoords, %d normals",
			ErrMalformedOBJ, n, len(o.TexCoords), len(o.Normals))
	}

	bw := bufio.NewWriter(w)
	if o.MaterialLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", o.MaterialLib)
	}

	buf := make([]byte, 0, 64)
	for _, p := range o.Positions {
		buf = append(buf[:0], "v "...)
		buf = appendFloat(buf, p[0])
		buf = append(buf, ' ')
		buf = appendFloat(buf, p[1])
		buf = append(buf, ' ')
		buf = appendFloat(buf, p[2])
		buf = append(buf, '\n')
		bw.Write(buf)
	}
	for _, t := range o.TexCoords {
		buf = append(buf[:0], "vt "...)
		buf = appendFloat(buf, t[0])
		buf = append(buf, ' ')
		buf = appendFloat(buf, t[1])
		buf = append(buf, '\n')
		bw.Write(buf)
	}
	for _, nm := range o.Normals {
		buf = append(buf[:0], "vn "...)
		buf = appendFloat(buf, nm[0])
		buf = append(buf, ' ')
		buf = appendFloat(buf, nm[1])
		buf = append(buf, ' ')
		buf = appendFloat(buf, nm[2])
		buf = append(buf, '\n')
		bw.Write(buf)
	}

	current := ""
	for i, f := range o.Faces {
		if i == 0 || f.Material != current {
			current = f.Material
			if current != "" {
				fmt.Fprintf(bw, "usemtl %s\n", current)
			}
		}
		buf = append(buf[:0], 'f')
		for _, idx := range f.Indices {
			if idx >= n {
				return fmt.Errorf("%w: face %d index %d out of range", ErrMalformedOBJ, i, idx)
			}
			one := uint64(idx) + 1
			buf = append(buf, ' ')
			buf = strconv.AppendUint(buf, one, 10)
			buf = append(buf, '/')
			buf = strconv.AppendUint(buf, one, 10)
			buf = append(buf, '/')
			buf = strconv.AppendUint(buf, one, 10)
		}
		buf = append(buf, '\n')
		bw.Write(buf)
	}

	return bw.Flush()
}

// MaterialCounts returns the number of faces per material.
func (o *OBJ) MaterialCounts() map[string]int {
	counts := make(map[string]int)
	for _, f := range o.Faces {
		counts[f.Material]++
	}
	return counts
}

// ParseOBJ reads mtllib, v, vt, vn, usemtl and f statements. Faces with more
// than three corners are fan-triangulated. Only the position index of each
// corner is kept; indices are converted to 0-based.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	material := ""
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "mtllib":
			if len(fields) > 1 {
				obj.MaterialLib = fields[1]
			}
		case "usemtl":
			if len(fields) > 1 {
				material = fields[1]
			}
		case "v":
			var v [3]float32
			err = parseFloats(fields[1:], v[:])
			obj.Positions = append(obj.Positions, v)
		case "vt":
			var v [2]float32
			err = parseFloats(fields[1:], v[:])
			obj.TexCoords = append(obj.TexCoords, v)
		case "vn":
			var v [3]float32
			err = parseFloats(fields[1:], v[:])
			obj.Normals = append(obj.Normals, v)
		case "f":
			err = obj.appendFaces(fields[1:], material)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJ, lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	return obj, nil
}

func (o *OBJ) appendFaces(corners []string, material string) error {
	if len(corners) < 3 {
		return fmt.Errorf("face needs at least 3 corners, got %d", len(corners))
	}
	idx := make([]uint32, len(corners))
	for i, c := range corners {
		ref, _, _ := strings.Cut(c, "/")
		v, err := strconv.Atoi(ref)
		if err != nil {
			return fmt.Errorf("bad face index %q", c)
		}
		// Negative indices are relative to the end of the vertex list.
		if v < 0 {
			v = len(o.Positions) + v + 1
		}
		if v < 1 || v > len(o.Positions) {
			return fmt.Errorf("face index %d out of range [1,%d]", v, len(o.Positions))
		}
		idx[i] = uint32(v - 1)
	}
	for i := 1; i+1 < len(idx); i++ {
		o.Faces = append(o.Faces, OBJFace{
			Material: material,
			Indices:  [3]uint32{idx[0], idx[i], idx[i+1]},
		})
	}
	return nil
}

func parseFloats(fields []string, out []float32) error {
	if len(fields) < len(out) {
		return fmt.Errorf("expected %d components, got %d", len(out), len(fields))
	}
	for i := range out {
		v, err := parseFloat(fields[i])
		if err != nil {
			return fmt.Errorf("bad number %q", fields[i])
		}
		out[i] = v
	}
	return nil
}
