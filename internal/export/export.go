// Package export writes terrain meshes as Wavefront OBJ with a companion MTL library.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/heightforge/internal/logger"
	"github.com/Faultbox/heightforge/internal/terrain"
	"github.com/Faultbox/heightforge/pkg/formats"
)

// ErrNoMesh is returned when there is nothing to export.
var ErrNoMesh = errors.New("no mesh to export")

// Options controls optional export outputs.
type Options struct {
	// Params, when set together with WriteParams, is saved as <base>.params.yaml.
	Params      *terrain.Params
	WriteParams bool
}

// Paths lists the files produced for an export target.
type Paths struct {
	OBJ    string
	MTL    string
	Params string
}

// PathsFor derives the MTL and params sidecar paths from the OBJ path.
func PathsFor(objPath string) Paths {
	base := strings.TrimSuffix(objPath, filepath.Ext(objPath))
	return Paths{
		OBJ:    objPath,
		MTL:    base + ".mtl",
		Params: base + ".params.yaml",
	}
}

// Export writes the material library and then the mesh. If the library cannot
// be written, no OBJ is created. Each file is written to a temp file and renamed
// into place.
func Export(path string, mesh *terrain.Mesh, opts Options) error {
	if mesh == nil {
		return ErrNoMesh
	}
	paths := PathsFor(path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	if err := writeAtomic(paths.MTL, MaterialLibrary().Encode); err != nil {
		return fmt.Errorf("writing %s: %w", paths.MTL, err)
	}

	obj := ToOBJ(mesh, filepath.Base(paths.MTL))
	if err := writeAtomic(paths.OBJ, obj.Encode); err != nil {
		return fmt.Errorf("writing %s: %w", paths.OBJ, err)
	}

	if opts.WriteParams && opts.Params != nil {
		if err := writeParams(paths.Params, *opts.Params); err != nil {
			return fmt.Errorf("writing %s: %w", paths.Params, err)
		}
	}
	return nil
}

// OnExit exports the final mesh once after the interactive loop. Failures are
// logged with the target path and returned; callers continue shutting down.
func OnExit(path string, mesh *terrain.Mesh, opts Options) error {
	log := logger.Named("export")
	if mesh == nil {
		log.Warn("No terrain built, skipping export", zap.String("path", path))
		return ErrNoMesh
	}

	start := time.Now()
	if err := Export(path, mesh, opts); err != nil {
		log.Error("Export failed", zap.String("path", path), zap.Error(err))
		return err
	}
	log.Info("Exported terrain",
		zap.String("path", path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Duration("took", time.Since(start)))
	return nil
}

// MaterialLibrary returns one material per band in band order.
func MaterialLibrary() *formats.MTL {
	mtl := &formats.MTL{}
	for _, b := range terrain.Bands() {
		mtl.Materials = append(mtl.Materials, formats.MTLMaterial{
			Name:       b.Name(),
			DiffuseMap: b.Texture(),
		})
	}
	return mtl
}

// ToOBJ converts a mesh into OBJ form, tagging each face with its band material.
func ToOBJ(mesh *terrain.Mesh, materialLib string) *formats.OBJ {
	faces := make([]formats.OBJFace, len(mesh.Triangles))
	for i, t := range mesh.Triangles {
		faces[i] = formats.OBJFace{
			Material: mesh.TriangleBand(i).Name(),
			Indices:  t,
		}
	}
	return &formats.OBJ{
		MaterialLib: materialLib,
		Positions:   mesh.Positions,
		TexCoords:   mesh.TexCoords,
		Normals:     mesh.Normals,
		Faces:       faces,
	}
}

func writeParams(path string, p terrain.Params) error {
	return writeAtomic(path, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return multierr.Append(enc.Encode(p), enc.Close())
	})
}

// writeAtomic encodes into a temp file next to path and renames it into place.
func writeAtomic(path string, encode func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	err = encode(f)
	multierr.AppendInto(&err, f.Chmod(0644))
	multierr.AppendInto(&err, f.Close())
	if err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
