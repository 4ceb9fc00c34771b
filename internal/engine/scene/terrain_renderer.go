// Package scene draws generated terrain meshes with OpenGL.
package scene

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/heightforge/internal/engine/lighting"
	"github.com/Faultbox/heightforge/internal/engine/scene/shaders"
	"github.com/Faultbox/heightforge/internal/engine/shader"
	"github.com/Faultbox/heightforge/internal/engine/texture"
	"github.com/Faultbox/heightforge/internal/terrain"
	"github.com/Faultbox/heightforge/pkg/math"
)

// floatsPerVertex is position(3) + normal(3) + texcoord(2).
const floatsPerVertex = 8

// bandGroup is a contiguous run of indices sharing one band texture.
type bandGroup struct {
	Band       terrain.Band
	StartIndex int32
	IndexCount int32
}

// TerrainRenderer holds the GPU copy of one terrain mesh.
type TerrainRenderer struct {
	program *shader.Program

	vao    uint32
	vbo    uint32
	ebo    uint32
	groups []bandGroup

	textures [terrain.NumBands]uint32

	// mesh is the snapshot currently on the GPU.
	mesh *terrain.Mesh
}

// NewTerrainRenderer compiles the terrain shader and uploads one texture per band.
func NewTerrainRenderer(images [terrain.NumBands]*image.RGBA) (*TerrainRenderer, error) {
	program, err := shader.Compile(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	tr := &TerrainRenderer{program: program}
	for b, img := range images {
		if img == nil {
			tr.Destroy()
			return nil, fmt.Errorf("missing texture for band %s", terrain.Band(b))
		}
		tr.textures[b] = texture.Upload(img)
	}
	return tr, nil
}

// Upload replaces the GPU mesh. Passing the mesh already uploaded is a no-op,
// so callers may hand over the current session snapshot every frame.
func (tr *TerrainRenderer) Upload(mesh *terrain.Mesh) {
	if mesh == tr.mesh {
		return
	}
	tr.clearMesh()
	tr.mesh = mesh
	if mesh == nil || len(mesh.Triangles) == 0 {
		return
	}

	vertices := interleave(mesh)
	indices, groups := bandIndices(mesh)
	tr.groups = groups

	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)

	gl.GenBuffers(1, &tr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &tr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
}

// Mesh returns the snapshot currently uploaded.
func (tr *TerrainRenderer) Mesh() *terrain.Mesh {
	return tr.mesh
}

// Render draws each band group with its texture.
func (tr *TerrainRenderer) Render(viewProj math.Mat4, light lighting.Directional) {
	if tr.vao == 0 {
		return
	}

	tr.program.Use()
	tr.program.SetMat4("uViewProj", viewProj)
	tr.program.SetVec3("uLightDir", light.UnitDirection())
	tr.program.SetFloat("uAmbient", light.Ambient)
	tr.program.SetFloat("uDiffuse", light.Diffuse)
	tr.program.SetInt("uTexture", 0)

	gl.BindVertexArray(tr.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	for _, g := range tr.groups {
		gl.BindTexture(gl.TEXTURE_2D, tr.textures[g.Band])
		gl.DrawElementsWithOffset(gl.TRIANGLES, g.IndexCount, gl.UNSIGNED_INT, uintptr(g.StartIndex*4))
	}
	gl.BindVertexArray(0)
}

func (tr *TerrainRenderer) clearMesh() {
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
		tr.vbo = 0
	}
	if tr.ebo != 0 {
		gl.DeleteBuffers(1, &tr.ebo)
		tr.ebo = 0
	}
	tr.groups = nil
	tr.mesh = nil
}

// Destroy releases all GPU resources.
func (tr *TerrainRenderer) Destroy() {
	tr.clearMesh()
	texture.Delete(tr.textures[:]...)
	tr.textures = [terrain.NumBands]uint32{}
	if tr.program != nil {
		tr.program.Destroy()
	}
}

// interleave packs positions, normals and texcoords into one vertex stream.
func interleave(m *terrain.Mesh) []float32 {
	out := make([]float32, 0, len(m.Positions)*floatsPerVertex)
	for i, p := range m.Positions {
		n, uv := m.Normals[i], m.TexCoords[i]
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return out
}

// bandIndices concatenates triangle indices band by band and records
// where each non-empty band starts.
func bandIndices(m *terrain.Mesh) ([]uint32, []bandGroup) {
	byBand := m.GroupByBand()

	indices := make([]uint32, 0, len(m.Triangles)*3)
	var groups []bandGroup
	for b, idx := range byBand {
		if len(idx) == 0 {
			continue
		}
		groups = append(groups, bandGroup{
			Band:       terrain.Band(b),
			StartIndex: int32(len(indices)),
			IndexCount: int32(len(idx)),
		})
		indices = append(indices, idx...)
	}
	return indices, groups
}
