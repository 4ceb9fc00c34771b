// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader transforms terrain vertices and passes normals and texcoords on.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader samples the band texture and applies directional lighting.
//
//go:embed terrain.frag
var TerrainFragmentShader string
