// Package renderer sets up shared GL state and paces the frame loop.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/heightforge/internal/logger"
)

// ClearColor is the sky color behind the terrain.
var ClearColor = [4]float32{0.5, 0.7, 0.9, 1.0}

// Info describes the active GL context.
type Info struct {
	Version  string
	Renderer string
}

// Setup logs the context and enables depth testing. Culling stays off so
// both faces of the surface draw. Call it after gl.Init.
func Setup() (Info, error) {
	if v := gl.GetString(gl.VERSION); v == nil {
		return Info{}, fmt.Errorf("no current OpenGL context")
	}
	info := Info{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
	}
	logger.Info("OpenGL initialized",
		zap.String("version", info.Version),
		zap.String("renderer", info.Renderer),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	return info, nil
}

// Begin sets the viewport and clears color and depth.
func Begin(width, height int32) {
	gl.Viewport(0, 0, width, height)
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}
