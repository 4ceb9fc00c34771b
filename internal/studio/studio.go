// Package studio runs the ImGui terrain studio: a parameter panel with an
// Apply button next to an interactive 3D viewport.
package studio

import (
	"context"
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/heightforge/internal/app"
	"github.com/Faultbox/heightforge/internal/config"
	"github.com/Faultbox/heightforge/internal/engine/camera"
	"github.com/Faultbox/heightforge/internal/engine/lighting"
	"github.com/Faultbox/heightforge/internal/engine/renderer"
	"github.com/Faultbox/heightforge/internal/engine/scene"
	"github.com/Faultbox/heightforge/internal/engine/ui"
	"github.com/Faultbox/heightforge/internal/logger"
	"github.com/Faultbox/heightforge/internal/session"
	"github.com/Faultbox/heightforge/pkg/math"
)

const (
	title      = "Terrain Studio"
	panelWidth = float32(300)
)

// Studio holds the ImGui backend and everything drawn each frame.
type Studio struct {
	ctx context.Context
	cfg *config.Config
	log *zap.Logger

	backend  *ui.Backend
	panel    *ui.ParamsPanel
	viewport *ui.Viewport
	terrain  *scene.TerrainRenderer
	session  *session.Session
	camera   *camera.OrbitCamera
	light    lighting.Directional
	limiter  *renderer.Limiter

	lastErr   error
	lastTitle string
}

// New creates the window, uploads textures and builds the initial terrain.
func New(ctx context.Context, cfg *config.Config) (*Studio, error) {
	s := &Studio{
		ctx:     ctx,
		cfg:     cfg,
		log:     logger.Named("studio"),
		camera:  app.NewCamera(cfg),
		light:   lighting.Default(),
		limiter: renderer.NewLimiter(cfg.Graphics.FPSLimit),
	}

	images, err := app.LoadTextures(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading textures: %w", err)
	}

	s.backend, err = ui.NewBackend(title, cfg.Graphics.Width+int(panelWidth), cfg.Graphics.Height)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	if _, err := renderer.Setup(); err != nil {
		s.Close()
		return nil, err
	}

	s.viewport, err = ui.NewViewport(int32(cfg.Graphics.Width), int32(cfg.Graphics.Height))
	if err != nil {
		s.Close()
		return nil, err
	}

	s.terrain, err = scene.NewTerrainRenderer(images)
	if err != nil {
		s.Close()
		return nil, err
	}

	s.session, err = app.StartSession(ctx, cfg)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.panel = ui.NewParamsPanel(s.session.Params())

	s.log.Info("Studio initialized")
	return s, nil
}

// Run blocks until the window is closed.
func (s *Studio) Run() {
	s.backend.Run(s.frame)
}

func (s *Studio) frame() {
	defer s.limiter.Wait()

	s.camera.Rotate(
		ui.KeyAxis(imgui.KeyDownArrow, imgui.KeyUpArrow)*s.cfg.Camera.RotateStep,
		ui.KeyAxis(imgui.KeyLeftArrow, imgui.KeyRightArrow)*s.cfg.Camera.RotateStep,
	)
	s.terrain.Upload(s.session.Mesh())

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, workSize.Y))
	if imgui.BeginV("Parameters", nil, flags) {
		s.drawPanel()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+panelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-panelWidth, workSize.Y))
	if imgui.BeginV("Terrain", nil, flags|imgui.WindowFlagsNoScrollbar) {
		s.viewport.Draw(s.camera, func(viewProj math.Mat4) {
			s.terrain.Render(viewProj, s.light)
		})
	}
	imgui.End()

	s.updateTitle()
}

func (s *Studio) drawPanel() {
	committed := s.session.Params()
	vertices, triangles, bands := app.Status(s.session)

	status := ui.Status{
		State:     s.session.State().String(),
		Vertices:  vertices,
		Triangles: triangles,
		Bands:     bands,
		Err:       s.lastErr,
	}
	if status.Err == nil {
		status.Err = s.session.Err()
	}

	if s.panel.Draw(committed, status) {
		p := s.panel.Draft().Apply(committed)
		s.lastErr = app.Apply(s.ctx, s.cfg, s.session, p)
		if s.lastErr != nil {
			s.log.Warn("Regeneration failed", zap.Error(s.lastErr))
		}
	}
}

func (s *Studio) updateTitle() {
	t := app.Title(title, s.session.Params(), s.session.State())
	if t != s.lastTitle {
		s.backend.SetWindowTitle(t)
		s.lastTitle = t
	}
}

// Close stops the session and exports the final mesh, then frees GL objects.
func (s *Studio) Close() {
	if s.session != nil {
		_ = app.Shutdown(s.cfg, s.session)
		s.session = nil
	}
	if s.terrain != nil {
		s.terrain.Destroy()
		s.terrain = nil
	}
	if s.viewport != nil {
		s.viewport.Destroy()
		s.viewport = nil
	}
	s.log.Info("Studio closed")
}
