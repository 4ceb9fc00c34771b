// Package viewer runs the SDL2 terrain viewer: keys edit parameters, Enter
// regenerates, arrows orbit the camera.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/heightforge/internal/app"
	"github.com/Faultbox/heightforge/internal/config"
	"github.com/Faultbox/heightforge/internal/engine/camera"
	"github.com/Faultbox/heightforge/internal/engine/input"
	"github.com/Faultbox/heightforge/internal/engine/lighting"
	"github.com/Faultbox/heightforge/internal/engine/renderer"
	"github.com/Faultbox/heightforge/internal/engine/scene"
	"github.com/Faultbox/heightforge/internal/engine/screenshot"
	"github.com/Faultbox/heightforge/internal/engine/window"
	"github.com/Faultbox/heightforge/internal/logger"
	"github.com/Faultbox/heightforge/internal/session"
	"github.com/Faultbox/heightforge/internal/terrain"
)

const (
	title         = "Terrain Viewer"
	screenshotDir = "screenshots"
)

// Viewer owns the window, the GPU mesh and the regeneration session.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window  *window.Window
	input   *input.Input
	terrain *scene.TerrainRenderer
	session *session.Session
	camera  *camera.OrbitCamera
	light   lighting.Directional
	limiter *renderer.Limiter
	shots   *screenshot.Capture

	// draft holds edited parameters until Enter commits them.
	draft     terrain.Params
	lastTitle string
	wantShot  bool
}

// New opens the window, loads textures and builds the initial terrain.
func New(ctx context.Context, cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:     cfg,
		log:     logger.Named("viewer"),
		input:   input.New(),
		camera:  app.NewCamera(cfg),
		light:   lighting.Default(),
		limiter: renderer.NewLimiter(cfg.Graphics.FPSLimit),
		shots:   screenshot.New(screenshotDir, "terrain"),
	}

	images, err := app.LoadTextures(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading textures: %w", err)
	}

	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	if _, err := renderer.Setup(); err != nil {
		v.Close()
		return nil, err
	}

	v.terrain, err = scene.NewTerrainRenderer(images)
	if err != nil {
		v.Close()
		return nil, err
	}

	v.session, err = app.StartSession(ctx, cfg)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.draft = v.session.Params()

	v.log.Info("Viewer initialized", zap.String("keys", keyHelp))
	return v, nil
}

// Run loops until the window is closed or Escape is pressed.
func (v *Viewer) Run(ctx context.Context) error {
	frameCount := 0
	fpsTimer := time.Now()

	for {
		if v.input.Update() {
			return nil
		}
		if v.handleEvents(ctx) {
			return nil
		}

		v.camera.Rotate(
			v.input.Axis(sdl.SCANCODE_DOWN, sdl.SCANCODE_UP)*v.cfg.Camera.RotateStep,
			v.input.Axis(sdl.SCANCODE_LEFT, sdl.SCANCODE_RIGHT)*v.cfg.Camera.RotateStep,
		)

		v.render()
		if v.wantShot {
			v.capture()
			v.wantShot = false
		}
		v.window.SwapBuffers()
		v.updateTitle()

		dt := v.limiter.Wait()
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("Frame stats", zap.Int("fps", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

// handleEvents processes this frame's events and reports whether to quit.
func (v *Viewer) handleEvents(ctx context.Context) bool {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventMouseDrag:
			v.camera.HandleDrag(e.DX, e.DY)
		case input.EventMouseWheel:
			v.camera.HandleZoom(e.DY)
		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				return true
			case sdl.SCANCODE_RETURN, sdl.SCANCODE_KP_ENTER:
				v.apply(ctx)
			case sdl.SCANCODE_BACKSPACE:
				v.draft = v.session.Params()
			case sdl.SCANCODE_F12:
				v.wantShot = true
			case sdl.SCANCODE_HOME:
				if m := v.session.Mesh(); m != nil {
					v.camera.FitToBounds(m.Bounds.Min, m.Bounds.Max)
				}
			case sdl.SCANCODE_F5:
				v.saveConfig()
			default:
				if p, ok := adjust(v.draft, e.Key); ok {
					v.draft = p
				}
			}
		}
	}
	return false
}

func (v *Viewer) apply(ctx context.Context) {
	if err := app.Apply(ctx, v.cfg, v.session, v.draft); err != nil {
		v.log.Warn("Regeneration failed", zap.Error(err))
		return
	}
	v.log.Info("Parameters applied",
		zap.Float64("scale", v.draft.Scale),
		zap.Int("octaves", v.draft.Octaves),
		zap.Float64("persistence", v.draft.Persistence),
		zap.Float64("lacunarity", v.draft.Lacunarity),
		zap.Float64("scale_factor", v.draft.ScaleFactor),
		zap.Int64("seed", v.draft.Seed),
	)
}

func (v *Viewer) render() {
	v.terrain.Upload(v.session.Mesh())

	w, h := v.window.Size()
	renderer.Begin(w, h)
	if h > 0 {
		v.terrain.Render(v.camera.ViewProjection(float32(w)/float32(h)), v.light)
	}
}

// saveConfig stores the committed parameters in the user config file so the
// next run starts from them.
func (v *Viewer) saveConfig() {
	v.cfg.SetTerrainParams(v.session.Params())
	if err := v.cfg.Save(); err != nil {
		v.log.Warn("Saving config failed", zap.Error(err))
		return
	}
	v.log.Info("Config saved", zap.String("dir", config.ConfigDir()))
}

// capture saves the back buffer before it is presented.
func (v *Viewer) capture() {
	w, h := v.window.Size()
	img, err := screenshot.FromPixels(screenshot.ReadFramebuffer(w, h), int(w), int(h))
	if err != nil {
		v.log.Warn("Screenshot failed", zap.Error(err))
		return
	}
	path, err := v.shots.Save(img)
	if err != nil {
		v.log.Warn("Screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("Screenshot saved", zap.String("path", path))
}

// updateTitle shows the draft and session state; pending edits are marked.
func (v *Viewer) updateTitle() {
	t := app.Title(title, v.draft, v.session.State())
	if v.draft != v.session.Params() {
		t += " *"
	}
	if t != v.lastTitle {
		v.window.SetTitle(t)
		v.lastTitle = t
	}
}

// Close stops the session, exports the final mesh and releases GL and SDL
// resources. Export failures are logged and do not abort shutdown.
func (v *Viewer) Close() {
	if v.session != nil {
		_ = app.Shutdown(v.cfg, v.session)
		v.session = nil
	}
	if v.terrain != nil {
		v.terrain.Destroy()
		v.terrain = nil
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
	v.log.Info("Viewer closed")
}
