package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/heightforge/internal/engine/camera"
	"github.com/Faultbox/heightforge/internal/engine/framebuffer"
	"github.com/Faultbox/heightforge/internal/engine/renderer"
	"github.com/Faultbox/heightforge/pkg/math"
)

// Viewport renders a scene into a framebuffer and shows it as an ImGui image.
// Dragging the image orbits the camera and the wheel zooms.
type Viewport struct {
	fb        *framebuffer.Framebuffer
	lastMouse imgui.Vec2
}

// NewViewport creates a viewport with an initial framebuffer size.
func NewViewport(width, height int32) (*Viewport, error) {
	fb, err := framebuffer.New(width, height)
	if err != nil {
		return nil, err
	}
	return &Viewport{fb: fb}, nil
}

// Draw fills the remaining content region. draw receives the camera's
// view-projection for the current aspect ratio.
func (v *Viewport) Draw(cam *camera.OrbitCamera, draw func(viewProj math.Mat4)) {
	avail := imgui.ContentRegionAvail()
	if avail.X < 1 || avail.Y < 1 {
		return
	}
	v.fb.Resize(int32(avail.X), int32(avail.Y))

	restore := v.fb.Bind()
	w, h := v.fb.Size()
	renderer.Begin(w, h)
	draw(cam.ViewProjection(v.fb.Aspect()))
	restore()

	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(v.fb.ColorTexture()))
	imgui.ImageWithBgV(
		*texRef,
		avail,
		imgui.NewVec2(0, 1), // GL textures are bottom-up
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 1),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mouse := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			cam.HandleDrag(mouse.X-v.lastMouse.X, mouse.Y-v.lastMouse.Y)
		}
		v.lastMouse = mouse

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			cam.HandleZoom(wheel)
		}
	}
}

// Destroy releases the framebuffer.
func (v *Viewport) Destroy() {
	v.fb.Destroy()
}
