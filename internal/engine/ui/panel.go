package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/heightforge/internal/terrain"
)

// Status is what the panel shows about the current session.
type Status struct {
	State     string
	Vertices  int
	Triangles int
	Bands     [terrain.NumBands]int
	Err       error
}

// ParamsPanel edits generation parameters. Slider moves only change the
// draft; nothing regenerates until Apply is pressed.
type ParamsPanel struct {
	draft Draft
}

// NewParamsPanel starts a panel from p.
func NewParamsPanel(p terrain.Params) *ParamsPanel {
	return &ParamsPanel{draft: DraftFrom(p)}
}

// Draft returns the pending values.
func (pp *ParamsPanel) Draft() Draft {
	return pp.draft
}

// Reset discards pending edits and shows p.
func (pp *ParamsPanel) Reset(p terrain.Params) {
	pp.draft = DraftFrom(p)
}

// Draw renders the sliders and returns true when Apply was pressed.
func (pp *ParamsPanel) Draw(committed terrain.Params, status Status) (apply bool) {
	d := &pp.draft

	imgui.SliderFloatV("Scale", &d.Scale, terrain.MinScale, terrain.MaxScale, "%.1f", imgui.SliderFlagsNone)
	imgui.SliderIntV("Octaves", &d.Octaves, terrain.MinOctaves, terrain.MaxOctaves, "%d", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Persistence", &d.Persistence, terrain.MinPersistence, terrain.MaxPersistence, "%.2f", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Lacunarity", &d.Lacunarity, terrain.MinLacunarity, terrain.MaxLacunarity, "%.2f", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Scale Factor", &d.ScaleFactor, terrain.MinScaleFactor, terrain.MaxScaleFactor, "%.0f", imgui.SliderFlagsNone)
	imgui.SliderIntV("Seed", &d.Seed, 0, 9999, "%d", imgui.SliderFlagsNone)

	imgui.Separator()
	apply = imgui.Button("Apply")
	imgui.SameLine()
	if imgui.Button("Revert") {
		pp.Reset(committed)
	}
	if d.Changed(committed) {
		imgui.SameLine()
		imgui.TextColored(imgui.NewVec4(0.9, 0.8, 0.3, 1), "pending")
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("State: %s", status.State))
	imgui.Text(fmt.Sprintf("Grid: %dx%d", committed.Width, committed.Height))
	imgui.Text(fmt.Sprintf("Vertices: %d", status.Vertices))
	imgui.Text(fmt.Sprintf("Triangles: %d", status.Triangles))
	for _, b := range terrain.Bands() {
		imgui.Text(fmt.Sprintf("  %-6s %d", b.Name(), status.Bands[b]))
	}
	if status.Err != nil {
		imgui.TextColored(imgui.NewVec4(0.9, 0.3, 0.3, 1), status.Err.Error())
	}
	return apply
}
