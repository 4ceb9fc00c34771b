package terrain

import (
	"context"
	"fmt"
	"runtime"

	"github.com/alitto/pond/v2"

	"github.com/Faultbox/heightforge/internal/noise"
)

// Heightmap is a grid of raw noise heights.
type Heightmap struct {
	Values [][]float64 // [x][y]
	Width  int
	Height int
}

// At returns the height at grid cell (x, y).
func (h *Heightmap) At(x, y int) float64 {
	return h.Values[x][y]
}

// Range returns the minimum and maximum height.
func (h *Heightmap) Range() (lo, hi float64) {
	lo, hi = h.Values[0][0], h.Values[0][0]
	for _, col := range h.Values {
		for _, v := range col {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi
}

// BuildHeightmap samples noise at (x/scale, y/scale) for every grid cell.
// Columns are filled concurrently; the result is either complete or nil.
func BuildHeightmap(ctx context.Context, p Params) (*Heightmap, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	sampler, err := noise.New(p.NoiseParams())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	workers := p.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	pool := pond.NewPool(workers)
	defer pool.StopAndWait()

	values := make([][]float64, p.Width)
	group := pool.NewGroup()
	for x := range p.Width {
		group.SubmitErr(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			values[x] = sampleColumn(sampler, x, p)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("build heightmap: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build heightmap: %w", err)
	}

	return &Heightmap{Values: values, Width: p.Width, Height: p.Height}, nil
}

func sampleColumn(s noise.Sampler, x int, p Params) []float64 {
	col := make([]float64, p.Height)
	nx := float64(x) / p.Scale
	for y := range p.Height {
		col[y] = s.Sample(nx, float64(y)/p.Scale) * p.Amplitude
	}
	return col
}
