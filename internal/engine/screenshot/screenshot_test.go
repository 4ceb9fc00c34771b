package screenshot

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromPixelsFlips(t *testing.T) {
	// Two rows, bottom row red, top row blue, as GL returns them.
	pixels := []byte{
		255, 0, 0, 255, // row 0 (bottom)
		0, 0, 255, 255, // row 1 (top)
	}
	img, err := FromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FromPixels: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("expected blue at top, got %v", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("expected red at bottom, got %v", got)
	}
}

func TestFromPixelsSizeMismatch(t *testing.T) {
	if _, err := FromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size mismatch error, got nil")
	}
	if _, err := FromPixels(nil, 0, 0); err == nil {
		t.Error("expected error for empty frame, got nil")
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	c := New(dir, "terrain")
	c.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC) }

	img, err := FromPixels([]byte{10, 20, 30, 255}, 1, 1)
	if err != nil {
		t.Fatalf("FromPixels: %v", err)
	}

	path, err := c.Save(img)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	want := filepath.Join(dir, "terrain_2024-03-09_14-05-06.png")
	if path != want {
		t.Errorf("expected %s, got %s", want, path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, _ := decoded.At(0, 0).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("expected (10,20,30), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}
