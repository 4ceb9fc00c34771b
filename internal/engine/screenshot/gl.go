package screenshot

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// ReadFramebuffer reads the bound framebuffer's color buffer as bottom-up RGBA rows.
func ReadFramebuffer(width, height int32) []byte {
	pixels := make([]byte, int(width)*int(height)*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
