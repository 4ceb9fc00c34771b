package scene

import (
	"fmt"
	"image"

	"github.com/Faultbox/heightforge/internal/engine/texture"
	"github.com/Faultbox/heightforge/internal/terrain"
)

// LoadBandTextures reads and decodes the texture of every band through load,
// typically assets.Manager.Load. Any missing or undecodable file is an error.
func LoadBandTextures(load func(name string) ([]byte, error)) ([terrain.NumBands]*image.RGBA, error) {
	var images [terrain.NumBands]*image.RGBA
	for _, b := range terrain.Bands() {
		data, err := load(b.Texture())
		if err != nil {
			return images, fmt.Errorf("band %s: %w", b, err)
		}
		img, err := texture.Decode(data, b.Texture())
		if err != nil {
			return images, fmt.Errorf("band %s: %w", b, err)
		}
		images[b] = img
	}
	return images, nil
}
