package sheet

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// newSprite returns a canvasW x canvasH transparent image with a patterned,
// never fully transparent block filling content.
func newSprite(canvasW, canvasH int, content image.Rectangle, seed int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, canvasW, canvasH))
	for y := content.Min.Y; y < content.Max.Y; y++ {
		for x := content.Min.X; x < content.Max.X; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x*7 + seed),
				G: uint8(y * 13),
				B: uint8(seed * 31),
				A: uint8(128 + (x+y+seed)%128),
			})
		}
	}
	return img
}

// writeSprite encodes a sprite from newSprite into dir/name and returns the path.
func writeSprite(t *testing.T, dir, name string, canvasW, canvasH int, content image.Rectangle, seed int) string {
	t.Helper()
	return writeImage(t, dir, name, newSprite(canvasW, canvasH, content, seed))
}

func writeImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

// padded builds an Image with the given padded size and no pixels, for
// partition tests.
func padded(name string, w, h int) *Image {
	return &Image{Filename: name, PixelWidth: w, PixelHeight: h, W: w, H: h}
}
