package sheet

import (
	"fmt"
	"image"

	"github.com/ironsheep/spritepack/internal/pack"
)

// Atlas is one finished sheet: the composited pixels, the sprites placed on
// it (sorted by filename) and the manifest describing them.
type Atlas struct {
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Pixels   *image.NRGBA `json:"-"`
	Images   []*Image     `json:"images"`
	Manifest string       `json:"manifest"`
}

// Place converts packer placements into atlas pixel offsets.
//
// This is the only place where the packer's bottom-left origin meets the
// top-left origin of pixel rows. images and res.Positions are index-parallel.
// The border shift moves each offset from the corner of the padded box to the
// corner of the drawn content.
func Place(images []*Image, res pack.Result, border int) error {
	if len(images) != len(res.Positions) {
		return fmt.Errorf("place: %d images but %d positions", len(images), len(res.Positions))
	}
	for i, img := range images {
		p := res.Positions[i]
		img.OffsetX = p.X + border
		img.OffsetY = res.Height - p.Y - img.H + border
	}
	return nil
}

// Composite allocates a transparent width x height buffer and copies each
// sprite's trimmed content to its offset, one row at a time.
//
// The padding around each sprite is never written. Every source buffer is
// released (Pixels set to nil) once copied.
func Composite(images []*Image, width, height int) (*image.NRGBA, error) {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))

	for _, img := range images {
		if img.Pixels == nil {
			return nil, fmt.Errorf("%s: pixels already released", img.Filename)
		}
		if !img.Bounds().In(dst.Rect) {
			return nil, fmt.Errorf("%s: content %v outside %dx%d atlas", img.Filename, img.Bounds(), width, height)
		}

		src := img.Pixels
		// Clip to the source for the 1x1 stand-in of an empty buffer.
		region := image.Rect(img.Left, img.Top, img.Left+img.PixelWidth, img.Top+img.PixelHeight).Intersect(src.Rect)
		rowBytes := region.Dx() * 4
		for y := 0; y < region.Dy(); y++ {
			so := src.PixOffset(region.Min.X, region.Min.Y+y)
			do := dst.PixOffset(img.OffsetX, img.OffsetY+y)
			copy(dst.Pix[do:do+rowBytes], src.Pix[so:so+rowBytes])
		}

		img.Pixels = nil
	}

	return dst, nil
}
