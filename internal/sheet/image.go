package sheet

import (
	"fmt"
	"image"
	"sort"

	"github.com/ironsheep/spritepack/internal/imaging"
	"github.com/ironsheep/spritepack/internal/pack"
)

// Image is one input sprite as it moves through the pipeline.
//
// The trim fields are set by NewImage; OffsetX and OffsetY are set by Place.
// Pixels is owned by the Image until Composite copies the trimmed region out
// of it and releases it.
type Image struct {
	// Filename is the path the sprite was loaded from.
	Filename string `json:"filename"`

	// PixelWidth and PixelHeight are the trimmed content size.
	PixelWidth  int `json:"pixel_width"`
	PixelHeight int `json:"pixel_height"`

	// Top and Left locate the trimmed content in Pixels.
	Top  int `json:"top"`
	Left int `json:"left"`

	// W and H are the padded packing size: content plus a border on each side.
	W int `json:"w"`
	H int `json:"h"`

	// CenterX and CenterY are half the padded size.
	CenterX int `json:"center_x"`
	CenterY int `json:"center_y"`

	// OffsetX and OffsetY are the top-left of the trimmed content in the atlas.
	OffsetX int `json:"offset_x"`
	OffsetY int `json:"offset_y"`

	// Pixels is the decoded source, origin (0,0). Nil once composited.
	Pixels *image.NRGBA `json:"-"`
}

// NewImage trims pixels to its non-transparent bounding box and pads the
// result by border on every side for packing.
//
// A fully transparent sprite becomes a 1x1 region at the origin. The border is
// reserved space only: it is never drawn and stays transparent in the atlas.
func NewImage(filename string, pixels *image.NRGBA, border int) (*Image, error) {
	if border < 0 {
		return nil, fmt.Errorf("border must be non-negative, got %d", border)
	}
	if pixels == nil {
		return nil, fmt.Errorf("%s: no pixel data", filename)
	}

	trim := imaging.TrimBounds(pixels)
	img := &Image{
		Filename:    filename,
		PixelWidth:  trim.Dx(),
		PixelHeight: trim.Dy(),
		Top:         trim.Min.Y - pixels.Rect.Min.Y,
		Left:        trim.Min.X - pixels.Rect.Min.X,
		Pixels:      pixels,
	}
	img.W = img.PixelWidth + 2*border
	img.H = img.PixelHeight + 2*border
	img.CenterX = img.W / 2
	img.CenterY = img.H / 2
	return img, nil
}

// Area returns the padded area used for the sheet budget.
func (i *Image) Area() int {
	return i.W * i.H
}

// Rect returns the padded size as seen by the packer.
func (i *Image) Rect() pack.Rect {
	return pack.Rect{W: i.W, H: i.H}
}

// Bounds returns the trimmed content rectangle in atlas coordinates.
func (i *Image) Bounds() image.Rectangle {
	return image.Rect(i.OffsetX, i.OffsetY, i.OffsetX+i.PixelWidth, i.OffsetY+i.PixelHeight)
}

// Rects returns the packer view of images, index-parallel.
func Rects(images []*Image) []pack.Rect {
	rects := make([]pack.Rect, len(images))
	for i, img := range images {
		rects[i] = img.Rect()
	}
	return rects
}

// SortBySize orders images ascending by padded width, then padded height.
// Equal sizes fall back to filename so the order never depends on input order.
func SortBySize(images []*Image) {
	sort.SliceStable(images, func(a, b int) bool {
		ia, ib := images[a], images[b]
		if ia.W != ib.W {
			return ia.W < ib.W
		}
		if ia.H != ib.H {
			return ia.H < ib.H
		}
		return ia.Filename < ib.Filename
	})
}

// SortByFilename orders images by filename.
func SortByFilename(images []*Image) {
	sort.SliceStable(images, func(a, b int) bool {
		return images[a].Filename < images[b].Filename
	})
}
