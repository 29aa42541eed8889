package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultOutlineColor is used when RenderOverlay is given an empty colour.
const DefaultOutlineColor = "#ff00ff"

// goldenAngle spaces successive hues so neighbouring boxes never look alike.
const goldenAngle = 137.50776405003785

// tintAlpha is the opacity of the fill drawn over each box.
const tintAlpha = 96

// RenderOverlay draws the placement boxes over a copy of an atlas, for
// eyeballing a layout.
//
// Parameters:
//   - atlas: The composited sheet. It is not modified.
//   - boxes: One rectangle per sprite, in atlas pixel coordinates. Box i is
//     labelled with its index.
//   - outlineHex: Outline colour as "#RRGGBB". Empty means DefaultOutlineColor.
//
// Returns:
//   - *image.NRGBA: The annotated copy.
//   - error: Non-nil if outlineHex cannot be parsed.
//
// Each box gets a translucent fill whose hue advances by the golden angle per
// index, a one-pixel outline, and its index drawn in the top-left corner when
// the box is large enough to hold the label.
func RenderOverlay(atlas image.Image, boxes []image.Rectangle, outlineHex string) (*image.NRGBA, error) {
	if outlineHex == "" {
		outlineHex = DefaultOutlineColor
	}
	outline, err := colorful.Hex(outlineHex)
	if err != nil {
		return nil, fmt.Errorf("invalid outline color %q: %w", outlineHex, err)
	}
	or, og, ob := outline.RGB255()
	outlineColor := color.NRGBA{R: or, G: og, B: ob, A: 255}

	result := imaging.Clone(atlas)
	bounds := result.Bounds()

	for i, box := range boxes {
		box = box.Intersect(bounds)
		if box.Empty() {
			continue
		}

		draw.Draw(result, box, image.NewUniform(boxTint(i)), image.Point{}, draw.Over)
		strokeRect(result, box, outlineColor)
		drawIndex(result, box, strconv.Itoa(i), outlineColor)
	}

	return result, nil
}

// boxTint returns the translucent fill for box i.
func boxTint(i int) color.NRGBA {
	hue := math.Mod(float64(i)*goldenAngle, 360)
	r, g, b := colorful.Hsv(hue, 0.65, 0.95).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: tintAlpha}
}

// strokeRect draws a one-pixel outline just inside r.
func strokeRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetNRGBA(x, r.Min.Y, c)
		img.SetNRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetNRGBA(r.Min.X, y, c)
		img.SetNRGBA(r.Max.X-1, y, c)
	}
}

// drawIndex writes label in the top-left corner of r if it fits.
func drawIndex(img *image.NRGBA, r image.Rectangle, label string, c color.NRGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}

	width := d.MeasureString(label).Ceil()
	if width+4 > r.Dx() || face.Height+4 > r.Dy() {
		return
	}
	d.Dot = fixed.P(r.Min.X+2, r.Min.Y+2+face.Ascent)
	d.DrawString(label)
}
