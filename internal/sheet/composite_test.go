package sheet

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/spritepack/internal/pack"
)

func TestPlace_FlipsAndShifts(t *testing.T) {
	images := []*Image{padded("c", 24, 24), padded("b", 34, 44), padded("a", 54, 54)}
	res := pack.Result{
		Width:     58,
		Height:    98,
		Positions: []pack.Point{{X: 0, Y: 0}, {X: 24, Y: 0}, {X: 0, Y: 44}},
	}

	if err := Place(images, res, 2); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	want := []image.Point{{2, 76}, {26, 56}, {2, 2}}
	for i, img := range images {
		if got := (image.Point{img.OffsetX, img.OffsetY}); got != want[i] {
			t.Errorf("%s: got offset %v, want %v", img.Filename, got, want[i])
		}
	}
}

func TestPlace_LengthMismatch(t *testing.T) {
	err := Place([]*Image{padded("a", 1, 1)}, pack.Result{Width: 1, Height: 1}, 0)
	if err == nil {
		t.Error("Place should fail when positions and images differ in length")
	}
}

func TestComposite_CopiesTrimmedContent(t *testing.T) {
	src := newSprite(10, 8, image.Rect(3, 2, 7, 6), 5)
	img, err := NewImage("a.png", src, 1)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	img.OffsetX, img.OffsetY = 2, 1

	dst, err := Composite([]*Image{img}, 8, 7)
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
	if dst.Bounds() != image.Rect(0, 0, 8, 7) {
		t.Fatalf("bounds: got %v, want 8x7", dst.Bounds())
	}

	for y := 0; y < 7; y++ {
		for x := 0; x < 8; x++ {
			got := dst.NRGBAAt(x, y)
			inside := x >= 2 && x < 6 && y >= 1 && y < 5
			if !inside {
				if got != (color.NRGBA{}) {
					t.Errorf("(%d,%d) outside content: got %v, want transparent", x, y, got)
				}
				continue
			}
			if want := src.NRGBAAt(x-2+3, y-1+2); got != want {
				t.Errorf("(%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}

	if img.Pixels != nil {
		t.Error("Composite should release the source pixels")
	}
}

func TestComposite_FullyTransparentSprite(t *testing.T) {
	img, err := NewImage("blank.png", image.NewNRGBA(image.Rect(0, 0, 4, 4)), 0)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}

	dst, err := Composite([]*Image{img}, 1, 1)
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
	if c := dst.NRGBAAt(0, 0); c != (color.NRGBA{}) {
		t.Errorf("pixel: got %v, want transparent", c)
	}
}

func TestComposite_EmptySource(t *testing.T) {
	img, err := NewImage("empty.png", image.NewNRGBA(image.Rectangle{}), 0)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	if _, err := Composite([]*Image{img}, 1, 1); err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
}

func TestComposite_Errors(t *testing.T) {
	t.Run("outside atlas", func(t *testing.T) {
		img, _ := NewImage("a.png", newSprite(4, 4, image.Rect(0, 0, 4, 4), 0), 0)
		img.OffsetX = 2
		if _, err := Composite([]*Image{img}, 4, 4); err == nil {
			t.Error("Composite should fail for content past the atlas edge")
		}
	})

	t.Run("released", func(t *testing.T) {
		img := padded("a.png", 1, 1)
		if _, err := Composite([]*Image{img}, 4, 4); err == nil {
			t.Error("Composite should fail for a sprite without pixels")
		}
	})
}
