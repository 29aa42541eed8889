package sheet

import (
	"fmt"
	"strconv"
	"strings"
)

// ManifestKey is the PNG text keyword the manifest is stored under.
const ManifestKey = "sprite"

// fieldsPerEntry is the number of integers recorded per sprite.
const fieldsPerEntry = 6

// Entry is one sprite's record in a manifest, in atlas pixel coordinates.
type Entry struct {
	X0      int `json:"x0"`
	Y0      int `json:"y0"`
	X1      int `json:"x1"`
	Y1      int `json:"y1"`
	CenterX int `json:"center_x"`
	CenterY int `json:"center_y"`
}

// Width returns X1-X0.
func (e Entry) Width() int { return e.X1 - e.X0 }

// Height returns Y1-Y0.
func (e Entry) Height() int { return e.Y1 - e.Y0 }

// EncodeManifest renders the placement text for images, in the order given
// (normally filename order, see SortByFilename).
//
// The format is the sprite count followed by six integers per sprite, all
// separated by ", ": top-left x, top-left y, bottom-right x, bottom-right y
// (exclusive, content only), centre x, centre y.
func EncodeManifest(images []*Image) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(images)))
	for _, img := range images {
		for _, v := range [fieldsPerEntry]int{
			img.OffsetX, img.OffsetY,
			img.OffsetX + img.PixelWidth, img.OffsetY + img.PixelHeight,
			img.CenterX, img.CenterY,
		} {
			b.WriteString(", ")
			b.WriteString(strconv.Itoa(v))
		}
	}
	return b.String()
}

// ParseManifest reads text produced by EncodeManifest.
func ParseManifest(text string) ([]Entry, error) {
	fields := strings.Split(text, ",")
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("manifest field %d: %w", i, err)
		}
		values[i] = v
	}

	count := values[0]
	if count < 0 || len(values)-1 != count*fieldsPerEntry {
		return nil, fmt.Errorf("manifest declares %d sprites but carries %d values", count, len(values)-1)
	}

	entries := make([]Entry, count)
	for i := range entries {
		v := values[1+i*fieldsPerEntry:]
		entries[i] = Entry{X0: v[0], Y0: v[1], X1: v[2], Y1: v[3], CenterX: v[4], CenterY: v[5]}
	}
	return entries, nil
}
