package unpack

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/spritepack/internal/imaging"
	"github.com/ironsheep/spritepack/internal/sheet"
)

// Sheet describes a packed atlas as recorded in its manifest.
type Sheet struct {
	Path     string        `json:"path"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Manifest string        `json:"manifest"`
	Entries  []sheet.Entry `json:"entries"`
}

// Inspect reads the manifest embedded in the atlas at path.
//
// Returns an error if the file is not a PNG, carries no manifest, or lists a
// sprite outside the image.
func Inspect(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read atlas: %w", err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &imaging.DecodeError{Path: path, Err: err}
	}

	text, err := imaging.ReadText(bytes.NewReader(data))
	if err != nil {
		return nil, &imaging.DecodeError{Path: path, Err: err}
	}
	manifest, ok := text[sheet.ManifestKey]
	if !ok {
		return nil, fmt.Errorf("%s: no %q manifest", path, sheet.ManifestKey)
	}

	entries, err := sheet.ParseManifest(manifest)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	bounds := image.Rect(0, 0, cfg.Width, cfg.Height)
	for i, e := range entries {
		r := image.Rect(e.X0, e.Y0, e.X1, e.Y1)
		if e.Width() <= 0 || e.Height() <= 0 || !r.In(bounds) {
			return nil, fmt.Errorf("%s: sprite %d at %v outside %dx%d atlas", path, i, r, cfg.Width, cfg.Height)
		}
	}

	return &Sheet{
		Path:     path,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Manifest: manifest,
		Entries:  entries,
	}, nil
}

// Extract cuts every sprite listed in the atlas manifest out into its own PNG
// in outDir, named sprite_000.png, sprite_001.png and so on in manifest order.
// It returns the paths written.
//
// Only the trimmed content is recovered; the transparent margins the sprites
// were trimmed from are not restored.
func Extract(path, outDir string) ([]string, error) {
	s, err := Inspect(path)
	if err != nil {
		return nil, err
	}

	atlas, err := imaging.LoadNRGBA(path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	written := make([]string, 0, len(s.Entries))
	for i, e := range s.Entries {
		sprite, err := imaging.CropRegion(atlas, image.Rect(e.X0, e.Y0, e.X1, e.Y1))
		if err != nil {
			return written, fmt.Errorf("sprite %d: %w", i, err)
		}

		out := filepath.Join(outDir, fmt.Sprintf("sprite_%03d.png", i))
		if err := imgio.Save(out, sprite, imgio.PNGEncoder()); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", out, err)
		}
		written = append(written, out)
	}

	return written, nil
}
