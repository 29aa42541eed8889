package sheet

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/ironsheep/spritepack/internal/imaging"
	"github.com/ironsheep/spritepack/internal/pack"
)

// Default sheet limits.
const (
	DefaultMaxSize = 1024
	DefaultBorder  = 4
)

// Options controls a build.
type Options struct {
	// MaxSize is the largest sheet width and height in pixels.
	MaxSize int

	// Border is the transparent padding reserved around every sprite.
	Border int

	// Workers bounds concurrent width trials. Zero means one per CPU.
	Workers int

	// MaxTrials caps the widths tried per sheet. Zero means no cap.
	MaxTrials int

	// Overlay also writes a <name>.overlay.png debugging view per sheet.
	Overlay bool

	// OverlayColor is the outline colour for overlays, "#RRGGBB".
	OverlayColor string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxSize: DefaultMaxSize,
		Border:  DefaultBorder,
	}
}

// GroupError reports a group of sprites for which no sheet layout was found.
type GroupError struct {
	// Index is the sheet number the group would have been written as.
	Index int

	// Files lists every sprite in the group.
	Files []string

	Err error
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("sheet %d: could not find a valid packing for %d files: %v", e.Index, len(e.Files), e.Err)
}

func (e *GroupError) Unwrap() error {
	return e.Err
}

// Report summarises a build.
type Report struct {
	// Written lists the sheet files produced, in order.
	Written []string `json:"written"`

	// Overlays lists the overlay files produced, if requested.
	Overlays []string `json:"overlays,omitempty"`

	// Skipped lists sprites too big for any sheet.
	Skipped []string `json:"skipped,omitempty"`

	// Failed lists groups that could not be packed. No file is written for them.
	Failed []*GroupError `json:"-"`

	// Sprites counts sprites placed on written sheets.
	Sprites int `json:"sprites"`
}

// Builder turns a batch of PNG files into sprite sheets.
type Builder struct {
	opts Options
}

// NewBuilder returns a Builder using opts.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Options returns the builder's options.
func (b *Builder) Options() Options {
	return b.opts
}

// Build decodes files, partitions them into sheets and writes each sheet to
// outDir as <prefix>N.png, N counting from 0.
//
// Parameters:
//   - ctx: Cancels the width search.
//   - outDir: Existing directory to write sheets into.
//   - prefix: File name prefix for this batch.
//   - files: PNG paths, in a stable order.
//
// Returns:
//   - *Report: What was written, skipped and failed.
//   - error: Non-nil for fatal problems: unreadable or undecodable input,
//     failure to write a sheet, or cancellation. Sprites too big for a sheet
//     and groups that cannot be packed are not errors; they are logged and
//     listed in the report while the rest of the batch proceeds.
//
// Sheet numbers are assigned per group, so a group that fails to pack still
// uses up its number and later sheets keep stable names.
func (b *Builder) Build(ctx context.Context, outDir, prefix string, files []string) (*Report, error) {
	log := Logger()
	images := make([]*Image, 0, len(files))
	for _, f := range files {
		pixels, err := imaging.LoadNRGBA(f)
		if err != nil {
			return nil, err
		}
		img, err := NewImage(f, pixels, b.opts.Border)
		if err != nil {
			return nil, err
		}
		log.Debug("loaded sprite", "file", f,
			"source", fmt.Sprintf("%dx%d", pixels.Rect.Dx(), pixels.Rect.Dy()),
			"trimmed", fmt.Sprintf("%dx%d", img.PixelWidth, img.PixelHeight))
		images = append(images, img)
	}

	SortBySize(images)
	groups, skipped := Partition(images, b.opts.MaxSize)

	report := &Report{}
	for _, img := range skipped {
		log.Warn("image too big to fit, ignoring", "file", img.Filename,
			"area", img.Area(), "budget", MaxArea(b.opts.MaxSize))
		report.Skipped = append(report.Skipped, img.Filename)
		img.Pixels = nil
	}

	for n, group := range groups {
		path := filepath.Join(outDir, fmt.Sprintf("%s%d.png", prefix, n))

		atlas, err := b.BuildAtlas(ctx, group)
		if err != nil {
			var ge *GroupError
			if !errors.As(err, &ge) {
				return nil, err
			}
			ge.Index = n
			log.Warn("could not find a valid packing configuration", "sheet", path, "files", ge.Files)
			report.Failed = append(report.Failed, ge)
			for _, img := range group {
				img.Pixels = nil
			}
			continue
		}

		if err := WriteAtlas(path, atlas); err != nil {
			return nil, err
		}
		log.Info("wrote atlas", "path", path, "size", fmt.Sprintf("%dx%d", atlas.Width, atlas.Height),
			"sprites", len(atlas.Images))
		report.Written = append(report.Written, path)
		report.Sprites += len(atlas.Images)

		if b.opts.Overlay {
			overlayPath := filepath.Join(outDir, fmt.Sprintf("%s%d.overlay.png", prefix, n))
			if err := b.writeOverlay(overlayPath, atlas); err != nil {
				return nil, err
			}
			report.Overlays = append(report.Overlays, overlayPath)
		}
	}

	return report, nil
}

// BuildAtlas lays out and composites a single group.
//
// On success the group's sprites are placed, sorted by filename, and their
// pixel buffers released. If no layout fits, the error is a *GroupError
// wrapping pack.ErrNoFit and the sprites are left untouched.
func (b *Builder) BuildAtlas(ctx context.Context, group []*Image) (*Atlas, error) {
	res, err := pack.Scan(ctx, Rects(group), pack.ScanOptions{
		MaxSize:   b.opts.MaxSize,
		Workers:   b.opts.Workers,
		MaxTrials: b.opts.MaxTrials,
	})
	if errors.Is(err, pack.ErrNoFit) {
		files := make([]string, len(group))
		for i, img := range group {
			files[i] = img.Filename
		}
		return nil, &GroupError{Files: files, Err: err}
	}
	if err != nil {
		return nil, err
	}
	Logger().Debug("selected layout", "sprites", len(group), "width", res.Width, "height", res.Height)

	if err := Place(group, res, b.opts.Border); err != nil {
		return nil, err
	}

	placed := make([]*Image, len(group))
	copy(placed, group)
	SortByFilename(placed)

	pixels, err := Composite(placed, res.Width, res.Height)
	if err != nil {
		return nil, err
	}

	return &Atlas{
		Width:    res.Width,
		Height:   res.Height,
		Pixels:   pixels,
		Images:   placed,
		Manifest: EncodeManifest(placed),
	}, nil
}

// WriteAtlas encodes atlas as a PNG at path with its manifest embedded under
// ManifestKey.
func WriteAtlas(path string, atlas *Atlas) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := imaging.EncodePNG(f, atlas.Pixels, map[string]string{ManifestKey: atlas.Manifest}); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeOverlay renders the padded box of every sprite over the atlas.
func (b *Builder) writeOverlay(path string, atlas *Atlas) error {
	boxes := make([]image.Rectangle, len(atlas.Images))
	for i, img := range atlas.Images {
		boxes[i] = image.Rect(
			img.OffsetX-b.opts.Border, img.OffsetY-b.opts.Border,
			img.OffsetX-b.opts.Border+img.W, img.OffsetY-b.opts.Border+img.H,
		)
	}

	overlay, err := imaging.RenderOverlay(atlas.Pixels, boxes, b.opts.OverlayColor)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create overlay file: %w", err)
	}
	if err := imaging.EncodePNG(f, overlay, nil); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
