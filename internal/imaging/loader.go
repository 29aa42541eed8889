package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
)

// pngSignature is the eight-byte header every PNG file starts with.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// DecodeError reports a file that could not be read or decoded as a PNG.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// HasPNGSignature reports whether header begins with the PNG signature.
func HasPNGSignature(header []byte) bool {
	return len(header) >= len(pngSignature) && bytes.Equal(header[:len(pngSignature)], pngSignature)
}

// IsPNG reports whether the file at path starts with the PNG signature.
//
// Files shorter than the signature are not PNGs. Only open and read failures
// are returned as errors.
func IsPNG(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, len(pngSignature))
	n, err := io.ReadFull(f, header)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return HasPNGSignature(header[:n]), nil
}

// LoadNRGBA decodes the PNG at path into an 8-bit non-premultiplied RGBA buffer.
//
// Parameters:
//   - path: Path to a PNG file.
//
// Returns:
//   - *image.NRGBA: The decoded pixels, origin at (0,0), 4 bytes per pixel.
//   - error: A *DecodeError if the file cannot be opened, lacks the PNG
//     signature, or fails to decode.
//
// # Normalisation
//
// Palette, grayscale, grayscale+alpha, truecolor-without-alpha and 16-bit
// inputs all come back as the same 4-channel 8-bit layout, so downstream code
// can treat every sprite as rows of R,G,B,A bytes. Straight (non-premultiplied)
// alpha is kept because that is what PNG stores.
func LoadNRGBA(path string) (*image.NRGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if !HasPNGSignature(data) {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("not a PNG file")}
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	return ToNRGBA(img), nil
}

// ToNRGBA converts any image to an *image.NRGBA whose bounds start at (0,0).
// An NRGBA that is already zero-based is returned as is.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}
