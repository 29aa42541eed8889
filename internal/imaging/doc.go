// Package imaging provides the raster side of sprite packing: PNG decoding into
// a uniform pixel layout, alpha trimming, PNG encoding with embedded text, and
// a debugging overlay.
//
// # Pixel Layout
//
// Every decoded sprite is an *image.NRGBA whose bounds start at (0,0): four
// bytes per pixel (R, G, B, straight alpha), rows Stride bytes apart. Palette,
// grayscale, grayscale+alpha, RGB and 16-bit PNGs are all normalised to this
// layout by LoadNRGBA, so callers can copy rows with plain slice operations.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with the origin at the
// top-left corner, X increasing rightward and Y increasing downward. Regions
// use image.Rectangle semantics: Min is inclusive, Max is exclusive.
//
// # Text Chunks
//
// EncodePNG inserts zTXt chunks right after IHDR and ReadText reads tEXt and
// zTXt chunks back. The sprite manifest travels this way under the keyword
// "sprite".
//
// # Error Handling
//
// Decoding failures are reported as *DecodeError (carrying the path) and
// encoding failures as *EncodeError. Both unwrap to the underlying cause.
package imaging
