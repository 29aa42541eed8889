// Package pack implements the rectangle layout search used to build sprite sheets.
//
// The package knows nothing about pixels. It works on bare width/height pairs
// and produces placements in its own coordinate system.
//
// # Coordinate System
//
// Placements use a bottom-left origin:
//   - X increases rightward from 0
//   - Y increases upward from 0 (the bottom of the strip)
//   - A placement (x, y) is the bottom-left corner of the rectangle
//
// Callers that write pixel buffers (which are top-left origin) must translate
// the result themselves; see sheet.Place.
//
// # Algorithms
//
// Pack is a skyline strip packer: for a fixed strip width it drops each
// rectangle, in the order given, onto the lowest part of the current height
// profile that is wide enough to hold it.
//
// Scan drives Pack across a range of candidate widths and keeps the width whose
// strip has the smallest area, subject to a maximum sheet dimension.
//
// # Thread Safety
//
// Pack is a pure function. Scan runs independent Pack trials concurrently and
// reduces them deterministically: the same input always yields the same result
// regardless of worker count or scheduling.
package pack
