// Package sheet assembles sprite sheets: it trims and pads sprites, splits a
// batch into sheet-sized groups, lays each group out with package pack,
// composites the pixels and encodes the placement manifest.
//
// # Pipeline
//
//  1. NewImage trims each decoded sprite and pads it by the border.
//  2. SortBySize orders the whole batch ascending by padded width, then height.
//  3. Partition splits the batch into groups under the per-sheet area budget.
//  4. For each group, pack.Scan chooses the sheet size, Place converts the
//     layout to pixel offsets, Composite copies the pixels and EncodeManifest
//     renders the manifest.
//  5. WriteAtlas stores the sheet as a PNG with the manifest in a zTXt chunk.
//
// Builder runs all of this for a list of files.
//
// # Manifest
//
// The manifest is plain text: the sprite count, then six comma-separated
// integers per sprite in filename order: content top-left x and y, content
// bottom-right x and y (exclusive), and the centre of the padded box.
//
//	3, 6, 2, 56, 52, 27, 27, ...
//
// # Diagnostics
//
// Non-fatal problems (an oversized sprite, a group with no valid layout) are
// logged through the package logger at Warn level and recorded in the Report.
// The logger is silent until SetLogger is called.
package sheet
