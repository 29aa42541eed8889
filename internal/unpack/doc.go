// Package unpack reads sprite sheets back.
//
// The manifest stored in an atlas's "sprite" text chunk locates every sprite,
// so a sheet can be inspected or split into its pieces without the original
// inputs.
package unpack
