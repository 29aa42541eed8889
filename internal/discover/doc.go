// Package discover finds the PNG files that make up a sprite batch.
//
// Files are recognised by their signature bytes, not their extension, and are
// returned in lexical path order so that a batch packs the same way on every
// run.
package discover
