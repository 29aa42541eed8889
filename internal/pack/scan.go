package pack

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrNoFit is returned by Scan when no candidate width yields a strip whose
// height stays within the maximum sheet size.
var ErrNoFit = errors.New("no candidate width fits within the maximum sheet size")

// ScanOptions bounds a width scan.
type ScanOptions struct {
	// MaxSize is the largest allowed sheet width and height, in pixels.
	MaxSize int

	// Workers is the number of Pack trials run concurrently.
	// Zero or negative means runtime.NumCPU().
	Workers int

	// MaxTrials caps the number of candidate widths tried, starting from the
	// narrowest. Zero means no cap.
	MaxTrials int
}

// Result is the layout chosen by Scan.
type Result struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Positions []Point `json:"positions"`
}

// Area returns Width*Height.
func (r Result) Area() int {
	return r.Width * r.Height
}

// trial is the outcome of packing at one candidate width. Positions are not
// kept; the winner is packed again once the scan is over.
type trial struct {
	height int
	ok     bool
}

// Scan searches strip widths for the smallest-area layout of rects.
//
// Parameters:
//   - ctx: Cancels the scan between trials.
//   - rects: Rectangles in processing order, passed unchanged to Pack.
//   - opts: Maximum sheet size, concurrency, and optional trial cap.
//
// Returns:
//   - Result: The winning width, height, and bottom-left placements.
//   - error: ErrNoFit if every trial is taller than opts.MaxSize (or there is
//     nothing to scan), ctx.Err() on cancellation, or a Pack input error.
//
// # Search Range
//
// Candidate widths run from the widest rectangle up to the sum of all widths,
// the latter capped at opts.MaxSize. Trials taller than opts.MaxSize are
// discarded. Among the rest the smallest width*height wins and ties go to the
// narrower width.
//
// # Early Exit
//
// No trial can be shorter than the tallest rectangle, so once
// width*tallest reaches the best area found so far, every wider trial has an
// area at least as large and the scan stops. This never changes the result.
//
// # Concurrency
//
// Trials run in chunks of opts.Workers consecutive widths. Each chunk is
// reduced in ascending-width order after all of its trials finish, which keeps
// the tie-break independent of goroutine scheduling.
func Scan(ctx context.Context, rects []Rect, opts ScanOptions) (Result, error) {
	if len(rects) == 0 {
		return Result{}, ErrNoFit
	}

	biggestWidth, tallest, widthSum := 0, 0, 0
	for _, r := range rects {
		if r.W > biggestWidth {
			biggestWidth = r.W
		}
		if r.H > tallest {
			tallest = r.H
		}
		widthSum += r.W
	}
	if widthSum > opts.MaxSize {
		widthSum = opts.MaxSize
	}

	last := widthSum
	if opts.MaxTrials > 0 && biggestWidth+opts.MaxTrials-1 < last {
		last = biggestWidth + opts.MaxTrials - 1
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	bestWidth, bestHeight, bestArea := 0, 0, 0
	for start := biggestWidth; start <= last; start += workers {
		if bestArea > 0 && start*tallest >= bestArea {
			break
		}

		end := start + workers - 1
		if end > last {
			end = last
		}

		trials, err := runChunk(ctx, rects, start, end, workers)
		if err != nil {
			return Result{}, err
		}

		for i, t := range trials {
			if !t.ok || t.height > opts.MaxSize {
				continue
			}
			width := start + i
			if area := width * t.height; bestArea == 0 || area < bestArea {
				bestWidth, bestHeight, bestArea = width, t.height, area
			}
		}
	}

	if bestWidth == 0 {
		return Result{}, ErrNoFit
	}

	positions, height, err := Pack(rects, bestWidth)
	if err != nil {
		return Result{}, err
	}
	if height != bestHeight {
		return Result{}, errors.New("pack: repeated trial disagrees with scan")
	}

	return Result{Width: bestWidth, Height: bestHeight, Positions: positions}, nil
}

// runChunk packs every width in [start, end] concurrently.
func runChunk(ctx context.Context, rects []Rect, start, end, workers int) ([]trial, error) {
	trials := make([]trial, end-start+1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for width := start; width <= end; width++ {
		width := width
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, height, err := Pack(rects, width)
			switch {
			case errors.Is(err, ErrTooWide):
				return nil
			case err != nil:
				return err
			}
			trials[width-start] = trial{height: height, ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trials, nil
}
