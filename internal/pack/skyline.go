package pack

import (
	"errors"
	"fmt"
)

var (
	// ErrTooWide is returned when a rectangle cannot fit the strip width.
	ErrTooWide = errors.New("rectangle wider than strip")

	// ErrInvalidRect is returned for rectangles with a non-positive dimension.
	ErrInvalidRect = errors.New("rectangle must have positive width and height")

	// ErrInvalidWidth is returned for a non-positive strip width.
	ErrInvalidWidth = errors.New("strip width must be positive")
)

// Rect is a rectangle to be placed, described only by its size.
type Rect struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Area returns W*H.
func (r Rect) Area() int {
	return r.W * r.H
}

// Point is a placement in bottom-left-origin packer space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// segment is one horizontal piece of the skyline: the span [x, x+width) whose
// current top is at y.
type segment struct {
	x, y, width int
}

// skyline is the height profile of a strip. Segments are kept sorted by x,
// contiguous, and cover exactly [0, width).
type skyline struct {
	width    int
	segments []segment
}

func newSkyline(width int) *skyline {
	return &skyline{
		width:    width,
		segments: []segment{{x: 0, y: 0, width: width}},
	}
}

// fit returns the height a rectangle of width w would rest at if its left
// edge were aligned with segment i, or -1 if the run starting at i is too
// narrow.
func (s *skyline) fit(i, w int) int {
	x := s.segments[i].x
	if x+w > s.width {
		return -1
	}

	y := 0
	remaining := w
	for j := i; remaining > 0; j++ {
		if j == len(s.segments) {
			return -1
		}
		if s.segments[j].y > y {
			y = s.segments[j].y
		}
		remaining -= s.segments[j].width
	}
	return y
}

// place raises the span [x, x+w) to top, splitting and merging segments.
func (s *skyline) place(x, w, top int) {
	end := x + w
	out := make([]segment, 0, len(s.segments)+2)

	inserted := false
	for _, seg := range s.segments {
		segEnd := seg.x + seg.width
		if segEnd <= x || seg.x >= end {
			if !inserted && seg.x >= end {
				out = append(out, segment{x: x, y: top, width: w})
				inserted = true
			}
			out = append(out, seg)
			continue
		}
		// Keep the parts of seg that stick out on either side.
		if seg.x < x {
			out = append(out, segment{x: seg.x, y: seg.y, width: x - seg.x})
		}
		if !inserted {
			out = append(out, segment{x: x, y: top, width: w})
			inserted = true
		}
		if segEnd > end {
			out = append(out, segment{x: end, y: seg.y, width: segEnd - end})
		}
	}
	if !inserted {
		out = append(out, segment{x: x, y: top, width: w})
	}

	// Merge neighbours of equal height.
	merged := out[:1]
	for _, seg := range out[1:] {
		last := &merged[len(merged)-1]
		if last.y == seg.y {
			last.width += seg.width
			continue
		}
		merged = append(merged, seg)
	}
	s.segments = merged
}

// height returns the tallest point of the skyline.
func (s *skyline) height() int {
	h := 0
	for _, seg := range s.segments {
		if seg.y > h {
			h = seg.y
		}
	}
	return h
}

// Pack places rects into a strip of the given width using the skyline
// heuristic.
//
// Parameters:
//   - rects: Rectangles in processing order. Callers normally pass them sorted
//     ascending by width then height; Pack never reorders them.
//   - width: The fixed strip width.
//
// Returns:
//   - []Point: Bottom-left corner of each rectangle, index-parallel to rects.
//   - int: The resulting strip height (tallest point of the final skyline).
//   - error: ErrTooWide if some rectangle is wider than the strip,
//     ErrInvalidRect or ErrInvalidWidth for bad input.
//
// # Placement Rule
//
// Each rectangle goes to the run of segments, at least as wide as the
// rectangle, whose highest segment is lowest. Ties go to the run starting at
// the smallest x. The rectangle rests on that highest segment, so placements
// never overlap and never leave [0,width) x [0,height).
//
// The heuristic guarantees a valid layout, not a minimal one.
func Pack(rects []Rect, width int) ([]Point, int, error) {
	if width <= 0 {
		return nil, 0, ErrInvalidWidth
	}

	sky := newSkyline(width)
	points := make([]Point, len(rects))

	for i, r := range rects {
		if r.W <= 0 || r.H <= 0 {
			return nil, 0, fmt.Errorf("rect %d (%dx%d): %w", i, r.W, r.H, ErrInvalidRect)
		}
		if r.W > width {
			return nil, 0, fmt.Errorf("rect %d (%dx%d) in width %d: %w", i, r.W, r.H, width, ErrTooWide)
		}

		bestY, bestX := -1, -1
		for j := range sky.segments {
			y := sky.fit(j, r.W)
			if y < 0 {
				continue
			}
			if bestY < 0 || y < bestY {
				bestY = y
				bestX = sky.segments[j].x
			}
		}
		if bestY < 0 {
			return nil, 0, fmt.Errorf("rect %d (%dx%d) in width %d: %w", i, r.W, r.H, width, ErrTooWide)
		}

		points[i] = Point{X: bestX, Y: bestY}
		sky.place(bestX, r.W, bestY+r.H)
	}

	return points, sky.height(), nil
}
