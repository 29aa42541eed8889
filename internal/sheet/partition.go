package sheet

// MinMaxSize is subtracted from the maximum sheet size before squaring it into
// the per-sheet area budget. A maximum size at or below it leaves no budget.
const MinMaxSize = 128

// MaxArea returns the padded-area budget for one sheet: (maxSize-128)^2.
// It is zero when maxSize leaves no room.
func MaxArea(maxSize int) int {
	side := maxSize - MinMaxSize
	if side <= 0 {
		return 0
	}
	return side * side
}

// Partition splits images into groups whose padded areas sum to less than
// MaxArea(maxSize). Each group becomes one sheet.
//
// Parameters:
//   - images: Sprites sorted with SortBySize. The order is preserved within
//     each group.
//   - maxSize: The maximum sheet width and height.
//
// Returns:
//   - [][]*Image: The groups, in input order. None is empty.
//   - []*Image: Sprites whose own padded area reaches the budget. They are
//     left out of every group.
//
// # Heuristic
//
// A single pass: before adding a sprite that would bring the running total to
// or past the budget, the current group is closed and a new one started. A
// partition is never revisited, so a group that later fails to pack is not
// split again.
func Partition(images []*Image, maxSize int) (groups [][]*Image, skipped []*Image) {
	budget := MaxArea(maxSize)

	var current []*Image
	total := 0
	for _, img := range images {
		area := img.Area()
		if area >= budget {
			skipped = append(skipped, img)
			continue
		}

		if total+area >= budget && len(current) > 0 {
			groups = append(groups, current)
			current = nil
			total = 0
		}

		current = append(current, img)
		total += area
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	return groups, skipped
}
