// Package geometry derives the room neighbor graph from room rectangles.
package geometry

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/manorhunt/types"
)

// Adjacent reports whether two rooms share an edge. The rectangles must touch
// along one axis (one ends on the row or column right before the other starts)
// and their extents on the other axis must overlap. Corner-only contact is not
// adjacency.
func Adjacent(a, b types.Rect) bool {
	rowsTouch := a.RowStart == b.RowEnd+1 || b.RowStart == a.RowEnd+1
	colsTouch := a.ColStart == b.ColEnd+1 || b.ColStart == a.ColEnd+1

	if rowsTouch && colsOverlap(a, b) {
		return true
	}
	if colsTouch && rowsOverlap(a, b) {
		return true
	}
	return false
}

// Overlaps reports whether the two rectangles share at least one cell.
func Overlaps(a, b types.Rect) bool {
	return rowsOverlap(a, b) && colsOverlap(a, b)
}

func rowsOverlap(a, b types.Rect) bool {
	return !(a.RowStart >= b.RowEnd+1 || a.RowEnd <= b.RowStart-1)
}

func colsOverlap(a, b types.Rect) bool {
	return !(a.ColStart >= b.ColEnd+1 || a.ColEnd <= b.ColStart-1)
}

// Neighbors computes the symmetric neighbor sets for every room, indexed by
// room id. Each unordered pair is examined once and the edge is recorded on
// both sides together.
func Neighbors(rects []types.Rect) []mapset.Set[int] {
	sets := make([]mapset.Set[int], len(rects))
	for i := range sets {
		sets[i] = mapset.New[int]()
	}
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			if Adjacent(rects[i], rects[j]) {
				sets[i].Put(j)
				sets[j].Put(i)
			}
		}
	}
	return sets
}
