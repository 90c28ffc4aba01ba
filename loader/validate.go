package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/manorhunt/engine/geometry"
	"github.com/nathoo/manorhunt/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) add(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warn(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

func (e *ValidationError) failed() bool {
	return len(e.Errors) > 0
}

// Validate checks a manor definition for consistency: grid size, target
// health, room rectangles (in the grid, not overlapping) and item damage and
// placement. Every problem is reported in one *ValidationError; warnings are
// attached to it only when validation fails (see Warnings).
func Validate(def *types.ManorDef) error {
	ve := &ValidationError{}

	if strings.TrimSpace(def.Name) == "" {
		ve.add("manor name is required")
	}
	if def.Rows < 1 || def.Cols < 1 {
		ve.add("manor grid must be at least 1x1, got %dx%d", def.Rows, def.Cols)
	}
	if strings.TrimSpace(def.Target.Name) == "" {
		ve.add("target name is required")
	}
	if def.Target.Health < 1 {
		ve.add("target health must be positive, got %d", def.Target.Health)
	}

	if len(def.Rooms) == 0 {
		ve.add("manor has no rooms")
	}
	for i, r := range def.Rooms {
		if strings.TrimSpace(r.Name) == "" {
			ve.add("room %d has no name", i)
		}
		if !r.Rect.Valid() {
			ve.add("room %d %q has an invalid rectangle %v", i, r.Name, r.Rect)
			continue
		}
		if r.Rect.RowEnd >= def.Rows || r.Rect.ColEnd >= def.Cols {
			ve.add("room %d %q extends outside the %dx%d grid", i, r.Name, def.Rows, def.Cols)
		}
	}

	rects := roomRects(def)
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			if geometry.Overlaps(rects[i], rects[j]) {
				ve.add("rooms %d %q and %d %q overlap", i, def.Rooms[i].Name, j, def.Rooms[j].Name)
			}
		}
	}

	for i, it := range def.Items {
		if strings.TrimSpace(it.Name) == "" {
			ve.add("item %d has no name", i)
		}
		if it.Damage < 1 {
			ve.add("item %d %q damage must be positive, got %d", i, it.Name, it.Damage)
		}
		if it.Room < 0 || it.Room >= len(def.Rooms) {
			ve.add("item %d %q is in room %d, manor has %d rooms", i, it.Name, it.Room, len(def.Rooms))
		}
	}

	if ve.failed() {
		collectWarnings(def, ve)
		return ve
	}
	return nil
}

// Warnings returns the non-fatal findings for a definition: rooms with no
// neighbors and room names that differ only in case.
func Warnings(def *types.ManorDef) []string {
	ve := &ValidationError{}
	collectWarnings(def, ve)
	return ve.Warnings
}

func collectWarnings(def *types.ManorDef, ve *ValidationError) {
	if len(def.Rooms) > 1 {
		for i, n := range geometry.Neighbors(roomRects(def)) {
			if n.Size() == 0 {
				ve.warn("room %d %q has no neighbors", i, def.Rooms[i].Name)
			}
		}
	}
	names := map[string]int{}
	for i, r := range def.Rooms {
		key := strings.ToLower(r.Name)
		if first, dup := names[key]; dup {
			ve.warn("rooms %d and %d share the name %q", first, i, r.Name)
		} else {
			names[key] = i
		}
	}
}

func roomRects(def *types.ManorDef) []types.Rect {
	rects := make([]types.Rect, len(def.Rooms))
	for i, r := range def.Rooms {
		rects[i] = r.Rect
	}
	return rects
}
