// Package render projects the manor grid onto pixels and exports the map as a
// PNG image.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/nathoo/manorhunt/engine/snapshot"
	"github.com/nathoo/manorhunt/types"
)

// DefaultCell is the pixel size of one grid cell.
const DefaultCell = 20

// Map palette
var (
	colorBackground = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorRoom       = color.RGBA{60, 60, 80, 255}    // Room floor
	colorOutline    = color.RGBA{180, 180, 200, 255} // Light gray-blue walls
	colorLabel      = color.RGBA{200, 210, 245, 255} // Soft off-white
	colorTarget     = color.RGBA{255, 80, 80, 255}   // Bright red
	colorPet        = color.RGBA{255, 165, 0, 255}   // Orange
	colorPlayer     = color.RGBA{0, 255, 0, 255}     // Bright green
)

// Layout is the pixel geometry of a manor map.
type Layout struct {
	Canvas image.Rectangle
	Rooms  []image.Rectangle // indexed by room id
}

// Project maps each room's grid rectangle to pixels. The canvas keeps a
// one-cell margin around the grid.
func Project(def *types.ManorDef, cell int) Layout {
	rects := make([]types.Rect, len(def.Rooms))
	for i, r := range def.Rooms {
		rects[i] = r.Rect
	}
	return project(def.Rows, def.Cols, rects, cell)
}

// ProjectSnapshot is Project for a running game.
func ProjectSnapshot(s *snapshot.Snapshot, cell int) Layout {
	rects := make([]types.Rect, len(s.Rooms))
	for i, r := range s.Rooms {
		rects[i] = r.Rect
	}
	return project(s.Rows, s.Cols, rects, cell)
}

func project(rows, cols int, rects []types.Rect, cell int) Layout {
	l := Layout{
		Canvas: image.Rect(0, 0, (cols+2)*cell, (rows+2)*cell),
		Rooms:  make([]image.Rectangle, len(rects)),
	}
	for i, r := range rects {
		x := (r.ColStart + 1) * cell
		y := (r.RowStart + 1) * cell
		w := (r.ColEnd - r.ColStart + 1) * cell
		h := (r.RowEnd - r.RowStart + 1) * cell
		l.Rooms[i] = image.Rect(x, y, x+w, y+h)
	}
	return l
}

// Draw renders the map: room floors with outlines and names, then markers for
// the target, the pet and each player along the bottom edge of their room.
func Draw(s *snapshot.Snapshot, cell int) (*image.RGBA, error) {
	if cell < 1 {
		return nil, fmt.Errorf("cell size must be positive, got %d", cell)
	}
	l := ProjectSnapshot(s, cell)
	img := image.NewRGBA(l.Canvas)
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	for i, r := range l.Rooms {
		draw.Draw(img, r, image.NewUniform(colorRoom), image.Point{}, draw.Src)
		outline(img, r, colorOutline)
		label(img, r, s.Rooms[i].Name)
	}

	m := markerSize(cell)
	if s.Target.Room >= 0 && s.Target.Room < len(l.Rooms) {
		r := l.Rooms[s.Target.Room]
		fill(img, image.Rect(r.Max.X-2-m, r.Max.Y-2-m, r.Max.X-2, r.Max.Y-2), colorTarget)
	}
	if s.Pet.Room >= 0 && s.Pet.Room < len(l.Rooms) {
		r := l.Rooms[s.Pet.Room]
		fill(img, image.Rect(r.Max.X-4-2*m, r.Max.Y-2-m, r.Max.X-4-m, r.Max.Y-2), colorPet)
	}
	for i, room := range s.Rooms {
		r := l.Rooms[i]
		for k := range room.Occupants {
			x := r.Min.X + 2 + k*(m+2)
			fill(img, image.Rect(x, r.Max.Y-2-m, x+m, r.Max.Y-2), colorPlayer)
		}
	}
	return img, nil
}

// WritePNG encodes the map of s as a PNG.
func WritePNG(w io.Writer, s *snapshot.Snapshot, cell int) error {
	img, err := Draw(s, cell)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG writes the map of s to a file.
func SavePNG(path string, s *snapshot.Snapshot, cell int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating map %s: %w", path, err)
	}
	if err := WritePNG(f, s, cell); err != nil {
		f.Close()
		return fmt.Errorf("writing map %s: %w", path, err)
	}
	return f.Close()
}

func markerSize(cell int) int {
	if m := cell / 2; m > 3 {
		return m
	}
	return 3
}

// fill paints r clipped to the canvas.
func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// outline draws a one-pixel border just inside r.
func outline(img *image.RGBA, r image.Rectangle, c color.Color) {
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fill(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fill(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// label writes the room name in the top-left corner, clipped to the room.
func label(img *image.RGBA, r image.Rectangle, name string) {
	clip, ok := img.SubImage(r.Inset(1)).(*image.RGBA)
	if !ok || clip.Bounds().Empty() {
		return
	}
	d := &font.Drawer{
		Dst:  clip,
		Src:  image.NewUniform(colorLabel),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(r.Min.X+3, r.Min.Y+basicfont.Face7x13.Ascent+2),
	}
	d.DrawString(name)
}
