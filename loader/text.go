package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nathoo/manorhunt/types"
)

// lineReader yields the non-blank lines of a manor file with their numbers.
type lineReader struct {
	sc   *bufio.Scanner
	line int
	peek *textLine
}

type textLine struct {
	no     int
	fields []string
}

func (r *lineReader) next() (textLine, bool) {
	if r.peek != nil {
		l := *r.peek
		r.peek = nil
		return l, true
	}
	for r.sc.Scan() {
		r.line++
		fields := strings.Fields(r.sc.Text())
		if len(fields) == 0 {
			continue
		}
		return textLine{no: r.line, fields: fields}, true
	}
	return textLine{}, false
}

func (r *lineReader) unread(l textLine) {
	r.peek = &l
}

// ParseText reads the plain text manor format:
//
//	rows cols manor name
//	health target name
//	pet name                      (optional)
//	roomCount
//	rowStart colStart rowEnd colEnd room name    (roomCount lines)
//	itemCount
//	roomIndex damage item name                   (itemCount lines)
//
// Blank lines are ignored. A pet line is recognised by not starting with a
// number, so a pet whose name begins with one ("9 Lives") must be written with
// the keyword prefix "pet: 9 Lives"; otherwise the number is read as the room
// count. The result is validated before it is returned.
func ParseText(in io.Reader) (*types.ManorDef, error) {
	r := &lineReader{sc: bufio.NewScanner(in)}
	ve := &ValidationError{}
	def := &types.ManorDef{Pet: types.PetDef{Name: DefaultPetName}}

	l, ok := r.next()
	if !ok {
		return nil, &ValidationError{Errors: []string{"manor file is empty"}}
	}
	ints, name, err := splitLine(l, 2)
	if err != nil {
		return nil, lineError(err)
	}
	def.Rows, def.Cols, def.Name = ints[0], ints[1], name

	l, ok = r.next()
	if !ok {
		return nil, &ValidationError{Errors: []string{"missing target line"}}
	}
	ints, name, err = splitLine(l, 1)
	if err != nil {
		return nil, lineError(err)
	}
	def.Target = types.TargetDef{Name: name, Health: ints[0]}

	// An optional pet line: "pet:" followed by the name, or anything that
	// does not start with a number.
	l, ok = r.next()
	if ok {
		if strings.EqualFold(l.fields[0], "pet:") && len(l.fields) > 1 {
			def.Pet.Name = strings.Join(l.fields[1:], " ")
		} else if _, err := strconv.Atoi(l.fields[0]); err != nil {
			def.Pet.Name = strings.Join(l.fields, " ")
		} else {
			r.unread(l)
		}
	}

	roomCount, err := readCount(r, "room")
	if err != nil {
		return nil, err
	}
	for i := 0; i < roomCount; i++ {
		l, ok := r.next()
		if !ok {
			return nil, &ValidationError{Errors: []string{
				fmt.Sprintf("expected %d rooms, found %d", roomCount, i)}}
		}
		ints, name, err := splitLine(l, 4)
		if err != nil {
			ve.Errors = append(ve.Errors, err.Error())
			def.Rooms = append(def.Rooms, types.RoomDef{Name: strings.Join(l.fields, " ")})
			continue
		}
		def.Rooms = append(def.Rooms, types.RoomDef{
			Name: name,
			Rect: types.Rect{RowStart: ints[0], ColStart: ints[1], RowEnd: ints[2], ColEnd: ints[3]},
		})
	}

	itemCount, err := readCount(r, "item")
	if err != nil {
		return nil, err
	}
	for i := 0; i < itemCount; i++ {
		l, ok := r.next()
		if !ok {
			return nil, &ValidationError{Errors: []string{
				fmt.Sprintf("expected %d items, found %d", itemCount, i)}}
		}
		ints, name, err := splitLine(l, 2)
		if err != nil {
			ve.Errors = append(ve.Errors, err.Error())
			continue
		}
		def.Items = append(def.Items, types.ItemDef{Room: ints[0], Damage: ints[1], Name: name})
	}

	if l, ok := r.next(); ok {
		ve.add("line %d: unexpected trailing content %q", l.no, strings.Join(l.fields, " "))
	}
	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("reading manor: %w", err)
	}
	if ve.failed() {
		return nil, ve
	}
	if err := Validate(def); err != nil {
		return nil, err
	}
	return def, nil
}

// splitLine parses n leading integers followed by a non-empty name.
func splitLine(l textLine, n int) ([]int, string, error) {
	if len(l.fields) < n+1 {
		return nil, "", fmt.Errorf("line %d: expected %d numbers and a name, got %q",
			l.no, n, strings.Join(l.fields, " "))
	}
	ints := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(l.fields[i])
		if err != nil {
			return nil, "", fmt.Errorf("line %d: field %d %q is not a number", l.no, i+1, l.fields[i])
		}
		ints[i] = v
	}
	return ints, strings.Join(l.fields[n:], " "), nil
}

func readCount(r *lineReader, what string) (int, error) {
	l, ok := r.next()
	if !ok {
		return 0, &ValidationError{Errors: []string{fmt.Sprintf("missing %s count", what)}}
	}
	if len(l.fields) != 1 {
		return 0, lineError(fmt.Errorf("line %d: expected a single %s count, got %q",
			l.no, what, strings.Join(l.fields, " ")))
	}
	n, err := strconv.Atoi(l.fields[0])
	if err != nil || n < 0 {
		return 0, lineError(fmt.Errorf("line %d: %s count %q is not a non-negative number",
			l.no, what, l.fields[0]))
	}
	return n, nil
}

func lineError(err error) *ValidationError {
	return &ValidationError{Errors: []string{err.Error()}}
}
