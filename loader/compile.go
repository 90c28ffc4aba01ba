// Package loader reads manor definitions from the plain text format or from
// sandboxed Lua scripts and validates them before a game is built.
package loader

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/manorhunt/types"
)

// rawRoom holds a room table before compilation.
type rawRoom struct {
	name  string
	table *lua.LTable
	line  int
}

// rawItem holds an item table before compilation.
type rawItem struct {
	name  string
	table *lua.LTable
	line  int
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if tbl == nil {
		return ""
	}
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getInt returns an integer field from a Lua table. ok is false when the
// field is missing or not a whole number.
func getInt(tbl *lua.LTable, key string) (n int, ok bool) {
	if tbl == nil {
		return 0, false
	}
	return toInt(tbl.RawGetString(key))
}

func toInt(v lua.LValue) (int, bool) {
	num, ok := v.(lua.LNumber)
	if !ok {
		return 0, false
	}
	f := float64(num)
	if f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// compile converts collected Lua tables into a ManorDef. Missing or mistyped
// fields are gathered into one ValidationError.
func compile(coll *collector) (*types.ManorDef, error) {
	ve := &ValidationError{}
	def := &types.ManorDef{}

	if coll.manor == nil {
		ve.add("Manor { ... } is required")
	} else {
		def.Name = getString(coll.manor, "name")
		def.Rows = requireInt(ve, coll.manor, "rows", "Manor")
		def.Cols = requireInt(ve, coll.manor, "cols", "Manor")
	}

	if coll.target == nil {
		ve.add("Target { ... } is required")
	} else {
		def.Target.Name = getString(coll.target, "name")
		def.Target.Health = requireInt(ve, coll.target, "health", "Target")
	}

	def.Pet.Name = getString(coll.pet, "name")
	if def.Pet.Name == "" {
		def.Pet.Name = DefaultPetName
	}

	roomIndex := map[string]int{}
	for i, r := range coll.rooms {
		where := fmt.Sprintf("Room %q (line %d)", r.name, r.line)
		def.Rooms = append(def.Rooms, types.RoomDef{Name: r.name, Rect: compileRect(ve, r.table, where)})
		key := strings.ToLower(r.name)
		if _, dup := roomIndex[key]; !dup {
			roomIndex[key] = i
		}
	}

	for _, it := range coll.items {
		where := fmt.Sprintf("Item %q (line %d)", it.name, it.line)
		item := types.ItemDef{Name: it.name, Damage: requireInt(ve, it.table, "damage", where)}
		switch v := it.table.RawGetString("room").(type) {
		case lua.LString:
			idx, ok := roomIndex[strings.ToLower(string(v))]
			if !ok {
				ve.add("%s: room %q is not defined", where, string(v))
				idx = -1
			}
			item.Room = idx
		case lua.LNumber:
			idx, ok := toInt(v)
			if !ok {
				ve.add("%s: room index must be a whole number", where)
			}
			item.Room = idx
		default:
			ve.add("%s: room is required", where)
			item.Room = -1
		}
		def.Items = append(def.Items, item)
	}

	if ve.failed() {
		return nil, ve
	}
	return def, nil
}

func requireInt(ve *ValidationError, tbl *lua.LTable, key, where string) int {
	n, ok := getInt(tbl, key)
	if !ok {
		ve.add("%s.%s must be a whole number", where, key)
	}
	return n
}

// compileRect reads rect = {rowStart, colStart, rowEnd, colEnd}.
func compileRect(ve *ValidationError, tbl *lua.LTable, where string) types.Rect {
	rt, ok := tbl.RawGetString("rect").(*lua.LTable)
	if !ok || rt.MaxN() != 4 {
		ve.add("%s: rect must be {rowStart, colStart, rowEnd, colEnd}", where)
		return types.Rect{}
	}
	var vals [4]int
	for i := range vals {
		n, ok := toInt(rt.RawGetInt(i + 1))
		if !ok {
			ve.add("%s: rect[%d] must be a whole number", where, i+1)
		}
		vals[i] = n
	}
	return types.Rect{RowStart: vals[0], ColStart: vals[1], RowEnd: vals[2], ColEnd: vals[3]}
}
