package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the manor constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Manor { name = "...", rows = n, cols = n }
	L.SetGlobal("Manor", L.NewFunction(func(L *lua.LState) int {
		coll.manor = L.CheckTable(1)
		return 0
	}))

	// Target { name = "...", health = n }
	L.SetGlobal("Target", L.NewFunction(func(L *lua.LState) int {
		coll.target = L.CheckTable(1)
		return 0
	}))

	// Pet { name = "..." }
	L.SetGlobal("Pet", L.NewFunction(func(L *lua.LState) int {
		coll.pet = L.CheckTable(1)
		return 0
	}))

	// Room "name" { rect = {rowStart, colStart, rowEnd, colEnd} }
	// Curried: Room("name") returns a function that takes a table. Room ids
	// follow declaration order.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.rooms = append(coll.rooms, rawRoom{name: name, table: tbl, line: currentLine(L)})
			return 0
		}))
		return 1
	}))

	// Item "name" { room = "Room name" or index, damage = n }
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.items = append(coll.items, rawItem{name: name, table: tbl, line: currentLine(L)})
			return 0
		}))
		return 1
	}))
}

// currentLine returns the script line of the calling constructor, or 0.
func currentLine(L *lua.LState) int {
	if dbg, ok := L.GetStack(1); ok {
		if _, err := L.GetInfo("l", dbg, lua.LNil); err == nil {
			return dbg.CurrentLine
		}
	}
	return 0
}
