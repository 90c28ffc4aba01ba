package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/manorhunt/types"
)

// DefaultPetName is used when a manor does not name the pet.
const DefaultPetName = "Fortune the Cat"

// collector accumulates Lua definitions during file execution.
type collector struct {
	manor  *lua.LTable
	target *lua.LTable
	pet    *lua.LTable
	rooms  []rawRoom
	items  []rawItem
}

// Load reads a manor from path and validates it. Files ending in .lua are run
// as manor scripts; anything else is read as the plain text format.
func Load(path string) (*types.ManorDef, error) {
	if strings.EqualFold(filepath.Ext(path), ".lua") {
		return LoadLua(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manor %s: %w", path, err)
	}
	defer f.Close()
	return ParseText(f)
}

// LoadLua executes a manor script in a sandboxed VM, compiles the collected
// definitions and validates them. The VM is discarded after loading.
func LoadLua(path string) (*types.ManorDef, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manor script %s: %w", path, err)
	}
	return LoadLuaString(filepath.Base(path), string(src))
}

// LoadLuaString is LoadLua for a script already in memory. name is used in
// error messages only.
func LoadLuaString(name, src string) (*types.ManorDef, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	fn, err := L.Load(strings.NewReader(src), name)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return nil, fmt.Errorf("executing %s: %w", name, err)
	}

	def, err := compile(coll)
	if err != nil {
		return nil, err
	}
	if err := Validate(def); err != nil {
		return nil, err
	}
	return def, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring", "require",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Scripts may not reseed the shared generator.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
