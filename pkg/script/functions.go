package script

import (
	"log/slog"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/shopware/sw-sync-cli/pkg/lookup"
)

// registerHostFunctions installs the closed set of host functions
// (spec.md §4.C, §6) as Lua globals on L. All three lookup functions are
// pure and deterministic within a run: they read tables primed once at
// startup and never mutated afterward.
func registerHostFunctions(L *lua.LState, tables *lookup.Tables, logger *slog.Logger) {
	L.SetGlobal("get_default", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		v, ok := tables.Default(name)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(v))
		return 1
	}))

	L.SetGlobal("get_language_by_iso", L.NewFunction(func(L *lua.LState) int {
		iso := L.CheckString(1)
		id, ok := tables.LanguageByISO(iso)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(id))
		return 1
	}))

	L.SetGlobal("get_currency_by_iso", L.NewFunction(func(L *lua.LState) int {
		iso := L.CheckString(1)
		id, ok := tables.CurrencyByISO(iso)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(id))
		return 1
	}))

	// Standard scripting primitives route to the process log rather than
	// stdout (spec.md §4.C).
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.Get(i).String()
		}
		logger.Info(strings.Join(parts, "\t"), slog.String("source", "script"))
		return 0
	}))
}
