package script

import (
	"math"
	"strconv"

	lua "github.com/yuin/gopher-lua"

	"github.com/shopware/sw-sync-cli/pkg/value"
)

// toLua converts a value.Value into the interpreter's native LValue.
// Conversion is lossless for the closed variant set: strings (including
// ones with embedded quote characters) pass through as Go strings, never
// re-escaped or re-quoted, since lua.LString wraps the byte sequence
// verbatim (spec.md §4.C — "a known prior-version bug that MUST NOT
// recur").
func toLua(L *lua.LState, v value.Value) lua.LValue {
	switch v.Kind {
	case value.KindNull:
		return lua.LNil
	case value.KindBool:
		return lua.LBool(v.Bool())
	case value.KindInt:
		return lua.LNumber(v.Int())
	case value.KindFloat:
		return lua.LNumber(v.Float())
	case value.KindString:
		return lua.LString(v.String())
	case value.KindArray:
		tbl := L.NewTable()
		for _, item := range v.Array() {
			tbl.Append(toLua(L, item))
		}
		return tbl
	case value.KindObject:
		tbl := L.NewTable()
		for k, item := range v.Object() {
			tbl.RawSetString(k, toLua(L, item))
		}
		return tbl
	default:
		return lua.LNil
	}
}

// fromLua converts an LValue back into a value.Value. Tables with a dense
// 1..n integer key set and no string keys become Array; anything else with
// keys becomes Object.
func fromLua(lv lua.LValue) value.Value {
	switch lv.Type() {
	case lua.LTNil:
		return value.Null()
	case lua.LTBool:
		return value.Bool(bool(lv.(lua.LBool)))
	case lua.LTNumber:
		f := float64(lv.(lua.LNumber))
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return value.Int(int64(f))
		}
		return value.Float(f)
	case lua.LTString:
		return value.String(string(lv.(lua.LString)))
	case lua.LTTable:
		return fromLuaTable(lv.(*lua.LTable))
	default:
		// Functions, userdata, threads, channels have no Value
		// representation; scripts should not return them as row/entity
		// fields.
		return value.Null()
	}
}

func fromLuaTable(tbl *lua.LTable) value.Value {
	fields := make(map[string]value.Value)
	maxIndex := 0
	count := 0
	isArray := true

	tbl.ForEach(func(k, v lua.LValue) {
		count++
		if n, ok := k.(lua.LNumber); ok {
			i := int(n)
			if float64(i) == float64(n) && i > 0 {
				if i > maxIndex {
					maxIndex = i
				}
				fields[strconv.Itoa(i)] = fromLua(v)
				return
			}
		}
		isArray = false
		fields[k.String()] = fromLua(v)
	})

	if isArray && maxIndex == count {
		items := make([]value.Value, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			items[i-1] = fields[strconv.Itoa(i)]
		}
		return value.Array(items)
	}

	return value.Object(fields)
}
