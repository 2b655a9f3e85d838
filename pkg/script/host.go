package script

import (
	"log/slog"
	"regexp"

	lua "github.com/yuin/gopher-lua"

	"github.com/shopware/sw-sync-cli/pkg/lookup"
	"github.com/shopware/sw-sync-cli/pkg/value"
)

const (
	serializeGlobal   = "serialize"
	deserializeGlobal = "deserialize"
)

// Host owns one *lua.LState and the serialize/deserialize scripts loaded
// into it. Hosts are not safe for concurrent use — the pipeline creates
// one Host per worker goroutine (spec.md §4.C "interpreter instance per
// worker").
type Host struct {
	L      *lua.LState
	logger *slog.Logger

	hasSerialize   bool
	hasDeserialize bool
}

// NewHost creates a fresh interpreter with the host functions registered
// against tables. logger receives script print() output.
func NewHost(tables *lookup.Tables, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	L := lua.NewState()
	registerHostFunctions(L, tables, logger)
	return &Host{L: L, logger: logger}
}

// Close releases the interpreter's resources. Call once per worker on
// shutdown.
func (h *Host) Close() {
	h.L.Close()
}

// LoadSerialize compiles and runs source once, expecting it to define a
// global serialize(entity, row) function. An empty source is a no-op
// (profiles need not define serialize_script).
func (h *Host) LoadSerialize(source string) error {
	if source == "" {
		return nil
	}
	if err := h.L.DoString(source); err != nil {
		return &Error{Contract: "serialize", Message: err.Error(), Cause: err}
	}
	h.hasSerialize = h.L.GetGlobal(serializeGlobal) != lua.LNil
	return nil
}

// LoadDeserialize is LoadSerialize's counterpart for deserialize_script.
func (h *Host) LoadDeserialize(source string) error {
	if source == "" {
		return nil
	}
	if err := h.L.DoString(source); err != nil {
		return &Error{Contract: "deserialize", Message: err.Error(), Cause: err}
	}
	h.hasDeserialize = h.L.GetGlobal(deserializeGlobal) != lua.LNil
	return nil
}

// Serialize runs the loaded serialize(entity, row) function, if any, and
// returns the resulting row. row arrives pre-populated with whatever
// path-mapping projection the pipeline has already done for non-script
// columns; the script is expected to populate only key-mappings, but MAY
// overwrite any row key (spec.md §4.C). If no serialize script was
// loaded, row is returned unchanged.
func (h *Host) Serialize(entity, row value.Value) (value.Value, error) {
	if !h.hasSerialize {
		return row, nil
	}

	fn := h.L.GetGlobal(serializeGlobal)
	luaEntity := toLua(h.L, entity)
	luaRow := toLua(h.L, row)

	if err := h.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, luaEntity, luaRow); err != nil {
		return value.Null(), scriptError("serialize", err)
	}
	ret := h.L.Get(-1)
	h.L.Pop(1)

	if ret == lua.LNil {
		// The script may have mutated the row table in place rather than
		// returning it explicitly.
		return fromLua(luaRow), nil
	}
	return fromLua(ret), nil
}

// Deserialize runs the loaded deserialize(row, entity) function, if any,
// and returns the resulting entity scaffold. The pipeline overlays
// path-mapping values onto the result afterward; path-mapping writes win
// over anything the script wrote at the same path (spec.md §4.C, §9 OQ1).
// If no deserialize script was loaded, entity is returned unchanged for
// the pipeline to project path-mappings onto.
func (h *Host) Deserialize(row, entity value.Value) (value.Value, error) {
	if !h.hasDeserialize {
		return entity, nil
	}

	fn := h.L.GetGlobal(deserializeGlobal)
	luaRow := toLua(h.L, row)
	luaEntity := toLua(h.L, entity)

	if err := h.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, luaRow, luaEntity); err != nil {
		return value.Null(), scriptError("deserialize", err)
	}
	ret := h.L.Get(-1)
	h.L.Pop(1)

	if ret == lua.LNil {
		return fromLua(luaEntity), nil
	}
	return fromLua(ret), nil
}

var luaErrorLine = regexp.MustCompile(`^.*?:(\d+):\s*(.*)$`)

// scriptError wraps a gopher-lua call error as an *Error, pulling the
// source line out of gopher-lua's "chunk:line: message" formatting when
// present.
func scriptError(contract string, err error) *Error {
	msg := err.Error()
	if m := luaErrorLine.FindStringSubmatch(msg); m != nil {
		line := 0
		for _, c := range m[1] {
			line = line*10 + int(c-'0')
		}
		return &Error{Contract: contract, Line: line, Message: m[2], Cause: err}
	}
	return &Error{Contract: contract, Message: msg, Cause: err}
}
