package config

import lua "github.com/yuin/gopher-lua"

// registerGapsModule installs gaps.set_enabled/set_inner/set_outer, each
// taking separate horizontal/vertical values.
func registerGapsModule(L *lua.LState, parent *lua.LTable, b *builder) {
	gaps := L.NewTable()

	gaps.RawSetString("set_enabled", fn(L, func(L *lua.LState) int {
		b.setGapsEnabled(argBool(L, 1))
		return 0
	}))
	gaps.RawSetString("set_inner", fn(L, func(L *lua.LState) int {
		h := uint32(L.CheckNumber(1))
		v := uint32(L.CheckNumber(2))
		b.setGapInner(h, v)
		return 0
	}))
	gaps.RawSetString("set_outer", fn(L, func(L *lua.LState) int {
		h := uint32(L.CheckNumber(1))
		v := uint32(L.CheckNumber(2))
		b.setGapOuter(h, v)
		return 0
	}))

	parent.RawSetString("gaps", gaps)
}
