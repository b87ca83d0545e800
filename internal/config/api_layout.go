package config

import lua "github.com/yuin/gopher-lua"

// registerLayoutModule installs layout.set(name) / layout.cycle(), the
// ChangeLayout/CycleLayout action factories.
func registerLayoutModule(L *lua.LState, parent *lua.LTable, b *builder) {
	layout := L.NewTable()

	layout.RawSetString("set", fn(L, func(L *lua.LState) int {
		name := L.CheckString(1)
		return pushAction(L, Action{Kind: ActionChangeLayout, Arg: name})
	}))
	layout.RawSetString("cycle", fn(L, func(L *lua.LState) int {
		return pushAction(L, Action{Kind: ActionCycleLayout})
	}))

	parent.RawSetString("layout", layout)
}
