package config

import lua "github.com/yuin/gopher-lua"

// registerBorderModule installs border.set_width/set_focused_color/
// set_unfocused_color.
func registerBorderModule(L *lua.LState, parent *lua.LTable, b *builder) {
	border := L.NewTable()

	border.RawSetString("set_width", fn(L, func(L *lua.LState) int {
		b.setBorderWidth(uint32(L.CheckNumber(1)))
		return 0
	}))
	border.RawSetString("set_focused_color", fn(L, func(L *lua.LState) int {
		c, err := argColor(L, 1)
		if err != nil {
			L.RaiseError(err.Error())
			return 0
		}
		b.setBorderFocused(c)
		return 0
	}))
	border.RawSetString("set_unfocused_color", fn(L, func(L *lua.LState) int {
		c, err := argColor(L, 1)
		if err != nil {
			L.RaiseError(err.Error())
			return 0
		}
		b.setBorderUnfocused(c)
		return 0
	}))

	parent.RawSetString("border", border)
}
