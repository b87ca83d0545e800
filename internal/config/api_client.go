package config

import lua "github.com/yuin/gopher-lua"

// registerClientModule installs the client.* action factories: kill,
// toggle_fullscreen, toggle_floating, focus_direction, swap_direction,
// focus_stack.
func registerClientModule(L *lua.LState, parent *lua.LTable, b *builder) {
	client := L.NewTable()

	client.RawSetString("kill", fn(L, func(L *lua.LState) int {
		return pushAction(L, Action{Kind: ActionKillClient})
	}))
	client.RawSetString("toggle_fullscreen", fn(L, func(L *lua.LState) int {
		return pushAction(L, Action{Kind: ActionToggleFullScreen})
	}))
	client.RawSetString("toggle_floating", fn(L, func(L *lua.LState) int {
		return pushAction(L, Action{Kind: ActionToggleFloating})
	}))
	client.RawSetString("focus_direction", fn(L, func(L *lua.LState) int {
		d, ok := parseDirection(L.CheckString(1))
		if !ok {
			L.ArgError(1, "expected up/down/left/right")
		}
		return pushAction(L, Action{Kind: ActionFocusDirection, Arg: d})
	}))
	client.RawSetString("swap_direction", fn(L, func(L *lua.LState) int {
		d, ok := parseDirection(L.CheckString(1))
		if !ok {
			L.ArgError(1, "expected up/down/left/right")
		}
		return pushAction(L, Action{Kind: ActionSwapDirection, Arg: d})
	}))
	client.RawSetString("focus_stack", fn(L, func(L *lua.LState) int {
		dir := int(L.CheckNumber(1))
		return pushAction(L, Action{Kind: ActionFocusStack, Arg: dir})
	}))

	parent.RawSetString("client", client)
}

func parseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return 0, false
}
