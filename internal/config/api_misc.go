package config

import lua "github.com/yuin/gopher-lua"

// registerMisc installs every top-level oxwm.* function that isn't under a
// namespace table: the remaining scalar setters (set_terminal, set_modkey,
// set_tags, set_layout_symbol, toggle_gaps), autostart (which appends a
// command to Config.Autostart and returns nothing) and the remaining action
// factories (quit, restart, show_keybinds, set_master_factor,
// inc_num_master).
func registerMisc(L *lua.LState, oxwm *lua.LTable, b *builder) {
	oxwm.RawSetString("set_terminal", fn(L, func(L *lua.LState) int {
		b.setTerminal(L.CheckString(1))
		return 0
	}))
	oxwm.RawSetString("set_modkey", fn(L, func(L *lua.LState) int {
		name := L.CheckString(1)
		mk, ok := ParseModKey(name)
		if !ok {
			L.ArgError(1, "expected Mod1..Mod5")
			return 0
		}
		b.setModKey(mk)
		return 0
	}))
	oxwm.RawSetString("set_tags", fn(L, func(L *lua.LState) int {
		b.setTags(argStringSlice(L, 1))
		return 0
	}))
	oxwm.RawSetString("set_layout_symbol", fn(L, func(L *lua.LState) int {
		b.setLayoutSymbol(L.CheckString(1), L.CheckString(2))
		return 0
	}))
	oxwm.RawSetString("toggle_gaps", fn(L, func(L *lua.LState) int {
		b.setGapsEnabled(!b.cfg.GapsEnabled)
		return 0
	}))

	oxwm.RawSetString("quit", fn(L, func(L *lua.LState) int {
		return pushAction(L, Action{Kind: ActionQuit})
	}))
	oxwm.RawSetString("restart", fn(L, func(L *lua.LState) int {
		return pushAction(L, Action{Kind: ActionRestart})
	}))
	oxwm.RawSetString("show_keybinds", fn(L, func(L *lua.LState) int {
		return pushAction(L, Action{Kind: ActionShowKeybindOverlay})
	}))
	oxwm.RawSetString("autostart", fn(L, func(L *lua.LState) int {
		v := L.Get(1)
		var argv []string
		switch val := v.(type) {
		case lua.LString:
			argv = []string{"sh", "-c", string(val)}
		case *lua.LTable:
			val.ForEach(func(_, e lua.LValue) { argv = append(argv, e.String()) })
		default:
			L.ArgError(1, "autostart expects a string or array of strings")
		}
		b.addAutostart(argv)
		return 0
	}))
	oxwm.RawSetString("set_master_factor", fn(L, func(L *lua.LState) int {
		f := float64(L.CheckNumber(1))
		return pushAction(L, Action{Kind: ActionSetMasterFactor, Arg: f})
	}))
	oxwm.RawSetString("inc_num_master", fn(L, func(L *lua.LState) int {
		delta := int(L.CheckNumber(1))
		return pushAction(L, Action{Kind: ActionIncNumMaster, Arg: delta})
	}))
}
