package config

import lua "github.com/yuin/gopher-lua"

// registerMonitorModule installs monitor.focus(dir)/monitor.tag(dir), the
// FocusMonitor action factory and its client-following counterpart.
// dir is ±1.
func registerMonitorModule(L *lua.LState, parent *lua.LTable, b *builder) {
	monitor := L.NewTable()

	monitor.RawSetString("focus", fn(L, func(L *lua.LState) int {
		dir := int(L.CheckNumber(1))
		return pushAction(L, Action{Kind: ActionFocusMonitor, Arg: dir})
	}))
	monitor.RawSetString("tag", fn(L, func(L *lua.LState) int {
		dir := int(L.CheckNumber(1))
		return pushAction(L, Action{Kind: ActionMoveToMonitor, Arg: dir})
	}))

	parent.RawSetString("monitor", monitor)
}
