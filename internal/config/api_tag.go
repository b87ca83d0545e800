package config

import lua "github.com/yuin/gopher-lua"

// registerTagModule installs tag.view(i)/tag.move_to(i), the ViewTag/
// MoveToTag action factories. i is a 0-based tag index, resolved against
// the configured tags list by the dispatcher at fire time.
func registerTagModule(L *lua.LState, parent *lua.LTable, b *builder) {
	tag := L.NewTable()

	tag.RawSetString("view", fn(L, func(L *lua.LState) int {
		i := int(L.CheckNumber(1))
		return pushAction(L, Action{Kind: ActionViewTag, Arg: i})
	}))
	tag.RawSetString("move_to", fn(L, func(L *lua.LState) int {
		i := int(L.CheckNumber(1))
		return pushAction(L, Action{Kind: ActionMoveToTag, Arg: i})
	}))

	parent.RawSetString("tag", tag)
}
