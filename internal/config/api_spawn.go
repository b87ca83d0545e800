package config

import lua "github.com/yuin/gopher-lua"

// registerSpawn installs oxwm.spawn(cmd), the action factory for the
// Spawn verb. cmd may be a single string (passed to the shell) or an
// array of argv strings.
func registerSpawn(L *lua.LState, parent *lua.LTable, b *builder) {
	parent.RawSetString("spawn", fn(L, func(L *lua.LState) int {
		v := L.Get(1)
		var argv []string
		switch val := v.(type) {
		case lua.LString:
			argv = []string{"sh", "-c", string(val)}
		case *lua.LTable:
			val.ForEach(func(_, e lua.LValue) { argv = append(argv, e.String()) })
		default:
			L.ArgError(1, "spawn expects a string or array of strings")
		}
		return pushAction(L, Action{Kind: ActionSpawn, Arg: argv})
	}))
}
