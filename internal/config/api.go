package config

import lua "github.com/yuin/gopher-lua"

// registerAPI builds the namespaced "oxwm" table and installs it as a Lua
// global, before the user's script runs.
func registerAPI(L *lua.LState, b *builder) error {
	oxwm := L.NewTable()

	registerSpawn(L, oxwm, b)
	registerKeyModule(L, oxwm, b)
	registerGapsModule(L, oxwm, b)
	registerBorderModule(L, oxwm, b)
	registerClientModule(L, oxwm, b)
	registerLayoutModule(L, oxwm, b)
	registerTagModule(L, oxwm, b)
	registerMonitorModule(L, oxwm, b)
	registerBarModule(L, oxwm, b)
	registerMisc(L, oxwm, b)

	L.SetGlobal("oxwm", oxwm)
	return nil
}

func fn(L *lua.LState, f lua.LGFunction) *lua.LFunction {
	return L.NewFunction(f)
}
