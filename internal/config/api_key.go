package config

import lua "github.com/yuin/gopher-lua"

// registerKeyModule installs key.bind(mods, key, action) and
// key.chord(steps, action), the two binders. mods is a Lua array of
// modifier tokens ("Mod", "Shift", "Control", ...); key is a key name
// resolved via KeysymForName.
func registerKeyModule(L *lua.LState, parent *lua.LTable, b *builder) {
	key := L.NewTable()

	key.RawSetString("bind", fn(L, func(L *lua.LState) int {
		mods := argStringSlice(L, 1)
		keyName := L.CheckString(2)
		action := checkAction(L, 3)

		sym, ok := KeysymForName(keyName)
		if !ok {
			L.RaiseError("key.bind: unknown key name %q", keyName)
			return 0
		}
		b.addBinding(KeyBinding{
			Steps:  []KeyStep{{ModTokens: mods, Keysym: sym}},
			Action: action,
		})
		return 0
	}))

	key.RawSetString("chord", fn(L, func(L *lua.LState) int {
		stepsTbl := L.CheckTable(1)
		action := checkAction(L, 2)

		steps := parseChordSteps(L, stepsTbl)
		if len(steps) == 0 {
			L.RaiseError("key.chord: needs at least one step")
			return 0
		}
		b.addBinding(KeyBinding{Steps: steps, Action: action})
		return 0
	}))

	parent.RawSetString("key", key)
}

// parseChordSteps reads a Lua array of {mods_array, key_name} pairs, e.g.
// {{{"Mod"}, "Space"}, {{}, "T"}}.
func parseChordSteps(L *lua.LState, stepsTbl *lua.LTable) []KeyStep {
	var steps []KeyStep
	n := stepsTbl.Len()
	for i := 1; i <= n; i++ {
		v := stepsTbl.RawGetInt(i)
		pair, ok := v.(*lua.LTable)
		if !ok {
			L.RaiseError("key.chord: step %d is not a table", i)
			return nil
		}
		modsV := pair.RawGetInt(1)
		keyV := pair.RawGetInt(2)
		var mods []string
		if mt, ok := modsV.(*lua.LTable); ok {
			mt.ForEach(func(_, mv lua.LValue) { mods = append(mods, mv.String()) })
		}
		keyName := keyV.String()
		sym, ok := KeysymForName(keyName)
		if !ok {
			L.RaiseError("key.chord: unknown key name %q at step %d", keyName, i)
			return nil
		}
		steps = append(steps, KeyStep{ModTokens: mods, Keysym: sym})
	}
	return steps
}
