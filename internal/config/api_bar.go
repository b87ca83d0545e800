package config

import (
	"time"

	lua "github.com/yuin/gopher-lua"
)

// registerBarModule installs the bar.* setters and the bar.block.* status
// block factories.
func registerBarModule(L *lua.LState, parent *lua.LTable, b *builder) {
	bar := L.NewTable()

	bar.RawSetString("set_font", fn(L, func(L *lua.LState) int {
		b.setFont(L.CheckString(1))
		return 0
	}))
	bar.RawSetString("set_scheme_normal", fn(L, func(L *lua.LState) int {
		s, err := argScheme(L, 1)
		if err != nil {
			L.RaiseError(err.Error())
			return 0
		}
		b.setSchemeNormal(s)
		return 0
	}))
	bar.RawSetString("set_scheme_occupied", fn(L, func(L *lua.LState) int {
		s, err := argScheme(L, 1)
		if err != nil {
			L.RaiseError(err.Error())
			return 0
		}
		b.setSchemeOccupied(s)
		return 0
	}))
	bar.RawSetString("set_scheme_selected", fn(L, func(L *lua.LState) int {
		s, err := argScheme(L, 1)
		if err != nil {
			L.RaiseError(err.Error())
			return 0
		}
		b.setSchemeSelected(s)
		return 0
	}))
	bar.RawSetString("set_blocks", fn(L, func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		var blocks []BlockConfig
		var parseErr error
		tbl.ForEach(func(_, v lua.LValue) {
			ud, ok := v.(*lua.LUserData)
			if !ok {
				parseErr = &ConfigError{Msg: "bar.set_blocks expects an array of bar.block.* results"}
				return
			}
			bc, ok := ud.Value.(BlockConfig)
			if !ok {
				parseErr = &ConfigError{Msg: "bar.set_blocks: element is not a status block"}
				return
			}
			blocks = append(blocks, bc)
		})
		if parseErr != nil {
			L.RaiseError(parseErr.Error())
			return 0
		}
		b.setBlocks(blocks)
		return 0
	}))
	bar.RawSetString("add_block", fn(L, func(L *lua.LState) int {
		bc := checkBlock(L, 1)
		b.addBlock(bc)
		return 0
	}))

	block := L.NewTable()
	registerBlockFactories(L, block)
	bar.RawSetString("block", block)

	parent.RawSetString("bar", bar)
}

var schemeFields = map[string]bool{"fg": true, "bg": true, "underline": true}

func argScheme(L *lua.LState, n int) (Scheme, error) {
	tbl := L.CheckTable(n)
	if err := rejectUnknownFields(tbl, schemeFields); err != nil {
		return Scheme{}, err
	}
	var s Scheme
	if fg := tbl.RawGetString("fg"); fg != lua.LNil {
		L.Push(fg)
		c, err := argColor(L, L.GetTop())
		L.Pop(1)
		if err != nil {
			return s, err
		}
		s.FG = c
	}
	if bg := tbl.RawGetString("bg"); bg != lua.LNil {
		L.Push(bg)
		c, err := argColor(L, L.GetTop())
		L.Pop(1)
		if err != nil {
			return s, err
		}
		s.BG = c
	}
	s.Underline = lua.LVAsBool(tbl.RawGetString("underline"))
	return s, nil
}

func pushBlock(L *lua.LState, bc BlockConfig) int {
	ud := L.NewUserData()
	ud.Value = bc
	L.Push(ud)
	return 1
}

func checkBlock(L *lua.LState, n int) BlockConfig {
	ud, ok := L.CheckUserData(n).Value.(BlockConfig)
	if !ok {
		L.RaiseError("expected a status block value at argument %d", n)
	}
	return ud
}

var commonBlockFields = map[string]bool{"format": true, "interval": true, "color": true, "underline": true}

// registerBlockFactories installs bar.block.{ram,datetime,shell,static,
// battery}, the status block sources. Every factory takes an options
// table; fields outside the ones each factory recognizes are rejected.
func registerBlockFactories(L *lua.LState, block *lua.LTable) {
	common := func(opts *lua.LTable, extra map[string]bool) (BlockConfig, error) {
		bc := BlockConfig{Format: "{}"}
		allowed := commonBlockFields
		if extra != nil {
			allowed = make(map[string]bool, len(commonBlockFields)+len(extra))
			for k := range commonBlockFields {
				allowed[k] = true
			}
			for k := range extra {
				allowed[k] = true
			}
		}
		if err := rejectUnknownFields(opts, allowed); err != nil {
			return bc, err
		}
		if f := opts.RawGetString("format"); f != lua.LNil {
			bc.Format = f.String()
		}
		if iv := opts.RawGetString("interval"); iv != lua.LNil {
			secs, ok := iv.(lua.LNumber)
			if !ok {
				return bc, &ConfigError{Msg: "interval must be a number of seconds"}
			}
			bc.Interval = time.Duration(float64(secs) * float64(time.Second))
		}
		if c := opts.RawGetString("color"); c != lua.LNil {
			L.Push(c)
			col, err := argColor(L, L.GetTop())
			L.Pop(1)
			if err != nil {
				return bc, err
			}
			bc.Color = col
		}
		bc.Underline = lua.LVAsBool(opts.RawGetString("underline"))
		return bc, nil
	}

	block.RawSetString("ram", fn(L, func(L *lua.LState) int {
		opts := L.OptTable(1, L.NewTable())
		bc, err := common(opts, nil)
		if err != nil {
			L.RaiseError(err.Error())
			return 0
		}
		bc.Source = BlockRAM
		return pushBlock(L, bc)
	}))
	block.RawSetString("datetime", fn(L, func(L *lua.LState) int {
		opts := L.OptTable(1, L.NewTable())
		bc, err := common(opts, map[string]bool{"strftime": true})
		if err != nil {
			L.RaiseError(err.Error())
			return 0
		}
		bc.Source = BlockDateTime
		if f := opts.RawGetString("strftime"); f != lua.LNil {
			bc.DateTimeFormat = f.String()
		} else {
			bc.DateTimeFormat = "%Y-%m-%d %H:%M"
		}
		return pushBlock(L, bc)
	}))
	block.RawSetString("shell", fn(L, func(L *lua.LState) int {
		opts := L.CheckTable(1)
		bc, err := common(opts, map[string]bool{"command": true})
		if err != nil {
			L.RaiseError(err.Error())
			return 0
		}
		bc.Source = BlockShell
		cmd := opts.RawGetString("command")
		if cmd == lua.LNil {
			L.ArgError(1, "bar.block.shell requires a command field")
			return 0
		}
		bc.ShellCommand = cmd.String()
		return pushBlock(L, bc)
	}))
	block.RawSetString("static", fn(L, func(L *lua.LState) int {
		opts := L.CheckTable(1)
		bc, err := common(opts, nil)
		if err != nil {
			L.RaiseError(err.Error())
			return 0
		}
		bc.Source = BlockStatic
		return pushBlock(L, bc)
	}))
	block.RawSetString("battery", fn(L, func(L *lua.LState) int {
		opts := L.OptTable(1, L.NewTable())
		bc, err := common(opts, map[string]bool{"formats": true})
		if err != nil {
			L.RaiseError(err.Error())
			return 0
		}
		bc.Source = BlockBattery
		if fmts, ok := opts.RawGetString("formats").(*lua.LTable); ok {
			for i, key := range []string{"charging", "discharging", "full"} {
				if v := fmts.RawGetString(key); v != lua.LNil {
					bc.BatteryFormats[i] = v.String()
				}
			}
		}
		return pushBlock(L, bc)
	}))
}
