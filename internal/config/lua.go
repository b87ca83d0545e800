package config

import (
	"os"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Load runs the config.lua script at path and returns the settled Config.
// A parse or type error here is recoverable: the caller falls back to
// Default() with Degraded set rather than treating it as fatal.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadString(string(src))
}

// LoadString runs Lua source directly; split out of Load for tests.
func LoadString(src string) (*Config, error) {
	L := lua.NewState()
	defer L.Close()

	b := newBuilder()
	if err := registerAPI(L, b); err != nil {
		return nil, err
	}
	if err := L.DoString(src); err != nil {
		line := extractLuaErrorLine(err.Error())
		return nil, &ConfigError{Line: line, Msg: err.Error()}
	}
	return b.finalize()
}

// extractLuaErrorLine pulls a "chunk:LINE:" prefix out of a gopher-lua
// error string so ConfigError can report a location alongside the message.
func extractLuaErrorLine(msg string) int {
	parts := strings.SplitN(msg, ":", 3)
	if len(parts) < 2 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}
	return n
}

// --- small argument helpers shared by the api_*.go registration files ---

func argBool(L *lua.LState, n int) bool {
	v := L.Get(n)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return lua.LVAsBool(v)
}

// argColor accepts either a "#rrggbb" hex string or a bare integer.
func argColor(L *lua.LState, n int) (Color, error) {
	v := L.Get(n)
	switch val := v.(type) {
	case lua.LNumber:
		return Color(uint32(val)), nil
	case lua.LString:
		s := strings.TrimPrefix(string(val), "#")
		n64, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return 0, &ConfigError{Msg: "invalid color: " + string(val)}
		}
		return Color(uint32(n64)), nil
	}
	return 0, &ConfigError{Msg: "color must be a hex string or integer"}
}

func argStringSlice(L *lua.LState, n int) []string {
	tbl := L.CheckTable(n)
	out := make([]string, 0, tbl.Len())
	tbl.ForEach(func(_, v lua.LValue) {
		out = append(out, v.String())
	})
	return out
}

// rejectUnknownFields reports an error if tbl has any string key not
// present in allowed, so option tables fail loudly on typos instead of
// silently ignoring them.
func rejectUnknownFields(tbl *lua.LTable, allowed map[string]bool) error {
	var bad string
	tbl.ForEach(func(k, _ lua.LValue) {
		if bad != "" {
			return
		}
		ks, ok := k.(lua.LString)
		if !ok {
			return
		}
		if !allowed[string(ks)] {
			bad = string(ks)
		}
	})
	if bad != "" {
		return &ConfigError{Msg: "unrecognized field: " + bad}
	}
	return nil
}

// pushAction wraps an Action in Lua userdata so it can be passed around
// config.lua as the opaque handle action factories return.
func pushAction(L *lua.LState, a Action) int {
	ud := L.NewUserData()
	ud.Value = a
	L.Push(ud)
	return 1
}

func checkAction(L *lua.LState, n int) Action {
	ud, ok := L.CheckUserData(n).Value.(Action)
	if !ok {
		L.RaiseError("expected an action value at argument %d", n)
	}
	return ud
}
