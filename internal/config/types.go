// Package config embeds a Lua VM and exposes the oxwm.* host API that a
// user's config.lua script drives to build an immutable Config consumed
// by internal/wm.
package config

import "time"

// ModKey is one of the five X11 modifier slots a binding's "Mod" token can
// resolve to.
type ModKey int

const (
	Mod1 ModKey = iota + 1
	Mod2
	Mod3
	Mod4
	Mod5
)

func (m ModKey) String() string {
	names := [...]string{"", "Mod1", "Mod2", "Mod3", "Mod4", "Mod5"}
	if int(m) < len(names) {
		return names[m]
	}
	return "Mod1"
}

// ParseModKey parses "Mod1".."Mod5" as written in config.lua.
func ParseModKey(s string) (ModKey, bool) {
	switch s {
	case "Mod1":
		return Mod1, true
	case "Mod2":
		return Mod2, true
	case "Mod3":
		return Mod3, true
	case "Mod4":
		return Mod4, true
	case "Mod5":
		return Mod5, true
	}
	return 0, false
}

// Color is a 24-bit RGB color, accepted in config.lua as either a
// "#rrggbb" string or a bare integer.
type Color uint32

// Scheme is one of the three bar color schemes (normal/occupied/selected).
type Scheme struct {
	FG, BG    Color
	Underline bool
}

// ActionKind is the closed action vocabulary a binding or block can fire.
type ActionKind int

const (
	ActionSpawn ActionKind = iota
	ActionKillClient
	ActionFocusStack
	ActionFocusDirection
	ActionSwapDirection
	ActionQuit
	ActionRestart
	ActionViewTag
	ActionMoveToTag
	ActionToggleGaps
	ActionToggleFullScreen
	ActionToggleFloating
	ActionChangeLayout
	ActionCycleLayout
	ActionFocusMonitor
	// ActionMoveToMonitor sends the focused client to the monitor in the
	// given direction, keeping its tag mask; backs config.lua's
	// monitor.tag(dir) factory.
	ActionMoveToMonitor
	ActionShowKeybindOverlay
	ActionSetMasterFactor
	ActionIncNumMaster
)

// Direction is the argument type for FocusDirection/SwapDirection: the
// four half-planes a client can be focused or swapped towards.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Action is an opaque handle produced by an action factory
// (spawn/client.kill/layout.set/...) in config.lua and consumed by the
// keyboard dispatcher. Keeping this a closed tagged variant rather than a
// Lua closure is what decouples the scripting surface from the WM's
// internal function signatures.
type Action struct {
	Kind ActionKind
	// Arg carries the verb-specific payload: string/[]string for Spawn,
	// int for ±1 direction args and tag indices, Direction for
	// FocusDirection/SwapDirection, string for ChangeLayout's layout name.
	Arg any
}

// KeyStep is one (modifier mask, keysym) pair in a binding sequence. Mods
// is resolved against the configured modkey only once the whole script has
// run (see builder.finalize), since a script may call set_modkey after
// key.bind.
type KeyStep struct {
	ModTokens []string
	Mods      uint16 // resolved X11 ModMask bits; valid only after finalize
	Keysym    uint32
}

// KeyBinding is a configured binding: one or more steps plus the action it
// fires once the last step is matched.
type KeyBinding struct {
	Steps  []KeyStep
	Action Action
}

func (b KeyBinding) IsChord() bool { return len(b.Steps) > 1 }

// BlockSource is the closed set of status block sources.
type BlockSource int

const (
	BlockRAM BlockSource = iota
	BlockDateTime
	BlockShell
	BlockStatic
	BlockBattery
)

// BlockConfig is one configured status block.
type BlockConfig struct {
	Format   string
	Source   BlockSource
	Interval time.Duration
	Color    Color
	Underline bool

	// Source-specific payloads.
	ShellCommand   string
	DateTimeFormat string
	BatteryFormats [3]string // charging, discharging, full
}

// Config is the fully settled, immutable configuration produced by a
// config.lua run. It is shared read-only by every subsystem and replaced
// atomically only by a process restart.
type Config struct {
	BorderWidth              uint32
	BorderFocused            Color
	BorderUnfocused          Color
	Font                     string
	GapsEnabled              bool
	GapInnerH, GapInnerV     uint32
	GapOuterH, GapOuterV     uint32
	ModKey                   ModKey
	Terminal                 string

	Tags          []string
	LayoutSymbols map[string]string
	Autostart     [][]string

	SchemeNormal   Scheme
	SchemeOccupied Scheme
	SchemeSelected Scheme

	Bindings []KeyBinding
	Blocks   []BlockConfig

	MasterFactor float64
	NumMaster    int
	DefaultLayout string

	// Degraded is set when the script failed to parse/type-check and the
	// built-in defaults were loaded instead.
	Degraded    bool
	DegradedMsg string
}

// Default returns the built-in configuration used when no config.lua is
// present, or when parsing fails (with Degraded set by the caller).
func Default() *Config {
	return &Config{
		BorderWidth:     1,
		BorderFocused:   Color(0x5e81ac),
		BorderUnfocused: Color(0x3b4252),
		Font:            "monospace:size=10",
		GapsEnabled:     false,
		GapInnerH:       6,
		GapInnerV:       6,
		GapOuterH:       6,
		GapOuterV:       6,
		ModKey:          Mod4,
		Terminal:        "xterm",
		Tags:            []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		LayoutSymbols: map[string]string{
			"tiling":  "[]=",
			"normie":  "><>",
			"monocle": "[M]",
			"grid":    "[#]",
			"tabbed":  "[=]",
		},
		SchemeNormal:   Scheme{FG: 0xd8dee9, BG: 0x2e3440},
		SchemeOccupied: Scheme{FG: 0xd8dee9, BG: 0x3b4252},
		SchemeSelected: Scheme{FG: 0x2e3440, BG: 0x88c0d0},
		MasterFactor:   0.5,
		NumMaster:      1,
		DefaultLayout:  "tiling",
	}
}
