package config

// keysymByName is the key-name vocabulary a config.lua script can pass to
// key.bind/key.chord. Values are the standard X11 keysyms from
// X11/keysymdef.h.
var keysymByName = map[string]uint32{
	"Return":    0xff0d,
	"Escape":    0xff1b,
	"Space":     0x0020,
	"Tab":       0xff09,
	"Backspace": 0xff08,
	"Delete":    0xffff,

	"F1": 0xffbe, "F2": 0xffbf, "F3": 0xffc0, "F4": 0xffc1,
	"F5": 0xffc2, "F6": 0xffc3, "F7": 0xffc4, "F8": 0xffc5,
	"F9": 0xffc6, "F10": 0xffc7, "F11": 0xffc8, "F12": 0xffc9,

	"Left": 0xff51, "Up": 0xff52, "Right": 0xff53, "Down": 0xff54,
	"Home": 0xff50, "End": 0xff57, "PageUp": 0xff55, "PageDown": 0xff56,
	"Insert": 0xff63,

	"Minus": 0x002d, "Equal": 0x003d,
	"BracketLeft": 0x005b, "BracketRight": 0x005d,
	"Semicolon": 0x003b, "Apostrophe": 0x0027, "Grave": 0x0060,
	"Backslash": 0x005c, "Comma": 0x002c, "Period": 0x002e, "Slash": 0x002f,

	"AudioRaiseVolume": 0x1008ff13,
	"AudioLowerVolume": 0x1008ff11,
	"AudioMute":        0x1008ff12,
	"MonBrightnessUp":   0x1008ff02,
	"MonBrightnessDown": 0x1008ff03,
}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		keysymByName[string(c-'a'+'A')] = uint32(c) // keysym for letters is lowercase ASCII
	}
	for d := '0'; d <= '9'; d++ {
		keysymByName["Key"+string(d)] = uint32(d)
	}
}

// KeysymForName resolves a config.lua key name (e.g. "Return", "A", "Key1")
// to its X11 keysym. ok is false for an unrecognized name, which the config
// runtime reports as a load-time error.
func KeysymForName(name string) (uint32, bool) {
	if v, ok := keysymByName[name]; ok {
		return v, true
	}
	// Single printable ASCII characters (e.g. "-", "+", "1") bind directly.
	if len([]rune(name)) == 1 {
		r := []rune(name)[0]
		if r >= 0x20 && r < 0x7f {
			return uint32(r), true
		}
	}
	return 0, false
}
