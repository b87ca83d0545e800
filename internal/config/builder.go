package config

import "time"

// builder accumulates the mutable state a config.lua run produces before
// it is type-checked and frozen into a Config. Every oxwm.* host function
// registered in api*.go closes over a *builder; Go's single-threaded
// gopher-lua VM needs no reference counting, so a bare pointer suffices.
type builder struct {
	cfg *Config

	// sawModKey records whether set_modkey was called; errs collects the
	// errors setters report, which finalize returns together.
	sawModKey bool
	errs      []error
}

func newBuilder() *builder {
	return &builder{cfg: Default()}
}

func (b *builder) fail(err error) {
	b.errs = append(b.errs, err)
}

func (b *builder) setTerminal(s string) { b.cfg.Terminal = s }

func (b *builder) setModKey(m ModKey) {
	b.cfg.ModKey = m
	b.sawModKey = true
}

func (b *builder) setTags(tags []string) {
	if len(tags) == 0 || len(tags) > 9 {
		b.fail(&ConfigError{Msg: "set_tags requires between 1 and 9 tags"})
		return
	}
	b.cfg.Tags = tags
}

func (b *builder) setLayoutSymbol(name, symbol string) {
	if b.cfg.LayoutSymbols == nil {
		b.cfg.LayoutSymbols = map[string]string{}
	}
	b.cfg.LayoutSymbols[name] = symbol
}

func (b *builder) setBorderWidth(w uint32)        { b.cfg.BorderWidth = w }
func (b *builder) setBorderFocused(c Color)       { b.cfg.BorderFocused = c }
func (b *builder) setBorderUnfocused(c Color)     { b.cfg.BorderUnfocused = c }

func (b *builder) setGapsEnabled(v bool)          { b.cfg.GapsEnabled = v }
func (b *builder) setGapInner(h, v uint32)        { b.cfg.GapInnerH, b.cfg.GapInnerV = h, v }
func (b *builder) setGapOuter(h, v uint32)        { b.cfg.GapOuterH, b.cfg.GapOuterV = h, v }

func (b *builder) setFont(f string)               { b.cfg.Font = f }
func (b *builder) setSchemeNormal(s Scheme)       { b.cfg.SchemeNormal = s }
func (b *builder) setSchemeOccupied(s Scheme)     { b.cfg.SchemeOccupied = s }
func (b *builder) setSchemeSelected(s Scheme)     { b.cfg.SchemeSelected = s }

func (b *builder) addBlock(bc BlockConfig) {
	if bc.Interval == 0 {
		bc.Interval = 5 * time.Second
	}
	b.cfg.Blocks = append(b.cfg.Blocks, bc)
}

func (b *builder) setBlocks(blocks []BlockConfig) { b.cfg.Blocks = blocks }

func (b *builder) addBinding(kb KeyBinding) {
	b.cfg.Bindings = append(b.cfg.Bindings, kb)
}

func (b *builder) addAutostart(cmd []string) {
	b.cfg.Autostart = append(b.cfg.Autostart, cmd)
}

// X11 KeyButMask bits (X11/X.h), hardcoded rather than imported from
// xgb/xproto so internal/config stays decoupled from the X11 wire layer.
const (
	maskShift uint16 = 1 << 0
	maskLock  uint16 = 1 << 1
	maskCtrl  uint16 = 1 << 2
	maskMod1  uint16 = 1 << 3
	maskMod2  uint16 = 1 << 4
	maskMod3  uint16 = 1 << 5
	maskMod4  uint16 = 1 << 6
	maskMod5  uint16 = 1 << 7
)

func modMaskBit(mk ModKey) uint16 {
	switch mk {
	case Mod1:
		return maskMod1
	case Mod2:
		return maskMod2
	case Mod3:
		return maskMod3
	case Mod4:
		return maskMod4
	case Mod5:
		return maskMod5
	}
	return maskMod4
}

func (b *builder) resolveModToken(tok string) (uint16, bool) {
	switch tok {
	case "Mod":
		return modMaskBit(b.cfg.ModKey), true
	case "Shift":
		return maskShift, true
	case "Lock":
		return maskLock, true
	case "Control", "Ctrl":
		return maskCtrl, true
	case "Mod1":
		return maskMod1, true
	case "Mod2":
		return maskMod2, true
	case "Mod3":
		return maskMod3, true
	case "Mod4":
		return maskMod4, true
	case "Mod5":
		return maskMod5, true
	}
	return 0, false
}

// finalize resolves every KeyStep's "Mod" placeholder against the settled
// ModKey and returns the immutable Config, or the accumulated errors.
func (b *builder) finalize() (*Config, error) {
	for bi := range b.cfg.Bindings {
		for si := range b.cfg.Bindings[bi].Steps {
			step := &b.cfg.Bindings[bi].Steps[si]
			var mask uint16
			for _, tok := range step.ModTokens {
				bit, ok := b.resolveModToken(tok)
				if !ok {
					b.fail(&ConfigError{Msg: "unknown modifier token: " + tok})
					continue
				}
				mask |= bit
			}
			step.Mods = mask
		}
	}
	if len(b.errs) > 0 {
		return nil, &multiError{errs: b.errs}
	}
	return b.cfg, nil
}

type multiError struct{ errs []error }

func (m *multiError) Error() string {
	s := ""
	for i, e := range m.errs {
		if i > 0 {
			s += "; "
		}
		s += e.Error()
	}
	return s
}

// ConfigError reports a config.lua parse/type error with enough context to
// print a location and message.
type ConfigError struct {
	Line int
	Msg  string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return "config.lua:" + itoa(e.Line) + ": " + e.Msg
	}
	return "config.lua: " + e.Msg
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
