package wm

import (
	"encoding/binary"

	"github.com/BurntSushi/xgb/xproto"
)

// readWMName returns _NET_WM_NAME when present, else WM_NAME, matching
// ICCCM/EWMH precedence.
func (wm *WM) readWMName(win xproto.Window) string {
	if s, ok := wm.getTextProperty(win, wm.atoms.netWMName, wm.atoms.utf8String); ok {
		return s
	}
	if s, ok := wm.getTextProperty(win, wm.atoms.wmName, xproto.AtomString); ok {
		return s
	}
	return ""
}

func (wm *WM) getTextProperty(win xproto.Window, prop, typ xproto.Atom) (string, bool) {
	r, err := xproto.GetProperty(wm.conn, false, win, prop, typ, 0, 1024).Reply()
	if err != nil || r == nil || r.ValueLen == 0 {
		return "", false
	}
	return string(r.Value), true
}

// readWMClass splits WM_CLASS's NUL-separated (instance, class) pair.
func (wm *WM) readWMClass(win xproto.Window) (class, instance string) {
	r, err := xproto.GetProperty(wm.conn, false, win, wm.atoms.wmClass,
		xproto.AtomString, 0, 1024).Reply()
	if err != nil || r == nil || r.ValueLen == 0 {
		return "", ""
	}
	parts := splitNul(r.Value)
	if len(parts) > 0 {
		instance = parts[0]
	}
	if len(parts) > 1 {
		class = parts[1]
	}
	return class, instance
}

func splitNul(b []byte) []string {
	var out []string
	start := 0
	for i, c := range b {
		if c == 0 {
			out = append(out, string(b[start:i]))
			start = i + 1
		}
	}
	if start < len(b) {
		out = append(out, string(b[start:]))
	}
	return out
}

// readProtocols reads WM_PROTOCOLS and reports whether the client declares
// support for WM_DELETE_WINDOW and WM_TAKE_FOCUS.
func (wm *WM) readProtocols(win xproto.Window) (delete, takeFocus bool) {
	r, err := xproto.GetProperty(wm.conn, false, win, wm.atoms.wmProtocols,
		xproto.AtomAtom, 0, 64).Reply()
	if err != nil || r == nil {
		return false, false
	}
	for v := r.Value; len(v) >= 4; v = v[4:] {
		switch xproto.Atom(binary.LittleEndian.Uint32(v)) {
		case wm.atoms.wmDeleteWindow:
			delete = true
		case wm.atoms.wmTakeFocus:
			takeFocus = true
		}
	}
	return delete, takeFocus
}

// readTransientFor reads WM_TRANSIENT_FOR, returning the parent window id.
func (wm *WM) readTransientFor(win xproto.Window) (xproto.Window, bool) {
	r, err := xproto.GetProperty(wm.conn, false, win, wm.atoms.wmTransientFor,
		xproto.AtomWindow, 0, 1).Reply()
	if err != nil || r == nil || r.ValueLen == 0 || len(r.Value) < 4 {
		return 0, false
	}
	return xproto.Window(binary.LittleEndian.Uint32(r.Value)), true
}

// readWindowTypeDialog reports whether _NET_WM_WINDOW_TYPE names
// _NET_WM_WINDOW_TYPE_DIALOG, which gets a window floated on manage.
func (wm *WM) readWindowTypeDialog(win xproto.Window) bool {
	r, err := xproto.GetProperty(wm.conn, false, win, wm.atoms.netWMWindowType,
		xproto.AtomAtom, 0, 32).Reply()
	if err != nil || r == nil {
		return false
	}
	for v := r.Value; len(v) >= 4; v = v[4:] {
		if xproto.Atom(binary.LittleEndian.Uint32(v)) == wm.atoms.netWMWindowTypeDialog {
			return true
		}
	}
	return false
}

// readSizeHints reads WM_NORMAL_HINTS, per ICCCM §4.1.2.3. The wire layout
// is the classic XSizeHints struct; oxwm only needs the min/max/base/inc/
// aspect fields.
func (wm *WM) readSizeHints(win xproto.Window) SizeHints {
	var sh SizeHints
	r, err := xproto.GetProperty(wm.conn, false, win, wm.atoms.wmNormalHints,
		xproto.AtomAny, 0, 18).Reply()
	if err != nil || r == nil || len(r.Value) < 4*18 {
		return sh
	}
	u32 := func(i int) uint32 { return binary.LittleEndian.Uint32(r.Value[i*4:]) }
	flags := u32(0)
	const (
		pMinSize   = 1 << 4
		pMaxSize   = 1 << 5
		pResizeInc = 1 << 6
		pAspect    = 1 << 7
		pBaseSize  = 1 << 8
	)
	if flags&pMinSize != 0 {
		sh.HasMin = true
		sh.MinW, sh.MinH = u32(5), u32(6)
	}
	if flags&pMaxSize != 0 {
		sh.HasMax = true
		sh.MaxW, sh.MaxH = u32(7), u32(8)
	}
	if flags&pResizeInc != 0 {
		sh.HasInc = true
		sh.IncW, sh.IncH = u32(9), u32(10)
	}
	if flags&pAspect != 0 {
		sh.HasAspect = true
		minN, minD := u32(11), u32(12)
		maxN, maxD := u32(13), u32(14)
		if minD != 0 {
			sh.AspectMin = float64(minN) / float64(minD)
		}
		if maxD != 0 {
			sh.AspectMax = float64(maxN) / float64(maxD)
		}
	}
	if flags&pBaseSize != 0 {
		sh.HasBase = true
		sh.BaseW, sh.BaseH = u32(15), u32(16)
	}
	return sh
}
