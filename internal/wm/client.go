package wm

import (
	"github.com/BurntSushi/xgb/xproto"
	log "github.com/sirupsen/logrus"

	"github.com/xsoder/oxwm/internal/config"
)

// SizeHints is a window's WM_NORMAL_HINTS: the size/aspect constraints it
// asked for, used to clamp resizes to a grid the client can actually render.
type SizeHints struct {
	HasMin, HasMax, HasBase, HasInc, HasAspect bool
	MinW, MinH                                 uint32
	MaxW, MaxH                                 uint32
	BaseW, BaseH                               uint32
	IncW, IncH                                 uint32
	AspectMin, AspectMax                       float64
}

// Client is a managed top-level window.
type Client struct {
	Win xproto.Window

	X, Y int16
	W, H uint16

	OldX, OldY int16
	OldW, OldH uint16

	BorderWidth    uint32
	OldBorderWidth uint32

	TagMask uint32
	Mon     int

	Floating    bool
	Fullscreen  bool
	Urgent      bool
	Transient   bool
	NeverFocus  bool

	Hints SizeHints

	Title, Class, Instance string

	SupportsDelete     bool
	SupportsTakeFocus  bool

	lastSent Rect // cached geometry, for idempotent layout re-application
	hasSent  bool
}

// Rect returns the client's current geometry (border excluded, matching X
// requests, which size the inner window).
func (c *Client) Rect() Rect { return Rect{X: c.X, Y: c.Y, W: c.W, H: c.H} }

func (c *Client) setRect(r Rect) {
	c.X, c.Y, c.W, c.H = r.X, r.Y, r.W, r.H
}

// clampToHints rounds r's width/height down to the client's resize
// increment grid (relative to its base size) and clamps them to its
// min/max, leaving position untouched. Used for floating clients, where a
// resize is honored rather than computed by a layout.
func clampToHints(r Rect, h SizeHints) Rect {
	w, ht := uint32(r.W), uint32(r.H)

	if h.HasInc && h.IncW > 0 {
		base := h.BaseW
		if !h.HasBase {
			base = h.MinW
		}
		if w > base {
			w = base + ((w-base)/h.IncW)*h.IncW
		}
	}
	if h.HasInc && h.IncH > 0 {
		base := h.BaseH
		if !h.HasBase {
			base = h.MinH
		}
		if ht > base {
			ht = base + ((ht-base)/h.IncH)*h.IncH
		}
	}
	if h.HasMin {
		if w < h.MinW {
			w = h.MinW
		}
		if ht < h.MinH {
			ht = h.MinH
		}
	}
	if h.HasMax {
		if h.MaxW > 0 && w > h.MaxW {
			w = h.MaxW
		}
		if h.MaxH > 0 && ht > h.MaxH {
			ht = h.MaxH
		}
	}
	if w == 0 {
		w = uint32(r.W)
	}
	if ht == 0 {
		ht = uint32(r.H)
	}

	out := r
	out.W, out.H = uint16(w), uint16(ht)
	return out
}

// clientRule matches a newly managed window by class/instance and adjusts
// it (tag, monitor, floating, ...) before it is placed. No rules ship by
// default; this is the hook a rules table would populate.
type clientRule struct {
	class, instance string
	apply           func(c *Client)
}

var clientRules []clientRule

// applyRules runs every rule whose class/instance matches c. A no-op today
// since clientRules is empty, but manage calls it unconditionally so a
// populated table takes effect without further wiring.
func applyRules(c *Client) {
	for _, r := range clientRules {
		if r.class != "" && r.class != c.Class {
			continue
		}
		if r.instance != "" && r.instance != c.Instance {
			continue
		}
		r.apply(c)
	}
}

// manage adopts a top-level window: it snapshots its geometry and hints,
// picks an initial tag/monitor, wires up the X bookkeeping (border, event
// mask, WM_STATE), places it in the layout, and focuses it.
func (wm *WM) manage(win xproto.Window) {
	for _, m := range wm.monitors {
		for _, c := range m.Clients {
			if c.Win == win {
				return
			}
		}
	}

	ga, err := xproto.GetGeometry(wm.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		log.WithField("window", win).Warnf("manage: get geometry: %v", err)
		return
	}

	c := &Client{
		Win:         win,
		X:           ga.X,
		Y:           ga.Y,
		W:           ga.Width,
		H:           ga.Height,
		BorderWidth: uint32(wm.cfg.BorderWidth),
		TagMask:     0,
	}

	mon := wm.selectedMonitor()
	c.Mon = mon.Index
	c.TagMask = mon.SelTags

	c.Hints = wm.readSizeHints(win)
	c.Title = wm.readWMName(win)
	c.Class, c.Instance = wm.readWMClass(win)
	applyRules(c)
	c.SupportsDelete, c.SupportsTakeFocus = wm.readProtocols(win)

	if parentWin, ok := wm.readTransientFor(win); ok {
		c.Transient = true
		c.Floating = true
		if parent := wm.findClient(parentWin); parent != nil {
			c.TagMask = parent.TagMask
			c.Mon = parent.Mon
			mon = wm.monitors[c.Mon]
		}
	}
	if wm.readWindowTypeDialog(win) {
		c.Floating = true
	}

	const selMask = xproto.EventMaskEnterWindow |
		xproto.EventMaskFocusChange |
		xproto.EventMaskPropertyChange |
		xproto.EventMaskStructureNotify
	_ = xproto.ChangeWindowAttributesChecked(wm.conn, win, xproto.CwEventMask,
		[]uint32{uint32(selMask)}).Check()

	_ = xproto.ConfigureWindowChecked(wm.conn, win, xproto.ConfigWindowBorderWidth,
		[]uint32{c.BorderWidth}).Check()
	wm.paintBorder(c, wm.cfg.BorderUnfocused)

	mon.Clients = append(mon.Clients, c)
	mon.FocusStack = append([]*Client{c}, mon.FocusStack...)

	wm.applyLayout(mon)
	_ = xproto.MapWindowChecked(wm.conn, win).Check()

	wm.setWMState(win, wmStateNormal)
	wm.updateClientList()

	wm.focus(c)
}

// unmanage drops a window from its monitor's client and focus-stack lists
// and restores focus to whatever is now on top. destroyed reports whether
// the window is already gone, in which case there is nothing left to
// reconfigure on it.
func (wm *WM) unmanage(win xproto.Window, destroyed bool) {
	mon, c := wm.findClientMon(win)
	if c == nil {
		return
	}

	mon.Clients = removeClient(mon.Clients, c)
	mon.FocusStack = removeClient(mon.FocusStack, c)

	if !destroyed {
		_ = xproto.UngrabButtonChecked(wm.conn, xproto.ButtonIndexAny, win, xproto.ModMaskAny).Check()
		_ = xproto.ConfigureWindowChecked(wm.conn, win, xproto.ConfigWindowBorderWidth,
			[]uint32{0}).Check()
	}

	wm.updateClientList()
	wm.applyLayout(mon)

	if next := mon.topOfFocusStack(mon.SelTags); next != nil {
		wm.focus(next)
	} else {
		wm.focus(nil)
	}
}

func removeClient(list []*Client, target *Client) []*Client {
	out := list[:0:0]
	for _, c := range list {
		if c != target {
			out = append(out, c)
		}
	}
	return out
}

// focus is the sole mutator of X input focus on managed windows: it paints
// borders, clears urgency, moves c to the top of its monitor's focus
// stack, and sends WM_TAKE_FOCUS or sets input focus directly depending on
// what the client declared support for. c == nil clears focus entirely.
func (wm *WM) focus(c *Client) {
	mon := wm.selectedMonitor()
	if c != nil {
		mon = wm.monitors[c.Mon]
	}

	if old := mon.focused; old != nil && old != c {
		wm.paintBorder(old, wm.cfg.BorderUnfocused)
	}

	mon.focused = c
	if c == nil {
		_ = xproto.SetInputFocusChecked(wm.conn, xproto.InputFocusPointerRoot,
			wm.root, xproto.TimeCurrentTime).Check()
		wm.clearActiveWindow()
		return
	}

	c.Urgent = false
	wm.paintBorder(c, wm.cfg.BorderFocused)

	wm.promoteInFocusStack(mon, c)

	if c.SupportsTakeFocus {
		wm.sendClientMessage(c.Win, wm.atoms.wmTakeFocus)
	} else if !c.NeverFocus {
		_ = xproto.SetInputFocusChecked(wm.conn, xproto.InputFocusPointerRoot,
			c.Win, xproto.TimeCurrentTime).Check()
	}
	wm.setActiveWindow(c.Win)
}

func (wm *WM) promoteInFocusStack(mon *Monitor, c *Client) {
	stack := removeClient(mon.FocusStack, c)
	mon.FocusStack = append([]*Client{c}, stack...)
}

func (wm *WM) findClient(win xproto.Window) *Client {
	_, c := wm.findClientMon(win)
	return c
}

func (wm *WM) findClientMon(win xproto.Window) (*Monitor, *Client) {
	for _, m := range wm.monitors {
		for _, c := range m.Clients {
			if c.Win == win {
				return m, c
			}
		}
	}
	return nil, nil
}

func (wm *WM) paintBorder(c *Client, color config.Color) {
	_ = xproto.ChangeWindowAttributesChecked(wm.conn, c.Win, xproto.CwBorderPixel,
		[]uint32{uint32(color)}).Check()
}
