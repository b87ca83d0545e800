package wm

import "github.com/BurntSushi/xgb/xproto"

// layoutFunc is the single operation every named layout implements: given
// a monitor's work area and its visible, non-floating clients in list
// order, compute each client's geometry. Floating and fullscreen clients
// are never passed in; arrange is only consulted for the tiled subset.
type layoutFunc func(work Rect, clients []*Client, gaps GapConfig, mfact float64, nmaster int) map[*Client]Rect

var layouts = map[string]layoutFunc{
	"tiling":  arrangeTiling,
	"normie":  arrangeNormie,
	"monocle": arrangeMonocle,
	"grid":    arrangeGrid,
	"tabbed":  arrangeTabbed,
}

// applyLayout recomputes every visible client's geometry on m and issues
// ConfigureWindow only where the geometry actually changed, so applying the
// current layout twice in a row is a no-op on the wire.
func (wm *WM) applyLayout(m *Monitor) {
	visible := m.visibleClients()

	var tiled []*Client
	for _, c := range visible {
		if c.Floating || c.Fullscreen {
			continue
		}
		tiled = append(tiled, c)
	}

	gaps := wm.gapConfig()
	fn := layouts[m.Layout]
	if fn == nil {
		fn = arrangeTiling
	}
	geoms := fn(m.WorkArea, tiled, gaps, m.MFact, m.NMaster)

	for _, c := range visible {
		switch {
		case c.Fullscreen:
			wm.setClientGeometry(c, m.Bounds, 0)
		case c.Floating:
			wm.setClientGeometry(c, c.Rect(), c.BorderWidth)
		default:
			if r, ok := geoms[c]; ok {
				bw := wm.cfg.BorderWidth
				r.W = subBorder(r.W, bw)
				r.H = subBorder(r.H, bw)
				wm.setClientGeometry(c, r, bw)
			}
		}
	}

	wm.applyStackingAndVisibility(m, visible)
	wm.redrawBar(m)
}

// subBorder shrinks a layout-computed column/row extent by two border
// widths so adjacent tiled windows abut rather than overlap, saturating
// at 0 instead of wrapping when the border is wider than the extent.
func subBorder(extent uint16, borderWidth uint32) uint16 {
	shrink := uint32(2) * borderWidth
	if shrink >= uint32(extent) {
		return 0
	}
	return extent - uint16(shrink)
}

func (wm *WM) gapConfig() GapConfig {
	return GapConfig{
		Enabled: wm.cfg.GapsEnabled,
		InnerH:  uint16(wm.cfg.GapInnerH), InnerV: uint16(wm.cfg.GapInnerV),
		OuterH: uint16(wm.cfg.GapOuterH), OuterV: uint16(wm.cfg.GapOuterV),
	}
}

// setClientGeometry issues ConfigureWindow only when r/border differ from
// the client's last-sent geometry.
func (wm *WM) setClientGeometry(c *Client, r Rect, border uint32) {
	c.setRect(r)
	if c.hasSent && c.lastSent.Eq(r) && c.BorderWidth == border {
		return
	}
	c.lastSent = r
	c.hasSent = true
	c.BorderWidth = border

	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight | xproto.ConfigWindowBorderWidth)
	values := []uint32{
		uint32(uint16(r.X)), uint32(uint16(r.Y)),
		uint32(r.W), uint32(r.H), border,
	}
	_ = xproto.ConfigureWindowChecked(wm.conn, c.Win, mask, values).Check()
	wm.sendSyntheticConfigure(c)
}

// sendSyntheticConfigure tells a tiled/resized client its real geometry via
// a synthetic ConfigureNotify, so clients that never sent a
// ConfigureRequest (e.g. on layout change) still learn their border width,
// per ICCCM §4.1.5.
func (wm *WM) sendSyntheticConfigure(c *Client) {
	ev := xproto.ConfigureNotifyEvent{
		Event:            c.Win,
		Window:           c.Win,
		X:                c.X,
		Y:                c.Y,
		Width:            c.W,
		Height:           c.H,
		BorderWidth:      uint16(c.BorderWidth),
		OverrideRedirect: false,
	}
	_ = xproto.SendEventChecked(wm.conn, false, c.Win, xproto.EventMaskStructureNotify,
		string(ev.Bytes())).Check()
}

// applyStackingAndVisibility handles the two layouts (monocle, tabbed) that
// need more than geometry: only the focused client is raised/mapped.
func (wm *WM) applyStackingAndVisibility(m *Monitor, visible []*Client) {
	if m.Layout != "monocle" && m.Layout != "tabbed" {
		for _, c := range visible {
			_ = xproto.MapWindowChecked(wm.conn, c.Win).Check()
		}
		return
	}
	for _, c := range visible {
		if c == m.focused || c.Floating {
			_ = xproto.MapWindowChecked(wm.conn, c.Win).Check()
			_ = xproto.ConfigureWindowChecked(wm.conn, c.Win, xproto.ConfigWindowStackMode,
				[]uint32{xproto.StackModeAbove}).Check()
		} else if m.Layout == "tabbed" {
			_ = xproto.UnmapWindowChecked(wm.conn, c.Win).Check()
		}
	}
}
