package wm

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	log "github.com/sirupsen/logrus"

	"github.com/xsoder/oxwm/internal/config"
)

// barFont wraps the X core font oxwm draws bar text with; see DESIGN.md
// for why this stays on core fonts instead of Xft.
type barFont struct {
	id     xproto.Font
	height uint16
	ascent uint16
}

const defaultBarFont = "fixed"

func openBarFont(c *xgb.Conn, screen *xproto.ScreenInfo, pattern string) *barFont {
	name := fontconfigFamily(pattern)
	fid, err := xproto.NewFontId(c)
	if err != nil {
		log.WithField("component", "bar").Errorf("font id: %v", err)
		return fallbackFont(c)
	}
	if err := xproto.OpenFontChecked(c, fid, uint16(len(name)), name).Check(); err != nil {
		log.WithField("component", "bar").Warnf("missing font %q, falling back: %v", name, err)
		return fallbackFont(c)
	}
	return queryFontMetrics(c, fid)
}

func fallbackFont(c *xgb.Conn) *barFont {
	fid, err := xproto.NewFontId(c)
	if err != nil {
		return &barFont{height: 14, ascent: 11}
	}
	if err := xproto.OpenFontChecked(c, fid, uint16(len(defaultBarFont)), defaultBarFont).Check(); err != nil {
		return &barFont{height: 14, ascent: 11}
	}
	return queryFontMetrics(c, fid)
}

func queryFontMetrics(c *xgb.Conn, fid xproto.Font) *barFont {
	info, err := xproto.QueryFont(c, xproto.Fontable(fid)).Reply()
	if err != nil {
		return &barFont{id: fid, height: 14, ascent: 11}
	}
	return &barFont{
		id:     fid,
		height: uint16(info.FontAscent + info.FontDescent + 4),
		ascent: uint16(info.FontAscent),
	}
}

// fontconfigFamily extracts the family name from a fontconfig pattern like
// "monospace:size=10", since the core font API doesn't speak fontconfig.
func fontconfigFamily(pattern string) string {
	for i, r := range pattern {
		if r == ':' {
			if i == 0 {
				return defaultBarFont
			}
			return pattern[:i]
		}
	}
	if pattern == "" {
		return defaultBarFont
	}
	return pattern
}

func (wm *WM) barHeight() uint16 {
	if wm.font == nil {
		return 18
	}
	return wm.font.height + 4
}

// monitorBar is the bar window + off-screen pixmap a Monitor owns
// exclusively.
type monitorBar struct {
	win    xproto.Window
	pixmap xproto.Pixmap
	gc     xproto.Gcontext
	w, h   uint16

	tagRects   []Rect
	titleRect  Rect
	tabRects   []Rect
	lastStatus string

	blocks []*blockState
}

func (wm *WM) createBar(m *Monitor) {
	win, err := xproto.NewWindowId(wm.conn)
	if err != nil {
		log.WithField("component", "bar").Errorf("new window id: %v", err)
		return
	}
	h := wm.barHeight()
	if err := xproto.CreateWindowChecked(wm.conn, wm.screen.RootDepth, win, wm.root,
		m.Bounds.X, m.Bounds.Y, m.Bounds.W, h, 0,
		xproto.WindowClassInputOutput, wm.screen.RootVisual,
		xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{1, uint32(xproto.EventMaskExposure | xproto.EventMaskButtonPress)}).Check(); err != nil {
		log.WithField("component", "bar").Errorf("create window: %v", err)
		return
	}
	_ = xproto.MapWindowChecked(wm.conn, win).Check()

	gc, err := xproto.NewGcontextId(wm.conn)
	if err == nil {
		_ = xproto.CreateGCChecked(wm.conn, gc, xproto.Drawable(win), 0, nil).Check()
	}

	m.bar = &monitorBar{win: win, gc: gc}
	wm.allocateBarPixmap(m)
}

func (wm *WM) destroyBar(m *Monitor) {
	if m.bar == nil {
		return
	}
	if m.bar.pixmap != 0 {
		_ = xproto.FreePixmapChecked(wm.conn, m.bar.pixmap).Check()
	}
	_ = xproto.DestroyWindowChecked(wm.conn, m.bar.win).Check()
	m.bar = nil
}

// allocateBarPixmap (re)creates the off-screen pixmap only when the bar's
// size actually changed.
func (wm *WM) allocateBarPixmap(m *Monitor) {
	h := wm.barHeight()
	if m.bar.pixmap != 0 && m.bar.w == m.Bounds.W && m.bar.h == h {
		return
	}
	if m.bar.pixmap != 0 {
		_ = xproto.FreePixmapChecked(wm.conn, m.bar.pixmap).Check()
	}
	pm, err := xproto.NewPixmapId(wm.conn)
	if err != nil {
		return
	}
	_ = xproto.CreatePixmapChecked(wm.conn, wm.screen.RootDepth, pm,
		xproto.Drawable(m.bar.win), m.Bounds.W, h).Check()
	m.bar.pixmap = pm
	m.bar.w, m.bar.h = m.Bounds.W, h
}

// redrawBar draws everything onto the off-screen pixmap, then CopyArea's
// it once onto the bar window.
func (wm *WM) redrawBar(m *Monitor) {
	if m.bar == nil {
		return
	}
	wm.allocateBarPixmap(m)
	b := m.bar
	drawable := xproto.Drawable(b.pixmap)

	bg := wm.cfg.SchemeNormal.BG
	wm.fillRect(drawable, b.gc, Rect{0, 0, b.w, b.h}, bg)

	x := int16(0)
	b.tagRects = b.tagRects[:0]
	for i, tag := range wm.cfg.Tags {
		w := wm.textWidth(tag) + 16
		r := Rect{X: x, Y: 0, W: w, H: b.h}
		scheme := wm.tagScheme(m, uint32(1<<i))
		wm.fillRect(drawable, b.gc, r, scheme.BG)
		wm.drawText(drawable, b.gc, r, tag, scheme.FG)
		b.tagRects = append(b.tagRects, r)
		x += int16(w)
	}

	symbol := wm.cfg.LayoutSymbols[m.Layout]
	symW := wm.textWidth(symbol) + 16
	symRect := Rect{X: x, Y: 0, W: symW, H: b.h}
	wm.drawText(drawable, b.gc, symRect, symbol, wm.cfg.SchemeNormal.FG)
	x += int16(symW)

	status := wm.statusString(m)
	statusW := wm.textWidth(status) + 8
	statusRect := Rect{X: int16(b.w) - int16(statusW), Y: 0, W: statusW, H: b.h}
	wm.drawText(drawable, b.gc, statusRect, status, wm.cfg.SchemeNormal.FG)

	titleEnd := int16(b.w) - int16(statusW)
	if m.focused != nil {
		title := m.focused.Title
		b.titleRect = Rect{X: x, Y: 0, W: uint16(satSub16(titleEnd, x)), H: b.h}
		wm.drawText(drawable, b.gc, b.titleRect, title, wm.cfg.SchemeSelected.FG)
	} else {
		b.titleRect = Rect{}
	}

	if wm.degraded {
		badge := "[degraded]"
		bw := wm.textWidth(badge) + 8
		badgeRect := Rect{X: int16(b.w) - int16(statusW) - int16(bw), Y: 0, W: bw, H: b.h}
		wm.fillRect(drawable, b.gc, badgeRect, 0xbf616a)
		wm.drawText(drawable, b.gc, badgeRect, badge, 0xeceff4)
	}

	_ = xproto.CopyAreaChecked(wm.conn, drawable, xproto.Drawable(b.win), b.gc,
		0, 0, 0, 0, b.w, b.h).Check()
}

func satSub16(a, b int16) int16 {
	if a < b {
		return 0
	}
	return a - b
}

func (wm *WM) tagScheme(m *Monitor, tagBit uint32) config.Scheme {
	switch {
	case m.SelTags&tagBit != 0:
		return wm.cfg.SchemeSelected
	case m.occupiedTags()&tagBit != 0:
		return wm.cfg.SchemeOccupied
	default:
		return wm.cfg.SchemeNormal
	}
}

func (wm *WM) fillRect(d xproto.Drawable, gc xproto.Gcontext, r Rect, color config.Color) {
	_ = xproto.ChangeGCChecked(wm.conn, gc, xproto.GcForeground, []uint32{uint32(color)}).Check()
	_ = xproto.PolyFillRectangleChecked(wm.conn, d, gc,
		[]xproto.Rectangle{{X: r.X, Y: r.Y, Width: r.W, Height: r.H}}).Check()
}

func (wm *WM) drawText(d xproto.Drawable, gc xproto.Gcontext, r Rect, s string, color config.Color) {
	if s == "" {
		return
	}
	_ = xproto.ChangeGCChecked(wm.conn, gc, xproto.GcForeground, []uint32{uint32(color)}).Check()
	if wm.font != nil {
		_ = xproto.ChangeGCChecked(wm.conn, gc, xproto.GcFont, []uint32{uint32(wm.font.id)}).Check()
	}
	y := r.Y + int16(wm.barHeight()/2) + int16(wm.textAscent())/2
	_ = xproto.ImageText8Checked(wm.conn, byte(len(s)), d, gc, r.X+4, y, s).Check()
}

func (wm *WM) textAscent() int16 {
	if wm.font == nil {
		return 10
	}
	return int16(wm.font.ascent)
}

// textWidth estimates rendered width without a round trip, since bar
// layout only needs it to size cells, not to pixel-perfectly kern text.
func (wm *WM) textWidth(s string) uint16 {
	if wm.font == nil {
		return uint16(len(s) * 7)
	}
	return uint16(len(s)) * (wm.font.height / 2)
}

// barClickAt dispatches a ButtonPress inside a bar window to a tag cell or
// the tabbed layout's strip.
func (wm *WM) barClickAt(m *Monitor, x, y int16, button byte) {
	if m.bar == nil {
		return
	}
	for i, r := range m.bar.tagRects {
		if r.Contains(x, y) {
			tag := uint32(1) << i
			if button == 3 {
				m.SelTags ^= tag
			} else {
				m.PrevTags = m.SelTags
				m.SelTags = tag
			}
			wm.applyLayout(m)
			return
		}
	}
	if m.Layout == "tabbed" {
		visible := m.visibleClients()
		stripY := int16(0)
		if y >= stripY && y < TabBarHeight {
			wm.clickTab(m, visible, x)
		}
	}
}

func (wm *WM) clickTab(m *Monitor, visible []*Client, x int16) {
	cellW := m.WorkArea.W
	if len(visible) > 0 {
		cellW = m.WorkArea.W / uint16(len(visible))
	}
	idx := int(x) / int(cellW)
	if idx >= 0 && idx < len(visible) {
		wm.focus(visible[idx])
		wm.applyLayout(m)
	}
}
