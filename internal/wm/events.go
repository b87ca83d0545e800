package wm

import (
	"encoding/binary"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	log "github.com/sirupsen/logrus"

	"github.com/xsoder/oxwm/internal/config"
)

type xEventOrError struct {
	event xgb.Event
	err   xgb.Error
}

// drag tracks an in-progress Mod+drag move/resize of a floating client.
type drag struct {
	active   bool
	resize   bool
	client   *Client
	startX   int16
	startY   int16
	origRect Rect
}

// Run is oxwm's single logical task: drain X events, run due bar blocks,
// and repaint dirty bars, once per iteration. It returns when a quit or
// restart action fires.
func (wm *WM) Run() {
	wm.selectRandrNotify()

	eventCh := make(chan xEventOrError)
	go func() {
		for {
			e, err := wm.conn.WaitForEvent()
			if e == nil && err == nil {
				close(eventCh)
				return
			}
			eventCh <- xEventOrError{e, err}
		}
	}()

	var drg drag

	for !wm.quit {
		timeout := wm.nextIterationTimeout()

		select {
		case ee, ok := <-eventCh:
			if !ok {
				log.WithField("component", "x11").Fatal("X connection closed")
				return
			}
			if ee.err != nil {
				log.WithField("component", "x11").Warnf("protocol error: %v", ee.err)
				continue
			}
			wm.dispatch(ee.event, &drg)
		case <-time.After(timeout):
		}

		wm.checkChordTimeout()
		changed := wm.runDueBlocks()
		for m := range changed {
			wm.redrawBar(m)
		}
	}
}

// nextIterationTimeout is the shorter of the nearest bar-block deadline and
// the chord timeout deadline.
func (wm *WM) nextIterationTimeout() time.Duration {
	const idle = 1 * time.Second
	best := idle

	if d := wm.nextBlockDeadline(); !d.IsZero() {
		if till := time.Until(d); till < best {
			best = till
		}
	}
	if wm.chord.active {
		if till := time.Until(wm.chord.deadline); till < best {
			best = till
		}
	}
	if best < 0 {
		best = 0
	}
	return best
}

func (wm *WM) dispatch(ev xgb.Event, drg *drag) {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		wm.manage(e.Window)
	case xproto.UnmapNotifyEvent:
		wm.unmanage(e.Window, false)
	case xproto.DestroyNotifyEvent:
		wm.unmanage(e.Window, true)
	case xproto.ConfigureRequestEvent:
		wm.handleConfigureRequest(e)
	case xproto.ConfigureNotifyEvent:
		// No-op: oxwm is the one issuing ConfigureWindow for managed
		// clients; ConfigureNotify on the root signals a resolution
		// change, which RRScreenChangeNotify already handles.
	case xproto.PropertyNotifyEvent:
		wm.handlePropertyNotify(e)
	case xproto.EnterNotifyEvent:
		wm.handleEnterNotify(e)
	case xproto.ClientMessageEvent:
		wm.handleClientMessage(e)
	case xproto.KeyPressEvent:
		wm.handleKeyPress(e)
	case xproto.ButtonPressEvent:
		wm.handleButtonPress(e, drg)
	case xproto.MotionNotifyEvent:
		wm.handleMotionNotify(e, drg)
	case xproto.ButtonReleaseEvent:
		drg.active = false
	case xproto.ExposeEvent:
		wm.handleExpose(e)
	case xproto.MappingNotifyEvent:
		wm.regrabKeys()
	case randr.ScreenChangeNotifyEvent:
		wm.onScreenChange()
	default:
	}
}

// handleConfigureRequest honors a resize/move request from a floating
// client (clamped to its size hints and to the monitor); a tiled client
// instead gets a synthetic ConfigureNotify reasserting its actual
// geometry, since the layout owns its placement.
func (wm *WM) handleConfigureRequest(e xproto.ConfigureRequestEvent) {
	mon, c := wm.findClientMon(e.Window)
	if c == nil {
		mask, values := configureRequestPassThrough(e)
		_ = xproto.ConfigureWindowChecked(wm.conn, e.Window, mask, values).Check()
		return
	}

	if c.Fullscreen {
		wm.sendSyntheticConfigure(c)
		return
	}
	if !c.Floating {
		wm.sendSyntheticConfigure(c)
		return
	}

	r := c.Rect()
	if e.ValueMask&xproto.ConfigWindowX != 0 {
		r.X = e.X
	}
	if e.ValueMask&xproto.ConfigWindowY != 0 {
		r.Y = e.Y
	}
	if e.ValueMask&xproto.ConfigWindowWidth != 0 {
		r.W = e.Width
	}
	if e.ValueMask&xproto.ConfigWindowHeight != 0 {
		r.H = e.Height
	}
	r = clampToHints(r, c.Hints)
	r = clampToMonitor(r, mon.Bounds)
	wm.setClientGeometry(c, r, c.BorderWidth)
}

func clampToMonitor(r, bounds Rect) Rect {
	if r.X < bounds.X {
		r.X = bounds.X
	}
	if r.Y < bounds.Y {
		r.Y = bounds.Y
	}
	if r.W > bounds.W {
		r.W = bounds.W
	}
	if r.H > bounds.H {
		r.H = bounds.H
	}
	return r
}

func configureRequestPassThrough(e xproto.ConfigureRequestEvent) (uint16, []uint32) {
	var mask uint16
	var values []uint32
	if e.ValueMask&xproto.ConfigWindowX != 0 {
		mask |= xproto.ConfigWindowX
		values = append(values, uint32(e.X))
	}
	if e.ValueMask&xproto.ConfigWindowY != 0 {
		mask |= xproto.ConfigWindowY
		values = append(values, uint32(e.Y))
	}
	if e.ValueMask&xproto.ConfigWindowWidth != 0 {
		mask |= xproto.ConfigWindowWidth
		values = append(values, uint32(e.Width))
	}
	if e.ValueMask&xproto.ConfigWindowHeight != 0 {
		mask |= xproto.ConfigWindowHeight
		values = append(values, uint32(e.Height))
	}
	if e.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
		mask |= xproto.ConfigWindowBorderWidth
		values = append(values, uint32(e.BorderWidth))
	}
	if e.ValueMask&xproto.ConfigWindowSibling != 0 {
		mask |= xproto.ConfigWindowSibling
		values = append(values, uint32(e.Sibling))
	}
	if e.ValueMask&xproto.ConfigWindowStackMode != 0 {
		mask |= xproto.ConfigWindowStackMode
		values = append(values, uint32(e.StackMode))
	}
	return mask, values
}

// handlePropertyNotify reacts to changes on the properties oxwm tracks:
// WM_NAME/_NET_WM_NAME, WM_NORMAL_HINTS, WM_HINTS, WM_TRANSIENT_FOR,
// _NET_WM_WINDOW_TYPE.
func (wm *WM) handlePropertyNotify(e xproto.PropertyNotifyEvent) {
	mon, c := wm.findClientMon(e.Window)
	if c == nil {
		return
	}
	switch e.Atom {
	case wm.atoms.wmName, wm.atoms.netWMName:
		c.Title = wm.readWMName(e.Window)
		wm.redrawBar(mon)
	case wm.atoms.wmNormalHints:
		c.Hints = wm.readSizeHints(e.Window)
	case wm.atoms.wmHints:
		wm.readUrgency(e.Window, c)
	case wm.atoms.wmTransientFor:
		if parentWin, ok := wm.readTransientFor(e.Window); ok {
			c.Transient = true
			c.Floating = true
			if parent := wm.findClient(parentWin); parent != nil {
				c.TagMask = parent.TagMask
			}
			wm.applyLayout(mon)
		}
	case wm.atoms.netWMWindowType:
		if wm.readWindowTypeDialog(e.Window) {
			c.Floating = true
			wm.applyLayout(mon)
		}
	}
}

// readUrgency reads the WM_HINTS urgency bit (ICCCM §4.1.2.4) and repaints
// the border if it changed.
func (wm *WM) readUrgency(win xproto.Window, c *Client) {
	r, err := xproto.GetProperty(wm.conn, false, win, wm.atoms.wmHints,
		xproto.AtomAny, 0, 9).Reply()
	if err != nil || r == nil || len(r.Value) < 4 {
		return
	}
	const urgencyHint = 1 << 8
	flags := binary.LittleEndian.Uint32(r.Value[0:4])
	c.Urgent = flags&urgencyHint != 0
	if c.Urgent {
		wm.paintBorder(c, wm.cfg.BorderFocused)
	}
}

// handleEnterNotify implements focus-follows-mouse.
func (wm *WM) handleEnterNotify(e xproto.EnterNotifyEvent) {
	mon, c := wm.findClientMon(e.Event)
	if c == nil {
		return
	}
	wm.selMon = mon.Index
	if mon.focused != c {
		wm.focus(c)
	}
}

// handleClientMessage implements _NET_WM_STATE add/remove/toggle fullscreen
// and _NET_ACTIVE_WINDOW.
func (wm *WM) handleClientMessage(e xproto.ClientMessageEvent) {
	_, c := wm.findClientMon(e.Window)
	if c == nil {
		return
	}
	data := e.Data.Data32
	switch e.Type {
	case wm.atoms.netWMState:
		if len(data) < 2 {
			return
		}
		action := netWMStateAction(data[0])
		prop := xproto.Atom(data[1])
		if prop != wm.atoms.netWMStateFullscreen {
			return
		}
		want := c.Fullscreen
		switch action {
		case netWMStateAdd:
			want = true
		case netWMStateRemove:
			want = false
		case netWMStateToggle:
			want = !c.Fullscreen
		}
		if want != c.Fullscreen {
			wm.doToggleFullscreen()
		}
	case wm.atoms.netActiveWindow:
		wm.focus(c)
	}
}

// handleExpose redraws a bar window after Expose.
func (wm *WM) handleExpose(e xproto.ExposeEvent) {
	if e.Count != 0 {
		return
	}
	for _, m := range wm.monitors {
		if m.bar != nil && m.bar.win == e.Window {
			wm.redrawBar(m)
			return
		}
	}
}

const dragButtonMove = 1
const dragButtonResize = 3

// handleButtonPress dispatches bar clicks and starts a Mod+drag
// move/resize of a floating client.
func (wm *WM) handleButtonPress(e xproto.ButtonPressEvent, drg *drag) {
	for _, m := range wm.monitors {
		if m.bar != nil && m.bar.win == e.Event {
			wm.barClickAt(m, e.EventX, e.EventY, byte(e.Detail))
			return
		}
	}

	mon, c := wm.findClientMon(e.Event)
	if c == nil {
		return
	}
	wm.selMon = mon.Index
	wm.focus(c)

	modBit, _ := wm.modKeyBit()
	if e.State&modBit == 0 {
		return
	}
	if !c.Floating {
		return
	}
	*drg = drag{
		active:   true,
		resize:   e.Detail == dragButtonResize,
		client:   c,
		startX:   e.RootX,
		startY:   e.RootY,
		origRect: c.Rect(),
	}
}

func (wm *WM) modKeyBit() (uint16, bool) {
	switch wm.cfg.ModKey {
	case config.Mod1:
		return xproto.ModMask1, true
	case config.Mod2:
		return xproto.ModMask2, true
	case config.Mod3:
		return xproto.ModMask3, true
	case config.Mod4:
		return xproto.ModMask4, true
	case config.Mod5:
		return xproto.ModMask5, true
	}
	return xproto.ModMask4, true
}

func (wm *WM) handleMotionNotify(e xproto.MotionNotifyEvent, drg *drag) {
	if !drg.active {
		return
	}
	dx := e.RootX - drg.startX
	dy := e.RootY - drg.startY
	r := drg.origRect
	if drg.resize {
		r.W = uint16(int16(r.W) + dx)
		r.H = uint16(int16(r.H) + dy)
		r = clampToHints(r, drg.client.Hints)
	} else {
		r.X += dx
		r.Y += dy
	}
	wm.setClientGeometry(drg.client, r, drg.client.BorderWidth)
}
