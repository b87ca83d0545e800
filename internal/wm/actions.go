package wm

import (
	"os"
	"os/exec"
	"sort"

	"github.com/BurntSushi/xgb/xproto"
	log "github.com/sirupsen/logrus"

	"github.com/xsoder/oxwm/internal/config"
)

// fireAction dispatches a configured Action to the handler for its Kind.
func (wm *WM) fireAction(a config.Action) {
	switch a.Kind {
	case config.ActionSpawn:
		wm.doSpawn(a.Arg)
	case config.ActionKillClient:
		wm.doKillClient()
	case config.ActionFocusStack:
		wm.doFocusStack(argInt(a.Arg))
	case config.ActionFocusDirection:
		wm.doFocusDirection(a.Arg.(config.Direction))
	case config.ActionSwapDirection:
		wm.doSwapDirection(a.Arg.(config.Direction))
	case config.ActionQuit:
		wm.quit = true
	case config.ActionRestart:
		wm.quit = true
		wm.restart = true
	case config.ActionViewTag:
		wm.doViewTag(argInt(a.Arg))
	case config.ActionMoveToTag:
		wm.doMoveToTag(argInt(a.Arg))
	case config.ActionToggleGaps:
		wm.cfg.GapsEnabled = !wm.cfg.GapsEnabled
		wm.applyLayout(wm.selectedMonitor())
	case config.ActionToggleFullScreen:
		wm.doToggleFullscreen()
	case config.ActionToggleFloating:
		wm.doToggleFloating()
	case config.ActionChangeLayout:
		wm.doChangeLayout(a.Arg.(string))
	case config.ActionCycleLayout:
		wm.doCycleLayout()
	case config.ActionFocusMonitor:
		wm.doFocusMonitor(argInt(a.Arg))
	case config.ActionMoveToMonitor:
		wm.doMoveToMonitor(argInt(a.Arg))
	case config.ActionShowKeybindOverlay:
		wm.showKeybindOverlay()
	case config.ActionSetMasterFactor:
		wm.doSetMasterFactor(a.Arg.(float64))
	case config.ActionIncNumMaster:
		wm.doIncNumMaster(argInt(a.Arg))
	}
}

func argInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case config.Direction:
		return int(t)
	}
	return 0
}

// doSpawn forks/execs argv, detached, inheriting the WM's environment
// (including DISPLAY). The child is reaped by the goroutine below rather
// than left for init; only a failure to start the child is logged.
func (wm *WM) doSpawn(arg any) {
	var argv []string
	switch v := arg.(type) {
	case string:
		argv = []string{"sh", "-c", v}
	case []string:
		argv = v
	}
	if len(argv) == 0 {
		return
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		log.WithField("component", "spawn").Warnf("spawn %v: %v", argv, err)
		return
	}
	go cmd.Wait()
}

// doKillClient asks the focused client to close via WM_DELETE_WINDOW if it
// declared support, else forces it closed with XKillClient.
func (wm *WM) doKillClient() {
	m := wm.selectedMonitor()
	c := m.focused
	if c == nil {
		return
	}
	if c.SupportsDelete {
		wm.sendClientMessage(c.Win, wm.atoms.wmDeleteWindow)
		return
	}
	_ = xproto.KillClientChecked(wm.conn, uint32(c.Win)).Check()
}

// doFocusStack cycles focus in the given direction over the monitor's
// visible client list order.
func (wm *WM) doFocusStack(dir int) {
	m := wm.selectedMonitor()
	visible := m.visibleClients()
	if len(visible) == 0 {
		return
	}
	idx := 0
	for i, c := range visible {
		if c == m.focused {
			idx = i
			break
		}
	}
	next := (idx+dir+len(visible)*2) % len(visible)
	wm.focus(visible[next])
	wm.warpPointerTo(visible[next])
}

// warpPointerTo moves the cursor to a client's center after a
// keyboard-driven focus change, so the pointer always tracks keyboard
// focus rather than lagging behind it.
func (wm *WM) warpPointerTo(c *Client) {
	if c == nil {
		return
	}
	r := c.Rect()
	_ = xproto.WarpPointerChecked(wm.conn, xproto.WindowNone, wm.root, 0, 0, 0, 0,
		r.X+int16(r.W/2), r.Y+int16(r.H/2)).Check()
}

// doFocusDirection focuses the visible client whose center is nearest in
// the chosen half-plane.
func (wm *WM) doFocusDirection(dir config.Direction) {
	m := wm.selectedMonitor()
	cur := m.focused
	if cur == nil {
		return
	}
	best := nearestInDirection(m, cur, dir)
	if best != nil {
		wm.focus(best)
		wm.warpPointerTo(best)
	}
}

func nearestInDirection(m *Monitor, from *Client, dir config.Direction) *Client {
	fx, fy := from.Rect().Center()
	var best *Client
	bestDist := -1.0
	for _, c := range m.visibleClients() {
		if c == from {
			continue
		}
		cx, cy := c.Rect().Center()
		switch dir {
		case config.DirUp:
			if cy >= fy {
				continue
			}
		case config.DirDown:
			if cy <= fy {
				continue
			}
		case config.DirLeft:
			if cx >= fx {
				continue
			}
		case config.DirRight:
			if cx <= fx {
				continue
			}
		}
		d := CenterDistance(from.Rect(), c.Rect())
		if best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// doSwapDirection swaps positions in the client list with the directional
// neighbor and reapplies the layout.
func (wm *WM) doSwapDirection(dir config.Direction) {
	m := wm.selectedMonitor()
	cur := m.focused
	if cur == nil {
		return
	}
	neighbor := nearestInDirection(m, cur, dir)
	if neighbor == nil {
		return
	}
	swapInList(m.Clients, cur, neighbor)
	wm.applyLayout(m)
}

func swapInList(list []*Client, a, b *Client) {
	ia, ib := -1, -1
	for i, c := range list {
		if c == a {
			ia = i
		}
		if c == b {
			ib = i
		}
	}
	if ia >= 0 && ib >= 0 {
		list[ia], list[ib] = list[ib], list[ia]
	}
}

// doViewTag sets the selected monitor's tag mask, saving the previous mask
// in PrevTags; viewing the tag that is already selected is a no-op.
func (wm *WM) doViewTag(i int) {
	if i < 0 || i >= len(wm.cfg.Tags) {
		return
	}
	m := wm.selectedMonitor()
	mask := uint32(1) << i
	if mask == m.SelTags {
		return
	}
	m.PrevTags, m.SelTags = m.SelTags, mask
	if next := m.topOfFocusStack(m.SelTags); next != nil {
		wm.focus(next)
	} else {
		wm.focus(nil)
	}
	wm.applyLayout(m)
}

// doMoveToTag sets the focused client's tag mask.
func (wm *WM) doMoveToTag(i int) {
	if i < 0 || i >= len(wm.cfg.Tags) {
		return
	}
	m := wm.selectedMonitor()
	c := m.focused
	if c == nil {
		return
	}
	c.TagMask = uint32(1) << i
	wm.applyLayout(m)
}

// doToggleFullscreen saves/restores geometry and border width around
// fullscreening the focused client, keeping _NET_WM_STATE in sync.
func (wm *WM) doToggleFullscreen() {
	m := wm.selectedMonitor()
	c := m.focused
	if c == nil {
		return
	}
	if c.Fullscreen {
		c.Fullscreen = false
		wm.setClientGeometry(c, Rect{c.OldX, c.OldY, c.OldW, c.OldH}, c.OldBorderWidth)
		wm.setNetWMState(c, false)
	} else {
		c.OldX, c.OldY, c.OldW, c.OldH = c.X, c.Y, c.W, c.H
		c.OldBorderWidth = c.BorderWidth
		c.Fullscreen = true
		wm.setClientGeometry(c, m.Bounds, 0)
		wm.setNetWMState(c, true)
	}
	wm.redrawBar(m)
}

func (wm *WM) setNetWMState(c *Client, fullscreen bool) {
	var buf []byte
	if fullscreen {
		buf = u32Bytes(uint32(wm.atoms.netWMStateFullscreen))
	}
	n := uint32(len(buf) / 4)
	_ = xproto.ChangePropertyChecked(wm.conn, xproto.PropModeReplace, c.Win,
		wm.atoms.netWMState, xproto.AtomAtom, 32, n, buf).Check()
}

// doToggleFloating flips the focused client's floating bit and rearranges.
func (wm *WM) doToggleFloating() {
	m := wm.selectedMonitor()
	c := m.focused
	if c == nil || c.Fullscreen {
		return
	}
	c.Floating = !c.Floating
	wm.applyLayout(m)
}

func (wm *WM) doChangeLayout(name string) {
	if _, ok := layouts[name]; !ok {
		return
	}
	m := wm.selectedMonitor()
	m.Layout = name
	wm.applyLayout(m)
}

func (wm *WM) doCycleLayout() {
	order := []string{"tiling", "normie", "monocle", "grid", "tabbed"}
	m := wm.selectedMonitor()
	idx := 0
	for i, n := range order {
		if n == m.Layout {
			idx = i
			break
		}
	}
	m.Layout = order[(idx+1)%len(order)]
	wm.applyLayout(m)
}

// doFocusMonitor moves the selected monitor by dir, wrapping around.
func (wm *WM) doFocusMonitor(dir int) {
	n := len(wm.monitors)
	if n < 2 {
		return
	}
	wm.selMon = ((wm.selMon+dir)%n + n) % n
	m := wm.selectedMonitor()
	if m.focused != nil {
		wm.focus(m.focused)
		wm.warpPointerTo(m.focused)
	}
}

// doMoveToMonitor sends the focused client to the monitor in the given
// direction, keeping its tag mask (config.lua's monitor.tag(dir)).
func (wm *WM) doMoveToMonitor(dir int) {
	n := len(wm.monitors)
	if n < 2 {
		return
	}
	src := wm.selectedMonitor()
	c := src.focused
	if c == nil {
		return
	}
	dstIdx := ((src.Index+dir)%n + n) % n
	dst := wm.monitors[dstIdx]

	src.Clients = removeClient(src.Clients, c)
	src.FocusStack = removeClient(src.FocusStack, c)
	c.Mon = dstIdx
	dst.Clients = append(dst.Clients, c)
	dst.FocusStack = append([]*Client{c}, dst.FocusStack...)

	if c.Fullscreen {
		wm.setClientGeometry(c, dst.Bounds, 0)
	}
	wm.applyLayout(src)
	wm.applyLayout(dst)
}

func (wm *WM) doSetMasterFactor(f float64) {
	if f <= 0 || f >= 1 {
		return
	}
	m := wm.selectedMonitor()
	m.MFact = f
	wm.applyLayout(m)
}

func (wm *WM) doIncNumMaster(delta int) {
	m := wm.selectedMonitor()
	m.NMaster += delta
	if m.NMaster < 0 {
		m.NMaster = 0
	}
	wm.applyLayout(m)
}

// showKeybindOverlay draws a transient listing of every configured binding
// onto the selected monitor's bar pixmap, reusing the bar's drawing
// primitives rather than a second text-drawing path.
func (wm *WM) showKeybindOverlay() {
	m := wm.selectedMonitor()
	if m.bar == nil {
		return
	}
	lines := overlayLines(wm.cfg.Bindings)
	drawable := xproto.Drawable(m.bar.pixmap)
	wm.fillRect(drawable, m.bar.gc, Rect{0, 0, m.bar.w, m.bar.h}, wm.cfg.SchemeSelected.BG)
	y := int16(0)
	for _, line := range lines {
		wm.drawText(drawable, m.bar.gc, Rect{0, y, m.bar.w, wm.barHeight()}, line, wm.cfg.SchemeSelected.FG)
		y += int16(wm.barHeight())
	}
	_ = xproto.CopyAreaChecked(wm.conn, drawable, xproto.Drawable(m.bar.win), m.bar.gc,
		0, 0, 0, 0, m.bar.w, m.bar.h).Check()
}

func overlayLines(bindings []config.KeyBinding) []string {
	names := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		names = append(names, actionName(kb.Action.Kind))
	}
	sort.Strings(names)
	return names
}

func actionName(k config.ActionKind) string {
	names := map[config.ActionKind]string{
		config.ActionSpawn: "Spawn", config.ActionKillClient: "KillClient",
		config.ActionFocusStack: "FocusStack", config.ActionFocusDirection: "FocusDirection",
		config.ActionSwapDirection: "SwapDirection", config.ActionQuit: "Quit",
		config.ActionRestart: "Restart", config.ActionViewTag: "ViewTag",
		config.ActionMoveToTag: "MoveToTag", config.ActionToggleGaps: "ToggleGaps",
		config.ActionToggleFullScreen: "ToggleFullScreen", config.ActionToggleFloating: "ToggleFloating",
		config.ActionChangeLayout: "ChangeLayout", config.ActionCycleLayout: "CycleLayout",
		config.ActionFocusMonitor: "FocusMonitor", config.ActionMoveToMonitor: "MoveToMonitor",
		config.ActionShowKeybindOverlay: "ShowKeybindOverlay",
		config.ActionSetMasterFactor:    "SetMasterFactor", config.ActionIncNumMaster: "IncNumMaster",
	}
	if n, ok := names[k]; ok {
		return n
	}
	return "Unknown"
}
