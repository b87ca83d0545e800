package wm

import (
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	log "github.com/sirupsen/logrus"

	"github.com/xsoder/oxwm/internal/config"
)

// WM owns the X connection and all window manager state: the monitor list,
// the loaded config, the keyboard dispatcher's grab table and chord state,
// and the bar/degraded bookkeeping. Only the event loop goroutine (Run)
// touches any of it, so nothing here needs synchronization.
type WM struct {
	conn     *xgb.Conn
	screen   *xproto.ScreenInfo
	root     xproto.Window
	atoms    *atoms
	checkWin xproto.Window

	cfg *config.Config

	monitors []*Monitor
	selMon   int

	keysyms     [256][2]xproto.Keysym
	numLockMask uint16

	bindings        map[bindKey]*config.KeyBinding
	chordFirstSteps map[bindKey][]*config.KeyBinding
	chord           chordState

	degraded    bool
	degradedMsg string

	restart bool
	quit    bool

	font *barFont
}

// New connects to the X display, becomes the window manager, and prepares
// every piece of adapter state (atoms, cursor, supporting-WM-check window),
// but does not yet scan or manage any window.
func New(cfg *config.Config) (*WM, error) {
	conn, err := connectX()
	if err != nil {
		return nil, err
	}
	setup := xproto.Setup(conn)
	if len(setup.Roots) == 0 {
		return nil, &startupError{msg: "X server reported no screens"}
	}
	screen := &setup.Roots[0]

	wm := &WM{
		conn:   conn,
		screen: screen,
		root:   screen.Root,
		cfg:    cfg,
	}

	if err := becomeTheWM(conn, wm.root); err != nil {
		return nil, err
	}
	wm.atoms = initAtoms(conn)
	if err := setRootCursor(conn, wm.root); err != nil {
		log.WithField("component", "x11").Warnf("could not set root cursor: %v", err)
	}
	if err := wm.createSupportingWMCheck(); err != nil {
		return nil, err
	}
	if err := wm.loadKeyboardMapping(); err != nil {
		return nil, err
	}
	wm.buildBindingTables()
	wm.grabConfiguredKeys()
	wm.font = openBarFont(conn, screen, cfg.Font)

	if err := wm.enumerateMonitors(); err != nil {
		return nil, err
	}
	for _, m := range wm.monitors {
		wm.createBar(m)
	}
	wm.degraded = cfg.Degraded
	wm.degradedMsg = cfg.DegradedMsg

	return wm, nil
}

type startupError struct{ msg string }

func (e *startupError) Error() string { return e.msg }

// Scan adopts every already-mapped, non-override-redirect top-level window
// found on the root, so windows that existed before oxwm started are
// managed like any other.
func (wm *WM) Scan() {
	tree, err := xproto.QueryTree(wm.conn, wm.root).Reply()
	if err != nil {
		log.WithField("component", "scan").Errorf("query tree: %v", err)
		return
	}
	for _, win := range tree.Children {
		if wm.isBarWindow(win) {
			continue
		}
		attrs, err := xproto.GetWindowAttributes(wm.conn, win).Reply()
		if err != nil {
			continue
		}
		if attrs.OverrideRedirect || attrs.MapState == xproto.MapStateUnmapped {
			continue
		}
		wm.manage(win)
	}
}

// RunAutostart spawns every command configured via oxwm.autostart, each
// detached the same way doSpawn launches an action-bound command.
func (wm *WM) RunAutostart() {
	for _, argv := range wm.cfg.Autostart {
		wm.doSpawn(argv)
	}
}

func (wm *WM) isBarWindow(win xproto.Window) bool {
	for _, m := range wm.monitors {
		if m.bar != nil && m.bar.win == win {
			return true
		}
	}
	return false
}

// Restarting reports whether the event loop exited to re-exec the process
// image as part of a config reload.
func (wm *WM) Restarting() bool { return wm.restart }

func (wm *WM) selectedMonitor() *Monitor { return wm.monitors[wm.selMon] }

func nowDeadline(d time.Duration) time.Time { return time.Now().Add(d) }
