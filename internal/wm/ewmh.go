package wm

import "github.com/BurntSushi/xgb/xproto"

// wmState values per ICCCM §4.1.3.1.
const (
	wmStateWithdrawn = 0
	wmStateNormal    = 1
	wmStateIconic    = 3
)

func (wm *WM) setWMState(win xproto.Window, state uint32) {
	_ = xproto.ChangePropertyChecked(wm.conn, xproto.PropModeReplace, win,
		wm.atoms.wmState, wm.atoms.wmState, 32, 2,
		append(u32Bytes(state), u32Bytes(0)...)).Check()
}

// updateClientList rebuilds _NET_CLIENT_LIST in managed-order-of-appearance
// across every monitor.
func (wm *WM) updateClientList() {
	var buf []byte
	for _, m := range wm.monitors {
		for _, c := range m.Clients {
			buf = append(buf, u32Bytes(uint32(c.Win))...)
		}
	}
	n := uint32(len(buf) / 4)
	_ = xproto.ChangePropertyChecked(wm.conn, xproto.PropModeReplace, wm.root,
		wm.atoms.netClientList, xproto.AtomWindow, 32, n, buf).Check()
}

func (wm *WM) setActiveWindow(win xproto.Window) {
	_ = xproto.ChangePropertyChecked(wm.conn, xproto.PropModeReplace, wm.root,
		wm.atoms.netActiveWindow, xproto.AtomWindow, 32, 1, u32Bytes(uint32(win))).Check()
}

func (wm *WM) clearActiveWindow() {
	_ = xproto.ChangePropertyChecked(wm.conn, xproto.PropModeReplace, wm.root,
		wm.atoms.netActiveWindow, xproto.AtomWindow, 32, 1, u32Bytes(0)).Check()
}

// sendClientMessage delivers a WM_PROTOCOLS-shaped ClientMessage, used for
// WM_DELETE_WINDOW and WM_TAKE_FOCUS.
func (wm *WM) sendClientMessage(win xproto.Window, protocol xproto.Atom) {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   wm.atoms.wmProtocols,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(protocol), 0, 0, 0, 0,
		}),
	}
	_ = xproto.SendEventChecked(wm.conn, false, win, xproto.EventMaskNoEvent,
		string(ev.Bytes())).Check()
}

// netWMStateAction mirrors the _NET_WM_STATE ClientMessage action values
// (EWMH spec): 0 remove, 1 add, 2 toggle.
type netWMStateAction uint32

const (
	netWMStateRemove netWMStateAction = 0
	netWMStateAdd    netWMStateAction = 1
	netWMStateToggle netWMStateAction = 2
)
