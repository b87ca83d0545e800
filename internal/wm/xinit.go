package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskButtonPress |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskPropertyChange

// becomeTheWM grabs SubstructureRedirect on the root window. Failure here
// means another WM already owns the display, and is fatal.
func becomeTheWM(c *xgb.Conn, root xproto.Window) error {
	err := xproto.ChangeWindowAttributesChecked(c, root, xproto.CwEventMask,
		[]uint32{rootEventMask}).Check()
	if err != nil {
		if _, ok := err.(xproto.AccessError); ok {
			return fmt.Errorf("another window manager is already running on this display")
		}
		return err
	}
	return nil
}

func setRootCursor(c *xgb.Conn, root xproto.Window) error {
	fid, err := xproto.NewFontId(c)
	if err != nil {
		return err
	}
	const cursorFontName = "cursor"
	if err := xproto.OpenFontChecked(c, fid, uint16(len(cursorFontName)), cursorFontName).Check(); err != nil {
		return err
	}
	cid, err := xproto.NewCursorId(c)
	if err != nil {
		return err
	}
	const xcLeftPtr = 68 // XC_left_ptr, cursorfont.h
	if err := xproto.CreateGlyphCursorChecked(c, cid, fid, fid, xcLeftPtr, xcLeftPtr+1,
		0xffff, 0xffff, 0xffff, 0, 0, 0).Check(); err != nil {
		return err
	}
	if err := xproto.CloseFontChecked(c, fid).Check(); err != nil {
		return err
	}
	return xproto.ChangeWindowAttributesChecked(c, root, xproto.CwCursor,
		[]uint32{uint32(cid)}).Check()
}

// createSupportingWMCheck makes the 1x1 dummy child window EWMH requires as
// the target of _NET_SUPPORTING_WM_CHECK, and advertises _NET_SUPPORTED on
// the root.
func (wm *WM) createSupportingWMCheck() error {
	win, err := xproto.NewWindowId(wm.conn)
	if err != nil {
		return err
	}
	screen := wm.screen
	if err := xproto.CreateWindowChecked(wm.conn, screen.RootDepth, win, wm.root,
		-1, -1, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual, 0, nil).Check(); err != nil {
		return err
	}
	wm.checkWin = win

	if err := xproto.ChangePropertyChecked(wm.conn, xproto.PropModeReplace, wm.root,
		wm.atoms.netSupportingWMCheck, xproto.AtomWindow, 32, 1,
		u32Bytes(uint32(win))).Check(); err != nil {
		return err
	}
	if err := xproto.ChangePropertyChecked(wm.conn, xproto.PropModeReplace, win,
		wm.atoms.netSupportingWMCheck, xproto.AtomWindow, 32, 1,
		u32Bytes(uint32(win))).Check(); err != nil {
		return err
	}

	supported := wm.atoms.supportedList()
	buf := make([]byte, 0, 4*len(supported))
	for _, a := range supported {
		buf = append(buf, u32Bytes(uint32(a))...)
	}
	if err := xproto.ChangePropertyChecked(wm.conn, xproto.PropModeReplace, wm.root,
		wm.atoms.netSupported, xproto.AtomAtom, 32, uint32(len(supported)), buf).Check(); err != nil {
		return err
	}
	return nil
}

func u32Bytes(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func connectX() (*xgb.Conn, error) {
	return xgb.NewConn()
}
