package wm

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	log "github.com/sirupsen/logrus"
)

// atoms holds every interned atom the ICCCM/EWMH adapter needs. It is
// populated once at startup by initAtoms and grouped into a struct so the
// rest of the package doesn't depend on package-level init order.
type atoms struct {
	wmProtocols        xproto.Atom
	wmDeleteWindow     xproto.Atom
	wmState            xproto.Atom
	wmTakeFocus        xproto.Atom
	wmName             xproto.Atom
	wmClass            xproto.Atom
	wmTransientFor     xproto.Atom
	wmNormalHints      xproto.Atom
	wmHints            xproto.Atom

	netSupported              xproto.Atom
	netWMName                 xproto.Atom
	netWMState                xproto.Atom
	netWMStateFullscreen      xproto.Atom
	netActiveWindow           xproto.Atom
	netClientList             xproto.Atom
	netWMWindowType           xproto.Atom
	netWMWindowTypeDialog     xproto.Atom
	netSupportingWMCheck      xproto.Atom

	utf8String xproto.Atom
}

func internAtom(c *xgb.Conn, name string) xproto.Atom {
	r, err := xproto.InternAtom(c, false, uint16(len(name)), name).Reply()
	if err != nil {
		log.WithField("atom", name).Fatalf("could not intern atom: %v", err)
	}
	return r.Atom
}

func initAtoms(c *xgb.Conn) *atoms {
	a := &atoms{}
	a.wmProtocols = internAtom(c, "WM_PROTOCOLS")
	a.wmDeleteWindow = internAtom(c, "WM_DELETE_WINDOW")
	a.wmState = internAtom(c, "WM_STATE")
	a.wmTakeFocus = internAtom(c, "WM_TAKE_FOCUS")
	a.wmName = internAtom(c, "WM_NAME")
	a.wmClass = internAtom(c, "WM_CLASS")
	a.wmTransientFor = internAtom(c, "WM_TRANSIENT_FOR")
	a.wmNormalHints = internAtom(c, "WM_NORMAL_HINTS")
	a.wmHints = internAtom(c, "WM_HINTS")

	a.netSupported = internAtom(c, "_NET_SUPPORTED")
	a.netWMName = internAtom(c, "_NET_WM_NAME")
	a.netWMState = internAtom(c, "_NET_WM_STATE")
	a.netWMStateFullscreen = internAtom(c, "_NET_WM_STATE_FULLSCREEN")
	a.netActiveWindow = internAtom(c, "_NET_ACTIVE_WINDOW")
	a.netClientList = internAtom(c, "_NET_CLIENT_LIST")
	a.netWMWindowType = internAtom(c, "_NET_WM_WINDOW_TYPE")
	a.netWMWindowTypeDialog = internAtom(c, "_NET_WM_WINDOW_TYPE_DIALOG")
	a.netSupportingWMCheck = internAtom(c, "_NET_SUPPORTING_WM_CHECK")

	a.utf8String = internAtom(c, "UTF8_STRING")
	return a
}

// supportedList is the fixed list of atoms advertised via _NET_SUPPORTED.
func (a *atoms) supportedList() []xproto.Atom {
	return []xproto.Atom{
		a.netSupported,
		a.netWMName,
		a.netWMState,
		a.netWMStateFullscreen,
		a.netActiveWindow,
		a.netClientList,
		a.netWMWindowType,
		a.netWMWindowTypeDialog,
		a.netSupportingWMCheck,
	}
}
