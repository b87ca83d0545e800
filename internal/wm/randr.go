package wm

import (
	"github.com/BurntSushi/xgb/randr"
)

// queryRandrMonitors reads active CRTCs' geometry directly rather than
// going through RandR's higher-level Monitor objects, so it also works
// against older RandR versions that predate RRGetMonitors (xgb/randr
// doesn't wrap that newer request).
func (wm *WM) queryRandrMonitors() ([]Rect, error) {
	if err := randr.Init(wm.conn); err != nil {
		return nil, err
	}
	res, err := randr.GetScreenResources(wm.conn, wm.root).Reply()
	if err != nil {
		return nil, err
	}
	var out []Rect
	for _, crtc := range res.Crtcs {
		info, err := randr.GetCrtcInfo(wm.conn, crtc, 0).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 {
			continue
		}
		out = append(out, Rect{X: info.X, Y: info.Y, W: info.Width, H: info.Height})
	}
	return out, nil
}

// selectRandrNotify arms RRScreenChangeNotify delivery on the root window,
// the signal onScreenChange (monitor.go) reacts to.
func (wm *WM) selectRandrNotify() {
	_ = randr.SelectInputChecked(wm.conn, wm.root, randr.NotifyMaskScreenChange).Check()
}
