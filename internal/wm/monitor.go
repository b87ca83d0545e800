package wm

import (
	"github.com/BurntSushi/xgb/xinerama"
	log "github.com/sirupsen/logrus"
)

// Monitor is one physical display and the tag/layout/client state it owns.
type Monitor struct {
	Index int

	Bounds   Rect
	WorkArea Rect

	SelTags  uint32
	PrevTags uint32

	Layout  string
	MFact   float64
	NMaster int

	Clients    []*Client
	FocusStack []*Client
	focused    *Client

	bar *monitorBar
}

// topOfFocusStack returns the most-recently-focused client among those
// visible on tags, or nil if none are.
func (m *Monitor) topOfFocusStack(tags uint32) *Client {
	for _, c := range m.FocusStack {
		if c.TagMask&tags != 0 {
			return c
		}
	}
	return nil
}

// visibleClients returns m.Clients filtered to those visible on the
// monitor's currently selected tags, preserving list order (the order every
// layout in layout_*.go arranges against).
func (m *Monitor) visibleClients() []*Client {
	out := make([]*Client, 0, len(m.Clients))
	for _, c := range m.Clients {
		if c.TagMask&m.SelTags != 0 {
			out = append(out, c)
		}
	}
	return out
}

func (m *Monitor) occupiedTags() uint32 {
	var mask uint32
	for _, c := range m.Clients {
		mask |= c.TagMask
	}
	return mask
}

// enumerateMonitors queries RandR (falling back to Xinerama, then to a
// single full-screen monitor) and rebuilds wm.monitors from the result.
// Existing monitors (by index) keep their tag/layout/client state; new
// monitors get the built-in defaults from the settled Config.
func (wm *WM) enumerateMonitors() error {
	bounds, err := wm.queryRandrMonitors()
	if err != nil || len(bounds) == 0 {
		bounds, err = wm.queryXineramaMonitors()
		if err != nil {
			bounds = nil
		}
	}
	if len(bounds) == 0 {
		bounds = []Rect{{X: 0, Y: 0, W: wm.screen.WidthInPixels, H: wm.screen.HeightInPixels}}
	}

	old := wm.monitors
	wm.monitors = make([]*Monitor, len(bounds))
	for i, b := range bounds {
		m := &Monitor{
			Index:   i,
			Bounds:  b,
			SelTags: 1,
			Layout:  wm.cfg.DefaultLayout,
			MFact:   wm.cfg.MasterFactor,
			NMaster: wm.cfg.NumMaster,
		}
		if i < len(old) {
			m.SelTags, m.PrevTags = old[i].SelTags, old[i].PrevTags
			m.Layout, m.MFact, m.NMaster = old[i].Layout, old[i].MFact, old[i].NMaster
			m.Clients, m.FocusStack, m.focused = old[i].Clients, old[i].FocusStack, old[i].focused
		}
		m.WorkArea = WorkArea(b, wm.barHeight(), true)
		wm.monitors[i] = m
	}

	// Migrate clients from vanished monitors to monitor 0, retaining tag
	// mask.
	for i := len(bounds); i < len(old); i++ {
		for _, c := range old[i].Clients {
			c.Mon = 0
			wm.monitors[0].Clients = append(wm.monitors[0].Clients, c)
			wm.monitors[0].FocusStack = append(wm.monitors[0].FocusStack, c)
		}
	}
	if wm.selMon >= len(wm.monitors) {
		wm.selMon = 0
	}
	return nil
}

func (wm *WM) queryXineramaMonitors() ([]Rect, error) {
	if err := xinerama.Init(wm.conn); err != nil {
		return nil, err
	}
	r, err := xinerama.QueryScreens(wm.conn).Reply()
	if err != nil {
		return nil, err
	}
	out := make([]Rect, len(r.ScreenInfo))
	for i, si := range r.ScreenInfo {
		out[i] = Rect{X: si.XOrg, Y: si.YOrg, W: si.Width, H: si.Height}
	}
	return out, nil
}

// onScreenChange re-enumerates monitors on RRScreenChangeNotify and
// recreates every bar at its new width.
func (wm *WM) onScreenChange() {
	if err := wm.enumerateMonitors(); err != nil {
		log.WithField("component", "monitor").Errorf("re-enumerate: %v", err)
		return
	}
	for _, m := range wm.monitors {
		wm.destroyBar(m)
		wm.createBar(m)
		wm.applyLayout(m)
	}
}
