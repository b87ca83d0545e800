package wm

// TabBarHeight is the height left free above the single visible client in
// the tabbed layout for a tab strip; nothing is drawn in it.
const TabBarHeight = 20

// arrangeTabbed gives the focused client the work area below a tab strip;
// unfocused clients are computed here too (same rect, minus the strip) so
// applyStackingAndVisibility's unmap-the-rest pass has a sane geometry to
// fall back on if one gets raised via a click before the next layout pass.
func arrangeTabbed(work Rect, clients []*Client, gaps GapConfig, mfact float64, nmaster int) map[*Client]Rect {
	out := make(map[*Client]Rect, len(clients))
	if len(clients) == 0 {
		return out
	}
	area := work
	if gaps.Enabled {
		area = work.Inset(gaps.OuterH, gaps.OuterV)
	}
	body := Rect{
		X: area.X, Y: area.Y + TabBarHeight,
		W: area.W, H: satSubU16(area.H, TabBarHeight),
	}
	for _, c := range clients {
		out[c] = body
	}
	return out
}

// tabTitles returns the strip's click targets in left-to-right order: one
// entry per visible client.
func tabTitles(clients []*Client) []string {
	titles := make([]string, len(clients))
	for i, c := range clients {
		titles[i] = c.Title
	}
	return titles
}
