package wm

// arrangeMonocle gives every visible tiled client the full work area;
// raising/mapping only the focused one is handled separately by
// applyStackingAndVisibility since it needs the monitor's focused pointer,
// not just the client list.
func arrangeMonocle(work Rect, clients []*Client, gaps GapConfig, mfact float64, nmaster int) map[*Client]Rect {
	out := make(map[*Client]Rect, len(clients))
	area := work
	if gaps.Enabled {
		area = work.Inset(gaps.OuterH, gaps.OuterV)
	}
	for _, c := range clients {
		out[c] = area
	}
	return out
}
