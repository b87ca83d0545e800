package wm

// arrangeNormie is the no-op layout: every client is treated as floating,
// so the tiled arranger has nothing to place.
func arrangeNormie(work Rect, clients []*Client, gaps GapConfig, mfact float64, nmaster int) map[*Client]Rect {
	return map[*Client]Rect{}
}
