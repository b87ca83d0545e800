package wm

import "math"

// arrangeGrid lays clients out in ceil(sqrt(n)) columns, row-major, with
// the last row stretching to fill any leftover columns.
func arrangeGrid(work Rect, clients []*Client, gaps GapConfig, mfact float64, nmaster int) map[*Client]Rect {
	out := make(map[*Client]Rect, len(clients))
	n := len(clients)
	if n == 0 {
		return out
	}

	area := work
	if gaps.Enabled {
		area = work.Inset(gaps.OuterH, gaps.OuterV)
	}

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := int(math.Ceil(float64(n) / float64(cols)))

	colGap, rowGap := uint16(0), uint16(0)
	if gaps.Enabled {
		colGap, rowGap = gaps.InnerH, gaps.InnerV
	}

	colW := satSubU16(area.W, colGap*uint16(cols-1)) / uint16(cols)
	rowH := satSubU16(area.H, rowGap*uint16(rows-1)) / uint16(rows)

	for i, c := range clients {
		row, col := i/cols, i%cols

		// Stretch the last (possibly partial) row to fill the width.
		isLastRow := row == rows-1
		cellsInRow := cols
		if isLastRow {
			if rem := n - row*cols; rem > 0 {
				cellsInRow = rem
			}
		}
		w := colW
		if isLastRow && cellsInRow != cols {
			w = satSubU16(area.W, colGap*uint16(cellsInRow-1)) / uint16(cellsInRow)
		}

		x := area.X + int16(col)*(int16(colW)+int16(colGap))
		if isLastRow && cellsInRow != cols {
			x = area.X + int16(col)*(int16(w)+int16(colGap))
		}
		y := area.Y + int16(row)*(int16(rowH)+int16(rowGap))

		h := rowH
		if row == rows-1 {
			h = satSubU16(area.H, uint16(y-area.Y))
		}

		out[c] = Rect{X: x, Y: y, W: w, H: h}
	}
	return out
}
