package wm

import "math"

// Rect is an axis-aligned rectangle in root-window coordinates. Widths and
// heights follow X11 convention: zero means no area.
type Rect struct {
	X, Y int16
	W, H uint16
}

// GapConfig mirrors the config.lua gaps.set_inner/set_outer surface.
type GapConfig struct {
	Enabled       bool
	InnerH, InnerV uint16
	OuterH, OuterV uint16
}

func satSubU16(a, b uint16) uint16 {
	if b >= a {
		return 0
	}
	return a - b
}

// Inset shrinks r by h horizontally (both sides) and v vertically (both
// sides), saturating at zero instead of wrapping.
func (r Rect) Inset(h, v uint16) Rect {
	out := r
	out.X += int16(h)
	out.Y += int16(v)
	out.W = satSubU16(r.W, 2*h)
	out.H = satSubU16(r.H, 2*v)
	return out
}

// Contains reports whether (x, y) lies within r, inclusive of the border.
func (r Rect) Contains(x, y int16) bool {
	return r.X <= x && x <= r.X+int16(r.W) &&
		r.Y <= y && y <= r.Y+int16(r.H)
}

// Center returns the rectangle's midpoint, used by FocusDirection's
// nearest-center tie-break.
func (r Rect) Center() (int, int) {
	return int(r.X) + int(r.W)/2, int(r.Y) + int(r.H)/2
}

// Eq reports exact equality, used to skip redundant ConfigureWindow calls
// when a layout pass is idempotent.
func (r Rect) Eq(o Rect) bool {
	return r.X == o.X && r.Y == o.Y && r.W == o.W && r.H == o.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W == 0 || r.H == 0
}

// CenterDistance returns the Euclidean distance between the centers of a
// and b.
func CenterDistance(a, b Rect) float64 {
	ax, ay := a.Center()
	bx, by := b.Center()
	dx := float64(ax - bx)
	dy := float64(ay - by)
	return math.Hypot(dx, dy)
}

// WorkArea returns the monitor's screen rectangle minus the bar strip.
// barOnTop places the bar at the top of the monitor (oxwm always does;
// the flag exists so layout tests can exercise both without duplicating
// geometry code).
func WorkArea(screen Rect, barHeight uint16, barOnTop bool) Rect {
	w := screen
	if barHeight == 0 {
		return w
	}
	if barOnTop {
		w.Y += int16(barHeight)
	}
	w.H = satSubU16(w.H, barHeight)
	return w
}

// SplitMaster divides work into a master column and a stack column for the
// tiling layout. nmaster is the number of clients that live in the master
// column; n is the total number of visible (tiled) clients. mfact is the
// master column's fraction of the work area's width, 0 < mfact < 1.
func SplitMaster(work Rect, nmaster int, mfact float64, n int, gaps GapConfig) (master, stack Rect) {
	inner := work
	if gaps.Enabled {
		inner = work.Inset(gaps.OuterH, gaps.OuterV)
	}
	if nmaster == 0 {
		return Rect{}, inner
	}
	if n <= nmaster {
		return inner, Rect{}
	}
	mw := uint16(float64(inner.W) * mfact)
	master = Rect{X: inner.X, Y: inner.Y, W: mw, H: inner.H}
	stack = Rect{X: inner.X + int16(mw), Y: inner.Y, W: satSubU16(inner.W, mw), H: inner.H}
	if gaps.Enabled && gaps.InnerH > 0 {
		half := gaps.InnerH / 2
		master.W = satSubU16(master.W, half)
		stack.X += int16(half)
		stack.W = satSubU16(stack.W, half)
	}
	return master, stack
}
