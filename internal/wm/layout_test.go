package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clientsN(n int) []*Client {
	out := make([]*Client, n)
	for i := range out {
		out[i] = &Client{Win: 0}
	}
	return out
}

func TestArrangeTiling_SingleClientFillsWork(t *testing.T) {
	work := Rect{X: 0, Y: 0, W: 1000, H: 800}
	cs := clientsN(1)
	geoms := arrangeTiling(work, cs, GapConfig{}, 0.5, 1)
	assert.Equal(t, work, geoms[cs[0]])
}

func TestArrangeTiling_MasterAndStackColumns(t *testing.T) {
	work := Rect{X: 0, Y: 0, W: 1000, H: 800}
	cs := clientsN(3)
	geoms := arrangeTiling(work, cs, GapConfig{}, 0.5, 1)

	master := geoms[cs[0]]
	assert.Equal(t, uint16(500), master.W)
	assert.Equal(t, work.H, master.H)

	// the remaining two clients stack evenly in the right column
	second, third := geoms[cs[1]], geoms[cs[2]]
	assert.Equal(t, uint16(500), second.W)
	assert.Equal(t, int16(500), second.X)
	assert.Equal(t, second.X, third.X)
	assert.Equal(t, second.Y+int16(second.H), third.Y)
}

func TestArrangeTiling_EmptyClientList(t *testing.T) {
	work := Rect{X: 0, Y: 0, W: 1000, H: 800}
	geoms := arrangeTiling(work, nil, GapConfig{}, 0.5, 1)
	assert.Empty(t, geoms)
}

func TestArrangeMonocle_EveryClientGetsFullArea(t *testing.T) {
	work := Rect{X: 0, Y: 0, W: 1000, H: 800}
	cs := clientsN(3)
	geoms := arrangeMonocle(work, cs, GapConfig{}, 0.5, 1)
	for _, c := range cs {
		assert.Equal(t, work, geoms[c])
	}
}

func TestArrangeGrid_FourClientsMakeTwoByTwo(t *testing.T) {
	work := Rect{X: 0, Y: 0, W: 1000, H: 800}
	cs := clientsN(4)
	geoms := arrangeGrid(work, cs, GapConfig{}, 0.5, 1)

	// 4 clients -> ceil(sqrt(4)) = 2 columns, 2 rows, evenly split.
	for _, c := range cs {
		assert.Equal(t, uint16(500), geoms[c].W)
		assert.Equal(t, uint16(400), geoms[c].H)
	}
	assert.Equal(t, int16(0), geoms[cs[0]].X)
	assert.Equal(t, int16(500), geoms[cs[1]].X)
	assert.Equal(t, int16(0), geoms[cs[2]].X)
	assert.Equal(t, int16(400), geoms[cs[2]].Y)
}

func TestArrangeGrid_ThreeClientsLastRowStretches(t *testing.T) {
	work := Rect{X: 0, Y: 0, W: 900, H: 800}
	cs := clientsN(3)
	// ceil(sqrt(3)) = 2 columns, 2 rows; last row has 1 cell that stretches
	// to the full row width instead of half.
	geoms := arrangeGrid(work, cs, GapConfig{}, 0.5, 1)
	assert.Equal(t, uint16(900), geoms[cs[2]].W)
}

func TestArrangeNormie_NeverPositionsClients(t *testing.T) {
	work := Rect{X: 0, Y: 0, W: 1000, H: 800}
	cs := clientsN(2)
	geoms := arrangeNormie(work, cs, GapConfig{}, 0.5, 1)
	assert.Empty(t, geoms)
}

func TestArrangeTabbed_AllClientsShareBodyBelowStrip(t *testing.T) {
	work := Rect{X: 0, Y: 0, W: 1000, H: 800}
	cs := clientsN(3)
	geoms := arrangeTabbed(work, cs, GapConfig{}, 0.5, 1)
	want := Rect{X: 0, Y: TabBarHeight, W: 1000, H: 800 - TabBarHeight}
	for _, c := range cs {
		assert.Equal(t, want, geoms[c])
	}
}

func TestTabTitles_PreservesOrder(t *testing.T) {
	cs := []*Client{{Title: "a"}, {Title: "b"}, {Title: "c"}}
	assert.Equal(t, []string{"a", "b", "c"}, tabTitles(cs))
}

func TestSubBorder_ShrinksByTwoBorders(t *testing.T) {
	assert.Equal(t, uint16(636), subBorder(640, 2))
}

func TestSubBorder_SaturatesAtZero(t *testing.T) {
	assert.Equal(t, uint16(0), subBorder(4, 10))
}

func TestArrangeGrid_WithGaps(t *testing.T) {
	work := Rect{X: 0, Y: 0, W: 1000, H: 800}
	gaps := GapConfig{Enabled: true, InnerH: 10, InnerV: 10, OuterH: 10, OuterV: 10}
	cs := clientsN(4)
	geoms := arrangeGrid(work, cs, gaps, 0.5, 1)
	// area shrinks by outer gaps on both sides: 1000-20=980, 800-20=780
	// 2 cols with one 10px inner gap: (980-10)/2 = 485
	assert.Equal(t, uint16(485), geoms[cs[0]].W)
}
