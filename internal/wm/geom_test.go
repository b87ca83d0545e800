package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Inset(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 50}
	got := r.Inset(10, 5)
	assert.Equal(t, Rect{X: 10, Y: 5, W: 80, H: 40}, got)
}

func TestRect_Inset_SaturatesAtZero(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	got := r.Inset(20, 20)
	assert.Equal(t, uint16(0), got.W)
	assert.Equal(t, uint16(0), got.H)
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 20}
	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(30, 30))
	assert.False(t, r.Contains(31, 10))
	assert.False(t, r.Contains(9, 10))
}

func TestRect_Eq(t *testing.T) {
	a := Rect{1, 2, 3, 4}
	b := Rect{1, 2, 3, 4}
	c := Rect{1, 2, 3, 5}
	assert.True(t, a.Eq(b))
	assert.False(t, a.Eq(c))
}

func TestRect_Empty(t *testing.T) {
	assert.True(t, Rect{W: 0, H: 10}.Empty())
	assert.True(t, Rect{W: 10, H: 0}.Empty())
	assert.False(t, Rect{W: 1, H: 1}.Empty())
}

func TestWorkArea_SubtractsBarFromTop(t *testing.T) {
	screen := Rect{X: 0, Y: 0, W: 1920, H: 1080}
	got := WorkArea(screen, 20, true)
	assert.Equal(t, Rect{X: 0, Y: 20, W: 1920, H: 1060}, got)
}

func TestWorkArea_NoBar(t *testing.T) {
	screen := Rect{X: 0, Y: 0, W: 1920, H: 1080}
	got := WorkArea(screen, 0, true)
	assert.Equal(t, screen, got)
}

func TestSplitMaster_SingleClientFillsWorkArea(t *testing.T) {
	work := Rect{X: 0, Y: 0, W: 1000, H: 800}
	master, stack := SplitMaster(work, 1, 0.5, 1, GapConfig{})
	assert.Equal(t, work, master)
	assert.Equal(t, Rect{}, stack)
}

func TestSplitMaster_SplitsByMasterFactor(t *testing.T) {
	work := Rect{X: 0, Y: 0, W: 1000, H: 800}
	master, stack := SplitMaster(work, 1, 0.6, 2, GapConfig{})
	assert.Equal(t, uint16(600), master.W)
	assert.Equal(t, uint16(400), stack.W)
	assert.Equal(t, int16(600), stack.X)
}

func TestSplitMaster_ZeroMasterGivesEverythingToStack(t *testing.T) {
	work := Rect{X: 0, Y: 0, W: 1000, H: 800}
	master, stack := SplitMaster(work, 0, 0.5, 3, GapConfig{})
	assert.Equal(t, Rect{}, master)
	assert.Equal(t, work, stack)
}

func TestCenterDistance(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 10, Y: 0, W: 10, H: 10}
	// centers at (5,5) and (15,5) -> distance 10
	assert.Equal(t, 10.0, CenterDistance(a, b))
}
