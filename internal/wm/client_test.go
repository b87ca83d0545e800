package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveClient(t *testing.T) {
	a, b, c := &Client{}, &Client{}, &Client{}
	list := []*Client{a, b, c}
	got := removeClient(list, b)
	assert.Equal(t, []*Client{a, c}, got)
}

func TestRemoveClient_NotPresentIsNoop(t *testing.T) {
	a, b := &Client{}, &Client{}
	list := []*Client{a}
	got := removeClient(list, b)
	assert.Equal(t, []*Client{a}, got)
}

func TestRemoveClient_DoesNotAliasBackingArray(t *testing.T) {
	a, b := &Client{}, &Client{}
	list := []*Client{a, b}
	got := removeClient(list, b)
	got = append(got, &Client{})
	// mutating got must never clobber the original list's backing array
	assert.Equal(t, []*Client{a, b}, list)
}

func TestClient_Rect(t *testing.T) {
	c := &Client{X: 1, Y: 2, W: 3, H: 4}
	assert.Equal(t, Rect{X: 1, Y: 2, W: 3, H: 4}, c.Rect())
}

func TestClient_SetRect(t *testing.T) {
	c := &Client{}
	c.setRect(Rect{X: 5, Y: 6, W: 7, H: 8})
	assert.Equal(t, int16(5), c.X)
	assert.Equal(t, uint16(8), c.H)
}

func TestMonitor_VisibleClients_FiltersByTagMask(t *testing.T) {
	a := &Client{TagMask: 1}
	b := &Client{TagMask: 2}
	m := &Monitor{Clients: []*Client{a, b}, SelTags: 1}
	assert.Equal(t, []*Client{a}, m.visibleClients())
}

func TestMonitor_OccupiedTags_UnionsAllClientTags(t *testing.T) {
	m := &Monitor{Clients: []*Client{{TagMask: 1}, {TagMask: 4}}}
	assert.Equal(t, uint32(5), m.occupiedTags())
}

func TestMonitor_TopOfFocusStack_ReturnsFirstVisible(t *testing.T) {
	a := &Client{TagMask: 2}
	b := &Client{TagMask: 1}
	m := &Monitor{FocusStack: []*Client{a, b}}
	assert.Equal(t, b, m.topOfFocusStack(1))
}

func TestMonitor_TopOfFocusStack_NoneVisibleReturnsNil(t *testing.T) {
	m := &Monitor{FocusStack: []*Client{{TagMask: 2}}}
	assert.Nil(t, m.topOfFocusStack(1))
}
