package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xsoder/oxwm/internal/config"
)

func TestArgInt(t *testing.T) {
	assert.Equal(t, 3, argInt(3))
	assert.Equal(t, int(config.DirLeft), argInt(config.DirLeft))
	assert.Equal(t, 0, argInt("nonsense"))
}

func TestSwapInList(t *testing.T) {
	a, b, c := &Client{}, &Client{}, &Client{}
	list := []*Client{a, b, c}
	swapInList(list, a, c)
	assert.Equal(t, []*Client{c, b, a}, list)
}

func TestSwapInList_MissingElementIsNoop(t *testing.T) {
	a, b := &Client{}, &Client{}
	missing := &Client{}
	list := []*Client{a, b}
	swapInList(list, a, missing)
	assert.Equal(t, []*Client{a, b}, list)
}

func TestNearestInDirection_PicksClosestInHalfPlane(t *testing.T) {
	from := &Client{X: 100, Y: 100, W: 10, H: 10}
	near := &Client{X: 120, Y: 100, W: 10, H: 10}  // to the right, close
	far := &Client{X: 500, Y: 100, W: 10, H: 10}   // to the right, far
	wrong := &Client{X: 50, Y: 100, W: 10, H: 10}  // to the left, excluded

	m := &Monitor{Clients: []*Client{from, near, far, wrong}, SelTags: 1}
	from.TagMask, near.TagMask, far.TagMask, wrong.TagMask = 1, 1, 1, 1

	got := nearestInDirection(m, from, config.DirRight)
	assert.Equal(t, near, got)
}

func TestNearestInDirection_NoneInDirectionReturnsNil(t *testing.T) {
	from := &Client{X: 100, Y: 100, W: 10, H: 10, TagMask: 1}
	left := &Client{X: 50, Y: 100, W: 10, H: 10, TagMask: 1}
	m := &Monitor{Clients: []*Client{from, left}, SelTags: 1}

	got := nearestInDirection(m, from, config.DirRight)
	assert.Nil(t, got)
}

func TestActionName_KnownAndUnknown(t *testing.T) {
	assert.Equal(t, "Spawn", actionName(config.ActionSpawn))
	assert.Equal(t, "MoveToMonitor", actionName(config.ActionMoveToMonitor))
	assert.Equal(t, "Unknown", actionName(config.ActionKind(999)))
}

func TestOverlayLines_SortedByActionName(t *testing.T) {
	bindings := []config.KeyBinding{
		{Action: config.Action{Kind: config.ActionQuit}},
		{Action: config.Action{Kind: config.ActionKillClient}},
	}
	got := overlayLines(bindings)
	assert.Equal(t, []string{"KillClient", "Quit"}, got)
}
