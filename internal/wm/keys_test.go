package wm

import (
	"testing"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"

	"github.com/xsoder/oxwm/internal/config"
)

func TestStripLocks_RemovesLockAndNumLockBits(t *testing.T) {
	const numLockMask = uint16(1 << 4)
	mods := xproto.ModMask1 | xproto.ModMaskLock | numLockMask
	assert.Equal(t, uint16(xproto.ModMask1), stripLocks(mods, numLockMask))
}

func TestStripLocks_NoLocksIsUnchanged(t *testing.T) {
	mods := uint16(xproto.ModMask1 | xproto.ModMaskShift)
	assert.Equal(t, mods, stripLocks(mods, 0))
}

func TestIsChordCancelKey(t *testing.T) {
	assert.True(t, isChordCancelKey(escapeKeysym, 0))
	assert.False(t, isChordCancelKey(escapeKeysym, xproto.ModMask1))
	assert.False(t, isChordCancelKey(0x61, 0))
}

func fakeKeycodeFor(table map[uint32]xproto.Keycode) func(uint32) (xproto.Keycode, bool) {
	return func(sym uint32) (xproto.Keycode, bool) {
		code, ok := table[sym]
		return code, ok
	}
}

func TestMatchChordStep_NoMatchCancelsEverything(t *testing.T) {
	candidates := []*config.KeyBinding{
		{Steps: []config.KeyStep{{Mods: 0, Keysym: 'a'}, {Mods: 0, Keysym: 'b'}}},
	}
	keycodeFor := fakeKeycodeFor(map[uint32]xproto.Keycode{'a': 38, 'b': 56})

	matched, fired := matchChordStep(candidates, 2, bindKey{mods: 0, code: 99}, keycodeFor)
	assert.Empty(t, matched)
	assert.Nil(t, fired)
}

func TestMatchChordStep_PrefixMatchAdvancesWithoutFiring(t *testing.T) {
	candidates := []*config.KeyBinding{
		{Steps: []config.KeyStep{{Mods: 0, Keysym: 'a'}, {Mods: 0, Keysym: 'b'}}},
		{Steps: []config.KeyStep{{Mods: 0, Keysym: 'a'}, {Mods: 0, Keysym: 'c'}}},
	}
	keycodeFor := fakeKeycodeFor(map[uint32]xproto.Keycode{'b': 56, 'c': 54})

	matched, fired := matchChordStep(candidates, 2, bindKey{mods: 0, code: 56}, keycodeFor)
	assert.Len(t, matched, 1)
	assert.Same(t, candidates[0], matched[0])
	assert.Nil(t, fired)
}

func TestMatchChordStep_FinalStepFires(t *testing.T) {
	target := &config.KeyBinding{Steps: []config.KeyStep{{Mods: 0, Keysym: 'a'}, {Mods: 0, Keysym: 'b'}}}
	candidates := []*config.KeyBinding{target}
	keycodeFor := fakeKeycodeFor(map[uint32]xproto.Keycode{'b': 56})

	matched, fired := matchChordStep(candidates, 2, bindKey{mods: 0, code: 56}, keycodeFor)
	assert.Len(t, matched, 1)
	assert.Same(t, target, fired)
}

func TestMatchChordStep_StepBeyondCandidateLengthIsSkipped(t *testing.T) {
	candidates := []*config.KeyBinding{
		{Steps: []config.KeyStep{{Mods: 0, Keysym: 'a'}}},
	}
	keycodeFor := fakeKeycodeFor(nil)

	matched, fired := matchChordStep(candidates, 2, bindKey{mods: 0, code: 1}, keycodeFor)
	assert.Empty(t, matched)
	assert.Nil(t, fired)
}

func TestChordExpired(t *testing.T) {
	now := time.Unix(1700000000, 0)
	expired := chordState{active: true, deadline: now.Add(-time.Second)}
	notYet := chordState{active: true, deadline: now.Add(time.Second)}
	idle := chordState{active: false, deadline: now.Add(-time.Hour)}

	assert.True(t, chordExpired(expired, now))
	assert.False(t, chordExpired(notYet, now))
	assert.False(t, chordExpired(idle, now))
}
