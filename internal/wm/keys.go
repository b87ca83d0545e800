package wm

import (
	"time"

	"github.com/BurntSushi/xgb/xproto"
	log "github.com/sirupsen/logrus"

	"github.com/xsoder/oxwm/internal/config"
)

// chordTimeout is how long a chord in progress waits for its next step
// before it cancels back to idle.
const chordTimeout = 3 * time.Second

// bindKey is the reverse-table lookup key: stripped modifier mask plus
// keycode.
type bindKey struct {
	mods uint16
	code xproto.Keycode
}

// chordState tracks the keyboard dispatcher's progress through a
// multi-step binding: idle when active is false, otherwise mid-chord at
// step with the set of bindings still able to fire.
type chordState struct {
	active     bool
	step       int
	candidates []*config.KeyBinding
	deadline   time.Time
}

const escapeKeysym = 0xff1b

// loadKeyboardMapping reads the full keycode->keysym table and locates
// which modifier bit Num_Lock is bound to.
func (wm *WM) loadKeyboardMapping() error {
	const keyLo, keyHi = 8, 255
	km, err := xproto.GetKeyboardMapping(wm.conn, keyLo, keyHi-keyLo+1).Reply()
	if err != nil {
		return err
	}
	n := int(km.KeysymsPerKeycode)
	if n < 1 {
		return &startupError{msg: "too few keysyms per keycode"}
	}
	for i := keyLo; i <= keyHi; i++ {
		wm.keysyms[i][0] = km.Keysyms[(i-keyLo)*n+0]
		if n > 1 {
			wm.keysyms[i][1] = km.Keysyms[(i-keyLo)*n+1]
		}
	}
	wm.numLockMask = wm.findNumLockMask()
	return nil
}

// findNumLockMask locates which ModMask bit the modifier map assigns to
// Num_Lock, so grabConfiguredKeys can grab every lock-state combination.
func (wm *WM) findNumLockMask() uint16 {
	mm, err := xproto.GetModifierMapping(wm.conn).Reply()
	if err != nil {
		return 0
	}
	const numLockKeysym = 0xff7f
	perMod := int(mm.KeycodesPerModifier)
	for modIndex := 0; modIndex < 8; modIndex++ {
		for j := 0; j < perMod; j++ {
			kc := mm.Keycodes[modIndex*perMod+j]
			if kc == 0 {
				continue
			}
			if wm.keysyms[kc][0] == numLockKeysym || wm.keysyms[kc][1] == numLockKeysym {
				return 1 << modIndex
			}
		}
	}
	return 0
}

func (wm *WM) keycodeForKeysym(sym uint32) (xproto.Keycode, bool) {
	for i := 8; i <= 255; i++ {
		if uint32(wm.keysyms[i][0]) == sym || uint32(wm.keysyms[i][1]) == sym {
			return xproto.Keycode(i), true
		}
	}
	return 0, false
}

// buildBindingTables populates the reverse (mod, keycode) -> binding table:
// single-step bindings map directly; chords are indexed by their first
// step only. A grab conflict (same key claimed twice) logs and lets the
// last-registered binding win.
func (wm *WM) buildBindingTables() {
	wm.bindings = map[bindKey]*config.KeyBinding{}
	wm.chordFirstSteps = map[bindKey][]*config.KeyBinding{}

	for i := range wm.cfg.Bindings {
		kb := &wm.cfg.Bindings[i]
		code, ok := wm.keycodeForKeysym(kb.Steps[0].Keysym)
		if !ok {
			log.WithField("component", "keys").Warnf("no keycode for keysym 0x%x", kb.Steps[0].Keysym)
			continue
		}
		key := bindKey{mods: kb.Steps[0].Mods, code: code}
		if kb.IsChord() {
			wm.chordFirstSteps[key] = append(wm.chordFirstSteps[key], kb)
			continue
		}
		if _, exists := wm.bindings[key]; exists {
			log.WithField("component", "keys").Warnf("binding conflict on mods=%d code=%d; last registration wins", key.mods, key.code)
		}
		wm.bindings[key] = kb
	}
}

// lockMaskCombinations returns every combination of the lock modifiers
// (NumLock, CapsLock) a grab needs to also match when they happen to be on.
func (wm *WM) lockMaskCombinations() []uint16 {
	locks := []uint16{0, xproto.ModMaskLock}
	if wm.numLockMask != 0 {
		locks = append(locks, wm.numLockMask, wm.numLockMask|xproto.ModMaskLock)
	}
	return locks
}

// grabConfiguredKeys issues XGrabKey for every configured single-step
// binding and every chord's first step, across every lock-mask combination.
func (wm *WM) grabConfiguredKeys() {
	all := map[bindKey]bool{}
	for k := range wm.bindings {
		all[k] = true
	}
	for k := range wm.chordFirstSteps {
		all[k] = true
	}
	for k := range all {
		for _, lock := range wm.lockMaskCombinations() {
			_ = xproto.GrabKeyChecked(wm.conn, true, wm.root, k.mods|lock, k.code,
				xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
		}
	}
}

// regrabKeys re-issues every grab; called on MappingNotify, when the
// server's keyboard mapping has changed under us.
func (wm *WM) regrabKeys() {
	_ = xproto.UngrabKeyChecked(wm.conn, xproto.GrabAny, wm.root, xproto.ModMaskAny).Check()
	if err := wm.loadKeyboardMapping(); err != nil {
		log.WithField("component", "keys").Errorf("reload keyboard mapping: %v", err)
		return
	}
	wm.buildBindingTables()
	wm.grabConfiguredKeys()
}

func stripLocks(mods, numLockMask uint16) uint16 {
	return mods &^ (xproto.ModMaskLock | numLockMask | xproto.ModMask2)
}

// handleKeyPress drives the idle/chord state machine: fire a matching
// single-step binding immediately, or enter a chord if the key starts one.
func (wm *WM) handleKeyPress(e xproto.KeyPressEvent) {
	mods := stripLocks(e.State, wm.numLockMask)
	key := bindKey{mods: mods, code: e.Detail}

	if wm.chord.active {
		wm.handleChordKey(e, key)
		return
	}

	if kb, ok := wm.bindings[key]; ok {
		wm.fireAction(kb.Action)
		return
	}
	if candidates, ok := wm.chordFirstSteps[key]; ok {
		wm.enterChord(candidates)
	}
}

func (wm *WM) enterChord(candidates []*config.KeyBinding) {
	wm.chord = chordState{active: true, step: 1, candidates: candidates, deadline: nowDeadline(chordTimeout)}
	_, _ = xproto.GrabKeyboard(wm.conn, false, wm.root, xproto.TimeCurrentTime,
		xproto.GrabModeAsync, xproto.GrabModeAsync).Reply()
}

func (wm *WM) cancelChord() {
	wm.chord = chordState{}
	_ = xproto.UngrabKeyboardChecked(wm.conn, xproto.TimeCurrentTime).Check()
}

func (wm *WM) handleChordKey(e xproto.KeyPressEvent, key bindKey) {
	sym := wm.keysymFor(e.Detail, e.State)
	if isChordCancelKey(sym, key.mods) {
		wm.cancelChord()
		return
	}

	next := wm.chord.step + 1
	matched, fired := matchChordStep(wm.chord.candidates, next, key, wm.keycodeForKeysym)

	if fired != nil {
		wm.cancelChord()
		wm.fireAction(fired.Action)
		return
	}
	if len(matched) > 0 {
		wm.chord.step = next
		wm.chord.candidates = matched
		wm.chord.deadline = nowDeadline(chordTimeout)
		return
	}
	wm.cancelChord()
}

// isChordCancelKey reports whether the given keysym/modifier pair is the
// bare Escape that aborts a chord in progress.
func isChordCancelKey(sym uint32, mods uint16) bool {
	return sym == escapeKeysym && mods == 0
}

// matchChordStep filters candidates to those whose step-th binding matches
// key, and reports the one (if any) that has just completed its last step.
// keycodeFor resolves a keysym to the keycode that would generate it.
func matchChordStep(candidates []*config.KeyBinding, step int, key bindKey, keycodeFor func(uint32) (xproto.Keycode, bool)) (matched []*config.KeyBinding, fired *config.KeyBinding) {
	for _, c := range candidates {
		if step > len(c.Steps) {
			continue
		}
		s := c.Steps[step-1]
		if s.Mods != key.mods {
			continue
		}
		code, ok := keycodeFor(s.Keysym)
		if !ok || code != key.code {
			continue
		}
		matched = append(matched, c)
		if step == len(c.Steps) {
			fired = c
		}
	}
	return matched, fired
}

func (wm *WM) keysymFor(code xproto.Keycode, state uint16) uint32 {
	shift := 0
	if state&xproto.ModMaskShift != 0 {
		shift = 1
	}
	return uint32(wm.keysyms[code][shift])
}

// chordExpired reports whether an active chord has sat past its deadline
// without a next step arriving.
func chordExpired(chord chordState, now time.Time) bool {
	return chord.active && now.After(chord.deadline)
}

// checkChordTimeout cancels a chord that has timed out; checked once per
// event-loop iteration.
func (wm *WM) checkChordTimeout() {
	if chordExpired(wm.chord, time.Now()) {
		wm.cancelChord()
	}
}
