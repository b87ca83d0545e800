// Package wm implements the core of oxwm: the X11 event loop, client and
// monitor bookkeeping, the layout engine, the status bar, and the keyboard
// dispatcher. It owns the X connection and is not safe to drive from more
// than one goroutine at a time; see Run.
package wm
