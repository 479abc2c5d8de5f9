package tui

import "github.com/famdash/famdash/internal/dial"

type pointerSub struct {
	move func(dial.Point)
	up   func()
}

// pointerHub fans screen-wide mouse motion and release out to whichever dial
// is dragging. It implements dial.PointerSource.
type pointerHub struct {
	next int
	subs map[int]pointerSub
}

func newPointerHub() *pointerHub {
	return &pointerHub{subs: make(map[int]pointerSub)}
}

// Subscribe registers move/up callbacks. The returned release func is
// idempotent.
func (h *pointerHub) Subscribe(move func(dial.Point), up func()) func() {
	id := h.next
	h.next++
	h.subs[id] = pointerSub{move: move, up: up}
	return func() { delete(h.subs, id) }
}

// Active reports how many subscriptions are live.
func (h *pointerHub) Active() int { return len(h.subs) }

// Move delivers a pointer position to every subscriber.
func (h *pointerHub) Move(p dial.Point) {
	for _, s := range h.snapshot() {
		s.move(p)
	}
}

// Up delivers a pointer release. Subscribers usually release themselves in
// response, so iteration works on a copy.
func (h *pointerHub) Up() {
	for _, s := range h.snapshot() {
		s.up()
	}
}

func (h *pointerHub) snapshot() []pointerSub {
	out := make([]pointerSub, 0, len(h.subs))
	for _, s := range h.subs {
		out = append(out, s)
	}
	return out
}
