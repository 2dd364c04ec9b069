package frame

import (
	"sync"

	"github.com/san-kum/crowdmorph/internal/interact"
)

// Bus is a Surface for backends that poll their input: they call Emit for
// every event they translate, and SetSize when the drawable area changes.
type Bus struct {
	mu        sync.Mutex
	w, h      int
	nextID    int
	listeners map[int]func(interact.Event)
}

func NewBus(w, h int) *Bus {
	return &Bus{w: w, h: h, listeners: make(map[int]func(interact.Event))}
}

func (b *Bus) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.w, b.h
}

// SetSize records the new size and emits interact.Resize when it changed.
func (b *Bus) SetSize(w, h int) {
	b.mu.Lock()
	changed := w != b.w || h != b.h
	b.w, b.h = w, h
	b.mu.Unlock()
	if changed {
		b.Emit(interact.Resize{Width: w, Height: h})
	}
}

func (b *Bus) Subscribe(fn func(interact.Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// Emit delivers ev to every listener in subscription order.
func (b *Bus) Emit(ev interact.Event) {
	b.mu.Lock()
	fns := make([]func(interact.Event), 0, len(b.listeners))
	for id := 0; id < b.nextID; id++ {
		if fn, ok := b.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (b *Bus) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
