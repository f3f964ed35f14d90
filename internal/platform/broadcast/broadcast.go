// Package broadcast fans values out to in-process subscribers.
//
// Every subscriber owns a one-slot channel. Publishing never blocks: when a
// subscriber has not consumed its pending value, the pending value is replaced
// by the newer one.
package broadcast

import "sync"

type Subscription[T any] struct {
	C <-chan T

	ch     chan T
	once   sync.Once
	cancel func()
}

// Close unsubscribes and closes C. Safe to call more than once.
func (s *Subscription[T]) Close() {
	s.once.Do(s.cancel)
}

type hub[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]chan T
}

func (h *hub[T]) subscribeLocked() *Subscription[T] {
	if h.subs == nil {
		h.subs = map[uint64]chan T{}
	}
	h.nextID++
	id := h.nextID
	ch := make(chan T, 1)
	h.subs[id] = ch
	return &Subscription[T]{
		C:  ch,
		ch: ch,
		cancel: func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(ch)
			}
		},
	}
}

func (h *hub[T]) fanOutLocked(v T) {
	for _, ch := range h.subs {
		offer(ch, v)
	}
}

func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}

// Notifier delivers one-shot events. A subscriber only sees events published after it subscribed.
type Notifier[T any] struct {
	h hub[T]
}

func NewNotifier[T any]() *Notifier[T] {
	return &Notifier[T]{}
}

func (n *Notifier[T]) Subscribe() *Subscription[T] {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	return n.h.subscribeLocked()
}

func (n *Notifier[T]) Publish(v T) {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	n.h.fanOutLocked(v)
}

func (n *Notifier[T]) Subscribers() int {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	return len(n.h.subs)
}

// Value is an observable holding the last committed value; new subscribers receive it immediately.
type Value[T any] struct {
	h       hub[T]
	current T
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

func (v *Value[T]) Get() T {
	v.h.mu.Lock()
	defer v.h.mu.Unlock()
	return v.current
}

func (v *Value[T]) Subscribe() *Subscription[T] {
	v.h.mu.Lock()
	defer v.h.mu.Unlock()
	sub := v.h.subscribeLocked()
	sub.ch <- v.current
	return sub
}

func (v *Value[T]) Publish(next T) {
	v.h.mu.Lock()
	defer v.h.mu.Unlock()
	v.current = next
	v.h.fanOutLocked(next)
}
