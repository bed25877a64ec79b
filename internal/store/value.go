package store

import "sync"

// Unsubscribe removes a subscription. Calling it more than once is a no-op.
type Unsubscribe func()

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Value is an observable container for a single value.
//
// Subscribers are called synchronously, in subscription order. Callbacks run
// outside the internal lock, so a subscriber may call Set on the same Value.
// Such a nested Set updates the value at once but its notifications are
// queued and delivered after the current round, so every subscriber sees the
// values in the order they were set and ends on the latest one. A Set that
// arrives from another goroutine while a round is running is queued the same
// way and delivered by the goroutine already notifying.
type Value[T any] struct {
	mu        sync.Mutex
	value     T
	nextID    uint64
	subs      []subscriber[T]
	pending   []notification[T]
	notifying bool
}

type notification[T any] struct {
	subs  []subscriber[T]
	value T
}

// NewValue creates a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Set replaces the current value and notifies every active subscriber.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.value = value
	subs := make([]subscriber[T], len(v.subs))
	copy(subs, v.subs)
	v.pending = append(v.pending, notification[T]{subs: subs, value: value})
	if v.notifying {
		v.mu.Unlock()
		return
	}
	v.notifying = true
	v.mu.Unlock()

	v.drain()
}

// drain delivers queued notifications until none are left. A panicking
// subscriber drops the rest of the queue.
func (v *Value[T]) drain() {
	defer func() {
		v.mu.Lock()
		v.pending = nil
		v.notifying = false
		v.mu.Unlock()
	}()

	for {
		v.mu.Lock()
		if len(v.pending) == 0 {
			v.mu.Unlock()
			return
		}
		next := v.pending[0]
		v.pending = v.pending[1:]
		v.mu.Unlock()

		for _, s := range next.subs {
			s.fn(next.value)
		}
	}
}

// Update sets the value to fn applied to the current value.
func (v *Value[T]) Update(fn func(T) T) {
	v.Set(fn(v.Get()))
}

// Subscribe registers fn for future changes and calls it once right away
// with the current value.
func (v *Value[T]) Subscribe(fn func(T)) Unsubscribe {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs = append(v.subs, subscriber[T]{id: id, fn: fn})
	current := v.value
	v.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { v.remove(id) })
	}
}

// Subscribers returns the number of active subscriptions.
func (v *Value[T]) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

func (v *Value[T]) remove(id uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, s := range v.subs {
		if s.id == id {
			v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
			return
		}
	}
}
