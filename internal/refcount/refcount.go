// Package refcount provides shared-ownership handles for native objects.
//
// A Handle is one owner's reference. Clone creates another owner, Release
// drops this owner exactly once. Two counting modes exist:
//
//   - Counted: the count lives in Go and the release function runs when the
//     last handle is released (plain C objects such as PangoFontDescription,
//     or pure-Go objects that hold pooled resources).
//   - Native: the object carries its own count (GObject, COM). Every Clone
//     forwards to retain and every Release forwards to release; the Go side
//     only guards against releasing the same handle twice.
package refcount

import "sync/atomic"

type shared[T any] struct {
	value   T
	refs    atomic.Int64
	retain  func(T)
	release func(T)
	native  bool
}

// Handle is one reference to a shared value.
// The zero Handle is not valid; use New or NewNative.
type Handle[T any] struct {
	s        *shared[T]
	released atomic.Bool
}

// New returns the first handle to v. release runs once, when the last handle
// derived from this one is released. release may be nil.
func New[T any](v T, release func(T)) *Handle[T] {
	s := &shared[T]{value: v, release: release}
	s.refs.Store(1)
	return &Handle[T]{s: s}
}

// NewNative returns the first handle to an object that counts its own
// references. The caller's existing reference is adopted, so retain is not
// called here. retain and release may be nil.
func NewNative[T any](v T, retain, release func(T)) *Handle[T] {
	s := &shared[T]{value: v, retain: retain, release: release, native: true}
	s.refs.Store(1)
	return &Handle[T]{s: s}
}

// Value returns the shared value. Using the value of a released handle is a
// caller error.
func (h *Handle[T]) Value() T {
	return h.s.value
}

// Clone returns a new handle sharing the same value.
// Cloning a released handle panics.
func (h *Handle[T]) Clone() *Handle[T] {
	if h.released.Load() {
		panic("refcount: clone of released handle")
	}
	h.s.refs.Add(1)
	if h.s.native && h.s.retain != nil {
		h.s.retain(h.s.value)
	}
	return &Handle[T]{s: h.s}
}

// Release drops this handle's reference. It reports whether this call
// released the last reference. Releasing a handle twice is a no-op.
func (h *Handle[T]) Release() bool {
	if !h.released.CompareAndSwap(false, true) {
		return false
	}
	last := h.s.refs.Add(-1) == 0
	switch {
	case h.s.native:
		if h.s.release != nil {
			h.s.release(h.s.value)
		}
	case last:
		if h.s.release != nil {
			h.s.release(h.s.value)
		}
	}
	return last
}

// Released reports whether this handle has been released.
func (h *Handle[T]) Released() bool {
	return h.released.Load()
}

// Refs returns the number of live handles sharing the value.
func (h *Handle[T]) Refs() int64 {
	return h.s.refs.Load()
}

// Same reports whether h and o share the same value.
func (h *Handle[T]) Same(o *Handle[T]) bool {
	return h != nil && o != nil && h.s == o.s
}
