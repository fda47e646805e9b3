package refcount

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestCountedReleaseOnce(t *testing.T) {
	var released int
	h := New("layout", func(string) { released++ })
	a := h.Clone()
	b := a.Clone()

	if h.Refs() != 3 {
		t.Fatalf("Refs() = %d, want 3", h.Refs())
	}

	if h.Release() {
		t.Error("first release should not be last")
	}
	if h.Release() {
		t.Error("double release should be a no-op")
	}
	if b.Release() {
		t.Error("second release should not be last")
	}
	if released != 0 {
		t.Fatalf("released early: %d", released)
	}
	if !a.Release() {
		t.Error("final release should report last")
	}
	if released != 1 {
		t.Errorf("release ran %d times, want 1", released)
	}
	if a.Release() {
		t.Error("release after last should be a no-op")
	}
	if released != 1 {
		t.Errorf("release ran %d times after double release, want 1", released)
	}
}

func TestNativeForwardsEveryCall(t *testing.T) {
	type object struct{ refs int }
	obj := &object{refs: 1}
	retain := func(o *object) { o.refs++ }
	release := func(o *object) { o.refs-- }

	h := NewNative(obj, retain, release)
	c := h.Clone()
	if obj.refs != 2 {
		t.Fatalf("native refs after clone = %d, want 2", obj.refs)
	}

	h.Release()
	h.Release()
	if obj.refs != 1 {
		t.Fatalf("native refs after double release = %d, want 1", obj.refs)
	}
	if !c.Release() {
		t.Error("last release should report last")
	}
	if obj.refs != 0 {
		t.Errorf("native refs = %d, want 0", obj.refs)
	}
}

func TestCloneReleasedPanics(t *testing.T) {
	h := New(1, nil)
	h.Release()

	defer func() {
		if recover() == nil {
			t.Error("Clone of released handle should panic")
		}
	}()
	h.Clone()
}

func TestSame(t *testing.T) {
	h := New(1, nil)
	c := h.Clone()
	o := New(1, nil)
	if !h.Same(c) {
		t.Error("clone should share value")
	}
	if h.Same(o) {
		t.Error("independent handles should not share value")
	}
	if h.Same(nil) {
		t.Error("nil handle should not match")
	}
}

func TestConcurrentRelease(t *testing.T) {
	var released atomic.Int32
	h := New(struct{}{}, func(struct{}) { released.Add(1) })

	const n = 64
	clones := make([]*Handle[struct{}], n)
	for i := range clones {
		clones[i] = h.Clone()
	}
	h.Release()

	var wg sync.WaitGroup
	for _, c := range clones {
		c := c
		wg.Add(2)
		go func() { defer wg.Done(); c.Release() }()
		go func() { defer wg.Done(); c.Release() }()
	}
	wg.Wait()

	if got := released.Load(); got != 1 {
		t.Errorf("release ran %d times, want 1", got)
	}
}
