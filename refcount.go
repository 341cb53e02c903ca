package kcore

import "sync/atomic"

// refCount is the shared-ownership primitive from spec.md §4.A, embedded
// uniformly in Topic, Partition, and Broker. keep increments; drop
// decrements and, on reaching zero, runs destroy exactly once. Neither
// operation holds a lock: refcounts are atomic, per spec.md §5's
// shared-resource policy.
type refCount struct {
	n       int64
	destroy func()
}

// newRefCount returns a refCount starting at one reference (the caller's
// own) with destroy wired to run when the last reference drops.
func newRefCount(destroy func()) refCount {
	return refCount{n: 1, destroy: destroy}
}

func (r *refCount) keep() {
	atomic.AddInt64(&r.n, 1)
}

func (r *refCount) drop() {
	if atomic.AddInt64(&r.n, -1) == 0 {
		r.destroy()
	}
}

// refs reports the current reference count. Exposed for tests only; the
// _get() family of accessors never leaks raw counts to callers outside
// this package (spec.md §9).
func (r *refCount) refs() int64 {
	return atomic.LoadInt64(&r.n)
}
