// Package future provides one-shot readiness signals for code running on a
// single cooperative event loop.
//
// A Future is resolved at most once. Callbacks registered with Then run
// synchronously, in registration order, on the goroutine that calls Resolve,
// or immediately when the future has already resolved. Futures are not safe
// for concurrent use; the owning event loop serializes all access.
package future

// Future is a one-shot signal that something became ready.
type Future struct {
	resolved  bool
	callbacks []func()
}

// New returns an unresolved future.
func New() *Future {
	return &Future{}
}

// Resolved returns a future that has already resolved.
func Resolved() *Future {
	return &Future{resolved: true}
}

// Resolve marks the future ready and runs pending callbacks. Calls after the
// first one have no effect.
func (f *Future) Resolve() {
	if f.resolved {
		return
	}
	f.resolved = true
	callbacks := f.callbacks
	f.callbacks = nil
	for _, fn := range callbacks {
		fn()
	}
}

// IsResolved reports whether Resolve has been called.
func (f *Future) IsResolved() bool {
	return f.resolved
}

// Then registers fn to run once the future resolves and returns f so calls
// can be chained.
func (f *Future) Then(fn func()) *Future {
	if f.resolved {
		fn()
		return f
	}
	f.callbacks = append(f.callbacks, fn)
	return f
}

// All returns a future that resolves after every given future has resolved.
// With no arguments it is already resolved.
func All(futures ...*Future) *Future {
	pending := len(futures)
	if pending == 0 {
		return Resolved()
	}
	joined := New()
	for _, f := range futures {
		f.Then(func() {
			pending--
			if pending == 0 {
				joined.Resolve()
			}
		})
	}
	return joined
}
