package scrollstage

// Subscription is the handle returned for every registered listener. Cancel
// detaches the listener; once Cancel returns the callback never fires again,
// even if the cancel happens in the middle of a dispatch.
type Subscription struct {
	cancel func()
	done   bool
}

// Cancel detaches the listener. Calling it more than once is a no-op; the
// owners that must not be released twice (bindings, activations, mounts)
// enforce that themselves.
func (s *Subscription) Cancel() {
	if s == nil || s.done {
		return
	}
	s.done = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Active reports whether the listener is still attached.
func (s *Subscription) Active() bool {
	return s != nil && !s.done
}

type listener[T any] struct {
	fn  func(T)
	sub *Subscription
}

// listenerList is an ordered callback list that tolerates additions and
// cancellations while it is being emitted. Listeners added during an emit
// are not called until the next one.
type listenerList[T any] struct {
	items   []*listener[T]
	scratch []*listener[T]
}

func (l *listenerList[T]) add(fn func(T)) *Subscription {
	ln := &listener[T]{fn: fn}
	ln.sub = &Subscription{}
	ln.sub.cancel = func() { l.remove(ln) }
	l.items = append(l.items, ln)
	return ln.sub
}

func (l *listenerList[T]) remove(ln *listener[T]) {
	for i, it := range l.items {
		if it == ln {
			copy(l.items[i:], l.items[i+1:])
			l.items[len(l.items)-1] = nil
			l.items = l.items[:len(l.items)-1]
			return
		}
	}
}

func (l *listenerList[T]) emit(v T) {
	if len(l.items) == 0 {
		return
	}
	// Emits can nest (a scroll listener may set a source value); each level
	// gets its own snapshot.
	snap := append(l.scratch[:0], l.items...)
	l.scratch = nil
	for _, ln := range snap {
		if ln.sub.done {
			continue
		}
		ln.fn(v)
	}
	clear(snap)
	l.scratch = snap[:0]
}

func (l *listenerList[T]) len() int {
	return len(l.items)
}
