package sim

// observers is an ordered subscriber list. Notification order is registration
// order; removing a subscriber keeps the order of the rest.
type observers[F any] struct {
	nextID  uint64
	entries []observerEntry[F]
}

type observerEntry[F any] struct {
	id uint64
	fn F
}

// add registers fn and returns a function that removes it again.
// Calling the returned function more than once is a no-op.
func (o *observers[F]) add(fn F) func() {
	o.nextID++
	id := o.nextID
	o.entries = append(o.entries, observerEntry[F]{id: id, fn: fn})
	return func() { o.remove(id) }
}

func (o *observers[F]) remove(id uint64) {
	for i, e := range o.entries {
		if e.id == id {
			o.entries = append(o.entries[:i], o.entries[i+1:]...)
			return
		}
	}
}

// each calls visit for every subscriber in order. The list is snapshotted first
// so subscribers may unsubscribe while being notified.
func (o *observers[F]) each(visit func(F)) {
	if len(o.entries) == 0 {
		return
	}
	snapshot := make([]observerEntry[F], len(o.entries))
	copy(snapshot, o.entries)
	for _, e := range snapshot {
		visit(e.fn)
	}
}

func (o *observers[F]) len() int {
	return len(o.entries)
}

func (o *observers[F]) clear() {
	o.entries = nil
}
