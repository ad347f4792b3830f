package sim

import "container/heap"

// EventTag names the payload of a scheduled event.
type EventTag string

// EventGameOver is the tag of the delayed game-over declaration.
const EventGameOver EventTag = "game_over"

// Clock supplies the current simulation time.
type Clock interface {
	Now() float64
}

// ScheduledEvent is a one-shot deferred effect.
type ScheduledEvent struct {
	Tag      EventTag
	FireTime float64
	seq      uint64
	effect   func()
}

// EventScheduler is a simulation-time priority queue. Events fire in fire-time
// order; events sharing a fire time fire in insertion order.
type EventScheduler struct {
	clock   Clock
	now     float64
	nextSeq uint64
	queue   eventQueue
}

// NewEventScheduler creates a scheduler that reads "now" from clock when
// scheduling. A nil clock falls back to the time of the last Tick.
func NewEventScheduler(clock Clock) *EventScheduler {
	return &EventScheduler{clock: clock}
}

// Now returns the time used as the base for new events.
func (s *EventScheduler) Now() float64 {
	if s.clock != nil {
		return s.clock.Now()
	}
	return s.now
}

// Schedule queues effect to run delay seconds from now. Negative delays are
// treated as zero.
func (s *EventScheduler) Schedule(tag EventTag, delay float64, effect func()) ScheduledEvent {
	if delay < 0 {
		delay = 0
	}
	ev := &ScheduledEvent{
		Tag:      tag,
		FireTime: s.Now() + delay,
		seq:      s.nextSeq,
		effect:   effect,
	}
	s.nextSeq++
	heap.Push(&s.queue, ev)
	return *ev
}

// Tick fires every event whose fire time is <= now and returns how many fired.
// An effect may schedule further events; those already due fire in this call.
func (s *EventScheduler) Tick(now float64) int {
	s.now = now
	fired := 0
	for s.queue.Len() > 0 && s.queue[0].FireTime <= now {
		ev := heap.Pop(&s.queue).(*ScheduledEvent)
		if ev.effect != nil {
			ev.effect()
		}
		fired++
	}
	return fired
}

// Pending returns the number of events waiting to fire.
func (s *EventScheduler) Pending() int {
	return s.queue.Len()
}

// Peek returns the next event to fire, if any.
func (s *EventScheduler) Peek() (ScheduledEvent, bool) {
	if s.queue.Len() == 0 {
		return ScheduledEvent{}, false
	}
	return *s.queue[0], true
}

// Clear drops every pending event and rewinds the fallback clock.
func (s *EventScheduler) Clear() {
	s.queue = s.queue[:0]
	s.now = 0
}

// eventQueue implements heap.Interface ordered by (FireTime, seq).
type eventQueue []*ScheduledEvent

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].FireTime != q[j].FireTime {
		return q[i].FireTime < q[j].FireTime
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) {
	*q = append(*q, x.(*ScheduledEvent))
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return ev
}
