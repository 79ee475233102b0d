// Package action defines a single timed move and the growable list that
// holds a level's full move sequence.
package action

import "github.com/tandemgo/tws/direction"

// MaxTick is the inclusive upper bound on an action's when value: the game
// timer is 23-bit-bound.
const MaxTick = 1<<23 - 1

// Action is a single (when, dir) record: dir occurs at the absolute tick
// when.
type Action struct {
	When int32
	Dir  direction.Direction
}

// List is an append-only, amortized-growth sequence of actions in insertion
// order. The zero value is ready to use.
type List struct {
	items []Action
}

// NewList returns a List pre-sized for capacity items.
func NewList(capacity int) *List {
	return &List{items: make([]Action, 0, capacity)}
}

// Append adds action to the end of the list.
func (l *List) Append(a Action) {
	l.items = append(l.items, a)
}

// Len returns the number of actions in the list.
func (l *List) Len() int {
	return len(l.items)
}

// At returns the action at index i.
func (l *List) At(i int) Action {
	return l.items[i]
}

// Last returns the final action and true, or the zero Action and false if
// the list is empty.
func (l *List) Last() (Action, bool) {
	if len(l.items) == 0 {
		return Action{}, false
	}
	return l.items[len(l.items)-1], true
}

// All returns the list's actions in insertion order. The returned slice
// aliases internal storage and must not be mutated.
func (l *List) All() []Action {
	return l.items
}

// Clear empties the list, preserving its underlying capacity.
func (l *List) Clear() {
	l.items = l.items[:0]
}

// CopyFrom replaces l's contents with an independent copy of other's.
func (l *List) CopyFrom(other *List) {
	l.items = append(l.items[:0], other.items...)
}

// Destroy releases the list's storage.
func (l *List) Destroy() {
	l.items = nil
}
