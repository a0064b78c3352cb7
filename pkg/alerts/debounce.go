// Package alerts decides when an obstacle state becomes a user-facing
// notification and fans the decisions out to the audio and haptic channels.
package alerts

import "github.com/waypath/go-waypath/pkg/perception"

// NotificationState is the long-lived debounce state for one session.
// It is mutated only by the Debouncer and assumes a single writer.
type NotificationState struct {
	LastDirection        perception.Direction
	DirectionAnnounced   bool
	LowerHeightAnnounced bool
}

// Decision is the per-frame debouncer output. It carries announcement
// flags only; the dispatcher turns them into collaborator calls.
type Decision struct {
	AnnounceDirection bool
	Direction         perception.Direction

	AnnounceLowerHeight bool
}

// Debouncer suppresses repeated equivalent notifications until a
// qualifying state transition occurs.
type Debouncer struct {
	state NotificationState
}

// NewDebouncer creates a debouncer with a fresh notification state.
func NewDebouncer() *Debouncer {
	return &Debouncer{}
}

// NewDebouncerWithState creates a debouncer from an arbitrary prior state.
func NewDebouncerWithState(state NotificationState) *Debouncer {
	return &Debouncer{state: state}
}

// State returns a copy of the current notification state.
func (d *Debouncer) State() NotificationState {
	return d.state
}

// Update advances the state machine with the new obstacle state and
// returns the announcement decisions for this frame.
//
// A directional announcement fires once per clear-to-obstacle transition,
// and again only if the direction changes while still obstructed.
// Re-entering the same direction without an intervening clear frame stays
// silent. The lower-height announcement re-arms on every frame without a
// lower-height hit.
func (d *Debouncer) Update(s perception.State) Decision {
	var dec Decision

	if s.Direction == perception.DirectionClear {
		d.state.DirectionAnnounced = false
	} else if s.Direction != d.state.LastDirection || !d.state.DirectionAnnounced {
		dec.AnnounceDirection = true
		dec.Direction = s.Direction
		d.state.DirectionAnnounced = true
		d.state.LastDirection = s.Direction
	}

	if s.LowerHeightObstacle {
		if !d.state.LowerHeightAnnounced {
			dec.AnnounceLowerHeight = true
			d.state.LowerHeightAnnounced = true
		}
	} else {
		d.state.LowerHeightAnnounced = false
	}

	return dec
}
