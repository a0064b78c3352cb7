package alerts

import (
	"sync"

	"github.com/waypath/go-waypath/pkg/perception"
	"github.com/waypath/go-waypath/pkg/speech"
)

// maxHapticDistance is where the warning vibration fades to zero.
const maxHapticDistance = 5.0

// Proximity bands for spoken distance feedback, in meters.
const (
	veryCloseDistance = 1.0
	announceDistance  = 2.0
)

// Speaker voices catalog phrases. Calls are fire-and-forget; the
// implementation rate-limits internally.
type Speaker interface {
	Say(p speech.Phrase, args ...any)
}

// Haptics renders a proportional warning vibration.
type Haptics interface {
	PlayWarning(intensity float64)
}

// Observer receives the published obstacle snapshot once per frame.
type Observer interface {
	ObstacleUpdate(snap Snapshot)
}

// Snapshot is the read-only per-frame state published to presentation
// observers.
type Snapshot struct {
	Distance            float64 `json:"distance"`
	HasDistance         bool    `json:"has_distance"`
	Direction           string  `json:"direction"`
	LowerHeightObstacle bool    `json:"lower_height_obstacle"`
}

// Dispatcher converts obstacle states and debounce decisions into
// concrete collaborator calls, and publishes the latest snapshot.
// Dispatch must be called from a single goroutine; reads are safe from
// any goroutine.
type Dispatcher struct {
	speaker   Speaker
	haptics   Haptics
	debouncer *Debouncer

	mu        sync.RWMutex
	latest    Snapshot
	observers []Observer
}

// NewDispatcher creates a dispatcher with a fresh debouncer.
func NewDispatcher(speaker Speaker, haptics Haptics) *Dispatcher {
	return &Dispatcher{
		speaker:   speaker,
		haptics:   haptics,
		debouncer: NewDebouncer(),
	}
}

// Subscribe registers a presentation observer.
func (d *Dispatcher) Subscribe(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

// Latest returns the most recently published snapshot.
func (d *Dispatcher) Latest() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.latest
}

// Dispatch handles one classified frame: continuous haptic feedback,
// debounced announcements, proximity readout, and snapshot publication.
// Audio calls are issued unconditionally per decision; suppression is
// the speaker's rolling rate limiter, not the dispatcher's concern.
func (d *Dispatcher) Dispatch(s perception.State) {
	dec := d.debouncer.Update(s)

	// Haptic feedback is continuous and proportional, never debounced.
	intensity := 0.0
	if s.HasCenterDistance {
		intensity = WarningIntensity(s.CenterDistance)
	}
	d.haptics.PlayWarning(intensity)

	if s.HasCenterDistance {
		switch {
		case s.CenterDistance < veryCloseDistance:
			d.speaker.Say(speech.PhraseVeryClose)
		case s.CenterDistance < announceDistance:
			d.speaker.Say(speech.PhraseObstacleAt, s.CenterDistance)
		}
	}

	if dec.AnnounceDirection {
		switch dec.Direction {
		case perception.DirectionCenter:
			d.speaker.Say(speech.PhraseObstacleAhead)
		case perception.DirectionLeft:
			d.speaker.Say(speech.PhraseObstacleLeft)
		case perception.DirectionRight:
			d.speaker.Say(speech.PhraseObstacleRight)
		}
	}

	if dec.AnnounceLowerHeight {
		d.speaker.Say(speech.PhraseLowObstacle)
	}

	snap := Snapshot{
		Distance:            s.CenterDistance,
		HasDistance:         s.HasCenterDistance,
		Direction:           s.Direction.String(),
		LowerHeightObstacle: s.LowerHeightObstacle,
	}

	d.mu.Lock()
	d.latest = snap
	observers := d.observers
	d.mu.Unlock()

	for _, o := range observers {
		o.ObstacleUpdate(snap)
	}
}

// WarningIntensity maps a center distance in meters to a vibration
// intensity in [0,1]: touching at 0m, silent at 5m and beyond.
func WarningIntensity(distance float64) float64 {
	if distance > maxHapticDistance {
		distance = maxHapticDistance
	}
	intensity := (maxHapticDistance - distance) / maxHapticDistance
	if intensity < 0 {
		return 0
	}
	if intensity > 1 {
		return 1
	}
	return intensity
}
