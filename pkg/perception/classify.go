package perception

import "fmt"

// Direction is the discrete obstacle direction reported to the user.
type Direction int

const (
	DirectionClear Direction = iota
	DirectionCenter
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionClear:
		return "clear"
	case DirectionCenter:
		return "center"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// State is the per-frame classification result. It is recomputed fully
// each frame and replaces the previous snapshot, never merged with it.
type State struct {
	Direction Direction

	// CenterDistance is the center region mean in meters, exposed
	// un-thresholded for continuous distance display. Only meaningful
	// when HasCenterDistance is true.
	CenterDistance    float64
	HasCenterDistance bool

	// LowerHeightObstacle is independent of Direction; it can be true
	// while Direction is clear.
	LowerHeightObstacle bool
}

// Classifier maps region readings to a discrete obstacle state.
type Classifier struct {
	cfg Config
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify applies the fixed priority chain center > left > right.
// Invalid regions never satisfy the threshold; absent data degrades to
// a clear state rather than an error.
func (c *Classifier) Classify(r Readings) State {
	var s State

	if center := r[RegionCenter]; center.Valid {
		s.CenterDistance = center.Mean
		s.HasCenterDistance = true
	}

	switch {
	case c.obstructed(r[RegionCenter]):
		s.Direction = DirectionCenter
	case c.obstructed(r[RegionLeft]):
		s.Direction = DirectionLeft
	case c.obstructed(r[RegionRight]):
		s.Direction = DirectionRight
	default:
		s.Direction = DirectionClear
	}

	for i := range r {
		if r[i].LowerHeightHit {
			s.LowerHeightObstacle = true
			break
		}
	}

	return s
}

func (c *Classifier) obstructed(reading Reading) bool {
	return reading.Valid && reading.Mean < c.cfg.ObstacleThreshold
}
