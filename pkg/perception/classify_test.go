package perception

import (
	"math"
	"testing"
)

func reading(r Region, mean float64) Reading {
	return Reading{Region: r, Mean: mean, Valid: true}
}

func TestClassify_CenterBelowThreshold(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	var readings Readings
	readings[RegionCenter] = reading(RegionCenter, 0.8)

	s := c.Classify(readings)

	if s.Direction != DirectionCenter {
		t.Errorf("Expected center direction, got %v", s.Direction)
	}
	if !s.HasCenterDistance || math.Abs(s.CenterDistance-0.8) > 1e-6 {
		t.Errorf("Expected center distance 0.8, got %v (has=%v)", s.CenterDistance, s.HasCenterDistance)
	}
}

func TestClassify_CenterAtThresholdIsClear(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	var readings Readings
	readings[RegionCenter] = reading(RegionCenter, 1.0)

	s := c.Classify(readings)

	if s.Direction != DirectionClear {
		t.Errorf("Expected clear at exactly 1.0m, got %v", s.Direction)
	}
	// Distance is still exposed for continuous display.
	if !s.HasCenterDistance {
		t.Error("Expected center distance to be exposed")
	}
}

func TestClassify_PriorityCenterOverLeftOverRight(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	var readings Readings
	readings[RegionLeft] = reading(RegionLeft, 0.5)
	readings[RegionCenter] = reading(RegionCenter, 0.6)
	readings[RegionRight] = reading(RegionRight, 0.4)

	if s := c.Classify(readings); s.Direction != DirectionCenter {
		t.Errorf("Expected center to win the priority chain, got %v", s.Direction)
	}

	readings[RegionCenter] = reading(RegionCenter, 3.0)
	if s := c.Classify(readings); s.Direction != DirectionLeft {
		t.Errorf("Expected left over right, got %v", s.Direction)
	}

	readings[RegionLeft] = reading(RegionLeft, 3.0)
	if s := c.Classify(readings); s.Direction != DirectionRight {
		t.Errorf("Expected right, got %v", s.Direction)
	}
}

func TestClassify_InvalidRegionNeverTriggers(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	// Zero-mean but invalid readings must be skipped, not treated as 0.0m.
	var readings Readings

	s := c.Classify(readings)

	if s.Direction != DirectionClear {
		t.Errorf("Expected clear for all-invalid readings, got %v", s.Direction)
	}
	if s.HasCenterDistance {
		t.Error("Expected no center distance for invalid center region")
	}
}

func TestClassify_LowerHeightIndependentOfDirection(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	var readings Readings
	readings[RegionCenter] = reading(RegionCenter, 4.0)
	readings[RegionRight] = Reading{Region: RegionRight, LowerHeightHit: true}

	s := c.Classify(readings)

	if s.Direction != DirectionClear {
		t.Errorf("Expected clear direction, got %v", s.Direction)
	}
	if !s.LowerHeightObstacle {
		t.Error("Expected lower-height obstacle with clear direction")
	}
}
