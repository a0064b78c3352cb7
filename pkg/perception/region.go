// Package perception turns raw depth frames into a discrete obstacle state:
// it aggregates the frame into three horizontal regions and classifies the
// region readings against fixed distance thresholds.
package perception

import "fmt"

// Region is one of three fixed horizontal slices of a depth frame.
type Region int

const (
	RegionLeft Region = iota
	RegionCenter
	RegionRight

	// NumRegions sizes region-indexed arrays.
	NumRegions
)

func (r Region) String() string {
	switch r {
	case RegionLeft:
		return "left"
	case RegionCenter:
		return "center"
	case RegionRight:
		return "right"
	default:
		return fmt.Sprintf("Region(%d)", int(r))
	}
}

// Reading is the aggregated depth information for one region.
// Mean is only meaningful when Valid is true; a region with zero valid
// samples stays invalid and is excluded from classification.
type Reading struct {
	Region         Region
	Mean           float64
	Valid          bool
	LowerHeightHit bool
}

// Readings is the fixed-size, region-indexed aggregation result.
// An array (not a map) so the direction priority chain stays exhaustive.
type Readings [NumRegions]Reading

// columnRange returns the half-open column interval [start, end) for a
// region. The frame width divides into three equal parts; remainder
// columns belong to the right region.
func columnRange(r Region, width int) (int, int) {
	third := width / 3
	switch r {
	case RegionLeft:
		return 0, third
	case RegionCenter:
		return third, 2 * third
	default:
		return 2 * third, width
	}
}
