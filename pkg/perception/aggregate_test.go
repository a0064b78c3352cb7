package perception

import (
	"math"
	"testing"

	"github.com/waypath/go-waypath/pkg/depth"
)

// makeFrame builds a synthetic depth frame with per-pixel values from fill.
func makeFrame(width, height int, fill func(x, y int) float32) depth.Frame {
	samples := make([]float32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			samples[y*width+x] = fill(x, y)
		}
	}
	return depth.Frame{Width: width, Height: height, Stride: width, Samples: samples}
}

// uniformFrame fills every pixel with the same depth.
func uniformFrame(width, height int, d float32) depth.Frame {
	return makeFrame(width, height, func(x, y int) float32 { return d })
}

func TestAggregate_UniformFrame(t *testing.T) {
	agg := NewAggregator(DefaultConfig())

	readings := agg.Aggregate(uniformFrame(90, 60, 2.0))

	for r := RegionLeft; r < NumRegions; r++ {
		if !readings[r].Valid {
			t.Errorf("Expected region %v valid", r)
			continue
		}
		if math.Abs(readings[r].Mean-2.0) > 1e-6 {
			t.Errorf("Region %v: expected mean 2.0, got %v", r, readings[r].Mean)
		}
		if readings[r].LowerHeightHit {
			t.Errorf("Region %v: unexpected lower-height hit at 2.0m", r)
		}
	}
}

func TestAggregate_InvalidRegionExcluded(t *testing.T) {
	agg := NewAggregator(DefaultConfig())

	// Left third is all zeros (no sensor return); the rest reads 3m.
	frame := makeFrame(90, 60, func(x, y int) float32 {
		if x < 30 {
			return 0
		}
		return 3.0
	})

	readings := agg.Aggregate(frame)

	if readings[RegionLeft].Valid {
		t.Errorf("Expected left region invalid, got mean %v", readings[RegionLeft].Mean)
	}
	if readings[RegionLeft].Mean != 0 {
		t.Errorf("Invalid region should carry zero mean, got %v", readings[RegionLeft].Mean)
	}
	if !readings[RegionCenter].Valid || !readings[RegionRight].Valid {
		t.Error("Expected center and right regions valid")
	}
}

func TestAggregate_OutOfRangeExcluded(t *testing.T) {
	agg := NewAggregator(DefaultConfig())

	// Saturated readings (>= 5m) carry no information.
	readings := agg.Aggregate(uniformFrame(90, 60, 5.0))

	for r := RegionLeft; r < NumRegions; r++ {
		if readings[r].Valid {
			t.Errorf("Region %v: expected invalid reading for saturated frame", r)
		}
	}
}

func TestAggregate_LowerHeightHit(t *testing.T) {
	agg := NewAggregator(DefaultConfig())

	frame := uniformFrame(90, 60, 4.0)
	// One close sample on the lower row, center region.
	lower := frame.LowerRow()
	frame.Samples[lower*frame.Stride+45] = 1.2

	readings := agg.Aggregate(frame)

	if !readings[RegionCenter].LowerHeightHit {
		t.Error("Expected lower-height hit in center region")
	}
	if readings[RegionLeft].LowerHeightHit || readings[RegionRight].LowerHeightHit {
		t.Error("Lower-height hit leaked into neighboring regions")
	}
}

func TestAggregate_MidRowCloseSampleIsNotLowerHit(t *testing.T) {
	agg := NewAggregator(DefaultConfig())

	frame := uniformFrame(90, 60, 4.0)
	// Close sample on the mid row must not set the lower-height flag.
	mid := frame.MidRow()
	frame.Samples[mid*frame.Stride+45] = 0.8

	readings := agg.Aggregate(frame)

	if readings[RegionCenter].LowerHeightHit {
		t.Error("Mid-row sample must not trigger the lower-height flag")
	}
}

func TestAggregate_SingleOutlierAveragesIn(t *testing.T) {
	agg := NewAggregator(DefaultConfig())

	// All invalid except one valid sample: the region mean is that sample.
	frame := uniformFrame(90, 60, 0)
	mid := frame.MidRow()
	frame.Samples[mid*frame.Stride+45] = 2.5

	readings := agg.Aggregate(frame)

	if !readings[RegionCenter].Valid {
		t.Fatal("Expected center region valid from a single sample")
	}
	if math.Abs(readings[RegionCenter].Mean-2.5) > 1e-6 {
		t.Errorf("Expected mean 2.5, got %v", readings[RegionCenter].Mean)
	}
}

func TestAggregate_RemainderColumnsBelongToRight(t *testing.T) {
	agg := NewAggregator(DefaultConfig())

	// Width 10: left [0,3), center [3,6), right [6,10).
	frame := makeFrame(10, 8, func(x, y int) float32 {
		if x >= 6 {
			return 1.0
		}
		return 0
	})

	readings := agg.Aggregate(frame)

	if readings[RegionLeft].Valid || readings[RegionCenter].Valid {
		t.Error("Expected left and center invalid")
	}
	if !readings[RegionRight].Valid {
		t.Fatal("Expected right region valid")
	}
	if math.Abs(readings[RegionRight].Mean-1.0) > 1e-6 {
		t.Errorf("Expected right mean 1.0, got %v", readings[RegionRight].Mean)
	}
}

func TestAggregate_EmptyFrame(t *testing.T) {
	agg := NewAggregator(DefaultConfig())

	readings := agg.Aggregate(depth.Frame{})

	for r := RegionLeft; r < NumRegions; r++ {
		if readings[r].Valid || readings[r].LowerHeightHit {
			t.Errorf("Region %v: expected empty reading for empty frame", r)
		}
	}
}
