package perception

import "github.com/waypath/go-waypath/pkg/depth"

// Aggregator reduces a depth frame to one Reading per region.
// It samples two fixed rows: the middle row for general obstacle sensing
// and the lower row for low obstacles below eye level.
type Aggregator struct {
	cfg Config
}

// NewAggregator creates an aggregator with the given thresholds.
func NewAggregator(cfg Config) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Aggregate computes the per-region mean of valid samples across both
// sample rows, plus the lower-height hit flag. Regions with zero valid
// samples yield an invalid Reading (never a 0.0 mean). A malformed frame
// yields empty readings; there is no error path.
func (a *Aggregator) Aggregate(f depth.Frame) Readings {
	var out Readings
	for r := RegionLeft; r < NumRegions; r++ {
		out[r].Region = r
	}
	if f.Empty() {
		return out
	}

	rows := [2]int{f.MidRow(), f.LowerRow()}
	lowerRow := f.LowerRow()

	for r := RegionLeft; r < NumRegions; r++ {
		start, end := columnRange(r, f.Width)

		var sum float64
		var count int
		for _, y := range rows {
			if y >= f.Height {
				continue
			}
			for x := start; x < end; x++ {
				d := f.At(x, y)
				if !depth.ValidSample(d) {
					continue
				}
				sum += float64(d)
				count++
				if y == lowerRow && float64(d) < a.cfg.LowerHeightThreshold {
					out[r].LowerHeightHit = true
				}
			}
		}

		if count > 0 {
			out[r].Mean = sum / float64(count)
			out[r].Valid = true
		}
	}

	return out
}
