// Replay - drive the full alert pipeline with a synthetic walk toward an
// obstacle, printing every decision instead of voicing it. Useful for
// tuning thresholds without hardware.
package main

import (
	"context"
	"flag"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/waypath/go-waypath/internal/log"
	"github.com/waypath/go-waypath/pkg/alerts"
	"github.com/waypath/go-waypath/pkg/depth"
	"github.com/waypath/go-waypath/pkg/perception"
	"github.com/waypath/go-waypath/pkg/sensor"
	"github.com/waypath/go-waypath/pkg/session"
	"github.com/waypath/go-waypath/pkg/speech"
)

// consoleSpeaker prints phrases instead of voicing them.
type consoleSpeaker struct{}

func (consoleSpeaker) Say(p speech.Phrase, args ...any) {
	fmt.Printf("🔊 %s\n", speech.Text(p, args...))
}

// consoleBand prints a vibration bar instead of driving hardware.
type consoleBand struct{}

func (consoleBand) PlayWarning(intensity float64) {
	if intensity == 0 {
		return
	}
	bar := ""
	for i := 0; i < int(intensity*10+0.5); i++ {
		bar += "▮"
	}
	fmt.Printf("📳 %.2f %s\n", intensity, bar)
}

// walkFrame simulates approaching a wall from 4m down to 0.4m, with a
// low-hanging obstacle appearing mid-walk, then a clear corridor.
func walkFrame(seq int) depth.Frame {
	const width, height = 90, 60

	wall := 4.0 - 0.15*float64(seq)
	if wall < 0.4 {
		wall = 0 // walked past: sensor loses the return
	}

	samples := make([]float32, width*height)
	f := depth.Frame{Width: width, Height: height, Stride: width, Samples: samples}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			switch {
			case x >= 30 && x < 60:
				samples[y*width+x] = float32(wall)
			default:
				samples[y*width+x] = 4.5
			}
		}
	}

	// Low obstacle drifting through the right region for a few frames.
	if seq >= 8 && seq < 12 {
		lower := f.LowerRow()
		for x := 70; x < 80; x++ {
			samples[lower*width+x] = 1.1
		}
	}

	return f
}

func main() {
	frames := flag.Int("frames", 30, "Number of synthetic frames to replay")
	interval := flag.Duration("interval", 200*time.Millisecond, "Frame interval")
	cautious := flag.Bool("cautious", false, "Use earlier warning thresholds")
	flag.Parse()

	log.Init("warn")

	fmt.Println("🦯 Waypath Replay")
	fmt.Printf("   Frames: %d @ %v\n\n", *frames, *interval)

	disp := alerts.NewDispatcher(consoleSpeaker{}, consoleBand{})

	var count atomic.Int64
	src := sensor.NewSynthetic(*interval, func(seq int) depth.Frame {
		count.Store(int64(seq))
		return walkFrame(seq)
	})

	cfg := session.DefaultConfig()
	if *cautious {
		cfg.Perception = perception.CautiousConfig()
	}

	sess := session.New(cfg, src, disp, consoleSpeaker{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sess.Start(ctx); err != nil {
		fmt.Printf("❌ Start failed: %v\n", err)
		return
	}

	for count.Load() < int64(*frames) {
		time.Sleep(*interval)
	}
	sess.Stop()

	snap := disp.Latest()
	fmt.Printf("\nFinal state: direction=%s distance=%.2f lower=%v\n",
		snap.Direction, snap.Distance, snap.LowerHeightObstacle)
}
