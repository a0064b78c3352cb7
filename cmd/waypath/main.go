package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/waypath/go-waypath/internal/config"
	"github.com/waypath/go-waypath/internal/log"
	"github.com/waypath/go-waypath/pkg/alerts"
	"github.com/waypath/go-waypath/pkg/haptics"
	"github.com/waypath/go-waypath/pkg/perception"
	"github.com/waypath/go-waypath/pkg/sensor"
	"github.com/waypath/go-waypath/pkg/session"
	"github.com/waypath/go-waypath/pkg/speech"
	"github.com/waypath/go-waypath/pkg/web"
)

func main() {
	// Command line flags
	sensorURL := flag.String("sensor", config.SensorURL(""), "Depth sensor websocket URL")
	cameraID := flag.Int("camera", -1, "Depth camera device ID (-1 = use remote sensor)")
	bandAddr := flag.String("band", config.BandAddr(), "Haptic wristband bridge address (empty = disabled)")
	synthURL := flag.String("synth", config.SynthURL(), "Speech synthesis daemon URL")
	promptDir := flag.String("prompts", "", "Directory of pre-rendered opus prompts (optional fallback)")
	port := flag.String("port", config.DashboardPort(), "Dashboard port")
	cautious := flag.Bool("cautious", false, "Use earlier warning thresholds")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	log.Init(level)

	fmt.Println("🦯 Waypath Navigation Aid")
	fmt.Printf("   Dashboard: :%s\n", *port)
	fmt.Printf("   Cautious:  %v\n", *cautious)
	fmt.Println()

	// Speech: synthesis daemon first, canned prompts as offline fallback.
	synth, err := buildSynth(*synthURL, *promptDir)
	if err != nil {
		log.Error("speech setup failed", "error", err)
		os.Exit(1)
	}
	speaker := speech.NewSpeaker(synth)
	defer speaker.Close()

	// Haptics degrade to a no-op without a wristband.
	band := haptics.NewBand(*bandAddr)
	defer band.Close()
	if band.Available() {
		fmt.Println("✅ Wristband connected")
	} else {
		fmt.Println("⚠️  No wristband - haptics disabled")
	}

	disp := alerts.NewDispatcher(speaker, band)

	// Dashboard
	server := web.NewServer(*port, disp)
	disp.Subscribe(server)
	server.SetHapticsAvailable(band.Available())
	go func() {
		if err := server.Start(); err != nil {
			log.Error("dashboard stopped", "error", err)
		}
	}()

	// Frame source
	var src sensor.Source
	if *cameraID >= 0 {
		src = sensor.NewCamera(*cameraID, 100*time.Millisecond)
		fmt.Printf("📷 Depth camera %d\n", *cameraID)
	} else {
		src = sensor.NewRemote(*sensorURL)
		fmt.Printf("📡 Remote sensor %s\n", *sensorURL)
	}

	cfg := session.DefaultConfig()
	if *cautious {
		cfg.Perception = perception.CautiousConfig()
	}

	sess := session.New(cfg, src, disp, speaker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sess.Start(ctx); err != nil {
		log.Error("session start failed", "error", err)
		os.Exit(1)
	}
	server.SetSession(sess.ID().String(), true)
	server.AddLog("info", "session %s started", sess.ID())
	fmt.Println("✅ Session running - Ctrl+C to stop")

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		fmt.Println("\n👋 Shutting down...")
		sess.Stop()
	case <-sess.Done():
		fmt.Println("⚠️  Session ended")
	}

	server.SetSession(sess.ID().String(), false)
	// Leave time for the termination announcement before tearing down.
	time.Sleep(500 * time.Millisecond)
	server.Shutdown()
	fmt.Println("👋 Goodbye!")
}

// buildSynth wires the synthesis chain from the flags.
func buildSynth(synthURL, promptDir string) (speech.Synthesizer, error) {
	httpSynth, err := speech.NewHTTPSynth(speech.WithBaseURL(synthURL))
	if err != nil {
		return nil, err
	}

	if promptDir == "" {
		return httpSynth, nil
	}

	prompts, err := speech.NewPromptSynth(speech.WithPromptDir(promptDir))
	if err != nil {
		log.Warn("prompt fallback unavailable", "error", err)
		return httpSynth, nil
	}

	return speech.NewChain(httpSynth, prompts)
}
