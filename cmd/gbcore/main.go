// Command gbcore runs a Game Boy ROM interactively in an SDL2 window.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kestrel-emu/gbcore/internal/console"
	"github.com/kestrel-emu/gbcore/internal/hostinput"
	"github.com/kestrel-emu/gbcore/internal/hostvideo"
	"github.com/kestrel-emu/gbcore/internal/inspector"
	"github.com/kestrel-emu/gbcore/internal/romfile"
	"github.com/kestrel-emu/gbcore/pkg/log"
)

const frameInterval = time.Second / 60

func main() {
	debug := flag.Bool("debug", false, "enable debug-level logging")
	inspect := flag.String("inspect", "", "address to serve a read-only debug websocket on, e.g. :6060")
	copyState := flag.Bool("copy-state", false, "copy the current frame to the clipboard on quit")
	scale := flag.Int("scale", 3, "window scale factor")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <rom-path>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *debug, *inspect, *copyState, *scale); err != nil {
		fmt.Fprintln(os.Stderr, "gbcore:", err)
		os.Exit(1)
	}
}

func run(romPath string, debug bool, inspectAddr string, copyStateOnQuit bool, scale int) error {
	logger := log.New(debug)

	rom, err := romfile.Load(romPath)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	video, err := hostvideo.New("gbcore", scale, logger)
	if err != nil {
		return fmt.Errorf("opening display: %w", err)
	}
	defer video.Close()

	c, err := console.New(rom, console.WithLogger(logger), console.WithVideoSink(video))
	if err != nil {
		return fmt.Errorf("starting console: %w", err)
	}

	var hub *inspector.Hub
	if inspectAddr != "" {
		hub = inspector.NewHub(logger)
		go func() {
			if err := hub.ListenAndServe(inspectAddr); err != nil {
				logger.Errorf("inspector: %v", err)
			}
		}()
	}

	input := hostinput.New()
	quit := false
	for !quit {
		frameStart := time.Now()

		c.RunFrame()

		events, q := input.Poll()
		hostinput.Apply(c.Joypad, events)
		quit = q

		if hub != nil {
			hub.Broadcast(inspector.Capture(c))
		}

		if elapsed := time.Since(frameStart); elapsed < frameInterval {
			time.Sleep(frameInterval - elapsed)
		}
	}

	if copyStateOnQuit {
		if err := inspector.CopyFrame(c.PPU.Frame()); err != nil {
			logger.Warnf("copy-state: %v", err)
		}
	}
	return nil
}
