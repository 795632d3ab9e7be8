// Command gbprofile runs a ROM headlessly for a fixed number of
// frames and writes three PNG charts: per-frame wall-clock time, an
// opcode-frequency histogram, and a PPU-mode-duration breakdown. It
// never touches host video or input.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kestrel-emu/gbcore/internal/console"
	"github.com/kestrel-emu/gbcore/internal/ppu"
	"github.com/kestrel-emu/gbcore/internal/romfile"
	"github.com/kestrel-emu/gbcore/pkg/log"
)

const framesToProfile = 600

// topOpcodes bounds the opcode-frequency chart to the busiest entries;
// a full 256-wide bar chart is unreadable.
const topOpcodes = 24

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <rom-path> <out.png>\n", os.Args[0])
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(romPath, outPath string) error {
	rom, err := romfile.Load(romPath)
	if err != nil {
		return fmt.Errorf("gbprofile: %w", err)
	}

	logger := log.New(false)
	c, err := console.New(rom, console.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("gbprofile: %w", err)
	}

	frameTimes := make(plotter.XYs, framesToProfile)
	for i := 0; i < framesToProfile; i++ {
		start := time.Now()
		c.RunFrame()
		frameTimes[i].X = float64(i)
		frameTimes[i].Y = time.Since(start).Seconds() * 1000
	}

	if err := saveFrameTimeChart(frameTimes, outPath); err != nil {
		return err
	}
	if err := saveOpcodeChart(c.CPU.OpcodeCounts(), sidecarPath(outPath, "opcodes")); err != nil {
		return err
	}
	if err := savePPUModeChart(c.PPU.ModeCycles(), sidecarPath(outPath, "ppu-modes")); err != nil {
		return err
	}
	return nil
}

// sidecarPath derives an additional chart's output path from the
// primary one: foo.png -> foo-<suffix>.png.
func sidecarPath(outPath, suffix string) string {
	ext := filepath.Ext(outPath)
	return strings.TrimSuffix(outPath, ext) + "-" + suffix + ext
}

func saveFrameTimeChart(frameTimes plotter.XYs, outPath string) error {
	p := plot.New()
	p.Title.Text = "Frame time"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "ms"

	line, err := plotter.NewLine(frameTimes)
	if err != nil {
		return fmt.Errorf("gbprofile: %w", err)
	}
	p.Add(line)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, outPath); err != nil {
		return fmt.Errorf("gbprofile: saving frame-time chart: %w", err)
	}
	return nil
}

// saveOpcodeChart renders the topOpcodes most-dispatched primary
// opcodes as a bar chart, labeled by opcode byte.
func saveOpcodeChart(counts [256]uint64, outPath string) error {
	type entry struct {
		opcode uint8
		count  uint64
	}
	var entries []entry
	for op, n := range counts {
		if n > 0 {
			entries = append(entries, entry{uint8(op), n})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].count > entries[j].count })
	if len(entries) > topOpcodes {
		entries = entries[:topOpcodes]
	}

	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, e := range entries {
		values[i] = float64(e.count)
		labels[i] = fmt.Sprintf("%02X", e.opcode)
	}

	p := plot.New()
	p.Title.Text = "Opcode frequency"
	p.Y.Label.Text = "executions"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return fmt.Errorf("gbprofile: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(10*vg.Inch, 4*vg.Inch, outPath); err != nil {
		return fmt.Errorf("gbprofile: saving opcode chart: %w", err)
	}
	return nil
}

// savePPUModeChart renders cumulative T-cycles spent in each PPU mode
// as a four-bar chart.
func savePPUModeChart(cycles [4]uint64, outPath string) error {
	labels := []string{"HBlank", "VBlank", "OAMScan", "VRAMAccess"}
	values := plotter.Values{
		float64(cycles[ppu.ModeHBlank]),
		float64(cycles[ppu.ModeVBlank]),
		float64(cycles[ppu.ModeOAMScan]),
		float64(cycles[ppu.ModeVRAMAccess]),
	}

	p := plot.New()
	p.Title.Text = "PPU mode duration"
	p.Y.Label.Text = "T-cycles"

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return fmt.Errorf("gbprofile: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, outPath); err != nil {
		return fmt.Errorf("gbprofile: saving PPU-mode chart: %w", err)
	}
	return nil
}
