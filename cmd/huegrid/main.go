// Command huegrid renders an audio- and MIDI-reactive hue grid.
//
// Usage:
//
//	huegrid [flags]                      open the window
//	huegrid [flags] list                 list MIDI devices
//	huegrid [flags] snapshot [opts] out.png  render one frame to PNG
//
// Examples:
//
//	huegrid -config stage.toml
//	huegrid -keys
//	huegrid list
//	huegrid snapshot -mode audio -tone 1000 -t 30s grid.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-vis/config"
	"github.com/cwbudde/algo-vis/control"
	"github.com/cwbudde/algo-vis/internal/app"
	"github.com/cwbudde/algo-vis/midi"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath, "TOML configuration file")
	keys := flag.Bool("keys", false, "keyboard only, do not open a MIDI input")
	level := flag.String("log-level", "", "log level override: debug, info, warn, error")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: huegrid [flags] [list | snapshot [opts] out.png]\n\n")
		fmt.Fprintf(os.Stderr, "Renders an audio- and MIDI-reactive hue grid.\n")
		fmt.Fprintf(os.Stderr, "A missing config file falls back to built-in defaults.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: R reset (hold), S/V/W/O/A modes, Up/Down intensity,\n")
		fmt.Fprintf(os.Stderr, "      Right/Left dilation, B direction, H overlay, Esc quit\n")
	}
	flag.Parse()

	cfg, err := config.LoadOrDefault(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *level != "" {
		cfg.Log.Level = *level
	}
	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(log)

	args := flag.Args()
	cmd := ""
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "":
		err = app.Run(context.Background(), cfg, *keys, log)
	case "list":
		err = listDevices()
	case "snapshot":
		err = snapshot(cfg, args, log)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error("huegrid failed", "cmd", cmd, "err", err)
		os.Exit(1)
	}
}

func newLogger(level string) (*slog.Logger, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	})), nil
}

func listDevices() error {
	if err := midi.Init(); err != nil {
		return err
	}
	defer midi.Terminate()

	devices := midi.Devices()
	if len(devices) == 0 {
		fmt.Println("no MIDI devices")
		return nil
	}

	def := midi.DefaultInputID()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tInterface\tDirection\t")
	for _, d := range devices {
		mark := ""
		if d.ID == def {
			mark = "*"
		}
		fmt.Fprintf(w, "%d%s\t%s\t%s\t%s\t\n", d.ID, mark, d.Name, d.Interface, d.Direction())
	}
	return w.Flush()
}

func snapshot(cfg config.Config, args []string, log *slog.Logger) error {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	mode := fs.String("mode", cfg.Control.Mode, "visual mode: spiral, v2, waves, solid, audio")
	elapsed := fs.Duration("t", 0, "time elapsed before the frame")
	tone := fs.Float64("tone", 0, "feed a sine of this frequency in Hz instead of silence")
	overlay := fs.Bool("overlay", cfg.Render.Overlay, "draw the diagnostic overlay")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("snapshot needs exactly one output path")
	}

	m, err := control.ParseMode(*mode)
	if err != nil {
		return err
	}

	f, err := os.Create(fs.Arg(0))
	if err != nil {
		return err
	}
	opts := app.SnapshotOptions{Mode: m, Elapsed: *elapsed, ToneHz: *tone, Overlay: *overlay}
	if err := app.Snapshot(f, cfg, opts, log); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

