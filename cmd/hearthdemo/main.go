// Command hearthdemo runs the engine loop end to end: it opens a
// context, pumps a fixed number of frames through the clock and the
// graphics adapter, and writes the final frame as a PNG.
//
// By default it runs on the headless adapters, so it works on machines
// with no display or sound card. Pass -graphics=gogpu to drive the GPU
// adapter instead.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/hearthlib/hearth"
	"github.com/hearthlib/hearth/backend"

	// In-tree adapters, selectable by name.
	_ "github.com/hearthlib/hearth/backend/gogpu"
	_ "github.com/hearthlib/hearth/backend/headless"
	_ "github.com/hearthlib/hearth/backend/oto"

	// Pure Go GPU implementation for the gogpu adapter.
	_ "github.com/gogpu/gogpu/gpu/backend/native"
)

func main() {
	var (
		width    = flag.Int("width", 800, "window width")
		height   = flag.Int("height", 600, "window height")
		frames   = flag.Int("frames", 120, "frames to run before quitting")
		output   = flag.String("output", "demo.png", "output file for the final frame")
		graphics = flag.String("graphics", backend.BackendHeadless, "graphics adapter name")
		window   = flag.String("window", backend.BackendHeadless, "window adapter name")
		verbose  = flag.Bool("v", false, "log engine internals to stderr")
		list     = flag.Bool("list", false, "list registered adapters and exit")
	)
	flag.Parse()

	if *list {
		fmt.Println("window:  ", backend.AvailableWindows())
		fmt.Println("graphics:", backend.AvailableGraphics())
		fmt.Println("audio:   ", backend.AvailableAudio())
		return
	}

	opts := []hearth.Option{
		hearth.WithWindowBackend(*window),
		hearth.WithGraphicsBackend(*graphics),
	}
	if *verbose {
		opts = append(opts, hearth.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}

	cfg := hearth.DefaultConfig()
	cfg.Title = "Hearth Demo"
	cfg.Width = *width
	cfg.Height = *height
	cfg.App = hearth.AppID{Author: "hearthlib", Name: "hearthdemo"}

	ctx, err := hearth.New(cfg, opts...)
	if err != nil {
		log.Fatalf("hearthdemo: %v", err)
	}

	demo := &demoApp{maxFrames: *frames, output: *output}
	if err := hearth.Run(ctx, demo); err != nil {
		log.Fatalf("hearthdemo: %v", err)
	}
	if demo.saved {
		log.Printf("wrote %s (%dx%d) after %d frames", *output, *width, *height, demo.frames)
	}
}

// demoApp clears the frame with a color that drifts through the hue
// wheel at a fixed simulation rate, proving the clock, the loop and the
// adapter agree.
type demoApp struct {
	maxFrames int
	output    string

	t      float64
	frames int
	saved  bool
}

func (d *demoApp) OnStart(ctx *hearth.Context) error {
	log.Printf("running on %s", describe(ctx))
	return nil
}

func (d *demoApp) OnEvent(ctx *hearth.Context, ev hearth.Event) {
	switch ev := ev.(type) {
	case hearth.CloseRequestEvent:
		ctx.RequestQuit()
	case hearth.KeyDownEvent:
		if ev.Key == hearth.KeyEscape {
			ctx.RequestQuit()
		}
	}
}

func (d *demoApp) OnUpdate(ctx *hearth.Context, dt time.Duration) error {
	d.t += dt.Seconds()
	return nil
}

func (d *demoApp) OnRender(ctx *hearth.Context, alpha float64) error {
	g, err := ctx.Graphics()
	if err != nil {
		return err
	}
	// Interpolate the hue into the step in flight for smooth drift.
	t := d.t + alpha*hearth.DefaultFixedStep.Seconds()
	g.Clear(backend.Color{
		R: float32(0.5 + 0.5*math.Sin(t)),
		G: float32(0.5 + 0.5*math.Sin(t+2*math.Pi/3)),
		B: float32(0.5 + 0.5*math.Sin(t+4*math.Pi/3)),
		A: 1,
	})

	d.frames++
	if d.frames >= d.maxFrames {
		ctx.RequestQuit()
	}
	return nil
}

func (d *demoApp) OnShutdown(ctx *hearth.Context) {
	g, err := ctx.Graphics()
	if err != nil {
		return
	}
	snap, ok := g.(backend.Snapshotter)
	if !ok {
		log.Printf("%s adapter cannot snapshot, skipping %s", g.Name(), d.output)
		return
	}
	if err := savePNG(d.output, snap.Snapshot()); err != nil {
		log.Printf("save %s: %v", d.output, err)
		return
	}
	d.saved = true
}

func describe(ctx *hearth.Context) string {
	w, _ := ctx.Window()
	g, _ := ctx.Graphics()
	return fmt.Sprintf("window=%s graphics=%s", w.Name(), g.Name())
}

func savePNG(path string, img *image.RGBA) error {
	if img == nil {
		return fmt.Errorf("no frame to save")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
