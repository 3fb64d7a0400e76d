// Package hearth is the runtime core of a 2D game engine: application
// lifecycle, frame timing, mediated access to windowing, graphics and
// audio backends, and a virtual filesystem for game resources.
//
// # Quick Start
//
//	import (
//		"github.com/hearthlib/hearth"
//		"github.com/hearthlib/hearth/vfs"
//
//		_ "github.com/hearthlib/hearth/backend/headless"
//	)
//
//	cfg := hearth.DefaultConfig()
//	cfg.Title = "Space Game"
//	cfg.App = hearth.AppID{Author: "acme", Name: "spacegame"}
//	cfg.Resources = []vfs.MountSpec{{Kind: vfs.KindZip, Location: "resources.zip"}}
//
//	ctx, err := hearth.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := hearth.Run(ctx, game); err != nil {
//		log.Fatal(err)
//	}
//
// # The Loop
//
// Run drives one iteration per frame: drain window events and deliver
// them in arrival order, advance the fixed-step clock, call OnUpdate
// zero or more times at the fixed timestep, call OnRender exactly once
// with an interpolation alpha, then present. The loop ends when the
// game calls Context.RequestQuit or the window is closed.
//
// # Backends
//
// Windowing, graphics and audio are capability interfaces behind
// name-keyed registries. Importing an adapter package for its side
// effects makes it available; the registries pick the best registered
// adapter unless the Config names one explicitly.
//
// # Resources
//
// Game files are addressed through the Context's virtual filesystem,
// which overlays the platform config and data directories with the
// mounts named in the Config. Later mounts shadow earlier ones; saves
// go to the single write root. See the vfs package.
package hearth
