package hearth

import (
	"errors"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/hearthlib/hearth/vfs"
)

// ConfFileName is the conf file looked up through the resource overlay
// during New. Ship one next to (or inside) the game's resources to
// override the built-in defaults per machine.
const ConfFileName = "conf.hcl"

// AppID identifies the application for platform directory layout: the
// per-user config and data directories end in <Author>/<Name>.
type AppID struct {
	Author string
	Name   string
}

// Config is the engine configuration. Construct it from DefaultConfig
// and adjust; a zero field means "use the default" for the sizing and
// timing fields.
//
// Anything a conf.hcl in the resources sets wins over the values passed
// to New, so players can adjust window settings without a rebuild.
type Config struct {
	// Title is the window title.
	Title string

	// Width and Height are the initial drawable size in pixels.
	Width  int
	Height int

	// Resizable lets the user resize the window.
	Resizable bool

	// Vsync asks the graphics adapter to sync presentation to the
	// display.
	Vsync bool

	// FixedStep is the simulation timestep OnUpdate runs at.
	FixedStep time.Duration

	// App places the user config and data directories. Required.
	App AppID

	// Resources are mounted into the virtual filesystem in order, after
	// the platform directories, so each entry shadows everything before
	// it.
	Resources []vfs.MountSpec
}

// DefaultConfig returns the baseline configuration: an 800x600
// non-resizable vsynced window and a 60 Hz simulation step.
func DefaultConfig() Config {
	return Config{
		Title:     "Hearth",
		Width:     800,
		Height:    600,
		Vsync:     true,
		FixedStep: DefaultFixedStep,
	}
}

// withDefaults fills the zero-valued sizing and timing fields.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.FixedStep <= 0 {
		c.FixedStep = d.FixedStep
	}
	return c
}

func (c Config) validate() error {
	if c.App.Author == "" || c.App.Name == "" {
		return &ConfigError{Field: "App", Reason: "author and name are required"}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return &ConfigError{Field: "Width/Height", Reason: "must be positive"}
	}
	if c.FixedStep <= 0 {
		return &ConfigError{Field: "FixedStep", Reason: "must be positive"}
	}
	return nil
}

// conf file schema. Every attribute is optional; only what the file
// sets overrides the Config.
type confFile struct {
	Title  *string     `hcl:"title,optional"`
	Window *confWindow `hcl:"window,block"`
	Timing *confTiming `hcl:"timing,block"`
}

type confWindow struct {
	Width     *int  `hcl:"width,optional"`
	Height    *int  `hcl:"height,optional"`
	Resizable *bool `hcl:"resizable,optional"`
	Vsync     *bool `hcl:"vsync,optional"`
}

type confTiming struct {
	FixedStep *string `hcl:"fixed_step,optional"`
}

// ParseConf overlays the settings in an HCL document onto base.
// Attributes the document does not set keep their base values.
func ParseConf(base Config, src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return base, &ConfigError{Field: filename, Reason: "conf parse failed", Err: diags}
	}
	var cf confFile
	if diags := gohcl.DecodeBody(file.Body, nil, &cf); diags.HasErrors() {
		return base, &ConfigError{Field: filename, Reason: "conf decode failed", Err: diags}
	}

	if cf.Title != nil {
		base.Title = *cf.Title
	}
	if w := cf.Window; w != nil {
		if w.Width != nil {
			base.Width = *w.Width
		}
		if w.Height != nil {
			base.Height = *w.Height
		}
		if w.Resizable != nil {
			base.Resizable = *w.Resizable
		}
		if w.Vsync != nil {
			base.Vsync = *w.Vsync
		}
	}
	if t := cf.Timing; t != nil && t.FixedStep != nil {
		d, err := time.ParseDuration(*t.FixedStep)
		if err != nil {
			return base, &ConfigError{Field: "timing.fixed_step", Reason: "bad duration", Err: err}
		}
		base.FixedStep = d
	}
	return base, nil
}

// LoadConf reads filename through the overlay and applies it onto base.
// A missing file is not an error: base comes back unchanged.
func LoadConf(fsys *vfs.FS, filename string, base Config) (Config, error) {
	data, err := fsys.ReadFile(filename)
	if errors.Is(err, vfs.ErrNotFound) {
		return base, nil
	}
	if err != nil {
		return base, err
	}
	cfg, err := ParseConf(base, data, filename)
	if err != nil {
		return base, err
	}
	Logger().Info("conf file applied", "file", filename)
	return cfg, nil
}

// SaveConf writes the window and timing settings to the overlay's
// write root as HCL, in the shape LoadConf reads back.
func SaveConf(fsys *vfs.FS, filename string, cfg Config) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("title", cty.StringVal(cfg.Title))
	body.AppendNewline()

	win := body.AppendNewBlock("window", nil).Body()
	win.SetAttributeValue("width", cty.NumberIntVal(int64(cfg.Width)))
	win.SetAttributeValue("height", cty.NumberIntVal(int64(cfg.Height)))
	win.SetAttributeValue("resizable", cty.BoolVal(cfg.Resizable))
	win.SetAttributeValue("vsync", cty.BoolVal(cfg.Vsync))
	body.AppendNewline()

	timing := body.AppendNewBlock("timing", nil).Body()
	timing.SetAttributeValue("fixed_step", cty.StringVal(cfg.FixedStep.String()))

	return fsys.WriteFile(filename, f.Bytes())
}
