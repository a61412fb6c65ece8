package config

import (
	"flag"
	"io"
)

// Flags holds command-line overrides. Zero values leave the config untouched.
type Flags struct {
	ConfigPath  string
	WriteConfig string // Write the effective config here and exit
	Debug       bool
	Windowed    bool
	Fullscreen  bool
	Width       int
	Height      int
}

// ParseFlags parses args (without the program name) into Flags.
func ParseFlags(name string, args []string, usage io.Writer) (Flags, error) {
	var f Flags

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.StringVar(&f.ConfigPath, "config", "", "path to config file")
	fs.StringVar(&f.WriteConfig, "write-config", "", "write the effective config to this path and exit")
	fs.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	fs.BoolVar(&f.Windowed, "windowed", false, "force windowed mode")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "force fullscreen mode")
	fs.IntVar(&f.Width, "width", 0, "window width override")
	fs.IntVar(&f.Height, "height", 0, "window height override")

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}
	return f, nil
}

// apply copies the set overrides onto cfg. --fullscreen wins over --windowed.
func (f Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	switch {
	case f.Fullscreen:
		cfg.Graphics.Fullscreen = true
	case f.Windowed:
		cfg.Graphics.Fullscreen = false
	}
	if f.Width > 0 {
		cfg.Graphics.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Graphics.Height = f.Height
	}
}
