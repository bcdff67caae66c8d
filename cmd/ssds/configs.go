package main

import (
	"io"
	"os"

	"github.com/dadrian/ssds"
	"github.com/dadrian/ssds/textrep"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	V       bool `cli:"name=v aliases=verbose desc='log schema declarations to stderr'"`
	Color   bool `cli:"name=color desc='format with color'"`
	X       bool `cli:"name=x aliases=hex desc='binary streams are hex text'"`
	Lenient bool `cli:"name=lenient desc='accept streams ending inside a group'"`
	MaxLen  int  `cli:"name=maxlen desc='largest string or bytes payload accepted on read'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) streamOpts() []ssds.Option {
	res := []ssds.Option{ssds.WithLogger(theLog)}
	if cfg.MaxLen > 0 {
		res = append(res, ssds.WithMaxLength(cfg.MaxLen))
	}
	if cfg.Lenient {
		res = append(res, ssds.WithLenientEnd())
	}
	return res
}

// useColor reports whether output to w is colored: -color when given,
// otherwise whether w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) formatOpts(w io.Writer) []textrep.FormatOption {
	if cfg.useColor(w) {
		return []textrep.FormatOption{textrep.WithColors(nil)}
	}
	return nil
}

type EncodeConfig struct {
	*MainConfig
	Y         bool `cli:"name=y aliases=yaml desc='input is yaml'"`
	Validate  bool `cli:"name=validate desc='check the input without writing a stream'"`
	Terminate bool `cli:"name=t aliases=terminate desc='end the stream with a zero tag'"`

	Encode *cli.Command
}

type DumpConfig struct {
	*MainConfig
	Y      bool `cli:"name=y aliases=yaml desc='output yaml'"`
	Levels bool `cli:"name=levels desc='annotate lines with nesting levels'"`

	Dump *cli.Command
}

type SchemaConfig struct {
	*MainConfig
	Schema *cli.Command
}

type InfoConfig struct {
	*MainConfig
	Info *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Diff *cli.Command
}

type FilterConfig struct {
	*MainConfig
	Count bool `cli:"name=c aliases=count desc='print the number of matches only'"`

	Filter *cli.Command
}
