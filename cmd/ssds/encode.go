package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/dadrian/ssds"
	"github.com/dadrian/ssds/textrep"

	"github.com/scott-cotton/cli"
)

func encode(cfg *EncodeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Encode.Parse(cc, args)
	if err != nil {
		cfg.Encode.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	ins, err := readInputs(cc, args)
	if err != nil {
		return err
	}
	var out io.Writer = cc.Out
	switch {
	case cfg.Validate:
		out = io.Discard
	case cfg.X:
		out = hex.NewEncoder(cc.Out)
	}
	if err := encodeInputs(cfg, out, ins); err != nil {
		return err
	}
	if cfg.X && !cfg.Validate {
		_, err = io.WriteString(cc.Out, "\n")
	}
	return err
}

// encodeInputs writes every input into one stream so that later inputs
// reuse the declarations of earlier ones.
func encodeInputs(cfg *EncodeConfig, out io.Writer, ins []input) error {
	w := ssds.NewWriter(out, cfg.streamOpts()...)
	defer w.Release()
	for _, in := range ins {
		var err error
		if cfg.Y {
			err = textrep.FromYAML(in.data, w)
		} else {
			err = textrep.Parse(in.data, w)
		}
		if err != nil {
			return fmt.Errorf("error encoding %s: %w", in.name, err)
		}
		theLog.Debug("encoded", "input", in.name, "offset", w.Offset())
	}
	if cfg.Terminate {
		return w.Terminate()
	}
	return nil
}
