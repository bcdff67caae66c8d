package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dadrian/ssds"
	"github.com/dadrian/ssds/textrep"

	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		cfg.Dump.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	ins, err := cfg.readStreams(cc, args)
	if err != nil {
		return err
	}
	for i, in := range ins {
		if err := writeSep(cfg, cc.Out, i, len(ins), in.name); err != nil {
			return err
		}
		if err := dumpStream(cfg, cc.Out, in.data); err != nil {
			return fmt.Errorf("error decoding %s: %w", in.name, err)
		}
	}
	return nil
}

func writeSep(cfg *DumpConfig, w io.Writer, i, n int, name string) error {
	var err error
	switch {
	case n < 2:
	case cfg.Y && i > 0:
		_, err = io.WriteString(w, "---\n")
	case !cfg.Y:
		_, err = fmt.Fprintf(w, "# from %s\n", name)
	}
	return err
}

func dumpStream(cfg *DumpConfig, w io.Writer, data []byte) error {
	rd := ssds.NewReader(bytes.NewReader(data), cfg.streamOpts()...)
	defer rd.Release()
	if cfg.Y {
		out, err := textrep.ToYAML(rd)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	opts := cfg.formatOpts(w)
	if cfg.Levels {
		opts = append(opts, textrep.WithLevels())
	}
	return textrep.Format(w, rd, opts...)
}
