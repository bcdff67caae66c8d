package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/dadrian/ssds"
	"github.com/dadrian/ssds/schema"

	"github.com/scott-cotton/cli"
)

func printSchema(cfg *SchemaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Schema.Parse(cc, args)
	if err != nil {
		cfg.Schema.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	ins, err := cfg.readStreams(cc, args)
	if err != nil {
		return err
	}
	for _, in := range ins {
		groups, err := readSchema(cfg.MainConfig, in.data)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", in.name, err)
		}
		if len(ins) > 1 {
			fmt.Fprintf(cc.Out, "# from %s\n", in.name)
		}
		if err := writeSchema(cc.Out, groups); err != nil {
			return err
		}
	}
	return nil
}

// readSchema decodes a whole stream and returns what it declared.
func readSchema(cfg *MainConfig, data []byte) ([]schema.GroupInfo, error) {
	rd := ssds.NewReader(bytes.NewReader(data), cfg.streamOpts()...)
	defer rd.Release()
	for _, err := range rd.Records() {
		if err != nil {
			return nil, err
		}
	}
	return rd.Schema(), nil
}

// writeSchema lists each group with its items in id order. Enum groups list
// their values by ordinal.
func writeSchema(w io.Writer, groups []schema.GroupInfo) error {
	bw := bufio.NewWriter(w)
	for _, g := range groups {
		fmt.Fprintf(bw, "%s %s\n", g.Kind, g.Name)
		for _, it := range g.Items {
			switch {
			case g.Kind == schema.Enum:
				fmt.Fprintf(bw, "    %d %s\n", it.Num, it.Name)
			case it.Isa != "":
				fmt.Fprintf(bw, "    %d %s: %s %s\n", it.Num, it.Name, it.Type, it.Isa)
			default:
				fmt.Fprintf(bw, "    %d %s: %s\n", it.Num, it.Name, it.Type)
			}
		}
	}
	return bw.Flush()
}
