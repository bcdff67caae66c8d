package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/dadrian/ssds"

	"github.com/scott-cotton/cli"
)

func info(cfg *InfoConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Info.Parse(cc, args)
	if err != nil {
		cfg.Info.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	ins, err := cfg.readStreams(cc, args)
	if err != nil {
		return err
	}
	for _, in := range ins {
		st, err := collectInfo(cfg.MainConfig, in.data)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", in.name, err)
		}
		if len(ins) > 1 {
			fmt.Fprintf(cc.Out, "# from %s\n", in.name)
		}
		if err := st.write(cc.Out); err != nil {
			return err
		}
	}
	return nil
}

type streamInfo struct {
	Bytes    int64
	Records  int
	MaxDepth int
	Groups   int
	Items    int
	ByType   map[string]int
}

func collectInfo(cfg *MainConfig, data []byte) (*streamInfo, error) {
	rd := ssds.NewReader(bytes.NewReader(data), cfg.streamOpts()...)
	defer rd.Release()
	st := &streamInfo{ByType: map[string]int{}}
	for rec, err := range rd.Records() {
		if err != nil {
			return nil, err
		}
		st.Records++
		st.ByType[rec.TypeName()]++
		if rec.IsStart() {
			st.MaxDepth = max(st.MaxDepth, rec.Level+1)
		}
	}
	st.Bytes = rd.Offset()
	for _, g := range rd.Schema() {
		st.Groups++
		st.Items += len(g.Items)
	}
	return st, nil
}

func (st *streamInfo) write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "bytes: %d\n", st.Bytes)
	fmt.Fprintf(bw, "records: %d\n", st.Records)
	fmt.Fprintf(bw, "max depth: %d\n", st.MaxDepth)
	fmt.Fprintf(bw, "groups: %d\n", st.Groups)
	fmt.Fprintf(bw, "items: %d\n", st.Items)
	for _, k := range slices.Sorted(maps.Keys(st.ByType)) {
		fmt.Fprintf(bw, "    %s: %d\n", k, st.ByType[k])
	}
	return bw.Flush()
}
