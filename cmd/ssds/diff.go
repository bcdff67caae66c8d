package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dadrian/ssds"
	"github.com/dadrian/ssds/textrep"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires exactly 2 arguments", cli.ErrUsage)
	}
	ins, err := cfg.readStreams(cc, args)
	if err != nil {
		return err
	}
	texts := make([]string, 2)
	for i, in := range ins {
		text, err := formatText(cfg.MainConfig, in.data)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", in.name, err)
		}
		texts[i] = text
	}
	return writeDiff(cc.Out, lineDiff(texts[0], texts[1]), cfg.useColor(cc.Out))
}

// formatText renders data as uncolored text.
func formatText(cfg *MainConfig, data []byte) (string, error) {
	rd := ssds.NewReader(bytes.NewReader(data), cfg.streamOpts()...)
	defer rd.Release()
	var buf bytes.Buffer
	if err := textrep.Format(&buf, rd); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type diffLine struct {
	Op   byte // ' ', '-' or '+'
	Text string
}

func lineDiff(from, to string) []diffLine {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var res []diffLine
	for _, d := range diffs {
		op := byte(' ')
		switch d.Type {
		case diffpatch.DiffDelete:
			op = '-'
		case diffpatch.DiffInsert:
			op = '+'
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			res = append(res, diffLine{Op: op, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return res
}

func writeDiff(w io.Writer, lines []diffLine, colored bool) error {
	del, ins := fmt.Sprint, fmt.Sprint
	if colored {
		del = color.New(color.FgRed).Sprint
		ins = color.New(color.FgGreen).Sprint
	}
	for _, l := range lines {
		s := string(l.Op) + " " + l.Text
		switch l.Op {
		case '-':
			s = del(s)
		case '+':
			s = ins(s)
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}
