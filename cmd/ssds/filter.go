package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dadrian/ssds"
	"github.com/dadrian/ssds/textrep"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"
)

func filter(cfg *FilterConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Filter.Parse(cc, args)
	if err != nil {
		cfg.Filter.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: filter requires an expression", cli.ErrUsage)
	}
	prg, err := compileFilter(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	ins, err := cfg.readStreams(cc, args[1:])
	if err != nil {
		return err
	}
	n := 0
	for _, in := range ins {
		m, err := filterStream(cfg, cc.Out, prg, in.data)
		if err != nil {
			return fmt.Errorf("error filtering %s: %w", in.name, err)
		}
		n += m
	}
	if cfg.Count {
		_, err = fmt.Fprintln(cc.Out, n)
	}
	return err
}

// recordEnv is what a filter expression sees of a record.
type recordEnv struct {
	Name  string `expr:"name"`
	ID    uint32 `expr:"id"`
	Level int    `expr:"level"`
	Type  string `expr:"type"`
	Isa   string `expr:"isa"`
	Value any    `expr:"value"`
	Start bool   `expr:"start"`
	End   bool   `expr:"end"`
}

func newRecordEnv(rec ssds.Record) recordEnv {
	env := recordEnv{
		Name:  rec.Name,
		ID:    rec.ID,
		Level: rec.Level,
		Type:  rec.TypeName(),
		Isa:   rec.Isa,
		Start: rec.IsStart(),
		End:   rec.IsEnd(),
	}
	if rec.Value != nil {
		env.Value = rec.Value.Interface()
	}
	return env
}

func compileFilter(src string) (*vm.Program, error) {
	return expr.Compile(src, expr.Env(recordEnv{}), expr.AsBool())
}

func matchRecord(prg *vm.Program, rec ssds.Record) (bool, error) {
	res, err := expr.Run(prg, newRecordEnv(rec))
	if err != nil {
		return false, err
	}
	ok, _ := res.(bool)
	return ok, nil
}

// filterStream prints the matching records of data, indented by level, and
// returns how many matched.
func filterStream(cfg *FilterConfig, w io.Writer, prg *vm.Program, data []byte) (int, error) {
	rd := ssds.NewReader(bytes.NewReader(data), cfg.streamOpts()...)
	defer rd.Release()
	n := 0
	for rec, err := range rd.Records() {
		if err != nil {
			return n, err
		}
		ok, err := matchRecord(prg, rec)
		if err != nil {
			return n, err
		}
		if !ok {
			continue
		}
		n++
		if cfg.Count {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("    ", rec.Level), textrep.FormatRecord(rec)); err != nil {
			return n, err
		}
	}
	return n, nil
}
