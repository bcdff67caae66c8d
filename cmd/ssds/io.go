package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scott-cotton/cli"
)

type input struct {
	name string
	data []byte
}

// readInputs reads each named file, or stdin when there are none. "-" also
// names stdin.
func readInputs(cc *cli.Context, args []string) ([]input, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	res := make([]input, 0, len(args))
	for _, arg := range args {
		var (
			data []byte
			err  error
		)
		if arg == "-" {
			data, err = io.ReadAll(cc.In)
		} else {
			data, err = os.ReadFile(arg)
		}
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", arg, err)
		}
		res = append(res, input{name: arg, data: data})
	}
	return res, nil
}

// readStreams is readInputs for binary streams, decoding hex text under -x.
func (cfg *MainConfig) readStreams(cc *cli.Context, args []string) ([]input, error) {
	ins, err := readInputs(cc, args)
	if err != nil || !cfg.X {
		return ins, err
	}
	for i := range ins {
		if ins[i].data, err = decodeHex(ins[i].data); err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", ins[i].name, err)
		}
	}
	return ins, nil
}

// decodeHex decodes hex text, ignoring white space.
func decodeHex(text []byte) ([]byte, error) {
	return hex.DecodeString(strings.Join(strings.Fields(string(text)), ""))
}
