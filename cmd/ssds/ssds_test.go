package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/dadrian/ssds"
)

const personText = `person: struct Person {
    name: string "Ada";
    age: uint32 30;
}
`

func encodeText(t *testing.T, cfg *EncodeConfig, texts ...string) []byte {
	t.Helper()
	ins := make([]input, len(texts))
	for i, text := range texts {
		ins[i] = input{name: "in", data: []byte(text)}
	}
	var buf bytes.Buffer
	td.Require(t).CmpNoError(encodeInputs(cfg, &buf, ins))
	return buf.Bytes()
}

func personStream(t *testing.T) []byte {
	return encodeText(t, &EncodeConfig{MainConfig: &MainConfig{}}, personText)
}

func TestEncodeDump(t *testing.T) {
	stream := personStream(t)

	var out strings.Builder
	err := dumpStream(&DumpConfig{MainConfig: &MainConfig{}}, &out, stream)
	td.CmpNoError(t, err)
	td.Cmp(t, out.String(), personText)

	out.Reset()
	err = dumpStream(&DumpConfig{MainConfig: &MainConfig{}, Levels: true}, &out, stream)
	td.CmpNoError(t, err)
	td.Cmp(t, out.String(), `person: struct Person { # level 0
    name: string "Ada"; # level 1
    age: uint32 30; # level 1
} # level 0
`)
}

func TestEncodeInputsShareDeclarations(t *testing.T) {
	stream := encodeText(t, &EncodeConfig{MainConfig: &MainConfig{}}, "a: uint32 1;", "a: uint32 2;")
	recs, err := ssds.Unmarshal(stream)
	td.Require(t).CmpNoError(err)
	td.Cmp(t, recs, []ssds.Record{
		{Kind: ssds.FieldRecord, Name: "a", ID: 1, Type: ssds.TypeUint32, Value: ssds.Uint32(1)},
		{Kind: ssds.FieldRecord, Name: "a", ID: 1, Type: ssds.TypeUint32, Value: ssds.Uint32(2)},
	})
}

func TestEncodeTerminate(t *testing.T) {
	stream := encodeText(t, &EncodeConfig{MainConfig: &MainConfig{}, Terminate: true}, "a: bool true;")
	td.Cmp(t, stream[len(stream)-1], byte(0))

	// bytes after the marker are never read
	recs, err := ssds.Unmarshal(append(stream, 0xff, 0xff))
	td.CmpNoError(t, err)
	td.Cmp(t, recs, td.Len(1))
}

func TestEncodeYAML(t *testing.T) {
	stream := encodeText(t, &EncodeConfig{MainConfig: &MainConfig{}, Y: true}, "a: 1\nb: hi\n")

	var out strings.Builder
	td.CmpNoError(t, dumpStream(&DumpConfig{MainConfig: &MainConfig{}}, &out, stream))
	td.Cmp(t, out.String(), "a: sint64 1;\nb: string \"hi\";\n")

	out.Reset()
	td.CmpNoError(t, dumpStream(&DumpConfig{MainConfig: &MainConfig{}, Y: true}, &out, stream))
	td.Cmp(t, out.String(), td.All(td.Contains("a: 1"), td.Contains("b: hi")))
}

func TestEncodeErrorNamesInput(t *testing.T) {
	var buf bytes.Buffer
	err := encodeInputs(&EncodeConfig{MainConfig: &MainConfig{}}, &buf,
		[]input{{name: "bad.txt", data: []byte("a: uint32 -1;")}})
	td.Require(t).CmpError(err)
	td.Cmp(t, err.Error(), td.HasPrefix("error encoding bad.txt: textrep: 1:11: "))
}

func TestWriteSchema(t *testing.T) {
	groups, err := readSchema(&MainConfig{}, personStream(t))
	td.Require(t).CmpNoError(err)

	var out strings.Builder
	td.CmpNoError(t, writeSchema(&out, groups))
	td.Cmp(t, out.String(), `struct ssds0
    1 person: struct Person
struct Person
    1 name: string
    2 age: uint32
`)
}

func TestWriteSchemaEnum(t *testing.T) {
	stream := encodeText(t, &EncodeConfig{MainConfig: &MainConfig{}},
		"s: enum Status ACTIVE; s: enum Status IDLE;")
	groups, err := readSchema(&MainConfig{}, stream)
	td.Require(t).CmpNoError(err)

	var out strings.Builder
	td.CmpNoError(t, writeSchema(&out, groups))
	td.Cmp(t, out.String(), `struct ssds0
    1 s: enum Status
enum Status
    1 ACTIVE
    2 IDLE
`)
}

func TestCollectInfo(t *testing.T) {
	stream := personStream(t)
	st, err := collectInfo(&MainConfig{}, stream)
	td.Require(t).CmpNoError(err)
	td.Cmp(t, st, &streamInfo{
		Bytes:    int64(len(stream)),
		Records:  4,
		MaxDepth: 1,
		Groups:   2,
		Items:    3,
		ByType:   map[string]int{"start_group": 1, "string": 1, "uint32": 1, "end_group": 1},
	})

	var out strings.Builder
	td.CmpNoError(t, st.write(&out))
	td.Cmp(t, out.String(), td.Contains("max depth: 1\n"))
	td.Cmp(t, out.String(), td.HasSuffix("    end_group: 1\n    start_group: 1\n    string: 1\n    uint32: 1\n"))
}

func TestCollectInfoTruncated(t *testing.T) {
	stream := personStream(t)
	_, err := collectInfo(&MainConfig{}, stream[:len(stream)-1])
	td.CmpTrue(t, errors.Is(err, ssds.ErrUnbalancedGroups))

	st, err := collectInfo(&MainConfig{Lenient: true}, stream[:len(stream)-1])
	td.CmpNoError(t, err)
	td.Cmp(t, st.Records, 3)
}

func TestLineDiff(t *testing.T) {
	lines := lineDiff("a\nb\nc\n", "a\nx\nc\n")
	td.Cmp(t, lines, []diffLine{
		{Op: ' ', Text: "a"},
		{Op: '-', Text: "b"},
		{Op: '+', Text: "x"},
		{Op: ' ', Text: "c"},
	})

	var out strings.Builder
	td.CmpNoError(t, writeDiff(&out, lines, false))
	td.Cmp(t, out.String(), "  a\n- b\n+ x\n  c\n")

	td.Cmp(t, lineDiff("same\n", "same\n"), []diffLine{{Op: ' ', Text: "same"}})
}

func TestFormatTextDiff(t *testing.T) {
	cfg := &EncodeConfig{MainConfig: &MainConfig{}}
	a, err := formatText(cfg.MainConfig, encodeText(t, cfg, "n: uint32 1; s: string \"x\";"))
	td.Require(t).CmpNoError(err)
	b, err := formatText(cfg.MainConfig, encodeText(t, cfg, "n: uint32 2; s: string \"x\";"))
	td.Require(t).CmpNoError(err)
	td.Cmp(t, lineDiff(a, b), []diffLine{
		{Op: '-', Text: "n: uint32 1;"},
		{Op: '+', Text: "n: uint32 2;"},
		{Op: ' ', Text: `s: string "x";`},
	})
}

func TestFilter(t *testing.T) {
	stream := personStream(t)
	cfg := &FilterConfig{MainConfig: &MainConfig{}}

	prg, err := compileFilter(`type == "uint32" && value >= 30`)
	td.Require(t).CmpNoError(err)
	var out strings.Builder
	n, err := filterStream(cfg, &out, prg, stream)
	td.CmpNoError(t, err)
	td.Cmp(t, n, 1)
	td.Cmp(t, out.String(), "    age: uint32 30;\n")

	prg, err = compileFilter(`start || end`)
	td.Require(t).CmpNoError(err)
	out.Reset()
	n, err = filterStream(cfg, &out, prg, stream)
	td.CmpNoError(t, err)
	td.Cmp(t, n, 2)
	td.Cmp(t, out.String(), "person: struct Person {\n}\n")

	prg, err = compileFilter(`level > 0`)
	td.Require(t).CmpNoError(err)
	out.Reset()
	cfg.Count = true
	n, err = filterStream(cfg, &out, prg, stream)
	td.CmpNoError(t, err)
	td.Cmp(t, n, 2)
	td.Cmp(t, out.String(), "")
}

func TestFilterRecordEnv(t *testing.T) {
	env := newRecordEnv(ssds.Record{
		Kind:  ssds.FieldRecord,
		Name:  "s",
		ID:    3,
		Level: 2,
		Type:  ssds.TypeEnum,
		Isa:   "Status",
		Value: ssds.Enum{Ordinal: 1, Name: "ACTIVE"},
	})
	td.Cmp(t, env, recordEnv{Name: "s", ID: 3, Level: 2, Type: "enum", Isa: "Status", Value: "ACTIVE"})
}

func TestCompileFilterErrors(t *testing.T) {
	for _, src := range []string{`1 + 2`, `name ==`, `nosuch == 1`} {
		_, err := compileFilter(src)
		td.CmpError(t, err, src)
	}
}

func TestDecodeHex(t *testing.T) {
	b, err := decodeHex([]byte("0a 0B\n ff\n"))
	td.CmpNoError(t, err)
	td.Cmp(t, b, []byte{0x0a, 0x0b, 0xff})

	_, err = decodeHex([]byte("0g"))
	td.CmpError(t, err)
}
