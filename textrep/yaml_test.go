package textrep

import (
	"bytes"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/maxatome/go-testdeep/td"

	"github.com/dadrian/ssds"
)

// yamlEqual compares documents after decoding so that layout choices of the
// encoder do not matter.
func yamlEqual(t *testing.T, got []byte, want string) {
	t.Helper()
	var g, w any
	td.CmpNoError(t, yaml.UnmarshalWithOptions(got, &g, yaml.UseOrderedMap()))
	td.CmpNoError(t, yaml.UnmarshalWithOptions([]byte(want), &w, yaml.UseOrderedMap()))
	td.Cmp(t, g, w, "got:\n%s", got)
}

func fromYAML(t *testing.T, src string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := ssds.NewWriter(&buf)
	td.CmpNoError(t, FromYAML([]byte(src), w))
	return buf.Bytes()
}

func TestFromYAML(t *testing.T) {
	stream := fromYAML(t, `
name: Ada
age: 36
big: 18446744073709551615
neg: -3
ratio: 0.25
active: true
nothing: null
person:
  city: London
tags: [a, b]
`)
	td.Cmp(t, format(t, stream), `name: string "Ada";
age: sint64 36;
big: uint64 18446744073709551615;
neg: sint64 -3;
ratio: double 0.25;
active: bool true;
person: struct {
    city: string "London";
}
tags: string "a";
tags: string "b";
`)
}

func TestYAMLRoundTrip(t *testing.T) {
	src := `name: Ada
age: 36
person:
  city: London
  visits:
  - 1
  - 2
tags:
- a
- b
`
	stream := fromYAML(t, src)
	out, err := ToYAML(ssds.NewReader(bytes.NewReader(stream)))
	td.CmpNoError(t, err)
	yamlEqual(t, out, src)
}

func TestToYAMLValues(t *testing.T) {
	stream, err := EncodeBytes([]byte(`
status: enum Status ACTIVE;
blob: bytes "00ff";
p: struct P { n: uint32 1; }
p: struct P { n: uint32 2; }
`))
	td.CmpNoError(t, err)
	out, err := ToYAML(ssds.NewReader(bytes.NewReader(stream)))
	td.CmpNoError(t, err)
	yamlEqual(t, out, `status: ACTIVE
blob: 00ff
p:
- n: 1
- n: 2
`)
}

func TestFromYAMLErrors(t *testing.T) {
	var buf bytes.Buffer
	err := FromYAML([]byte("- a\n- b\n"), ssds.NewWriter(&buf))
	td.Cmp(t, err, td.Smuggle(func(e error) string { return e.Error() }, td.Contains("not a mapping")))

	err = FromYAML([]byte("x: [[1]]\n"), ssds.NewWriter(&buf))
	td.Cmp(t, err, td.Smuggle(func(e error) string { return e.Error() }, td.Contains("nested sequences")))
}
