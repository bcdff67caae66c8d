package textrep

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dadrian/ssds"
)

// FormatOption configures Format.
type FormatOption func(*formatter)

// WithColors colors the output. A nil c uses NewColors.
func WithColors(c *Colors) FormatOption {
	return func(f *formatter) {
		if c == nil {
			c = NewColors()
		}
		f.colors = c
	}
}

// WithLevels annotates every line with the record's nesting level as a
// trailing comment.
func WithLevels() FormatOption {
	return func(f *formatter) { f.levels = true }
}

// WithIndent sets the indentation of nested fields. The default is four
// spaces.
func WithIndent(s string) FormatOption {
	return func(f *formatter) { f.indent = s }
}

type formatter struct {
	w      *bufio.Writer
	colors *Colors
	levels bool
	indent string
}

// Format renders every remaining record of rd as a document that Encode
// turns back into an equivalent stream. Floats keep their bits: a NaN other
// than the default one is written as nan.<hex bits>.
func Format(w io.Writer, rd *ssds.Reader, opts ...FormatOption) error {
	f := &formatter{w: bufio.NewWriter(w), colors: plainColors, indent: "    "}
	for _, opt := range opts {
		opt(f)
	}
	for rec, err := range rd.Records() {
		if err != nil {
			f.w.Flush()
			return err
		}
		f.record(rec)
	}
	return f.w.Flush()
}

// FormatRecord renders a single field or delimiter line without indentation
// or trailing newline.
func FormatRecord(rec ssds.Record) string {
	f := &formatter{colors: plainColors}
	return f.line(rec)
}

func (f *formatter) record(rec ssds.Record) {
	f.w.WriteString(strings.Repeat(f.indent, rec.Level))
	f.w.WriteString(f.line(rec))
	if f.levels {
		f.w.WriteString(" ")
		f.w.WriteString(f.colors.Get(CommentColor)(fmt.Sprintf("# level %d", rec.Level)))
	}
	f.w.WriteByte('\n')
}

func (f *formatter) line(rec ssds.Record) string {
	c := f.colors
	sep := c.Get(SepColor)
	if rec.IsEnd() {
		return sep("}")
	}
	var sb strings.Builder
	sb.WriteString(c.Get(FieldColor)(quoteName(rec.Name)))
	sb.WriteString(sep(":"))
	sb.WriteByte(' ')
	if rec.IsStart() {
		sb.WriteString(c.Get(TypeColor)("struct"))
		if rec.Isa != rec.Name {
			sb.WriteByte(' ')
			sb.WriteString(c.Get(IsaColor)(quoteName(rec.Isa)))
		}
		sb.WriteByte(' ')
		sb.WriteString(sep("{"))
		return sb.String()
	}
	sb.WriteString(c.Get(TypeColor)(typeWord(rec)))
	sb.WriteByte(' ')
	if e, ok := rec.Value.(ssds.Enum); ok {
		sb.WriteString(c.Get(IsaColor)(quoteName(rec.Isa)))
		sb.WriteByte(' ')
		sb.WriteString(c.Get(ValueColor)(quoteName(e.Name)))
	} else {
		sb.WriteString(c.Get(ValueColor)(FormatValue(rec.Value)))
	}
	sb.WriteString(sep(";"))
	return sb.String()
}

// typeWord is the keyword a field's type is written with.
func typeWord(rec ssds.Record) string {
	if rec.Type == ssds.TypeBool {
		return "bool"
	}
	return rec.Type.String()
}

// FormatValue renders v as a value literal.
func FormatValue(v ssds.Value) string {
	switch v := v.(type) {
	case ssds.Bool:
		return strconv.FormatBool(bool(v))
	case ssds.Uint32:
		return strconv.FormatUint(uint64(v), 10)
	case ssds.Uint64:
		return strconv.FormatUint(uint64(v), 10)
	case ssds.Sint32:
		return strconv.FormatInt(int64(v), 10)
	case ssds.Sint64:
		return strconv.FormatInt(int64(v), 10)
	case ssds.Fixed32:
		return strconv.FormatUint(uint64(v), 10)
	case ssds.Fixed64:
		return strconv.FormatUint(uint64(v), 10)
	case ssds.Single:
		if b := math.Float32bits(float32(v)); v != v {
			return formatNaN(uint64(b), singleNaN)
		}
		return formatFloat(float64(v), 32)
	case ssds.Double:
		if b := math.Float64bits(float64(v)); v != v {
			return formatNaN(b, doubleNaN)
		}
		return formatFloat(float64(v), 64)
	case ssds.String:
		return strconv.Quote(string(v))
	case ssds.Bytes:
		return `"` + hex.EncodeToString(v) + `"`
	case ssds.Enum:
		return quoteName(v.Name)
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// Bit patterns a bare nan literal stands for.
const (
	singleNaN = 0x7fc00000
	doubleNaN = 0x7ff8000000000001
)

// formatNaN keeps any other payload as nan.<hex bits>.
func formatNaN(bits, canonical uint64) string {
	if bits == canonical {
		return "nan"
	}
	return "nan." + strconv.FormatUint(bits, 16)
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func quoteName(s string) string {
	if isIdent(s) {
		return s
	}
	return strconv.Quote(s)
}
