// Package textrep is a text rendition of SSDS streams.
//
// A document is a sequence of fields, one per record:
//
//	name: string "Ada";
//	age: uint32 30;
//	status: enum Status ACTIVE;
//	blob: bytes "00ff";
//	person: struct Person { name: string "Ada"; }
//
// Encode turns a document into a binary stream and Format renders a stream
// back into the same syntax.
package textrep

import (
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dadrian/ssds"
	intr "github.com/dadrian/ssds/internal"
	"github.com/dadrian/ssds/schema"
)

// SyntaxError reports a malformed document.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("textrep: %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Encode reads a document from r and writes its binary stream to w.
func Encode(r io.Reader, w io.Writer, opts ...ssds.Option) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return Parse(src, ssds.NewWriter(w, opts...))
}

// EncodeBytes parses a document and returns its binary stream.
func EncodeBytes(src []byte, opts ...ssds.Option) ([]byte, error) {
	buf := intr.GetBuffer()
	defer intr.PutBuffer(buf)
	w := ssds.NewWriter(buf, opts...)
	defer w.Release()
	if err := Parse(src, w); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.Bytes()...), nil
}

// Parse parses a document and writes each field to w as it goes.
func Parse(src []byte, w *ssds.Writer) error {
	p := &parser{lx: newLexer(src), w: w}
	p.lx.next()
	for p.lx.cur.kind != tokEOF {
		if err := p.parseField(); err != nil {
			return err
		}
	}
	return nil
}

type parser struct {
	lx *lexer
	w  *ssds.Writer
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.lx.cur.line, Col: p.lx.cur.col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) unexpected(want string) error {
	cur := p.lx.cur
	if cur.kind == tokIllegal {
		return p.errorf("%s", cur.lit)
	}
	if cur.lit != "" {
		return p.errorf("expected %s, got %v (%s)", want, cur.kind, cur.lit)
	}
	return p.errorf("expected %s, got %v", want, cur.kind)
}

func (p *parser) expect(k tokKind) error {
	if p.lx.cur.kind != k {
		return p.unexpected(k.String())
	}
	p.lx.next()
	return nil
}

// name accepts an identifier or a quoted string.
func (p *parser) name(what string) (string, error) {
	switch p.lx.cur.kind {
	case tokIdent, tokString:
		s := p.lx.cur.lit
		p.lx.next()
		return s, nil
	}
	return "", p.unexpected(what)
}

// parseField parses `name: type value;` and the struct and enum forms.
func (p *parser) parseField() error {
	name, err := p.name("field name")
	if err != nil {
		return err
	}
	if err := p.expect(tokColon); err != nil {
		return err
	}
	switch p.lx.cur.kind {
	case tokStruct:
		p.lx.next()
		return p.parseStruct(name)
	case tokEnum:
		p.lx.next()
		isa, err := p.name("enum group name")
		if err != nil {
			return err
		}
		value, err := p.name("enum value")
		if err != nil {
			return err
		}
		if err := p.w.WriteEnum(name, isa, value); err != nil {
			return err
		}
		return p.expect(tokSemi)
	case tokIdent:
	default:
		return p.unexpected("type")
	}
	typ, ok := schema.ParseType(p.lx.cur.lit)
	if !ok || typ == schema.Struct || typ == schema.Enum {
		return p.errorf("unknown type %q", p.lx.cur.lit)
	}
	p.lx.next()
	if err := p.parseScalar(name, typ); err != nil {
		return err
	}
	p.lx.next()
	return p.expect(tokSemi)
}

func (p *parser) parseStruct(name string) error {
	isa := name
	if p.lx.cur.kind == tokIdent || p.lx.cur.kind == tokString {
		isa = p.lx.cur.lit
		p.lx.next()
	}
	if err := p.expect(tokLBrace); err != nil {
		return err
	}
	if err := p.w.WriteStart(name, isa); err != nil {
		return err
	}
	for p.lx.cur.kind != tokRBrace {
		if p.lx.cur.kind == tokEOF {
			return p.unexpected("'}'")
		}
		if err := p.parseField(); err != nil {
			return err
		}
	}
	p.lx.next()
	if p.lx.cur.kind == tokSemi {
		p.lx.next()
	}
	return p.w.WriteEnd()
}

// parseScalar writes the value at the current token. It does not advance.
func (p *parser) parseScalar(name string, typ schema.Type) error {
	cur := p.lx.cur
	switch typ {
	case schema.Bool:
		switch cur.kind {
		case tokTrue:
			return p.w.WriteBool(name, true)
		case tokFalse:
			return p.w.WriteBool(name, false)
		}
		return p.unexpected("true or false")
	case schema.String:
		if cur.kind != tokString {
			return p.unexpected("string")
		}
		return p.w.WriteString(name, cur.lit)
	case schema.Bytes:
		if cur.kind != tokString {
			return p.unexpected("hex string")
		}
		b, err := hex.DecodeString(strings.ReplaceAll(cur.lit, " ", ""))
		if err != nil {
			return p.errorf("bad hex: %v", err)
		}
		return p.w.WriteBytes(name, b)
	case schema.Single, schema.Double:
		bits := 64
		if typ == schema.Single {
			bits = 32
		}
		if cur.kind == tokIdent && strings.HasPrefix(cur.lit, "nan") {
			nan, err := p.parseNaN(bits)
			if err != nil {
				return err
			}
			if typ == schema.Single {
				return p.w.WriteSingle(name, math.Float32frombits(uint32(nan)))
			}
			return p.w.WriteDouble(name, math.Float64frombits(nan))
		}
		f, err := p.parseFloat(bits)
		if err != nil {
			return err
		}
		if typ == schema.Single {
			return p.w.WriteSingle(name, float32(f))
		}
		return p.w.WriteDouble(name, f)
	case schema.Sint32, schema.Sint64:
		bits := 64
		if typ == schema.Sint32 {
			bits = 32
		}
		v, err := p.parseInt(bits)
		if err != nil {
			return err
		}
		if typ == schema.Sint32 {
			return p.w.WriteSint32(name, int32(v))
		}
		return p.w.WriteSint64(name, v)
	}
	bits := 64
	if typ == schema.Uint32 || typ == schema.Fixed32 {
		bits = 32
	}
	v, err := p.parseUint(bits)
	if err != nil {
		return err
	}
	switch typ {
	case schema.Uint32:
		return p.w.WriteUint32(name, uint32(v))
	case schema.Fixed32:
		return p.w.WriteFixed32(name, uint32(v))
	case schema.Fixed64:
		return p.w.WriteFixed64(name, v)
	}
	return p.w.WriteUint64(name, v)
}

func (p *parser) parseUint(bits int) (uint64, error) {
	cur := p.lx.cur
	if cur.kind != tokInt {
		return 0, p.unexpected("unsigned integer")
	}
	lit := strings.ReplaceAll(cur.lit, "_", "")
	if cur.intBase == 16 {
		lit = lit[2:]
	}
	v, err := strconv.ParseUint(lit, cur.intBase, bits)
	if err != nil {
		return 0, p.errorf("bad uint%d %q", bits, cur.lit)
	}
	return v, nil
}

func (p *parser) parseInt(bits int) (int64, error) {
	cur := p.lx.cur
	if cur.kind != tokInt {
		return 0, p.unexpected("integer")
	}
	lit := strings.ReplaceAll(cur.lit, "_", "")
	if cur.intBase == 16 {
		lit = lit[2:]
	}
	v, err := strconv.ParseInt(lit, cur.intBase, bits)
	if err != nil {
		return 0, p.errorf("bad sint%d %q", bits, cur.lit)
	}
	return v, nil
}

// parseNaN returns the bit pattern of nan or nan.<hex bits>.
func (p *parser) parseNaN(bits int) (uint64, error) {
	lit := p.lx.cur.lit
	if lit == "nan" {
		if bits == 32 {
			return singleNaN, nil
		}
		return doubleNaN, nil
	}
	hexBits, ok := strings.CutPrefix(lit, "nan.")
	if !ok {
		return 0, p.unexpected("number")
	}
	v, err := strconv.ParseUint(hexBits, 16, bits)
	if err != nil {
		return 0, p.errorf("bad nan payload %q", lit)
	}
	isNaN := math.IsNaN(math.Float64frombits(v))
	if bits == 32 {
		f := math.Float32frombits(uint32(v))
		isNaN = f != f
	}
	if !isNaN {
		return 0, p.errorf("%q is not a nan", lit)
	}
	return v, nil
}

func (p *parser) parseFloat(bits int) (float64, error) {
	cur := p.lx.cur
	switch {
	case cur.kind == tokIdent && cur.lit == "inf":
		return math.Inf(1), nil
	case cur.kind == tokFloat && cur.lit == "-inf":
		return math.Inf(-1), nil
	case cur.kind == tokFloat, cur.kind == tokInt && cur.intBase == 10:
		f, err := strconv.ParseFloat(strings.ReplaceAll(cur.lit, "_", ""), bits)
		if err != nil {
			return 0, p.errorf("bad float %q", cur.lit)
		}
		return f, nil
	}
	return 0, p.unexpected("number")
}
