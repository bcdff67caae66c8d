package ssds

import (
	"io"
	"unicode/utf8"

	intr "github.com/dadrian/ssds/internal"
	"github.com/dadrian/ssds/schema"
)

// Writer encodes records to an io.Writer, declaring groups and items inline
// right before their first use.
//
// Every call hands exactly one record, preceded by any schema records it
// needs, to the transport in a single Write. Errors are sticky: once a call
// fails every later call returns the same error.
type Writer struct {
	w     io.Writer
	opts  options
	reg   *schema.Registry
	stack stack
	rec   []byte
	off   int64
	err   error
	done  bool
}

// NewWriter creates a streaming writer. The transport is never closed.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	return &Writer{w: w, opts: buildOptions(opts), reg: schema.New()}
}

func (w *Writer) WriteBool(name string, v bool) error {
	var n uint64
	if v {
		n = 1
	}
	return w.writeVarint(name, TypeBool, n)
}

func (w *Writer) WriteUint32(name string, v uint32) error {
	return w.writeVarint(name, TypeUint32, uint64(v))
}

func (w *Writer) WriteUint64(name string, v uint64) error {
	return w.writeVarint(name, TypeUint64, v)
}

func (w *Writer) WriteSint32(name string, v int32) error {
	return w.writeVarint(name, TypeSint32, uint64(intr.ZigZag32(v)))
}

func (w *Writer) WriteSint64(name string, v int64) error {
	return w.writeVarint(name, TypeSint64, intr.ZigZag64(v))
}

func (w *Writer) WriteFixed32(name string, v uint32) error {
	if err := w.field(name, TypeFixed32); err != nil {
		return err
	}
	w.rec = intr.AppendFixed32(w.rec, v)
	return w.flush()
}

func (w *Writer) WriteFixed64(name string, v uint64) error {
	if err := w.field(name, TypeFixed64); err != nil {
		return err
	}
	w.rec = intr.AppendFixed64(w.rec, v)
	return w.flush()
}

func (w *Writer) WriteSingle(name string, v float32) error {
	if err := w.field(name, TypeSingle); err != nil {
		return err
	}
	w.rec = intr.AppendSingle(w.rec, v)
	return w.flush()
}

func (w *Writer) WriteDouble(name string, v float64) error {
	if err := w.field(name, TypeDouble); err != nil {
		return err
	}
	w.rec = intr.AppendDouble(w.rec, v)
	return w.flush()
}

// WriteString writes a UTF-8 string field. Invalid UTF-8 is rejected with
// ErrInvalidTextEncoding.
func (w *Writer) WriteString(name, v string) error {
	if err := w.begin(); err != nil {
		return err
	}
	if !utf8.ValidString(v) {
		return w.fail(newError(ErrInvalidTextEncoding, w.off, "field %q: string is not valid utf-8", name))
	}
	if err := w.field(name, TypeString); err != nil {
		return err
	}
	w.rec = intr.AppendString(w.rec, v)
	return w.flush()
}

// WriteOptionalString writes *v, or nothing at all when v is nil.
func (w *Writer) WriteOptionalString(name string, v *string) error {
	if v == nil {
		return w.begin()
	}
	return w.WriteString(name, *v)
}

// WriteBytes writes a byte field. A nil slice is absent and writes nothing;
// an empty non-nil slice is written.
func (w *Writer) WriteBytes(name string, v []byte) error {
	if v == nil {
		return w.begin()
	}
	if err := w.field(name, TypeBytes); err != nil {
		return err
	}
	w.rec = intr.AppendBytes(w.rec, v)
	return w.flush()
}

// WriteEnum writes value of the enum group isa as field name. An empty isa
// defaults to name. An empty value is absent and writes nothing.
func (w *Writer) WriteEnum(name, isa, value string) error {
	if err := w.begin(); err != nil {
		return err
	}
	if value == "" {
		return nil
	}
	if isa == "" {
		isa = name
	}
	g, err := w.namespace()
	if err != nil {
		return err
	}
	eg, err := w.ensureGroup(isa, TypeEnum)
	if err != nil {
		return err
	}
	val, err := w.ensureItem(eg, value, TypeString, eg)
	if err != nil {
		return err
	}
	fld, err := w.ensureItem(g, name, TypeEnum, eg)
	if err != nil {
		return err
	}
	w.rec = intr.AppendTag(w.rec, intr.FieldTag(w.reg.Item(fld).Num, intr.WireVarint))
	w.rec = intr.AppendVarint(w.rec, uint64(w.reg.Item(val).Num))
	return w.flush()
}

// WriteStart opens a nested group: field name of struct group isa. An empty
// isa defaults to name.
func (w *Writer) WriteStart(name, isa string) error {
	if err := w.begin(); err != nil {
		return err
	}
	if isa == "" {
		isa = name
	}
	g, err := w.namespace()
	if err != nil {
		return err
	}
	sg, err := w.ensureGroup(isa, TypeStruct)
	if err != nil {
		return err
	}
	it, err := w.ensureItem(g, name, TypeStruct, sg)
	if err != nil {
		return err
	}
	w.stack.push(it)
	w.rec = intr.AppendTag(w.rec, intr.FieldTag(w.reg.Item(it).Num, intr.WireStartGroup))
	return w.flush()
}

// WriteEnd closes the innermost open group.
func (w *Writer) WriteEnd() error {
	if err := w.begin(); err != nil {
		return err
	}
	it, ok := w.stack.pop()
	if !ok {
		return w.fail(usageError("WriteEnd without an open group"))
	}
	w.rec = intr.AppendTag(w.rec, intr.FieldTag(w.reg.Item(it).Num, intr.WireEndGroup))
	return w.flush()
}

// Terminate writes the end-of-stream marker, a single zero byte. All groups
// must be closed; nothing can be written afterwards.
func (w *Writer) Terminate() error {
	if err := w.begin(); err != nil {
		return err
	}
	if d := w.stack.depth(); d > 0 {
		return w.fail(usageError("Terminate with %d open groups", d))
	}
	w.rec = append(w.rec, 0)
	if err := w.flush(); err != nil {
		return err
	}
	w.done = true
	return nil
}

// Depth returns the number of open groups.
func (w *Writer) Depth() int { return w.stack.depth() }

// Offset returns the number of bytes handed to the transport.
func (w *Writer) Offset() int64 { return w.off }

// Schema returns a snapshot of everything declared so far.
func (w *Writer) Schema() []schema.GroupInfo {
	if w.reg == nil {
		return nil
	}
	return w.reg.Groups()
}

// Release drops the registry and scratch memory. It performs no I/O; any
// later call is a usage error.
func (w *Writer) Release() {
	w.reg = nil
	w.stack = nil
	w.rec = nil
	if w.err == nil {
		w.err = usageError("writer released")
	}
}

func (w *Writer) writeVarint(name string, typ ValueType, v uint64) error {
	if err := w.field(name, typ); err != nil {
		return err
	}
	w.rec = intr.AppendVarint(w.rec, v)
	return w.flush()
}

// field starts a record for a scalar field and appends its tag.
func (w *Writer) field(name string, typ ValueType) error {
	if err := w.begin(); err != nil {
		return err
	}
	g, err := w.namespace()
	if err != nil {
		return err
	}
	it, err := w.ensureItem(g, name, typ, schema.NoGroup)
	if err != nil {
		return err
	}
	w.rec = intr.AppendTag(w.rec, intr.FieldTag(w.reg.Item(it).Num, wireTypeOf(typ)))
	return nil
}

// begin checks the writer is usable and resets the record buffer. It may be
// called more than once per record only before anything was appended.
func (w *Writer) begin() error {
	if w.err != nil {
		return w.err
	}
	if w.done {
		return usageError("write after Terminate")
	}
	w.rec = w.rec[:0]
	return nil
}

func (w *Writer) fail(err error) error {
	if w.err == nil {
		w.err = err
	}
	return w.err
}

func (w *Writer) namespace() (schema.GroupID, error) {
	if w.stack.depth() > 0 {
		return w.stack.namespace(w.reg), nil
	}
	return w.ensureGroup(RootGroup, TypeStruct)
}

func (w *Writer) ensureGroup(name string, kind ValueType) (schema.GroupID, error) {
	if !utf8.ValidString(name) {
		return 0, w.fail(newError(ErrInvalidTextEncoding, w.off, "group name is not valid utf-8"))
	}
	g, created, err := w.reg.EnsureGroup(name, kind)
	if err != nil {
		return 0, w.fail(classify(err, w.off))
	}
	if created {
		w.rec = intr.AppendTag(w.rec, intr.SchemaTag(intr.SchemaGroup))
		w.rec = append(w.rec, byte(kind))
		w.rec = intr.AppendString(w.rec, name)
		w.opts.logger.Debug("declare group", "group", name, "kind", kind)
	}
	return g, nil
}

func (w *Writer) ensureItem(g schema.GroupID, name string, typ ValueType, isa schema.GroupID) (schema.ItemID, error) {
	if !utf8.ValidString(name) {
		return 0, w.fail(newError(ErrInvalidTextEncoding, w.off, "item name is not valid utf-8"))
	}
	it, created, err := w.reg.EnsureItem(g, name, typ, isa)
	if err != nil {
		return 0, w.fail(classify(err, w.off))
	}
	if created {
		kind := intr.SchemaItem
		if isa != schema.NoGroup {
			kind = intr.SchemaItemIsa
		}
		w.rec = intr.AppendTag(w.rec, intr.SchemaTag(kind))
		w.rec = append(w.rec, byte(typ))
		w.rec = intr.AppendString(w.rec, name)
		w.rec = intr.AppendString(w.rec, w.reg.GroupName(g))
		if isa != schema.NoGroup {
			w.rec = intr.AppendString(w.rec, w.reg.GroupName(isa))
		}
		w.opts.logger.Debug("declare item",
			"group", w.reg.GroupName(g), "item", name, "id", w.reg.Item(it).Num,
			"type", typ, "isa", w.reg.GroupName(isa))
	}
	return it, nil
}

// flush hands the assembled record to the transport.
func (w *Writer) flush() error {
	n, err := w.w.Write(w.rec)
	w.off += int64(n)
	if err == nil && n < len(w.rec) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return w.fail(&Error{Offset: w.off, Kind: ErrUsage, Detail: "transport write failed", Err: err})
	}
	return nil
}
