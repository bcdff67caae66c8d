package ssds

import (
	"errors"
	"io"
	"iter"

	intr "github.com/dadrian/ssds/internal"
	"github.com/dadrian/ssds/schema"
)

// Reader decodes a stream record by record, rebuilding the schema from the
// declarations it meets along the way.
type Reader struct {
	src   *intr.Source
	opts  options
	reg   *schema.Registry
	stack stack
	rec   Record
	has   bool
	eos   bool
	err   error
}

// NewReader creates a streaming reader. It reads only as many bytes as each
// record needs and never closes r.
func NewReader(r io.Reader, opts ...Option) *Reader {
	return &Reader{src: intr.NewSource(r), opts: buildOptions(opts), reg: schema.New()}
}

// Next decodes the next data or control record, consuming any schema records
// in front of it. It returns false with a nil error at end of stream.
func (r *Reader) Next() (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	if r.eos {
		return false, nil
	}
	for {
		off := r.src.Offset()
		v, err := r.src.ReadVarint32()
		if errors.Is(err, io.EOF) && r.src.Offset() == off {
			return false, r.end()
		}
		if err != nil {
			return false, r.fail(err)
		}
		if v == 0 {
			return false, r.end()
		}
		tag := intr.ParseTag(v)
		if tag.IsSchema() {
			if err := r.readSchema(tag.SchemaKind()); err != nil {
				return false, r.fail(err)
			}
			continue
		}
		if err := r.readRecord(tag); err != nil {
			return false, r.fail(err)
		}
		r.has = true
		return true, nil
	}
}

// Record returns the record decoded by the last successful call to Next.
func (r *Reader) Record() (Record, error) {
	if r.reg == nil {
		return Record{}, usageError("reader released")
	}
	if !r.has {
		return Record{}, usageError("Record before Next")
	}
	return r.rec, nil
}

// Records iterates over the remaining records. Iteration stops after the
// first error, which is yielded with a zero Record.
func (r *Reader) Records() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			ok, err := r.Next()
			if err != nil {
				yield(Record{}, err)
				return
			}
			if !ok || !yield(r.rec, nil) {
				return
			}
		}
	}
}

// Depth returns the number of open groups.
func (r *Reader) Depth() int { return r.stack.depth() }

// Offset returns the number of bytes consumed.
func (r *Reader) Offset() int64 { return r.src.Offset() }

// Schema returns a snapshot of everything declared so far.
func (r *Reader) Schema() []schema.GroupInfo {
	if r.reg == nil {
		return nil
	}
	return r.reg.Groups()
}

// Release drops the registry and the last record. It performs no I/O; any
// later call is a usage error.
func (r *Reader) Release() {
	r.reg = nil
	r.stack = nil
	r.rec = Record{}
	r.has = false
	if r.err == nil {
		r.err = usageError("reader released")
	}
}

// end handles a clean end of stream.
func (r *Reader) end() error {
	r.eos = true
	if d := r.stack.depth(); d > 0 && !r.opts.lenientEnd {
		r.err = newError(ErrUnbalancedGroups, r.src.Offset(), "stream ended with %d open groups", d)
		return r.err
	}
	return nil
}

func (r *Reader) fail(err error) error {
	e := classify(err, r.src.Offset())
	if e.Kind == ErrTruncatedStream {
		// reported once; later calls see end of stream
		r.eos = true
		return e
	}
	r.err = e
	return e
}

func (r *Reader) readSchema(kind intr.SchemaKind) error {
	if kind < intr.SchemaGroup || kind > intr.SchemaItemIsa {
		return newError(ErrUnknownSchemaRecordKind, r.src.Offset(), "schema record kind %d", kind)
	}
	b, err := r.src.ReadByte()
	if err != nil {
		return err
	}
	typ := ValueType(b)
	name, err := r.src.ReadString(r.opts.maxLength)
	if err != nil {
		return err
	}
	if kind == intr.SchemaGroup {
		if _, err := r.reg.DeclareGroup(name, typ); err != nil {
			return err
		}
		r.opts.logger.Debug("declare group", "group", name, "kind", typ)
		return nil
	}
	group, err := r.src.ReadString(r.opts.maxLength)
	if err != nil {
		return err
	}
	var (
		isa string
		it  schema.ItemID
	)
	if kind == intr.SchemaItemIsa {
		if isa, err = r.src.ReadString(r.opts.maxLength); err != nil {
			return err
		}
		it, err = r.reg.DeclareItemIsa(group, name, typ, isa)
	} else {
		it, err = r.reg.DeclareItem(group, name, typ)
	}
	if err != nil {
		return err
	}
	r.opts.logger.Debug("declare item",
		"group", group, "item", name, "id", r.reg.Item(it).Num, "type", typ, "isa", isa)
	return nil
}

func (r *Reader) readRecord(tag intr.Tag) error {
	off := r.src.Offset()
	if tag.Wire > intr.WireSchema {
		return newError(ErrUnknownWireType, off, "wire type %d", tag.Wire)
	}
	if tag.Wire == intr.WireEndGroup {
		it, ok := r.stack.pop()
		if !ok {
			return newError(ErrUnbalancedGroups, off, "end of group %d with no open group", tag.Num)
		}
		item := r.reg.Item(it)
		if item.Num != tag.Num {
			return newError(ErrUnbalancedGroups, off, "end of group %d closes %q (id %d)", tag.Num, item.Name, item.Num)
		}
		r.rec = Record{Kind: EndRecord, Name: item.Name, ID: item.Num, Level: r.stack.depth(),
			Type: TypeStruct, Isa: r.reg.GroupName(item.Isa)}
		return nil
	}

	g := r.stack.namespace(r.reg)
	if g == schema.NoGroup {
		return newError(ErrUnresolvedReference, off, "item %d: no schema declared", tag.Num)
	}
	it, err := r.reg.ItemByNum(g, tag.Num)
	if err != nil {
		return err
	}
	item := r.reg.Item(it)
	if want := wireTypeOf(item.Type); want != tag.Wire {
		return newError(ErrWireTypeMismatch, off, "%q is %v, carried as %v", item.Name, item.Type, tag.Wire)
	}
	r.rec = Record{Name: item.Name, ID: item.Num, Level: r.stack.depth(), Type: item.Type,
		Isa: r.reg.GroupName(item.Isa)}
	if tag.Wire == intr.WireStartGroup {
		r.rec.Kind = StartRecord
		r.stack.push(it)
		return nil
	}
	r.rec.Value, err = r.readValue(item)
	return err
}

func (r *Reader) readValue(item schema.Item) (Value, error) {
	switch item.Type {
	case TypeBool:
		v, err := r.src.ReadVarint64()
		return Bool(v != 0), err
	case TypeUint32:
		v, err := r.src.ReadVarint32()
		return Uint32(v), err
	case TypeUint64:
		v, err := r.src.ReadVarint64()
		return Uint64(v), err
	case TypeSint32:
		v, err := r.src.ReadVarint32()
		return Sint32(intr.UnZigZag32(v)), err
	case TypeSint64:
		v, err := r.src.ReadVarint64()
		return Sint64(intr.UnZigZag64(v)), err
	case TypeFixed32:
		v, err := r.src.ReadFixed32()
		return Fixed32(v), err
	case TypeFixed64:
		v, err := r.src.ReadFixed64()
		return Fixed64(v), err
	case TypeSingle:
		v, err := r.src.ReadSingle()
		return Single(v), err
	case TypeDouble:
		v, err := r.src.ReadDouble()
		return Double(v), err
	case TypeString:
		v, err := r.src.ReadString(r.opts.maxLength)
		return String(v), err
	case TypeBytes:
		v, err := r.src.ReadBytes(r.opts.maxLength)
		return Bytes(v), err
	case TypeEnum:
		ord, err := r.src.ReadVarint32()
		if err != nil {
			return nil, err
		}
		val, err := r.reg.ItemByNum(item.Isa, ord)
		if err != nil {
			return nil, err
		}
		return Enum{Ordinal: ord, Name: r.reg.Item(val).Name}, nil
	}
	return nil, newError(ErrWireTypeMismatch, r.src.Offset(), "%q has no value encoding for %v", item.Name, item.Type)
}
