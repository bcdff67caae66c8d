package ssds

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var rootDecl = wire(0x0E, 'm', ls("ssds0"))

func nextErr(t *testing.T, stream []byte, opts ...Option) error {
	t.Helper()
	rd := NewReader(bytes.NewReader(stream), opts...)
	for {
		ok, err := rd.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

func TestReaderMalformed(t *testing.T) {
	cases := []struct {
		name   string
		stream []byte
		kind   ErrorKind
	}{
		{"long tag varint", wire(0x80, 0x80, 0x80, 0x80, 0x80, 0x01), ErrMalformedVarint},
		{"wide tag varint", wire(0xff, 0xff, 0xff, 0xff, 0x1f), ErrMalformedVarint},
		{"wire type 7", wire(rootDecl, 0x0F), ErrUnknownWireType},
		{"schema kind 4", wire(0x26, 'm', ls("x")), ErrUnknownSchemaRecordKind},
		{"schema kind 0", wire(0x06), ErrUnknownSchemaRecordKind},
		{"no schema", wire(0x08, 0x01), ErrUnresolvedReference},
		{"unknown id", wire(rootDecl, 0x28, 0x01), ErrUnresolvedReference},
		{"unknown owner", wire(0x16, 'i', ls("n"), ls("nowhere")), ErrUnresolvedReference},
		{"unknown isa", wire(rootDecl, 0x1E, 'm', ls("p"), ls("ssds0"), ls("P")), ErrUnresolvedReference},
		{"unknown enum ordinal", wire(
			rootDecl,
			0x0E, 'e', ls("E"),
			0x1E, 'e', ls("e"), ls("ssds0"), ls("E"),
			0x08, 0x01,
		), ErrUnresolvedReference},
		{"wire type mismatch", wire(rootDecl, 0x16, 'i', ls("n"), ls("ssds0"), 0x0A, ls("x")), ErrWireTypeMismatch},
		{"group kind conflict", wire(rootDecl, 0x0E, 'e', ls("ssds0")), ErrSchemaConflict},
		{"duplicate item", wire(rootDecl, 0x16, 'i', ls("n"), ls("ssds0"), 0x16, 'i', ls("n"), ls("ssds0")), ErrSchemaConflict},
		{"bad group kind", wire(0x0E, 's', ls("g")), ErrSchemaConflict},
		{"bad string", wire(rootDecl, 0x16, 's', ls("s"), ls("ssds0"), 0x0A, 0x02, 0xc3, 0x28), ErrInvalidTextEncoding},
		{"bad name", wire(0x0E, 'm', 0x01, 0xff), ErrInvalidTextEncoding},
		{"end without start", wire(rootDecl, 0x0C), ErrUnbalancedGroups},
		{"end of wrong group", wire(
			rootDecl,
			0x0E, 'm', ls("P"),
			0x1E, 'm', ls("p"), ls("ssds0"), ls("P"),
			0x1E, 'm', ls("q"), ls("ssds0"), ls("P"),
			0x0B, 0x14,
		), ErrUnbalancedGroups},
		{"open group at end", wire(personStream[:len(personStream)-1]), ErrUnbalancedGroups},
		{"truncated tag", wire(rootDecl, 0x80), ErrTruncatedStream},
		{"truncated schema record", wire(0x0E, 'm', 0x05, "ss"), ErrTruncatedStream},
		{"truncated fixed", wire(rootDecl, 0x16, 'q', ls("f"), ls("ssds0"), 0x0D, 1, 2), ErrTruncatedStream},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			requireKind(t, nextErr(t, c.stream), c.kind)
		})
	}
}

func TestLenientEnd(t *testing.T) {
	open := personStream[:len(personStream)-1]
	require.NoError(t, nextErr(t, open, WithLenientEnd()))

	rd := NewReader(bytes.NewReader(open), WithLenientEnd())
	var last Record
	for rec, err := range rd.Records() {
		require.NoError(t, err)
		last = rec
	}
	require.Equal(t, "age", last.Name)
	require.Equal(t, 1, rd.Depth())
}

func TestMaxLength(t *testing.T) {
	b := marshal(t, func(w *Writer) error { return w.WriteString("s", "0123456789") })
	requireKind(t, nextErr(t, b, WithMaxLength(8)), ErrLengthOverflow)
	require.NoError(t, nextErr(t, b, WithMaxLength(10)))
}

func TestReaderErrorsAreSticky(t *testing.T) {
	rd := NewReader(bytes.NewReader(wire(0x08, 0x01, 0x08, 0x01)))
	_, err := rd.Next()
	requireKind(t, err, ErrUnresolvedReference)
	ok, again := rd.Next()
	require.False(t, ok)
	require.Equal(t, err, again)
}

func TestTransportReadFailure(t *testing.T) {
	boom := errors.New("boom")
	r := iotest.ErrReader(boom)
	rd := NewReader(r)
	_, err := rd.Next()
	requireKind(t, err, ErrTruncatedStream)
	require.ErrorIs(t, err, boom)

	ok, err := rd.Next()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRecordAccessor(t *testing.T) {
	rd := NewReader(bytes.NewReader(personStream))
	_, err := rd.Record()
	requireKind(t, err, ErrUsage)

	ok, err := rd.Next()
	require.NoError(t, err)
	require.True(t, ok)
	rec, err := rd.Record()
	require.NoError(t, err)
	require.True(t, rec.IsStart())
	require.Equal(t, 1, rd.Depth())

	rd.Release()
	_, err = rd.Record()
	requireKind(t, err, ErrUsage)
	_, err = rd.Next()
	requireKind(t, err, ErrUsage)
}

func TestReaderConsumesOnlyWhatItNeeds(t *testing.T) {
	var w countingWriter
	wr := NewWriter(&w)
	require.NoError(t, writePerson(wr))

	// OneByteReader hides io.ByteReader and proves the reader never reads
	// ahead of a record boundary.
	rd := NewReader(iotest.OneByteReader(bytes.NewReader(w.Bytes())))
	var end int64
	for i := 0; ; i++ {
		ok, err := rd.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		end += int64(w.writes[i])
		require.Equal(t, end, rd.Offset(), "record %d", i)
	}
}

func TestSchemaSnapshotsAgree(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, writePerson(w))
	require.NoError(t, w.WriteEnum("status", "Status", "IDLE"))
	require.NoError(t, w.WriteEnum("status", "Status", "ACTIVE"))

	rd := NewReader(&buf)
	for _, err := range rd.Records() {
		require.NoError(t, err)
	}
	if diff := cmp.Diff(w.Schema(), rd.Schema()); diff != "" {
		t.Fatalf("schema mismatch (-writer +reader):\n%s", diff)
	}
	require.Equal(t, []string{"IDLE", "ACTIVE"}, rd.Schema()[2].Values())
}

func TestReadAllStopsAtError(t *testing.T) {
	stream := wire(personStream[:len(personStream)-1], 0x40)
	recs, err := ReadAll(bytes.NewReader(stream))
	requireKind(t, err, ErrUnresolvedReference)
	require.Len(t, recs, 3)
}

func TestEmptyNamesRoundTrip(t *testing.T) {
	b := marshal(t, func(w *Writer) error {
		if err := w.WriteStart("", ""); err != nil {
			return err
		}
		if err := w.WriteString("", "x"); err != nil {
			return err
		}
		return w.WriteEnd()
	})
	recs, err := Unmarshal(b)
	require.NoError(t, err)
	want := []Record{
		{Kind: StartRecord, ID: 1, Type: TypeStruct},
		{Kind: FieldRecord, ID: 1, Level: 1, Type: TypeString, Value: String("x")},
		{Kind: EndRecord, ID: 1, Type: TypeStruct},
	}
	if diff := cmp.Diff(want, recs); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	b = marshal(t, func(w *Writer) error { return w.WriteEnum("", "", "X") })
	recs, err = Unmarshal(b)
	require.NoError(t, err)
	want = []Record{{Kind: FieldRecord, ID: 1, Type: TypeEnum, Value: Enum{Ordinal: 1, Name: "X"}}}
	if diff := cmp.Diff(want, recs); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}
