package netcdf3

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// memBuf is a trivial growable in-memory ReaderWriterAt, standing in for
// an *os.File in these tests.
type memBuf struct{ data []byte }

func (m *memBuf) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(m.data)) {
		return 0, errEOFAt(off)
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, errEOFAt(off + int64(n))
	}
	return n, nil
}

func (m *memBuf) WriteAt(p []byte, off int64) (int, error) {
	end := off + int64(len(p))
	if end > int64(len(m.data)) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	copy(m.data[off:end], p)
	return len(p), nil
}

type eofAt int64

func (e eofAt) Error() string { return "unexpected EOF" }

func errEOFAt(off int64) error { return eofAt(off) }

func TestEmptyDataSetMinimalHeader(t *testing.T) {
	ds := NewDataSet()
	if err := ds.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	var buf bytes.Buffer
	if err := ds.WriteHeader(&buf); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	// magic(4) + numrecs(4) + three absent-list tags (8 each) = 32 bytes.
	if got, want := buf.Len(), 4+4+8+8+8; got != want {
		t.Fatalf("empty header length = %d, want %d", got, want)
	}

	back, err := ReadHeader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if back.Dims().Len() != 0 || back.NumVars() != 0 || back.GlobalAttrs().Len() != 0 {
		t.Fatalf("round-tripped empty data set is not empty")
	}
}

func TestScalarAttributeRoundTrip(t *testing.T) {
	ds := NewDataSet()
	if err := ds.AddAttr("", "title", NewTextValue("hi")); err != nil {
		t.Fatalf("AddAttr: %v", err)
	}
	var buf bytes.Buffer
	if err := ds.WriteHeader(&buf); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}

	back, err := ReadHeader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	v, ok := back.GlobalAttrs().Get("title")
	if !ok {
		t.Fatalf("title attribute missing after round trip")
	}
	text, _ := v.Text()
	if text != "hi" {
		t.Errorf("title = %q, want %q", text, "hi")
	}
}

func TestUnlimitedRecordWriteRoundTrip(t *testing.T) {
	ds := NewDataSet()
	mustDim(t, ds, "time", Unlimited)
	mustDim(t, ds, "x", 3)
	if _, err := ds.AddVar("t", Float32, []string{"time"}); err != nil {
		t.Fatalf("AddVar t: %v", err)
	}
	if _, err := ds.AddVar("p", Int16, []string{"time", "x"}); err != nil {
		t.Fatalf("AddVar p: %v", err)
	}

	storage := &memBuf{}
	f, err := Create(storage, ds)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := f.WriteRecordF32("t", 0, []float32{1.0}); err != nil {
		t.Fatalf("WriteRecordF32(0): %v", err)
	}
	if err := f.WriteRecordI16("p", 0, []int16{1, 2, 3}); err != nil {
		t.Fatalf("WriteRecordI16(0): %v", err)
	}
	if err := f.WriteRecordF32("t", 1, []float32{2.0}); err != nil {
		t.Fatalf("WriteRecordF32(1): %v", err)
	}
	if err := f.WriteRecordI16("p", 1, []int16{4, 5, 6}); err != nil {
		t.Fatalf("WriteRecordI16(1): %v", err)
	}

	if got := ds.NumRecords(); got != 2 {
		t.Fatalf("NumRecords() = %d, want 2", got)
	}
	if got, want := ds.RecordSize(), int64(12); got != want {
		t.Fatalf("RecordSize() = %d, want %d", got, want)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(storage, int64(len(storage.data)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := reopened.DataSet().NumRecords(); got != 2 {
		t.Fatalf("reopened NumRecords() = %d, want 2", got)
	}
	got, err := reopened.ReadRecordI16("p", 1)
	if err != nil {
		t.Fatalf("ReadRecordI16: %v", err)
	}
	want := []int16{4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("ReadRecordI16(1) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ReadRecordI16(1) = %v, want %v", got, want)
		}
	}
}

func TestTruncatedHeaderValidEmpty(t *testing.T) {
	// "CDF\x01" + numrecs 0 + three absent lists parses as a valid empty
	// classic data set.
	raw := []byte{
		'C', 'D', 'F', 1,
		0, 0, 0, 0, // numrecs
		0, 0, 0, 0, 0, 0, 0, 0, // absent dim_list
		0, 0, 0, 0, 0, 0, 0, 0, // absent gatt_list
		0, 0, 0, 0, 0, 0, 0, 0, // absent var_list
	}
	ds, err := ReadHeader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if ds.Dims().Len() != 0 || ds.NumVars() != 0 {
		t.Fatalf("expected empty data set")
	}
	if ds.NumRecords() != 0 {
		t.Fatalf("NumRecords() = %d, want 0", ds.NumRecords())
	}
}

func TestTruncatedHeaderMidNameYieldsUnexpectedEOF(t *testing.T) {
	// A dim_list claiming one dimension, but the stream ends mid name.
	raw := []byte{
		'C', 'D', 'F', 1,
		0, 0, 0, 0, // numrecs
		0, 0, 0, 0x0A, // dim_list tag
		0, 0, 0, 1, // count = 1
		0, 0, 0, 5, // name length = 5
		'a', 'b', // truncated: only 2 of 5 bytes present
	}
	_, err := ReadHeader(bytes.NewReader(raw))
	if err == nil {
		t.Fatalf("expected UnexpectedEOF")
	}
	e, ok := err.(*Error)
	if !ok || e.Kind != ErrKindUnexpectedEOF {
		t.Fatalf("err = %v, want *Error{Kind: ErrKindUnexpectedEOF}", err)
	}
}

func TestInvalidMagicRejected(t *testing.T) {
	raw := []byte{'X', 'X', 'X', 1, 0, 0, 0, 0}
	_, err := ReadHeader(bytes.NewReader(raw))
	if err == nil {
		t.Fatalf("expected InvalidMagic")
	}
	if e := err.(*Error); e.Kind != ErrKindInvalidMagic {
		t.Errorf("Kind = %v, want ErrKindInvalidMagic", e.Kind)
	}
}

func TestFixedVariableSingleNoTrailingPadding(t *testing.T) {
	// boundary case: a single fixed variable whose byte count is not a
	// multiple of 4 (3 Int8 elements) is not padded since there is no
	// record variable to make padding necessary.
	ds := NewDataSet()
	mustDim(t, ds, "n", 3)
	if _, err := ds.AddVar("v", Int8, []string{"n"}); err != nil {
		t.Fatalf("AddVar: %v", err)
	}
	if err := ds.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	v, _ := ds.VarByName("v")
	if v.VSize() != 3 {
		t.Fatalf("VSize() = %d, want 3 (unpadded: no record variable exists)", v.VSize())
	}
	if v.Begin()%4 != 0 {
		t.Fatalf("Begin() = %d, not 4-byte aligned", v.Begin())
	}
}

func TestReadRecordOutOfBoundsOnZeroRecordVariable(t *testing.T) {
	ds := NewDataSet()
	mustDim(t, ds, "time", Unlimited)
	if _, err := ds.AddVar("t", Float32, []string{"time"}); err != nil {
		t.Fatalf("AddVar: %v", err)
	}

	storage := &memBuf{}
	f, err := Create(storage, ds)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(storage, int64(len(storage.data)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := reopened.DataSet().NumRecords(); got != 0 {
		t.Fatalf("NumRecords() = %d, want 0", got)
	}
	_, err = reopened.ReadRecordF32("t", 0)
	if err == nil {
		t.Fatalf("expected RecordIndexOutOfBounds reading record 0 of a zero-record variable")
	}
	if e := err.(*Error); e.Kind != ErrKindRecordIndexOutOfBounds {
		t.Errorf("Kind = %v, want ErrKindRecordIndexOutOfBounds", e.Kind)
	}
}

func TestReadRecordOnFixedVariableRejected(t *testing.T) {
	ds := NewDataSet()
	mustDim(t, ds, "x", 4)
	if _, err := ds.AddVar("v", Float32, []string{"x"}); err != nil {
		t.Fatalf("AddVar: %v", err)
	}

	storage := &memBuf{}
	f, err := Create(storage, ds)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = f.ReadRecordF32("v", 0)
	if err == nil {
		t.Fatalf("expected NotARecordVariable reading a record of a fixed variable")
	}
	if e := err.(*Error); e.Kind != ErrKindNotARecordVariable {
		t.Errorf("Kind = %v, want ErrKindNotARecordVariable", e.Kind)
	}

	if err := f.WriteRecordF32("v", 0, []float32{1, 2, 3, 4}); err == nil {
		t.Fatalf("expected NotARecordVariable writing a record of a fixed variable")
	} else if e := err.(*Error); e.Kind != ErrKindNotARecordVariable {
		t.Errorf("Kind = %v, want ErrKindNotARecordVariable", e.Kind)
	}
}

func TestIndeterminateNumrecsRecomputedFromFileSize(t *testing.T) {
	// Simulates a file produced by a streaming writer that left the
	// on-disk numrecs field at its sentinel value: Open must recompute
	// the true record count from the file size and the record stride
	// implied by the header, the same recovery ctessum/cdf leaves to its
	// callers.
	ds := NewDataSet()
	mustDim(t, ds, "time", Unlimited)
	if _, err := ds.AddVar("t", Float32, []string{"time"}); err != nil {
		t.Fatalf("AddVar: %v", err)
	}

	storage := &memBuf{}
	f, err := Create(storage, ds)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for rec := int64(0); rec < 3; rec++ {
		if err := f.WriteRecordF32("t", rec, []float32{float32(rec)}); err != nil {
			t.Fatalf("WriteRecordF32(%d): %v", rec, err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Overwrite the patched numrecs field with the streaming sentinel, as
	// if Close had never patched it via patchNumrecs.
	var sentinel [4]byte
	binary.BigEndian.PutUint32(sentinel[:], Indeterminate)
	if _, err := storage.WriteAt(sentinel[:], numrecsOffset); err != nil {
		t.Fatalf("WriteAt sentinel: %v", err)
	}

	reopened, err := Open(storage, int64(len(storage.data)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got, want := reopened.DataSet().NumRecords(), int64(3); got != want {
		t.Fatalf("NumRecords() = %d, want %d (recomputed from file size)", got, want)
	}
	got, err := reopened.ReadRecordF32("t", 2)
	if err != nil {
		t.Fatalf("ReadRecordF32(2): %v", err)
	}
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("ReadRecordF32(2) = %v, want [2]", got)
	}
}
