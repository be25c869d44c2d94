package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ultimate-research/prc-rs/hash40"
	"github.com/ultimate-research/prc-rs/ir"
)

func sampleTree() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: hash40.Of("name"), Val: ir.FromString("mario")},
		{Key: hash40.Of("kind"), Val: ir.FromHash(hash40.Of("fighter_kind_mario"))},
		{Key: hash40.Of("flags"), Val: ir.NewList(
			ir.FromBool(true), ir.FromBool(false), ir.FromI8(-3), ir.FromU8(200))},
		{Key: hash40.Of("nums"), Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: 1, Val: ir.FromI16(-1234)},
			{Key: 2, Val: ir.FromU16(65535)},
			{Key: 3, Val: ir.FromI32(math.MinInt32)},
			{Key: 4, Val: ir.FromU32(math.MaxUint32)},
			{Key: 5, Val: ir.FromFloat(float32(math.Inf(-1)))},
			{Key: 6, Val: ir.FromFloat(math.Float32frombits(0x7fc00001))},
		})},
		{Key: hash40.Of("entries"), Val: ir.NewList(
			ir.FromKeyVals([]ir.KeyVal{{Key: hash40.Of("name"), Val: ir.FromString("mario")}}),
			ir.FromKeyVals([]ir.KeyVal{{Key: hash40.Of("name"), Val: ir.FromString("mario")}}),
			ir.NewStruct(),
			ir.NewList(),
			ir.FromString(""),
		)},
	})
}

func TestRoundTrip(t *testing.T) {
	tree := sampleTree()
	data := Encode(tree)
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(tree, got) {
		t.Fatalf("decoded tree differs from encoded tree")
	}
	again := Encode(got)
	if !bytes.Equal(data, again) {
		t.Errorf("re-encoding is not byte identical")
	}
	var buf bytes.Buffer
	if err := EncodeTo(&buf, got); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), data) {
		t.Errorf("EncodeTo differs from Encode")
	}
}

func TestScalarStructBytes(t *testing.T) {
	tree := ir.FromKeyVals([]ir.KeyVal{
		{Key: 2, Val: ir.FromBool(true)},
		{Key: 1, Val: ir.FromU32(42)},
	})
	want := []byte("paracobn")
	want = binary.LittleEndian.AppendUint32(want, 24)
	want = binary.LittleEndian.AppendUint32(want, 16)
	for _, h := range []uint64{0, 1, 2} {
		want = binary.LittleEndian.AppendUint64(want, h)
	}
	for _, v := range []uint32{1, 9, 2, 14} {
		want = binary.LittleEndian.AppendUint32(want, v)
	}
	want = append(want,
		12, 2, 0, 0, 0, 0, 0, 0, 0,
		7, 42, 0, 0, 0,
		1, 1)

	got := Encode(tree)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Encode mismatch (-want +got):\n%s", diff)
	}
	back, err := Decode(got)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := back.Get(1).AsU32(); v != 42 {
		t.Errorf("key 1 = %v", v)
	}
	if v, _ := back.Get(2).AsBool(); !v {
		t.Errorf("key 2 = %v", v)
	}
}

func TestNestedList(t *testing.T) {
	tree := ir.NewList(
		ir.NewStruct(),
		ir.FromKeyVals([]ir.KeyVal{{Key: 5, Val: ir.FromFloat(1.5)}}),
	)
	got, err := Decode(Encode(tree))
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != ir.ListType || got.Len() != 2 {
		t.Fatalf("got %s of %d", got.Type, got.Len())
	}
	if got.Index(0).Type != ir.StructType || got.Index(0).Len() != 0 {
		t.Errorf("first element not an empty struct")
	}
	if f, _ := got.Index(1).Get(5).AsFloat(); f != 1.5 {
		t.Errorf("float = %v", f)
	}
}

func TestAscendingEmission(t *testing.T) {
	tree := ir.FromKeyVals([]ir.KeyVal{
		{Key: 30, Val: ir.FromU8(3)},
		{Key: 10, Val: ir.FromU8(1)},
		{Key: 20, Val: ir.FromHash(25)},
	})
	data := Encode(tree)
	hashSize := int(binary.LittleEndian.Uint32(data[8:]))
	var pool []uint64
	for off := headerSize; off < headerSize+hashSize; off += 8 {
		pool = append(pool, binary.LittleEndian.Uint64(data[off:]))
	}
	if diff := cmp.Diff([]uint64{0, 10, 20, 25, 30}, pool); diff != "" {
		t.Errorf("hash pool mismatch (-want +got):\n%s", diff)
	}
	table := headerSize + hashSize
	var keys []uint64
	for i := range 3 {
		idx := binary.LittleEndian.Uint32(data[table+8*i:])
		keys = append(keys, pool[idx])
	}
	if diff := cmp.Diff([]uint64{10, 20, 30}, keys); diff != "" {
		t.Errorf("table order mismatch (-want +got):\n%s", diff)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]hash40.Hash40{10, 20, 30}, got.Keys()); diff != "" {
		t.Errorf("decoded keys mismatch (-want +got):\n%s", diff)
	}
}

func TestSharedTables(t *testing.T) {
	mk := func() *ir.Node {
		return ir.FromKeyVals([]ir.KeyVal{{Key: 7, Val: ir.FromU8(1)}})
	}
	data := Encode(ir.NewList(mk(), mk(), mk()))
	refSz := binary.LittleEndian.Uint32(data[12:])
	if refSz != tableRow {
		t.Errorf("ref section %d bytes, want one shared table", refSz)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 3 {
		t.Errorf("Len = %d", got.Len())
	}
}

// scalarStruct is {1: u32 42, 2: bool true}; see TestScalarStructBytes for
// its layout.
func scalarStruct() []byte {
	return Encode(ir.FromKeyVals([]ir.KeyVal{
		{Key: 1, Val: ir.FromU32(42)},
		{Key: 2, Val: ir.FromBool(true)},
	}))
}

const (
	tableAt = headerSize + 24
	nodesAt = tableAt + 16
)

func TestMalformed(t *testing.T) {
	tests := []struct {
		name string
		edit func([]byte) []byte
	}{
		{"empty", func(b []byte) []byte { return nil }},
		{"short header", func(b []byte) []byte { return b[:10] }},
		{"bad magic", func(b []byte) []byte { b[0] = 'q'; return b }},
		{"pool size not multiple of 8", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[8:], 20)
			return b
		}},
		{"ref size past end", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[12:], 1<<20)
			return b
		}},
		{"pool size past end", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[8:], 0xfffffff8)
			return b
		}},
		{"no root", func(b []byte) []byte { return b[:nodesAt] }},
		{"unsorted pool", func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b[headerSize+8:], 5)
			return b
		}},
		{"hash beyond 40 bits", func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b[headerSize+16:], 1<<41)
			return b
		}},
		{"unsorted table", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[tableAt:], 2)
			binary.LittleEndian.PutUint32(b[tableAt+4:], 14)
			binary.LittleEndian.PutUint32(b[tableAt+8:], 1)
			binary.LittleEndian.PutUint32(b[tableAt+12:], 9)
			return b
		}},
		{"hash index out of range", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[tableAt+8:], 3)
			return b
		}},
		{"table past ref section", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[nodesAt+5:], 12)
			return b
		}},
		{"struct count past ref section", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[nodesAt+1:], 3)
			return b
		}},
		{"child inside header", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[tableAt+4:], 4)
			return b
		}},
		{"child past end", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[tableAt+12:], 100)
			return b
		}},
		{"child visited twice", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[tableAt+12:], 9)
			return b
		}},
		{"unknown tag", func(b []byte) []byte { b[nodesAt+9] = 13; return b }},
		{"zero tag", func(b []byte) []byte { b[nodesAt+9] = 0; return b }},
		{"truncated payload", func(b []byte) []byte { return b[:len(b)-1] }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data := test.edit(scalarStruct())
			n, err := Decode(data)
			if err == nil {
				t.Fatalf("Decode accepted malformed input")
			}
			if n != nil {
				t.Errorf("partial tree returned")
			}
			if !errors.Is(err, ir.ErrMalformedInput) {
				t.Errorf("error %v does not match ErrMalformedInput", err)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Errorf("error %T is not a *DecodeError", err)
			}
		})
	}
}

func TestTruncatedPrefixes(t *testing.T) {
	data := Encode(sampleTree())
	for i := range len(data) {
		if _, err := Decode(data[:i]); err == nil {
			t.Fatalf("prefix of %d/%d bytes decoded", i, len(data))
		}
	}
}

func TestStrings(t *testing.T) {
	data := Encode(ir.NewList(ir.FromString("ab")))
	// list header, one offset, then the string node
	strNode := headerSize + 8 + 3 + 9
	if data[strNode] != byte(ir.StringType) {
		t.Fatalf("layout changed: tag %d", data[strNode])
	}

	bad := bytes.Clone(data)
	binary.LittleEndian.PutUint32(bad[strNode+1:], 3)
	if _, err := Decode(bad); !errors.Is(err, ir.ErrMalformedInput) {
		t.Errorf("string offset outside ref section: %v", err)
	}

	bad = bytes.Clone(data)
	bad[headerSize+8+2] = 'c'
	if _, err := Decode(bad); !errors.Is(err, ir.ErrMalformedInput) {
		t.Errorf("unterminated string: %v", err)
	}
}

func TestDepth(t *testing.T) {
	tree := ir.FromU8(1)
	for range 5 {
		tree = ir.NewList(tree)
	}
	data := Encode(tree)
	if _, err := Decode(data); err != nil {
		t.Fatalf("default depth: %v", err)
	}
	if _, err := Decode(data, WithMaxDepth(5)); err != nil {
		t.Errorf("depth 5: %v", err)
	}
	if _, err := Decode(data, WithMaxDepth(4)); !errors.Is(err, ir.ErrMalformedInput) {
		t.Errorf("depth 4: %v", err)
	}
}

func TestLenient(t *testing.T) {
	data := scalarStruct()
	binary.LittleEndian.PutUint32(data[tableAt:], 2)
	binary.LittleEndian.PutUint32(data[tableAt+4:], 14)
	binary.LittleEndian.PutUint32(data[tableAt+8:], 1)
	binary.LittleEndian.PutUint32(data[tableAt+12:], 9)
	if _, err := Decode(data); err == nil {
		t.Fatalf("strict decode accepted an unsorted table")
	}
	got, err := Decode(data, Lenient(true))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]hash40.Hash40{1, 2}, got.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if v, _ := got.Get(1).AsU32(); v != 42 {
		t.Errorf("key 1 = %v", v)
	}

	// a pool in file order with a repeated hash, as other tools write it
	data = scalarStruct()
	binary.LittleEndian.PutUint64(data[headerSize:], 2)
	binary.LittleEndian.PutUint64(data[headerSize+16:], 2)
	binary.LittleEndian.PutUint32(data[tableAt+8:], 0)
	if _, err := Decode(data); err == nil {
		t.Fatalf("strict decode accepted an unsorted pool")
	}
	got, err = Decode(data, Lenient(true))
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := got.Get(2).AsBool(); !v {
		t.Errorf("key 2 = %v", v)
	}
}
