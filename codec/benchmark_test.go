package codec

import (
	"testing"
)

func benchStruct(b *testing.B) (*Struct, []any) {
	b.Helper()
	name, err := NewPascalString(UInt8, UTF8)
	if err != nil {
		b.Fatal(err)
	}
	s := NewStruct(UInt16, UInt32, Int8, Float64, NewStruct(Int16, Int16), name).WithByteOrder(LittleEndian)
	return s, []any{0x4d42, 1024, -1, 3.25, []any{7, 8}, "bench"}
}

func BenchmarkStructPack(b *testing.B) {
	s, vals := benchStruct(b)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := s.Pack(vals...); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStructUnpack(b *testing.B) {
	s, vals := benchStruct(b)
	data, err := s.Pack(vals...)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Unpack(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPackInto(b *testing.B) {
	u32 := UInt32.WithByteOrder(BigEndian)
	buf := make([]byte, 64)
	vals := []any{uint32(0xdeadbeef)}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := PackInto(u32, buf, i%32, vals); err != nil {
			b.Fatal(err)
		}
	}
}
