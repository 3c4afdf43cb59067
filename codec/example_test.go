package codec_test

import (
	"fmt"

	"github.com/wippyai/binlayout/codec"
)

func ExampleNewStruct() {
	point := codec.NewStruct(codec.Int8, codec.Int16).WithByteOrder(codec.LittleEndian)

	data, err := point.Pack(5, 300)
	if err != nil {
		panic(err)
	}
	fmt.Printf("% x\n", data)

	values, err := point.Unpack(data)
	if err != nil {
		panic(err)
	}
	fmt.Println(values)
	// Output:
	// 05 00 2c 01
	// [5 300]
}

func ExampleNewPascalString() {
	name, err := codec.NewPascalString(codec.UInt8, codec.UTF8)
	if err != nil {
		panic(err)
	}
	data, err := name.Pack("AB")
	if err != nil {
		panic(err)
	}
	fmt.Printf("% x\n", data)
	// Output: 02 41 42
}

func ExamplePackInto() {
	buf := make([]byte, 8)
	u32 := codec.UInt32.WithByteOrder(codec.BigEndian)

	n, err := codec.PackInto(u32, buf, 1, []any{1})
	if err != nil {
		panic(err)
	}
	fmt.Println(n)
	fmt.Printf("% x\n", buf)
	// Output:
	// 7
	// 00 00 00 00 00 00 00 01
}
