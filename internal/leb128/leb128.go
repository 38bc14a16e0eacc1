// Package leb128 encodes and decodes the variable-length integers used for
// sizes, indices and constants in the WebAssembly binary format.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#integers%E2%91%A4
package leb128

import (
	"fmt"
	"io"
)

// EncodeUint32 encodes the value into a buffer in unsigned LEB128 format.
func EncodeUint32(value uint32) (buf []byte) {
	for {
		b := uint8(value & 0x7f)
		value >>= 7
		if value != 0 {
			buf = append(buf, b|0x80)
		} else {
			buf = append(buf, b)
			return
		}
	}
}

// EncodeInt64 encodes the signed value into a buffer in signed LEB128 format.
func EncodeInt64(value int64) (buf []byte) {
	for {
		b := uint8(value & 0x7f)
		s := uint8(value & 0x40)
		value >>= 7
		if (value != -1 || s == 0) && (value != 0 || s != 0) {
			buf = append(buf, b|0x80)
		} else {
			buf = append(buf, b)
			return
		}
	}
}

// DecodeUint32 decodes an unsigned LEB128 value, returning it with the count
// of bytes read.
func DecodeUint32(r io.Reader) (ret uint32, num uint64, err error) {
	const (
		uint32Mask  uint32 = 1 << 7
		uint32Mask2        = ^uint32Mask
	)

	for shift := 0; shift < 35; shift += 7 {
		b, err := readByteAsUint32(r)
		if err != nil {
			return 0, 0, fmt.Errorf("readByte failed: %w", err)
		}
		num++
		ret |= (b & uint32Mask2) << shift
		if b&uint32Mask == 0 {
			break
		}
	}
	return
}

// DecodeInt64 decodes a signed LEB128 value, returning it with the count of
// bytes read.
func DecodeInt64(r io.Reader) (ret int64, num uint64, err error) {
	const (
		int64Mask  int64 = 1 << 7
		int64Mask2       = ^int64Mask
		int64Mask3       = 1 << 6
		int64Mask4       = ^0
	)
	var shift int
	var b int64
	for shift < 64 {
		b, err = readByteAsInt64(r)
		if err != nil {
			return 0, 0, fmt.Errorf("readByte failed: %w", err)
		}
		num++
		ret |= (b & int64Mask2) << shift
		shift += 7
		if b&int64Mask == 0 {
			break
		}
	}

	if shift < 64 && (b&int64Mask3) == int64Mask3 {
		ret |= int64Mask4 << shift
	}
	return
}

func readByteAsUint32(r io.Reader) (uint32, error) {
	b := make([]byte, 1)
	_, err := io.ReadFull(r, b)
	return uint32(b[0]), err
}

func readByteAsInt64(r io.Reader) (int64, error) {
	b := make([]byte, 1)
	_, err := io.ReadFull(r, b)
	return int64(b[0]), err
}
