package wasmfib

import (
	"github.com/tetratelabs/fibtime/internal/leb128"
)

// Magic is the 4 byte preamble (literally "\0asm") of the binary format
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#binary-magic
var Magic = []byte{0x00, 0x61, 0x73, 0x6D}

// version is format version and doesn't change between known specification versions
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#binary-version
var version = []byte{0x01, 0x00, 0x00, 0x00}

// SectionID identifies the sections of a Module in the WebAssembly 1.0 (20191205) Binary Format.
type SectionID = byte

const (
	SectionIDCustom   SectionID = 0
	SectionIDType     SectionID = 1
	SectionIDFunction SectionID = 3
	SectionIDExport   SectionID = 7
	SectionIDCode     SectionID = 10
)

const (
	valueTypeI32 byte = 0x7f
	valueTypeI64 byte = 0x7e

	blockTypeEmpty byte = 0x40

	exportKindFunc byte = 0x00
)

// Opcodes used by the function bodies below.
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#instructions%E2%91%A6
const (
	opBlock    byte = 0x02
	opLoop     byte = 0x03
	opIf       byte = 0x04
	opElse     byte = 0x05
	opEnd      byte = 0x0b
	opBr       byte = 0x0c
	opBrIf     byte = 0x0d
	opReturn   byte = 0x0f
	opCall     byte = 0x10
	opLocalGet byte = 0x20
	opLocalSet byte = 0x21
	opI32Const byte = 0x41
	opI64Const byte = 0x42
	opI32Eqz   byte = 0x45
	opI32LtU   byte = 0x49
	opI32GeU   byte = 0x4f
	opI32Add   byte = 0x6a
	opI32Sub   byte = 0x6b
	opI64Add   byte = 0x7c
)

// Function indices in the order they are defined.
const (
	funcIdxNaiveRecursion uint32 = iota
	funcIdxIterative
)

// Local indices of the iterative function. The parameter n is local zero.
const (
	localN uint32 = iota
	localPrev
	localCur
	localSum
	localI
)

type localName struct {
	index uint32
	name  string
}

type function struct {
	exportName string
	// locals are the non-parameter locals, already grouped by type as
	// (count, type) pairs.
	locals []byte
	body   []byte
	// localNames populates the "name" custom section, in ascending index order.
	localNames []localName
}

// functions are all of type (i32) -> i64.
var functions = []function{
	funcIdxNaiveRecursion: {
		exportName: ExportNaiveRecursion,
		body:       naiveRecursionBody(),
		localNames: []localName{{localN, "n"}},
	},
	funcIdxIterative: {
		exportName: ExportIterative,
		// 3 x i64 (prev, cur, sum), 1 x i32 (i)
		locals: []byte{2, 3, valueTypeI64, 1, valueTypeI32},
		body:   iterativeBody(),
		localNames: []localName{
			{localN, "n"}, {localPrev, "prev"}, {localCur, "cur"}, {localSum, "sum"}, {localI, "i"},
		},
	},
}

// naiveRecursionBody is
//
//	if n < 2 { return 1 }
//	return f(n-1) + f(n-2)
func naiveRecursionBody() []byte {
	var b []byte
	b = append(b, opLocalGet, byte(localN), opI32Const, 2, opI32LtU)
	b = append(b, opIf, valueTypeI64)
	b = append(b, opI64Const)
	b = append(b, leb128.EncodeInt64(1)...)
	b = append(b, opElse)
	b = append(b, opLocalGet, byte(localN), opI32Const, 1, opI32Sub)
	b = append(b, opCall)
	b = append(b, leb128.EncodeUint32(funcIdxNaiveRecursion)...)
	b = append(b, opLocalGet, byte(localN), opI32Const, 2, opI32Sub)
	b = append(b, opCall)
	b = append(b, leb128.EncodeUint32(funcIdxNaiveRecursion)...)
	b = append(b, opI64Add)
	b = append(b, opEnd) // if
	return append(b, opEnd)
}

// iterativeBody mirrors fib.Iterative, including returning zero for n=0:
//
//	if n == 0 { return 0 }
//	prev, cur = 1, 1
//	for i := 1; i < n; i++ { sum = prev + cur; prev = cur; cur = sum }
//	return cur
func iterativeBody() []byte {
	var b []byte
	b = append(b, opLocalGet, byte(localN), opI32Eqz)
	b = append(b, opIf, blockTypeEmpty)
	b = append(b, opI64Const)
	b = append(b, leb128.EncodeInt64(0)...)
	b = append(b, opReturn, opEnd)

	b = append(b, opI64Const)
	b = append(b, leb128.EncodeInt64(1)...)
	b = append(b, opLocalSet, byte(localPrev))
	b = append(b, opI64Const)
	b = append(b, leb128.EncodeInt64(1)...)
	b = append(b, opLocalSet, byte(localCur))
	b = append(b, opI32Const, 1, opLocalSet, byte(localI))

	b = append(b, opBlock, blockTypeEmpty, opLoop, blockTypeEmpty)
	// break out of the block when i >= n
	b = append(b, opLocalGet, byte(localI), opLocalGet, byte(localN), opI32GeU, opBrIf, 1)
	b = append(b, opLocalGet, byte(localPrev), opLocalGet, byte(localCur), opI64Add, opLocalSet, byte(localSum))
	b = append(b, opLocalGet, byte(localCur), opLocalSet, byte(localPrev))
	b = append(b, opLocalGet, byte(localSum), opLocalSet, byte(localCur))
	b = append(b, opLocalGet, byte(localI), opI32Const, 1, opI32Add, opLocalSet, byte(localI))
	b = append(b, opBr, 0)
	b = append(b, opEnd, opEnd) // loop, block

	b = append(b, opLocalGet, byte(localCur))
	return append(b, opEnd)
}

// Binary returns the WebAssembly 1.0 (20191205) binary exporting
// ExportNaiveRecursion and ExportIterative, each of type (i32) -> i64.
//
// Both use i64.add, which wraps on overflow exactly like uint64 addition in Go.
func Binary() []byte {
	bin := append(append([]byte{}, Magic...), version...)

	// (type (func (param i32) (result i64)))
	bin = append(bin, encodeSection(SectionIDType, []byte{1, 0x60, 1, valueTypeI32, 1, valueTypeI64})...)

	funcs := leb128.EncodeUint32(uint32(len(functions)))
	for range functions {
		funcs = append(funcs, 0) // type index
	}
	bin = append(bin, encodeSection(SectionIDFunction, funcs)...)

	exports := leb128.EncodeUint32(uint32(len(functions)))
	for i, f := range functions {
		exports = append(exports, encodeSizePrefixed([]byte(f.exportName))...)
		exports = append(exports, exportKindFunc)
		exports = append(exports, leb128.EncodeUint32(uint32(i))...)
	}
	bin = append(bin, encodeSection(SectionIDExport, exports)...)

	code := leb128.EncodeUint32(uint32(len(functions)))
	for _, f := range functions {
		code = append(code, encodeCode(f.locals, f.body)...)
	}
	bin = append(bin, encodeSection(SectionIDCode, code)...)

	return append(bin, encodeSection(SectionIDCustom, encodeNameSection())...)
}

// encodeCode returns the function body prefixed by its size.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#binary-code
func encodeCode(locals, body []byte) []byte {
	if len(locals) == 0 {
		locals = leb128.EncodeUint32(0)
	}
	code := append(append([]byte{}, locals...), body...)
	return append(leb128.EncodeUint32(uint32(len(code))), code...)
}

// encodeNameSection encodes the module, function and local name subsections so
// that traces show "fib.iterative(n=10)" instead of indices.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#binary-namesec
func encodeNameSection() []byte {
	const (
		subsectionIDModuleName    = uint8(0)
		subsectionIDFunctionNames = uint8(1)
		subsectionIDLocalNames    = uint8(2)
	)

	funcNames := leb128.EncodeUint32(uint32(len(functions)))
	localNames := leb128.EncodeUint32(uint32(len(functions)))
	for i, f := range functions {
		funcNames = append(funcNames, leb128.EncodeUint32(uint32(i))...)
		funcNames = append(funcNames, encodeSizePrefixed([]byte(f.exportName))...)

		localNames = append(localNames, leb128.EncodeUint32(uint32(i))...)
		localNames = append(localNames, leb128.EncodeUint32(uint32(len(f.localNames)))...)
		for _, ln := range f.localNames {
			localNames = append(localNames, leb128.EncodeUint32(ln.index)...)
			localNames = append(localNames, encodeSizePrefixed([]byte(ln.name))...)
		}
	}

	data := encodeSizePrefixed([]byte("name"))
	data = append(data, subsectionIDModuleName)
	data = append(data, encodeSizePrefixed(encodeSizePrefixed([]byte(ModuleName)))...)
	data = append(data, subsectionIDFunctionNames)
	data = append(data, encodeSizePrefixed(funcNames)...)
	data = append(data, subsectionIDLocalNames)
	return append(data, encodeSizePrefixed(localNames)...)
}

// encodeSection encodes the sectionID, the size of its contents in bytes, followed by the contents.
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#sections%E2%91%A0
func encodeSection(sectionID SectionID, contents []byte) []byte {
	return append([]byte{sectionID}, encodeSizePrefixed(contents)...)
}

func encodeSizePrefixed(data []byte) []byte {
	size := leb128.EncodeUint32(uint32(len(data)))
	return append(size, data...)
}
