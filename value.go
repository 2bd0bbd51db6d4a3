// Copyright 2012 Luuk van Dijk. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file contains the typed value / attribute payload: a
// tagged union over the six element types, with big-endian serialization
// and 4-byte tail padding. Grounded on ctessum/cdf's `attribute` type and
// its readFrom/writeTo methods (header.go, read.go, write.go), generalized
// to return structured errors instead of bare sentinel errors.

package netcdf3

import (
	"encoding/binary"
	"io"
)

// Value is a homogeneous, typed payload: the contents of an attribute, or
// of a variable's in-memory data. Exactly one of the typed fields is
// populated, selected by Type().
type Value struct {
	typ ElementType
	i8  []int8
	u8  []byte
	i16 []int16
	i32 []int32
	f32 []float32
	f64 []float64
}

// NewInt8Value returns a Value of type Int8 holding a copy of vs.
func NewInt8Value(vs []int8) Value {
	c := append([]int8(nil), vs...)
	return Value{typ: Int8, i8: c}
}

// NewBytesValue returns a Value of type Byte holding a copy of vs.
func NewBytesValue(vs []byte) Value {
	c := append([]byte(nil), vs...)
	return Value{typ: Byte, u8: c}
}

// NewTextValue returns a Value of type Byte holding the bytes of s, the
// conventional way to store attribute text.
func NewTextValue(s string) Value { return NewBytesValue([]byte(s)) }

// NewInt16Value returns a Value of type Int16 holding a copy of vs.
func NewInt16Value(vs []int16) Value {
	c := append([]int16(nil), vs...)
	return Value{typ: Int16, i16: c}
}

// NewInt32Value returns a Value of type Int32 holding a copy of vs.
func NewInt32Value(vs []int32) Value {
	c := append([]int32(nil), vs...)
	return Value{typ: Int32, i32: c}
}

// NewFloat32Value returns a Value of type Float32 holding a copy of vs.
func NewFloat32Value(vs []float32) Value {
	c := append([]float32(nil), vs...)
	return Value{typ: Float32, f32: c}
}

// NewFloat64Value returns a Value of type Float64 holding a copy of vs.
func NewFloat64Value(vs []float64) Value {
	c := append([]float64(nil), vs...)
	return Value{typ: Float64, f64: c}
}

// Type returns the element type of the value.
func (v Value) Type() ElementType { return v.typ }

// Len returns the number of elements in the value.
func (v Value) Len() int {
	switch v.typ {
	case Int8:
		return len(v.i8)
	case Byte:
		return len(v.u8)
	case Int16:
		return len(v.i16)
	case Int32:
		return len(v.i32)
	case Float32:
		return len(v.f32)
	case Float64:
		return len(v.f64)
	}
	return 0
}

// Bytes returns the raw byte payload and true if v is of type Byte.
func (v Value) Bytes() ([]byte, bool) {
	if v.typ != Byte {
		return nil, false
	}
	return v.u8, true
}

// Text returns the Byte payload interpreted as text, and true if v is of
// type Byte.
func (v Value) Text() (string, bool) {
	if v.typ != Byte {
		return "", false
	}
	return string(v.u8), true
}

// Int8s returns the payload and true if v is of type Int8.
func (v Value) Int8s() ([]int8, bool) {
	if v.typ != Int8 {
		return nil, false
	}
	return v.i8, true
}

// Int16s returns the payload and true if v is of type Int16.
func (v Value) Int16s() ([]int16, bool) {
	if v.typ != Int16 {
		return nil, false
	}
	return v.i16, true
}

// Int32s returns the payload and true if v is of type Int32.
func (v Value) Int32s() ([]int32, bool) {
	if v.typ != Int32 {
		return nil, false
	}
	return v.i32, true
}

// Float32s returns the payload and true if v is of type Float32.
func (v Value) Float32s() ([]float32, bool) {
	if v.typ != Float32 {
		return nil, false
	}
	return v.f32, true
}

// Float64s returns the payload and true if v is of type Float64.
func (v Value) Float64s() ([]float64, bool) {
	if v.typ != Float64 {
		return nil, false
	}
	return v.f64, true
}

var zeroPad [4]byte

// writeTo serializes v as the (nelems, bytes, pad4) tail of the on-disk
// attribute encoding; the preceding name and type fields are written by
// attr.writeTo. Variable data uses the typed I/O layer, not this encoding.
func (v Value) writeTo(w io.Writer) error {
	var raw any
	switch v.typ {
	case Int8:
		raw = v.i8
	case Byte:
		raw = v.u8
	case Int16:
		raw = v.i16
	case Int32:
		raw = v.i32
	case Float32:
		raw = v.f32
	case Float64:
		raw = v.f64
	default:
		return newErr(ErrKindUnknownType, "", "value has no element type set")
	}

	n := v.Len()
	if err := binary.Write(w, binary.BigEndian, int32(n)); err != nil {
		return ioErrAt(0, err)
	}
	if n == 0 {
		return nil
	}
	if err := binary.Write(w, binary.BigEndian, raw); err != nil {
		return ioErrAt(0, err)
	}
	nbytes := int64(n) * v.typ.StorageSize()
	if p := pad4(nbytes) - nbytes; p > 0 {
		if _, err := w.Write(zeroPad[:p]); err != nil {
			return ioErrAt(0, err)
		}
	}
	return nil
}

// readValue deserializes nelems elements of type typ (plus trailing
// padding) from r.
func readValue(r io.Reader, typ ElementType, nelems int32) (Value, error) {
	if !typ.Valid() {
		return Value{}, newErr(ErrKindUnknownType, "", "")
	}
	if nelems < 0 {
		return Value{}, newErr(ErrKindOverlongAttribute, "", "negative element count")
	}

	n := int(nelems)
	nbytes := int64(nelems) * typ.StorageSize()
	padded := pad4(nbytes) - nbytes

	var v Value
	v.typ = typ

	readPadded := func(raw any) error {
		if n > 0 {
			if err := binary.Read(r, binary.BigEndian, raw); err != nil {
				return wrapErr(ErrKindUnexpectedEOF, "", err)
			}
		}
		if padded > 0 {
			buf := make([]byte, padded)
			if _, err := io.ReadFull(r, buf); err != nil {
				return wrapErr(ErrKindUnexpectedEOF, "", err)
			}
		}
		return nil
	}

	switch typ {
	case Int8:
		v.i8 = make([]int8, n)
		if err := readPadded(v.i8); err != nil {
			return Value{}, err
		}
	case Byte:
		v.u8 = make([]byte, n)
		if err := readPadded(v.u8); err != nil {
			return Value{}, err
		}
	case Int16:
		v.i16 = make([]int16, n)
		if err := readPadded(v.i16); err != nil {
			return Value{}, err
		}
	case Int32:
		v.i32 = make([]int32, n)
		if err := readPadded(v.i32); err != nil {
			return Value{}, err
		}
	case Float32:
		v.f32 = make([]float32, n)
		if err := readPadded(v.f32); err != nil {
			return Value{}, err
		}
	case Float64:
		v.f64 = make([]float64, n)
		if err := readPadded(v.f64); err != nil {
			return Value{}, err
		}
	}
	return v, nil
}
