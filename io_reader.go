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

// This file contains the typed variable-data reader.
// Grounded on ctessum/cdf's strider.go and read.go (the typed
// Reader returned by File.Reader, and its per-record/whole-variable
// Read methods), generalized from cdf's single Reader interface with a
// runtime type switch to one typed method per element type, each
// returning a structured *Error instead of a bare error.

package netcdf3

import (
	"bytes"
	"encoding/binary"
	"io"
)

func (f *File) varForRead(name string) (*Variable, error) {
	v, ok := f.ds.VarByName(name)
	if !ok {
		return nil, newErr(ErrKindVariableNotFound, name, "")
	}
	return v, nil
}

func (f *File) checkType(v *Variable, want ElementType) error {
	if v.typ != want {
		return newErr(ErrKindTypeMismatch, v.name, want.String()+" requested, variable is "+v.typ.String())
	}
	return nil
}

// recordOffset returns the absolute file offset of record index rec of
// record variable v.
func (f *File) recordOffset(v *Variable, rec int64) int64 {
	return v.begin + rec*f.ds.recordStride
}

func (f *File) readBytesAt(off int64, n int64) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(io.NewSectionReader(f.rw, off, n), buf); err != nil {
		return nil, ioErrAt(off, err)
	}
	return buf, nil
}

// readRaw reads the nelems elements of a variable's whole data (fixed
// variable) or of one record (record variable, given a non-negative rec)
// as raw bytes, dispatching to the right absolute offset.
func (f *File) readRaw(v *Variable, rec int64) ([]byte, error) {
	if rec < 0 {
		return f.readBytesAt(v.begin, v.rawChunk)
	}
	return f.readBytesAt(f.recordOffset(v, rec), v.rawChunk)
}

func (f *File) recordBounds(v *Variable, rec int64) error {
	if !v.isRecord {
		return newErr(ErrKindNotARecordVariable, v.name, "")
	}
	if rec < 0 || rec >= f.ds.numrecs {
		return newErr(ErrKindRecordIndexOutOfBounds, v.name, "")
	}
	return nil
}

// ReadVarBytes reads the entire contents of the Byte (or Int8) variable
// named name: its whole data if it is a fixed variable, or every record's
// slice concatenated if it is a record variable.
func (f *File) ReadVarBytes(name string) ([]byte, error) {
	v, err := f.varForRead(name)
	if err != nil {
		return nil, err
	}
	if v.typ != Byte && v.typ != Int8 {
		return nil, newErr(ErrKindTypeMismatch, name, "Byte or Int8 requested, variable is "+v.typ.String())
	}
	return f.readAllChunks(v)
}

// ReadVarI16 reads the entire contents of an Int16 variable, as above.
func (f *File) ReadVarI16(name string) ([]int16, error) {
	v, err := f.varForRead(name)
	if err != nil {
		return nil, err
	}
	if err := f.checkType(v, Int16); err != nil {
		return nil, err
	}
	raw, err := f.readAllChunks(v)
	if err != nil {
		return nil, err
	}
	out := make([]int16, len(raw)/2)
	if err := binary.Read(bytes.NewReader(raw), binary.BigEndian, out); err != nil {
		return nil, wrapErr(ErrKindIO, name, err)
	}
	return out, nil
}

// ReadVarI32 reads the entire contents of an Int32 variable.
func (f *File) ReadVarI32(name string) ([]int32, error) {
	v, err := f.varForRead(name)
	if err != nil {
		return nil, err
	}
	if err := f.checkType(v, Int32); err != nil {
		return nil, err
	}
	raw, err := f.readAllChunks(v)
	if err != nil {
		return nil, err
	}
	out := make([]int32, len(raw)/4)
	if err := binary.Read(bytes.NewReader(raw), binary.BigEndian, out); err != nil {
		return nil, wrapErr(ErrKindIO, name, err)
	}
	return out, nil
}

// ReadVarF32 reads the entire contents of a Float32 variable.
func (f *File) ReadVarF32(name string) ([]float32, error) {
	v, err := f.varForRead(name)
	if err != nil {
		return nil, err
	}
	if err := f.checkType(v, Float32); err != nil {
		return nil, err
	}
	raw, err := f.readAllChunks(v)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(raw)/4)
	if err := binary.Read(bytes.NewReader(raw), binary.BigEndian, out); err != nil {
		return nil, wrapErr(ErrKindIO, name, err)
	}
	return out, nil
}

// ReadVarF64 reads the entire contents of a Float64 variable.
func (f *File) ReadVarF64(name string) ([]float64, error) {
	v, err := f.varForRead(name)
	if err != nil {
		return nil, err
	}
	if err := f.checkType(v, Float64); err != nil {
		return nil, err
	}
	raw, err := f.readAllChunks(v)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw)/8)
	if err := binary.Read(bytes.NewReader(raw), binary.BigEndian, out); err != nil {
		return nil, wrapErr(ErrKindIO, name, err)
	}
	return out, nil
}

// readAllChunks concatenates a fixed variable's whole data, or every
// written record's slice, in record order.
func (f *File) readAllChunks(v *Variable) ([]byte, error) {
	if !v.isRecord {
		return f.readRaw(v, -1)
	}
	out := make([]byte, 0, v.rawChunk*f.ds.numrecs)
	for rec := int64(0); rec < f.ds.numrecs; rec++ {
		chunk, err := f.readRaw(v, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

// ReadRecordBytes reads record index rec of the Byte/Int8 record variable
// named name.
func (f *File) ReadRecordBytes(name string, rec int64) ([]byte, error) {
	v, err := f.varForRead(name)
	if err != nil {
		return nil, err
	}
	if err := f.recordBounds(v, rec); err != nil {
		return nil, err
	}
	if v.typ != Byte && v.typ != Int8 {
		return nil, newErr(ErrKindTypeMismatch, name, "Byte or Int8 requested, variable is "+v.typ.String())
	}
	return f.readRaw(v, rec)
}

// ReadRecordI16 reads record index rec of the Int16 record variable named
// name.
func (f *File) ReadRecordI16(name string, rec int64) ([]int16, error) {
	v, err := f.varForRead(name)
	if err != nil {
		return nil, err
	}
	if err := f.recordBounds(v, rec); err != nil {
		return nil, err
	}
	if err := f.checkType(v, Int16); err != nil {
		return nil, err
	}
	raw, err := f.readRaw(v, rec)
	if err != nil {
		return nil, err
	}
	out := make([]int16, len(raw)/2)
	if err := binary.Read(bytes.NewReader(raw), binary.BigEndian, out); err != nil {
		return nil, wrapErr(ErrKindIO, name, err)
	}
	return out, nil
}

// ReadRecordI32 reads record index rec of the Int32 record variable named
// name.
func (f *File) ReadRecordI32(name string, rec int64) ([]int32, error) {
	v, err := f.varForRead(name)
	if err != nil {
		return nil, err
	}
	if err := f.recordBounds(v, rec); err != nil {
		return nil, err
	}
	if err := f.checkType(v, Int32); err != nil {
		return nil, err
	}
	raw, err := f.readRaw(v, rec)
	if err != nil {
		return nil, err
	}
	out := make([]int32, len(raw)/4)
	if err := binary.Read(bytes.NewReader(raw), binary.BigEndian, out); err != nil {
		return nil, wrapErr(ErrKindIO, name, err)
	}
	return out, nil
}

// ReadRecordF32 reads record index rec of the Float32 record variable
// named name.
func (f *File) ReadRecordF32(name string, rec int64) ([]float32, error) {
	v, err := f.varForRead(name)
	if err != nil {
		return nil, err
	}
	if err := f.recordBounds(v, rec); err != nil {
		return nil, err
	}
	if err := f.checkType(v, Float32); err != nil {
		return nil, err
	}
	raw, err := f.readRaw(v, rec)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(raw)/4)
	if err := binary.Read(bytes.NewReader(raw), binary.BigEndian, out); err != nil {
		return nil, wrapErr(ErrKindIO, name, err)
	}
	return out, nil
}

// ReadRecordF64 reads record index rec of the Float64 record variable
// named name.
func (f *File) ReadRecordF64(name string, rec int64) ([]float64, error) {
	v, err := f.varForRead(name)
	if err != nil {
		return nil, err
	}
	if err := f.recordBounds(v, rec); err != nil {
		return nil, err
	}
	if err := f.checkType(v, Float64); err != nil {
		return nil, err
	}
	raw, err := f.readRaw(v, rec)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw)/8)
	if err := binary.Read(bytes.NewReader(raw), binary.BigEndian, out); err != nil {
		return nil, wrapErr(ErrKindIO, name, err)
	}
	return out, nil
}
