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

// This file contains the typed variable-data writer, the write-side
// mirror of io_reader.go. Grounded on ctessum/cdf's strider.go and
// write.go (the typed Writer returned by File.Writer and UpdateNumRecs),
// generalized to one typed method per element type and to grow the data
// set's logical record count automatically on a successful record write,
// rather than requiring a separate UpdateNumRecs call before Close.

package netcdf3

import (
	"bytes"
	"encoding/binary"
)

func (f *File) varForWrite(name string, want ElementType) (*Variable, error) {
	v, ok := f.ds.VarByName(name)
	if !ok {
		return nil, newErr(ErrKindVariableNotFound, name, "")
	}
	if v.typ != want {
		return nil, newErr(ErrKindTypeMismatch, name, want.String()+" requested, variable is "+v.typ.String())
	}
	return v, nil
}

func (f *File) writeRawAt(off int64, data []byte) error {
	if _, err := f.rw.WriteAt(data, off); err != nil {
		return ioErrAt(off, err)
	}
	return nil
}

func encodeBE(data any, n int64) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(int(n))
	if err := binary.Write(buf, binary.BigEndian, data); err != nil {
		return nil, wrapErr(ErrKindIO, "", err)
	}
	return buf.Bytes(), nil
}

// checkLen verifies data holds exactly the variable's element count (one
// whole fixed variable, or one record's worth for a record variable).
func checkLen(v *Variable, got int64) error {
	want := v.ElementCount()
	if got != want {
		return newErr(ErrKindWrongLength, v.name, "wrong element count")
	}
	return nil
}

// WriteVarBytes writes the entire contents of the fixed Byte/Int8
// variable named name.
func (f *File) WriteVarBytes(name string, data []byte) error {
	v, ok := f.ds.VarByName(name)
	if !ok {
		return newErr(ErrKindVariableNotFound, name, "")
	}
	if v.typ != Byte && v.typ != Int8 {
		return newErr(ErrKindTypeMismatch, name, "Byte or Int8 requested, variable is "+v.typ.String())
	}
	if v.isRecord {
		return newErr(ErrKindIsARecordVariable, name, "use WriteRecordBytes")
	}
	if err := checkLen(v, int64(len(data))); err != nil {
		return err
	}
	return f.writeRawAt(v.begin, data)
}

// WriteVarI16 writes the entire contents of the fixed Int16 variable
// named name.
func (f *File) WriteVarI16(name string, data []int16) error {
	v, err := f.varForWrite(name, Int16)
	if err != nil {
		return err
	}
	if v.isRecord {
		return newErr(ErrKindIsARecordVariable, name, "use WriteRecordI16")
	}
	if err := checkLen(v, int64(len(data))); err != nil {
		return err
	}
	raw, err := encodeBE(data, v.rawChunk)
	if err != nil {
		return err
	}
	return f.writeRawAt(v.begin, raw)
}

// WriteVarI32 writes the entire contents of the fixed Int32 variable
// named name.
func (f *File) WriteVarI32(name string, data []int32) error {
	v, err := f.varForWrite(name, Int32)
	if err != nil {
		return err
	}
	if v.isRecord {
		return newErr(ErrKindIsARecordVariable, name, "use WriteRecordI32")
	}
	if err := checkLen(v, int64(len(data))); err != nil {
		return err
	}
	raw, err := encodeBE(data, v.rawChunk)
	if err != nil {
		return err
	}
	return f.writeRawAt(v.begin, raw)
}

// WriteVarF32 writes the entire contents of the fixed Float32 variable
// named name.
func (f *File) WriteVarF32(name string, data []float32) error {
	v, err := f.varForWrite(name, Float32)
	if err != nil {
		return err
	}
	if v.isRecord {
		return newErr(ErrKindIsARecordVariable, name, "use WriteRecordF32")
	}
	if err := checkLen(v, int64(len(data))); err != nil {
		return err
	}
	raw, err := encodeBE(data, v.rawChunk)
	if err != nil {
		return err
	}
	return f.writeRawAt(v.begin, raw)
}

// WriteVarF64 writes the entire contents of the fixed Float64 variable
// named name.
func (f *File) WriteVarF64(name string, data []float64) error {
	v, err := f.varForWrite(name, Float64)
	if err != nil {
		return err
	}
	if v.isRecord {
		return newErr(ErrKindIsARecordVariable, name, "use WriteRecordF64")
	}
	if err := checkLen(v, int64(len(data))); err != nil {
		return err
	}
	raw, err := encodeBE(data, v.rawChunk)
	if err != nil {
		return err
	}
	return f.writeRawAt(v.begin, raw)
}

// WriteRecordBytes writes record index rec of the Byte/Int8 record
// variable named name, extending the data set's record count if rec is
// not yet covered by it.
func (f *File) WriteRecordBytes(name string, rec int64, data []byte) error {
	v, ok := f.ds.VarByName(name)
	if !ok {
		return newErr(ErrKindVariableNotFound, name, "")
	}
	if !v.isRecord {
		return newErr(ErrKindNotARecordVariable, name, "")
	}
	if v.typ != Byte && v.typ != Int8 {
		return newErr(ErrKindTypeMismatch, name, "Byte or Int8 requested, variable is "+v.typ.String())
	}
	if rec < 0 {
		return newErr(ErrKindRecordIndexOutOfBounds, name, "")
	}
	if err := checkLen(v, int64(len(data))); err != nil {
		return err
	}
	if err := f.writeRawAt(f.recordOffset(v, rec), data); err != nil {
		return err
	}
	f.ds.growNumRecords(rec + 1)
	return nil
}

// WriteRecordI16 writes record index rec of the Int16 record variable
// named name.
func (f *File) WriteRecordI16(name string, rec int64, data []int16) error {
	v, err := f.varForWrite(name, Int16)
	if err != nil {
		return err
	}
	if !v.isRecord {
		return newErr(ErrKindNotARecordVariable, name, "")
	}
	if rec < 0 {
		return newErr(ErrKindRecordIndexOutOfBounds, name, "")
	}
	if err := checkLen(v, int64(len(data))); err != nil {
		return err
	}
	raw, err := encodeBE(data, v.rawChunk)
	if err != nil {
		return err
	}
	if err := f.writeRawAt(f.recordOffset(v, rec), raw); err != nil {
		return err
	}
	f.ds.growNumRecords(rec + 1)
	return nil
}

// WriteRecordI32 writes record index rec of the Int32 record variable
// named name.
func (f *File) WriteRecordI32(name string, rec int64, data []int32) error {
	v, err := f.varForWrite(name, Int32)
	if err != nil {
		return err
	}
	if !v.isRecord {
		return newErr(ErrKindNotARecordVariable, name, "")
	}
	if rec < 0 {
		return newErr(ErrKindRecordIndexOutOfBounds, name, "")
	}
	if err := checkLen(v, int64(len(data))); err != nil {
		return err
	}
	raw, err := encodeBE(data, v.rawChunk)
	if err != nil {
		return err
	}
	if err := f.writeRawAt(f.recordOffset(v, rec), raw); err != nil {
		return err
	}
	f.ds.growNumRecords(rec + 1)
	return nil
}

// WriteRecordF32 writes record index rec of the Float32 record variable
// named name.
func (f *File) WriteRecordF32(name string, rec int64, data []float32) error {
	v, err := f.varForWrite(name, Float32)
	if err != nil {
		return err
	}
	if !v.isRecord {
		return newErr(ErrKindNotARecordVariable, name, "")
	}
	if rec < 0 {
		return newErr(ErrKindRecordIndexOutOfBounds, name, "")
	}
	if err := checkLen(v, int64(len(data))); err != nil {
		return err
	}
	raw, err := encodeBE(data, v.rawChunk)
	if err != nil {
		return err
	}
	if err := f.writeRawAt(f.recordOffset(v, rec), raw); err != nil {
		return err
	}
	f.ds.growNumRecords(rec + 1)
	return nil
}

// WriteRecordF64 writes record index rec of the Float64 record variable
// named name.
func (f *File) WriteRecordF64(name string, rec int64, data []float64) error {
	v, err := f.varForWrite(name, Float64)
	if err != nil {
		return err
	}
	if !v.isRecord {
		return newErr(ErrKindNotARecordVariable, name, "")
	}
	if rec < 0 {
		return newErr(ErrKindRecordIndexOutOfBounds, name, "")
	}
	if err := checkLen(v, int64(len(data))); err != nil {
		return err
	}
	raw, err := encodeBE(data, v.rawChunk)
	if err != nil {
		return err
	}
	if err := f.writeRawAt(f.recordOffset(v, rec), raw); err != nil {
		return err
	}
	f.ds.growNumRecords(rec + 1)
	return nil
}
