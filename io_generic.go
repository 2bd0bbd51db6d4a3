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

// This file contains the untyped convenience layer atop io_reader.go and
// io_writer.go's statically-typed per-element functions: a caller that
// already knows a variable's type at compile time should use the typed
// form, but code that discovers it at runtime (a generic dump/convert
// tool, say) needs a dispatch point. Grounded on ctessum/cdf's
// strider.go, which takes the opposite approach (a single interface{}
// Read/Write with a runtime type switch as the *only* API) — generalized
// here into a thin wrapper so the typed methods stay the primary,
// type-safe entry points.

package netcdf3

// ReadVar reads the entire contents of the named variable (its whole data
// if fixed, or every written record concatenated if a record variable),
// returning one of []byte, []int16, []int32, []float32, or []float64
// depending on its element type.
func (f *File) ReadVar(name string) (any, error) {
	v, err := f.varForRead(name)
	if err != nil {
		return nil, err
	}
	switch v.typ {
	case Int8, Byte:
		return f.ReadVarBytes(name)
	case Int16:
		return f.ReadVarI16(name)
	case Int32:
		return f.ReadVarI32(name)
	case Float32:
		return f.ReadVarF32(name)
	case Float64:
		return f.ReadVarF64(name)
	}
	return nil, newErr(ErrKindUnknownType, name, "")
}

// ReadVarInto reads the entire contents of the named variable into *dst,
// which must point to a slice of the Go type matching the variable's
// element type ([]byte, []int16, []int32, []float32, or []float64).
func (f *File) ReadVarInto(name string, dst any) error {
	switch d := dst.(type) {
	case *[]byte:
		v, err := f.ReadVarBytes(name)
		if err != nil {
			return err
		}
		*d = v
	case *[]int16:
		v, err := f.ReadVarI16(name)
		if err != nil {
			return err
		}
		*d = v
	case *[]int32:
		v, err := f.ReadVarI32(name)
		if err != nil {
			return err
		}
		*d = v
	case *[]float32:
		v, err := f.ReadVarF32(name)
		if err != nil {
			return err
		}
		*d = v
	case *[]float64:
		v, err := f.ReadVarF64(name)
		if err != nil {
			return err
		}
		*d = v
	default:
		return newErr(ErrKindTypeMismatch, name, "dst must be a pointer to a supported slice type")
	}
	return nil
}

// ReadRecord reads record index rec of the named record variable,
// returning one of []byte, []int16, []int32, []float32, or []float64.
func (f *File) ReadRecord(name string, rec int64) (any, error) {
	v, err := f.varForRead(name)
	if err != nil {
		return nil, err
	}
	switch v.typ {
	case Int8, Byte:
		return f.ReadRecordBytes(name, rec)
	case Int16:
		return f.ReadRecordI16(name, rec)
	case Int32:
		return f.ReadRecordI32(name, rec)
	case Float32:
		return f.ReadRecordF32(name, rec)
	case Float64:
		return f.ReadRecordF64(name, rec)
	}
	return nil, newErr(ErrKindUnknownType, name, "")
}

// WriteVar writes the entire contents of the named fixed variable. data
// must be a []byte, []int16, []int32, []float32, or []float64 matching
// the variable's element type.
func (f *File) WriteVar(name string, data any) error {
	switch d := data.(type) {
	case []byte:
		return f.WriteVarBytes(name, d)
	case []int16:
		return f.WriteVarI16(name, d)
	case []int32:
		return f.WriteVarI32(name, d)
	case []float32:
		return f.WriteVarF32(name, d)
	case []float64:
		return f.WriteVarF64(name, d)
	}
	return newErr(ErrKindTypeMismatch, name, "unsupported Go type for variable data")
}

// WriteRecord writes record index rec of the named record variable. data
// must be a []byte, []int16, []int32, []float32, or []float64 matching
// the variable's element type.
func (f *File) WriteRecord(name string, rec int64, data any) error {
	switch d := data.(type) {
	case []byte:
		return f.WriteRecordBytes(name, rec, d)
	case []int16:
		return f.WriteRecordI16(name, rec, d)
	case []int32:
		return f.WriteRecordI32(name, rec, d)
	case []float32:
		return f.WriteRecordF32(name, rec, d)
	case []float64:
		return f.WriteRecordF64(name, rec, d)
	}
	return newErr(ErrKindTypeMismatch, name, "unsupported Go type for variable data")
}
