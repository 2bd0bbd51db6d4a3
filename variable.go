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

// This file contains the variable descriptor and its derived
// on-disk geometry. Grounded on ctessum/cdf's header.go (`variable`,
// `setComputed`, `offsetOf`, `isRecordVariable`, `vSize`, `fillValue`).

package netcdf3

// Variable describes one NetCDF-3 variable: its name, element type,
// ordered dimension references (by stable index into the owning
// DataSet's Dimensions table), and its own attribute scope. Name, element
// type, and dimension list are fixed at creation; only attributes are
// mutable thereafter.
type Variable struct {
	name   string
	typ    ElementType
	dimIdx []int32
	attrs  *Attributes

	// computed from dimIdx against the owning DataSet's Dimensions table by
	// recompute(); valid only after that call (done by every DataSet
	// mutator that can affect it, and by the header parser).
	lengths  []int64 // length of each dimension; lengths[0] is 0 for a record variable
	strides  []int64 // len(dimIdx)+1; strides[i] = product(lengths[i:]) * elemSize
	isRecord bool
	rawChunk int64 // element size * product of the fixed (non-record) dimension lengths

	// set by DataSet.Finalize (writer path) or by the header parser
	// (reader path); the true, unpadded-sentinel vsize and absolute file
	// offset of the variable's (first) data.
	vsize int64
	begin int64
}

// Name returns the variable's name.
func (v *Variable) Name() string { return v.name }

// Type returns the variable's element type.
func (v *Variable) Type() ElementType { return v.typ }

// NumDims returns the number of dimensions the variable has.
func (v *Variable) NumDims() int { return len(v.dimIdx) }

// DimIndex returns the index, into the owning DataSet's Dimensions table,
// of the variable's i'th dimension.
func (v *Variable) DimIndex(i int) int32 { return v.dimIdx[i] }

// IsRecordVariable reports whether the variable's first dimension is the
// data-set's unlimited dimension.
func (v *Variable) IsRecordVariable() bool { return v.isRecord }

// Attrs returns the variable's attribute scope.
func (v *Variable) Attrs() *Attributes { return v.attrs }

// VSize returns the per-record (record variable) or whole-variable (fixed
// variable) chunk size in bytes, in memory (not the possibly-sentinel wire
// value).
func (v *Variable) VSize() int64 { return v.vsize }

// Begin returns the absolute byte offset, within the file, of the
// variable's data (or, for a record variable, of its slice within record
// 0).
func (v *Variable) Begin() int64 { return v.begin }

// ElementCount returns the number of elements in one record (record
// variable) or in the whole variable (fixed variable).
func (v *Variable) ElementCount() int64 {
	if v.typ.StorageSize() == 0 {
		return 0
	}
	return v.rawChunk / v.typ.StorageSize()
}

// recompute derives lengths, isRecord, and rawChunk from dimIdx against
// dims. Must be called whenever the variable is created or the owning
// DataSet's Dimensions table changes shape (it never does after creation
// in this package, since dimensions are identified by stable index, but
// recompute is re-run defensively by every path that constructs a
// Variable).
func (v *Variable) recompute(dims *Dimensions) {
	v.lengths = make([]int64, len(v.dimIdx))
	v.isRecord = len(v.dimIdx) > 0 && dims.IsUnlimited(int(v.dimIdx[0]))

	for i, di := range v.dimIdx {
		if i == 0 && v.isRecord {
			v.lengths[i] = 0
			continue
		}
		v.lengths[i] = int64(dims.Length(int(di)))
	}

	v.strides = make([]int64, len(v.dimIdx)+1)
	v.strides[len(v.dimIdx)] = v.typ.StorageSize()
	for i := len(v.dimIdx) - 1; i >= 0; i-- {
		v.strides[i] = v.lengths[i] * v.strides[i+1]
	}

	elems := int64(1)
	start := 0
	if v.isRecord {
		start = 1
	}
	for i := start; i < len(v.lengths); i++ {
		elems *= v.lengths[i]
	}
	v.rawChunk = elems * v.typ.StorageSize()
}

// offsetOf returns the absolute byte offset, within one record (for a
// record variable) or within the whole variable (for a fixed variable), of
// the element at the given per-dimension index vector. The record index
// itself (if any) is combined by the caller via the data-set's record
// stride.
func (v *Variable) offsetOf(idx []int) int64 {
	o := v.begin
	for i, x := range idx {
		o += int64(x) * v.strides[i+1]
	}
	return o
}

// fillValue returns the variable's effective fill value: its scalar
// "_FillValue" attribute if present and of the variable's own type,
// otherwise the element type's format-defined default.
func (v *Variable) fillValue() any {
	if i := v.attrs.IndexOf("_FillValue"); i >= 0 {
		val := v.attrs.Value(i)
		if val.typ == v.typ && val.Len() == 1 {
			switch v.typ {
			case Int8:
				return val.i8[0]
			case Byte:
				return val.u8[0]
			case Int16:
				return val.i16[0]
			case Int32:
				return val.i32[0]
			case Float32:
				return val.f32[0]
			case Float64:
				return val.f64[0]
			}
		}
	}
	return v.typ.fillValue()
}
