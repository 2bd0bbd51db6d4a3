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

// This file contains the DataSet: the owner of the dimension table, global
// attributes, and variable table, and the enforcer of every cross-table
// invariant (dimension references, at most one unlimited dimension, unique
// names within scope). Grounded on ctessum/cdf's header.go (`Header`,
// `NewHeader`, `AddVariable`, `AddAttribute`, `Check`), generalized from a
// two-phase mutable/Define lifecycle with panics to a single transactional,
// error-returning builder API.

package netcdf3

// DataSet is the in-memory description of a NetCDF-3 file: its dimensions,
// global attributes, and variables. A DataSet constructed with NewDataSet
// is built up with the Add*/Rename*/Remove* methods, then passed to
// Create, or Finalize'd directly to compute on-disk geometry without
// writing it. A DataSet obtained from Open (via ReadHeader) describes an
// existing file and is already finalized.
type DataSet struct {
	dims *Dimensions
	gatt *Attributes
	vars []*Variable
	varByName map[string]int

	numrecs              int64 // logical (true, pre-sentinel) record count
	numrecsIndeterminate bool  // true between ReadHeader and Open resolving the sentinel

	finalized    bool
	version      formatVersion
	headerSize   int64
	recordStride int64 // sum of record variables' padded vsizes (0 if none)
}

// NewDataSet returns an empty, mutable DataSet.
func NewDataSet() *DataSet {
	return &DataSet{
		dims:      newDimensions(),
		gatt:      newAttributes(),
		varByName: make(map[string]int),
	}
}

// Dims exposes the dimension table for read-only inspection.
func (ds *DataSet) Dims() *Dimensions { return ds.dims }

// GlobalAttrs exposes the global attribute scope for read-only inspection.
func (ds *DataSet) GlobalAttrs() *Attributes { return ds.gatt }

// NumVars returns the number of variables in the data set.
func (ds *DataSet) NumVars() int { return len(ds.vars) }

// Var returns the variable at index i, in creation order.
func (ds *DataSet) Var(i int) *Variable { return ds.vars[i] }

// VarByName returns the named variable and true, or nil and false.
func (ds *DataSet) VarByName(name string) (*Variable, bool) {
	i, ok := ds.varByName[name]
	if !ok {
		return nil, false
	}
	return ds.vars[i], true
}

// VarsInRecordOrder returns every variable in the order their data is
// interleaved on disk: creation order.
func (ds *DataSet) VarsInRecordOrder() []*Variable {
	out := make([]*Variable, len(ds.vars))
	copy(out, ds.vars)
	return out
}

// NumRecords returns the data-set-wide record count.
func (ds *DataSet) NumRecords() int64 { return ds.numrecs }

// RecordSize returns the total number of bytes contributed per record by
// all record variables (the "record stride"), valid once the data set has
// been finalized or parsed.
func (ds *DataSet) RecordSize() int64 { return ds.recordStride }

// HeaderSize returns the serialized size in bytes of the data set's
// header, valid once the data set has been finalized or parsed. Data for
// the first (or only) variable begins at this offset, rounded up to a
// multiple of 4.
func (ds *DataSet) HeaderSize() int64 { return ds.headerSize }

// growNumRecords extends the logical record count to at least n: a
// successful write past the current record count extends it.
func (ds *DataSet) growNumRecords(n int64) {
	if n > ds.numrecs {
		ds.numrecs = n
	}
}

// recordAreaStart returns the absolute offset of the first record
// variable's first record, or 0 if the data set has no record variables.
func (ds *DataSet) recordAreaStart() int64 {
	for _, v := range ds.vars {
		if v.isRecord {
			return v.begin
		}
	}
	return 0
}

// invalidateGeometry marks the data set as requiring re-finalization; it is
// called by every mutator that could change computed offsets.
func (ds *DataSet) invalidateGeometry() { ds.finalized = false }

// ---- dimensions ----

// AddDim adds a fixed dimension of the given length. length must be in
// [1, MaxDimSize].
func (ds *DataSet) AddDim(name string, length int32) (int, error) {
	if length == Unlimited {
		return 0, newErr(ErrKindInvalidDimensionSize, name, "use AddUnlimitedDim for the record dimension")
	}
	if err := ds.dims.add(name, length); err != nil {
		return 0, err
	}
	ds.invalidateGeometry()
	return ds.dims.Len() - 1, nil
}

// AddUnlimitedDim adds the data set's (unique) unlimited/record dimension.
func (ds *DataSet) AddUnlimitedDim(name string) (int, error) {
	if err := ds.dims.add(name, Unlimited); err != nil {
		return 0, err
	}
	ds.invalidateGeometry()
	return ds.dims.Len() - 1, nil
}

// RenameDim renames the dimension named oldName to newName. Since
// variables reference dimensions by index, no variable's dimension list is
// affected.
func (ds *DataSet) RenameDim(oldName, newName string) error {
	i := ds.dims.IndexOf(oldName)
	if i < 0 {
		return newErr(ErrKindDimensionNotFound, oldName, "")
	}
	return ds.dims.rename(i, newName)
}

// RemoveDim removes the named dimension. It fails with
// ErrKindDimensionInUse if any variable still references it.
func (ds *DataSet) RemoveDim(name string) error {
	i := ds.dims.IndexOf(name)
	if i < 0 {
		return newErr(ErrKindDimensionNotFound, name, "")
	}
	for _, v := range ds.vars {
		for _, di := range v.dimIdx {
			if int(di) == i {
				return newErr(ErrKindDimensionInUse, name, "referenced by variable "+v.name)
			}
		}
	}
	ds.dims.remove(i)
	// Shift every variable's dimension indices above i down by one.
	for _, v := range ds.vars {
		for j, di := range v.dimIdx {
			if int(di) > i {
				v.dimIdx[j] = di - 1
			}
		}
	}
	ds.invalidateGeometry()
	return nil
}

// ---- variables ----

// AddVar creates a new variable of the given element type and ordered
// dimension list (by name). Only the first dimension may be the record
// dimension; a variable may have at most MaxVarDims dimensions and may not
// repeat a dimension.
func (ds *DataSet) AddVar(name string, typ ElementType, dimNames []string) (*Variable, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if _, exists := ds.varByName[name]; exists {
		return nil, newErr(ErrKindVariableAlreadyExists, name, "")
	}
	if !typ.Valid() {
		return nil, newErr(ErrKindUnknownType, name, "")
	}
	if len(dimNames) > MaxVarDims {
		return nil, newErr(ErrKindInvalidDimensionList, name, "more than MaxVarDims dimensions")
	}

	dimIdx := make([]int32, len(dimNames))
	seen := make(map[int]bool, len(dimNames))
	for i, dn := range dimNames {
		di := ds.dims.IndexOf(dn)
		if di < 0 {
			return nil, newErr(ErrKindInvalidDimensionList, name, "unknown dimension "+dn)
		}
		if seen[di] {
			return nil, newErr(ErrKindInvalidDimensionList, name, "duplicate dimension "+dn)
		}
		seen[di] = true
		if ds.dims.IsUnlimited(di) && i != 0 {
			return nil, newErr(ErrKindInvalidDimensionList, name, "unlimited dimension "+dn+" is not outermost")
		}
		dimIdx[i] = int32(di)
	}

	v := &Variable{name: name, typ: typ, dimIdx: dimIdx, attrs: newAttributes()}
	v.recompute(ds.dims)

	ds.varByName[name] = len(ds.vars)
	ds.vars = append(ds.vars, v)
	ds.invalidateGeometry()
	return v, nil
}

// RenameVar renames the variable named oldName to newName.
func (ds *DataSet) RenameVar(oldName, newName string) error {
	i, ok := ds.varByName[oldName]
	if !ok {
		return newErr(ErrKindVariableNotFound, oldName, "")
	}
	if err := validateName(newName); err != nil {
		return err
	}
	if _, exists := ds.varByName[newName]; exists {
		return newErr(ErrKindVariableAlreadyExists, newName, "")
	}
	ds.vars[i].name = newName
	delete(ds.varByName, oldName)
	ds.varByName[newName] = i
	return nil
}

// RemoveVar removes the named variable and all of its attributes.
func (ds *DataSet) RemoveVar(name string) error {
	i, ok := ds.varByName[name]
	if !ok {
		return newErr(ErrKindVariableNotFound, name, "")
	}
	ds.vars = append(ds.vars[:i], ds.vars[i+1:]...)
	delete(ds.varByName, name)
	for n, idx := range ds.varByName {
		if idx > i {
			ds.varByName[n] = idx - 1
		}
	}
	ds.invalidateGeometry()
	return nil
}

// ---- attributes ----

// AddAttr adds an attribute to the variable named varName, or a global
// attribute if varName is "".
func (ds *DataSet) AddAttr(varName, attrName string, val Value) error {
	scope, err := ds.attrScope(varName)
	if err != nil {
		return err
	}
	return scope.add(attrName, val)
}

// SetAttr overwrites the value of an existing attribute.
func (ds *DataSet) SetAttr(varName, attrName string, val Value) error {
	scope, err := ds.attrScope(varName)
	if err != nil {
		return err
	}
	return scope.set(attrName, val)
}

// RenameAttr renames an attribute within its scope.
func (ds *DataSet) RenameAttr(varName, oldName, newName string) error {
	scope, err := ds.attrScope(varName)
	if err != nil {
		return err
	}
	return scope.rename(oldName, newName)
}

// RemoveAttr removes an attribute from its scope.
func (ds *DataSet) RemoveAttr(varName, attrName string) error {
	scope, err := ds.attrScope(varName)
	if err != nil {
		return err
	}
	return scope.remove(attrName)
}

func (ds *DataSet) attrScope(varName string) (*Attributes, error) {
	if varName == "" {
		return ds.gatt, nil
	}
	v, ok := ds.VarByName(varName)
	if !ok {
		return nil, newErr(ErrKindVariableNotFound, varName, "")
	}
	return v.attrs, nil
}

// Check verifies the cross-table invariants of the data set (at most one
// unlimited dimension, every variable dimension index valid, only the
// first dimension of a variable may be unlimited). It does not check
// offsets, since those are only meaningful once the data set has been
// finalized or parsed. Check is called automatically by Finalize; it is
// exported so callers can validate a DataSet built by hand before using
// it.
func (ds *DataSet) Check() error {
	nd := ds.dims.Len()
	unlimited := 0
	for i := 0; i < nd; i++ {
		if ds.dims.IsUnlimited(i) {
			unlimited++
		}
	}
	if unlimited > 1 {
		return newErr(ErrKindUnlimitedAlreadyDefined, "", "more than one unlimited dimension")
	}
	for _, v := range ds.vars {
		for i, di := range v.dimIdx {
			if di < 0 || int(di) >= nd {
				return newErr(ErrKindInvalidDimensionList, v.name, "dimension index out of range")
			}
			if i != 0 && ds.dims.IsUnlimited(int(di)) {
				return newErr(ErrKindInvalidDimensionList, v.name, "non-outer unlimited dimension")
			}
		}
	}
	return nil
}
