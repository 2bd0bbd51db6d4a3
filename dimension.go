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

// This file contains the dimension table. Grounded on
// ctessum/cdf's header.go (`dimension`, `dimByName`, `newHeader`'s
// dimension-construction loop), generalized from panic-on-misuse to
// returning *Error.

package netcdf3

// dim is a single named NetCDF-3 dimension. length is the fixed length, or
// -1 (Unlimited) for the record dimension.
type dim struct {
	name   string
	length int32 // -1 means unlimited
}

func (d dim) isUnlimited() bool { return d.length < 0 }

// Dimensions is the ordered table of dimensions owned by a DataSet. At most
// one entry may be unlimited. Variables reference entries by stable index,
// never by name, so a rename never invalidates a variable's dimension list.
type Dimensions struct {
	entries     []dim
	byName      map[string]int
	unlimitedAt int // index of the unlimited dimension, or -1
}

func newDimensions() *Dimensions {
	return &Dimensions{byName: make(map[string]int), unlimitedAt: -1}
}

// Len returns the number of dimensions in the table.
func (d *Dimensions) Len() int { return len(d.entries) }

// Name returns the name of the dimension at index i.
func (d *Dimensions) Name(i int) string { return d.entries[i].name }

// Length returns the fixed length of the dimension at index i, or -1 if it
// is the unlimited dimension.
func (d *Dimensions) Length(i int) int32 { return d.entries[i].length }

// IsUnlimited reports whether the dimension at index i is the record
// dimension.
func (d *Dimensions) IsUnlimited(i int) bool { return d.entries[i].isUnlimited() }

// IndexOf returns the index of the dimension named name, or -1 if there is
// none.
func (d *Dimensions) IndexOf(name string) int {
	if i, ok := d.byName[name]; ok {
		return i
	}
	return -1
}

// UnlimitedIndex returns the index of the data-set's unlimited dimension,
// or -1 if none has been defined.
func (d *Dimensions) UnlimitedIndex() int { return d.unlimitedAt }

// add validates and appends a dimension. length == Unlimited marks it as
// the (unique) record dimension.
func (d *Dimensions) add(name string, length int32) error {
	if err := validateName(name); err != nil {
		return err
	}
	if _, exists := d.byName[name]; exists {
		return newErr(ErrKindDimensionAlreadyExists, name, "")
	}
	if length == Unlimited {
		if d.unlimitedAt != -1 {
			return newErr(ErrKindUnlimitedAlreadyDefined, name, "")
		}
	} else if length < 1 || length > MaxDimSize {
		return newErr(ErrKindInvalidDimensionSize, name, "length must be in [1, MaxDimSize] or Unlimited")
	}

	idx := len(d.entries)
	d.entries = append(d.entries, dim{name: name, length: length})
	d.byName[name] = idx
	if length == Unlimited {
		d.unlimitedAt = idx
	}
	return nil
}

// rename validates and renames the dimension at index i.
func (d *Dimensions) rename(i int, newName string) error {
	if err := validateName(newName); err != nil {
		return err
	}
	if _, exists := d.byName[newName]; exists {
		return newErr(ErrKindDimensionAlreadyExists, newName, "")
	}
	old := d.entries[i].name
	d.entries[i].name = newName
	delete(d.byName, old)
	d.byName[newName] = i
	return nil
}

// remove deletes the dimension at index i. The caller must have already
// verified that no variable references it (DataSet.RemoveDim does this).
// Removing a dimension shifts every later index down by one; callers that
// hold variable dimension-index lists must be updated in lockstep, which is
// why DataSet.RemoveDim performs this as part of a single validated
// transaction rather than exposing it directly.
func (d *Dimensions) remove(i int) {
	removedUnlimited := d.entries[i].isUnlimited()
	name := d.entries[i].name
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	delete(d.byName, name)
	for n, idx := range d.byName {
		if idx > i {
			d.byName[n] = idx - 1
		}
	}
	switch {
	case removedUnlimited:
		d.unlimitedAt = -1
	case d.unlimitedAt > i:
		d.unlimitedAt--
	}
}
