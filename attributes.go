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

// This file contains the ordered attribute map shared by the data-set's
// global scope and each variable's scope. Grounded on
// ctessum/cdf's header.go (`attribute`, `attrByName`, `AddAttribute`),
// generalized from a bare slice + linear scan with panics to a slice plus
// a name index, returning *Error.

package netcdf3

// attr is a single named attribute: a name and its typed Value.
type attr struct {
	name string
	val  Value
}

// Attributes is an ordered, named collection of attributes. Order of
// insertion is preserved, including across serialization round trips.
type Attributes struct {
	entries []attr
	byName  map[string]int
}

func newAttributes() *Attributes {
	return &Attributes{byName: make(map[string]int)}
}

// Len returns the number of attributes.
func (a *Attributes) Len() int { return len(a.entries) }

// Name returns the name of the attribute at index i, in insertion order.
func (a *Attributes) Name(i int) string { return a.entries[i].name }

// Value returns the value of the attribute at index i.
func (a *Attributes) Value(i int) Value { return a.entries[i].val }

// IndexOf returns the index of the attribute named name, or -1.
func (a *Attributes) IndexOf(name string) int {
	if i, ok := a.byName[name]; ok {
		return i
	}
	return -1
}

// Get returns the value of the attribute named name and true, or the zero
// Value and false if no such attribute exists.
func (a *Attributes) Get(name string) (Value, bool) {
	i, ok := a.byName[name]
	if !ok {
		return Value{}, false
	}
	return a.entries[i].val, true
}

// add validates and appends an attribute, failing if name is invalid or
// already present.
func (a *Attributes) add(name string, val Value) error {
	if err := validateName(name); err != nil {
		return err
	}
	if _, exists := a.byName[name]; exists {
		return newErr(ErrKindAttributeAlreadyExists, name, "")
	}
	if !val.typ.Valid() {
		return newErr(ErrKindUnknownType, name, "attribute value has no element type")
	}
	idx := len(a.entries)
	a.entries = append(a.entries, attr{name: name, val: val})
	a.byName[name] = idx
	return nil
}

// set overwrites the value of an existing attribute named name, or fails
// with ErrKindAttributeNotFound.
func (a *Attributes) set(name string, val Value) error {
	i, ok := a.byName[name]
	if !ok {
		return newErr(ErrKindAttributeNotFound, name, "")
	}
	a.entries[i].val = val
	return nil
}

// rename validates and renames the attribute named oldName to newName.
func (a *Attributes) rename(oldName, newName string) error {
	i, ok := a.byName[oldName]
	if !ok {
		return newErr(ErrKindAttributeNotFound, oldName, "")
	}
	if err := validateName(newName); err != nil {
		return err
	}
	if _, exists := a.byName[newName]; exists {
		return newErr(ErrKindAttributeAlreadyExists, newName, "")
	}
	a.entries[i].name = newName
	delete(a.byName, oldName)
	a.byName[newName] = i
	return nil
}

// remove deletes the attribute named name, or fails with
// ErrKindAttributeNotFound.
func (a *Attributes) remove(name string) error {
	i, ok := a.byName[name]
	if !ok {
		return newErr(ErrKindAttributeNotFound, name, "")
	}
	a.entries = append(a.entries[:i], a.entries[i+1:]...)
	delete(a.byName, name)
	for n, idx := range a.byName {
		if idx > i {
			a.byName[n] = idx - 1
		}
	}
	return nil
}
