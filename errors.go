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

// This file contains the structured error taxonomy returned by every
// fallible operation in this package.

package netcdf3

import "fmt"

// ErrKind classifies an Error so callers can branch on intent rather than
// on error text.
type ErrKind int

// The closed set of error kinds produced by this package.
const (
	ErrKindIO ErrKind = iota // underlying byte-source/sink failure

	// header structural errors
	ErrKindInvalidMagic
	ErrKindInvalidVersion
	ErrKindUnexpectedEOF
	ErrKindUnexpectedTag

	// value-level structural errors
	ErrKindUnknownType
	ErrKindInvalidName
	ErrKindInvalidDimensionSize
	ErrKindInvalidDimensionList
	ErrKindOverlongAttribute

	// data-set invariant violations
	ErrKindDimensionAlreadyExists
	ErrKindVariableAlreadyExists
	ErrKindAttributeAlreadyExists
	ErrKindDimensionInUse
	ErrKindUnlimitedAlreadyDefined

	// lookup failures
	ErrKindVariableNotFound
	ErrKindDimensionNotFound
	ErrKindAttributeNotFound

	// I/O contract violations
	ErrKindTypeMismatch
	ErrKindWrongLength
	ErrKindRecordIndexOutOfBounds
	ErrKindNotARecordVariable
	ErrKindIsARecordVariable
)

var errKindNames = map[ErrKind]string{
	ErrKindIO:                      "io",
	ErrKindInvalidMagic:            "invalid magic",
	ErrKindInvalidVersion:          "invalid version",
	ErrKindUnexpectedEOF:           "unexpected eof",
	ErrKindUnexpectedTag:           "unexpected tag",
	ErrKindUnknownType:             "unknown type",
	ErrKindInvalidName:             "invalid name",
	ErrKindInvalidDimensionSize:    "invalid dimension size",
	ErrKindInvalidDimensionList:    "invalid dimension list",
	ErrKindOverlongAttribute:       "overlong attribute",
	ErrKindDimensionAlreadyExists:  "dimension already exists",
	ErrKindVariableAlreadyExists:   "variable already exists",
	ErrKindAttributeAlreadyExists:  "attribute already exists",
	ErrKindDimensionInUse:         "dimension in use",
	ErrKindUnlimitedAlreadyDefined: "unlimited dimension already defined",
	ErrKindVariableNotFound:        "variable not found",
	ErrKindDimensionNotFound:       "dimension not found",
	ErrKindAttributeNotFound:       "attribute not found",
	ErrKindTypeMismatch:            "type mismatch",
	ErrKindWrongLength:             "wrong length",
	ErrKindRecordIndexOutOfBounds:  "record index out of bounds",
	ErrKindNotARecordVariable:      "not a record variable",
	ErrKindIsARecordVariable:       "is a record variable",
}

// String renders k's name, e.g. "invalid name".
func (k ErrKind) String() string {
	if s, ok := errKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("errkind(%d)", int(k))
}

// Error is the single error type returned by this package. It carries
// enough context (the offending name and, where applicable, a byte offset)
// for a caller to report a precise diagnostic without string-parsing the
// message.
type Error struct {
	Kind ErrKind

	// Name is the offending dimension, variable, or attribute name, when
	// applicable.
	Name string

	// Offset is the byte position in the underlying stream at which the
	// error was detected, for header-parsing errors. Zero if not
	// applicable.
	Offset int64

	// Msg is a short human-readable detail appended to the error text.
	Msg string

	// Err is the underlying cause, if any (e.g. the *os.PathError behind
	// an ErrKindIO).
	Err error
}

func (e *Error) Error() string {
	s := e.Kind.String()
	if e.Name != "" {
		s += " " + fmt.Sprintf("%q", e.Name)
	}
	if e.Offset != 0 {
		s += fmt.Sprintf(" at offset %d", e.Offset)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying cause, if any, so that errors.Is and
// errors.As can see through an *Error to an I/O failure beneath it.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind, so that callers
// can write errors.Is(err, &netcdf3.Error{Kind: netcdf3.ErrKindVariableNotFound}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newErr(kind ErrKind, name string, msg string) *Error {
	return &Error{Kind: kind, Name: name, Msg: msg}
}

func wrapErr(kind ErrKind, name string, err error) *Error {
	return &Error{Kind: kind, Name: name, Err: err}
}

func wrapErrAt(kind ErrKind, name string, offset int64, err error) *Error {
	return &Error{Kind: kind, Name: name, Offset: offset, Err: err}
}

func ioErrAt(offset int64, err error) *Error {
	return &Error{Kind: ErrKindIO, Offset: offset, Err: err}
}
