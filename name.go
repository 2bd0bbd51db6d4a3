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

// This file contains the NetCDF-3 identifier validator. The
// format's classic reference implementation leaves names unchecked; this
// package enforces the restricted alphabet so that malformed names are
// rejected at construction time rather than silently round-tripped.

package netcdf3

// IsValidName reports whether name satisfies the NetCDF-3 identifier rules:
// 1 to MaxNameSize bytes, first byte a letter, digit, or underscore,
// remaining bytes printable 7-bit ASCII excluding '/'.
func IsValidName(name []byte) bool {
	if len(name) < 1 || len(name) > MaxNameSize {
		return false
	}
	if !isNameStartByte(name[0]) {
		return false
	}
	for _, b := range name[1:] {
		if !isNameContinuationByte(b) {
			return false
		}
	}
	return true
}

func isNameStartByte(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '_':
		return true
	}
	return false
}

func isNameContinuationByte(b byte) bool {
	if b == '/' {
		return false
	}
	return b >= 0x20 && b < 0x7F
}

// validateName returns an *Error of kind ErrKindInvalidName if name fails
// IsValidName. The error carries the offending name but no byte offset.
func validateName(name string) error {
	if !IsValidName([]byte(name)) {
		return newErr(ErrKindInvalidName, name, "name must be 1-256 bytes, start with a letter/digit/underscore, and contain only printable ASCII excluding '/'")
	}
	return nil
}
