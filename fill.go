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

// This file contains explicit fill-value initialization of variable
// storage, grounded on ctessum/cdf's file.go (`fill`, `Fill`,
// `FillRecord`). Unlike Create, which only writes the header, these
// methods are opt-in: a caller that wants freshly allocated storage to
// read back as the fill value rather than whatever bytes the backing
// store already held must call them explicitly.

package netcdf3

import (
	"bytes"
	"encoding/binary"
)

func fillRange(w WriterAt, begin, end int64, val any, elemSize int64) error {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, val); err != nil {
		return wrapErr(ErrKindIO, "", err)
	}
	if int64(buf.Len()) != elemSize {
		return newErr(ErrKindTypeMismatch, "", "fill value size does not match element type")
	}
	pattern := buf.Bytes()
	for off := begin; off < end; off += elemSize {
		if _, err := w.WriteAt(pattern, off); err != nil {
			return ioErrAt(off, err)
		}
	}
	return nil
}

// Fill overwrites the data of the named fixed (non-record) variable with
// its fill value: its scalar "_FillValue" attribute if present and of a
// matching type, otherwise the element type's format-defined default.
func (f *File) Fill(name string) error {
	v, ok := f.ds.VarByName(name)
	if !ok {
		return newErr(ErrKindVariableNotFound, name, "")
	}
	if v.isRecord {
		return newErr(ErrKindIsARecordVariable, name, "use FillRecord")
	}
	return fillRange(f.rw, v.begin, v.begin+pad4(v.rawChunk), v.fillValue(), v.typ.StorageSize())
}

// FillRecord overwrites the data of every record variable's slice within
// record index rec with its fill value, without advancing the data set's
// logical record count (the caller is expected to have already grown it,
// e.g. via a prior WriteRecord* call).
func (f *File) FillRecord(rec int64) error {
	for _, v := range f.ds.vars {
		if !v.isRecord {
			continue
		}
		begin := f.recordOffset(v, rec)
		end := begin + v.rawChunk
		if err := fillRange(f.rw, begin, end, v.fillValue(), v.typ.StorageSize()); err != nil {
			return err
		}
	}
	return nil
}
