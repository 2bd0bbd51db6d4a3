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

// This file contains the header serializer and the writer-side offset
// computation. Grounded on
// ctessum/cdf's write.go (`WriteHeader`, `writeString`, `writeTo`, `size`,
// `nullWriter`) and header.go (`setOffsets`, `fixRecordStrides`,
// `dataStart`, `Define`), generalized to return *Error and to omit
// padding on the trailing fixed variable when no record variable exists.

package netcdf3

import (
	"encoding/binary"
	"io"
)

var padBytes [4]byte

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.BigEndian, int32(len(s))); err != nil {
		return ioErrAt(0, err)
	}
	if _, err := io.WriteString(w, s); err != nil {
		return ioErrAt(0, err)
	}
	if p := pad4(int64(len(s))) - int64(len(s)); p > 0 {
		if _, err := w.Write(padBytes[:p]); err != nil {
			return ioErrAt(0, err)
		}
	}
	return nil
}

func writeTag(w io.Writer, tag, count int32) error {
	return binary.Write(w, binary.BigEndian, [2]int32{tag, count})
}

func (d dim) writeTo(w io.Writer) error {
	if err := writeString(w, d.name); err != nil {
		return err
	}
	wire := d.length
	if wire < 0 {
		wire = 0 // unlimited dimensions are encoded with length 0
	}
	if err := binary.Write(w, binary.BigEndian, wire); err != nil {
		return ioErrAt(0, err)
	}
	return nil
}

func (a attr) writeTo(w io.Writer) error {
	if err := writeString(w, a.name); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, int32(a.val.typ)); err != nil {
		return ioErrAt(0, err)
	}
	return a.val.writeTo(w)
}

func writeAttrList(w io.Writer, attrs *Attributes) error {
	if attrs.Len() == 0 {
		if err := writeTag(w, 0, 0); err != nil {
			return ioErrAt(0, err)
		}
		return nil
	}
	if err := writeTag(w, 0x0C, int32(attrs.Len())); err != nil {
		return ioErrAt(0, err)
	}
	for i := 0; i < attrs.Len(); i++ {
		a := attr{name: attrs.Name(i), val: attrs.Value(i)}
		if err := a.writeTo(w); err != nil {
			return err
		}
	}
	return nil
}

// wireVSize returns the on-disk vsize field: the true value, or
// Indeterminate if it exceeds what a signed 32-bit field can hold.
func wireVSize(v int64) int32 {
	if v > maxI32 {
		return -1 // 0xFFFFFFFF as int32
	}
	return int32(v)
}

func (v *Variable) writeTo(w io.Writer, offs64 bool) error {
	if err := writeString(w, v.name); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, int32(len(v.dimIdx))); err != nil {
		return ioErrAt(0, err)
	}
	if err := binary.Write(w, binary.BigEndian, v.dimIdx); err != nil {
		return ioErrAt(0, err)
	}
	if err := writeAttrList(w, v.attrs); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, int32(v.typ)); err != nil {
		return ioErrAt(0, err)
	}
	if err := binary.Write(w, binary.BigEndian, wireVSize(v.vsize)); err != nil {
		return ioErrAt(0, err)
	}
	var err error
	if !offs64 {
		err = binary.Write(w, binary.BigEndian, int32(v.begin))
	} else {
		err = binary.Write(w, binary.BigEndian, v.begin)
	}
	if err != nil {
		return ioErrAt(0, err)
	}
	return nil
}

// nullWriter discards everything written to it while counting the bytes,
// used for a header size dry run.
type nullWriter int64

func (w *nullWriter) Write(p []byte) (int, error) {
	*w += nullWriter(len(p))
	return len(p), nil
}

// rawHeaderSize computes the serialized size of the header as it would be
// written right now, independent of begin/vsize (which do not affect
// size).
func (ds *DataSet) rawHeaderSize() int64 {
	var nw nullWriter
	version := ds.version
	if version == 0 {
		version = sixtyFourBitOffset // not yet decided: size conservatively with 8-byte begins
	}
	ds.writeHeaderWith(&nw, version, 0)
	return int64(nw)
}

// writeHeaderWith serializes the header using the given format version and
// wire numrecs value. Variable begin/vsize fields must already be set.
func (ds *DataSet) writeHeaderWith(w io.Writer, version formatVersion, wireNumrecs int32) error {
	if err := binary.Write(w, binary.BigEndian, [4]byte{'C', 'D', 'F', byte(version)}); err != nil {
		return ioErrAt(0, err)
	}
	if err := binary.Write(w, binary.BigEndian, wireNumrecs); err != nil {
		return ioErrAt(0, err)
	}

	if ds.dims.Len() == 0 {
		if err := writeTag(w, 0, 0); err != nil {
			return ioErrAt(0, err)
		}
	} else {
		if err := writeTag(w, 0x0A, int32(ds.dims.Len())); err != nil {
			return ioErrAt(0, err)
		}
		for i := 0; i < ds.dims.Len(); i++ {
			d := dim{name: ds.dims.Name(i), length: ds.dims.Length(i)}
			if err := d.writeTo(w); err != nil {
				return err
			}
		}
	}

	if err := writeAttrList(w, ds.gatt); err != nil {
		return err
	}

	if len(ds.vars) == 0 {
		if err := writeTag(w, 0, 0); err != nil {
			return ioErrAt(0, err)
		}
	} else {
		if err := writeTag(w, 0x0B, int32(len(ds.vars))); err != nil {
			return ioErrAt(0, err)
		}
		for _, v := range ds.vars {
			if err := v.writeTo(w, version == sixtyFourBitOffset); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteHeader serializes the data set's finalized header to w. A data set
// that is not yet finalized (neither Finalize'd nor produced by ReadHeader)
// is finalized first.
func (ds *DataSet) WriteHeader(w io.Writer) error {
	if !ds.finalized {
		if err := ds.Finalize(); err != nil {
			return err
		}
	}
	return ds.writeHeaderWith(w, ds.version, wireNumrecsOf(ds.numrecs))
}

// wireNumrecsOf converts a true record count to its on-disk form: the
// count itself, or the streaming/indeterminate sentinel if it overflows a
// signed 32-bit field.
func wireNumrecsOf(n int64) int32 {
	if n > maxI32 {
		return streamingNumrecs
	}
	return int32(n)
}

// Finalize computes every variable's begin/vsize and the header's format
// version. It is idempotent: calling it again after further mutation
// recomputes everything from scratch.
func (ds *DataSet) Finalize() error {
	if err := ds.Check(); err != nil {
		return err
	}

	ds.fixRecordGeometry()

	// A 64-bit-offset header may change its own size relative to a
	// classic one (8-byte vs 4-byte begin fields), so compute offsets once
	// assuming 64-bit, see whether everything fits in 32 bits, and, if so,
	// redo it assuming 32-bit (which can only shrink offsets further).
	ds.version = sixtyFourBitOffset
	last := ds.computeOffsets()
	if last < (1 << 31) {
		ds.version = classicFormat
		ds.computeOffsets()
	}

	ds.headerSize = ds.rawHeaderSize()
	ds.finalized = true
	return nil
}

// fixRecordGeometry applies the record-variable padding rule:
// a single record variable's per-record slice is not padded; with more
// than one, each variable's slice is padded to a 4-byte boundary before
// being summed into the shared record stride.
func (ds *DataSet) fixRecordGeometry() {
	var recVars []*Variable
	for _, v := range ds.vars {
		if v.isRecord {
			recVars = append(recVars, v)
		}
	}

	var stride int64
	switch len(recVars) {
	case 0:
		stride = 0
	case 1:
		stride = recVars[0].rawChunk
	default:
		for _, v := range recVars {
			stride += pad4(v.rawChunk)
		}
	}

	for _, v := range recVars {
		v.vsize = v.rawChunk
	}
	ds.recordStride = stride
}

// computeOffsets assigns begin to every variable, in creation order for
// fixed variables followed by creation order for record variables, and
// returns the begin offset of the last variable placed (0 if there are
// none). It applies the rule that the final fixed variable is not padded
// when no record variable exists at all.
func (ds *DataSet) computeOffsets() int64 {
	offs := pad4(ds.rawHeaderSize())

	var fixedVars []*Variable
	for _, v := range ds.vars {
		if !v.isRecord {
			fixedVars = append(fixedVars, v)
			v.vsize = v.rawChunk
		}
	}

	anyRecordVar := ds.recordStride > 0 || hasRecordVar(ds.vars)

	var last int64
	for i, v := range fixedVars {
		v.begin = offs
		last = offs
		isLastOverall := i == len(fixedVars)-1 && !anyRecordVar
		if isLastOverall {
			offs += v.rawChunk
		} else {
			offs += pad4(v.rawChunk)
		}
	}

	var recVars []*Variable
	for _, v := range ds.vars {
		if v.isRecord {
			recVars = append(recVars, v)
		}
	}
	for _, v := range recVars {
		v.begin = offs
		last = offs
		if len(recVars) == 1 {
			offs += v.vsize // the sole record variable's slice is never padded
		} else {
			offs += pad4(v.vsize)
		}
	}

	return last
}

func hasRecordVar(vars []*Variable) bool {
	for _, v := range vars {
		if v.isRecord {
			return true
		}
	}
	return false
}
