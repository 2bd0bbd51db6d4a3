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

// This file contains the binary header parser.
// Grounded on ctessum/cdf's read.go (`ReadHeader`, `readString`,
// `readNonNegInt32`, the dim/att/var list loops) and header.go
// (`newHeader`, `setComputed`), generalized to build a DataSet through its
// validated mutator API and to return *Error with byte offsets instead of
// bare fmt.Errorf strings.

package netcdf3

import (
	"encoding/binary"
	"io"
)

const (
	tagAbsent = 0
	tagDim    = 0x0A
	tagVar    = 0x0B
	tagAtt    = 0x0C
)

// countingReader tracks how many bytes have been consumed, so header
// parse errors can report a byte offset.
type countingReader struct {
	r   io.Reader
	pos int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.pos += int64(n)
	return n, err
}

func readString(r *countingReader) (string, error) {
	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", wrapErrAt(ErrKindUnexpectedEOF, "", r.pos, err)
	}
	if n < 0 || n > MaxNameSize {
		return "", newErr(ErrKindInvalidName, "", "name length out of range")
	}
	buf := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", wrapErrAt(ErrKindUnexpectedEOF, "", r.pos, err)
		}
	}
	if p := pad4(int64(n)) - int64(n); p > 0 {
		pb := make([]byte, p)
		if _, err := io.ReadFull(r, pb); err != nil {
			return "", wrapErrAt(ErrKindUnexpectedEOF, "", r.pos, err)
		}
	}
	return string(buf), nil
}

func readTag(r *countingReader) (tag int32, count int32, err error) {
	var pair [2]int32
	if e := binary.Read(r, binary.BigEndian, &pair); e != nil {
		return 0, 0, wrapErrAt(ErrKindUnexpectedEOF, "", r.pos, e)
	}
	return pair[0], pair[1], nil
}

// canonicalSectionIndex returns the position (0, 1, 2) a header section tag
// is ordinarily found at, or -1 for a tag this function doesn't track.
func canonicalSectionIndex(tag int32) int {
	switch tag {
	case tagDim:
		return 0
	case tagAtt:
		return 1
	case tagVar:
		return 2
	}
	return -1
}

// ReadHeader parses a NetCDF-3 classic or 64-bit-offset header from r and
// returns the resulting, already-finalized DataSet. r need only support
// sequential reads; random-access variable data I/O is done separately,
// through a File.
//
// The three header sections (dimensions, global attributes, variables) are
// dispatched on their tag rather than assumed to appear in canonical order:
// a file with sections permuted still parses, with a warning, the same way
// the reference decoder tolerates it.
func ReadHeader(r io.Reader) (*DataSet, error) {
	cr := &countingReader{r: r}

	var magic [4]byte
	if _, err := io.ReadFull(cr, magic[:]); err != nil {
		return nil, wrapErrAt(ErrKindUnexpectedEOF, "", cr.pos, err)
	}
	if magic[0] != 'C' || magic[1] != 'D' || magic[2] != 'F' {
		return nil, newErr(ErrKindInvalidMagic, "", "missing CDF magic")
	}
	version := formatVersion(magic[3])
	if version != classicFormat && version != sixtyFourBitOffset {
		return nil, newErr(ErrKindInvalidVersion, "", "unsupported format version")
	}

	var wireNumrecs int32
	if err := binary.Read(cr, binary.BigEndian, &wireNumrecs); err != nil {
		return nil, wrapErrAt(ErrKindUnexpectedEOF, "", cr.pos, err)
	}

	ds := NewDataSet()
	ds.version = version
	if wireNumrecs == streamingNumrecs {
		ds.numrecsIndeterminate = true
	} else {
		ds.numrecs = int64(uint32(wireNumrecs))
	}

	for pos := 0; pos < 3; pos++ {
		tag, count, err := readTag(cr)
		if err != nil {
			return nil, err
		}
		if tag == tagAbsent {
			if count != 0 {
				return nil, newErr(ErrKindUnexpectedTag, "", "absent section tag with nonzero count")
			}
			continue
		}
		if want := canonicalSectionIndex(tag); want != pos {
			warnSectionOrder(sectionName(tag), want, pos)
		}
		switch tag {
		case tagDim:
			err = readDimBody(cr, ds, count)
		case tagAtt:
			err = readAttrBody(cr, ds.gatt, count)
		case tagVar:
			err = readVarBody(cr, ds, count, version)
		default:
			return nil, newErr(ErrKindUnexpectedTag, "", "unrecognized header section tag")
		}
		if err != nil {
			return nil, err
		}
	}

	if err := ds.Check(); err != nil {
		return nil, err
	}

	ds.fixRecordGeometry()
	ds.headerSize = ds.rawHeaderSize()
	ds.finalized = true
	return ds, nil
}

func sectionName(tag int32) string {
	switch tag {
	case tagDim:
		return "dimensions"
	case tagAtt:
		return "attributes"
	case tagVar:
		return "variables"
	}
	return "unknown"
}

func readDimBody(cr *countingReader, ds *DataSet, count int32) error {
	for i := int32(0); i < count; i++ {
		name, err := readString(cr)
		if err != nil {
			return err
		}
		var length int32
		if err := binary.Read(cr, binary.BigEndian, &length); err != nil {
			return wrapErrAt(ErrKindUnexpectedEOF, name, cr.pos, err)
		}
		wire := Unlimited
		if length != 0 {
			wire = int(length)
		}
		if err := ds.dims.add(name, int32(wire)); err != nil {
			return err
		}
	}
	return nil
}

func readAttrBody(cr *countingReader, attrs *Attributes, count int32) error {
	for i := int32(0); i < count; i++ {
		name, err := readString(cr)
		if err != nil {
			return err
		}
		var typ int32
		if err := binary.Read(cr, binary.BigEndian, &typ); err != nil {
			return wrapErrAt(ErrKindUnexpectedEOF, name, cr.pos, err)
		}
		var nelems int32
		if err := binary.Read(cr, binary.BigEndian, &nelems); err != nil {
			return wrapErrAt(ErrKindUnexpectedEOF, name, cr.pos, err)
		}
		val, err := readValue(cr, ElementType(typ), nelems)
		if err != nil {
			return err
		}
		if err := attrs.add(name, val); err != nil {
			return err
		}
	}
	return nil
}

// readAttrList reads a nested attribute list tag and body, used for a
// variable's own attributes (always present at a fixed position within the
// variable's entry, unlike the three top-level header sections).
func readAttrList(cr *countingReader, attrs *Attributes) error {
	tag, count, err := readTag(cr)
	if err != nil {
		return err
	}
	if tag == tagAbsent {
		return nil
	}
	if tag != tagAtt {
		return newErr(ErrKindUnexpectedTag, "", "expected NC_ATTRIBUTE tag")
	}
	return readAttrBody(cr, attrs, count)
}

func readVarBody(cr *countingReader, ds *DataSet, count int32, version formatVersion) error {
	for i := int32(0); i < count; i++ {
		name, err := readString(cr)
		if err != nil {
			return err
		}

		var ndims int32
		if err := binary.Read(cr, binary.BigEndian, &ndims); err != nil {
			return wrapErrAt(ErrKindUnexpectedEOF, name, cr.pos, err)
		}
		if ndims < 0 || ndims > MaxVarDims {
			return newErr(ErrKindInvalidDimensionList, name, "dimension count out of range")
		}
		dimIdx := make([]int32, ndims)
		if ndims > 0 {
			if err := binary.Read(cr, binary.BigEndian, dimIdx); err != nil {
				return wrapErrAt(ErrKindUnexpectedEOF, name, cr.pos, err)
			}
		}
		for _, di := range dimIdx {
			if di < 0 || int(di) >= ds.dims.Len() {
				return newErr(ErrKindInvalidDimensionList, name, "dimension index out of range")
			}
		}

		attrs := newAttributes()
		if err := readAttrList(cr, attrs); err != nil {
			return err
		}

		var typ int32
		if err := binary.Read(cr, binary.BigEndian, &typ); err != nil {
			return wrapErrAt(ErrKindUnexpectedEOF, name, cr.pos, err)
		}
		if !ElementType(typ).Valid() {
			return newErr(ErrKindUnknownType, name, "")
		}

		var wireVSize int32
		if err := binary.Read(cr, binary.BigEndian, &wireVSize); err != nil {
			return wrapErrAt(ErrKindUnexpectedEOF, name, cr.pos, err)
		}

		var begin int64
		if version == sixtyFourBitOffset {
			if err := binary.Read(cr, binary.BigEndian, &begin); err != nil {
				return wrapErrAt(ErrKindUnexpectedEOF, name, cr.pos, err)
			}
		} else {
			var begin32 int32
			if err := binary.Read(cr, binary.BigEndian, &begin32); err != nil {
				return wrapErrAt(ErrKindUnexpectedEOF, name, cr.pos, err)
			}
			begin = int64(uint32(begin32))
		}

		v := &Variable{name: name, typ: ElementType(typ), dimIdx: dimIdx, attrs: attrs, begin: begin}
		v.recompute(ds.dims)
		v.vsize = v.rawChunk // fixRecordGeometry recomputes this for record variables below
		if uint32(wireVSize) == Indeterminate {
			warnSentinelRecomputed("vsize", name)
		}

		if _, exists := ds.varByName[name]; exists {
			return newErr(ErrKindVariableAlreadyExists, name, "")
		}
		ds.varByName[name] = len(ds.vars)
		ds.vars = append(ds.vars, v)
	}
	return nil
}
