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

// This file contains the File handle binding a DataSet's header to the
// underlying random-access storage, and the Open/Create/Close lifecycle.
// Grounded on ctessum/cdf's file.go (`File`, `Open`, `Create`, `ReaderWriterAt`),
// generalized to require an explicit size on Open (record-count recovery
// for an indeterminate numrecs needs it, and this package does not assume
// its storage is an *os.File).

package netcdf3

import "io"

// WriterAt is the write half of ReaderWriterAt, used on its own by the
// numrecs patch performed at Close.
type WriterAt interface {
	WriteAt(p []byte, off int64) (n int, err error)
}

// ReaderWriterAt is the storage abstraction this package reads and writes
// through: random-access, so that variable data can be addressed directly
// by its computed offset instead of requiring sequential access. *os.File
// satisfies it directly.
type ReaderWriterAt interface {
	io.ReaderAt
	WriterAt
}

// File binds a DataSet (the parsed or to-be-written header) to the
// storage backing it.
type File struct {
	rw ReaderWriterAt
	ds *DataSet
}

// DataSet returns the file's data-set description.
func (f *File) DataSet() *DataSet { return f.ds }

// Open parses the header of an existing NetCDF-3 file and returns a File
// ready for reading (and, for writing record data and patching numrecs,
// ready for writing too, provided rw supports it). size is the total
// length in bytes of the data backing rw, used to resolve an indeterminate
// numrecs field.
func Open(rw ReaderWriterAt, size int64) (*File, error) {
	ds, err := ReadHeader(io.NewSectionReader(rw, 0, size))
	if err != nil {
		return nil, err
	}
	ds.resolveIndeterminateNumrecs(size)
	return &File{rw: rw, ds: ds}, nil
}

// Create writes ds's header to rw and returns a File ready for writing
// variable data. ds is finalized (offsets and format version computed) as
// part of Create if it has not been already.
func Create(rw ReaderWriterAt, ds *DataSet) (*File, error) {
	if !ds.finalized {
		if err := ds.Finalize(); err != nil {
			return nil, err
		}
	}
	sw := io.NewOffsetWriter(rw, 0)
	if err := ds.WriteHeader(sw); err != nil {
		return nil, err
	}
	return &File{rw: rw, ds: ds}, nil
}

// Close patches the file's numrecs field with the data set's final
// logical record count. It must be called after the last record write for
// the on-disk numrecs to reflect what was actually written, mirroring
// UpdateNumRecs in the package this one is modeled on, folded into the
// handle's lifecycle instead of left to the caller to remember.
func (f *File) Close() error {
	return patchNumrecs(f.rw, f.ds.NumRecords())
}
