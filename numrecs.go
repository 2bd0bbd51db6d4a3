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

// This file contains the numrecs field's special on-disk handling: the
// fixed byte offset it lives at, the streaming/indeterminate sentinel, and
// the size-based recomputation required when that sentinel is
// read back. Grounded on ctessum/cdf's numrecs.go (`UpdateNumRecs`), which
// patches the field after writing is done; generalized to also cover the
// read-side recomputation that package leaves to the caller.

package netcdf3

import (
	"encoding/binary"
)

// numrecsOffset is the fixed byte offset of the numrecs field: right after
// the 4-byte "CDF"+version magic.
const numrecsOffset = 4

// streamingNumrecs is the on-disk sentinel written for numrecs when the
// true count is not yet known at header-write time (the classic format's
// "streaming" convention); it is numerically identical to Indeterminate.
const streamingNumrecs int32 = -1

// patchNumrecs overwrites the numrecs field of an already-written file with
// the data set's current logical record count.
func patchNumrecs(rw WriterAt, numrecs int64) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(wireNumrecsOf(numrecs)))
	if _, err := rw.WriteAt(buf[:], numrecsOffset); err != nil {
		return ioErrAt(numrecsOffset, err)
	}
	return nil
}

// resolveIndeterminateNumrecs recomputes numrecs from the file size when
// ReadHeader found the sentinel in place of a real count: the classic
// format's way of supporting data written by an application that never
// knew the final record count in advance (e.g. an unbuffered stream).
func (ds *DataSet) resolveIndeterminateNumrecs(fileSize int64) {
	if !ds.numrecsIndeterminate {
		return
	}
	warnSentinelRecomputed("numrecs", "")
	if ds.recordStride <= 0 {
		ds.numrecs = 0
		ds.numrecsIndeterminate = false
		return
	}
	avail := fileSize - ds.recordAreaStart()
	if avail < 0 {
		avail = 0
	}
	ds.numrecs = avail / ds.recordStride
	ds.numrecsIndeterminate = false
}
