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

// Package netcdf3 reads and writes files in the NetCDF-3 classic and
// 64-bit-offset binary formats: a self-describing scientific data container
// of named dimensions, global and per-variable attributes, and
// multi-dimensional numeric variables.
//
// The data model and the classic file format are documented at
//	https://www.unidata.ucar.edu/software/netcdf/docs/file_format_specifications.html
//
// A NetCDF-3 file has an immutable header (this package does not support
// patching a header in place) describing the layout of the data section.
// The data can be read, written, and, if a record dimension is present,
// appended to one record at a time.
//
// To create a new file:
//
//	ds := netcdf3.NewDataSet()
//	ds.AddUnlimitedDim("time")
//	ds.AddDim("x", 10)
//	psi, _ := ds.AddVar("psi", netcdf3.Float32, []string{"time", "x"})
//	ds.AddAttr("", "comment", netcdf3.NewTextValue("This is a test file"))
//	f, err := netcdf3.Create(rw, ds)
//	err = f.WriteRecordF32("psi", 0, vals)
//	err = f.Close()
//
// To read an existing file, the caller supplies the total size of the
// underlying storage (e.g. from os.File.Stat) so an indeterminate numrecs
// sentinel can be resolved from the data section's length:
//
//	f, err := netcdf3.Open(rw, size)
//	data, err := f.ReadVarF32("psi")
//
// The package does not support reading or writing a strided sub-region of a
// variable; only whole-variable and whole-record transfers are provided.
package netcdf3
