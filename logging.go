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

// This file contains the package-level logger used for recoverable parse
// anomalies. It never logs on the hot path for a well-formed file.

package netcdf3

import "github.com/sirupsen/logrus"

var pkgLogger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces the logger used for recoverable header-parsing
// warnings (out-of-order sections, sentinel-value recomputation). Passing
// nil restores the package default (logrus's standard logger).
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	pkgLogger = l
}

func warnSectionOrder(section string, wantIndex, gotIndex int) {
	pkgLogger.WithFields(logrus.Fields{
		"section": section,
		"want":    wantIndex,
		"got":     gotIndex,
	}).Warn("netcdf3: header section out of canonical order")
}

func warnSentinelRecomputed(field string, name string) {
	pkgLogger.WithFields(logrus.Fields{
		"field":    field,
		"variable": name,
	}).Warn("netcdf3: recomputing indeterminate sentinel from geometry")
}
