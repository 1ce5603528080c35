/*
 * catalog
 * Copyright (C) 2026 catalog contributors
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package catalog

import "github.com/sirupsen/logrus"

// log is the package-level logger. It defaults to logrus' standard
// logger; a host application can override it (e.g. to inject its own
// formatter or hook) with SetLogger.
var log logrus.FieldLogger = logrus.StandardLogger()

// SetLogger overrides the logger used for the WARN-level diagnostics
// described in spec's Open Question 9(b): a missing forward bucket
// encountered during unindex_doc is logged, never returned as an error.
// A missing granular bucket in an IntFieldIndex is not logged.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	log = l
}

func warnMissingBucket(component string, docid Docid, value interface{}) {
	log.WithFields(logrus.Fields{
		"component": component,
		"docid":     docid,
		"value":     value,
		"error":     ErrInternalInconsistency.Error(),
	}).Warn("forward bucket missing during unindex")
}
