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

// Package catalog implements the core of a document catalog: a set of
// pluggable inverted indexes over 32-bit document identifiers, plus the
// ordered-set algebra that composes their results.
//
// Documents are never stored here. Each index maps a discriminated value
// to the set of docids that carry it (the forward index) and each docid
// back to its value (the reverse index), and answers point, range,
// membership and path-structured queries. Callers compose the returned
// docid sets through Union/Intersection/Difference and may ask a
// FieldIndex to Sort a set.
//
// Persistence, the wider catalog facade that combines indexes, and
// query-object parsing are collaborators outside this package; Store and
// Counter in storage.go provide an optional bbolt-backed durability layer.
package catalog
