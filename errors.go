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

import "github.com/pkg/errors"

// ErrInvalidArgument is the sentinel for spec's invalid-argument error
// kind: a non-callable non-string discriminator, limit < 1, an unknown
// operator.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrTypeError is the sentinel for spec's type-error kind: a path value
// of the wrong shape given to a PathIndex, or an unresolvable
// set-algebra operand pair in the ASM (see KindMismatchError, which
// unwraps to it and additionally names the operands). IntFieldIndex
// never returns it: its values are typed int, and an attribute of any
// other type reads as "no value", which unindexes the docid.
var ErrTypeError = errors.New("type error")

// ErrInternalInconsistency is the sentinel for spec's
// internal-inconsistency kind: a forward bucket missing during
// unindex_doc. It is never returned to a caller; it exists only so
// tests can assert against the structured log field emitted at WARN
// (see logging.go).
var ErrInternalInconsistency = errors.New("internal inconsistency")

func newInvalidArgumentf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

func newTypeErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrTypeError, format, args...)
}
