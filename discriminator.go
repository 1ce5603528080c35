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

import (
	"reflect"
	"strings"

	"github.com/tidwall/gjson"
)

// DiscriminatorFunc extracts a value of type V from an indexed object.
// The second return value is false to signal "no value" (the sentinel
// in spec's discriminator protocol); index_doc then unindexes the docid
// instead of indexing it.
type DiscriminatorFunc[V any] func(obj interface{}) (V, bool)

// Discriminator is either a callable or an attribute name, exactly as
// spec §6 describes. Construction rejects anything else.
type Discriminator[V any] struct {
	fn   DiscriminatorFunc[V]
	attr string
}

// NewDiscriminator builds a Discriminator from either a
// DiscriminatorFunc[V], a plain func(interface{}) (V, bool), or a string
// naming an attribute/map key to read. Anything else is rejected with
// ErrInvalidArgument.
func NewDiscriminator[V any](d interface{}) (Discriminator[V], error) {
	switch v := d.(type) {
	case DiscriminatorFunc[V]:
		return Discriminator[V]{fn: v}, nil
	case func(interface{}) (V, bool):
		return Discriminator[V]{fn: v}, nil
	case string:
		if v == "" {
			return Discriminator[V]{}, newInvalidArgumentf("discriminator attribute name must not be empty")
		}
		return Discriminator[V]{attr: v}, nil
	default:
		return Discriminator[V]{}, newInvalidArgumentf("discriminator must be callable or a string, got %T", d)
	}
}

// MustDiscriminator is NewDiscriminator for callers that already know
// the value is well-formed (e.g. package-level index definitions); it
// panics on error, mirroring the teacher's NewFieldIndexer convention of
// validating options eagerly at construction time.
func MustDiscriminator[V any](d interface{}) Discriminator[V] {
	disc, err := NewDiscriminator[V](d)
	if err != nil {
		panic(err)
	}
	return disc
}

// Extract runs the discriminator against obj.
func (d Discriminator[V]) Extract(obj interface{}) (V, bool) {
	if d.fn != nil {
		return d.fn(obj)
	}
	return attrValue[V](obj, d.attr)
}

func attrValue[V any](obj interface{}, attr string) (V, bool) {
	var zero V
	if obj == nil {
		return zero, false
	}
	if m, ok := obj.(map[string]interface{}); ok {
		raw, ok := m[attr]
		if !ok {
			return zero, false
		}
		if v, ok := raw.(V); ok {
			return v, true
		}
		return zero, false
	}

	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return zero, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	fv := rv.FieldByName(attr)
	if !fv.IsValid() || !fv.CanInterface() {
		return zero, false
	}
	if v, ok := fv.Interface().(V); ok {
		return v, true
	}
	return zero, false
}

// JSONStringPath builds a DiscriminatorFunc that reads a string value at
// a gjson path out of a document given as []byte or string raw JSON,
// mirroring the teacher's Document.GetString helper.
func JSONStringPath(path string) DiscriminatorFunc[string] {
	return func(obj interface{}) (string, bool) {
		result, ok := gjsonAt(obj, path)
		if !ok || !result.Exists() {
			return "", false
		}
		return result.String(), true
	}
}

// JSONIntPath builds a DiscriminatorFunc that reads a numeric value at a
// gjson path and truncates it to int, mirroring the teacher's
// Document.GetNumber helper.
func JSONIntPath(path string) DiscriminatorFunc[int] {
	return func(obj interface{}) (int, bool) {
		result, ok := gjsonAt(obj, path)
		if !ok || !result.Exists() || result.Type != gjson.Number {
			return 0, false
		}
		return int(result.Int()), true
	}
}

// NormalizedString wraps a string-producing DiscriminatorFunc so every
// extracted value is lower-cased before indexing, the case-folding step
// the teacher's Transform/ToLower applied to query terms at lookup
// time; here it is applied once, at index time, so callers building a
// case-insensitive FieldIndex or KeywordIndex don't have to fold their
// own query values.
func NormalizedString(fn DiscriminatorFunc[string]) DiscriminatorFunc[string] {
	return func(obj interface{}) (string, bool) {
		v, ok := fn(obj)
		if !ok {
			return "", false
		}
		return strings.ToLower(v), true
	}
}

func gjsonAt(obj interface{}, path string) (gjson.Result, bool) {
	switch v := obj.(type) {
	case []byte:
		return gjson.GetBytes(v, path), true
	case string:
		return gjson.Get(v, path), true
	default:
		return gjson.Result{}, false
	}
}
