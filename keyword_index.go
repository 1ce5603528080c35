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

import "reflect"

// KeywordDiscriminatorFunc extracts the set of values an object carries
// for a multi-valued field — repoze.catalog's KeywordIndex discriminator
// protocol, which returns a sequence instead of FieldIndex's single
// value-or-absent.
type KeywordDiscriminatorFunc[V Ordered] func(obj interface{}) ([]V, bool)

// KeywordIndex is FieldIndex's multi-valued sibling (spec §13,
// supplemented from repoze.catalog.indexes.keyword): each document may
// carry any number of values, and Any/All/Eq give the three ways to
// query them.
type KeywordIndex[V Ordered] struct {
	fn   KeywordDiscriminatorFunc[V]
	attr string

	fwd   map[V][]Docid
	rev   map[Docid][]V
	nDocs int
}

// NewKeywordIndex builds a KeywordIndex whose discriminator is d: a
// KeywordDiscriminatorFunc[V], a plain func(interface{}) ([]V, bool), or
// an attribute name string naming a field holding a []V.
func NewKeywordIndex[V Ordered](d interface{}) (*KeywordIndex[V], error) {
	ki := &KeywordIndex[V]{fwd: make(map[V][]Docid), rev: make(map[Docid][]V)}
	switch v := d.(type) {
	case KeywordDiscriminatorFunc[V]:
		ki.fn = v
	case func(interface{}) ([]V, bool):
		ki.fn = v
	case string:
		if v == "" {
			return nil, newInvalidArgumentf("discriminator attribute name must not be empty")
		}
		ki.attr = v
	default:
		return nil, newInvalidArgumentf("discriminator must be callable or a string, got %T", d)
	}
	return ki, nil
}

// NumDocs returns the number of indexed documents.
func (ki *KeywordIndex[V]) NumDocs() int {
	return ki.nDocs
}

// IndexDoc discriminates the value set out of obj and reconciles it
// against whatever docid was previously indexed under: values dropped
// since the last index are removed from their buckets, values newly
// present are added, and values unchanged are left alone.
func (ki *KeywordIndex[V]) IndexDoc(docid Docid, obj interface{}) error {
	values, ok := ki.extract(obj)
	if !ok || len(values) == 0 {
		ki.UnindexDoc(docid)
		return nil
	}

	old, hadOld := ki.rev[docid]
	newSet := dedupeValues(values)

	if hadOld {
		oldIndex := valueIndex(old)
		newIndex := valueIndex(newSet)
		for _, v := range old {
			if _, keep := newIndex[v]; !keep {
				ki.removeFromBucket(v, docid)
			}
		}
		for _, v := range newSet {
			if _, existed := oldIndex[v]; !existed {
				ki.addToBucket(v, docid)
			}
		}
	} else {
		for _, v := range newSet {
			ki.addToBucket(v, docid)
		}
		ki.nDocs++
	}
	ki.rev[docid] = newSet
	return nil
}

// UnindexDoc removes docid from every bucket it was indexed under.
func (ki *KeywordIndex[V]) UnindexDoc(docid Docid) {
	values, ok := ki.rev[docid]
	if !ok {
		return
	}
	delete(ki.rev, docid)
	ki.nDocs--
	for _, v := range values {
		ki.removeFromBucket(v, docid)
	}
}

// ReindexDoc is an alias for IndexDoc.
func (ki *KeywordIndex[V]) ReindexDoc(docid Docid, obj interface{}) error {
	return ki.IndexDoc(docid, obj)
}

// Eq returns the docids carrying exactly value.
func (ki *KeywordIndex[V]) Eq(value V) Container {
	return NewSet(ki.fwd[value]...)
}

// Any returns the docids carrying at least one of values (OR).
func (ki *KeywordIndex[V]) Any(values []V) Container {
	parts := make([]Container, len(values))
	for i, v := range values {
		parts[i] = NewSet(ki.fwd[v]...)
	}
	return Multiunion(parts)
}

// All returns the docids carrying every one of values (AND).
func (ki *KeywordIndex[V]) All(values []V) Container {
	if len(values) == 0 {
		return NewSet()
	}
	result := NewSet(ki.fwd[values[0]]...)
	for _, v := range values[1:] {
		result = Intersection(result, NewSet(ki.fwd[v]...))
	}
	return result
}

// ValuesOf returns the values docid is indexed under, if any.
func (ki *KeywordIndex[V]) ValuesOf(docid Docid) ([]V, bool) {
	v, ok := ki.rev[docid]
	return v, ok
}

func (ki *KeywordIndex[V]) addToBucket(value V, docid Docid) {
	ki.fwd[value] = insertDocid(ki.fwd[value], docid)
}

func (ki *KeywordIndex[V]) removeFromBucket(value V, docid Docid) {
	bucket, ok := ki.fwd[value]
	if !ok {
		warnMissingBucket("KeywordIndex", docid, value)
		return
	}
	bucket = removeDocid(bucket, docid)
	if len(bucket) == 0 {
		delete(ki.fwd, value)
	} else {
		ki.fwd[value] = bucket
	}
}

func (ki *KeywordIndex[V]) extract(obj interface{}) ([]V, bool) {
	if ki.fn != nil {
		return ki.fn(obj)
	}
	return attrSliceValue[V](obj, ki.attr)
}

func dedupeValues[V Ordered](values []V) []V {
	seen := make(map[V]struct{}, len(values))
	out := make([]V, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func valueIndex[V Ordered](values []V) map[V]struct{} {
	idx := make(map[V]struct{}, len(values))
	for _, v := range values {
		idx[v] = struct{}{}
	}
	return idx
}

func attrSliceValue[V Ordered](obj interface{}, attr string) ([]V, bool) {
	if obj == nil {
		return nil, false
	}
	if m, ok := obj.(map[string]interface{}); ok {
		raw, ok := m[attr]
		if !ok {
			return nil, false
		}
		return toSlice[V](raw)
	}

	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	fv := rv.FieldByName(attr)
	if !fv.IsValid() || !fv.CanInterface() {
		return nil, false
	}
	return toSlice[V](fv.Interface())
}

func toSlice[V Ordered](raw interface{}) ([]V, bool) {
	if direct, ok := raw.([]V); ok {
		return direct, true
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]V, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		v, ok := rv.Index(i).Interface().(V)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}
