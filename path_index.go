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

import "strings"

// PathValueFunc extracts a path out of an indexed object: either a
// '/'-joined string or the component sequence directly. Anything else
// returned is a type error (spec §4.5).
type PathValueFunc func(obj interface{}) (interface{}, bool)

// PathIndex indexes documents by filesystem-like path, keeping a
// per-component posting set at every depth so a query anchored at a
// given level only has to intersect one set per path component (spec
// §4.5). Grounded on Zope's PathIndex algorithm as carried forward by
// repoze.catalog.
type PathIndex struct {
	fn   PathValueFunc
	attr string

	index      map[int]map[string][]Docid // level -> component -> docids
	unindex    map[Docid][]string         // docid -> normalized components
	depth      map[Docid]int              // docid -> len(components)
	notIndexed map[Docid]struct{}         // docids with no path value
	maxDepth   int
}

// NewPathIndex builds a PathIndex whose value function is d: a
// PathValueFunc, a plain func(interface{}) (interface{}, bool), or an
// attribute name string.
func NewPathIndex(d interface{}) (*PathIndex, error) {
	pi := &PathIndex{
		index:      make(map[int]map[string][]Docid),
		unindex:    make(map[Docid][]string),
		depth:      make(map[Docid]int),
		notIndexed: make(map[Docid]struct{}),
	}
	switch v := d.(type) {
	case PathValueFunc:
		pi.fn = v
	case func(interface{}) (interface{}, bool):
		pi.fn = v
	case string:
		if v == "" {
			return nil, newInvalidArgumentf("discriminator attribute name must not be empty")
		}
		pi.attr = v
	default:
		return nil, newInvalidArgumentf("discriminator must be callable or a string, got %T", d)
	}
	return pi, nil
}

// NumDocs returns the number of indexed documents (those with a usable
// path value; docids in notIndexed do not count).
func (pi *PathIndex) NumDocs() int {
	return len(pi.unindex)
}

// IndexDoc extracts a path from obj and indexes docid under every
// (level, component) pair along it. A document with no path value is
// recorded in notIndexed rather than rejected. A path value of the
// wrong shape (neither string nor component slice) is an ErrTypeError,
// mirroring the rejection of persistent objects in the original.
func (pi *PathIndex) IndexDoc(docid Docid, obj interface{}) error {
	raw, ok := pi.extract(obj)
	if !ok {
		pi.UnindexDoc(docid)
		pi.notIndexed[docid] = struct{}{}
		return nil
	}

	comps, err := normalizePathValue(raw)
	if err != nil {
		return err
	}

	pi.UnindexDoc(docid)
	delete(pi.notIndexed, docid)

	for level, comp := range comps {
		byComp := pi.index[level]
		if byComp == nil {
			byComp = make(map[string][]Docid)
			pi.index[level] = byComp
		}
		byComp[comp] = insertDocid(byComp[comp], docid)
	}
	pi.unindex[docid] = comps
	pi.depth[docid] = len(comps)
	if len(comps) > pi.maxDepth {
		pi.maxDepth = len(comps)
	}
	return nil
}

// UnindexDoc removes docid from every level it was indexed at.
func (pi *PathIndex) UnindexDoc(docid Docid) {
	delete(pi.notIndexed, docid)
	comps, ok := pi.unindex[docid]
	if !ok {
		return
	}
	delete(pi.unindex, docid)
	delete(pi.depth, docid)

	for level, comp := range comps {
		byComp, ok := pi.index[level]
		if !ok {
			warnMissingBucket("PathIndex", docid, comp)
			continue
		}
		bucket := removeDocid(byComp[comp], docid)
		if len(bucket) == 0 {
			delete(byComp, comp)
		} else {
			byComp[comp] = bucket
		}
	}
}

// ReindexDoc is an alias for IndexDoc.
func (pi *PathIndex) ReindexDoc(docid Docid, obj interface{}) error {
	return pi.IndexDoc(docid, obj)
}

// Apply evaluates query (one or more paths, combined with
// query.Operator, each matched at query.Level) and returns the union or
// intersection of the per-path matches.
func (pi *PathIndex) Apply(query PathQuery) (Container, error) {
	op, err := normalizeOperator(query.Operator)
	if err != nil {
		return nil, err
	}
	if len(query.Paths) == 0 {
		return NewSet(), nil
	}

	parts := make([]Container, len(query.Paths))
	for i, p := range query.Paths {
		parts[i] = pi.Search(p, query.Level)
	}

	if op == OperatorOr {
		return Multiunion(parts), nil
	}
	result := parts[0]
	for _, p := range parts[1:] {
		result = Intersection(result, p)
	}
	return result, nil
}

// Search matches path against the index. level >= 0 anchors the match
// at that depth (0 means "from the root"); level < 0 matches path
// starting at any depth, unioning every offset that fits. An empty path
// (the root itself) matches every indexed document (spec §4.5, ported
// from Zope's PathIndex.search).
func (pi *PathIndex) Search(path string, level int) Container {
	comps := splitPath(path)
	if len(comps) == 0 {
		docids := make([]Docid, 0, len(pi.unindex))
		for docid := range pi.unindex {
			docids = append(docids, docid)
		}
		return NewSet(docids...)
	}

	if level >= 0 {
		return pi.matchAt(comps, level)
	}

	var parts []Container
	for start := 0; start+len(comps) <= pi.maxDepth+1; start++ {
		parts = append(parts, pi.matchAt(comps, start))
	}
	return Multiunion(parts)
}

func (pi *PathIndex) matchAt(comps []string, level int) Container {
	var result Container
	for i, comp := range comps {
		byComp, ok := pi.index[level+i]
		if !ok {
			return NewSet()
		}
		docs, ok := byComp[comp]
		if !ok {
			return NewSet()
		}
		set := NewSet(docs...)
		if result == nil {
			result = set
		} else {
			result = Intersection(result, set)
		}
	}
	if result == nil {
		return NewSet()
	}
	return result
}

func (pi *PathIndex) extract(obj interface{}) (interface{}, bool) {
	if pi.fn != nil {
		return pi.fn(obj)
	}
	v, ok := attrValue[interface{}](obj, pi.attr)
	return v, ok
}

// normalizePathValue accepts a '/'-joined string or an explicit
// component sequence; anything else is an ErrTypeError. A sequence's
// first element is its root and is dropped, mirroring the source's
// rendering of [root, a, b, c] as "/a/b/c" (spec §4.5).
func normalizePathValue(raw interface{}) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return splitPath(v), nil
	case []string:
		if len(v) == 0 {
			return nil, nil
		}
		return filterEmpty(v[1:]), nil
	default:
		return nil, newTypeErrorf("path value must be a string or component slice, got %T", raw)
	}
}

// splitPath splits on '/' and drops empty components (including the
// one before a leading slash), so "/a/b/c", "a/b/c" and "a/b/c/" all normalize to ["a","b","c"].
func splitPath(path string) []string {
	return filterEmpty(strings.Split(path, "/"))
}

func filterEmpty(comps []string) []string {
	out := make([]string, 0, len(comps))
	for _, c := range comps {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
