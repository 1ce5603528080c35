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

import "sort"

// FieldIndex is an ordered value->docids forward index plus a
// docid->value reverse index (spec §4.3). V must be totally ordered so
// that range queries and the sort planner are well defined.
type FieldIndex[V Ordered] struct {
	discriminator Discriminator[V]

	fwd          map[V][]Docid
	rev          map[Docid]V
	sortedValues []V // ascending distinct values actually indexed, keys of fwd

	nDocs int

	// NBestMaxPercent is repoze.catalog's nbest_max_percent: the n-best
	// sort strategy engages when limit/rlen falls below this fraction.
	// Exposed for hosts to tune (default 0.25).
	NBestMaxPercent float64

	// ForceLazy and ForceNBest are test-only override knobs for the
	// sort planner (spec §9 DESIGN NOTES); nil means "let the planner
	// decide".
	ForceLazy  *bool
	ForceNBest *bool
}

// NewFieldIndex builds a FieldIndex whose discriminator is d (a callable
// or attribute name, see NewDiscriminator).
func NewFieldIndex[V Ordered](d interface{}) (*FieldIndex[V], error) {
	disc, err := NewDiscriminator[V](d)
	if err != nil {
		return nil, err
	}
	return &FieldIndex[V]{
		discriminator:   disc,
		fwd:             make(map[V][]Docid),
		rev:             make(map[Docid]V),
		NBestMaxPercent: 0.25,
	}, nil
}

// NumDocs returns the number of indexed documents, satisfying the Index
// capability used by a foreign collection's delegated Sort.
func (fi *FieldIndex[V]) NumDocs() int {
	return fi.nDocs
}

// Clear empties the index.
func (fi *FieldIndex[V]) Clear() {
	fi.fwd = make(map[V][]Docid)
	fi.rev = make(map[Docid]V)
	fi.sortedValues = nil
	fi.nDocs = 0
}

// IndexDoc discriminates a value out of obj and indexes docid under it.
// If the discriminator yields no value, docid is unindexed instead. A
// reindex with the same value is a no-op; a reindex with a different
// value removes the old forward membership first. See spec §4.3.
func (fi *FieldIndex[V]) IndexDoc(docid Docid, obj interface{}) error {
	value, ok := fi.discriminator.Extract(obj)
	if !ok {
		fi.UnindexDoc(docid)
		return nil
	}

	if old, exists := fi.rev[docid]; exists {
		if old == value {
			return nil
		}
		fi.UnindexDoc(docid)
	}

	fi.insertForward(docid, value)
	fi.rev[docid] = value
	fi.nDocs++
	return nil
}

// UnindexDoc removes docid from the index. A missing forward bucket is
// tolerated and logged at WARN (spec Open Question 9(b)), never
// surfaced as an error.
func (fi *FieldIndex[V]) UnindexDoc(docid Docid) {
	value, exists := fi.rev[docid]
	if !exists {
		return
	}
	delete(fi.rev, docid)
	fi.nDocs--

	bucket, ok := fi.fwd[value]
	if !ok {
		warnMissingBucket("FieldIndex", docid, value)
		return
	}
	bucket = removeDocid(bucket, docid)
	if len(bucket) == 0 {
		delete(fi.fwd, value)
		fi.removeValue(value)
	} else {
		fi.fwd[value] = bucket
	}
}

// ReindexDoc is an alias for IndexDoc, matching the teacher/original's
// convention that reindexing and indexing share the same entry point.
func (fi *FieldIndex[V]) ReindexDoc(docid Docid, obj interface{}) error {
	return fi.IndexDoc(docid, obj)
}

// Apply returns the union of forward sets matching query (spec §4.3).
func (fi *FieldIndex[V]) Apply(query FieldQuery[V]) Container {
	if !query.isRange {
		return NewSet(fi.fwd[*query.eq]...)
	}

	lo, hi := fi.rangeIndices(query.min, query.max)
	parts := make([]Container, 0, hi-lo)
	for _, v := range fi.sortedValues[lo:hi] {
		parts = append(parts, NewSet(fi.fwd[v]...))
	}
	return Multiunion(parts)
}

// ValueOf returns the value docid is indexed under, if any.
func (fi *FieldIndex[V]) ValueOf(docid Docid) (V, bool) {
	v, ok := fi.rev[docid]
	return v, ok
}

// --- internal ascending value bookkeeping -------------------------------

func (fi *FieldIndex[V]) insertForward(docid Docid, value V) {
	bucket, existed := fi.fwd[value]
	fi.fwd[value] = insertDocid(bucket, docid)
	if !existed {
		fi.insertValue(value)
	}
}

func (fi *FieldIndex[V]) insertValue(value V) {
	s := fi.sortedValues
	i := sort.Search(len(s), func(i int) bool { return s[i] >= value })
	s = append(s, value)
	copy(s[i+1:], s[i:])
	s[i] = value
	fi.sortedValues = s
}

func (fi *FieldIndex[V]) removeValue(value V) {
	s := fi.sortedValues
	i := sort.Search(len(s), func(i int) bool { return s[i] >= value })
	if i < len(s) && s[i] == value {
		fi.sortedValues = append(s[:i], s[i+1:]...)
	}
}

// rangeIndices returns the [lo, hi) slice bounds into fi.sortedValues
// covering [min, max] inclusive, honouring absent (unbounded) endpoints.
func (fi *FieldIndex[V]) rangeIndices(min, max *V) (int, int) {
	s := fi.sortedValues
	lo := 0
	if min != nil {
		lo = sort.Search(len(s), func(i int) bool { return s[i] >= *min })
	}
	hi := len(s)
	if max != nil {
		hi = sort.Search(len(s), func(i int) bool { return s[i] > *max })
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

func insertDocid(bucket []Docid, docid Docid) []Docid {
	i := sort.Search(len(bucket), func(i int) bool { return bucket[i] >= docid })
	if i < len(bucket) && bucket[i] == docid {
		return bucket
	}
	bucket = append(bucket, 0)
	copy(bucket[i+1:], bucket[i:])
	bucket[i] = docid
	return bucket
}

func removeDocid(bucket []Docid, docid Docid) []Docid {
	i := sort.Search(len(bucket), func(i int) bool { return bucket[i] >= docid })
	if i < len(bucket) && bucket[i] == docid {
		return append(bucket[:i], bucket[i+1:]...)
	}
	return bucket
}
