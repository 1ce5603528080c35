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
	"container/heap"
	"sort"
)

// Sort is the sort-with-limit planner (spec §4.3). It returns docids
// drawn from the input set, ordered by their indexed value, truncated
// to limit if given. Ties break by docid, ascending when reverse is
// false and descending when reverse is true — reverse flips the whole
// (value, docid) ordering rather than just the value, matching a
// Python sort's reverse=True over tuples. docids not present in the
// index are silently dropped.
//
// The planner picks between three strategies based on two advisory
// flags lifted wholesale from the Zope2 catalog (per spec §9 DESIGN
// NOTES, kept as the two testable knobs they describe):
//
//   - useLazy:  rlen > numdocs*(rlen/100+1) — the result set is much
//     larger than this index, so streaming the index itself is cheaper.
//   - useNBest: limit/rlen < NBestMaxPercent — the limit selects a small
//     enough slice that keeping a bounded heap beats a full sort.
//
// n-best wins when both trigger. ForceLazy/ForceNBest override the
// computed flags for tests.
func (fi *FieldIndex[V]) Sort(docids []Docid, reverse bool, limit *int) ([]Docid, error) {
	if limit != nil && *limit < 1 {
		return nil, newInvalidArgumentf("limit must be 1 or greater")
	}
	if len(docids) == 0 {
		return []Docid{}, nil
	}
	if fi.nDocs == 0 {
		return []Docid{}, nil
	}

	rlen := len(docids)
	useLazy := rlen > fi.nDocs*(rlen/100+1)
	useNBest := limit != nil && float64(*limit)/float64(rlen) < fi.effectiveNBestMaxPercent()

	if fi.ForceNBest != nil {
		useNBest = *fi.ForceNBest
	}
	if fi.ForceLazy != nil {
		useLazy = *fi.ForceLazy
	}

	switch {
	case useNBest:
		return fi.sortNBest(docids, reverse, *limit), nil
	case useLazy:
		return fi.sortLazy(docids, reverse, limit), nil
	default:
		return fi.sortFull(docids, reverse, limit), nil
	}
}

func (fi *FieldIndex[V]) effectiveNBestMaxPercent() float64 {
	if fi.NBestMaxPercent <= 0 {
		return 0.25
	}
	return fi.NBestMaxPercent
}

type valueDocid[V Ordered] struct {
	value V
	docid Docid
}

func less[V Ordered](a, b valueDocid[V]) bool {
	if a.value != b.value {
		return a.value < b.value
	}
	return a.docid < b.docid
}

// pairsFor materialises (value, docid) pairs for the docids present in
// the reverse index, silently dropping the rest.
func (fi *FieldIndex[V]) pairsFor(docids []Docid) []valueDocid[V] {
	pairs := make([]valueDocid[V], 0, len(docids))
	for _, d := range docids {
		if v, ok := fi.rev[d]; ok {
			pairs = append(pairs, valueDocid[V]{value: v, docid: d})
		}
	}
	return pairs
}

// minHeap is a container/heap of valueDocid ordered ascending by
// (value, docid); used both to extract the n largest (bounded heap,
// pop the minimum whenever it overflows limit) and the n smallest.
type minHeap[V Ordered] []valueDocid[V]

func (h minHeap[V]) Len() int            { return len(h) }
func (h minHeap[V]) Less(i, j int) bool  { return less(h[i], h[j]) }
func (h minHeap[V]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap[V]) Push(x interface{}) { *h = append(*h, x.(valueDocid[V])) }
func (h *minHeap[V]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// sortNBest implements the limit-aware heap strategy.
func (fi *FieldIndex[V]) sortNBest(docids []Docid, reverse bool, limit int) []Docid {
	pairs := fi.pairsFor(docids)

	if reverse {
		return fi.nLargest(pairs, limit)
	}

	rlen := len(docids)
	if limit*10 <= rlen {
		return fi.nSmallestBuffered(pairs, limit)
	}
	return fi.nSmallestHeap(pairs, limit)
}

// nLargest keeps a bounded min-heap of size limit; whatever remains at
// the end is the limit largest pairs, emitted in descending order.
func (fi *FieldIndex[V]) nLargest(pairs []valueDocid[V], limit int) []Docid {
	h := &minHeap[V]{}
	heap.Init(h)
	for _, p := range pairs {
		if h.Len() < limit {
			heap.Push(h, p)
			continue
		}
		if less((*h)[0], p) {
			heap.Pop(h)
			heap.Push(h, p)
		}
	}
	kept := make([]valueDocid[V], h.Len())
	copy(kept, *h)
	sort.Slice(kept, func(i, j int) bool { return less(kept[j], kept[i]) }) // descending
	out := make([]Docid, len(kept))
	for i, p := range kept {
		out[i] = p.docid
	}
	return out
}

// nSmallestBuffered mirrors heapq.nsmallest's "sorted buffer" fast path:
// take the first limit pairs sorted, then for each further pair skip if
// it's >= the buffer's current maximum, else insert in order and pop the
// maximum.
func (fi *FieldIndex[V]) nSmallestBuffered(pairs []valueDocid[V], limit int) []Docid {
	if len(pairs) == 0 {
		return []Docid{}
	}
	n := limit
	if n > len(pairs) {
		n = len(pairs)
	}
	buf := append([]valueDocid[V](nil), pairs[:n]...)
	sort.Slice(buf, func(i, j int) bool { return less(buf[i], buf[j]) })

	for _, p := range pairs[n:] {
		los := buf[len(buf)-1]
		if !less(p, los) {
			continue
		}
		i := sort.Search(len(buf), func(i int) bool { return less(p, buf[i]) })
		buf = append(buf, valueDocid[V]{})
		copy(buf[i+1:], buf[i:])
		buf[i] = p
		buf = buf[:len(buf)-1]
	}

	out := make([]Docid, len(buf))
	for i, p := range buf {
		out[i] = p.docid
	}
	return out
}

// nSmallestHeap builds a min-heap over all pairs then extracts the
// smallest min(limit, size).
func (fi *FieldIndex[V]) nSmallestHeap(pairs []valueDocid[V], limit int) []Docid {
	h := minHeap[V](append([]valueDocid[V](nil), pairs...))
	heap.Init(&h)
	n := limit
	if n > h.Len() {
		n = h.Len()
	}
	out := make([]Docid, 0, n)
	for i := 0; i < n; i++ {
		p := heap.Pop(&h).(valueDocid[V])
		out = append(out, p.docid)
	}
	return out
}

// sortLazy streams the index itself in value order, emitting only
// docids also present in the input set.
func (fi *FieldIndex[V]) sortLazy(docids []Docid, reverse bool, limit *int) []Docid {
	in := make(map[Docid]struct{}, len(docids))
	for _, d := range docids {
		in[d] = struct{}{}
	}

	var out []Docid
	emit := func(d Docid) bool {
		out = append(out, d)
		return limit != nil && len(out) >= *limit
	}

	if !reverse {
		for _, v := range fi.sortedValues {
			for _, d := range fi.fwd[v] {
				if _, ok := in[d]; ok {
					if emit(d) {
						return out
					}
				}
			}
		}
		return out
	}

	// Descending: ascend the reverse-by-value view from the smallest
	// value, then walk it back to front. See spec Open Question 9(a):
	// we build the ascending stream ourselves from the forward index
	// (already value-ordered) rather than relying on any "minimum
	// value" argument to a byValue() iterator.
	var ascending []Docid
	for _, v := range fi.sortedValues {
		ascending = append(ascending, fi.fwd[v]...)
	}
	for i := len(ascending) - 1; i >= 0; i-- {
		d := ascending[i]
		if _, ok := in[d]; ok {
			if emit(d) {
				return out
			}
		}
	}
	return out
}

// sortFull sorts the input docids by their indexed value directly,
// skipping docids absent from the index.
func (fi *FieldIndex[V]) sortFull(docids []Docid, reverse bool, limit *int) []Docid {
	pairs := fi.pairsFor(docids)
	sort.Slice(pairs, func(i, j int) bool {
		if reverse {
			return less(pairs[j], pairs[i])
		}
		return less(pairs[i], pairs[j])
	})
	if limit != nil && *limit < len(pairs) {
		pairs = pairs[:*limit]
	}
	out := make([]Docid, len(pairs))
	for i, p := range pairs {
		out[i] = p.docid
	}
	return out
}
