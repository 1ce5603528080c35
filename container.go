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

// Kind tags the four native container shapes the ordered-set algebra
// understands. Set/TreeSet are key-only; Bucket/BTree carry an int32
// value alongside each key. Set and Bucket are the "leaf" shapes, TreeSet
// and BTree the "large collection" shapes; in this in-memory
// implementation the two pairs behave identically and differ only in
// their Kind tag, the way repoze.catalog's BTrees.family32 pairs a Set
// with a TreeSet of the same element type.
type Kind int

const (
	KindSet Kind = iota
	KindTreeSet
	KindBucket
	KindBTree
)

func (k Kind) String() string {
	switch k {
	case KindSet:
		return "Set"
	case KindTreeSet:
		return "TreeSet"
	case KindBucket:
		return "Bucket"
	case KindBTree:
		return "BTree"
	default:
		return "Unknown"
	}
}

// Container is a native, ordered, deduplicated collection of Docid keys,
// optionally carrying an int32 value per key. A nil Container (the
// untyped nil, never a typed nil pointer) represents an absent operand
// throughout the ordered-set algebra.
type Container interface {
	// Kind reports which of the four native shapes this container is.
	Kind() Kind
	// IsMapping reports whether this container carries a value per key
	// (Bucket/BTree) or is key-only (Set/TreeSet).
	IsMapping() bool
	// Len returns the number of keys.
	Len() int
	// Keys returns the keys in ascending order. Callers must not mutate
	// the returned slice.
	Keys() []Docid
	// Value returns the value stored for docid and whether it was
	// present. Always (0, false) for a key-only container.
	Value(docid Docid) (int32, bool)
}

// keySet backs Set and TreeSet: an ascending, deduplicated slice of docids.
type keySet struct {
	kind Kind
	keys []Docid
}

// NewSet builds a key-only Set container from the given docids.
// Duplicates are collapsed, order is not significant on input.
func NewSet(docids ...Docid) Container {
	return newKeySet(KindSet, docids)
}

// NewTreeSet builds a key-only TreeSet container. It behaves exactly
// like Set; the distinct Kind exists so callers and the ASM dispatcher
// can distinguish "large" collections the way BTrees.family32 does.
func NewTreeSet(docids ...Docid) Container {
	return newKeySet(KindTreeSet, docids)
}

func newKeySet(kind Kind, docids []Docid) *keySet {
	keys := append([]Docid{}, docids...)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	keys = dedupeSorted(keys)
	return &keySet{kind: kind, keys: keys}
}

func dedupeSorted(keys []Docid) []Docid {
	if len(keys) < 2 {
		return keys
	}
	out := keys[:1]
	for _, k := range keys[1:] {
		if k != out[len(out)-1] {
			out = append(out, k)
		}
	}
	return out
}

func (s *keySet) Kind() Kind                     { return s.kind }
func (s *keySet) IsMapping() bool                 { return false }
func (s *keySet) Len() int                        { return len(s.keys) }
func (s *keySet) Keys() []Docid                   { return s.keys }
func (s *keySet) Value(Docid) (int32, bool)       { return 0, false }

// keyMap backs Bucket and BTree: an ascending, deduplicated slice of
// docids each carrying an int32 value.
type keyMap struct {
	kind   Kind
	keys   []Docid
	values []int32
}

// NewBucket builds a mapping-shaped Bucket container from docid->weight
// pairs.
func NewBucket(pairs map[Docid]int32) Container {
	return newKeyMap(KindBucket, pairs)
}

// NewBTree builds a mapping-shaped BTree container. It behaves exactly
// like Bucket; see NewTreeSet for why the distinct Kind exists.
func NewBTree(pairs map[Docid]int32) Container {
	return newKeyMap(KindBTree, pairs)
}

func newKeyMap(kind Kind, pairs map[Docid]int32) *keyMap {
	keys := make([]Docid, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	values := make([]int32, len(keys))
	for i, k := range keys {
		values[i] = pairs[k]
	}
	return &keyMap{kind: kind, keys: keys, values: values}
}

func (m *keyMap) Kind() Kind   { return m.kind }
func (m *keyMap) IsMapping() bool { return true }
func (m *keyMap) Len() int     { return len(m.keys) }
func (m *keyMap) Keys() []Docid { return m.keys }

func (m *keyMap) Value(docid Docid) (int32, bool) {
	i := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= docid })
	if i < len(m.keys) && m.keys[i] == docid {
		return m.values[i], true
	}
	return 0, false
}

// has reports whether docid is a member of c. c must not be nil.
func has(c Container, docid Docid) bool {
	keys := c.Keys()
	i := sort.Search(len(keys), func(i int) bool { return keys[i] >= docid })
	return i < len(keys) && keys[i] == docid
}

// isNativeKind reports whether every given container is one of the four
// native kinds (as opposed to a foreign, ASM-adapted collection).
func isNativeKind(cs ...Container) bool {
	for _, c := range cs {
		if c == nil {
			continue
		}
		switch c.(type) {
		case *keySet, *keyMap:
		default:
			return false
		}
	}
	return true
}
