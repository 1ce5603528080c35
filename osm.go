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

// Package-level functions in this file are the Ordered Set Module (OSM):
// the native set algebra over the four container kinds. They never look
// at foreign collections; ASM (asm.go) is the layer that falls back to
// these when both operands are native and otherwise negotiates a module
// via the merge-adapter capability.

// Union computes the union of c1 and c2. A nil operand is absent: union
// returns the other operand unchanged. When both operands are present
// and key-only the result is a Set; otherwise it is a Bucket whose
// values follow the weighted rule with weight 1 on each side.
func Union(c1, c2 Container) Container {
	if c1 == nil {
		return c2
	}
	if c2 == nil {
		return c1
	}
	if !c1.IsMapping() && !c2.IsMapping() {
		return NewSet(mergeKeys(c1.Keys(), c2.Keys())...)
	}
	_, out := WeightedUnion(c1, c2, 1, 1)
	return out
}

// Intersection computes the intersection of c1 and c2. Per the library's
// deliberate asymmetry, a nil operand is treated as an identity element
// here too: it returns the other operand rather than an empty result.
func Intersection(c1, c2 Container) Container {
	if c1 == nil {
		return c2
	}
	if c2 == nil {
		return c1
	}
	keys := intersectKeys(c1.Keys(), c2.Keys())
	if !c1.IsMapping() && !c2.IsMapping() {
		return NewSet(keys...)
	}
	pairs := make(map[Docid]int32, len(keys))
	for _, k := range keys {
		pairs[k] = containerValue(c1, k) + containerValue(c2, k)
	}
	return NewBucket(pairs)
}

// Difference returns the keys of c1 that are not in c2. If c1 is nil the
// result is nil (absent). If c2 is nil the result is c1 unchanged.
// Otherwise the output is a Set when c1 is key-only, or a Bucket
// carrying c1's values when c1 is mapping-shaped.
func Difference(c1, c2 Container) Container {
	if c1 == nil {
		return nil
	}
	if c2 == nil {
		return c1
	}
	keys := subtractKeys(c1.Keys(), c2.Keys())
	if !c1.IsMapping() {
		return NewSet(keys...)
	}
	pairs := make(map[Docid]int32, len(keys))
	for _, k := range keys {
		pairs[k] = containerValue(c1, k)
	}
	return NewBucket(pairs)
}

// Multiunion computes the n-ary union of cs, optimised for many inputs.
// Weights are ignored; the result is always a key-only Set of docids.
func Multiunion(cs []Container) Container {
	present := make([]Container, 0, len(cs))
	for _, c := range cs {
		if c != nil && c.Len() > 0 {
			present = append(present, c)
		}
	}
	if len(present) == 0 {
		return NewSet()
	}

	seen := make(map[Docid]struct{})
	for _, c := range present {
		for _, k := range c.Keys() {
			seen[k] = struct{}{}
		}
	}
	keys := make([]Docid, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	return NewSet(keys...)
}

// WeightedUnion computes the weighted union of c1 and c2.
//
//   - both absent           -> (0, nil)
//   - only c2 present        -> (w2, c2)
//   - only c1 present        -> (w1, c1)
//   - both key-only sets     -> (1, Union(c1,c2))
//   - otherwise              -> (1, Bucket) with per-key value
//     v1*w1 + v2*w2, where vi is 0 (absent), 1 (operand is a set), or
//     ci[key] (operand is a mapping).
func WeightedUnion(c1, c2 Container, w1, w2 int32) (int32, Container) {
	if c1 == nil {
		if c2 == nil {
			return 0, nil
		}
		return w2, c2
	}
	if c2 == nil {
		return w1, c1
	}
	if !c1.IsMapping() && !c2.IsMapping() {
		return 1, NewSet(mergeKeys(c1.Keys(), c2.Keys())...)
	}

	keys := mergeKeys(c1.Keys(), c2.Keys())
	pairs := make(map[Docid]int32, len(keys))
	for _, k := range keys {
		pairs[k] = weightedValue(c1, k, w1) + weightedValue(c2, k, w2)
	}
	return 1, NewBucket(pairs)
}

// WeightedIntersection computes the weighted intersection of c1 and c2.
//
//   - both absent           -> (0, nil)
//   - only c2 present        -> (w2, c2)
//   - only c1 present        -> (w1, c1)
//   - both key-only sets     -> (w1+w2, Intersection(c1,c2))
//   - otherwise              -> (1, Bucket) with per-key value
//     v1*w1 + v2*w2, where vi is 1 (operand is a set) or ci[key]
//     (operand is a mapping). Note weights only apply to keys in the
//     intersection, so v1/v2 here are never the "absent" 0 case.
func WeightedIntersection(c1, c2 Container, w1, w2 int32) (int32, Container) {
	if c1 == nil {
		if c2 == nil {
			return 0, nil
		}
		return w2, c2
	}
	if c2 == nil {
		return w1, c1
	}
	if !c1.IsMapping() && !c2.IsMapping() {
		return w1 + w2, NewSet(intersectKeys(c1.Keys(), c2.Keys())...)
	}

	keys := intersectKeys(c1.Keys(), c2.Keys())
	pairs := make(map[Docid]int32, len(keys))
	for _, k := range keys {
		pairs[k] = weightedValue(c1, k, w1) + weightedValue(c2, k, w2)
	}
	return 1, NewBucket(pairs)
}

func containerValue(c Container, k Docid) int32 {
	if !c.IsMapping() {
		return 1
	}
	v, _ := c.Value(k)
	return v
}

// weightedValue implements the vi rule from WeightedUnion/WeightedIntersection:
// 0 if the key is absent from c, 1 if present and c is a set, c[key] if
// present and c is a mapping.
func weightedValue(c Container, k Docid, w int32) int32 {
	if c.IsMapping() {
		v, ok := c.Value(k)
		if !ok {
			return 0
		}
		return v * w
	}
	if has(c, k) {
		return w
	}
	return 0
}

func mergeKeys(a, b []Docid) []Docid {
	out := make([]Docid, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

func intersectKeys(a, b []Docid) []Docid {
	out := make([]Docid, 0, minInt(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

func subtractKeys(a, b []Docid) []Docid {
	out := make([]Docid, 0, len(a))
	i, j := 0, 0
	for i < len(a) {
		if j >= len(b) || a[i] < b[j] {
			out = append(out, a[i])
			i++
			continue
		}
		if a[i] > b[j] {
			j++
			continue
		}
		// equal: skip both
		i++
		j++
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
