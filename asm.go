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

// Module is a set of collection operations compatible with a particular
// pair of operand shapes. The native OSM operations in osm.go are one
// such module; a foreign collection's MergeAdapter can hand back any
// other implementation compatible with both operands.
type Module interface {
	Union(c1, c2 Container) Container
	Intersection(c1, c2 Container) Container
	Difference(c1, c2 Container) Container
	WeightedUnion(c1, c2 Container, w1, w2 int32) (int32, Container)
	WeightedIntersection(c1, c2 Container, w1, w2 int32) (int32, Container)
}

// nativeModule adapts the package-level OSM functions to the Module
// interface.
type nativeModule struct{}

func (nativeModule) Union(c1, c2 Container) Container        { return Union(c1, c2) }
func (nativeModule) Intersection(c1, c2 Container) Container  { return Intersection(c1, c2) }
func (nativeModule) Difference(c1, c2 Container) Container    { return Difference(c1, c2) }
func (nativeModule) WeightedUnion(c1, c2 Container, w1, w2 int32) (int32, Container) {
	return WeightedUnion(c1, c2, w1, w2)
}
func (nativeModule) WeightedIntersection(c1, c2 Container, w1, w2 int32) (int32, Container) {
	return WeightedIntersection(c1, c2, w1, w2)
}

// MergeAdapter is the capability a foreign (non-native) collection
// implements to participate in the set algebra. GetModule is asked for a
// Module compatible with both self and other; ok is false when this
// collection doesn't know how to merge with other (the Python original's
// "return NotImplemented" sentinel).
type MergeAdapter interface {
	GetModule(other Container) (module Module, ok bool)
}

// EstimateLength is an optional capability a foreign collection can
// expose to let callers avoid an expensive exact Len().
type EstimateLength interface {
	EstimateLength() int
}

// Index is the minimal surface a foreign collection's delegated Sort
// needs from the index driving the sort.
type Index interface {
	NumDocs() int
}

// Sortable is an optional capability a foreign collection can expose to
// delegate sorting to itself (e.g. an external search service) instead
// of the index's own sort planner.
type Sortable interface {
	Sort(index Index, limit int, sortType string, reverse bool) ([]Docid, error)
}

// KindMismatchError is returned when the ASM cannot find any module
// compatible with both operands.
type KindMismatchError struct {
	C1, C2 Container
}

func (e *KindMismatchError) Error() string {
	return errors.Errorf("no set adapter provided for (%T, %T)", e.C1, e.C2).Error()
}

// Unwrap makes a KindMismatchError match ErrTypeError under errors.Is.
func (e *KindMismatchError) Unwrap() error {
	return ErrTypeError
}

// AdaptableModule is the Adaptable Set Module (ASM): a dispatch wrapper
// around the native OSM that falls through to a foreign collection's
// MergeAdapter capability when either operand isn't one of the four
// native kinds.
type AdaptableModule struct{}

// ASM is the default, stateless Adaptable Set Module instance.
var ASM = AdaptableModule{}

func (AdaptableModule) resolve(c1, c2 Container) (Module, error) {
	if isNativeKind(c1, c2) {
		return nativeModule{}, nil
	}
	for _, self := range [2]Container{c1, c2} {
		if self == nil {
			continue
		}
		adapter, ok := self.(MergeAdapter)
		if !ok {
			continue
		}
		other := c2
		if self == c2 {
			other = c1
		}
		if module, ok := adapter.GetModule(other); ok {
			return module, nil
		}
	}
	return nil, &KindMismatchError{C1: c1, C2: c2}
}

// Union dispatches to the module compatible with c1 and c2. Absent
// operands short-circuit before module selection, exactly as in OSM.
func (a AdaptableModule) Union(c1, c2 Container) (Container, error) {
	if c1 == nil {
		return c2, nil
	}
	if c2 == nil {
		return c1, nil
	}
	module, err := a.resolve(c1, c2)
	if err != nil {
		return nil, err
	}
	return module.Union(c1, c2), nil
}

// Intersection dispatches to the module compatible with c1 and c2.
func (a AdaptableModule) Intersection(c1, c2 Container) (Container, error) {
	if c1 == nil {
		return c2, nil
	}
	if c2 == nil {
		return c1, nil
	}
	module, err := a.resolve(c1, c2)
	if err != nil {
		return nil, err
	}
	return module.Intersection(c1, c2), nil
}

// Difference dispatches to the module compatible with c1 and c2.
func (a AdaptableModule) Difference(c1, c2 Container) (Container, error) {
	if c1 == nil {
		return nil, nil
	}
	if c2 == nil {
		return c1, nil
	}
	module, err := a.resolve(c1, c2)
	if err != nil {
		return nil, err
	}
	return module.Difference(c1, c2), nil
}

// WeightedUnion dispatches to the module compatible with c1 and c2.
func (a AdaptableModule) WeightedUnion(c1, c2 Container, w1, w2 int32) (int32, Container, error) {
	if c1 == nil {
		if c2 == nil {
			return 0, nil, nil
		}
		return w2, c2, nil
	}
	if c2 == nil {
		return w1, c1, nil
	}
	module, err := a.resolve(c1, c2)
	if err != nil {
		return 0, nil, err
	}
	w, c := module.WeightedUnion(c1, c2, w1, w2)
	return w, c, nil
}

// WeightedIntersection dispatches to the module compatible with c1 and c2.
func (a AdaptableModule) WeightedIntersection(c1, c2 Container, w1, w2 int32) (int32, Container, error) {
	if c1 == nil {
		if c2 == nil {
			return 0, nil, nil
		}
		return w2, c2, nil
	}
	if c2 == nil {
		return w1, c1, nil
	}
	module, err := a.resolve(c1, c2)
	if err != nil {
		return 0, nil, err
	}
	w, c := module.WeightedIntersection(c1, c2, w1, w2)
	return w, c, nil
}

// Multiunion folds Union across cs left to right, resolving a (possibly
// foreign) module for each pairwise step. Callers with an all-native
// slice should prefer the package-level Multiunion, which is the
// optimised n-ary form; this exists for the mixed native/foreign case.
func (a AdaptableModule) Multiunion(cs []Container) (Container, error) {
	var result Container
	for _, c := range cs {
		next, err := a.Union(result, c)
		if err != nil {
			return nil, err
		}
		result = next
	}
	if result == nil {
		return NewSet(), nil
	}
	return result, nil
}
