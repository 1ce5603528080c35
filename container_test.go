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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSet(t *testing.T) {
	t.Run("ok - dedupes and sorts", func(t *testing.T) {
		s := NewSet(3, 1, 2, 1, 3)

		assert.Equal(t, KindSet, s.Kind())
		assert.False(t, s.IsMapping())
		assert.Equal(t, []Docid{1, 2, 3}, s.Keys())
	})

	t.Run("ok - empty", func(t *testing.T) {
		s := NewSet()

		assert.Equal(t, 0, s.Len())
		assert.Equal(t, []Docid{}, s.Keys())
	})

	t.Run("ok - value always absent", func(t *testing.T) {
		s := NewSet(1)
		v, ok := s.Value(1)

		assert.False(t, ok)
		assert.Equal(t, int32(0), v)
	})
}

func TestNewTreeSet(t *testing.T) {
	t.Run("ok - same semantics as Set, distinct kind", func(t *testing.T) {
		s := NewTreeSet(2, 1)

		assert.Equal(t, KindTreeSet, s.Kind())
		assert.Equal(t, []Docid{1, 2}, s.Keys())
	})
}

func TestNewBucket(t *testing.T) {
	t.Run("ok - sorts keys, keeps values", func(t *testing.T) {
		b := NewBucket(map[Docid]int32{3: 30, 1: 10, 2: 20})

		assert.Equal(t, KindBucket, b.Kind())
		assert.True(t, b.IsMapping())
		assert.Equal(t, []Docid{1, 2, 3}, b.Keys())

		v, ok := b.Value(2)
		assert.True(t, ok)
		assert.Equal(t, int32(20), v)

		_, ok = b.Value(99)
		assert.False(t, ok)
	})
}

func TestNewBTree(t *testing.T) {
	t.Run("ok - same semantics as Bucket, distinct kind", func(t *testing.T) {
		b := NewBTree(map[Docid]int32{1: 5})

		assert.Equal(t, KindBTree, b.Kind())
		assert.True(t, b.IsMapping())
	})
}

func TestIsNativeKind(t *testing.T) {
	t.Run("ok - native containers", func(t *testing.T) {
		assert.True(t, isNativeKind(NewSet(1), NewBucket(map[Docid]int32{1: 1})))
	})

	t.Run("ok - nil operands are ignored", func(t *testing.T) {
		assert.True(t, isNativeKind(nil, NewSet(1)))
	})

	t.Run("ok - foreign container fails", func(t *testing.T) {
		assert.False(t, isNativeKind(NewSet(1), &fakeForeignContainer{}))
	})
}

// fakeForeignContainer is a minimal Container that isn't one of the four
// native kinds, used to exercise isNativeKind's negative path.
type fakeForeignContainer struct{}

func (fakeForeignContainer) Kind() Kind                  { return KindSet }
func (fakeForeignContainer) IsMapping() bool             { return false }
func (fakeForeignContainer) Len() int                    { return 0 }
func (fakeForeignContainer) Keys() []Docid               { return nil }
func (fakeForeignContainer) Value(Docid) (int32, bool)   { return 0, false }
