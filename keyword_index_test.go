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
	"github.com/stretchr/testify/require"
)

type tagged struct {
	Tags []string
}

func TestKeywordIndex_IndexDoc(t *testing.T) {
	t.Run("ok - indexes every value in the set", func(t *testing.T) {
		ki, err := NewKeywordIndex[string]("Tags")
		require.NoError(t, err)

		require.NoError(t, ki.IndexDoc(1, tagged{Tags: []string{"red", "blue"}}))

		assert.Equal(t, 1, ki.NumDocs())
		assert.Equal(t, []Docid{1}, ki.Eq("red").Keys())
		assert.Equal(t, []Docid{1}, ki.Eq("blue").Keys())
	})

	t.Run("ok - duplicate values in the source are deduplicated", func(t *testing.T) {
		ki, err := NewKeywordIndex[string]("Tags")
		require.NoError(t, err)

		require.NoError(t, ki.IndexDoc(1, tagged{Tags: []string{"red", "red", "blue"}}))

		values, _ := ki.ValuesOf(1)
		assert.ElementsMatch(t, []string{"red", "blue"}, values)
	})

	t.Run("ok - reindex reconciles added and removed values", func(t *testing.T) {
		ki, err := NewKeywordIndex[string]("Tags")
		require.NoError(t, err)
		require.NoError(t, ki.IndexDoc(1, tagged{Tags: []string{"red", "blue"}}))

		require.NoError(t, ki.IndexDoc(1, tagged{Tags: []string{"blue", "green"}}))

		assert.Equal(t, 0, ki.Eq("red").Len())
		assert.Equal(t, []Docid{1}, ki.Eq("blue").Keys())
		assert.Equal(t, []Docid{1}, ki.Eq("green").Keys())
		assert.Equal(t, 1, ki.NumDocs())
	})

	t.Run("ok - reindexing with the same values leaves buckets untouched", func(t *testing.T) {
		ki, err := NewKeywordIndex[string]("Tags")
		require.NoError(t, err)
		require.NoError(t, ki.IndexDoc(1, tagged{Tags: []string{"red", "blue"}}))

		require.NoError(t, ki.IndexDoc(1, tagged{Tags: []string{"blue", "red"}}))

		assert.Equal(t, []Docid{1}, ki.Eq("red").Keys())
		assert.Equal(t, []Docid{1}, ki.Eq("blue").Keys())
	})

	t.Run("ok - an empty or absent value set unindexes the docid", func(t *testing.T) {
		ki, err := NewKeywordIndex[string]("Tags")
		require.NoError(t, err)
		require.NoError(t, ki.IndexDoc(1, tagged{Tags: []string{"red"}}))

		require.NoError(t, ki.IndexDoc(1, tagged{Tags: nil}))

		assert.Equal(t, 0, ki.NumDocs())
		assert.Equal(t, 0, ki.Eq("red").Len())
	})
}

func TestKeywordIndex_UnindexDoc(t *testing.T) {
	t.Run("ok - removes docid from every bucket it carried", func(t *testing.T) {
		ki, err := NewKeywordIndex[string]("Tags")
		require.NoError(t, err)
		require.NoError(t, ki.IndexDoc(1, tagged{Tags: []string{"red", "blue"}}))

		ki.UnindexDoc(1)

		assert.Equal(t, 0, ki.NumDocs())
		assert.Equal(t, 0, ki.Eq("red").Len())
		assert.Equal(t, 0, ki.Eq("blue").Len())
	})

	t.Run("ok - unindexing an unknown docid is a no-op", func(t *testing.T) {
		ki, err := NewKeywordIndex[string]("Tags")
		require.NoError(t, err)

		assert.NotPanics(t, func() { ki.UnindexDoc(99) })
	})
}

func keywordIndexFixture(t *testing.T) *KeywordIndex[string] {
	t.Helper()
	ki, err := NewKeywordIndex[string]("Tags")
	require.NoError(t, err)
	docs := map[Docid][]string{
		1: {"red", "round"},
		2: {"blue", "round"},
		3: {"red", "square"},
	}
	for id, tags := range docs {
		require.NoError(t, ki.IndexDoc(id, tagged{Tags: tags}))
	}
	return ki
}

func TestKeywordIndex_Queries(t *testing.T) {
	t.Run("ok - eq matches only the exact value", func(t *testing.T) {
		ki := keywordIndexFixture(t)

		assert.ElementsMatch(t, []Docid{1, 3}, ki.Eq("red").Keys())
	})

	t.Run("ok - any unions matches across values", func(t *testing.T) {
		ki := keywordIndexFixture(t)

		c := ki.Any([]string{"blue", "square"})

		assert.ElementsMatch(t, []Docid{2, 3}, c.Keys())
	})

	t.Run("ok - all intersects matches across values", func(t *testing.T) {
		ki := keywordIndexFixture(t)

		c := ki.All([]string{"red", "round"})

		assert.Equal(t, []Docid{1}, c.Keys())
	})

	t.Run("ok - all with no values yields an empty set", func(t *testing.T) {
		ki := keywordIndexFixture(t)

		assert.Equal(t, 0, ki.All(nil).Len())
	})

	t.Run("ok - valuesOf returns the carried values", func(t *testing.T) {
		ki := keywordIndexFixture(t)

		values, ok := ki.ValuesOf(1)

		assert.True(t, ok)
		assert.ElementsMatch(t, []string{"red", "round"}, values)
	})

	t.Run("ok - valuesOf on an absent docid is false", func(t *testing.T) {
		ki := keywordIndexFixture(t)

		_, ok := ki.ValuesOf(999)

		assert.False(t, ok)
	})
}
