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

func intFieldIndexWithValues(t *testing.T, values map[Docid]int) *FieldIndex[int] {
	t.Helper()
	type doc struct{ V int }
	fi, err := NewFieldIndex[int]("V")
	require.NoError(t, err)
	for id, v := range values {
		require.NoError(t, fi.IndexDoc(id, doc{V: v}))
	}
	return fi
}

func TestFieldIndex_Sort(t *testing.T) {
	values := map[Docid]int{1: 30, 2: 10, 3: 20, 4: 10, 5: 40}
	all := []Docid{1, 2, 3, 4, 5}

	t.Run("error - limit below 1", func(t *testing.T) {
		fi := intFieldIndexWithValues(t, values)
		bad := 0

		_, err := fi.Sort(all, false, &bad)

		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("ok - empty input yields empty output", func(t *testing.T) {
		fi := intFieldIndexWithValues(t, values)

		out, err := fi.Sort(nil, false, nil)

		assert.NoError(t, err)
		assert.Equal(t, []Docid{}, out)
	})

	t.Run("ok - full sort ascending, ties broken by docid", func(t *testing.T) {
		fi := intFieldIndexWithValues(t, values)
		fi.ForceLazy = boolPtr(false)
		fi.ForceNBest = boolPtr(false)

		out, err := fi.Sort(all, false, nil)

		assert.NoError(t, err)
		assert.Equal(t, []Docid{2, 4, 3, 1, 5}, out)
	})

	t.Run("ok - full sort descending, ties broken by descending docid", func(t *testing.T) {
		fi := intFieldIndexWithValues(t, values)
		fi.ForceLazy = boolPtr(false)
		fi.ForceNBest = boolPtr(false)

		out, err := fi.Sort(all, true, nil)

		assert.NoError(t, err)
		assert.Equal(t, []Docid{5, 1, 3, 4, 2}, out)
	})

	t.Run("ok - lazy ascending streams the forward index", func(t *testing.T) {
		fi := intFieldIndexWithValues(t, values)
		fi.ForceLazy = boolPtr(true)
		fi.ForceNBest = boolPtr(false)

		out, err := fi.Sort(all, false, nil)

		assert.NoError(t, err)
		assert.Equal(t, []Docid{2, 4, 3, 1, 5}, out)
	})

	t.Run("ok - lazy descending reverses the ascending stream", func(t *testing.T) {
		fi := intFieldIndexWithValues(t, values)
		fi.ForceLazy = boolPtr(true)
		fi.ForceNBest = boolPtr(false)

		out, err := fi.Sort(all, true, nil)

		assert.NoError(t, err)
		assert.Equal(t, []Docid{5, 1, 3, 4, 2}, out)
	})

	t.Run("ok - lazy drops docids absent from the index", func(t *testing.T) {
		fi := intFieldIndexWithValues(t, values)
		fi.ForceLazy = boolPtr(true)
		fi.ForceNBest = boolPtr(false)

		out, err := fi.Sort([]Docid{1, 999, 2}, false, nil)

		assert.NoError(t, err)
		assert.Equal(t, []Docid{2, 1}, out)
	})

	t.Run("ok - nbest ascending small limit matches full sort prefix", func(t *testing.T) {
		fi := intFieldIndexWithValues(t, values)
		fi.ForceLazy = boolPtr(false)
		fi.ForceNBest = boolPtr(true)
		limit := 2

		out, err := fi.Sort(all, false, &limit)

		assert.NoError(t, err)
		assert.Equal(t, []Docid{2, 4}, out)
	})

	t.Run("ok - nbest descending matches full sort prefix", func(t *testing.T) {
		fi := intFieldIndexWithValues(t, values)
		fi.ForceLazy = boolPtr(false)
		fi.ForceNBest = boolPtr(true)
		limit := 2

		out, err := fi.Sort(all, true, &limit)

		assert.NoError(t, err)
		assert.Equal(t, []Docid{5, 1}, out)
	})

	t.Run("ok - nbest wins when both flags are true", func(t *testing.T) {
		fi := intFieldIndexWithValues(t, values)
		fi.ForceLazy = boolPtr(true)
		fi.ForceNBest = boolPtr(true)
		limit := 2

		out, err := fi.Sort(all, false, &limit)

		assert.NoError(t, err)
		assert.Equal(t, []Docid{2, 4}, out)
	})

	t.Run("ok - limit beyond result size returns everything sorted", func(t *testing.T) {
		fi := intFieldIndexWithValues(t, values)
		fi.ForceLazy = boolPtr(false)
		fi.ForceNBest = boolPtr(true)
		limit := 100

		out, err := fi.Sort(all, false, &limit)

		assert.NoError(t, err)
		assert.Equal(t, []Docid{2, 4, 3, 1, 5}, out)
	})

	t.Run("ok - planner picks nbest automatically for a small limit", func(t *testing.T) {
		fi := intFieldIndexWithValues(t, values)
		limit := 1

		out, err := fi.Sort(all, false, &limit)

		assert.NoError(t, err)
		assert.Equal(t, []Docid{2}, out)
	})

	t.Run("ok - zero indexed documents yields empty output", func(t *testing.T) {
		fi := intFieldIndexWithValues(t, nil)

		out, err := fi.Sort([]Docid{1, 2}, false, nil)

		assert.NoError(t, err)
		assert.Equal(t, []Docid{}, out)
	})
}

func boolPtr(b bool) *bool { return &b }
