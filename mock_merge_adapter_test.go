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
	"reflect"

	"github.com/golang/mock/gomock"
)

// MockMergeAdapter is a hand-authored stand-in for what `mockgen
// -source=asm.go -destination=mock_merge_adapter_test.go` would produce
// for the MergeAdapter capability: the ASM's contract for a foreign
// collection that wants to participate in the set algebra.
type MockMergeAdapter struct {
	ctrl     *gomock.Controller
	recorder *MockMergeAdapterMockRecorder
}

type MockMergeAdapterMockRecorder struct {
	mock *MockMergeAdapter
}

func NewMockMergeAdapter(ctrl *gomock.Controller) *MockMergeAdapter {
	m := &MockMergeAdapter{ctrl: ctrl}
	m.recorder = &MockMergeAdapterMockRecorder{mock: m}
	return m
}

func (m *MockMergeAdapter) EXPECT() *MockMergeAdapterMockRecorder {
	return m.recorder
}

func (m *MockMergeAdapter) GetModule(other Container) (Module, bool) {
	ret := m.ctrl.Call(m, "GetModule", other)
	module, _ := ret[0].(Module)
	ok, _ := ret[1].(bool)
	return module, ok
}

func (mr *MockMergeAdapterMockRecorder) GetModule(other interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetModule", reflect.TypeOf((*MockMergeAdapter)(nil).GetModule), other)
}

// mockAdaptedContainer satisfies Container in the minimal way needed to
// exercise the ASM's foreign-collection path: it isn't one of the four
// native kinds, and it additionally implements MergeAdapter.
type mockAdaptedContainer struct {
	*MockMergeAdapter
	keys []Docid
}

func (c *mockAdaptedContainer) Kind() Kind                { return KindSet }
func (c *mockAdaptedContainer) IsMapping() bool           { return false }
func (c *mockAdaptedContainer) Len() int                  { return len(c.keys) }
func (c *mockAdaptedContainer) Keys() []Docid             { return c.keys }
func (c *mockAdaptedContainer) Value(Docid) (int32, bool) { return 0, false }
