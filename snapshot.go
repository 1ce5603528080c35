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
	"encoding/binary"

	"github.com/pkg/errors"
)

// MarshalContainer encodes a Container to a fixed-width binary form fit
// for Store.SaveSnapshot: a one-byte mapping flag, a 4-byte key count,
// then each docid (4 bytes) followed by its value (4 bytes) when the
// container is mapping-shaped. Every entry is the same width, the way
// the teacher's Entry packs references as "RefSize#" followed by a flat
// run of fixed-size records.
func MarshalContainer(c Container) []byte {
	if c == nil {
		return []byte{0, 0, 0, 0, 0}
	}
	keys := c.Keys()
	mapping := c.IsMapping()

	width := 4
	if mapping {
		width = 8
	}
	buf := make([]byte, 5+width*len(keys))

	if mapping {
		buf[0] = 1
	}
	binary.BigEndian.PutUint32(buf[1:5], uint32(len(keys)))

	off := 5
	for _, k := range keys {
		binary.BigEndian.PutUint32(buf[off:off+4], uint32(k))
		off += 4
		if mapping {
			v, _ := c.Value(k)
			binary.BigEndian.PutUint32(buf[off:off+4], uint32(v))
			off += 4
		}
	}
	return buf
}

// UnmarshalContainer decodes a buffer produced by MarshalContainer back
// into a Container (a Set for key-only data, a Bucket for mapping data).
func UnmarshalContainer(data []byte) (Container, error) {
	if len(data) < 5 {
		return nil, errors.New("container snapshot truncated")
	}
	mapping := data[0] == 1
	count := int(binary.BigEndian.Uint32(data[1:5]))

	width := 4
	if mapping {
		width = 8
	}
	want := 5 + width*count
	if len(data) != want {
		return nil, errors.Errorf("container snapshot has %d bytes, expected %d", len(data), want)
	}

	off := 5
	if !mapping {
		keys := make([]Docid, count)
		for i := 0; i < count; i++ {
			keys[i] = Docid(binary.BigEndian.Uint32(data[off : off+4]))
			off += 4
		}
		return NewSet(keys...), nil
	}

	pairs := make(map[Docid]int32, count)
	for i := 0; i < count; i++ {
		k := Docid(binary.BigEndian.Uint32(data[off : off+4]))
		off += 4
		v := int32(binary.BigEndian.Uint32(data[off : off+4]))
		off += 4
		pairs[k] = v
	}
	return NewBucket(pairs), nil
}

// SaveContainerSnapshot compresses, checksums and persists c under name.
func (s *Store) SaveContainerSnapshot(name string, c Container) error {
	return s.SaveSnapshot(name, MarshalContainer(c))
}

// LoadContainerSnapshot retrieves and decodes the Container stored under
// name.
func (s *Store) LoadContainerSnapshot(name string) (Container, bool, error) {
	payload, ok, err := s.LoadSnapshot(name)
	if err != nil || !ok {
		return nil, ok, err
	}
	c, err := UnmarshalContainer(payload)
	if err != nil {
		return nil, false, errors.Wrapf(err, "decoding container snapshot %q", name)
	}
	return c, true, nil
}
