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
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
	"golang.org/x/crypto/blake2b"
)

// Counter is the durability trait spec §9 DESIGN NOTES calls for: a
// count that can outlive the process, mirroring repoze's BTrees
// Length/_num_docs object. FieldIndex/IntFieldIndex/PathIndex/
// KeywordIndex satisfy it in-memory via their own NumDocs; Store gives
// a durable implementation backed by bbolt.
type Counter interface {
	NumDocs() int
}

const boltDBFileMode = 0600

var snapshotsBucket = []byte("snapshots")
var countersBucket = []byte("counters")

// Store holds a reference to a bbolt data file used for durable index
// snapshots and doc counters, in the teacher's NewStore/StoreOption
// shape (store.go).
type Store struct {
	db      *bbolt.DB
	options bbolt.Options
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// StoreOption configures a Store at construction time.
type StoreOption func(*Store)

// WithoutSync signals the underlying bbolt db to skip syncing with
// disk, the way the teacher's WithoutSync does for its Store.
func WithoutSync() StoreOption {
	return func(s *Store) {
		s.options.NoSync = true
	}
}

// NewStore opens (creating if absent) a bbolt file at dbFile for
// snapshot and counter persistence.
func NewStore(dbFile string, options ...StoreOption) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbFile), os.ModePerm); err != nil {
		return nil, err
	}

	s := &Store{options: *bbolt.DefaultOptions}
	for _, option := range options {
		option(s)
	}

	db, err := bbolt.Open(dbFile, boltDBFileMode, &s.options)
	if err != nil {
		return nil, err
	}
	s.db = db

	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(snapshotsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(countersBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.encoder = enc
	s.decoder = dec

	return s, nil
}

// Close releases the bbolt db and the zstd codecs.
func (s *Store) Close() error {
	s.encoder.Close()
	s.decoder.Close()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const checksumSize = blake2b.Size256

// SaveSnapshot compresses payload with zstd, checksums it with
// blake2b-256, and persists it under name. Whole-index snapshots (e.g.
// a FieldIndex's forward/reverse maps marshaled by a host) are the
// intended payload, per spec §9 DESIGN NOTES' storage trait.
func (s *Store) SaveSnapshot(name string, payload []byte) error {
	compressed := s.encoder.EncodeAll(payload, nil)
	sum := blake2b.Sum256(compressed)

	framed := make([]byte, 0, len(sum)+len(compressed))
	framed = append(framed, sum[:]...)
	framed = append(framed, compressed...)

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotsBucket).Put([]byte(name), framed)
	})
}

// LoadSnapshot retrieves and verifies the snapshot stored under name.
// ok is false if no snapshot exists under that name; a checksum
// mismatch is returned as an error rather than silently accepted data.
func (s *Store) LoadSnapshot(name string) (payload []byte, ok bool, err error) {
	var framed []byte
	err = s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(snapshotsBucket).Get([]byte(name))
		if v == nil {
			return nil
		}
		framed = append([]byte(nil), v...)
		return nil
	})
	if err != nil || framed == nil {
		return nil, false, err
	}
	if len(framed) < checksumSize {
		return nil, false, errors.Errorf("snapshot %q is truncated", name)
	}

	wantSum := framed[:checksumSize]
	compressed := framed[checksumSize:]
	gotSum := blake2b.Sum256(compressed)
	if !equalChecksum(wantSum, gotSum[:]) {
		return nil, false, errors.Errorf("snapshot %q failed checksum verification", name)
	}

	payload, err = s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, false, errors.Wrapf(err, "decompressing snapshot %q", name)
	}
	return payload, true, nil
}

func equalChecksum(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Counter returns a durable Counter backed by name. Nothing is written
// until the first Add; a counter that was never added to reads as 0.
func (s *Store) Counter(name string) *DurableCounter {
	return &DurableCounter{db: s.db, key: []byte(name)}
}

// DurableCounter is a bbolt-backed int64 counter: the durable sibling of
// an in-memory index's nDocs field.
type DurableCounter struct {
	db  *bbolt.DB
	key []byte
}

// NumDocs satisfies Counter.
func (c *DurableCounter) NumDocs() int {
	var n int64
	_ = c.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(countersBucket).Get(c.key)
		if v != nil {
			n = int64(binary.BigEndian.Uint64(v))
		}
		return nil
	})
	return int(n)
}

// Add adjusts the counter by delta and returns the new value.
func (c *DurableCounter) Add(delta int) (int, error) {
	var n int64
	err := c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(countersBucket)
		v := b.Get(c.key)
		if v != nil {
			n = int64(binary.BigEndian.Uint64(v))
		}
		n += int64(delta)
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(n))
		return b.Put(c.key, buf)
	})
	return int(n), err
}
