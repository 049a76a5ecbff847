// This file is part of Gfxbench.
//
// Gfxbench is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gfxbench is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gfxbench.  If not, see <https://www.gnu.org/licenses/>.

package sequencer

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/jetsetilly/gfxbench/logger"
	"github.com/jetsetilly/gfxbench/result"
)

// key prefix of result entries in the database
var resultPrefix = []byte("result/")

// number of sequence numbers leased from the database at a time
const sequenceBandwidth = 64

// BadgerStore keeps results in a badger database. Results are keyed by a
// sequence number so that iteration of the database returns results in the
// order they were stored.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
}

// badger log output is sent to the logger package
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...any) {
	logger.Logf(logger.Allow, "badger", format, args...)
}

func (badgerLogger) Warningf(format string, args ...any) {
	logger.Logf(logger.Allow, "badger", format, args...)
}

func (badgerLogger) Infof(string, ...any)  {}
func (badgerLogger) Debugf(string, ...any) {}

// OpenBadgerStore opens the database in the directory, creating it if
// necessary. An empty path opens an in-memory database.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0750); err != nil {
			return nil, fmt.Errorf("sequencer: %w", err)
		}
		opts = badger.DefaultOptions(path).WithSyncWrites(true)
	}
	opts = opts.WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("sequencer: %w", err)
	}

	seq, err := db.GetSequence([]byte("sequence/result"), sequenceBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sequencer: %w", err)
	}

	return &BadgerStore{db: db, seq: seq}, nil
}

func resultKey(n uint64) []byte {
	k := make([]byte, len(resultPrefix)+8)
	copy(k, resultPrefix)
	binary.BigEndian.PutUint64(k[len(resultPrefix):], n)
	return k
}

func (s *BadgerStore) Put(res result.BenchmarkResult) error {
	v, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("sequencer: %w", err)
	}

	n, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("sequencer: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(resultKey(n), v)
	})
	if err != nil {
		return fmt.Errorf("sequencer: %w", err)
	}
	return nil
}

func (s *BadgerStore) Results() ([]result.BenchmarkResult, error) {
	var results []result.BenchmarkResult

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = resultPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(v []byte) error {
				res, err := result.Parse(v)
				if err != nil {
					return err
				}
				results = append(results, res)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sequencer: %w", err)
	}

	return results, nil
}

func (s *BadgerStore) Close() error {
	if err := s.seq.Release(); err != nil {
		_ = s.db.Close()
		return fmt.Errorf("sequencer: %w", err)
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("sequencer: %w", err)
	}
	return nil
}
