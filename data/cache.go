// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package data

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/abcum/vero/log"
)

// Entry is one persisted table snapshot, keyed on disk by
// (project, table).
type Entry struct {
	Version   string    `msgpack:"version"`
	FetchedAt time.Time `msgpack:"fetchedAt"`
	Columns   []string  `msgpack:"columns"`
	Rows      []Row     `msgpack:"rows"`
}

// Store is the persistent side of the cached preload mode: msgpack
// snapshots under a project directory.
type Store struct {
	dir     string
	project string
}

// NewStore returns a store rooted at dir for one project.
func NewStore(dir, project string) *Store {
	return &Store{dir: dir, project: project}
}

func (s *Store) path(table string) string {
	return filepath.Join(s.dir, s.project, table+".mp")
}

// Get reads a persisted entry; a missing or unreadable entry is a
// miss.
func (s *Store) Get(table string) (*Entry, bool) {

	raw, err := ioutil.ReadFile(s.path(table))
	if err != nil {
		return nil, false
	}

	var e Entry
	if err := msgpack.Unmarshal(raw, &e); err != nil {
		log.WithPrefix("data").Warnf("dropping corrupt cache entry for '%s': %v", table, err)
		s.Drop(table)
		return nil, false
	}

	return &e, true

}

// Put writes an entry atomically: encode to a temp file, then rename
// over the live one.
func (s *Store) Put(table string, e *Entry) error {

	raw, err := msgpack.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "unable to encode cache entry")
	}

	dir := filepath.Join(s.dir, s.project)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "unable to create cache directory")
	}

	tmp, err := ioutil.TempFile(dir, table+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "unable to create temp cache file")
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "unable to write cache entry")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "unable to close cache file")
	}

	return errors.Wrap(os.Rename(tmp.Name(), s.path(table)), "unable to commit cache entry")

}

// Drop removes a persisted entry.
func (s *Store) Drop(table string) {
	os.Remove(s.path(table))
}
