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

// Package data is the in-memory query engine generated tests run
// against: a table cache fed by the data service, and an immutable
// query builder over the cached rows.
package data

import (
	"context"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/pkg/errors"

	"github.com/abcum/vero/log"
	"github.com/abcum/vero/util/rand"
)

// Row is a mapping of column name to value. Values are strings,
// numbers, booleans or nil; column order lives on the table.
type Row map[string]interface{}

// Table is an ordered list of rows with its column order and the
// server version it was fetched at.
type Table struct {
	Name    string
	Version string
	Columns []string
	Rows    []Row
}

// DefaultMaxAge is how long a persisted cache entry stays usable. An
// entry is reused only while its version matches the server manifest
// and it is younger than this.
const DefaultMaxAge = 24 * time.Hour

// Manager owns the process-scoped table cache. Preloaded tables are
// read-only snapshots for the lifetime of a run: queries never mutate
// cached rows. Cache entries are written only by PreloadTables,
// RefreshTable, InvalidateTable and the legacy LoadTable; callers must not issue
// overlapping preloads (preloads are additionally serialised by an
// internal lock, so an overlapping call waits rather than racing).
type Manager struct {
	svc    Service
	store  *Store
	maxAge time.Duration
	cached bool

	mu     sync.RWMutex
	tables map[string]*Table

	load sync.Mutex // serialises preload/refresh writers

	memo *ristretto.Cache
	rng  *rand.Source
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore enables cached preloads backed by a persistent store.
func WithStore(s *Store) Option {
	return func(m *Manager) {
		m.store = s
		m.cached = true
	}
}

// WithMaxAge overrides the persistent entry lifetime.
func WithMaxAge(d time.Duration) Option {
	return func(m *Manager) {
		m.maxAge = d
	}
}

// WithRand overrides the RNG used by random-row queries.
func WithRand(r *rand.Source) Option {
	return func(m *Manager) {
		m.rng = r
	}
}

// NewManager returns a manager fetching through svc.
func NewManager(svc Service, opts ...Option) *Manager {

	memo, _ := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 24,
		BufferItems: 64,
	})

	m := &Manager{
		svc:    svc,
		maxAge: DefaultMaxAge,
		tables: make(map[string]*Table),
		memo:   memo,
		rng:    rand.New(time.Now().UnixNano()),
	}

	for _, o := range opts {
		o(m)
	}

	return m

}

// PreloadTables loads the named tables into the in-memory cache with
// at most two server round trips in the happy path: one version
// manifest call, and one bulk fetch for the tables whose version
// differs from the cache. If either call fails, it falls back to
// fetching each table directly.
func (m *Manager) PreloadTables(ctx context.Context, names []string) error {

	m.load.Lock()
	defer m.load.Unlock()

	if len(names) == 0 {
		return nil
	}

	if !m.cached {
		return m.preloadDirect(ctx, names)
	}

	manifest, err := m.svc.GetVersionManifest(ctx)
	if err != nil {
		log.WithPrefix("data").Warnf("version manifest failed, falling back to per-table fetch: %v", err)
		return m.preloadEach(ctx, names)
	}

	known := make(map[string]string, len(names))
	var need []string

	for _, name := range names {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		remote, ok := manifest[name]
		if !ok {
			need = append(need, name)
			continue
		}
		if e, ok := m.cachedEntry(name); ok && e.Version == remote.Version && time.Since(e.FetchedAt) < m.maxAge {
			m.put(&Table{Name: name, Version: e.Version, Columns: e.Columns, Rows: e.Rows})
			known[name] = e.Version
			continue
		}
		need = append(need, name)
	}

	if len(need) == 0 {
		return nil
	}

	fetched, err := m.svc.BulkFetch(ctx, need, known)
	if err != nil {
		log.WithPrefix("data").Warnf("bulk fetch failed, falling back to per-table fetch: %v", err)
		return m.preloadEach(ctx, need)
	}

	for _, name := range need {
		t, ok := fetched[name]
		if !ok {
			return errors.Errorf("bulk fetch returned no data for table '%s'", name)
		}
		m.put(t)
		m.persist(t)
	}

	return nil

}

// preloadDirect is the uncached mode: one bulk fetch every preload.
func (m *Manager) preloadDirect(ctx context.Context, names []string) error {

	fetched, err := m.svc.BulkFetch(ctx, names, nil)
	if err != nil {
		log.WithPrefix("data").Warnf("bulk fetch failed, falling back to per-table fetch: %v", err)
		return m.preloadEach(ctx, names)
	}

	for _, name := range names {
		t, ok := fetched[name]
		if !ok {
			return errors.Errorf("bulk fetch returned no data for table '%s'", name)
		}
		m.put(t)
	}

	return nil

}

// preloadEach is the failure path: one fetch per table.
func (m *Manager) preloadEach(ctx context.Context, names []string) error {

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		t, err := m.svc.FetchTable(ctx, name)
		if err != nil {
			return errors.Wrapf(err, "unable to fetch table '%s'", name)
		}
		m.put(t)
		m.persist(t)
	}

	return nil

}

// LoadTable is the legacy lazy load: fetch the table if it is not
// cached yet, and return its rows. Deprecated in favour of
// PreloadTables plus Query, but the semantics are preserved.
func (m *Manager) LoadTable(ctx context.Context, name string) ([]Row, error) {

	if t, ok := m.get(name); ok {
		return t.Rows, nil
	}

	m.load.Lock()
	defer m.load.Unlock()

	if t, ok := m.get(name); ok {
		return t.Rows, nil
	}

	t, err := m.svc.FetchTable(ctx, name)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load table '%s'", name)
	}

	m.put(t)

	return t.Rows, nil

}

// Query starts a builder over a cached table. An unknown table yields
// an empty builder; generated code preloads before querying.
func (m *Manager) Query(name string) *Query {

	t, ok := m.get(name)
	if !ok {
		log.WithPrefix("data").Warnf("query against table '%s' before it was loaded", name)
		t = &Table{Name: name}
	}

	return &Query{mgr: m, table: t}

}

// InvalidateTable drops a table from the in-memory cache and the
// persistent store.
func (m *Manager) InvalidateTable(name string) {

	m.mu.Lock()
	delete(m.tables, name)
	m.mu.Unlock()

	m.memo.Clear()

	if m.store != nil {
		m.store.Drop(name)
	}

}

// RefreshTable invalidates and re-fetches one table.
func (m *Manager) RefreshTable(ctx context.Context, name string) error {

	m.InvalidateTable(name)

	m.load.Lock()
	defer m.load.Unlock()

	t, err := m.svc.FetchTable(ctx, name)
	if err != nil {
		return errors.Wrapf(err, "unable to refresh table '%s'", name)
	}

	m.put(t)
	m.persist(t)

	return nil

}

// IsTableLoaded reports whether a table is in the in-memory cache.
func (m *Manager) IsTableLoaded(name string) bool {
	_, ok := m.get(name)
	return ok
}

// LoadedTables returns the names of every cached table.
func (m *Manager) LoadedTables() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.tables))
	for n := range m.tables {
		out = append(out, n)
	}
	return out
}

func (m *Manager) get(name string) (*Table, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[name]
	return t, ok
}

func (m *Manager) put(t *Table) {
	m.mu.Lock()
	m.tables[t.Name] = t
	m.mu.Unlock()
}

func (m *Manager) persist(t *Table) {
	if m.store == nil {
		return
	}
	if err := m.store.Put(t.Name, &Entry{
		Version:   t.Version,
		FetchedAt: time.Now(),
		Columns:   t.Columns,
		Rows:      t.Rows,
	}); err != nil {
		log.WithPrefix("data").Warnf("unable to persist table '%s': %v", t.Name, err)
	}
}

func (m *Manager) cachedEntry(name string) (*Entry, bool) {
	if m.store == nil {
		return nil, false
	}
	return m.store.Get(name)
}
