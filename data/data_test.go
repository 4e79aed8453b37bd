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
	"context"
	"io/ioutil"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeService serves canned tables and counts round trips.
type fakeService struct {
	tables    map[string]*Table
	trips     int
	lastBulk  []string
	failBulk  bool
	failManif bool
}

func (f *fakeService) FetchTable(ctx context.Context, name string) (*Table, error) {
	f.trips++
	t, ok := f.tables[name]
	if !ok {
		return nil, errors.Errorf("no such table '%s'", name)
	}
	return t, nil
}

func (f *fakeService) GetTableVersion(ctx context.Context, name string) (string, error) {
	f.trips++
	t, ok := f.tables[name]
	if !ok {
		return "", errors.Errorf("no such table '%s'", name)
	}
	return t.Version, nil
}

func (f *fakeService) GetVersionManifest(ctx context.Context) (map[string]TableVersion, error) {
	f.trips++
	if f.failManif {
		return nil, errors.New("manifest unavailable")
	}
	out := make(map[string]TableVersion, len(f.tables))
	for name, t := range f.tables {
		out[name] = TableVersion{Version: t.Version, RowCount: len(t.Rows)}
	}
	return out, nil
}

func (f *fakeService) BulkFetch(ctx context.Context, names []string, ifNoneMatch map[string]string) (map[string]*Table, error) {
	f.trips++
	if f.failBulk {
		return nil, errors.New("bulk unavailable")
	}
	f.lastBulk = append([]string(nil), names...)
	sort.Strings(f.lastBulk)
	out := make(map[string]*Table, len(names))
	for _, n := range names {
		t, ok := f.tables[n]
		if !ok {
			return nil, errors.Errorf("no such table '%s'", n)
		}
		out[n] = t
	}
	return out, nil
}

func service() *fakeService {
	return &fakeService{tables: map[string]*Table{
		"Users":    {Name: "Users", Version: "vA", Columns: []string{"n"}, Rows: []Row{{"n": "u1"}}},
		"Products": {Name: "Products", Version: "vB", Columns: []string{"n"}, Rows: []Row{{"n": "p1"}}},
		"Orders":   {Name: "Orders", Version: "vC", Columns: []string{"n"}, Rows: []Row{{"n": "o1"}}},
	}}
}

func tempStore(t *testing.T) *Store {
	dir, err := ioutil.TempDir("", "vero-cache-")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return NewStore(dir, "proj1")
}

func TestPreload(t *testing.T) {

	Convey("direct preload is a single bulk round trip", t, func() {

		svc := service()
		mgr := NewManager(svc)

		err := mgr.PreloadTables(context.Background(), []string{"Users", "Products"})
		So(err, ShouldBeNil)
		So(svc.trips, ShouldEqual, 1)
		So(mgr.IsTableLoaded("Users"), ShouldBeTrue)
		So(mgr.IsTableLoaded("Products"), ShouldBeTrue)

	})

	Convey("cached preload fetches only changed tables in one bulk call", t, func() {

		store := tempStore(t)
		svc := service()

		// Warm the persistent cache at the current versions.
		warm := NewManager(svc, WithStore(store))
		So(warm.PreloadTables(context.Background(), []string{"Users", "Products"}), ShouldBeNil)

		// Users changes server-side; Orders is new; Products is
		// unchanged and must be served from the cache.
		svc.tables["Users"] = &Table{Name: "Users", Version: "vA2", Columns: []string{"n"}, Rows: []Row{{"n": "u2"}}}
		svc.trips = 0

		mgr := NewManager(svc, WithStore(store))
		err := mgr.PreloadTables(context.Background(), []string{"Users", "Products", "Orders"})
		So(err, ShouldBeNil)

		// Exactly two round trips: manifest plus one bulk fetch.
		So(svc.trips, ShouldEqual, 2)
		So(svc.lastBulk, ShouldResemble, []string{"Orders", "Users"})

		So(mgr.IsTableLoaded("Products"), ShouldBeTrue)
		rows := mgr.Query("Users").Execute()
		So(rows[0]["n"], ShouldEqual, "u2")

	})

	Convey("stale cache entries are refetched even on matching versions", t, func() {

		store := tempStore(t)
		svc := service()

		warm := NewManager(svc, WithStore(store))
		So(warm.PreloadTables(context.Background(), []string{"Users"}), ShouldBeNil)

		svc.trips = 0

		mgr := NewManager(svc, WithStore(store), WithMaxAge(time.Nanosecond))
		So(mgr.PreloadTables(context.Background(), []string{"Users"}), ShouldBeNil)
		So(svc.trips, ShouldEqual, 2)

	})

	Convey("a failing manifest falls back to per-table fetches", t, func() {

		store := tempStore(t)
		svc := service()
		svc.failManif = true

		mgr := NewManager(svc, WithStore(store))
		err := mgr.PreloadTables(context.Background(), []string{"Users", "Orders"})
		So(err, ShouldBeNil)
		So(mgr.IsTableLoaded("Users"), ShouldBeTrue)
		So(mgr.IsTableLoaded("Orders"), ShouldBeTrue)

	})

	Convey("a failing bulk fetch falls back to per-table fetches", t, func() {

		svc := service()
		svc.failBulk = true

		mgr := NewManager(svc)
		err := mgr.PreloadTables(context.Background(), []string{"Users"})
		So(err, ShouldBeNil)
		So(mgr.IsTableLoaded("Users"), ShouldBeTrue)

	})

	Convey("a cancelled context stops the preload", t, func() {

		svc := service()
		svc.failBulk = true

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		mgr := NewManager(svc)
		err := mgr.PreloadTables(ctx, []string{"Users"})
		So(err, ShouldNotBeNil)

	})

}

func TestInvalidation(t *testing.T) {

	Convey("invalidate drops memory and persistent entries", t, func() {

		store := tempStore(t)
		svc := service()

		mgr := NewManager(svc, WithStore(store))
		So(mgr.PreloadTables(context.Background(), []string{"Users"}), ShouldBeNil)
		So(mgr.IsTableLoaded("Users"), ShouldBeTrue)

		_, ok := store.Get("Users")
		So(ok, ShouldBeTrue)

		mgr.InvalidateTable("Users")
		So(mgr.IsTableLoaded("Users"), ShouldBeFalse)

		_, ok = store.Get("Users")
		So(ok, ShouldBeFalse)

	})

	Convey("refresh invalidates then fetches", t, func() {

		svc := service()
		mgr := NewManager(svc)
		So(mgr.PreloadTables(context.Background(), []string{"Users"}), ShouldBeNil)

		svc.tables["Users"] = &Table{Name: "Users", Version: "vA2", Columns: []string{"n"}, Rows: []Row{{"n": "new"}}}

		So(mgr.RefreshTable(context.Background(), "Users"), ShouldBeNil)
		rows := mgr.Query("Users").Execute()
		So(rows[0]["n"], ShouldEqual, "new")

	})

	Convey("loaded tables are reported", t, func() {

		mgr := NewManager(service())
		So(mgr.PreloadTables(context.Background(), []string{"Users", "Orders"}), ShouldBeNil)

		loaded := mgr.LoadedTables()
		sort.Strings(loaded)
		So(loaded, ShouldResemble, []string{"Orders", "Users"})

	})

}

func TestLazyLoad(t *testing.T) {

	Convey("LoadTable fetches once and then serves the cache", t, func() {

		svc := service()
		mgr := NewManager(svc)

		rows, err := mgr.LoadTable(context.Background(), "Users")
		So(err, ShouldBeNil)
		So(rows, ShouldHaveLength, 1)
		So(svc.trips, ShouldEqual, 1)

		_, err = mgr.LoadTable(context.Background(), "Users")
		So(err, ShouldBeNil)
		So(svc.trips, ShouldEqual, 1)

	})

}

func TestStore(t *testing.T) {

	Convey("entries round-trip through msgpack", t, func() {

		store := tempStore(t)

		err := store.Put("Users", &Entry{
			Version:   "v9",
			FetchedAt: time.Now(),
			Columns:   []string{"a"},
			Rows:      []Row{{"a": "x"}},
		})
		So(err, ShouldBeNil)

		e, ok := store.Get("Users")
		So(ok, ShouldBeTrue)
		So(e.Version, ShouldEqual, "v9")
		So(e.Rows, ShouldHaveLength, 1)
		So(e.Rows[0]["a"], ShouldEqual, "x")

	})

	Convey("a missing entry is a miss", t, func() {
		store := tempStore(t)
		_, ok := store.Get("Nope")
		So(ok, ShouldBeFalse)
	})

}
