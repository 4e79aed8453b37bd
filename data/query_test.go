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
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/abcum/vero/util/rand"
)

func users() *Table {
	return &Table{
		Name:    "Users",
		Version: "v1",
		Columns: []string{"name", "state", "age", "active"},
		Rows: []Row{
			{"name": "Ana", "state": "CA", "age": 34.0, "active": "true"},
			{"name": "Bob", "state": "OR", "age": 28.0, "active": "false"},
			{"name": "Cyd", "state": "CA", "age": 41.0, "active": "true"},
			{"name": "Dee", "state": "WA", "age": nil, "active": "true"},
			{"name": "Eli", "state": "CA", "age": 28.0, "active": "false"},
		},
	}
}

func query() *Query {
	return &Query{table: users()}
}

func TestQueryLaws(t *testing.T) {

	Convey("chained where is conjunction", t, func() {

		chained := query().Where(Eq("state", "CA")).Where(Eq("active", "true")).Execute()
		combined := query().Where(And(Eq("state", "CA"), Eq("active", "true"))).Execute()

		So(chained, ShouldResemble, combined)
		So(chained, ShouldHaveLength, 2)

	})

	Convey("limit and offset window the ordered list", t, func() {

		rows := query().
			OrderBy([]OrderKey{{Column: "name"}}).
			Offset(1).
			Limit(2).
			Execute()

		So(rows, ShouldHaveLength, 2)
		So(rows[0]["name"], ShouldEqual, "Bob")
		So(rows[1]["name"], ShouldEqual, "Cyd")

	})

	Convey("the first order key dominates", t, func() {

		a := query().OrderBy([]OrderKey{{Column: "state"}, {Column: "state", Descending: true}}).Execute()
		b := query().OrderBy([]OrderKey{{Column: "state"}}).Execute()

		for i := range a {
			So(a[i]["state"], ShouldEqual, b[i]["state"])
		}

	})

	Convey("count equals the executed length", t, func() {

		q := query().Where(Eq("state", "CA"))
		So(q.Count(), ShouldEqual, len(q.Execute()))

	})

	Convey("first is the head of the executed list, nil when empty", t, func() {

		q := query().OrderBy([]OrderKey{{Column: "name"}})
		first := q.First()
		So(first.(Row)["name"], ShouldEqual, q.Execute()[0]["name"])

		empty := query().Where(Eq("state", "ZZ"))
		So(empty.First(), ShouldBeNil)
		So(empty.Default("fallback").First(), ShouldEqual, "fallback")

	})

	Convey("builders are immutable", t, func() {

		base := query()
		filtered := base.Where(Eq("state", "CA"))

		So(base.Count(), ShouldEqual, 5)
		So(filtered.Count(), ShouldEqual, 3)
		So(base.Count(), ShouldEqual, 5)

	})

	Convey("execution does not mutate the cached rows", t, func() {

		table := users()
		q := &Query{table: table}

		q.Select([]string{"name"}).Execute()
		q.OrderBy([]OrderKey{{Column: "age", Descending: true}}).Execute()

		So(table.Rows[0]["name"], ShouldEqual, "Ana")
		So(len(table.Rows[0]), ShouldEqual, 4)

	})

}

func TestQuerySteps(t *testing.T) {

	Convey("row, range and cell narrow before filtering", t, func() {

		rows := query().Row(2).Execute()
		So(rows, ShouldHaveLength, 1)
		So(rows[0]["name"], ShouldEqual, "Bob")

		rows = query().Range(2, 4).Execute()
		So(rows, ShouldHaveLength, 3)
		So(rows[0]["name"], ShouldEqual, "Bob")
		So(rows[2]["name"], ShouldEqual, "Dee")

		rows = query().Cell(1, 2).Execute()
		So(rows, ShouldResemble, []Row{{"state": "CA"}})

		So(query().Row(99).Execute(), ShouldBeEmpty)

	})

	Convey("selection projects the chosen columns", t, func() {

		rows := query().Select([]string{"name"}).Limit(1).Execute()
		So(rows, ShouldResemble, []Row{{"name": "Ana"}})

	})

	Convey("last and random pick from the executed list", t, func() {

		q := query().OrderBy([]OrderKey{{Column: "name"}})
		So(q.Last().(Row)["name"], ShouldEqual, "Eli")

		mgr := NewManager(nil, WithRand(rand.New(1)))
		rq := mgr.Query("missing")
		So(rq.Random(), ShouldBeNil)

		rq = &Query{mgr: mgr, table: users()}
		picked := rq.Random()
		So(picked, ShouldNotBeNil)

	})

	Convey("null sorts before any value", t, func() {

		rows := query().OrderBy([]OrderKey{{Column: "age"}}).Execute()
		So(rows[0]["name"], ShouldEqual, "Dee")

		rows = query().OrderBy([]OrderKey{{Column: "age", Descending: true}}).Execute()
		So(rows[len(rows)-1]["name"], ShouldEqual, "Dee")

	})

	Convey("sorting is stable across equal keys", t, func() {

		rows := query().OrderBy([]OrderKey{{Column: "state"}}).Execute()

		// CA rows keep their original relative order.
		var ca []string
		for _, r := range rows {
			if r["state"] == "CA" {
				ca = append(ca, r["name"].(string))
			}
		}
		So(ca, ShouldResemble, []string{"Ana", "Cyd", "Eli"})

	})

}

func TestAggregations(t *testing.T) {

	Convey("numeric aggregations coerce values", t, func() {

		q := query()
		So(q.Sum("age"), ShouldEqual, 34+28+41+0+28)
		So(q.Min("age"), ShouldEqual, 0)
		So(q.Max("age"), ShouldEqual, 41)
		So(q.Average("age"), ShouldEqual, float64(34+28+41+0+28)/5)

	})

	Convey("aggregations on an empty set return zero values", t, func() {

		q := query().Where(Eq("state", "ZZ"))
		So(q.Sum("age"), ShouldEqual, 0)
		So(q.Average("age"), ShouldEqual, 0)
		So(q.Min("age"), ShouldEqual, 0)
		So(q.Max("age"), ShouldEqual, 0)
		So(q.Distinct("state"), ShouldResemble, []interface{}{})
		So(q.Count(), ShouldEqual, 0)

	})

	Convey("distinct preserves first-occurrence order", t, func() {

		So(query().Distinct("state"), ShouldResemble, []interface{}{"CA", "OR", "WA"})
		So(query().CountDistinct("state"), ShouldEqual, 3)

	})

	Convey("headers and column count read the table shape", t, func() {

		So(query().Headers(), ShouldResemble, []string{"name", "state", "age", "active"})
		So(query().ColumnCount(), ShouldEqual, 4)
		So(query().RowCount(), ShouldEqual, 5)

	})

}

func TestPredicates(t *testing.T) {

	Convey("text operators match loosely typed values", t, func() {

		rows := query().Where(Contains("name", "o")).Execute()
		So(rows, ShouldHaveLength, 1)
		So(rows[0]["name"], ShouldEqual, "Bob")

		So(query().Where(StartsWith("name", "A")).Count(), ShouldEqual, 1)
		So(query().Where(EndsWith("name", "i")).Count(), ShouldEqual, 1)
		So(query().Where(Matches("name", "^[AB]")).Count(), ShouldEqual, 2)
		So(query().Where(IsIn("state", []interface{}{"CA", "WA"})).Count(), ShouldEqual, 4)
		So(query().Where(NotIn("state", []interface{}{"CA"})).Count(), ShouldEqual, 2)
		So(query().Where(IsNull("age")).Count(), ShouldEqual, 1)
		So(query().Where(IsNotEmpty("age")).Count(), ShouldEqual, 4)
		So(query().Where(Gt("age", 30)).Count(), ShouldEqual, 2)

	})

	Convey("numbers compare numerically even as text", t, func() {

		tbl := &Table{
			Name:    "T",
			Columns: []string{"n"},
			Rows:    []Row{{"n": "9"}, {"n": "10"}, {"n": "2"}},
		}
		q := &Query{table: tbl}

		rows := q.OrderBy([]OrderKey{{Column: "n"}}).Execute()
		So(rows[0]["n"], ShouldEqual, "2")
		So(rows[1]["n"], ShouldEqual, "9")
		So(rows[2]["n"], ShouldEqual, "10")

		So(q.Where(Eq("n", 9)).Count(), ShouldEqual, 1)

	})

}
