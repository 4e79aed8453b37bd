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

// Package fuzzy ranks candidate names for "Did you mean?" hints.
package fuzzy

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns up to max candidates closest to name. Lowercase
// substring containment is the primary filter; the filtered set is
// ranked by edit distance. When nothing passes the filter, the
// nearest candidates by distance alone are returned.
func Suggest(name string, candidates []string, max int) []string {

	if max <= 0 || len(candidates) == 0 {
		return nil
	}

	lower := strings.ToLower(name)

	var pool []string
	for _, c := range candidates {
		lc := strings.ToLower(c)
		if strings.Contains(lc, lower) || strings.Contains(lower, lc) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, candidates...)
	}

	type ranked struct {
		name string
		dist int
	}

	rs := make([]ranked, 0, len(pool))
	for _, c := range pool {
		rs = append(rs, ranked{c, levenshtein.ComputeDistance(lower, strings.ToLower(c))})
	}

	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].dist != rs[j].dist {
			return rs[i].dist < rs[j].dist
		}
		return rs[i].name < rs[j].name
	})

	if len(rs) > max {
		rs = rs[:max]
	}

	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.name
	}

	return out

}
