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

package fuzzy

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSuggest(t *testing.T) {

	Convey("substring containment filters first", t, func() {
		got := Suggest("Login", []string{"LoginPage", "ProductsPage", "Checkout"}, 3)
		So(got, ShouldResemble, []string{"LoginPage"})
	})

	Convey("edit distance ranks all candidates when none passes the filter", t, func() {
		got := Suggest("emial", []string{"email", "submit", "remember"}, 1)
		So(got, ShouldResemble, []string{"email"})
	})

	Convey("ties break alphabetically and max caps the result", t, func() {
		got := Suggest("ab", []string{"abd", "abc", "abe", "abf"}, 3)
		So(got, ShouldResemble, []string{"abc", "abd", "abe"})
	})

	Convey("no candidates yields nothing", t, func() {
		So(Suggest("x", nil, 3), ShouldBeEmpty)
		So(Suggest("x", []string{"y"}, 0), ShouldBeEmpty)
	})

}
