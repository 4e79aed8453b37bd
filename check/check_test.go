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

package check

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/abcum/vero/diag"
	"github.com/abcum/vero/vero"
)

func analyse(t *testing.T, src string) (*Table, []diag.Diagnostic) {
	prog, errs := vero.ParseSource(src)
	So(errs, ShouldBeEmpty)
	return Validate(prog)
}

func codesOf(ds []diag.Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Code
	}
	return out
}

const loginSrc = `
PAGE LoginPage {
  FIELD email = TEXTBOX "Email"
  FIELD submit = BUTTON "Sign In"
  login(user) {
    FILL LoginPage.email WITH user
  }
}
`

func TestValidate(t *testing.T) {

	Convey("a well-formed program validates cleanly", t, func() {

		table, ds := analyse(t, loginSrc+`
FEATURE Login {
  USE LoginPage
  SCENARIO "ok" {
    FILL LoginPage.email WITH "a@b.com"
    CLICK LoginPage.submit
    PERFORM LoginPage.login WITH "a@b.com"
  }
}
`)
		So(ds, ShouldBeEmpty)
		So(table.IsPage("LoginPage"), ShouldBeTrue)
		So(table.HasField("LoginPage", "email"), ShouldBeTrue)
		So(table.HasField("LoginPage", "login"), ShouldBeTrue)

	})

	Convey("a target is accepted only when the page is used and the field exists", t, func() {

		// Page not in the USE list.
		_, ds := analyse(t, loginSrc+`
PAGE OtherPage {
  FIELD thing = CSS "#x"
}
FEATURE F {
  USE LoginPage
  SCENARIO s {
    CLICK OtherPage.thing
  }
}
`)
		So(codesOf(ds), ShouldContain, "VERO-304")

		// Unknown field on a used page.
		_, ds = analyse(t, loginSrc+`
FEATURE F {
  USE LoginPage
  SCENARIO s {
    FILL LoginPage.emial WITH "x"
  }
}
`)
		So(codesOf(ds), ShouldContain, "VERO-302")

		var d diag.Diagnostic
		for _, c := range ds {
			if c.Code == "VERO-302" {
				d = c
			}
		}

		var texts []string
		for _, s := range d.Suggestions {
			texts = append(texts, s.Text)
		}
		joined := strings.Join(texts, " | ")
		So(joined, ShouldContainSubstring, "Did you mean 'email'?")
		So(joined, ShouldContainSubstring, "Available fields: email, login, submit")

	})

	Convey("unknown USE references report VERO-301 with a hint", t, func() {
		_, ds := analyse(t, loginSrc+`
FEATURE F {
  USE LoginPag
  SCENARIO s {
    REFRESH
  }
}
`)
		So(codesOf(ds), ShouldContain, "VERO-301")
		var d diag.Diagnostic
		for _, c := range ds {
			if c.Code == "VERO-301" {
				d = c
			}
		}
		So(d.Suggestions[0].Text, ShouldContainSubstring, "'LoginPage'")
	})

	Convey("duplicate declarations report VERO-303", t, func() {

		_, ds := analyse(t, `
PAGE P {
  FIELD a = CSS "#a"
  FIELD a = CSS "#b"
}
`)
		So(codesOf(ds), ShouldContain, "VERO-303")

		_, ds = analyse(t, `
PAGE P {
  FIELD a = CSS "#a"
}
PAGE P {
  FIELD b = CSS "#b"
}
`)
		So(codesOf(ds), ShouldContain, "VERO-303")

	})

	Convey("unknown actions report VERO-305 and arity mismatches VERO-306", t, func() {

		_, ds := analyse(t, loginSrc+`
FEATURE F {
  USE LoginPage
  SCENARIO s {
    PERFORM LoginPage.signIn
  }
}
`)
		So(codesOf(ds), ShouldContain, "VERO-305")

		_, ds = analyse(t, loginSrc+`
FEATURE F {
  USE LoginPage
  SCENARIO s {
    PERFORM LoginPage.login WITH "a", "b"
  }
}
`)
		So(codesOf(ds), ShouldContain, "VERO-306")

	})

	Convey("PAGEACTIONS for an unknown page reports VERO-321", t, func() {
		_, ds := analyse(t, `
PAGEACTIONS Cart FOR MissingPage {
  addItem() {
    REFRESH
  }
}
`)
		So(codesOf(ds), ShouldContain, "VERO-321")
	})

	Convey("naming conventions are warnings, not errors", t, func() {
		_, ds := analyse(t, `
PAGE login_page {
  FIELD SubmitButton = CSS "#x"
}
`)
		So(codesOf(ds), ShouldContain, "VERO-310")
		for _, d := range ds {
			if d.Code == "VERO-310" {
				So(d.Severity, ShouldEqual, diag.SeverityWarning)
			}
		}
	})

}

func TestTabRules(t *testing.T) {

	Convey("tab statements are rejected in BEFORE ALL and AFTER ALL", t, func() {

		for _, hook := range []string{"BEFORE ALL", "AFTER ALL"} {
			_, ds := analyse(t, `
FEATURE F {
  `+hook+` {
    SWITCH TO NEW TAB
  }
  SCENARIO s {
    REFRESH
  }
}
`)
			So(codesOf(ds), ShouldContain, "VERO-320")
		}

	})

	Convey("tab statements are allowed in EACH hooks and scenarios", t, func() {
		_, ds := analyse(t, `
FEATURE F {
  BEFORE EACH {
    SWITCH TO NEW TAB "https://x/"
  }
  SCENARIO s {
    CLOSE TAB
  }
}
`)
		So(codesOf(ds), ShouldBeEmpty)
	})

	Convey("tab statements are rejected in PAGEACTIONS actions", t, func() {
		_, ds := analyse(t, `
PAGE P {
  FIELD f = CSS "#x"
}
PAGEACTIONS Extras FOR P {
  jump() {
    SWITCH TO TAB 2
  }
}
`)
		So(codesOf(ds), ShouldContain, "VERO-320")
	})

}

func TestScoping(t *testing.T) {

	Convey("FOR EACH requires its collection to be bound", t, func() {

		_, ds := analyse(t, loginSrc+`
FEATURE F {
  USE LoginPage
  SCENARIO s {
    FOR EACH u IN users {
      LOG u
    }
  }
}
`)
		So(codesOf(ds), ShouldContain, "VERO-204")

		_, ds = analyse(t, loginSrc+`
FEATURE F {
  USE LoginPage
  SCENARIO s {
    ROWS users = Users
    FOR EACH u IN users {
      LOG u
    }
  }
}
`)
		So(codesOf(ds), ShouldBeEmpty)

	})

	Convey("scenario variable scopes are independent", t, func() {
		_, ds := analyse(t, loginSrc+`
FEATURE F {
  USE LoginPage
  SCENARIO first {
    ROWS users = Users
    FOR EACH u IN users {
      LOG u
    }
  }
  SCENARIO second {
    FOR EACH u IN users {
      LOG u
    }
  }
}
`)
		So(codesOf(ds), ShouldContain, "VERO-204")
	})

	Convey("a row variable can shadow a page name in target position", t, func() {
		_, ds := analyse(t, loginSrc+`
FEATURE F {
  USE LoginPage
  SCENARIO s {
    ROW Login = Sessions
    FILL LoginPage.email WITH Login.email
  }
}
`)
		So(codesOf(ds), ShouldBeEmpty)
	})

}
