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

package log

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/mgutz/ansi"
	"github.com/sirupsen/logrus"
)

// TextFormatter renders entries as colored single lines for a
// terminal.
type TextFormatter struct {
	IgnoreFields []string
}

var colors = map[logrus.Level]string{
	logrus.TraceLevel: "white",
	logrus.DebugLevel: "white",
	logrus.InfoLevel:  "green",
	logrus.WarnLevel:  "yellow",
	logrus.ErrorLevel: "red",
	logrus.FatalLevel: "red",
	logrus.PanicLevel: "red",
}

// Format renders a single log entry.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {

	b := &bytes.Buffer{}

	color := colors[entry.Level]

	fmt.Fprintf(b, "%s ", entry.Time.Format(time.RFC3339))
	fmt.Fprintf(b, "%s ", ansi.Color(fmt.Sprintf("%-7s", entry.Level.String()), color))

	if prefix, ok := entry.Data["prefix"]; ok {
		fmt.Fprintf(b, "%s ", ansi.Color(fmt.Sprint(prefix), "cyan"))
	}

	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k == "prefix" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", ansi.Color(k, "blue"), entry.Data[k])
	}

	b.WriteByte('\n')

	return b.Bytes(), nil

}
