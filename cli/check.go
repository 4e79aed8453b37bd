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

package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/abcum/vero/log"
)

var checkCmd = &cobra.Command{
	Use:   "check [files or directories]",
	Short: "Parse and validate .vero sources without emitting code",
	RunE: func(cmd *cobra.Command, args []string) error {

		sources, err := gatherSources(args)
		if err != nil {
			return err
		}

		unit, err := compileProject(sources)
		if err != nil {
			return err
		}

		printDiagnostics(unit)

		if !unit.Valid() {
			return errors.Errorf("%d problem(s) found", unit.Sink.Count())
		}

		log.Display("no problems found")

		return nil

	},
}
