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
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/abcum/vero/log"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Recompile whenever a .vero source changes",
	RunE: func(cmd *cobra.Command, args []string) error {

		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return errors.Wrap(err, "unable to start watcher")
		}
		defer watcher.Close()

		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "unable to watch '%s'", dir)
		}

		recompile(dir)

		// Editors fire bursts of events per save; debounce them into
		// one compilation.
		var pending *time.Timer

		for {
			select {

			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !strings.HasSuffix(ev.Name, ".vero") {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(200*time.Millisecond, func() {
					recompile(dir)
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Errorf("watch error: %v", err)

			}
		}

	},
}

func recompile(dir string) {

	sources, err := gatherSources([]string{dir})
	if err != nil {
		log.Error(err)
		return
	}

	unit, err := compileProject(sources)
	if err != nil {
		log.Error(err)
		return
	}

	printDiagnostics(unit)

	if !unit.Valid() {
		log.Warnf("compilation failed with %d diagnostic(s)", unit.Sink.Count())
		return
	}

	if err := writeOutput(unit); err != nil {
		log.Error(err)
		return
	}

	log.Display("compiled ", len(unit.Output.Pages), " page(s), ", len(unit.Output.Tests), " feature(s)")

}
