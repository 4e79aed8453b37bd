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
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/abcum/vero/cnf"
	"github.com/abcum/vero/compile"
	"github.com/abcum/vero/log"
)

var compileCmd = &cobra.Command{
	Use:   "compile [files or directories]",
	Short: "Compile .vero sources to Playwright TypeScript",
	RunE: func(cmd *cobra.Command, args []string) error {

		if flags.profCPU {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		} else if flags.profMem {
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		}

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
			return errors.New("compilation failed")
		}

		return writeOutput(unit)

	},
}

func init() {
	compileCmd.Flags().BoolVarP(&flags.profCPU, "prof-cpu", "", false, "Write a CPU profile for the compilation")
	compileCmd.Flags().BoolVarP(&flags.profMem, "prof-mem", "", false, "Write a memory profile for the compilation")
}

// gatherSources resolves the argument list to .vero files. With no
// arguments, the working directory is scanned.
func gatherSources(args []string) ([]string, error) {

	if len(args) == 0 {
		args = []string{"."}
	}

	var files []string

	for _, arg := range args {

		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read '%s'", arg)
		}

		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		err = filepath.Walk(arg, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() && strings.HasSuffix(path, ".vero") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "unable to scan '%s'", arg)
		}

	}

	sort.Strings(files)

	if len(files) == 0 {
		return nil, errors.New("no .vero files found")
	}

	return files, nil

}

// compileProject concatenates the project sources into one unit: the
// whole-project AST is the union of all pages and features.
func compileProject(files []string) (*compile.Unit, error) {

	var b strings.Builder

	for _, f := range files {
		raw, err := ioutil.ReadFile(f)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read '%s'", f)
		}
		b.Write(raw)
		b.WriteByte('\n')
	}

	return compile.Compile(project(), b.String()), nil

}

// printDiagnostics renders every accumulated diagnostic.
func printDiagnostics(unit *compile.Unit) {
	for _, d := range unit.Sink.All() {
		log.Display("line " + strconv.Itoa(d.Location.Line) + ": " + d.Render())
	}
}

// writeOutput persists the generated units under the configured dirs.
func writeOutput(unit *compile.Unit) error {

	for name, src := range unit.Output.Pages {
		path := filepath.Join(cnf.Settings.Dirs.Pages, name+".ts")
		if err := writeFile(path, src); err != nil {
			return err
		}
		log.Infof("wrote %s", path)
	}

	for name, src := range unit.Output.Tests {
		path := filepath.Join(cnf.Settings.Dirs.Tests, strings.ToLower(name)+".spec.ts")
		if err := writeFile(path, src); err != nil {
			return err
		}
		log.Infof("wrote %s", path)
	}

	return nil

}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "unable to create '%s'", filepath.Dir(path))
	}
	return errors.Wrapf(ioutil.WriteFile(path, []byte(content), 0o644), "unable to write '%s'", path)
}
