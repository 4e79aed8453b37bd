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
	golog "log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abcum/vero/cnf"
)

var flags struct {
	conf    string
	level   string
	format  string
	output  string
	profCPU bool
	profMem bool
	notify  bool
}

var mainCmd = &cobra.Command{
	Use:   "vero",
	Short: "Vero test language compiler and tooling",
}

func init() {

	mainCmd.AddCommand(
		compileCmd,
		checkCmd,
		watchCmd,
		preloadCmd,
		versionCmd,
	)

	mainCmd.PersistentFlags().StringVarP(&flags.conf, "conf", "c", "", "Path to the project configuration file")
	mainCmd.PersistentFlags().StringVarP(&flags.level, "log-level", "l", "", "Set the logging level")
	mainCmd.PersistentFlags().StringVarP(&flags.format, "log-format", "", "", "Set the logging format (text, json)")
	mainCmd.PersistentFlags().StringVarP(&flags.output, "log-output", "", "", "Set the logging output (stdout, stderr, none)")

	cobra.OnInitialize(setup)

}

// Init runs the cli app
func Init() {
	if err := mainCmd.Execute(); err != nil {
		golog.Println(err)
		os.Exit(-1)
	}
}

// project returns the configured project id, defaulting to the name
// of the working directory.
func project() string {
	if cnf.Settings.Project.ID != "" {
		return cnf.Settings.Project.ID
	}
	wd, err := os.Getwd()
	if err != nil {
		return "default"
	}
	return filepath.Base(wd)
}
