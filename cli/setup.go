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
	"os"

	"github.com/abcum/vero/cnf"
	"github.com/abcum/vero/log"
)

// setup loads the project configuration and applies logging options.
// Flags win over the config file; the config file wins over defaults.
func setup() {

	switch {
	case flags.conf != "":
		if err := cnf.Load(flags.conf); err != nil {
			log.Error(err)
		}
	default:
		for _, candidate := range []string{"vero.hjson", "vero.yml", "vero.yaml"} {
			if _, err := os.Stat(candidate); err == nil {
				if err := cnf.Load(candidate); err != nil {
					log.Error(err)
				}
				break
			}
		}
	}

	if flags.level != "" {
		cnf.Settings.Logging.Level = flags.level
	}
	if flags.format != "" {
		cnf.Settings.Logging.Format = flags.format
	}
	if flags.output != "" {
		cnf.Settings.Logging.Output = flags.output
	}

	log.SetLevel(cnf.Settings.Logging.Level)
	log.SetFormat(cnf.Settings.Logging.Format)
	log.SetOutput(cnf.Settings.Logging.Output)

}
