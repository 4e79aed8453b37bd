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

package cnf

// Options defines global configuration options
type Options struct {
	Project struct {
		ID   string // Project id used as the data cache key
		Name string // Display name
	}

	Data struct {
		URL    string // Base URL of the sheet data service
		Notify string // Websocket URL of the table-modified feed
		Cache  string // Directory for the persistent table cache
		MaxAge int    // Cache entry lifetime in hours
	}

	Dirs struct {
		Pages string // Output directory for page units
		Tests string // Output directory for feature units
	}

	Logging struct {
		Level  string // Stores the configured logging level
		Output string // Stores the configured logging output
		Format string // Stores the configured logging format
	}
}

// Settings are the process-wide options.
var Settings *Options

func init() {
	Settings = &Options{}
	Settings.Dirs.Pages = "pages"
	Settings.Dirs.Tests = "tests"
	Settings.Data.MaxAge = 24
	Settings.Logging.Level = "warn"
	Settings.Logging.Output = "stderr"
	Settings.Logging.Format = "text"
}
