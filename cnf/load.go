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

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"

	"github.com/hjson/hjson-go"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// fileOptions is the on-disk shape of a project config file.
type fileOptions struct {
	Project struct {
		ID   string `json:"id" yaml:"id"`
		Name string `json:"name" yaml:"name"`
	} `json:"project" yaml:"project"`
	Data struct {
		URL    string `json:"url" yaml:"url"`
		Notify string `json:"notify" yaml:"notify"`
		Cache  string `json:"cache" yaml:"cache"`
		MaxAge int    `json:"maxAge" yaml:"maxAge"`
	} `json:"data" yaml:"data"`
	Dirs struct {
		Pages string `json:"pages" yaml:"pages"`
		Tests string `json:"tests" yaml:"tests"`
	} `json:"dirs" yaml:"dirs"`
	Logging struct {
		Level  string `json:"level" yaml:"level"`
		Output string `json:"output" yaml:"output"`
		Format string `json:"format" yaml:"format"`
	} `json:"logging" yaml:"logging"`
}

// Load reads a vero.hjson or vero.yml project file into Settings.
// Values already set on Settings are only overridden when the file
// provides them.
func Load(path string) error {

	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "unable to read config file '%s'", path)
	}

	var file fileOptions

	switch filepath.Ext(path) {

	case ".yml", ".yaml":
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return errors.Wrapf(err, "unable to parse '%s'", path)
		}

	default:
		// hjson decodes into a generic map; round-trip through json
		// to land on the typed struct.
		var generic map[string]interface{}
		if err := hjson.Unmarshal(raw, &generic); err != nil {
			return errors.Wrapf(err, "unable to parse '%s'", path)
		}
		bridge, err := json.Marshal(generic)
		if err != nil {
			return errors.Wrapf(err, "unable to parse '%s'", path)
		}
		if err := json.Unmarshal(bridge, &file); err != nil {
			return errors.Wrapf(err, "unable to parse '%s'", path)
		}

	}

	apply(&file)

	return nil

}

func apply(file *fileOptions) {

	if file.Project.ID != "" {
		Settings.Project.ID = file.Project.ID
	}
	if file.Project.Name != "" {
		Settings.Project.Name = file.Project.Name
	}
	if file.Data.URL != "" {
		Settings.Data.URL = file.Data.URL
	}
	if file.Data.Notify != "" {
		Settings.Data.Notify = file.Data.Notify
	}
	if file.Data.Cache != "" {
		Settings.Data.Cache = file.Data.Cache
	}
	if file.Data.MaxAge != 0 {
		Settings.Data.MaxAge = file.Data.MaxAge
	}
	if file.Dirs.Pages != "" {
		Settings.Dirs.Pages = file.Dirs.Pages
	}
	if file.Dirs.Tests != "" {
		Settings.Dirs.Tests = file.Dirs.Tests
	}
	if file.Logging.Level != "" {
		Settings.Logging.Level = file.Logging.Level
	}
	if file.Logging.Output != "" {
		Settings.Logging.Output = file.Logging.Output
	}
	if file.Logging.Format != "" {
		Settings.Logging.Format = file.Logging.Format
	}

}
