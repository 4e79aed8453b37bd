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

// Package build carries the version information stamped at link time.
package build

import "runtime"

var (
	ver  = "dev"
	rev  = "unknown"
	time = "unknown"
)

// Info describes the running binary.
type Info struct {
	Go   string
	Ver  string
	Rev  string
	Time string
}

// GetInfo returns the build information.
func GetInfo() Info {
	return Info{
		Go:   runtime.Version(),
		Ver:  ver,
		Rev:  rev,
		Time: time,
	}
}
