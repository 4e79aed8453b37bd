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
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/abcum/vero/cnf"
	"github.com/abcum/vero/data"
	"github.com/abcum/vero/log"
)

var preloadCmd = &cobra.Command{
	Use:   "preload [table names]",
	Short: "Warm the data table cache ahead of a test run",
	RunE: func(cmd *cobra.Command, args []string) error {

		if len(args) == 0 {
			return errors.New("no table names given")
		}

		if cnf.Settings.Data.URL == "" {
			return errors.New("no data service configured; set data.url in vero.hjson")
		}

		opts := []data.Option{
			data.WithMaxAge(time.Duration(cnf.Settings.Data.MaxAge) * time.Hour),
		}
		if cnf.Settings.Data.Cache != "" {
			opts = append(opts, data.WithStore(data.NewStore(cnf.Settings.Data.Cache, project())))
		}

		mgr := data.NewManager(data.NewHTTPService(cnf.Settings.Data.URL), opts...)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := mgr.PreloadTables(ctx, args); err != nil {
			return err
		}

		loaded := mgr.LoadedTables()
		sort.Strings(loaded)
		for _, name := range loaded {
			log.Display("loaded " + name)
		}

		if flags.notify {
			if cnf.Settings.Data.Notify == "" {
				return errors.New("no notify feed configured; set data.notify in vero.hjson")
			}
			log.Display("watching the table-modified feed; interrupt to stop")
			data.NewListener(cnf.Settings.Data.Notify, mgr).Run(context.Background())
		}

		return nil

	},
}

func init() {
	preloadCmd.Flags().BoolVarP(&flags.notify, "watch", "w", false, "Stay connected and invalidate tables as they change")
}
