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

package data

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"

	"github.com/abcum/vero/log"
)

// Listener subscribes to the data service's table-modified feed and
// invalidates the manager's cache as notifications arrive.
type Listener struct {
	url string
	mgr *Manager
}

// NewListener returns a listener wired to a manager.
func NewListener(url string, mgr *Manager) *Listener {
	return &Listener{url: url, mgr: mgr}
}

type notification struct {
	Table string `json:"table"`
}

// Run connects and processes notifications until the context is
// cancelled, reconnecting with a fixed backoff on any failure.
func (l *Listener) Run(ctx context.Context) {

	id := uuid.NewV4().String()

	for {

		if ctx.Err() != nil {
			return
		}

		header := http.Header{}
		header.Set("X-Client-Id", id)

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, l.url, header)
		if err != nil {
			log.WithPrefix("data").Warnf("notify dial failed: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
				continue
			}
		}

		log.WithPrefix("data").WithField("client", id).Debug("notify feed connected")

		l.read(ctx, conn)
		conn.Close()

	}

}

func (l *Listener) read(ctx context.Context, conn *websocket.Conn) {

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				log.WithPrefix("data").Warnf("notify feed closed: %v", err)
			}
			return
		}

		var n notification
		if err := json.Unmarshal(raw, &n); err != nil || n.Table == "" {
			continue
		}

		log.WithPrefix("data").Debugf("table '%s' modified, invalidating", n.Table)
		l.mgr.InvalidateTable(n.Table)
	}

}
