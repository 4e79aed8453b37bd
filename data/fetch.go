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
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/ugorji/go/codec"

	"github.com/abcum/vero/log"
)

// TableVersion is one manifest entry.
type TableVersion struct {
	Version   string    `json:"version"`
	RowCount  int       `json:"rowCount"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Service is the data collaborator the manager fetches through. The
// compiler never calls it; the runtime does.
type Service interface {
	FetchTable(ctx context.Context, name string) (*Table, error)
	GetTableVersion(ctx context.Context, name string) (string, error)
	GetVersionManifest(ctx context.Context) (map[string]TableVersion, error)
	BulkFetch(ctx context.Context, names []string, ifNoneMatch map[string]string) (map[string]*Table, error)
}

// HTTPService talks to the sheet data service over HTTP with JSON
// bodies.
type HTTPService struct {
	base   string
	client *http.Client
	handle codec.Handle
}

// NewHTTPService returns a service client for the given base URL.
func NewHTTPService(base string) *HTTPService {
	return &HTTPService{
		base:   base,
		client: &http.Client{Timeout: 30 * time.Second},
		handle: &codec.JsonHandle{},
	}
}

type tablePayload struct {
	Version string   `json:"version"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// FetchTable retrieves one table with its rows.
func (s *HTTPService) FetchTable(ctx context.Context, name string) (*Table, error) {

	var out tablePayload

	if err := s.call(ctx, "GET", "/tables/"+name, nil, &out); err != nil {
		return nil, err
	}

	return &Table{Name: name, Version: out.Version, Columns: out.Columns, Rows: out.Rows}, nil

}

// GetTableVersion retrieves the current version tag of one table.
func (s *HTTPService) GetTableVersion(ctx context.Context, name string) (string, error) {

	var out struct {
		Version string `json:"version"`
	}

	if err := s.call(ctx, "GET", "/tables/"+name+"/version", nil, &out); err != nil {
		return "", err
	}

	return out.Version, nil

}

// GetVersionManifest retrieves the version map for every table.
func (s *HTTPService) GetVersionManifest(ctx context.Context) (map[string]TableVersion, error) {

	out := make(map[string]TableVersion)

	if err := s.call(ctx, "GET", "/tables/manifest", nil, &out); err != nil {
		return nil, err
	}

	return out, nil

}

// BulkFetch retrieves data for the named tables whose version differs
// from the ifNoneMatch map, in a single round trip.
func (s *HTTPService) BulkFetch(ctx context.Context, names []string, ifNoneMatch map[string]string) (map[string]*Table, error) {

	in := struct {
		Names       []string          `json:"names"`
		IfNoneMatch map[string]string `json:"ifNoneMatch,omitempty"`
	}{Names: names, IfNoneMatch: ifNoneMatch}

	var out struct {
		Tables map[string]tablePayload `json:"tables"`
	}

	if err := s.call(ctx, "POST", "/tables/bulk", &in, &out); err != nil {
		return nil, err
	}

	tables := make(map[string]*Table, len(out.Tables))
	for name, p := range out.Tables {
		tables[name] = &Table{Name: name, Version: p.Version, Columns: p.Columns, Rows: p.Rows}
	}

	return tables, nil

}

// call performs one JSON request with a correlation id.
func (s *HTTPService) call(ctx context.Context, method, path string, in, out interface{}) error {

	rid := xid.New().String()

	var body bytes.Buffer
	if in != nil {
		if err := codec.NewEncoder(&body, s.handle).Encode(in); err != nil {
			return errors.Wrap(err, "unable to encode request body")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, s.base+path, &body)
	if err != nil {
		return errors.Wrap(err, "unable to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", rid)

	log.WithPrefix("data").WithField("rid", rid).Debugf("%s %s", method, path)

	res, err := s.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request %s %s failed", method, path)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return errors.Errorf("request %s %s failed: %s", method, path, fmt.Sprint(res.StatusCode))
	}

	if err := codec.NewDecoder(res.Body, s.handle).Decode(out); err != nil {
		return errors.Wrapf(err, "unable to decode %s %s response", method, path)
	}

	return nil

}
