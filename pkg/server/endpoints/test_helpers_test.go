package endpoints

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"testing"

	"github.com/vamartid/swapi-mirror/pkg/config"
	"github.com/vamartid/swapi-mirror/pkg/model"
	"github.com/vamartid/swapi-mirror/pkg/server"
	"github.com/vamartid/swapi-mirror/pkg/store"
	syncengine "github.com/vamartid/swapi-mirror/pkg/sync"
)

// fakeStore keeps records in a map by natural key.
type fakeStore struct {
	records map[string]model.Record
	nextID  uint
	failErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]model.Record{}, nextID: 1}
}

func (s *fakeStore) Upsert(ctx context.Context, rec model.Record) error {
	if s.failErr != nil {
		return s.failErr
	}
	if prev, ok := s.records[rec.GetURL()]; ok {
		rec.SetID(prev.GetID())
	} else {
		rec.SetID(s.nextID)
		s.nextID++
	}
	s.records[rec.GetURL()] = rec
	return nil
}

func (s *fakeStore) Get(ctx context.Context, key string) (model.Record, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}
	rec, ok := s.records[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, key)
	}
	return rec, nil
}

func (s *fakeStore) List(ctx context.Context, opts store.ListOptions) ([]model.Record, int64, error) {
	if s.failErr != nil {
		return nil, 0, s.failErr
	}
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	all := make([]model.Record, 0, len(keys))
	for _, k := range keys {
		all = append(all, s.records[k])
	}

	start := (opts.Page - 1) * opts.PageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + opts.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	if s.failErr != nil {
		return s.failErr
	}
	if _, ok := s.records[key]; !ok {
		return fmt.Errorf("%w: %s", store.ErrNotFound, key)
	}
	delete(s.records, key)
	return nil
}

// fakeHealthStore reports a canned connectivity result.
type fakeHealthStore struct {
	err error
}

func (s *fakeHealthStore) CheckConnectivity(ctx context.Context) error { return s.err }

// fakeResolver never fails; endpoint tests do not follow references.
type fakeResolver struct{}

func (fakeResolver) Resolve(ctx context.Context, locator string) (uint, error) { return 1, nil }

// fakeUpstream serves canned raw records for sync endpoint tests.
type fakeUpstream struct {
	pages map[model.Category][][]json.RawMessage
	errs  map[model.Category]error
}

type fakePager struct {
	pages [][]json.RawMessage
	err   error
	pos   int
	cur   []json.RawMessage
}

func (p *fakePager) Next(ctx context.Context) bool {
	if p.pos >= len(p.pages) {
		return false
	}
	p.cur = p.pages[p.pos]
	p.pos++
	return true
}

func (p *fakePager) Records() []json.RawMessage { return p.cur }

func (p *fakePager) Err() error {
	if p.pos >= len(p.pages) {
		return p.err
	}
	return nil
}

func (u *fakeUpstream) Fetch(category model.Category) syncengine.Pager {
	return &fakePager{pages: u.pages[category], err: u.errs[category]}
}

func testConfig() *config.Config {
	return &config.Config{
		BindAddress:     "127.0.0.1",
		Port:            8080,
		PageSizeDefault: 10,
		PageSizeMax:     100,
	}
}

// newTestServer assembles a server over fakes with all routes
// registered.
func newTestServer(t *testing.T, upstream *fakeUpstream, healthErr error) (*server.Server, store.Stores) {
	t.Helper()

	stores := store.Stores{}
	for _, c := range model.Categories() {
		stores[c] = newFakeStore()
	}
	if upstream == nil {
		upstream = &fakeUpstream{}
	}

	syncer := syncengine.New(upstream, stores, func() store.Resolver { return fakeResolver{} }, slog.Default())
	s := server.NewServer(nil, stores, &fakeHealthStore{err: healthErr}, syncer, testConfig(), slog.Default())
	RegisterAll(s)
	return s, stores
}
