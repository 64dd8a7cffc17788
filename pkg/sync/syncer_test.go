package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	stdsync "sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vamartid/swapi-mirror/pkg/model"
	"github.com/vamartid/swapi-mirror/pkg/store"
)

// fakePager yields pre-canned pages and an optional trailing error.
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

// fakeUpstream serves a fixed set of raw records per category.
type fakeUpstream struct {
	pages map[model.Category][][]json.RawMessage
	errs  map[model.Category]error
}

func (u *fakeUpstream) Fetch(category model.Category) Pager {
	return &fakePager{pages: u.pages[category], err: u.errs[category]}
}

// memStore keeps records in a map by natural key. It is locked so
// tests can drive concurrent passes into it.
type memStore struct {
	mu      stdsync.Mutex
	records map[string]model.Record
	nextID  uint
	failOn  string
}

func newMemStore() *memStore {
	return &memStore{records: map[string]model.Record{}, nextID: 1}
}

func (s *memStore) Upsert(ctx context.Context, rec model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn != "" && rec.GetURL() == s.failOn {
		return fmt.Errorf("%w: forced failure", store.ErrConflict)
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

func (s *memStore) Get(ctx context.Context, key string) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return rec, nil
}

func (s *memStore) List(ctx context.Context, opts store.ListOptions) ([]model.Record, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return store.ErrNotFound
	}
	delete(s.records, key)
	return nil
}

// memResolver hands out sequential keys per locator.
type memResolver struct {
	ids    map[string]uint
	nextID uint
	fail   bool
}

func newMemResolver() *memResolver {
	return &memResolver{ids: map[string]uint{}, nextID: 1}
}

func (r *memResolver) Resolve(ctx context.Context, locator string) (uint, error) {
	if r.fail {
		return 0, errors.New("resolver down")
	}
	if id, ok := r.ids[locator]; ok {
		return id, nil
	}
	id := r.nextID
	r.nextID++
	r.ids[locator] = id
	return id, nil
}

// fixedResolver hands the same resolver to every pass, for tests that
// inspect it afterwards.
func fixedResolver(r store.Resolver) store.ResolverFactory {
	return func() store.Resolver { return r }
}

func newMemStores() store.Stores {
	stores := store.Stores{}
	for _, c := range model.Categories() {
		stores[c] = newMemStore()
	}
	return stores
}

func raw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func planetJSON(t *testing.T, n int, name string) json.RawMessage {
	return raw(t, map[string]string{
		"name": name,
		"url":  fmt.Sprintf("https://swapi.dev/api/planets/%d/", n),
	})
}

func TestSyncCategoryCounts(t *testing.T) {
	upstream := &fakeUpstream{pages: map[model.Category][][]json.RawMessage{
		model.CategoryPlanets: {
			{planetJSON(t, 1, "Tatooine"), planetJSON(t, 2, "Alderaan")},
			{planetJSON(t, 3, "Hoth")},
		},
	}}
	stores := newMemStores()
	s := New(upstream, stores, fixedResolver(newMemResolver()), nil)

	report := s.SyncCategory(context.Background(), model.CategoryPlanets)

	assert.Equal(t, 3, report.Fetched)
	assert.Equal(t, 3, report.Upserted)
	assert.Zero(t, report.Failed)
	assert.Empty(t, report.Error)

	rec, err := stores[model.CategoryPlanets].Get(context.Background(), "https://swapi.dev/api/planets/1/")
	require.NoError(t, err)
	assert.Equal(t, "Tatooine", rec.(*model.Planet).Name)
}

func TestSyncCategorySkipsInvalidRecords(t *testing.T) {
	upstream := &fakeUpstream{pages: map[model.Category][][]json.RawMessage{
		model.CategoryPlanets: {
			{
				planetJSON(t, 1, "Tatooine"),
				raw(t, map[string]string{"name": "no url"}),
				planetJSON(t, 2, "Alderaan"),
			},
		},
	}}
	s := New(upstream, newMemStores(), fixedResolver(newMemResolver()), nil)

	report := s.SyncCategory(context.Background(), model.CategoryPlanets)

	assert.Equal(t, 3, report.Fetched)
	assert.Equal(t, 2, report.Upserted)
	assert.Equal(t, 1, report.Failed)
	assert.Empty(t, report.Error)
}

func TestSyncCategorySkipsFailedUpserts(t *testing.T) {
	upstream := &fakeUpstream{pages: map[model.Category][][]json.RawMessage{
		model.CategoryPlanets: {
			{planetJSON(t, 1, "Tatooine"), planetJSON(t, 2, "Alderaan")},
		},
	}}
	stores := newMemStores()
	stores[model.CategoryPlanets].(*memStore).failOn = "https://swapi.dev/api/planets/1/"
	s := New(upstream, stores, fixedResolver(newMemResolver()), nil)

	report := s.SyncCategory(context.Background(), model.CategoryPlanets)

	assert.Equal(t, 2, report.Fetched)
	assert.Equal(t, 1, report.Upserted)
	assert.Equal(t, 1, report.Failed)
}

func TestSyncCategoryReportsAbort(t *testing.T) {
	upstream := &fakeUpstream{
		pages: map[model.Category][][]json.RawMessage{
			model.CategoryPlanets: {{planetJSON(t, 1, "Tatooine")}},
		},
		errs: map[model.Category]error{
			model.CategoryPlanets: errors.New("upstream unavailable"),
		},
	}
	s := New(upstream, newMemStores(), fixedResolver(newMemResolver()), nil)

	report := s.SyncCategory(context.Background(), model.CategoryPlanets)

	// Records before the failure still landed.
	assert.Equal(t, 1, report.Upserted)
	assert.Equal(t, "upstream unavailable", report.Error)
}

func TestSyncCategoryResolvesReferences(t *testing.T) {
	person := raw(t, map[string]interface{}{
		"name":      "Luke Skywalker",
		"homeworld": "https://swapi.dev/api/planets/1/",
		"films": []string{
			"https://swapi.dev/api/films/1/",
			"https://swapi.dev/api/films/2/",
		},
		"url": "https://swapi.dev/api/people/1/",
	})
	upstream := &fakeUpstream{pages: map[model.Category][][]json.RawMessage{
		model.CategoryPeople: {{person}},
	}}
	stores := newMemStores()
	resolver := newMemResolver()
	s := New(upstream, stores, fixedResolver(resolver), nil)

	report := s.SyncCategory(context.Background(), model.CategoryPeople)
	require.Equal(t, 1, report.Upserted)

	rec, err := stores[model.CategoryPeople].Get(context.Background(), "https://swapi.dev/api/people/1/")
	require.NoError(t, err)
	p := rec.(*model.Person)

	require.NotNil(t, p.HomeworldID)
	assert.Equal(t, resolver.ids["https://swapi.dev/api/planets/1/"], *p.HomeworldID)
	require.Len(t, p.Films, 2)
	assert.Equal(t, resolver.ids["https://swapi.dev/api/films/1/"], p.Films[0].ID)
}

func TestSyncCategoryEmptyHomeworldStaysNil(t *testing.T) {
	person := raw(t, map[string]interface{}{
		"name":      "R2-D2 handler",
		"homeworld": "",
		"url":       "https://swapi.dev/api/people/2/",
	})
	upstream := &fakeUpstream{pages: map[model.Category][][]json.RawMessage{
		model.CategoryPeople: {{person}},
	}}
	stores := newMemStores()
	s := New(upstream, stores, fixedResolver(newMemResolver()), nil)

	report := s.SyncCategory(context.Background(), model.CategoryPeople)
	require.Equal(t, 1, report.Upserted)

	rec, err := stores[model.CategoryPeople].Get(context.Background(), "https://swapi.dev/api/people/2/")
	require.NoError(t, err)
	assert.Nil(t, rec.(*model.Person).HomeworldID)
}

func TestSyncCategoryFailsRecordWhenResolverFails(t *testing.T) {
	person := raw(t, map[string]interface{}{
		"name":      "Luke Skywalker",
		"homeworld": "https://swapi.dev/api/planets/1/",
		"url":       "https://swapi.dev/api/people/1/",
	})
	upstream := &fakeUpstream{pages: map[model.Category][][]json.RawMessage{
		model.CategoryPeople: {{person}},
	}}
	resolver := newMemResolver()
	resolver.fail = true
	s := New(upstream, newMemStores(), fixedResolver(resolver), nil)

	report := s.SyncCategory(context.Background(), model.CategoryPeople)

	assert.Equal(t, 1, report.Fetched)
	assert.Zero(t, report.Upserted)
	assert.Equal(t, 1, report.Failed)
}

func TestSyncCategoryAppliesUnknownSentinel(t *testing.T) {
	upstream := &fakeUpstream{pages: map[model.Category][][]json.RawMessage{
		model.CategoryPlanets: {{raw(t, map[string]string{
			"name":    "Tatooine",
			"climate": "  ",
			"url":     "https://swapi.dev/api/planets/1/",
		})}},
	}}
	stores := newMemStores()
	s := New(upstream, stores, fixedResolver(newMemResolver()), nil)

	s.SyncCategory(context.Background(), model.CategoryPlanets)

	rec, err := stores[model.CategoryPlanets].Get(context.Background(), "https://swapi.dev/api/planets/1/")
	require.NoError(t, err)
	planet := rec.(*model.Planet)
	assert.Equal(t, model.Unknown, planet.Climate)
	assert.Equal(t, model.Unknown, planet.Population)
}

func TestSyncCategoryIsIdempotent(t *testing.T) {
	upstream := &fakeUpstream{pages: map[model.Category][][]json.RawMessage{
		model.CategoryPlanets: {{planetJSON(t, 1, "Tatooine")}},
	}}
	stores := newMemStores()
	s := New(upstream, stores, fixedResolver(newMemResolver()), nil)

	s.SyncCategory(context.Background(), model.CategoryPlanets)
	first, err := stores[model.CategoryPlanets].Get(context.Background(), "https://swapi.dev/api/planets/1/")
	require.NoError(t, err)

	// A second pass over identical data keeps the local key.
	upstream.pages[model.CategoryPlanets] = [][]json.RawMessage{{planetJSON(t, 1, "Tatooine")}}
	s.SyncCategory(context.Background(), model.CategoryPlanets)
	second, err := stores[model.CategoryPlanets].Get(context.Background(), "https://swapi.dev/api/planets/1/")
	require.NoError(t, err)

	assert.Equal(t, first.GetID(), second.GetID())
}

func TestSyncPassesGetTheirOwnResolver(t *testing.T) {
	upstream := &fakeUpstream{pages: map[model.Category][][]json.RawMessage{
		model.CategoryPlanets: {{planetJSON(t, 1, "Tatooine")}},
	}}

	var resolvers []*memResolver
	s := New(upstream, newMemStores(), func() store.Resolver {
		r := newMemResolver()
		resolvers = append(resolvers, r)
		return r
	}, nil)

	s.SyncCategory(context.Background(), model.CategoryPlanets)
	s.SyncCategory(context.Background(), model.CategoryPlanets)
	require.Len(t, resolvers, 2)
	assert.NotSame(t, resolvers[0], resolvers[1])

	// A full pass shares one resolver across its categories.
	s.SyncAll(context.Background())
	assert.Len(t, resolvers, 3)
}

func TestSyncConcurrentTriggers(t *testing.T) {
	person := raw(t, map[string]interface{}{
		"name":      "Luke Skywalker",
		"homeworld": "https://swapi.dev/api/planets/1/",
		"url":       "https://swapi.dev/api/people/1/",
	})
	upstream := &fakeUpstream{pages: map[model.Category][][]json.RawMessage{
		model.CategoryPeople: {{person}},
	}}

	var calls atomic.Int32
	s := New(upstream, newMemStores(), func() store.Resolver {
		calls.Add(1)
		return newMemResolver()
	}, nil)

	// Two triggers in flight at once, as the HTTP sync routes produce.
	done := make(chan CategoryReport, 2)
	for i := 0; i < 2; i++ {
		go func() {
			done <- s.SyncCategory(context.Background(), model.CategoryPeople)
		}()
	}
	for i := 0; i < 2; i++ {
		report := <-done
		assert.Equal(t, 1, report.Upserted)
		assert.Empty(t, report.Error)
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestSyncAllRunsEveryCategoryInOrder(t *testing.T) {
	upstream := &fakeUpstream{
		pages: map[model.Category][][]json.RawMessage{
			model.CategoryPlanets: {{planetJSON(t, 1, "Tatooine")}},
		},
		errs: map[model.Category]error{
			model.CategoryFilms: errors.New("upstream unavailable"),
		},
	}
	s := New(upstream, newMemStores(), fixedResolver(newMemResolver()), nil)

	report := s.SyncAll(context.Background())

	require.Len(t, report.Categories, 6)
	assert.Equal(t, 1, report.Categories[model.CategoryPlanets].Upserted)
	assert.Equal(t, []model.Category{model.CategoryFilms}, report.Aborted())
	assert.False(t, report.FinishedAt.Before(report.StartedAt))
}
