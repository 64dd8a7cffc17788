package sync

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/vamartid/swapi-mirror/pkg/model"
	"github.com/vamartid/swapi-mirror/pkg/store"
	"github.com/vamartid/swapi-mirror/pkg/swapi"
)

// Pager yields pages of raw records for one category.
type Pager interface {
	Next(ctx context.Context) bool
	Records() []json.RawMessage
	Err() error
}

// Upstream produces a fresh pager per category. *swapi.Client satisfies
// it through WrapClient.
type Upstream interface {
	Fetch(category model.Category) Pager
}

type clientUpstream struct {
	c *swapi.Client
}

func (u clientUpstream) Fetch(category model.Category) Pager {
	return u.c.Fetch(category)
}

// WrapClient adapts a swapi.Client to the Upstream interface.
func WrapClient(c *swapi.Client) Upstream {
	return clientUpstream{c: c}
}

// Syncer runs synchronization passes. Every pass resolves references
// through a resolver of its own, so concurrently triggered passes share
// no state and a pass never sees keys cached before rows were deleted.
type Syncer struct {
	upstream    Upstream
	stores      store.Stores
	newResolver store.ResolverFactory
	log         *slog.Logger
}

// New creates a Syncer. newResolver is invoked once per sync pass.
func New(upstream Upstream, stores store.Stores, newResolver store.ResolverFactory, log *slog.Logger) *Syncer {
	if log == nil {
		log = slog.Default()
	}
	return &Syncer{
		upstream:    upstream,
		stores:      stores,
		newResolver: newResolver,
		log:         log,
	}
}

// SyncAll runs one pass over every category in fixed order and returns
// the aggregate report. It never fails as a whole: every category is
// attempted, partial failure shows up in the report only.
func (s *Syncer) SyncAll(ctx context.Context) Report {
	report := newReport()
	resolver := s.newResolver()
	for _, category := range model.Categories() {
		report.Categories[category] = s.syncCategory(ctx, category, resolver)
	}
	report.FinishedAt = time.Now().UTC()
	return report
}

// SyncCategory synchronizes a single category and reports its counts.
func (s *Syncer) SyncCategory(ctx context.Context, category model.Category) CategoryReport {
	return s.syncCategory(ctx, category, s.newResolver())
}

func (s *Syncer) syncCategory(ctx context.Context, category model.Category, resolver store.Resolver) CategoryReport {
	var report CategoryReport
	started := time.Now()

	pager := s.upstream.Fetch(category)
	for pager.Next(ctx) {
		for _, raw := range pager.Records() {
			report.Fetched++

			rec, err := build(ctx, resolver, category, raw)
			if err != nil {
				report.Failed++
				s.log.Warn("skipping record",
					"category", category, "error", err)
				continue
			}
			if err := s.stores[category].Upsert(ctx, rec); err != nil {
				report.Failed++
				s.log.Warn("skipping record",
					"category", category, "url", rec.GetURL(), "error", err)
				continue
			}
			report.Upserted++
		}
	}
	if err := pager.Err(); err != nil {
		report.Error = err.Error()
		s.log.Error("category sync aborted",
			"category", category, "error", err)
		return report
	}

	s.log.Info("category synced",
		"category", category,
		"fetched", report.Fetched,
		"upserted", report.Upserted,
		"failed", report.Failed,
		"duration", time.Since(started).Round(time.Millisecond))
	return report
}
