package sync

import (
	"fmt"
	"strings"
	"time"

	"github.com/vamartid/swapi-mirror/pkg/model"
)

// CategoryReport holds the outcome of one category within a pass.
type CategoryReport struct {
	Fetched  int `json:"fetched"`
	Upserted int `json:"upserted"`
	Failed   int `json:"failed"`
	// Error is set when the whole category aborted (upstream
	// unavailable, broken pagination). Record-level skips only count
	// into Failed.
	Error string `json:"error,omitempty"`
}

// Report aggregates one full sync pass.
type Report struct {
	StartedAt  time.Time                         `json:"started_at"`
	FinishedAt time.Time                         `json:"finished_at"`
	Categories map[model.Category]CategoryReport `json:"categories"`
}

func newReport() Report {
	return Report{
		StartedAt:  time.Now().UTC(),
		Categories: make(map[model.Category]CategoryReport),
	}
}

// Totals sums the per-category counts.
func (r Report) Totals() CategoryReport {
	var t CategoryReport
	for _, c := range r.Categories {
		t.Fetched += c.Fetched
		t.Upserted += c.Upserted
		t.Failed += c.Failed
	}
	return t
}

// Aborted lists categories that failed as a whole, in sync order.
func (r Report) Aborted() []model.Category {
	var out []model.Category
	for _, category := range model.Categories() {
		if c, ok := r.Categories[category]; ok && c.Error != "" {
			out = append(out, category)
		}
	}
	return out
}

// FormatText renders the report as an aligned table for CLI output.
func (r Report) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-12s %8s %8s %8s  %s\n", "CATEGORY", "FETCHED", "UPSERTED", "FAILED", "ERROR"))
	for _, category := range model.Categories() {
		c, ok := r.Categories[category]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("%-12s %8d %8d %8d  %s\n",
			category, c.Fetched, c.Upserted, c.Failed, c.Error))
	}
	t := r.Totals()
	sb.WriteString(fmt.Sprintf("%-12s %8d %8d %8d\n", "total", t.Fetched, t.Upserted, t.Failed))
	sb.WriteString(fmt.Sprintf("duration: %s\n", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond)))
	return sb.String()
}
