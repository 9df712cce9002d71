// File: internal/services/dedupe/engine.go
package dedupe

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hackmatch/showcase-search/internal/services/vectordb"
)

const (
	// DefaultScanLimit bounds the bulk read. There is no paging; a scan that
	// fills the limit aborts instead of silently truncating.
	DefaultScanLimit = 10000

	// DeleteBatchSize is the number of ids removed per delete call. Batches
	// run sequentially, each awaited before the next.
	DeleteBatchSize = 100
)

// Store is the slice of the vector store the engine needs.
type Store interface {
	Scroll(ctx context.Context, collection string, limit uint32) ([]vectordb.StoredPoint, error)
	Delete(ctx context.Context, collection string, ids []string) error
}

// Logger interface for dedupe operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

type Options struct {
	Collection string
	ScanLimit  uint32
	// DryRun resolves groups and reports, but deletes nothing.
	DryRun bool
}

// Report summarizes one engine run.
type Report struct {
	Scanned     int
	LinkGroups  int
	TitleGroups int
	Survivors   []string
	Deleted     []string
	DryRun      bool
}

// Engine finds duplicate showcase points and deletes everything but one
// survivor per group. Not safe to run concurrently against the same
// collection: group resolution is per-process.
type Engine struct {
	store  Store
	logger Logger
}

func NewEngine(store Store, logger Logger) *Engine {
	return &Engine{store: store, logger: logger}
}

// record is the per-point view the engine works on. Never persisted.
type record struct {
	id          string
	title       string
	hackathon   string
	link        string
	description string
	howItsMade  string
	sourceCode  string
	updatedAt   time.Time
	hasUpdated  bool
}

// Run scans the collection, partitions points into disjoint duplicate
// groups, and deletes the losers in bounded batches. Each point gets at most
// one disposition: points resolved by link never reappear under the
// title+hackathon key.
func (e *Engine) Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Collection == "" {
		return nil, fmt.Errorf("collection name is required")
	}
	scanLimit := opts.ScanLimit
	if scanLimit == 0 {
		scanLimit = DefaultScanLimit
	}

	points, err := e.store.Scroll(ctx, opts.Collection, scanLimit)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	if len(points) >= int(scanLimit) {
		return nil, fmt.Errorf("collection %q reached the scan limit of %d points; raise the limit before deduplicating", opts.Collection, scanLimit)
	}

	records := make([]record, 0, len(points))
	for _, p := range points {
		records = append(records, recordFromPoint(p))
	}

	report := &Report{Scanned: len(records), DryRun: opts.DryRun}

	// Partition: link key first. Only points whose link bucket has a single
	// member (or no link at all) fall through to the title+hackathon key.
	linkBuckets := bucketBy(records, func(r record) string {
		return normalizeLink(r.link)
	})

	resolved := make(map[string]bool)
	for _, key := range sortedKeys(linkBuckets) {
		group := linkBuckets[key]
		if len(group) < 2 {
			continue
		}
		report.LinkGroups++
		survivor, losers := resolveGroup(group, byUpdatedThenID)
		report.Survivors = append(report.Survivors, survivor.id)
		for _, loser := range losers {
			report.Deleted = append(report.Deleted, loser.id)
		}
		for _, member := range group {
			resolved[member.id] = true
		}
		e.logger.Debug("link group resolved", "key", key, "size", len(group), "survivor", survivor.id)
	}

	var remaining []record
	for _, r := range records {
		if !resolved[r.id] {
			remaining = append(remaining, r)
		}
	}

	titleBuckets := bucketBy(remaining, func(r record) string {
		return titleEventKey(r.title, r.hackathon)
	})

	for _, key := range sortedKeys(titleBuckets) {
		group := titleBuckets[key]
		if len(group) < 2 {
			continue
		}
		report.TitleGroups++
		survivor, losers := resolveGroup(group, byUpdatedThenRichness)
		report.Survivors = append(report.Survivors, survivor.id)
		for _, loser := range losers {
			report.Deleted = append(report.Deleted, loser.id)
		}
		e.logger.Debug("title group resolved", "key", key, "size", len(group), "survivor", survivor.id)
	}

	e.logger.Info("duplicate scan complete",
		"scanned", report.Scanned,
		"link_groups", report.LinkGroups,
		"title_groups", report.TitleGroups,
		"to_delete", len(report.Deleted))

	if opts.DryRun || len(report.Deleted) == 0 {
		return report, nil
	}

	if err := e.deleteInBatches(ctx, opts.Collection, report.Deleted); err != nil {
		return report, err
	}
	return report, nil
}

// deleteInBatches issues sequential deletes of DeleteBatchSize ids, waiting
// for each batch before the next. The first failure halts the run; earlier
// batches stay deleted.
func (e *Engine) deleteInBatches(ctx context.Context, collection string, ids []string) error {
	for start := 0; start < len(ids); start += DeleteBatchSize {
		end := start + DeleteBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		if err := e.store.Delete(ctx, collection, ids[start:end]); err != nil {
			return fmt.Errorf("delete batch [%d:%d] failed: %w", start, end, err)
		}
		e.logger.Info("deleted batch", "from", start, "to", end)
	}
	return nil
}

// resolveGroup orders a duplicate group best-first and splits off the
// survivor. The survivor is never part of the returned losers.
func resolveGroup(group []record, less func(a, b record) bool) (record, []record) {
	sorted := make([]record, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted[0], sorted[1:]
}

// byUpdatedThenID prefers the most recently updated record; when either side
// lacks a timestamp, the lexically smallest id wins.
func byUpdatedThenID(a, b record) bool {
	if a.hasUpdated && b.hasUpdated {
		return a.updatedAt.After(b.updatedAt)
	}
	return a.id < b.id
}

// byUpdatedThenRichness prefers the most recently updated record; when
// either side lacks a timestamp, the richer record survives.
func byUpdatedThenRichness(a, b record) bool {
	if a.hasUpdated && b.hasUpdated {
		return a.updatedAt.After(b.updatedAt)
	}
	return richness(a) > richness(b)
}

// richness scores how much usable content a record carries. Used only when
// timestamps cannot decide a group.
func richness(r record) int {
	score := len(r.description) + len(r.howItsMade)
	if r.sourceCode != "" {
		score += 100
	}
	if r.link != "" {
		score += 50
	}
	return score
}

// normalizeLink lowercases, strips the scheme, and strips a single trailing
// slash. Query strings and path differences are deliberately left alone;
// the title+event key is the backstop for those.
func normalizeLink(link string) string {
	link = strings.ToLower(strings.TrimSpace(link))
	link = strings.TrimSuffix(link, "/")
	link = strings.TrimPrefix(link, "https://")
	link = strings.TrimPrefix(link, "http://")
	return link
}

func titleEventKey(title, hackathon string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return ""
	}
	return title + "_" + strings.ToLower(strings.TrimSpace(hackathon))
}

// bucketBy groups records by key, skipping records whose key is empty.
// Bucket members keep scan order.
func bucketBy(records []record, key func(record) string) map[string][]record {
	buckets := make(map[string][]record)
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		buckets[k] = append(buckets[k], r)
	}
	return buckets
}

func sortedKeys(buckets map[string][]record) []string {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func recordFromPoint(p vectordb.StoredPoint) record {
	r := record{
		id:          p.ID,
		title:       payloadString(p.Payload, "title"),
		hackathon:   payloadString(p.Payload, "hackathon"),
		link:        payloadString(p.Payload, "link"),
		description: payloadString(p.Payload, "projectDescription"),
		howItsMade:  payloadString(p.Payload, "howItsMade"),
		sourceCode:  payloadString(p.Payload, "sourceCode"),
	}
	if raw := payloadString(p.Payload, "lastUpdated"); raw != "" {
		if ts, ok := parseTimestamp(raw); ok {
			r.updatedAt = ts
			r.hasUpdated = true
		}
	}
	return r
}

// parseTimestamp accepts RFC3339 or a bare date, the two formats the
// crawler has written over time.
func parseTimestamp(raw string) (time.Time, bool) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, true
	}
	if ts, err := time.Parse("2006-01-02", raw); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

func payloadString(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}
