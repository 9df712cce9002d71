// File: internal/services/dedupe/engine_test.go
package dedupe

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackmatch/showcase-search/internal/services/vectordb"
)

type noopLogger struct{}

func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}

type fakeStore struct {
	points        []vectordb.StoredPoint
	deleteBatches [][]string
	failAtBatch   int // 1-based; 0 means never fail
}

func (f *fakeStore) Scroll(ctx context.Context, collection string, limit uint32) ([]vectordb.StoredPoint, error) {
	if len(f.points) > int(limit) {
		return f.points[:limit], nil
	}
	return f.points, nil
}

func (f *fakeStore) Delete(ctx context.Context, collection string, ids []string) error {
	batch := make([]string, len(ids))
	copy(batch, ids)
	f.deleteBatches = append(f.deleteBatches, batch)
	if f.failAtBatch > 0 && len(f.deleteBatches) == f.failAtBatch {
		return errors.New("delete rejected")
	}
	return nil
}

func (f *fakeStore) allDeleted() []string {
	var out []string
	for _, batch := range f.deleteBatches {
		out = append(out, batch...)
	}
	return out
}

func point(id string, payload map[string]any) vectordb.StoredPoint {
	return vectordb.StoredPoint{ID: id, Payload: payload}
}

func run(t *testing.T, store *fakeStore, opts Options) (*Report, error) {
	t.Helper()
	if opts.Collection == "" {
		opts.Collection = "eth_global_showcase"
	}
	return NewEngine(store, noopLogger{}).Run(context.Background(), opts)
}

func TestLinkGroupNewestTimestampSurvives(t *testing.T) {
	store := &fakeStore{points: []vectordb.StoredPoint{
		point("old", map[string]any{
			"title":       "Swap Thing",
			"link":        "https://ethglobal.com/showcase/swap-thing",
			"lastUpdated": "2024-01-01",
		}),
		point("new", map[string]any{
			"title":       "Swap Thing v2",
			"link":        "ethglobal.com/showcase/swap-thing/",
			"lastUpdated": "2024-06-01",
		}),
	}}

	report, err := run(t, store, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.LinkGroups)
	assert.Equal(t, []string{"new"}, report.Survivors)
	assert.Equal(t, []string{"old"}, report.Deleted)
	assert.Equal(t, [][]string{{"old"}}, store.deleteBatches)
}

func TestLinkGroupFallsBackToIDOrder(t *testing.T) {
	store := &fakeStore{points: []vectordb.StoredPoint{
		point("b", map[string]any{"title": "X", "link": "example.com/x"}),
		point("a", map[string]any{"title": "X again", "link": "http://EXAMPLE.com/x/"}),
	}}

	report, err := run(t, store, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, report.Survivors)
	assert.Equal(t, []string{"b"}, report.Deleted)
}

func TestTitleGroupRichnessPrefersSourceCode(t *testing.T) {
	store := &fakeStore{points: []vectordb.StoredPoint{
		point("bare", map[string]any{
			"title":     "DAO Tooling",
			"hackathon": "ETHGlobal Lisbon",
		}),
		point("rich", map[string]any{
			"title":      "dao tooling",
			"hackathon":  "ethglobal lisbon",
			"sourceCode": "https://github.com/x/dao-tooling",
		}),
	}}

	report, err := run(t, store, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.TitleGroups)
	assert.Equal(t, []string{"rich"}, report.Survivors)
	assert.Equal(t, []string{"bare"}, report.Deleted)
}

func TestTitleGroupTimestampBeatsRichness(t *testing.T) {
	store := &fakeStore{points: []vectordb.StoredPoint{
		point("rich-old", map[string]any{
			"title":              "Bridge Watch",
			"hackathon":          "ETHGlobal Paris",
			"projectDescription": "A very long description of the project",
			"sourceCode":         "https://github.com/x/bridge-watch",
			"lastUpdated":        "2024-01-01T00:00:00Z",
		}),
		point("plain-new", map[string]any{
			"title":       "Bridge Watch",
			"hackathon":   "ETHGlobal Paris",
			"lastUpdated": "2024-06-01T00:00:00Z",
		}),
	}}

	report, err := run(t, store, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"plain-new"}, report.Survivors)
	assert.Equal(t, []string{"rich-old"}, report.Deleted)
}

func TestPointsResolvedByLinkAreExcludedFromTitlePass(t *testing.T) {
	shared := map[string]any{"title": "Same Name", "hackathon": "ETHGlobal Tokyo"}
	store := &fakeStore{points: []vectordb.StoredPoint{
		point("l1", map[string]any{"title": "Same Name", "hackathon": "ETHGlobal Tokyo", "link": "example.com/p"}),
		point("l2", map[string]any{"title": "Same Name", "hackathon": "ETHGlobal Tokyo", "link": "example.com/p"}),
		point("t1", shared),
	}}

	report, err := run(t, store, Options{})
	require.NoError(t, err)

	// l1/l2 got their disposition in the link pass; t1 alone is no group.
	assert.Equal(t, 1, report.LinkGroups)
	assert.Equal(t, 0, report.TitleGroups)
	assert.Equal(t, []string{"l1"}, report.Survivors)
	assert.Equal(t, []string{"l2"}, report.Deleted)
	assert.NotContains(t, report.Deleted, "t1")

	// At most one disposition per point.
	seen := map[string]int{}
	for _, id := range append(append([]string{}, report.Survivors...), report.Deleted...) {
		seen[id]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "point %s has %d dispositions", id, n)
	}
}

func TestUniqueLinkFallsThroughToTitleKey(t *testing.T) {
	// Different links, same title+hackathon: the singleton link buckets must
	// not shield them from the title pass.
	store := &fakeStore{points: []vectordb.StoredPoint{
		point("u1", map[string]any{
			"title": "Lens Feed", "hackathon": "ETHGlobal Waterloo",
			"link": "example.com/one",
		}),
		point("u2", map[string]any{
			"title": "lens feed", "hackathon": "ethglobal waterloo",
			"link": "example.com/two", "sourceCode": "https://github.com/x/lens-feed",
		}),
	}}

	report, err := run(t, store, Options{})
	require.NoError(t, err)

	assert.Equal(t, 0, report.LinkGroups)
	assert.Equal(t, 1, report.TitleGroups)
	assert.Equal(t, []string{"u2"}, report.Survivors)
	assert.Equal(t, []string{"u1"}, report.Deleted)
}

func TestDeletesRunInSequentialBatchesOf100(t *testing.T) {
	points := make([]vectordb.StoredPoint, 0, 251)
	for i := 0; i < 251; i++ {
		points = append(points, point(fmt.Sprintf("p%03d", i), map[string]any{
			"title": "Clone", "link": "example.com/clone",
		}))
	}
	store := &fakeStore{points: points}

	report, err := run(t, store, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"p000"}, report.Survivors)
	assert.Len(t, report.Deleted, 250)

	require.Len(t, store.deleteBatches, 3)
	assert.Len(t, store.deleteBatches[0], 100)
	assert.Len(t, store.deleteBatches[1], 100)
	assert.Len(t, store.deleteBatches[2], 50)
	assert.ElementsMatch(t, report.Deleted, store.allDeleted())
	assert.NotContains(t, store.allDeleted(), "p000")
}

func TestBatchFailureHaltsRun(t *testing.T) {
	points := make([]vectordb.StoredPoint, 0, 251)
	for i := 0; i < 251; i++ {
		points = append(points, point(fmt.Sprintf("p%03d", i), map[string]any{
			"title": "Clone", "link": "example.com/clone",
		}))
	}
	store := &fakeStore{points: points, failAtBatch: 2}

	_, err := run(t, store, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete batch")

	// The failing batch was the last one attempted; the first stays deleted.
	assert.Len(t, store.deleteBatches, 2)
}

func TestDryRunDeletesNothing(t *testing.T) {
	store := &fakeStore{points: []vectordb.StoredPoint{
		point("a", map[string]any{"title": "X", "link": "example.com/x"}),
		point("b", map[string]any{"title": "X", "link": "example.com/x"}),
	}}

	report, err := run(t, store, Options{DryRun: true})
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Len(t, report.Deleted, 1)
	assert.Empty(t, store.deleteBatches)
}

func TestScanLimitAborts(t *testing.T) {
	points := make([]vectordb.StoredPoint, 0, 5)
	for i := 0; i < 5; i++ {
		points = append(points, point(fmt.Sprintf("p%d", i), map[string]any{"title": "T"}))
	}
	store := &fakeStore{points: points}

	_, err := run(t, store, Options{ScanLimit: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan limit")
	assert.Empty(t, store.deleteBatches)
}

func TestNormalizeLink(t *testing.T) {
	cases := map[string]string{
		"https://Example.com/Showcase/X/": "example.com/showcase/x",
		"http://example.com/showcase/x":   "example.com/showcase/x",
		"example.com/showcase/x":          "example.com/showcase/x",
		// Query strings are deliberately preserved.
		"https://example.com/showcase/x?utm=1": "example.com/showcase/x?utm=1",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeLink(in), in)
	}
}
