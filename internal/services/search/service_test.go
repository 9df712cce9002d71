// File: internal/services/search/service_test.go
package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackmatch/showcase-search/internal/services/embedding"
	"github.com/hackmatch/showcase-search/internal/services/vectordb"
)

type noopLogger struct{}

func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}

type fakeProvider struct {
	vector []float32
	err    error
}

func (f *fakeProvider) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return f.vector, f.err
}

func (f *fakeProvider) ModelName() string { return "nomic-embed-text" }

type fakeStore struct {
	hits          []vectordb.SearchHit
	err           error
	gotCollection string
	gotParams     vectordb.SearchParams
}

func (f *fakeStore) Search(ctx context.Context, collection string, params vectordb.SearchParams) ([]vectordb.SearchHit, error) {
	f.gotCollection = collection
	f.gotParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

func newTestService(provider EmbeddingProvider, store VectorSearcher) *Service {
	return NewService(provider, store, NewSanitizer(false), noopLogger{})
}

func TestSearchSimilarProjectsEndToEnd(t *testing.T) {
	provider := &fakeProvider{vector: []float32{0.1, 0.2, 0.3}}
	store := &fakeStore{hits: []vectordb.SearchHit{
		{ID: "1", Score: 0.95, Payload: map[string]any{"title": "A"}},
		{ID: "2", Score: 0.87, Payload: map[string]any{"title": "B"}},
	}}
	svc := newTestService(provider, store)
	ctx := context.Background()

	vector, err := svc.CreateEmbedding(ctx, "decentralized identity wallet")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)

	projects, err := svc.SearchSimilarProjects(ctx, vector, 0)
	require.NoError(t, err)

	require.Len(t, projects, 2)
	assert.Equal(t, "A", projects[0].Title)
	assert.Equal(t, "", projects[0].Description)
	assert.Equal(t, "B", projects[1].Title)
	assert.Equal(t, "", projects[1].Description)

	assert.Equal(t, Collection, store.gotCollection)
	assert.Equal(t, uint64(DefaultLimit), store.gotParams.Limit)
}

func TestSearchSimilarProjectsMapsPayload(t *testing.T) {
	store := &fakeStore{hits: []vectordb.SearchHit{{
		ID:    "7",
		Score: 0.9,
		Payload: map[string]any{
			"title":              "ZK Passport",
			"projectDescription": "Prove personhood without doxxing",
			"link":               "https://ethglobal.com/showcase/zk-passport",
			"howItsMade":         "circom + snarkjs",
			"sourceCode":         "https://github.com/x/zk-passport",
			"hackathon":          "ETHGlobal Istanbul",
			"prize":              true,
		},
	}}}
	svc := newTestService(&fakeProvider{}, store)

	projects, err := svc.SearchSimilarProjects(context.Background(), []float32{0.1}, 5)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	p := projects[0]
	assert.Equal(t, "ZK Passport", p.Title)
	assert.Equal(t, "Prove personhood without doxxing", p.Description)
	assert.Equal(t, "https://ethglobal.com/showcase/zk-passport", p.Link)
	assert.Equal(t, "circom + snarkjs", p.HowItsMade)
	assert.Equal(t, "https://github.com/x/zk-passport", p.SourceCode)
	assert.Equal(t, "ETHGlobal Istanbul", p.Hackathon)
	assert.True(t, p.Prize)

	assert.Equal(t, uint64(5), store.gotParams.Limit)
}

func TestSearchFailuresPassThroughUnmodified(t *testing.T) {
	storeErr := errors.New("qdrant QDRANT_ERROR error in search: wrong dimension")
	svc := newTestService(&fakeProvider{}, &fakeStore{err: storeErr})

	_, err := svc.SearchSimilarProjects(context.Background(), []float32{0.1}, 3)
	require.Error(t, err)
	assert.Same(t, storeErr, err)
}

func TestCreateEmbeddingFormatsAndPrefixes(t *testing.T) {
	cases := []struct {
		name       string
		code       int
		wantPrefix string
	}{
		{"forbidden", 403, "embedding failed: authentication failed: "},
		{"unauthorized", 401, "embedding failed: unauthorized: "},
		{"rate limited", 429, "embedding failed: rate limit exceeded: "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &fakeProvider{err: &embedding.EmbeddingError{
				Type:    embedding.ErrTypeAuthFailed,
				Code:    tc.code,
				Message: "backend said no",
			}}
			svc := newTestService(provider, &fakeStore{})

			_, err := svc.CreateEmbedding(context.Background(), "text")
			require.Error(t, err)
			assert.True(t, len(err.Error()) > len(tc.wantPrefix))
			assert.Contains(t, err.Error(), tc.wantPrefix)
		})
	}
}

func TestCreateEmbeddingIdempotentRethrow(t *testing.T) {
	already := errors.New("embedding failed: rate limit exceeded: backend said no")
	svc := newTestService(&fakeProvider{err: already}, &fakeStore{})

	_, err := svc.CreateEmbedding(context.Background(), "text")
	require.Error(t, err)
	assert.Same(t, already, err)
}

func TestCreateEmbeddingSanitizesInProduction(t *testing.T) {
	provider := &fakeProvider{err: &embedding.EmbeddingError{
		Type:    embedding.ErrTypeConnectionRefused,
		Message: "cannot reach Ollama at http://localhost:11434",
	}}
	svc := NewService(provider, &fakeStore{}, NewSanitizer(true), noopLogger{})

	_, err := svc.CreateEmbedding(context.Background(), "text")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "localhost:11434")
	assert.NotContains(t, err.Error(), "Ollama")
	assert.Contains(t, err.Error(), "[URL_REDACTED]")
}
