// File: internal/services/vectordb/interface.go
package vectordb

import "context"

// SearchParams controls a similarity query. Limit of 0 means the backend
// default; ScoreThreshold of nil means no cutoff.
type SearchParams struct {
	Vector         []float32
	Limit          uint64
	ScoreThreshold *float32
}

// SearchHit is a single ranked result. Hits come back in the backend's
// descending-score order and are never re-sorted client-side.
type SearchHit struct {
	ID      string
	Score   float32
	Payload map[string]any
}

// Point is a record to upsert. ID and Vector are required; a nil Payload is
// stored as an empty map.
type Point struct {
	ID      string
	Vector  []float32
	Payload map[string]any
}

// StoredPoint is a record read back via Scroll.
type StoredPoint struct {
	ID      string
	Payload map[string]any
}

// CollectionParams configures collection creation. VectorSize is mandatory;
// Distance defaults to cosine.
type CollectionParams struct {
	VectorSize uint64
	Distance   string
}

// Store is the vector-store contract the rest of the application depends on.
type Store interface {
	Search(ctx context.Context, collection string, params SearchParams) ([]SearchHit, error)
	Upsert(ctx context.Context, collection string, points []Point) error
	CreateCollection(ctx context.Context, collection string, params CollectionParams) error
	Delete(ctx context.Context, collection string, ids []string) error
	Scroll(ctx context.Context, collection string, limit uint32) ([]StoredPoint, error)
	HealthCheck(ctx context.Context) error
}

// Logger interface for store operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
