// File: internal/services/vectordb/client.go
package vectordb

import (
	"context"
	"errors"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
)

// QdrantStore implements Store on top of the official Qdrant Go client.
type QdrantStore struct {
	api    *qdrant.Client
	cfg    *Config
	logger Logger
}

func NewQdrantStore(cfg *Config, logger Logger) (*QdrantStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, NewInvalidConfigError(err.Error())
	}

	host, port, useTLS, err := cfg.hostPort()
	if err != nil {
		return nil, NewInvalidConfigError(err.Error())
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   host,
		Port:                   port,
		APIKey:                 cfg.APIKey,
		UseTLS:                 useTLS,
		SkipCompatibilityCheck: true,
	})
	if err != nil {
		return nil, classify("connect", err)
	}

	logger.Info("qdrant client initialized", "host", host, "port", port)

	return &QdrantStore{api: api, cfg: cfg, logger: logger}, nil
}

// Search runs a similarity query and returns hits in the backend's
// descending-score order.
func (s *QdrantStore) Search(ctx context.Context, collection string, params SearchParams) ([]SearchHit, error) {
	if len(params.Vector) == 0 {
		return nil, NewInvalidConfigError("search vector cannot be empty")
	}

	req := &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(params.Vector...),
		WithPayload:    qdrant.NewWithPayload(true),
		ScoreThreshold: params.ScoreThreshold,
	}
	if params.Limit > 0 {
		req.Limit = &params.Limit
	}

	resp, err := s.api.Query(ctx, req)
	if err != nil {
		return nil, classify("search", err)
	}

	hits := make([]SearchHit, 0, len(resp))
	for _, point := range resp {
		hits = append(hits, SearchHit{
			ID:      pointIDString(point.Id),
			Score:   point.Score,
			Payload: payloadToMap(point.Payload),
		})
	}

	s.logger.Debug("search completed", "collection", collection, "results", len(hits))
	return hits, nil
}

// Upsert writes points, waiting for the store to confirm persistence.
func (s *QdrantStore) Upsert(ctx context.Context, collection string, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	structs := make([]*qdrant.PointStruct, 0, len(points))
	for i, p := range points {
		if p.ID == "" {
			return NewInvalidConfigError(fmt.Sprintf("point [%d] is missing an id", i))
		}
		if len(p.Vector) == 0 {
			return NewInvalidConfigError(fmt.Sprintf("point %q is missing a vector", p.ID))
		}
		payload := p.Payload
		if payload == nil {
			payload = map[string]any{}
		}
		structs = append(structs, &qdrant.PointStruct{
			Id:      pointID(p.ID),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: qdrant.NewValueMap(payload),
		})
	}

	wait := true
	_, err := s.api.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         structs,
		Wait:           &wait,
	})
	if err != nil {
		return classify("upsert", err)
	}

	s.logger.Debug("upsert completed", "collection", collection, "points", len(points))
	return nil
}

// CreateCollection creates a collection. A missing vector size is a
// configuration error raised before any network call.
func (s *QdrantStore) CreateCollection(ctx context.Context, collection string, params CollectionParams) error {
	if params.VectorSize == 0 {
		return NewInvalidConfigError("vectorSize is required to create a collection")
	}

	err := s.api.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     params.VectorSize,
			Distance: distanceFromString(params.Distance),
		}),
	})
	if err != nil {
		return classify("create_collection", err)
	}

	s.logger.Info("collection created", "collection", collection, "vector_size", params.VectorSize)
	return nil
}

// Delete removes points by id, waiting for confirmation.
func (s *QdrantStore) Delete(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	qdrantIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		qdrantIDs = append(qdrantIDs, pointID(id))
	}

	wait := true
	_, err := s.api.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: qdrantIDs},
			},
		},
		Wait: &wait,
	})
	if err != nil {
		return classify("delete", err)
	}

	s.logger.Debug("delete completed", "collection", collection, "points", len(ids))
	return nil
}

// Scroll bulk-reads up to limit points with their payloads.
func (s *QdrantStore) Scroll(ctx context.Context, collection string, limit uint32) ([]StoredPoint, error) {
	resp, err := s.api.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: collection,
		Limit:          qdrant.PtrOf(limit),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, classify("scroll", err)
	}

	points := make([]StoredPoint, 0, len(resp))
	for _, point := range resp {
		points = append(points, StoredPoint{
			ID:      pointIDString(point.Id),
			Payload: payloadToMap(point.Payload),
		})
	}

	s.logger.Debug("scroll completed", "collection", collection, "points", len(points))
	return points, nil
}

func (s *QdrantStore) HealthCheck(ctx context.Context) error {
	if s.api == nil {
		return errors.New("qdrant client not initialized")
	}
	if _, err := s.api.HealthCheck(ctx); err != nil {
		return classify("health_check", err)
	}
	return nil
}

// Close releases the underlying gRPC connection.
func (s *QdrantStore) Close() error {
	if s.api == nil {
		return nil
	}
	return s.api.Close()
}
