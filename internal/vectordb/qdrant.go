package vectordb

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
)

// QdrantStore persists vectors in a Qdrant collection over gRPC. The chunk
// text travels in the payload under "text" next to the chunk metadata.
type QdrantStore struct {
	points      pb.PointsClient
	collections pb.CollectionsClient
	collection  string
	dimension   int
}

// NewQdrantStore wraps a gRPC connection to Qdrant and ensures the
// collection exists with the given vector dimension and cosine distance.
func NewQdrantStore(ctx context.Context, conn grpc.ClientConnInterface, collection string, dimension int) (*QdrantStore, error) {
	if collection == "" {
		return nil, fmt.Errorf("collection name is required")
	}
	if dimension <= 0 {
		return nil, fmt.Errorf("vector dimension must be positive, got %d", dimension)
	}

	s := &QdrantStore{
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		collection:  collection,
		dimension:   dimension,
	}
	if err := s.ensureCollection(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure collection %s: %w", collection, err)
	}
	return s, nil
}

func (s *QdrantStore) ensureCollection(ctx context.Context) error {
	resp, err := s.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	for _, c := range resp.GetCollections() {
		if c.GetName() == s.collection {
			return nil
		}
	}

	log.Printf("ensureCollection: creating collection %s (dim=%d)", s.collection, s.dimension)
	_, err = s.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(s.dimension),
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

func (s *QdrantStore) Add(ctx context.Context, texts []string, vectors [][]float32, metadatas []map[string]any, ids []string) error {
	if err := validateBatch(texts, vectors, metadatas, ids); err != nil {
		return fmt.Errorf("invalid batch: %w", err)
	}

	points := make([]*pb.PointStruct, len(texts))
	for i, text := range texts {
		if len(vectors[i]) != s.dimension {
			return fmt.Errorf("vector %d has dimension %d, collection expects %d", i, len(vectors[i]), s.dimension)
		}
		id := ""
		if ids != nil {
			id = ids[i]
		}
		if id == "" {
			id = uuid.NewString()
		}

		payload := map[string]*pb.Value{"text": stringValue(text)}
		if metadatas != nil {
			for k, v := range metadatas[i] {
				payload[k] = toValue(v)
			}
		}

		points[i] = &pb.PointStruct{
			Id:      &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: id}},
			Vectors: &pb.Vectors{VectorsOptions: &pb.Vectors_Vector{Vector: &pb.Vector{Data: vectors[i]}}},
			Payload: payload,
		}
	}

	wait := true
	_, err := s.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
		Wait:           &wait,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert %d points: %w", len(points), err)
	}
	return nil
}

func (s *QdrantStore) Query(ctx context.Context, vector []float32, topK int, filter map[string]string) ([]Match, error) {
	if topK <= 0 {
		topK = 10
	}

	req := &pb.SearchPoints{
		CollectionName: s.collection,
		Vector:         vector,
		Limit:          uint64(topK),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	}
	if len(filter) > 0 {
		req.Filter = keywordFilter(filter)
	}

	resp, err := s.points.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	matches := make([]Match, 0, len(resp.GetResult()))
	for _, hit := range resp.GetResult() {
		match := Match{
			ID:       hit.GetId().GetUuid(),
			Score:    hit.GetScore(),
			Metadata: make(map[string]any, len(hit.GetPayload())),
		}
		for k, v := range hit.GetPayload() {
			if k == "text" {
				match.Text = v.GetStringValue()
				continue
			}
			match.Metadata[k] = fromValue(v)
		}
		matches = append(matches, match)
	}
	return matches, nil
}

func (s *QdrantStore) Count(ctx context.Context) (int, error) {
	exact := true
	resp, err := s.points.Count(ctx, &pb.CountPoints{
		CollectionName: s.collection,
		Exact:          &exact,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count points: %w", err)
	}
	return int(resp.GetResult().GetCount()), nil
}

// Clear deletes every point in the collection via an empty filter selector.
func (s *QdrantStore) Clear(ctx context.Context) error {
	wait := true
	_, err := s.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Filter{Filter: &pb.Filter{}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}
	return nil
}

func keywordFilter(filter map[string]string) *pb.Filter {
	conditions := make([]*pb.Condition, 0, len(filter))
	for k, v := range filter {
		conditions = append(conditions, &pb.Condition{
			ConditionOneOf: &pb.Condition_Field{
				Field: &pb.FieldCondition{
					Key:   k,
					Match: &pb.Match{MatchValue: &pb.Match_Keyword{Keyword: v}},
				},
			},
		})
	}
	return &pb.Filter{Must: conditions}
}

func stringValue(s string) *pb.Value {
	return &pb.Value{Kind: &pb.Value_StringValue{StringValue: s}}
}

func toValue(v any) *pb.Value {
	switch val := v.(type) {
	case string:
		return stringValue(val)
	case int:
		return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: int64(val)}}
	case int64:
		return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: val}}
	case float64:
		return &pb.Value{Kind: &pb.Value_DoubleValue{DoubleValue: val}}
	case bool:
		return &pb.Value{Kind: &pb.Value_BoolValue{BoolValue: val}}
	default:
		return stringValue(fmt.Sprintf("%v", val))
	}
}

func fromValue(v *pb.Value) any {
	switch kind := v.GetKind().(type) {
	case *pb.Value_StringValue:
		return kind.StringValue
	case *pb.Value_IntegerValue:
		return kind.IntegerValue
	case *pb.Value_DoubleValue:
		return kind.DoubleValue
	case *pb.Value_BoolValue:
		return kind.BoolValue
	default:
		return v.String()
	}
}
