// File: internal/services/vectordb/converter.go
package vectordb

import (
	"fmt"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
)

// pointID builds a Qdrant point id from a string. All-numeric ids map onto
// the numeric id variant so ids round-trip the way they were stored.
func pointID(id string) *qdrant.PointId {
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		return qdrant.NewIDNum(n)
	}
	return qdrant.NewID(id)
}

// pointIDString flattens the PointId oneof back into a string.
func pointIDString(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return strconv.FormatUint(v.Num, 10)
	case *qdrant.PointId_Uuid:
		return v.Uuid
	default:
		return fmt.Sprintf("%v", v)
	}
}

// payloadToMap converts a Qdrant payload into plain Go values so the rest of
// the application never touches SDK protobuf types.
func payloadToMap(payload map[string]*qdrant.Value) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = valueToAny(v)
	}
	return out
}

func valueToAny(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch kind := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	default:
		return v.String()
	}
}

// distanceFromString maps a config string onto the SDK metric, defaulting to
// cosine similarity.
func distanceFromString(distance string) qdrant.Distance {
	switch distance {
	case "", "cosine", "Cosine":
		return qdrant.Distance_Cosine
	case "dot", "Dot":
		return qdrant.Distance_Dot
	case "euclid", "Euclid":
		return qdrant.Distance_Euclid
	default:
		return qdrant.Distance_Cosine
	}
}
