package qdrant

import (
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/multimodal-search/v1/vectordb"
)

// Payload keys of the schema marker point.
const (
	payloadKeyFingerprint = "_schema_fingerprint"
	payloadKeySchemaName  = "_schema_name"
)

// toDistance maps a vectordb metric to a Qdrant distance.
func toDistance(m vectordb.Metric) (qdrant.Distance, error) {
	switch m {
	case vectordb.MetricCosine, "":
		return qdrant.Distance_Cosine, nil
	case vectordb.MetricInnerProduct:
		return qdrant.Distance_Dot, nil
	case vectordb.MetricL2:
		return qdrant.Distance_Euclid, nil
	default:
		return qdrant.Distance_UnknownDistance, fmt.Errorf("[Qdrant] unsupported metric %q", m)
	}
}

// fromDistance maps a Qdrant distance back to a vectordb metric.
func fromDistance(d qdrant.Distance) vectordb.Metric {
	switch d {
	case qdrant.Distance_Cosine:
		return vectordb.MetricCosine
	case qdrant.Distance_Dot:
		return vectordb.MetricInnerProduct
	case qdrant.Distance_Euclid:
		return vectordb.MetricL2
	default:
		return vectordb.Metric(d.String())
	}
}

// hnswConfig converts index params into an HNSW config diff. Unknown params
// are ignored. Returns nil when nothing is set.
func hnswConfig(params map[string]int) *qdrant.HnswConfigDiff {
	var cfg qdrant.HnswConfigDiff
	set := false
	if m, ok := params[vectordb.ParamM]; ok && m > 0 {
		cfg.M = qdrant.PtrOf(uint64(m))
		set = true
	}
	if ef, ok := params[vectordb.ParamEfConstruct]; ok && ef > 0 {
		cfg.EfConstruct = qdrant.PtrOf(uint64(ef))
		set = true
	}
	if !set {
		return nil
	}
	return &cfg
}

// vectorParamsFromSchema builds the named vector config for every vector field.
func vectorParamsFromSchema(schema vectordb.CollectionSchema) (map[string]*qdrant.VectorParams, error) {
	out := make(map[string]*qdrant.VectorParams)
	for _, f := range schema.VectorFields() {
		idx, _ := schema.Index(f.Name)
		distance, err := toDistance(idx.Metric)
		if err != nil {
			return nil, err
		}
		out[f.Name] = &qdrant.VectorParams{
			Size:       uint64(f.Dim),
			Distance:   distance,
			HnswConfig: hnswConfig(idx.Params),
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("[Qdrant] schema %q declares no vector fields", schema.Name)
	}
	return out, nil
}

// vectorInfoFromCollection extracts named vector shapes from collection info.
// A collection with a single unnamed vector is reported under the empty name.
func vectorInfoFromCollection(info *qdrant.CollectionInfo) map[string]vectordb.VectorInfo {
	out := make(map[string]vectordb.VectorInfo)
	vc := info.GetConfig().GetParams().GetVectorsConfig()
	if vc == nil {
		return out
	}
	if p := vc.GetParams(); p != nil {
		out[""] = vectordb.VectorInfo{Dim: int(p.GetSize()), Metric: fromDistance(p.GetDistance())}
		return out
	}
	for name, p := range vc.GetParamsMap().GetMap() {
		out[name] = vectordb.VectorInfo{Dim: int(p.GetSize()), Metric: fromDistance(p.GetDistance())}
	}
	return out
}

// toPayload converts scalar values into Qdrant payload values.
func toPayload(scalars map[string]any) (map[string]*qdrant.Value, error) {
	out := make(map[string]*qdrant.Value, len(scalars))
	for k, v := range scalars {
		val, err := toValue(v)
		if err != nil {
			return nil, fmt.Errorf("[Qdrant] payload field %q: %w", k, err)
		}
		out[k] = val
	}
	return out, nil
}

func toValue(v any) (*qdrant.Value, error) {
	switch val := v.(type) {
	case nil:
		return qdrant.NewValueNull(), nil
	case string:
		return qdrant.NewValueString(val), nil
	case bool:
		return qdrant.NewValueBool(val), nil
	case int:
		return qdrant.NewValueInt(int64(val)), nil
	case int32:
		return qdrant.NewValueInt(int64(val)), nil
	case int64:
		return qdrant.NewValueInt(val), nil
	case uint32:
		return qdrant.NewValueInt(int64(val)), nil
	case float32:
		return qdrant.NewValueDouble(float64(val)), nil
	case float64:
		return qdrant.NewValueDouble(val), nil
	default:
		return nil, fmt.Errorf("unsupported payload type %T", v)
	}
}

// fromPayload converts a Qdrant payload into plain Go values. When fields is
// non-empty only those keys are kept.
func fromPayload(payload map[string]*qdrant.Value, fields []string) map[string]any {
	if payload == nil {
		return map[string]any{}
	}
	if len(fields) == 0 {
		out := make(map[string]any, len(payload))
		for k, v := range payload {
			out[k] = fromValue(v)
		}
		return out
	}
	out := make(map[string]any, len(fields))
	for _, k := range fields {
		if v, ok := payload[k]; ok {
			out[k] = fromValue(v)
		}
	}
	return out
}

// fromValue recursively converts a Qdrant value to a Go native type.
func fromValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_StructValue:
		if val.StructValue == nil {
			return nil
		}
		return fromPayload(val.StructValue.Fields, nil)
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = fromValue(item)
		}
		return items
	default:
		return nil
	}
}

// pointID extracts a numeric point id.
func pointID(id *qdrant.PointId) (uint64, error) {
	if id == nil {
		return 0, fmt.Errorf("nil point ID")
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return v.Num, nil
	default:
		return 0, fmt.Errorf("unexpected PointId type: %T", v)
	}
}

// toHits converts scored points into vectordb hits, keeping Qdrant's order.
func toHits(points []*qdrant.ScoredPoint, fields []string) ([]vectordb.Hit, error) {
	hits := make([]vectordb.Hit, 0, len(points))
	for _, p := range points {
		id, err := pointID(p.GetId())
		if err != nil {
			return nil, fmt.Errorf("[Qdrant] %w", err)
		}
		hits = append(hits, vectordb.Hit{
			ID:      id,
			Score:   p.GetScore(),
			Payload: fromPayload(p.GetPayload(), fields),
		})
	}
	return hits, nil
}
