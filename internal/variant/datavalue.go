package variant

import "time"

// DataValue is a value together with its quality and timestamps.
type DataValue struct {
	Value           Variant
	StatusCode      StatusCode
	SourceTimestamp time.Time
	ServerTimestamp time.Time
}

// NewDataValue wraps v with a Good status and both timestamps set to ts.
func NewDataValue(v Variant, ts time.Time) DataValue {
	return DataValue{Value: v, StatusCode: Good, SourceTimestamp: ts, ServerTimestamp: ts}
}
