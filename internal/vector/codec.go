// ABOUTME: Serialization of embedding vectors to and from storage strings
// ABOUTME: JSON array format, chosen so decode(encode(v)) round-trips exactly
package vector

import (
	"encoding/json"
	"fmt"
)

// Encode serializes a vector as a JSON array string. A nil or empty
// vector encodes to the empty string, the "no vector" sentinel.
func Encode(v []float64) string {
	if len(v) == 0 {
		return ""
	}
	// json.Marshal on []float64 cannot fail
	data, _ := json.Marshal(v)
	return string(data)
}

// Decode parses a serialized vector. The empty string is not an error:
// it decodes to a nil vector, meaning "no vector stored". A malformed
// non-empty string returns an error; callers skip the record rather
// than aborting the query.
func Decode(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	var v []float64
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("malformed vector: %w", err)
	}
	if len(v) == 0 {
		return nil, nil
	}
	return v, nil
}
