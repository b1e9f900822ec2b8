package xsdconv

import (
	"math"
	"math/big"

	json "github.com/goccy/go-json"
)

type valueJSON struct {
	Type  string `json:"type"`
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

// MarshalJSON renders {"type":..., "kind":..., "value":...}. Integers and
// finite floats become JSON numbers, booleans JSON booleans; decimals keep
// their exact digits as strings and everything else uses String().
func (v Value) MarshalJSON() ([]byte, error) {
	out := valueJSON{Type: v.typeName, Kind: v.kind.String()}
	switch p := v.v.(type) {
	case nil:
		out.Value = nil
	case *big.Int:
		out.Value = json.Number(p.String())
	case float64:
		if math.IsInf(p, 0) || math.IsNaN(p) {
			out.Value = v.String()
		} else {
			out.Value = json.Number(v.String())
		}
	case bool:
		out.Value = p
	default:
		out.Value = v.String()
	}
	return json.Marshal(out)
}
