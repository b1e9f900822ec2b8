package main

import (
	xsdconv "github.com/reoring/xsdconv"
)

// record is one line of CLI output.
type record struct {
	Index  *int           `json:"index,omitempty"`
	Input  string         `json:"input"`
	Type   string         `json:"type"`
	Result *xsdconv.Value `json:"result,omitempty"`
	Error  *errorRecord   `json:"error,omitempty"`
}

type errorRecord struct {
	Kind    string            `json:"kind"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Params  map[string]string `json:"params,omitempty"`
}

// newRecord builds the output line for one conversion; index < 0 omits the
// position (single conversions).
func newRecord(index int, it xsdconv.Item, v xsdconv.Value, err error) record {
	rec := record{Input: it.Value, Type: it.Type}
	if index >= 0 {
		rec.Index = &index
	}
	if err == nil {
		rec.Result = &v
		return rec
	}
	if ce, ok := xsdconv.AsConversionError(err); ok {
		rec.Error = &errorRecord{Kind: ce.Kind.String(), Code: ce.Code, Message: ce.Reason, Params: ce.Params}
	} else {
		rec.Error = &errorRecord{Kind: "error", Message: err.Error()}
	}
	return rec
}
