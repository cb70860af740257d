package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name: "test-card",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":    map[string]any{"type": "string"},
				"options": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"grade":   map[string]any{"type": "string", "enum": []any{"6", "7", "8"}},
			},
			"required":             []any{"name", "options"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"a","options":["x","y"],"grade":"7"}`, false},
		{"optional omitted", `{"name":"a","options":[]}`, false},
		{"missing required", `{"name":"a"}`, true},
		{"wrong item type", `{"name":"a","options":[1,2]}`, true},
		{"enum violation", `{"name":"a","options":[],"grade":"9"}`, true},
		{"extra property", `{"name":"a","options":[],"extra":true}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			var invalid *ErrInvalidResponse
			if err != nil && !errors.As(err, &invalid) {
				t.Fatalf("err = %T, want *ErrInvalidResponse", err)
			}
		})
	}
}

func TestValidateResponse_NilSchemaAcceptsAnything(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_CachesCompiledSchema(t *testing.T) {
	s := testSchema()
	if err := validateResponse(s, json.RawMessage(`{"name":"a","options":[]}`)); err != nil {
		t.Fatal(err)
	}
	if _, ok := schemaCache.Load(s.Name); !ok {
		t.Fatal("schema not cached")
	}
}
