package validation

import (
	"errors"
	"testing"
)

func heroSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":    map[string]any{"type": "string"},
			"max_rows": map[string]any{"type": "integer", "minimum": 1},
		},
		"required":             []string{"title"},
		"additionalProperties": false,
	}
}

func TestValidateSchema(t *testing.T) {
	if err := ValidateSchema(nil); err != nil {
		t.Fatalf("empty schema: %v", err)
	}
	if err := ValidateSchema(heroSchema()); err != nil {
		t.Fatalf("valid schema: %v", err)
	}
	broken := map[string]any{"type": "not-a-type"}
	if err := ValidateSchema(broken); !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("broken schema: got %v, want ErrSchemaInvalid", err)
	}
}

func TestValidatePayload(t *testing.T) {
	schema := heroSchema()

	if err := ValidatePayload(schema, map[string]any{"title": "Welcome", "max_rows": 3}); err != nil {
		t.Fatalf("valid payload: %v", err)
	}

	err := ValidatePayload(schema, map[string]any{"max_rows": 0})
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("invalid payload: got %v, want ErrSchemaValidation", err)
	}
	if issues := Issues(err); len(issues) == 0 {
		t.Fatalf("expected validation issues, got none")
	}

	if err := ValidatePayload(nil, map[string]any{"anything": true}); err != nil {
		t.Fatalf("nil schema accepts any payload: %v", err)
	}
}

func TestValidatePayloadRejectsUnknownFields(t *testing.T) {
	err := ValidatePayload(heroSchema(), map[string]any{"title": "ok", "surprise": 1})
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("unknown field: got %v, want ErrSchemaValidation", err)
	}
}
