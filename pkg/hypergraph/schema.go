package hypergraph

import (
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/matzehuels/hypergraph/pkg/errors"
)

// documentSchema describes the overall shape of a persisted document.
// Entity-level rules (vertex types, shape parameters, edge references) are
// checked separately so that bad entities are skipped rather than fatal.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["hypergraph"],
  "properties": {
    "hypergraph": {
      "type": "object",
      "required": ["vertices"],
      "properties": {
        "name": {"type": "string"},
        "vertices": {"type": "array", "items": {"type": "object"}},
        "edges": {"type": "array", "items": {"type": "object"}}
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString("hypergraph.schema.json", documentSchema)
	})
	return compiledSchema, schemaErr
}

// ValidateShape checks raw against the document schema without building a
// document.
func ValidateShape(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "document is not valid JSON")
	}
	sch, err := loadSchema()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "compile document schema")
	}
	if err := sch.Validate(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "document does not match schema")
	}
	return nil
}
