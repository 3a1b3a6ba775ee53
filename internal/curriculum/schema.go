package curriculum

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

var (
	// ErrNoSteps is returned when a roadmap has no steps.
	ErrNoSteps = errors.New("roadmap has no steps")
	// ErrDuplicateStepID is returned when two steps share an id.
	ErrDuplicateStepID = errors.New("duplicate step id")
)

const roadmapSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "title", "steps"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "title": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "steps": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "number", "title", "weeks_to_finish", "category"],
        "properties": {
          "id": {"type": "integer"},
          "number": {"type": "string"},
          "title": {"type": "string", "minLength": 1},
          "desc": {"type": "string"},
          "weeks_to_finish": {"type": "integer", "minimum": 1},
          "category": {"type": "string"},
          "resources": {"type": "array", "items": {"type": "string"}},
          "prerequisites": {"type": "array", "items": {"type": "integer"}}
        }
      }
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(roadmapSchemaJSON))
})

// validateDocument checks a generically decoded roadmap document against the
// roadmap JSON schema.
func validateDocument(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compiling roadmap schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validating roadmap: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("roadmap does not match schema: %s", strings.Join(msgs, "; "))
}

// CheckSteps verifies the invariants every consumer of a step list relies on:
// at least one step and unique ids.
func CheckSteps(steps []Step) error {
	if len(steps) == 0 {
		return ErrNoSteps
	}
	seen := make(map[int]struct{}, len(steps))
	for _, s := range steps {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateStepID, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
