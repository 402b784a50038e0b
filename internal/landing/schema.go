package landing

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/gurukulhq/gurukul/internal/validation"
)

// ErrContentInvalid marks generated payloads that fail schema validation.
var ErrContentInvalid = errors.New("landing: generated content invalid")

// localizedText matches either a bare string or a locale map.
const localizedTextSchema = `{
	"anyOf": [
		{"type": "string"},
		{
			"type": "object",
			"additionalProperties": {"type": "string"}
		}
	]
}`

var contentSchemaJSON = fmt.Sprintf(`{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["hero", "about", "cta"],
	"properties": {
		"hero": {
			"type": "object",
			"required": ["headline"],
			"properties": {
				"headline": %[1]s,
				"subheadline": %[1]s
			}
		},
		"about": %[1]s,
		"benefits": {"type": "array", "items": %[1]s},
		"curriculum": {"type": "array", "items": %[1]s},
		"pricing": {
			"type": "object",
			"properties": {
				"headline": %[1]s,
				"note": %[1]s
			}
		},
		"faq": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["question", "answer"],
				"properties": {
					"question": %[1]s,
					"answer": %[1]s
				}
			}
		},
		"cta": {
			"type": "object",
			"required": ["label"],
			"properties": {
				"label": %[1]s,
				"note": %[1]s
			}
		}
	}
}`, localizedTextSchema)

var (
	compiledContentSchema *jsonschema.Schema
	compileContentOnce    sync.Once
	compileContentErr     error
)

func contentSchema() (*jsonschema.Schema, error) {
	compileContentOnce.Do(func() {
		compiledContentSchema, compileContentErr = validation.CompileSchemaBytes([]byte(contentSchemaJSON))
	})
	return compiledContentSchema, compileContentErr
}

// ContentSchemaMap returns the schema as a generic map, suitable for
// structured-output request formats.
func ContentSchemaMap() map[string]any {
	out := map[string]any{}
	if err := json.Unmarshal([]byte(contentSchemaJSON), &out); err != nil {
		return map[string]any{}
	}
	return out
}

// ParseContent validates raw generated JSON and decodes it into Content.
func ParseContent(raw json.RawMessage) (*Content, error) {
	schema, err := contentSchema()
	if err != nil {
		return nil, fmt.Errorf("landing: compile content schema: %w", err)
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentInvalid, err)
	}
	if err := validation.ValidateWithCompiled(schema, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentInvalid, err)
	}

	var content Content
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentInvalid, err)
	}
	return &content, nil
}
