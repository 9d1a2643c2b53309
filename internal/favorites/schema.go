package favorites

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const slotSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "author"],
    "properties": {
      "title":   {"type": "string"},
      "author":  {"type": "string"},
      "cover":   {"type": "string"},
      "summary": {"type": "string"}
    }
  }
}`

var schema = mustSchema(slotSchema)

func mustSchema(s string) *gojsonschema.Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("favorites slot schema: %v", err))
	}
	return compiled
}

// validate checks a slot payload against the favorites schema. Syntax errors
// are reported the same way as schema violations.
func validate(data []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate favorites: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return fmt.Errorf("favorites slot does not match schema: %s", strings.Join(problems, "; "))
}
