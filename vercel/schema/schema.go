package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed request.json
var request json.RawMessage
var requestLoader = gojsonschema.NewBytesLoader(request)

// Schema validates documents against a compiled JSON schema.
type Schema struct {
	schema *gojsonschema.Schema
}

// NewRequestSchema compiles the schema of the proxy request document
// carried in the body of a Vercel event.
func NewRequestSchema() (*Schema, error) {
	s, err := gojsonschema.NewSchema(requestLoader)
	if err != nil {
		return nil, err
	}

	return &Schema{schema: s}, nil
}

// Validate checks the JSON document data. A *ValidationError is returned
// if the document does not conform; other errors mean data is not JSON.
func (s *Schema) Validate(data []byte) error {
	res, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return err
	}

	if res.Valid() {
		return nil
	}

	return newValidationError(res.Errors())
}

// ValidationError lists the schema violations of a document.
type ValidationError struct {
	Violations []string
}

func newValidationError(errs []gojsonschema.ResultError) *ValidationError {
	violations := make([]string, 0, len(errs))
	for _, e := range errs {
		violations = append(violations, e.String())
	}

	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %s", strings.Join(e.Violations, "; "))
}
