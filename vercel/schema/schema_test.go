package schema

import (
	"errors"
	"testing"
)

func TestNewRequestSchema(t *testing.T) {
	_, err := NewRequestSchema()
	if err != nil {
		t.Errorf("NewRequestSchema() returned an error: %v", err)
	}
}

func TestSchema_Validate(t *testing.T) {
	s, err := NewRequestSchema()
	if err != nil {
		t.Fatalf("NewRequestSchema() returned an error: %v", err)
	}

	valid := []string{
		`{"method":"GET","path":"/"}`,
		`{"method":"GET","path":"/x","headers":{},"query":{},"body":"","encoding":"text"}`,
		`{"method":"POST","path":"/x","headers":{"a":["1","2"]},"query":[["q","1"]],"body":"aGVsbG8=","encoding":"base64"}`,
		`{"host":"example.com","method":"GET","path":"/","body":null,"headers":null}`,
	}

	for _, doc := range valid {
		if err := s.Validate([]byte(doc)); err != nil {
			t.Errorf("Validate(%s) returned an error: %v", doc, err)
		}
	}
}

func TestSchema_Validate_Violations(t *testing.T) {
	s, err := NewRequestSchema()
	if err != nil {
		t.Fatalf("NewRequestSchema() returned an error: %v", err)
	}

	invalid := []string{
		`{"path":"/"}`,
		`{"method":"GET"}`,
		`{"method":1,"path":"/"}`,
		`{"method":"GET","path":"/","encoding":"gzip"}`,
		`{"method":"GET","path":"/","headers":{"a":1}}`,
		`{"method":"GET","path":"/","query":[["a"]]}`,
		`[]`,
	}

	for _, doc := range invalid {
		err := s.Validate([]byte(doc))

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Validate(%s) = %v, want *ValidationError", doc, err)
			continue
		}

		if len(verr.Violations) == 0 {
			t.Errorf("Validate(%s) returned no violations", doc)
		}
	}
}
