package strmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidJSON is returned when a JSON document does not describe a
// string map.
var ErrInvalidJSON = errors.New("invalid string map")

// MarshalJSON encodes the map as a JSON object. Keys appear in order of
// first occurrence. A key with a single value is encoded as a string, a key
// with several values as an array of strings.
func (m StrMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, key := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		var v []byte
		if values := m.Values(key); len(values) == 1 {
			v, err = json.Marshal(values[0])
		} else {
			v, err = json.Marshal(values)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes either a JSON object, whose values are strings or
// arrays of strings, or an array of [name, value] pairs. The order of the
// source document is kept. null decodes to an empty map.
func (m *StrMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	var out StrMap

	switch tok {
	case nil:
		*m = out
		return nil
	case json.Delim('{'):
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := keyTok.(string)

			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return err
			}

			values, err := decodeValues(raw)
			if err != nil {
				return fmt.Errorf("%w: key %q: %w", ErrInvalidJSON, key, err)
			}

			for _, v := range values {
				out.Add(key, v)
			}
		}
	case json.Delim('['):
		for dec.More() {
			var pair []string
			if err := dec.Decode(&pair); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
			}
			if len(pair) != 2 {
				return fmt.Errorf("%w: pair has %d elements", ErrInvalidJSON, len(pair))
			}
			out.Add(pair[0], pair[1])
		}
	default:
		return fmt.Errorf("%w: unexpected token %v", ErrInvalidJSON, tok)
	}

	// closing delimiter
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = out
	return nil
}

func decodeValues(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("empty value")
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return []string{s}, nil
	case '[':
		var values []string
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, err
		}
		return values, nil
	case 'n':
		return nil, nil
	default:
		return nil, fmt.Errorf("expected string or array, got %s", raw)
	}
}
