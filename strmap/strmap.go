// Package strmap implements an ordered, multi-valued string map used for
// header and query parameter collections.
package strmap

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// Pair is a single key/value entry of a StrMap.
type Pair struct {
	Key   string
	Value string
}

// StrMap is an ordered collection of key/value pairs that allows several
// values per key. Keys are compared byte-exact. The zero value is an empty
// map ready to use.
type StrMap struct {
	pairs []Pair
}

// New creates a StrMap from the given pairs, in order.
func New(pairs ...Pair) StrMap {
	var m StrMap
	for _, p := range pairs {
		m.Add(p.Key, p.Value)
	}
	return m
}

// Add appends a value for key. Existing values are never replaced.
func (m *StrMap) Add(key, value string) {
	m.pairs = append(m.pairs, Pair{Key: key, Value: value})
}

// Get returns the first value stored for key.
func (m StrMap) Get(key string) (string, bool) {
	for _, p := range m.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Values returns all values stored for key in insertion order.
func (m StrMap) Values(key string) []string {
	var values []string
	for _, p := range m.pairs {
		if p.Key == key {
			values = append(values, p.Value)
		}
	}
	return values
}

// GetFold is like Get but matches key case-insensitively.
func (m StrMap) GetFold(key string) (string, bool) {
	for _, p := range m.pairs {
		if strings.EqualFold(p.Key, key) {
			return p.Value, true
		}
	}
	return "", false
}

// ValuesFold is like Values but matches key case-insensitively.
func (m StrMap) ValuesFold(key string) []string {
	var values []string
	for _, p := range m.pairs {
		if strings.EqualFold(p.Key, key) {
			values = append(values, p.Value)
		}
	}
	return values
}

// Range calls fn for every pair in insertion order until fn returns false.
func (m StrMap) Range(fn func(key, value string) bool) {
	for _, p := range m.pairs {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// Pairs returns a copy of all pairs in insertion order.
func (m StrMap) Pairs() []Pair {
	if len(m.pairs) == 0 {
		return nil
	}
	pairs := make([]Pair, len(m.pairs))
	copy(pairs, m.pairs)
	return pairs
}

// Keys returns the distinct keys in order of first occurrence.
func (m StrMap) Keys() []string {
	var keys []string
	seen := make(map[string]struct{}, len(m.pairs))
	for _, p := range m.pairs {
		if _, ok := seen[p.Key]; ok {
			continue
		}
		seen[p.Key] = struct{}{}
		keys = append(keys, p.Key)
	}
	return keys
}

// Len returns the number of pairs.
func (m StrMap) Len() int {
	return len(m.pairs)
}

// IsEmpty reports whether the map holds no pairs.
func (m StrMap) IsEmpty() bool {
	return len(m.pairs) == 0
}

// Equal reports whether both maps hold the same pairs in the same order.
func (m StrMap) Equal(other StrMap) bool {
	if len(m.pairs) != len(other.pairs) {
		return false
	}
	for i := range m.pairs {
		if m.pairs[i] != other.pairs[i] {
			return false
		}
	}
	return true
}

// FromHeader converts an http.Header. Since http.Header is unordered, keys
// are added in sorted order; values keep their order.
func FromHeader(h http.Header) StrMap {
	return fromMultiMap(h)
}

// FromValues converts url.Values, with keys in sorted order.
func FromValues(v url.Values) StrMap {
	return fromMultiMap(v)
}

// ParseQuery parses a URL encoded query string, keeping the pairs in the
// order they appear. Unlike url.ParseQuery, it stops at the first pair
// that cannot be unescaped.
func ParseQuery(query string) (StrMap, error) {
	var m StrMap
	for query != "" {
		var pair string
		pair, query, _ = strings.Cut(query, "&")
		if pair == "" {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")

		key, err := url.QueryUnescape(key)
		if err != nil {
			return StrMap{}, err
		}
		value, err = url.QueryUnescape(value)
		if err != nil {
			return StrMap{}, err
		}

		m.Add(key, value)
	}
	return m, nil
}

// Header converts the map into an http.Header. Keys are stored as given,
// without canonicalization.
func (m StrMap) Header() http.Header {
	h := make(http.Header, len(m.pairs))
	for _, p := range m.pairs {
		h[p.Key] = append(h[p.Key], p.Value)
	}
	return h
}

// Encode encodes the map as a URL query string in insertion order.
func (m StrMap) Encode() string {
	var sb strings.Builder
	for i, p := range m.pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}

func fromMultiMap[M ~map[string][]string](mm M) StrMap {
	keys := make([]string, 0, len(mm))
	for k := range mm {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var m StrMap
	for _, k := range keys {
		for _, v := range mm[k] {
			m.Add(k, v)
		}
	}
	return m
}
