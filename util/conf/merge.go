package conf

// MergeDefaults merges maps into a single set of defaults, prefixing every
// key with the namespace ns. Later maps win on conflicting keys.
//
//	MergeDefaults("http", DefaultConfig{"port": 3000})
//	// DefaultConfig{"http.port": 3000}
func MergeDefaults[M ~map[string]V, V any](ns string, maps ...M) M {
	size := 0
	for _, m := range maps {
		size += len(m)
	}

	prefix := ""
	if ns != "" {
		prefix = ns + "."
	}

	merged := make(M, size)
	for _, m := range maps {
		for key, val := range m {
			merged[prefix+key] = val
		}
	}

	return merged
}
