//go:build unit || e2e

package testutil

// Field sets a key in a request map, or removes it when value is nil.
// Pair with DtoMap to build malformed request bodies from valid DTOs.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}
