package patch

// Coalesce merges a PATCH field into its stored value: the pointed-to
// value when the field was sent, fallback otherwise.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}
