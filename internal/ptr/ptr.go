package ptr

// Ref returns a pointer to a copy of the value passed as argument.
func Ref[T any](v T) *T {
	return &v
}
