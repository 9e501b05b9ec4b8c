package utils

// Ptr returns a pointer to the provided value v.
// Optional settings such as a view's cascade-on-drop flag use it to tell
// "unset" apart from the zero value.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns *p, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
