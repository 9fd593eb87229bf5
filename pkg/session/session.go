package session

// Session wraps a record for the duration of a request.
// IsNew stays true until the record is persisted by Set.
type Session[T any] struct {
	Sig   string
	Data  Data[T]
	IsNew bool
}

// ID returns the session identifier.
func (s *Session[T]) ID() string {
	if s == nil {
		return ""
	}
	return s.Data.ID
}

// Values returns a pointer to the application payload for in-place edits.
func (s *Session[T]) Values() *T {
	return &s.Data.Values
}
