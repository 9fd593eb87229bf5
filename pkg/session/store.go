package session

import "context"

// Store defines the interface for session persistence
type Store[T any] interface {
	// Fetch returns the record for id or ErrNotFound
	Fetch(ctx context.Context, id string) (Data[T], error)

	// Save creates or overwrites the record keyed by data.ID
	Save(ctx context.Context, data Data[T]) error

	// Retire marks the record retired or deletes it; retiring a missing id is not an error
	Retire(ctx context.Context, id string) error
}

// GroupRetirer is implemented by stores that can invalidate a whole session chain
type GroupRetirer interface {
	RetireGroup(ctx context.Context, groupID string) error
}

// ExpiredCleaner is implemented by stores that need explicit garbage collection
type ExpiredCleaner interface {
	DeleteExpired(ctx context.Context) (int64, error)
}
