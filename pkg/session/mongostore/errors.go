package mongostore

import "errors"

var (
	ErrFetch   = errors.New("mongostore.fetch")
	ErrSave    = errors.New("mongostore.save")
	ErrRetire  = errors.New("mongostore.retire")
	ErrCleanup = errors.New("mongostore.cleanup")
	ErrIndex   = errors.New("mongostore.index")
)
