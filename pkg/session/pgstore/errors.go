package pgstore

import "errors"

var (
	ErrFetch   = errors.New("pgstore.fetch")
	ErrSave    = errors.New("pgstore.save")
	ErrRetire  = errors.New("pgstore.retire")
	ErrCleanup = errors.New("pgstore.cleanup")
	ErrEncode  = errors.New("pgstore.encode")
	ErrDecode  = errors.New("pgstore.decode")
)
