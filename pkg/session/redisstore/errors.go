package redisstore

import "errors"

var (
	ErrFetch  = errors.New("redisstore.fetch")
	ErrSave   = errors.New("redisstore.save")
	ErrRetire = errors.New("redisstore.retire")
	ErrEncode = errors.New("redisstore.encode")
	ErrDecode = errors.New("redisstore.decode")
)
