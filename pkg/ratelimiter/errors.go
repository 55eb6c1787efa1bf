package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("ratelimiter: invalid configuration")
	ErrInvalidTokenCount = errors.New("ratelimiter: invalid token count")
	ErrAlreadyStarted    = errors.New("ratelimiter: memory store already started")
	ErrNotStarted        = errors.New("ratelimiter: memory store not started")
)
