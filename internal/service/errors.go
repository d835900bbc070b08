package service

import "errors"

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrForbidden means the actor is neither the owner nor staff.
	ErrForbidden = errors.New("not allowed to access this habit")
)
