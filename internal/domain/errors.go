package domain

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrNoVisitedLocations     = errors.New("no visited locations recorded")
	ErrTemporarilyUnavailable = errors.New("temporarily unavailable")
)
