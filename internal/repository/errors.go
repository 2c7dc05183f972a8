package repository

import "errors"

var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid id format")
	ErrAlreadyExists = errors.New("entity already exists")
	// ErrAlreadySold is returned by the conditional sold-flag write when
	// the bike exists but another purchase won the race.
	ErrAlreadySold = errors.New("bike already marked as sold")
)
