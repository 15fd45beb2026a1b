package services

import "errors"

// Sentinel errors shared by the service layer. Handlers map them to HTTP
// statuses with errors.Is.
var (
	// ErrPlayerNotFound: the referenced player id does not exist.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrSamePlayer: a match was submitted with the same player on both sides.
	ErrSamePlayer = errors.New("white and black players must be different")

	// ErrRatingNotFound: a validated player has no rating row for the match's
	// time category. Rating rows are created with the player, so this is a
	// data-integrity failure, not a normal validation error.
	ErrRatingNotFound = errors.New("player rating not found")
)
