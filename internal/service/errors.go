package service

import "errors"

// Errors returned by the game store.
var (
	ErrNoActiveGame       = errors.New("no active game")
	ErrInvalidPlayerCount = errors.New("invalid player count")
)
