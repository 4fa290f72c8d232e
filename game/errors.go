package game

import "errors"

// Terminal, user-visible failures. These are returned to the single
// requesting connection and never retried or broadcast.
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrCardNotFound     = errors.New("carton not found")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrBanned           = errors.New("banned from this room")
	ErrInvalidState     = errors.New("invalid state")
	ErrStoreUnavailable = errors.New("store unavailable")
)
