package game

import "errors"

// Rejected card uses and undos leave the session untouched; these errors
// tell the caller which guard refused the request.
var (
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrCardOutOfRange = errors.New("card index out of range")
	ErrCardUsed       = errors.New("card already used")
	ErrEmptyWord      = errors.New("declared word is empty")
	ErrNothingToUndo  = errors.New("nothing to undo")
)
