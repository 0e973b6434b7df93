package bookkbot

import (
	"errors"
	"fmt"
)

var ErrAlreadyBooted = errors.New("bot already booted")
var ErrEmptyPayload = errors.New("empty payload")
var ErrBadPayload = errors.New("bad payload")
var ErrMissingTriggerID = errors.New("missing trigger_id")
var ErrInvalidLink = errors.New("invalid bookstore link")

// DeserializationError reports a required field that was absent or
// mistyped in an external payload.
type DeserializationError struct {
	Field string
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("missing or malformed field %q", e.Field)
}
