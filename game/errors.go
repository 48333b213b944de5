package game

import "errors"

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room full")
	ErrBadPassword    = errors.New("wrong password")
	ErrAlreadyInRoom  = errors.New("already in a room")
	ErrInvalidPayload = errors.New("invalid payload")
)

// ErrorMessage maps a relay error to the human-readable text sent to the
// client in join_error / error events.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "Room not found!"
	case errors.Is(err, ErrRoomFull):
		return "Room is full!"
	case errors.Is(err, ErrBadPassword):
		return "Wrong password!"
	case errors.Is(err, ErrAlreadyInRoom):
		return "You are already in a room!"
	case errors.Is(err, ErrInvalidPayload):
		return "invalid-payload"
	default:
		return "unknown-error"
	}
}
