// Package validate checks user-supplied input before it reaches the wire.
// The server enforces its own limits; these checks exist so obviously bad
// input is rejected locally with a usable message instead of a round trip.
package validate

import (
	"errors"
	"strings"
	"unicode"
)

const (
	// MaxUsernameLen matches the server's username buffer.
	MaxUsernameLen = 20
	// RoomCodeLen is the fixed length of a private room code.
	RoomCodeLen = 6
)

var (
	ErrEmptyUsername   = errors.New("username must not be empty")
	ErrUsernameTooLong = errors.New("username must be at most 20 characters")
	ErrUsernameInvalid = errors.New("username contains unprintable characters")
	ErrRoomCodeLength  = errors.New("room code must be exactly 6 characters")
	ErrRoomCodeInvalid = errors.New("room code must be letters and digits only")
)

// Username checks a display name and returns the trimmed form.
func Username(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrEmptyUsername
	}
	if len([]rune(trimmed)) > MaxUsernameLen {
		return "", ErrUsernameTooLong
	}
	for _, r := range trimmed {
		if !unicode.IsPrint(r) {
			return "", ErrUsernameInvalid
		}
	}
	return trimmed, nil
}

// RoomCode checks a private room code and returns it uppercased, the form
// the server issues codes in.
func RoomCode(code string) (string, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if len(trimmed) != RoomCodeLen {
		return "", ErrRoomCodeLength
	}
	for _, r := range trimmed {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return "", ErrRoomCodeInvalid
		}
	}
	return trimmed, nil
}
