package validate

import (
	"errors"
	"testing"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"simple", "Alice", "Alice", nil},
		{"trims whitespace", "  Bob  ", "Bob", nil},
		{"empty", "", "", ErrEmptyUsername},
		{"whitespace only", "   ", "", ErrEmptyUsername},
		{"max length ok", "abcdefghijklmnopqrst", "abcdefghijklmnopqrst", nil},
		{"too long", "abcdefghijklmnopqrstu", "", ErrUsernameTooLong},
		{"control character", "Al\x01ce", "", ErrUsernameInvalid},
		{"unicode ok", "Zoë", "Zoë", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Username(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRoomCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"valid", "AB12CD", "AB12CD", nil},
		{"lowercased input", "ab12cd", "AB12CD", nil},
		{"trims whitespace", " AB12CD ", "AB12CD", nil},
		{"too short", "AB12", "", ErrRoomCodeLength},
		{"too long", "AB12CDE", "", ErrRoomCodeLength},
		{"empty", "", "", ErrRoomCodeLength},
		{"punctuation", "AB-2CD", "", ErrRoomCodeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RoomCode(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
