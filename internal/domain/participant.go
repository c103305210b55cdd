// Package domain contains entities without logic, just meta-data
package domain

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxDisplayNameLen is counted in runes, not bytes.
const MaxDisplayNameLen = 36

var (
	ErrNameEmpty     = errors.New("display name empty")
	ErrNameTooLong   = errors.New("display name too long")
	ErrNameTaken     = errors.New("display name taken")
	ErrAlreadyJoined = errors.New("connection already joined")
)

// ConnID identifies one live connection until it disconnects.
type ConnID string

// DisplayName is the only identity other users ever see.
type DisplayName string

type Participant struct {
	ID   ConnID      `json:"id"`
	Name DisplayName `json:"name"`
}

func NewConnID() ConnID {
	return ConnID(uuid.NewString())
}

// ParseDisplayName trims surrounding whitespace and checks length in runes.
// Matching between names stays case-sensitive.
func ParseDisplayName(raw string) (DisplayName, error) {
	name := strings.TrimSpace(raw)
	if len(name) == 0 {
		return "", ErrNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxDisplayNameLen {
		return "", ErrNameTooLong
	}
	return DisplayName(name), nil
}
