package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateGameID returns 16 random bytes as hex. If the system randomness
// source fails it falls back to a timestamp based ID so a game can still
// be archived.
func GenerateGameID() string {
	id, err := NewGameID()
	if err != nil {
		return fmt.Sprintf("game-%x", time.Now().UnixNano())
	}
	return id
}

func NewGameID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate game ID: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
