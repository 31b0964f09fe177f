package bot

import (
	"fmt"
	"strings"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	DefaultDepth = 3
)

const ErrUnknownDifficulty domain.Error = "unknown difficulty"

// DepthForDifficulty maps a difficulty name to a search depth
func DepthForDifficulty(difficulty string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case DifficultyEasy:
		return 1, nil
	case DifficultyMedium:
		return 2, nil
	case DifficultyHard:
		return 4, nil
	case "":
		return DefaultDepth, nil
	default:
		return 0, fmt.Errorf("%q: %w", difficulty, ErrUnknownDifficulty)
	}
}
