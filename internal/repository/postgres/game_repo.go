package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// SaveGame archives a finished game. Saving the same game twice keeps the
// newest result.
func (r *GameRepo) SaveGame(ctx context.Context, rec *domain.GameRecord) error {
	movesJSON, err := json.Marshal(rec.Moves)
	if err != nil {
		return fmt.Errorf("failed to marshal moves: %w", err)
	}
	boardJSON, err := json.Marshal(rec.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO engine_games (game_id, mode, player1_name, player2_name, winner, outcome, total_moves, moves, board_state, started_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (game_id) DO UPDATE SET
		winner = EXCLUDED.winner,
		outcome = EXCLUDED.outcome,
		total_moves = EXCLUDED.total_moves,
		moves = EXCLUDED.moves,
		board_state = EXCLUDED.board_state,
		finished_at = EXCLUDED.finished_at;
	`
	_, err = tx.ExecContext(ctx, query,
		rec.GameID, rec.Mode, rec.Player1Name, rec.Player2Name, int(rec.Winner), rec.Outcome,
		rec.TotalMoves(), string(movesJSON), string(boardJSON), rec.StartedAt, rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const selectGame = `
	SELECT game_id, mode, player1_name, player2_name, winner, outcome,
	       moves, board_state, started_at, finished_at
	FROM engine_games`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGame(row rowScanner) (*domain.GameRecord, error) {
	var rec domain.GameRecord
	var winner int
	var movesJSON, boardJSON []byte

	err := row.Scan(
		&rec.GameID,
		&rec.Mode,
		&rec.Player1Name,
		&rec.Player2Name,
		&winner,
		&rec.Outcome,
		&movesJSON,
		&boardJSON,
		&rec.StartedAt,
		&rec.FinishedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Winner = domain.Piece(winner)

	if err := json.Unmarshal(movesJSON, &rec.Moves); err != nil {
		return nil, fmt.Errorf("failed to unmarshal moves: %w", err)
	}
	if boardJSON != nil {
		if err := json.Unmarshal(boardJSON, &rec.Board); err != nil {
			return nil, fmt.Errorf("failed to unmarshal board state: %w", err)
		}
	}
	return &rec, nil
}

// GetGame returns nil, nil when the game is not archived.
func (r *GameRepo) GetGame(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	rec, err := scanGame(r.DB.QueryRowContext(ctx, selectGame+` WHERE game_id = $1;`, gameID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}
	return rec, nil
}

// RecentGames lists the newest archived games first.
func (r *GameRepo) RecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.DB.QueryContext(ctx, selectGame+` ORDER BY finished_at DESC LIMIT $1;`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %w", err)
	}
	defer rows.Close()

	var games []domain.GameRecord
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, *rec)
	}
	return games, rows.Err()
}

// PruneGames deletes games that finished before now minus olderThan.
func (r *GameRepo) PruneGames(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res, err := r.DB.ExecContext(ctx, `DELETE FROM engine_games WHERE finished_at < $1;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune games: %w", err)
	}
	return res.RowsAffected()
}
