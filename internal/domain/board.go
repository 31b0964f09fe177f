package domain

import (
	"fmt"
	"strings"
)

// Board is a 6x7 Connect Four grid. Row 0 is the top, row 5 the bottom;
// pieces stack from the bottom row upward. Board is a plain value, so
// copying it (or comparing two with ==) works on the full state.
type Board struct {
	grid [Rows][Columns]Piece
}

func NewBoard() *Board {
	return &Board{}
}

// BoardFromRows builds a board from six strings of seven characters each,
// top row first. '.' is empty, 'X'/'1' is Player1 and 'O'/'2' is Player2.
// Positions with a piece above an empty cell are rejected.
func BoardFromRows(rows []string) (*Board, error) {
	if len(rows) != Rows {
		return nil, fmt.Errorf("expected %d rows, got %d: %w", Rows, len(rows), ErrInvalidRow)
	}

	b := NewBoard()
	for r, line := range rows {
		if len(line) != Columns {
			return nil, fmt.Errorf("row %d has %d cells: %w", r, len(line), ErrInvalidColumn)
		}
		for c := 0; c < Columns; c++ {
			switch line[c] {
			case '.', ' ', '0':
				b.grid[r][c] = Empty
			case 'X', 'x', '1', 'A':
				b.grid[r][c] = Player1
			case 'O', 'o', '2', 'B':
				b.grid[r][c] = Player2
			default:
				return nil, fmt.Errorf("row %d column %d: unknown cell %q: %w", r, c, line[c], ErrInvalidPiece)
			}
		}
	}

	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows-1; r++ {
			if b.grid[r][c] != Empty && b.grid[r+1][c] == Empty {
				return nil, fmt.Errorf("row %d column %d: %w", r, c, ErrFloatingPiece)
			}
		}
	}
	return b, nil
}

// BoardFromInts is the inverse of Ints, used for archived positions.
func BoardFromInts(cells [][]int) (*Board, error) {
	rows := make([]string, len(cells))
	for r, line := range cells {
		var sb strings.Builder
		for _, v := range line {
			switch Piece(v) {
			case Empty:
				sb.WriteByte('.')
			case Player1:
				sb.WriteByte('X')
			case Player2:
				sb.WriteByte('O')
			default:
				return nil, fmt.Errorf("row %d: unknown cell value %d: %w", r, v, ErrInvalidPiece)
			}
		}
		rows[r] = sb.String()
	}
	return BoardFromRows(rows)
}

func checkColumn(col int) error {
	if col < 0 || col >= Columns {
		return fmt.Errorf("column %d: %w", col, ErrInvalidColumn)
	}
	return nil
}

func checkCell(row, col int) error {
	if err := checkColumn(col); err != nil {
		return err
	}
	if row < 0 || row >= Rows {
		return fmt.Errorf("row %d: %w", row, ErrInvalidRow)
	}
	return nil
}

// Cell returns the piece at (row, col). Out of range cells read as Empty.
func (b *Board) Cell(row, col int) Piece {
	if checkCell(row, col) != nil {
		return Empty
	}
	return b.grid[row][col]
}

// IsColumnOpen reports whether the top cell of col is empty.
func (b *Board) IsColumnOpen(col int) (bool, error) {
	if err := checkColumn(col); err != nil {
		return false, err
	}
	return b.grid[0][col] == Empty, nil
}

// NextOpenRow returns the lowest empty row of col, scanning up from the
// bottom. A full column yields ErrColumnFull.
func (b *Board) NextOpenRow(col int) (int, error) {
	if err := checkColumn(col); err != nil {
		return -1, err
	}
	for row := Rows - 1; row >= 0; row-- {
		if b.grid[row][col] == Empty {
			return row, nil
		}
	}
	return -1, fmt.Errorf("column %d: %w", col, ErrColumnFull)
}

// DropPiece writes piece into (row, col). It does not check gravity or
// whether the cell is free; callers pick the row with NextOpenRow.
func (b *Board) DropPiece(row, col int, piece Piece) error {
	if err := checkCell(row, col); err != nil {
		return err
	}
	if !piece.IsPlayer() {
		return ErrInvalidPiece
	}
	b.grid[row][col] = piece
	return nil
}

// UndoPiece clears (row, col), reverting a DropPiece.
func (b *Board) UndoPiece(row, col int) error {
	if err := checkCell(row, col); err != nil {
		return err
	}
	b.grid[row][col] = Empty
	return nil
}

// Play drops piece into col under gravity and returns the row it landed on.
func (b *Board) Play(col int, piece Piece) (int, error) {
	row, err := b.NextOpenRow(col)
	if err != nil {
		return -1, err
	}
	if err := b.DropPiece(row, col, piece); err != nil {
		return -1, err
	}
	return row, nil
}

// LegalColumns lists the open columns in ascending order. An empty result
// means the board is full.
func (b *Board) LegalColumns() []int {
	cols := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.grid[0][col] == Empty {
			cols = append(cols, col)
		}
	}
	return cols
}

func (b *Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if b.grid[0][col] == Empty {
			return false
		}
	}
	return true
}

// IsTerminal is true once either side has four in a row or no column is open.
func (b *Board) IsTerminal() bool {
	return b.HasWinningLine(Player1) || b.HasWinningLine(Player2) || b.IsFull()
}

func (b *Board) PieceCount() int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if b.grid[r][c] != Empty {
				n++
			}
		}
	}
	return n
}

// Clone returns an independent copy for use by another goroutine.
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

// Key is a 42 character encoding of the grid, top row first.
func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(Rows * Columns)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			sb.WriteByte('0' + byte(b.grid[r][c]))
		}
	}
	return sb.String()
}

// Ints converts the grid to the [][]int shape used by the archive and
// the spectator feed.
func (b *Board) Ints() [][]int {
	out := make([][]int, Rows)
	for r := range out {
		out[r] = make([]int, Columns)
		for c := 0; c < Columns; c++ {
			out[r][c] = int(b.grid[r][c])
		}
	}
	return out
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			switch b.grid[r][c] {
			case Player1:
				sb.WriteByte('X')
			case Player2:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		if r < Rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
