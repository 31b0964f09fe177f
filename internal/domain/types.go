package domain

// Piece is the content of a single board cell.
type Piece int8

const (
	Empty   Piece = 0
	Player1 Piece = 1 // moves first, rendered as X
	Player2 Piece = 2 // rendered as O
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4

	// CenterColumn is the column the heuristic rewards holding.
	CenterColumn = Columns / 2
)

// Opponent returns the other player. Empty has no opponent and maps to Empty.
func (p Piece) Opponent() Piece {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return Empty
	}
}

func (p Piece) IsPlayer() bool {
	return p == Player1 || p == Player2
}

// Symbol is the single character used when drawing the board.
func (p Piece) Symbol() string {
	switch p {
	case Player1:
		return "X"
	case Player2:
		return "O"
	default:
		return " "
	}
}

func (p Piece) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	default:
		return "empty"
	}
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// invalid arguments
	ErrInvalidColumn Error = "column out of range"
	ErrInvalidRow    Error = "row out of range"
	ErrInvalidPiece  Error = "piece must be player1 or player2"
	ErrFloatingPiece Error = "piece has an empty cell below it"

	// not found
	ErrColumnFull Error = "column is full"

	// invalid state
	ErrGameFinished Error = "game is already finished"
	ErrNotYourTurn  Error = "not your turn"
)
