package domain

// Game tracks whose turn it is and how the game ended on top of a Board.
type Game struct {
	Board         *Board
	CurrentPlayer Piece
	Status        GameStatus
	Winner        Piece
	MoveCount     int
	Moves         []int // columns in play order
}

func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: Player1,
		Status:        StatusActive,
		Winner:        Empty,
	}
}

// MakeMove drops the current player's piece into column and updates the
// status. It returns the row the piece landed on.
func (g *Game) MakeMove(player Piece, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameFinished
	}
	if player != g.CurrentPlayer {
		return -1, ErrNotYourTurn
	}

	row, err := g.Board.Play(column, player)
	if err != nil {
		return -1, err
	}

	g.MoveCount++
	g.Moves = append(g.Moves, column)

	if g.Board.WinsThrough(row, column, player) {
		g.Status = StatusWon
		g.Winner = player
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = player.Opponent()
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
