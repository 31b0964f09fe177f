package domain

const (
	CenterWeight      int64 = 4
	FourWeight        int64 = 100
	ThreeOpenWeight   int64 = 10
	TwoOpenWeight     int64 = 2
	OpponentThreeOpen int64 = -80 // blocking outweighs building
)

// StaticScore is the heuristic value of the position for piece: a bonus
// for each of its pieces in the center column plus the pattern score of
// every window. Only useful for comparing sibling positions.
func (b *Board) StaticScore(piece Piece) int64 {
	var score int64

	for r := 0; r < Rows; r++ {
		if b.grid[r][CenterColumn] == piece {
			score += CenterWeight
		}
	}

	opponent := piece.Opponent()
	for _, w := range windows {
		score += b.scoreWindow(w, piece, opponent)
	}
	return score
}

func (b *Board) scoreWindow(w window, piece, opponent Piece) int64 {
	own, opp, empty := 0, 0, 0
	for _, c := range w {
		switch b.grid[c.row][c.col] {
		case piece:
			own++
		case opponent:
			opp++
		default:
			empty++
		}
	}

	switch {
	case own == 4:
		return FourWeight
	case own == 3 && empty == 1:
		return ThreeOpenWeight
	case own == 2 && empty == 2:
		return TwoOpenWeight
	case opp == 3 && empty == 1:
		return OpponentThreeOpen
	}
	return 0
}
