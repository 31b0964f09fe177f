package domain

type cell struct{ row, col int }

// window is four coaxial cells that together form a potential line.
type window [ToWin]cell

// every horizontal, vertical, down-right and up-right window on the board
var windows = buildWindows()

func buildWindows() []window {
	var out []window
	add := func(row, col, dRow, dCol int) {
		var w window
		for i := 0; i < ToWin; i++ {
			w[i] = cell{row + i*dRow, col + i*dCol}
		}
		out = append(out, w)
	}

	// horizontal
	for r := 0; r < Rows; r++ {
		for c := 0; c <= Columns-ToWin; c++ {
			add(r, c, 0, 1)
		}
	}
	// vertical
	for c := 0; c < Columns; c++ {
		for r := 0; r <= Rows-ToWin; r++ {
			add(r, c, 1, 0)
		}
	}
	// diagonal \ going down the board
	for r := 0; r <= Rows-ToWin; r++ {
		for c := 0; c <= Columns-ToWin; c++ {
			add(r, c, 1, 1)
		}
	}
	// diagonal / going up the board
	for r := ToWin - 1; r < Rows; r++ {
		for c := 0; c <= Columns-ToWin; c++ {
			add(r, c, -1, 1)
		}
	}
	return out
}

// HasWinningLine scans the whole board for four consecutive cells of piece.
func (b *Board) HasWinningLine(piece Piece) bool {
	if !piece.IsPlayer() {
		return false
	}
	for _, w := range windows {
		if b.grid[w[0].row][w[0].col] == piece &&
			b.grid[w[1].row][w[1].col] == piece &&
			b.grid[w[2].row][w[2].col] == piece &&
			b.grid[w[3].row][w[3].col] == piece {
			return true
		}
	}
	return false
}

// WinsThrough only checks the lines passing through (row, col), which is
// all that can change after a single move.
func (b *Board) WinsThrough(row, col int, piece Piece) bool {
	if checkCell(row, col) != nil || !piece.IsPlayer() {
		return false
	}

	directions := [][2]int{
		{0, 1},  // horizontal
		{1, 0},  // vertical
		{1, 1},  // diagonal \
		{-1, 1}, // diagonal /
	}
	for _, dir := range directions {
		total := 1 +
			b.countInDirection(row, col, dir[0], dir[1], piece) +
			b.countInDirection(row, col, -dir[0], -dir[1], piece)
		if total >= ToWin {
			return true
		}
	}
	return false
}

// this counts the consecutive pieces after (row, col) in one direction
func (b *Board) countInDirection(row, col, dRow, dCol int, piece Piece) int {
	count := 0
	r, c := row+dRow, col+dCol
	for r >= 0 && r < Rows && c >= 0 && c < Columns && b.grid[r][c] == piece {
		count++
		r += dRow
		c += dCol
	}
	return count
}
