package chess

import "github.com/peerplay/gamehub-backend/internal/entity"

var (
	rookDirs   = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	royalDirs  = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightHops = [][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

// PseudoMoves generates the movement pattern for the piece on (r, c) without
// filtering for self-check. enPassant is the square of the enemy pawn that
// just advanced two ranks, if any.
//
// Castling requires only that the squares between king and rook are empty
// and that both pieces sit on their home squares; there is deliberately no
// check-safety test on the transit squares.
func PseudoMoves(board entity.ChessBoard, r, c int, enPassant *entity.Square) []entity.Square {
	piece := board[r][c]
	if piece == "" {
		return nil
	}

	color := colorOf(piece)
	enemy := Opponent(color)

	var moves []entity.Square

	isEmpty := func(r, c int) bool {
		return inBounds(r, c) && board[r][c] == ""
	}
	isEnemy := func(r, c int) bool {
		return inBounds(r, c) && colorOf(board[r][c]) == enemy
	}

	slide := func(dirs [][2]int) {
		for _, dir := range dirs {
			nr, nc := r+dir[0], c+dir[1]
			for inBounds(nr, nc) {
				if board[nr][nc] != "" {
					if isEnemy(nr, nc) {
						moves = append(moves, entity.Square{nr, nc})
					}
					break
				}

				moves = append(moves, entity.Square{nr, nc})
				nr += dir[0]
				nc += dir[1]
			}
		}
	}

	switch typeOf(piece) {
	case "P":
		dir := 1
		startRow := 1
		if color == White {
			dir = -1
			startRow = 6
		}

		if isEmpty(r+dir, c) {
			moves = append(moves, entity.Square{r + dir, c})
			if r == startRow && isEmpty(r+2*dir, c) {
				moves = append(moves, entity.Square{r + 2*dir, c})
			}
		}

		for _, dc := range [2]int{-1, 1} {
			if isEnemy(r+dir, c+dc) {
				moves = append(moves, entity.Square{r + dir, c + dc})
			}

			if enPassant != nil && enPassant[0] == r && enPassant[1] == c+dc {
				moves = append(moves, entity.Square{r + dir, c + dc})
			}
		}
	case "R":
		slide(rookDirs)
	case "B":
		slide(bishopDirs)
	case "Q":
		slide(royalDirs)
	case "N":
		for _, hop := range knightHops {
			nr, nc := r+hop[0], c+hop[1]
			if inBounds(nr, nc) && colorOf(board[nr][nc]) != color {
				moves = append(moves, entity.Square{nr, nc})
			}
		}
	case "K":
		for _, dir := range royalDirs {
			nr, nc := r+dir[0], c+dir[1]
			if inBounds(nr, nc) && colorOf(board[nr][nc]) != color {
				moves = append(moves, entity.Square{nr, nc})
			}
		}

		homeRow := 0
		if color == White {
			homeRow = 7
		}

		if r == homeRow && c == 4 {
			if board[homeRow][5] == "" && board[homeRow][6] == "" && board[homeRow][7] == color+"R" {
				moves = append(moves, entity.Square{homeRow, 6})
			}
			if board[homeRow][3] == "" && board[homeRow][2] == "" && board[homeRow][1] == "" && board[homeRow][0] == color+"R" {
				moves = append(moves, entity.Square{homeRow, 2})
			}
		}
	}

	return moves
}

// IsKingInCheck reports whether color's king is attacked in this position.
func IsKingInCheck(board entity.ChessBoard, color string) bool {
	var king entity.Square

	found := false
	for r := 0; r < 8 && !found; r++ {
		for c := 0; c < 8; c++ {
			if board[r][c] == color+"K" {
				king = entity.Square{r, c}
				found = true
				break
			}
		}
	}

	if !found {
		return false
	}

	enemy := Opponent(color)
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if colorOf(board[r][c]) != enemy {
				continue
			}

			for _, move := range PseudoMoves(board, r, c, nil) {
				if move == king {
					return true
				}
			}
		}
	}

	return false
}

// LegalMoves simulates each candidate on a scratch board and discards any
// move that leaves the mover's own king in check.
func LegalMoves(board entity.ChessBoard, r, c int, enPassant *entity.Square) []entity.Square {
	color := colorOf(board[r][c])

	var legal []entity.Square
	for _, move := range PseudoMoves(board, r, c, enPassant) {
		scratch := Apply(board, entity.Square{r, c}, move)
		if !IsKingInCheck(scratch, color) {
			legal = append(legal, move)
		}
	}

	return legal
}

// HasAnyLegalMove reports whether any piece of color has a legal move.
func HasAnyLegalMove(board entity.ChessBoard, color string, enPassant *entity.Square) bool {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if colorOf(board[r][c]) != color {
				continue
			}

			if len(LegalMoves(board, r, c, enPassant)) > 0 {
				return true
			}
		}
	}

	return false
}

// IsCheckmate: king in check and no legal move by any piece of that color
// yields a position where the king is safe.
func IsCheckmate(board entity.ChessBoard, color string, enPassant *entity.Square) bool {
	return IsKingInCheck(board, color) && !HasAnyLegalMove(board, color, enPassant)
}
