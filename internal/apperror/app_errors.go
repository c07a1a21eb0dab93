package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrColumnFull       = errors.New("column is already full")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrInvalidColumn    = errors.New("invalid column index")
	ErrInvalidMove      = errors.New("invalid move")
	ErrAlreadyCommitted = errors.New("move already submitted for this round")
	ErrNotInRoom        = errors.New("player is not seated in this room")
	ErrWrongGameType    = errors.New("move does not match the room's game type")
	ErrRoomFull         = errors.New("room already has two players")
	ErrRoomVanished     = errors.New("game room disappeared")
	ErrIllegalBoard     = errors.New("reported board is not reachable by a legal move")
)

// RuleViolations are the rejections the coordinator swallows silently:
// the caller learns the truth from the next broadcast, not from a reply.
var RuleViolations = []error{
	ErrGameFinished,
	ErrNotYourTurn,
	ErrCellOccupied,
	ErrColumnFull,
	ErrInvalidCell,
	ErrInvalidColumn,
	ErrInvalidMove,
	ErrAlreadyCommitted,
	ErrNotInRoom,
	ErrWrongGameType,
	ErrIllegalBoard,
}

// IsRuleViolation reports whether err is a silent-no-op rule rejection.
func IsRuleViolation(err error) bool {
	for _, rule := range RuleViolations {
		if errors.Is(err, rule) {
			return true
		}
	}

	return false
}
