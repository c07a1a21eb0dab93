package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/peerplay/gamehub-backend/internal/apperror"
	"github.com/peerplay/gamehub-backend/internal/entity"
	"github.com/peerplay/gamehub-backend/internal/game/chess"
	"github.com/peerplay/gamehub-backend/internal/game/connectfour"
	"github.com/peerplay/gamehub-backend/internal/game/rps"
	"github.com/peerplay/gamehub-backend/internal/game/tictactoe"
	"github.com/peerplay/gamehub-backend/internal/registry"
	"github.com/peerplay/gamehub-backend/internal/repository"
)

type sessionRepo interface {
	GetByRoom(ctx context.Context, roomID string) (*entity.Session, error)
	Create(ctx context.Context, session *entity.Session) error
	Update(ctx context.Context, roomID string, mutate func(*entity.Session) error) (*entity.Session, error)
	DeleteByRoom(ctx context.Context, roomID string) error
}

// Coordinator orchestrates join/reset/move requests against the registry
// and the durable store, and fans state transitions out to the room.
//
// Every operation for one room runs under that room's mutex, so no two
// mutators ever interleave on the same session; rooms stay independent of
// one another. Registry claims happen before any durable round-trip - the
// synchronous in-memory mutation is what resolves the two-player join race.
type Coordinator struct {
	logger   *slog.Logger
	sessions sessionRepo
	rooms    *registry.Registry
	fanout   Fanout

	// validateChess switches the chess relay from trusting peers to
	// replaying every reported board against the server engine.
	validateChess bool

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCoordinator(logger *slog.Logger, sessions sessionRepo, rooms *registry.Registry, fanout Fanout, validateChess bool) *Coordinator {
	return &Coordinator{
		logger:        logger.With("component", "coordinator"),
		sessions:      sessions,
		rooms:         rooms,
		fanout:        fanout,
		validateChess: validateChess,
		locks:         make(map[string]*sync.Mutex),
	}
}

func (that *Coordinator) roomLock(roomID string) *sync.Mutex {
	that.mu.Lock()
	defer that.mu.Unlock()

	lock, ok := that.locks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		that.locks[roomID] = lock
	}

	return lock
}

// Join seats the caller in the room. Both participants send this when they
// open the game page; the registry claim decides which seat (if any) the
// caller gets before the store is touched.
func (that *Coordinator) Join(ctx context.Context, roomID, userID string, gameType entity.GameType) error {
	log := that.logger.With("method", "Join", "roomID", roomID, "playerID", userID)

	lock := that.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	switch verdict := that.rooms.Claim(roomID, userID, gameType); verdict {
	case registry.SeatedFirst:
		return that.seatFirst(ctx, log, roomID, userID, gameType)

	case registry.AlreadyWaiting:
		// Idempotent resubmission from seat 0.
		that.fanout.ToUser(userID, EventWaiting, WaitingPayload{RoomID: roomID})
		return nil

	case registry.Resume:
		return that.resume(ctx, log, roomID, userID)

	case registry.SeatedSecond:
		return that.seatSecond(ctx, log, roomID, userID)

	case registry.Rejected:
		log.Debug("join rejected", "reason", apperror.ErrRoomFull)
		that.fanout.ToUser(userID, EventError, ErrorPayload{Message: "Room already has two players."})
		return nil

	default:
		return fmt.Errorf("unknown registry verdict: %d", verdict)
	}
}

// seatFirst discards any stale durable record and creates a fresh one with
// an empty board; the caller waits for an opponent.
func (that *Coordinator) seatFirst(ctx context.Context, log *slog.Logger, roomID, userID string, gameType entity.GameType) error {
	if err := that.sessions.DeleteByRoom(ctx, roomID); err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		log.Error("failed to discard stale session", "error", err)
	}

	session := entity.NewSession(roomID, gameType, userID)
	if err := that.sessions.Create(ctx, session); err != nil {
		that.fanout.ToUser(userID, EventError, ErrorPayload{Message: "Server error. Please refresh and try again."})
		return fmt.Errorf("failed to create session: %w", err)
	}

	log.Info("player 1 waiting")
	that.fanout.ToUser(userID, EventWaiting, WaitingPayload{RoomID: roomID})

	return nil
}

// resume replays the full match-started payload to a reconnecting
// participant of a full room; the opponent hears nothing.
func (that *Coordinator) resume(ctx context.Context, log *slog.Logger, roomID, userID string) error {
	session, err := that.sessions.GetByRoom(ctx, roomID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		log.Warn("no session to resume")
		return nil
	}

	if err != nil {
		that.fanout.ToUser(userID, EventError, ErrorPayload{Message: "Server error. Please refresh and try again."})
		return fmt.Errorf("failed to get session: %w", err)
	}

	that.fanout.ToUser(userID, EventStarted, startedPayload(session))

	return nil
}

// seatSecond appends the caller to the durable record and starts the match.
// A missing record here is terminal for the caller: the registry promised a
// room the store no longer has.
func (that *Coordinator) seatSecond(ctx context.Context, log *slog.Logger, roomID, userID string) error {
	session, err := that.sessions.Update(ctx, roomID, func(session *entity.Session) error {
		session.AddOpponent(userID)
		return nil
	})

	if errors.Is(err, repository.ErrSessionNotFound) {
		log.Warn("registry promised a room the store lost", "reason", apperror.ErrRoomVanished)
		that.fanout.ToUser(userID, EventError, ErrorPayload{Message: "Game room disappeared. Please refresh."})
		return nil
	}

	if err != nil {
		that.fanout.ToUser(userID, EventError, ErrorPayload{Message: "Server error. Please refresh and try again."})
		return fmt.Errorf("failed to seat second player: %w", err)
	}

	log.Info("match started", "players", len(session.Players))
	that.fanout.ToRoom(roomID, EventStarted, startedPayload(session))

	return nil
}

// Reset tears the match down and reseeds the room with only the resetting
// user at seat 0. The other occupant is told to rejoin, not disconnected.
func (that *Coordinator) Reset(ctx context.Context, roomID, userID string, gameType entity.GameType) error {
	log := that.logger.With("method", "Reset", "roomID", roomID)

	lock := that.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	that.rooms.Finish(roomID)

	if err := that.sessions.DeleteByRoom(ctx, roomID); err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		log.Error("failed to delete session", "error", err)
	}

	that.rooms.Reseed(roomID, userID, gameType)

	session := entity.NewSession(roomID, gameType, userID)
	if err := that.sessions.Create(ctx, session); err != nil {
		that.fanout.ToUser(userID, EventError, ErrorPayload{Message: "Server error. Please refresh and try again."})
		return fmt.Errorf("failed to recreate session: %w", err)
	}

	that.fanout.ToUser(userID, EventWaiting, WaitingPayload{RoomID: roomID})
	that.fanout.ToRoomExcept(roomID, userID, EventResetNotice, ResetNoticePayload{RoomID: roomID})

	log.Info("room reset")

	return nil
}

// PlaceMark folds a tic-tac-toe move into the session and broadcasts the
// outcome. Rule violations are silent no-ops: the caller learns the truth
// from the next broadcast.
func (that *Coordinator) PlaceMark(ctx context.Context, roomID, userID string, cell int) error {
	return that.applyMove(ctx, "PlaceMark", roomID, func(session *entity.Session) error {
		return tictactoe.Apply(session, userID, cell)
	})
}

// DropDisc folds a connect-four drop into the session and broadcasts the
// outcome.
func (that *Coordinator) DropDisc(ctx context.Context, roomID, userID string, column int) error {
	return that.applyMove(ctx, "DropDisc", roomID, func(session *entity.Session) error {
		return connectfour.Apply(session, userID, column)
	})
}

// applyMove runs a turn-based engine under the room lock and broadcasts
// either the updated board or the terminal result.
func (that *Coordinator) applyMove(ctx context.Context, method, roomID string, mutate func(*entity.Session) error) error {
	log := that.logger.With("method", method, "roomID", roomID)

	lock := that.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	session, err := that.sessions.Update(ctx, roomID, mutate)
	if handled, err := that.swallowRejection(log, roomID, err); handled {
		return err
	}

	if session.HasWinner() {
		that.rooms.Finish(roomID)
		that.fanout.ToRoom(roomID, EventGameOver, GameOverPayload{
			Winner: session.Winner,
			Board:  boardOf(session),
		})

		return nil
	}

	that.fanout.ToRoom(roomID, EventBoard, BoardPayload{
		Board: boardOf(session),
		Turn:  session.Turn,
	})

	return nil
}

// ThrowHand records a rock-paper-scissors move. Nothing is broadcast until
// the round resolves; there is no timeout-based resolution.
func (that *Coordinator) ThrowHand(ctx context.Context, roomID, userID, move string) error {
	log := that.logger.With("method", "ThrowHand", "roomID", roomID)

	lock := that.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	var result rps.RoundResult

	session, err := that.sessions.Update(ctx, roomID, func(session *entity.Session) error {
		var applyErr error
		result, applyErr = rps.Apply(session, userID, move)
		return applyErr
	})
	if handled, err := that.swallowRejection(log, roomID, err); handled {
		return err
	}

	if !result.Resolved {
		return nil
	}

	that.fanout.ToRoom(roomID, EventRoundResult, RoundResultPayload{
		Round: result.Round,
		Moves: map[string]string{
			session.Players[0]: result.Moves[0],
			session.Players[1]: result.Moves[1],
		},
		Winner: result.Winner,
		Scores: map[string]int{
			session.Players[0]: result.Scores[0],
			session.Players[1]: result.Scores[1],
		},
	})

	if result.GameOver {
		that.rooms.Finish(roomID)
		that.fanout.ToRoom(roomID, EventGameOver, GameOverPayload{Winner: session.Winner})
	}

	return nil
}

// RelayChessMove forwards a relayed chess position to the other occupant.
// In trusting-relay mode (the default) the payload is never inspected and
// the store is never touched - the peers are the rule authority, an
// acknowledged integrity gap. In validating mode the server replays the
// board against its own engine and drops positions no legal move produces.
func (that *Coordinator) RelayChessMove(ctx context.Context, roomID, userID string, relay ChessRelay) error {
	log := that.logger.With("method", "RelayChessMove", "roomID", roomID)

	lock := that.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	if that.validateChess {
		_, err := that.sessions.Update(ctx, roomID, func(session *entity.Session) error {
			return validateRelay(session, userID, relay)
		})
		if handled, err := that.swallowRejection(log, roomID, err); handled {
			return err
		}
	}

	that.fanout.ToRoomExcept(roomID, userID, EventChessMove, relay)

	return nil
}

// validateRelay is the validating-authority check: the mover must own the
// color to move and the reported position must be reachable by one legal
// move from the last accepted position.
func validateRelay(session *entity.Session, userID string, relay ChessRelay) error {
	if session.GameType != entity.TypeChess {
		return apperror.ErrWrongGameType
	}

	if session.HasWinner() {
		return apperror.ErrGameFinished
	}

	seat, seated := session.Seat(userID)
	if !seated {
		return apperror.ErrNotInRoom
	}

	prev := session.Chess
	if prev == nil {
		prev = &entity.ChessState{Board: chess.InitialBoard(), TurnColor: chess.White}
	}

	if chess.ColorForSeat(seat) != prev.TurnColor {
		return apperror.ErrNotYourTurn
	}

	next := entity.ChessState{
		Board:     relay.Board,
		TurnColor: relay.TurnColor,
		EnPassant: relay.EnPassant,
	}

	if err := chess.Validate(prev, &next); err != nil {
		return err
	}

	session.Chess = &next

	return nil
}

// ReportChessWinner records a checkmate a client signalled and relays it to
// the other occupant. Winner is write-once: a second report is ignored.
func (that *Coordinator) ReportChessWinner(ctx context.Context, roomID, userID, winner string) error {
	log := that.logger.With("method", "ReportChessWinner", "roomID", roomID)

	lock := that.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	that.rooms.Finish(roomID)

	_, err := that.sessions.Update(ctx, roomID, func(session *entity.Session) error {
		if !session.HasWinner() {
			session.Winner = winner
			session.Turn = ""
		}
		return nil
	})
	if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		log.Error("failed to record chess winner", "error", err)
	}

	that.fanout.ToRoomExcept(roomID, userID, EventChessOver, ChessOverPayload{Winner: winner})

	return nil
}

// swallowRejection centralizes the error contract for move operations:
// rule violations and missing sessions are silent no-ops (debug-logged),
// store failures emit an explicit error event to the room and propagate.
// handled is true when the caller should stop.
func (that *Coordinator) swallowRejection(log *slog.Logger, roomID string, err error) (bool, error) {
	if err == nil {
		return false, nil
	}

	if apperror.IsRuleViolation(err) || errors.Is(err, repository.ErrSessionNotFound) {
		log.Debug("move rejected", "reason", err)
		return true, nil
	}

	that.fanout.ToRoom(roomID, EventError, ErrorPayload{Message: "Server error. Please refresh and try again."})

	return true, fmt.Errorf("failed to apply move: %w", err)
}
