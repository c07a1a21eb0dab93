package registry

import (
	"sync"
	"time"

	"github.com/peerplay/gamehub-backend/internal/entity"
)

// Verdict is the outcome of a join claim, decided atomically under the
// registry lock before any durable round-trip.
type Verdict int

const (
	// SeatedFirst - the caller claimed seat 0 of a new (or finished) room.
	SeatedFirst Verdict = iota
	// SeatedSecond - the caller claimed seat 1; the match can start.
	SeatedSecond
	// AlreadyWaiting - seat 0 resubmitted its join; no state change.
	AlreadyWaiting
	// Resume - the room is full and the caller is one of its players.
	Resume
	// Rejected - the room is full and the caller is a stranger.
	Rejected
)

// Entry mirrors the player-claim subset of a session so the server can
// answer "who owns this room" without waiting on the durable store.
type Entry struct {
	Players  []string
	GameType entity.GameType
	Finished bool
	Touched  time.Time
}

// Registry is the ephemeral, process-local room table. It is the ordering
// point for the two-player join race: Claim mutates it synchronously on
// message receipt, ahead of the durable store.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Entry
	now   func() time.Time
}

func New() *Registry {
	return &Registry{
		rooms: make(map[string]*Entry),
		now:   time.Now,
	}
}

// Claim resolves one join request against the room table and returns the
// caller's verdict. A finished room is treated as brand new.
func (that *Registry) Claim(roomID, userID string, gameType entity.GameType) Verdict {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.rooms[roomID]
	if !ok || entry.Finished {
		that.rooms[roomID] = &Entry{
			Players:  []string{userID},
			GameType: gameType,
			Touched:  that.now(),
		}

		return SeatedFirst
	}

	entry.Touched = that.now()

	if len(entry.Players) >= entity.MaxSeats {
		for _, id := range entry.Players {
			if id == userID {
				return Resume
			}
		}

		return Rejected
	}

	if entry.Players[0] == userID {
		return AlreadyWaiting
	}

	entry.Players = append(entry.Players, userID)

	return SeatedSecond
}

// Finish marks the room terminal; the next Claim recreates it.
func (that *Registry) Finish(roomID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if entry, ok := that.rooms[roomID]; ok {
		entry.Finished = true
		entry.Touched = that.now()
	}
}

// Reseed replaces the room with a fresh entry holding only userID at seat 0.
func (that *Registry) Reseed(roomID, userID string, gameType entity.GameType) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.rooms[roomID] = &Entry{
		Players:  []string{userID},
		GameType: gameType,
		Touched:  that.now(),
	}
}

// Reap evicts rooms untouched for longer than ttl and returns how many were
// dropped. The janitor calls this so abandoned rooms do not pile up.
func (that *Registry) Reap(ttl time.Duration) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	cutoff := that.now().Add(-ttl)

	reaped := 0
	for roomID, entry := range that.rooms {
		if entry.Touched.Before(cutoff) {
			delete(that.rooms, roomID)
			reaped++
		}
	}

	return reaped
}

func (that *Registry) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.rooms)
}

// Snapshot returns a copy of the room's entry for inspection.
func (that *Registry) Snapshot(roomID string) (Entry, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.rooms[roomID]
	if !ok {
		return Entry{}, false
	}

	snapshot := *entry
	snapshot.Players = append([]string(nil), entry.Players...)

	return snapshot, true
}
