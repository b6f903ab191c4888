package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Player is one connected participant in a room. Role stays empty until the
// host starts the game and is never rewritten afterwards.
type Player struct {
	ID      uuid.UUID
	Name    string
	Role    Role
	IsAlive bool
}

// NightActions holds the in-progress night's submissions. Everything except
// NurseSelfHealUsed resets at the start of every night.
type NightActions struct {
	MafiaTarget       uuid.UUID
	NurseTarget       uuid.UUID
	DetectiveTarget   uuid.UUID
	NurseSelfHealUsed bool
}

// Room is the unit of isolation: no state is shared across rooms, and all
// mutation of a room goes through its mutex so two intents never interleave
// their read-modify-write of Phase/Night.
type Room struct {
	mu sync.Mutex

	Code    string
	HostID  uuid.UUID
	Players map[uuid.UUID]*Player
	Phase   Phase
	Night   NightActions
	Round   int
	Winner  Winner

	lastActive time.Time
}

func newRoom(code string, hostID uuid.UUID) *Room {
	return &Room{
		Code:       code,
		HostID:     hostID,
		Players:    make(map[uuid.UUID]*Player),
		Phase:      PhaseLobby,
		Round:      1,
		lastActive: time.Now(),
	}
}

// playerIDs returns the playing participants. Caller holds the room lock.
func (r *Room) playerIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Players))
	for id := range r.Players {
		ids = append(ids, id)
	}
	return ids
}

// participantIDs is the broadcast recipient set: every player plus the host
// device, which drives phases and plays the audio cues without being a player.
func (r *Room) participantIDs() []uuid.UUID {
	ids := r.playerIDs()
	if _, playing := r.Players[r.HostID]; !playing {
		ids = append(ids, r.HostID)
	}
	return ids
}

// aliveCounts tallies living mafia and living non-mafia players.
func (r *Room) aliveCounts() (mafia, others int) {
	for _, p := range r.Players {
		if !p.IsAlive {
			continue
		}
		if p.Role == RoleMafia {
			mafia++
		} else {
			others++
		}
	}
	return mafia, others
}

// resetNight clears the night's submissions. The nurse's one-shot flag is the
// single field that survives, enforcing the game-lifetime self-heal limit.
func (r *Room) resetNight() {
	used := r.Night.NurseSelfHealUsed
	r.Night = NightActions{NurseSelfHealUsed: used}
}

func (r *Room) playersPayload() []map[string]any {
	out := make([]map[string]any, 0, len(r.Players))
	for _, p := range r.Players {
		// roles are deliberately absent here, they travel point-to-point only
		out = append(out, map[string]any{
			"id":      p.ID.String(),
			"name":    p.Name,
			"isAlive": p.IsAlive,
		})
	}
	return out
}
