package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmcvetta/randutil"
	"github.com/rs/zerolog/log"
)

// Room codes skip 0/O/1/I so they survive being read out loud.
const codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const codeLength = 5

// Registry owns the set of live rooms. The registry map is the only shared
// mutable resource in the process; individual rooms carry their own lock.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
	ttl   time.Duration
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{rooms: make(map[string]*Room), ttl: ttl}
}

// Create allocates a room with a fresh code, retrying on the (unlikely)
// collision with a live room.
func (reg *Registry) Create(hostID uuid.UUID) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for {
		code, err := randutil.String(codeLength, codeCharset)
		if err != nil {
			return nil, fmt.Errorf("generate room code: %w", err)
		}
		if _, taken := reg.rooms[code]; taken {
			continue
		}
		room := newRoom(code, hostID)
		reg.rooms[code] = room
		return room, nil
	}
}

// Get looks up a live room. Absence is a normal outcome, signaled as
// ErrRoomNotFound.
func (reg *Registry) Get(code string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, ok := reg.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Reap drops rooms idle longer than the TTL and returns how many were
// removed. Scheduled transitions targeting a reaped room no-op on lookup.
func (reg *Registry) Reap(now time.Time) int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	removed := 0
	for code, room := range reg.rooms {
		room.mu.Lock()
		idle := now.Sub(room.lastActive)
		room.mu.Unlock()
		if idle > reg.ttl {
			delete(reg.rooms, code)
			removed++
		}
	}
	return removed
}

// StartReaper runs Reap on a fixed interval for the life of the process.
func (reg *Registry) StartReaper(interval time.Duration) {
	go func() {
		for range time.Tick(interval) {
			if n := reg.Reap(time.Now()); n > 0 {
				log.Info().Int("rooms", n).Msg("Reaped idle rooms")
			}
		}
	}()
}
