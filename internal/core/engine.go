package core

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MatchRecorder persists finished games. Live room state is never persisted.
type MatchRecorder interface {
	RecordMatch(roomCode string, winner Winner, rounds, playerCount int) error
}

// Engine validates inbound intents against room state, mutates rooms under
// their per-room lock, and emits notifications through the Broadcaster.
type Engine struct {
	cfg      Config
	rooms    *Registry
	cast     Broadcaster
	rng      *rand.Rand
	recorder MatchRecorder
}

func NewEngine(cfg Config, cast Broadcaster) *Engine {
	return &Engine{
		cfg:   cfg,
		rooms: NewRegistry(cfg.RoomTTL),
		cast:  cast,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRecorder attaches optional match-history persistence.
func (e *Engine) SetRecorder(rec MatchRecorder) { e.recorder = rec }

// Rooms exposes the registry so the process can run the idle reaper.
func (e *Engine) Rooms() *Registry { return e.rooms }

// withRoom resolves the room and runs fn under its lock. Every intent and
// every fired continuation goes through here, which is what makes the
// per-room single-writer guarantee hold.
func (e *Engine) withRoom(code string, fn func(*Room) error) error {
	room, err := e.rooms.Get(code)
	if err != nil {
		return err
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	room.lastActive = time.Now()
	return fn(room)
}

// scheduleAdvance runs fn against the room after the configured delay, giving
// connected clients time to finish the audio cue for the phase that just
// ended. The continuation re-validates existence and phase when it fires: a
// reaped room or a room that moved on is left alone. A zero delay runs
// synchronously.
func (e *Engine) scheduleAdvance(code string, from Phase, fn func(*Room)) {
	run := func() {
		room, err := e.rooms.Get(code)
		if err != nil {
			return
		}
		room.mu.Lock()
		defer room.mu.Unlock()
		if room.Winner != "" || room.Phase != from {
			return
		}
		fn(room)
	}
	if e.cfg.PhaseDelay <= 0 {
		run()
		return
	}
	time.AfterFunc(e.cfg.PhaseDelay, run)
}

func (e *Engine) CreateRoom(hostID uuid.UUID) (string, error) {
	room, err := e.rooms.Create(hostID)
	if err != nil {
		return "", err
	}
	log.Info().Str("room", room.Code).Str("host", hostID.String()).Msg("Room created")
	e.cast.SendTo(hostID, Event{Type: EventRoomCreated, Data: map[string]any{"roomId": room.Code}})
	return room.Code, nil
}

func (e *Engine) JoinRoom(code string, playerID uuid.UUID, name string) error {
	return e.withRoom(code, func(r *Room) error {
		if r.Phase != PhaseLobby {
			return ErrInvalidPhase
		}
		if _, ok := r.Players[playerID]; !ok {
			r.Players[playerID] = &Player{ID: playerID, Name: name, IsAlive: true}
		}
		e.cast.SendToAll(r.participantIDs(), Event{
			Type: EventPlayerJoined,
			Data: map[string]any{"players": r.playersPayload()},
		})
		return nil
	})
}

func (e *Engine) StartGame(code string, senderID uuid.UUID) error {
	return e.withRoom(code, func(r *Room) error {
		if senderID != r.HostID {
			return ErrUnauthorized
		}
		if r.Phase != PhaseLobby {
			return ErrInvalidPhase
		}
		n := len(r.Players)
		min := e.cfg.MinPlayers
		if floor := mafiaCountFor(n) + 2; min < floor {
			min = floor
		}
		if n < min {
			return fmt.Errorf("%w: need at least %d players", ErrRuleViolation, min)
		}

		roles := assignRoles(r.playerIDs(), e.rng)
		for id, role := range roles {
			r.Players[id].Role = role
		}
		r.Phase = PhaseNightIntro

		e.cast.SendToAll(r.participantIDs(), Event{
			Type: EventGameStarted,
			Data: map[string]any{"players": r.playersPayload(), "hostId": r.HostID.String()},
		})
		for id, role := range roles {
			e.cast.SendTo(id, Event{Type: EventRoleAssigned, Data: map[string]any{"role": string(role)}})
		}
		e.broadcastPhase(r, map[string]any{"round": r.Round})
		log.Info().Str("room", r.Code).Int("players", n).Msg("Game started")
		return nil
	})
}

// NextPhase advances host-driven transitions. The three interactive night
// phases only move off an accepted role action, so a host advance there is a
// silent no-op.
func (e *Engine) NextPhase(code string, senderID uuid.UUID) error {
	return e.withRoom(code, func(r *Room) error {
		if senderID != r.HostID {
			return ErrUnauthorized
		}
		if r.Winner != "" {
			return ErrInvalidPhase
		}
		switch r.Phase {
		case PhaseNightIntro:
			r.Phase = PhaseNightMafia
			e.broadcastPhase(r, nil)
		case PhaseNightMafia, PhaseNightNurse, PhaseNightDetective:
			// wait states
		case PhaseNightResult:
			r.Phase = PhaseDayDiscussion
			e.broadcastPhase(r, map[string]any{"discussionSeconds": e.cfg.DiscussionSeconds})
		case PhaseDayDiscussion:
			e.advanceNight(r)
		default:
			return ErrInvalidPhase
		}
		return nil
	})
}

// MafiaVote records the night's kill target. First submission wins; any later
// vote the same night, including from a second mafia member, is ignored
// without an error.
func (e *Engine) MafiaVote(code string, senderID, targetID uuid.UUID) error {
	accepted := false
	err := e.withRoom(code, func(r *Room) error {
		if r.Winner != "" || r.Phase != PhaseNightMafia {
			return ErrInvalidPhase
		}
		sender, ok := r.Players[senderID]
		if !ok || sender.Role != RoleMafia || !sender.IsAlive {
			return ErrUnauthorized
		}
		target, ok := r.Players[targetID]
		if !ok || !target.IsAlive {
			return fmt.Errorf("%w: invalid target", ErrRuleViolation)
		}
		if r.Night.MafiaTarget != uuid.Nil {
			return nil
		}
		r.Night.MafiaTarget = targetID
		e.cast.SendTo(senderID, Event{Type: EventMafiaConfirmed})
		accepted = true
		return nil
	})
	if err == nil && accepted {
		e.scheduleAdvance(code, PhaseNightMafia, func(r *Room) {
			r.Phase = PhaseNightNurse
			e.broadcastPhase(r, nil)
		})
	}
	return err
}

func (e *Engine) NurseAction(code string, senderID, targetID uuid.UUID) error {
	accepted := false
	err := e.withRoom(code, func(r *Room) error {
		if r.Winner != "" || r.Phase != PhaseNightNurse {
			return ErrInvalidPhase
		}
		sender, ok := r.Players[senderID]
		if !ok || sender.Role != RoleNurse || !sender.IsAlive {
			return ErrUnauthorized
		}
		target, ok := r.Players[targetID]
		if !ok || !target.IsAlive {
			return fmt.Errorf("%w: invalid target", ErrRuleViolation)
		}
		if r.Night.NurseTarget != uuid.Nil {
			return nil
		}
		if targetID == senderID {
			if r.Night.NurseSelfHealUsed {
				return ErrSelfHealUsed
			}
			r.Night.NurseSelfHealUsed = true
		}
		r.Night.NurseTarget = targetID
		e.cast.SendTo(senderID, Event{Type: EventNurseConfirmed})
		accepted = true
		return nil
	})
	if err == nil && accepted {
		e.scheduleAdvance(code, PhaseNightNurse, func(r *Room) {
			r.Phase = PhaseNightDetective
			e.broadcastPhase(r, nil)
		})
	}
	return err
}

// DetectiveAction reveals the target's role to the detective alone, then
// resolves the whole night after the delay.
func (e *Engine) DetectiveAction(code string, senderID, targetID uuid.UUID) error {
	accepted := false
	err := e.withRoom(code, func(r *Room) error {
		if r.Winner != "" || r.Phase != PhaseNightDetective {
			return ErrInvalidPhase
		}
		sender, ok := r.Players[senderID]
		if !ok || sender.Role != RoleDetective || !sender.IsAlive {
			return ErrUnauthorized
		}
		target, ok := r.Players[targetID]
		if !ok {
			return fmt.Errorf("%w: invalid target", ErrRuleViolation)
		}
		if r.Night.DetectiveTarget != uuid.Nil {
			return nil
		}
		r.Night.DetectiveTarget = targetID
		e.cast.SendTo(senderID, Event{
			Type: EventDetectiveResult,
			Data: map[string]any{"targetName": target.Name, "targetRole": string(target.Role)},
		})
		accepted = true
		return nil
	})
	if err == nil && accepted {
		e.scheduleAdvance(code, PhaseNightDetective, e.resolveNight)
	}
	return err
}

// resolveNight computes the night's outcome: the mafia target dies unless the
// nurse picked the same player. Caller holds the room lock.
func (e *Engine) resolveNight(r *Room) {
	victim := r.Night.MafiaTarget
	saved := victim != uuid.Nil && victim == r.Night.NurseTarget

	var victimID any
	if victim != uuid.Nil && !saved {
		if p, ok := r.Players[victim]; ok && p.IsAlive {
			p.IsAlive = false
			victimID = victim.String()
			e.cast.SendToAll(r.participantIDs(), Event{
				Type: EventPlayerKilled,
				Data: map[string]any{"playerId": victim.String()},
			})
		}
	}

	r.Phase = PhaseNightResult
	e.broadcastPhase(r, map[string]any{"victimId": victimID, "saved": saved})
	e.checkWin(r)
}

func (e *Engine) HostKill(code string, senderID, targetID uuid.UUID) error {
	return e.withRoom(code, func(r *Room) error {
		if senderID != r.HostID {
			return ErrUnauthorized
		}
		if r.Winner != "" || r.Phase != PhaseDayDiscussion {
			return ErrInvalidPhase
		}
		target, ok := r.Players[targetID]
		if !ok || !target.IsAlive {
			return fmt.Errorf("%w: invalid target", ErrRuleViolation)
		}
		target.IsAlive = false
		e.cast.SendToAll(r.participantIDs(), Event{
			Type: EventPlayerKilled,
			Data: map[string]any{"playerId": targetID.String()},
		})
		if e.checkWin(r) {
			return nil
		}
		e.advanceNight(r)
		return nil
	})
}

func (e *Engine) HostSkip(code string, senderID uuid.UUID) error {
	return e.withRoom(code, func(r *Room) error {
		if senderID != r.HostID {
			return ErrUnauthorized
		}
		if r.Winner != "" || r.Phase != PhaseDayDiscussion {
			return ErrInvalidPhase
		}
		e.advanceNight(r)
		return nil
	})
}

// Disconnect is logged only; the player stays in the room. Reconnection
// semantics are a future extension.
func (e *Engine) Disconnect(playerID uuid.UUID) {
	log.Info().Str("player", playerID.String()).Msg("Player disconnected")
}

// advanceNight starts the next night: bump the round, reset the night's
// submissions, loop back to the intro. Caller holds the room lock.
func (e *Engine) advanceNight(r *Room) {
	r.Round++
	r.resetNight()
	r.Phase = PhaseNightIntro
	e.broadcastPhase(r, map[string]any{"round": r.Round})
}

// checkWin evaluates the win condition and, the first time it holds, seals
// the room: the winner is set exactly once and no later transition runs.
func (e *Engine) checkWin(r *Room) bool {
	if r.Winner != "" {
		return true
	}
	m, c := r.aliveCounts()
	winner, over := EvaluateWinner(m, c)
	if !over {
		return false
	}
	r.Winner = winner
	e.cast.SendToAll(r.participantIDs(), Event{
		Type: EventGameOver,
		Data: map[string]any{"winner": string(winner)},
	})
	log.Info().Str("room", r.Code).Str("winner", string(winner)).Msg("Game over")
	if e.recorder != nil {
		if err := e.recorder.RecordMatch(r.Code, winner, r.Round, len(r.Players)); err != nil {
			log.Err(err).Str("room", r.Code).Msg("Failed to record match")
		}
	}
	return true
}

func (e *Engine) broadcastPhase(r *Room, extra map[string]any) {
	data := map[string]any{"phase": string(r.Phase)}
	for k, v := range extra {
		data[k] = v
	}
	e.cast.SendToAll(r.participantIDs(), Event{Type: EventPhaseChange, Data: data})
}
