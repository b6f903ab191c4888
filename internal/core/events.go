package core

import "github.com/google/uuid"

const (
	EventRoomCreated     = "room_created"
	EventPlayerJoined    = "player_joined"
	EventGameStarted     = "game_started"
	EventRoleAssigned    = "role_assigned"
	EventPhaseChange     = "phase_change"
	EventMafiaConfirmed  = "mafia_action_confirmed"
	EventNurseConfirmed  = "nurse_action_confirmed"
	EventDetectiveResult = "detective_result"
	EventPlayerKilled    = "player_killed"
	EventGameOver        = "game_over"
	EventError           = "error"
)

// Event is an outbound notification. Data keys are part of the client contract.
type Event struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Broadcaster is the transport the engine notifies participants through. The
// engine never sees transport specifics beyond "send this event to these ids";
// sends to ids with no live connection must be silent no-ops.
type Broadcaster interface {
	SendTo(playerID uuid.UUID, e Event)
	SendToAll(playerIDs []uuid.UUID, e Event)
}

// ErrorEvent wraps a rejection into the error notification sent back to the
// originating player only.
func ErrorEvent(err error) Event {
	return Event{Type: EventError, Data: map[string]any{"message": err.Error()}}
}
