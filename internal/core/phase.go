package core

// Phase is the room's current step in the night/day cycle.
type Phase string

const (
	PhaseLobby          Phase = "LOBBY"
	PhaseNightIntro     Phase = "NIGHT_INTRO"
	PhaseNightMafia     Phase = "NIGHT_MAFIA"
	PhaseNightNurse     Phase = "NIGHT_NURSE"
	PhaseNightDetective Phase = "NIGHT_DETECTIVE"
	PhaseNightResult    Phase = "NIGHT_RESULT"
	PhaseDayDiscussion  Phase = "DAY_DISCUSSION"
)

// Role is a player's hidden role, assigned once when the host starts the game.
type Role string

const (
	RoleMafia     Role = "MAFIA"
	RoleDetective Role = "DETECTIVE"
	RoleNurse     Role = "NURSE"
	RoleCitizen   Role = "CITIZEN"
)

// Winner identifies the side that ended the game. Empty means still running.
type Winner string

const (
	WinnerCitizens Winner = "CITIZENS"
	WinnerMafia    Winner = "MAFIA"
)
