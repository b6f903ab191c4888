package entities

import "time"

// Match is the history row appended once per finished game.
type Match struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	RoomCode    string
	Winner      string
	Rounds      int
	PlayerCount int
}
