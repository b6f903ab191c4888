package entities

import (
	"time"

	"github.com/google/uuid"
)

// Player is the account row written at login. Room membership and roles are
// in-memory only and never stored.
type Player struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
}
