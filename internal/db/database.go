package database

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/knog12/mafia-final/internal/core"
	"github.com/knog12/mafia-final/internal/entities"
)

var Db *gorm.DB

func Init(path string) error {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&entities.Player{}); err != nil {
		log.Error().Msg("Impossible to migrate Player table")
		return err
	}
	if err := db.AutoMigrate(&entities.Match{}); err != nil {
		log.Error().Msg("Impossible to migrate Match table")
		return err
	}

	Db = db
	log.Info().Str("path", path).Msg("DB Init finished")
	return nil
}

// SavePlayer upserts the account row for a logged-in player.
func SavePlayer(id uuid.UUID, name string) error {
	player := entities.Player{ID: id, Name: name}
	return Db.Save(&player).Error
}

// Store adapts the database to the engine's MatchRecorder.
type Store struct{}

func (Store) RecordMatch(roomCode string, winner core.Winner, rounds, playerCount int) error {
	match := entities.Match{
		RoomCode:    roomCode,
		Winner:      string(winner),
		Rounds:      rounds,
		PlayerCount: playerCount,
	}
	return Db.Create(&match).Error
}
