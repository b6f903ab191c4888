package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/knog12/mafia-final/internal/api"
	"github.com/knog12/mafia-final/internal/auth"
	"github.com/knog12/mafia-final/internal/core"
	database "github.com/knog12/mafia-final/internal/db"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg := core.LoadConfig()
	auth.Init(cfg.JWTSecret)

	if err := database.Init(cfg.DBPath); err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	hub := api.NewHub()
	engine := core.NewEngine(cfg, hub)
	engine.SetRecorder(database.Store{})
	engine.Rooms().StartReaper(cfg.ReapInterval)

	api.Serve(cfg, engine, hub)
}
