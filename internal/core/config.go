package core

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime settings, read from MAFIA_-prefixed environment
// variables with sensible defaults.
type Config struct {
	Addr              string
	StaticDir         string
	DBPath            string
	JWTSecret         string
	PhaseDelay        time.Duration
	DiscussionSeconds int
	MinPlayers        int
	RoomTTL           time.Duration
	ReapInterval      time.Duration
}

func LoadConfig() Config {
	viper.SetDefault("addr", "0.0.0.0:8080")
	viper.SetDefault("static_dir", "./web")
	viper.SetDefault("db_path", "mafia.db")
	viper.SetDefault("jwt_secret", "secret-key")
	viper.SetDefault("phase_delay", 3*time.Second)
	viper.SetDefault("discussion_seconds", 105)
	viper.SetDefault("min_players", 4)
	viper.SetDefault("room_ttl", 2*time.Hour)
	viper.SetDefault("reap_interval", time.Minute)

	viper.SetEnvPrefix("mafia")
	viper.AutomaticEnv()

	return Config{
		Addr:              viper.GetString("addr"),
		StaticDir:         viper.GetString("static_dir"),
		DBPath:            viper.GetString("db_path"),
		JWTSecret:         viper.GetString("jwt_secret"),
		PhaseDelay:        viper.GetDuration("phase_delay"),
		DiscussionSeconds: viper.GetInt("discussion_seconds"),
		MinPlayers:        viper.GetInt("min_players"),
		RoomTTL:           viper.GetDuration("room_ttl"),
		ReapInterval:      viper.GetDuration("reap_interval"),
	}
}
