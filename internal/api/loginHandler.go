package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/knog12/mafia-final/internal/auth"
	database "github.com/knog12/mafia-final/internal/db"
)

type LoginRequest struct {
	Name  string
	Token string
}

type LoginResponse struct {
	UserId string
	Token  string
}

// LoginHandler issues a fresh identity for new players or verifies a token a
// returning client still holds.
func (a *API) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var loginRequest LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginRequest); err != nil {
		errorResponse(w)
		return
	}

	if len(loginRequest.Token) == 0 {
		if len(loginRequest.Name) == 0 {
			errorResponse(w)
			return
		}

		id, err := uuid.NewUUID()
		if err != nil {
			errorResponse(w)
			return
		}

		if database.Db != nil {
			if err := database.SavePlayer(id, loginRequest.Name); err != nil {
				log.Err(err).Msg("Failed to save player")
			}
		}

		token, err := auth.GenerateToken(id)
		if err != nil {
			errorResponse(w)
			return
		}

		okResponse(id, token, w)
		return
	}

	id, err := auth.CheckToken(loginRequest.Token)
	if err != nil {
		errorResponse(w)
		return
	}

	okResponse(id, loginRequest.Token, w)
}

func okResponse(playerId uuid.UUID, token string, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	payload := LoginResponse{playerId.String(), token}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		return
	}
}

func errorResponse(w http.ResponseWriter) {
	w.WriteHeader(http.StatusBadRequest)
}
