package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/knog12/mafia-final/internal/auth"
	"github.com/knog12/mafia-final/internal/core"
)

var ws = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type API struct {
	engine *core.Engine
	hub    *Hub
	cfg    core.Config
}

func New(cfg core.Config, engine *core.Engine, hub *Hub) *API {
	return &API{engine: engine, hub: hub, cfg: cfg}
}

func (a *API) WsHandler(w http.ResponseWriter, r *http.Request) {
	playerId, err := auth.CheckToken(r.URL.Query().Get("token"))
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	socket, err := ws.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer socket.Close()

	a.hub.Register(playerId, socket)
	defer a.hub.Unregister(playerId)

	for {
		_, bytes, err := socket.ReadMessage()
		if err != nil {
			break
		}

		var msg map[string]interface{}
		if err := json.Unmarshal(bytes, &msg); err != nil {
			a.hub.SendTo(playerId, core.ErrorEvent(errors.New("malformed message")))
			continue
		}

		a.dispatch(playerId, msg)
	}

	a.engine.Disconnect(playerId)
	log.Debug().Str("player", playerId.String()).Msg("Conn destroyed")
}

// dispatch routes one inbound intent to the engine. Rejections come back as
// an error event to the sender only; other participants observe nothing.
func (a *API) dispatch(playerId uuid.UUID, msg map[string]interface{}) {
	msgType, _ := msg["type"].(string)
	roomId, _ := msg["roomId"].(string)

	var err error
	switch msgType {
	case "create_room":
		_, err = a.engine.CreateRoom(playerId)

	case "join_room":
		name, ok := msg["name"].(string)
		if !ok || name == "" {
			err = errors.New("no player name")
			break
		}
		err = a.engine.JoinRoom(roomId, playerId, name)

	case "start_game":
		err = a.engine.StartGame(roomId, playerId)

	case "next_phase":
		err = a.engine.NextPhase(roomId, playerId)

	case "mafia_vote":
		err = a.withTarget(msg, func(target uuid.UUID) error {
			return a.engine.MafiaVote(roomId, playerId, target)
		})

	case "nurse_action":
		err = a.withTarget(msg, func(target uuid.UUID) error {
			return a.engine.NurseAction(roomId, playerId, target)
		})

	case "detective_action":
		err = a.withTarget(msg, func(target uuid.UUID) error {
			return a.engine.DetectiveAction(roomId, playerId, target)
		})

	case "host_kill":
		err = a.withTarget(msg, func(target uuid.UUID) error {
			return a.engine.HostKill(roomId, playerId, target)
		})

	case "host_skip":
		err = a.engine.HostSkip(roomId, playerId)

	default:
		err = errors.New("unknown message type")
	}

	if err != nil {
		a.hub.SendTo(playerId, core.ErrorEvent(err))
	}
}

func (a *API) withTarget(msg map[string]interface{}, fn func(uuid.UUID) error) error {
	raw, _ := msg["targetId"].(string)
	target, err := uuid.Parse(raw)
	if err != nil {
		return errors.New("invalid target id")
	}
	return fn(target)
}
