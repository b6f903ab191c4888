package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/knog12/mafia-final/internal/core"
)

// Router wires the login endpoint, the websocket endpoint, and the static
// client bundle.
func (a *API) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/login", a.LoginHandler).Methods(http.MethodPost)
	r.HandleFunc("/ws", a.WsHandler)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(a.cfg.StaticDir)))

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
	)
	return cors(r)
}

func Serve(cfg core.Config, engine *core.Engine, hub *Hub) {
	a := New(cfg, engine, hub)
	log.Info().Str("addr", cfg.Addr).Msg("Listening")
	log.Fatal().Err(http.ListenAndServe(cfg.Addr, a.Router())).Msg("Server stopped")
}
