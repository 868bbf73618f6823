package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe/transport/rest"
)

// Handler - routes for the page, the move form, the JSON state and its live feed.
func (that *View) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", that.index)
	r.Post("/move", that.move)
	r.Get("/state", that.stateJSON)
	r.Get("/ws", that.live)
	r.Get("/ping", rest.PingHandler)

	return r
}

func (that *View) index(w http.ResponseWriter, _ *http.Request) {
	log := that.logger.With("method", "index")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, that.Snapshot()); err != nil {
		log.Error("failed to render page", "error", err)
	}
}

func (that *View) move(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "move")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if that.Snapshot().Over {
		http.Error(w, "game is over", http.StatusConflict)
		return
	}

	row, column := r.PostFormValue("row"), r.PostFormValue("column")
	if err := that.submit(r.Context(), row, column); err != nil {
		log.Warn("move not accepted", "row", row, "column", column, "error", err)

		if errors.Is(err, ErrNoGameWaiting) {
			http.Error(w, "no game is waiting for a move", http.StatusServiceUnavailable)
			return
		}

		http.Error(w, "move timed out", http.StatusGatewayTimeout)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *View) stateJSON(w http.ResponseWriter, _ *http.Request) {
	log := that.logger.With("method", "state")

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(that.Snapshot()); err != nil {
		log.Error("failed to encode state", "error", err)
	}
}
