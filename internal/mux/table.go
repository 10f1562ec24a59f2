package mux

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type tableResponse struct {
	TableID       string    `json:"tableId"`
	TournamentID  string    `json:"tournamentId,omitempty"`
	SmallBlind    int       `json:"smallBlind"`
	BigBlind      int       `json:"bigBlind"`
	StartingStack int       `json:"startingStack"`
	HasPassword   bool      `json:"hasPassword"`
	Created       time.Time `json:"created"`
}

func (m *Mux) getTableID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := m.store.LoadTableConfig(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, tableResponse{
			TableID:       cfg.TableID,
			TournamentID:  cfg.TournamentID,
			SmallBlind:    cfg.SmallBlind,
			BigBlind:      cfg.BigBlind,
			StartingStack: cfg.StartingStack,
			HasPassword:   cfg.PasswordHash != "",
			Created:       cfg.Created,
		})
	}
}
