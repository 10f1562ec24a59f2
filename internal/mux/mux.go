package mux

import (
	"context"
	"holdem-server/internal/jwt"
	"holdem-server/pkg/db"
	"holdem-server/pkg/room"
	"net/http"
	"strconv"
	"strings"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxPlayerIDKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
	store   db.Store

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
// The pit boss must already be on shift.
func NewMux(version string, pitBoss *room.PitBoss, store db.Store) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		store:   store,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodGet).Path("/table/{id:[A-Za-z0-9_-]{1,32}}").Handler(this.getTableID())
	}

	// requires bearer authorization
	{
		r := this.authRouter
		r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidUserID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerIDKey, id)
		w.Header().Set("Holdem-UserID", strconv.FormatInt(id, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
