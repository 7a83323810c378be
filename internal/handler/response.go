// Package handler provides the HTTP JSON handlers of the game server.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"sugoroku/internal/game/dice"
	"sugoroku/internal/game/montyhall"
	"sugoroku/internal/game/prob"
	"sugoroku/internal/game/slot"
	"sugoroku/internal/game/sugoroku"
	"sugoroku/internal/pkg/lock"
	"sugoroku/internal/service"
)

// ErrBadRequest marks a request body or query that could not be parsed.
var ErrBadRequest = errors.New("bad request")

// userErrors are caller mistakes reported with 400.
var userErrors = []error{
	ErrBadRequest,
	service.ErrNoActiveGame,
	service.ErrInvalidPlayerCount,
	sugoroku.ErrInvalidChoice,
	sugoroku.ErrNoSelectionPending,
	sugoroku.ErrNoMazeSession,
	sugoroku.ErrNoMontyHallSession,
	sugoroku.ErrUnknownLayout,
	sugoroku.ErrOutOfRange,
	sugoroku.ErrInvalidBoard,
	slot.ErrNoActiveSlotRound,
	slot.ErrSlotRoundExhausted,
	slot.ErrInvalidSlotChoice,
	prob.ErrInvalidDistribution,
	dice.ErrInvalidFace,
	montyhall.ErrWrongPhase,
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, sugoroku.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, lock.ErrLockTimeout),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

type messageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("Failed to write response")
	}
}

// WriteMessage writes {"message": msg}.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, messageResponse{Message: msg})
}

// WriteError writes err as {"message": ...} with the mapped status. Internal
// errors are logged and hidden from the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Request failed")
		WriteMessage(w, status, http.StatusText(status))
		return
	}
	WriteMessage(w, status, err.Error())
}

// decodeJSON reads the request body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}
