package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"sugoroku/internal/service"
)

// RankingHandler serves the leaderboard of finished games.
type RankingHandler struct {
	ranking *service.RankingService
}

// NewRankingHandler creates a RankingHandler. A nil service means results are
// not being recorded.
func NewRankingHandler(ranking *service.RankingService) *RankingHandler {
	return &RankingHandler{ranking: ranking}
}

// Leaderboard handles GET /leaderboard?limit=n.
func (h *RankingHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if h.ranking == nil {
		WriteMessage(w, http.StatusServiceUnavailable, "leaderboard is disabled")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, r, fmt.Errorf("%w: limit must be a number", ErrBadRequest))
			return
		}
		limit = n
	}

	lb, err := h.ranking.Leaderboard(r.Context(), limit)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, lb)
}
