package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/cards10e/laquiniela247/internal/api/middleware"
	"github.com/cards10e/laquiniela247/internal/api/request"
	"github.com/cards10e/laquiniela247/internal/api/response"
	"github.com/cards10e/laquiniela247/internal/model"
	"github.com/cards10e/laquiniela247/internal/services/pool"
)

// PoolHandler handles week, game and bet endpoints
type PoolHandler struct {
	controller *pool.Controller
}

// NewPoolHandler creates a new pool handler
func NewPoolHandler(controller *pool.Controller) *PoolHandler {
	return &PoolHandler{
		controller: controller,
	}
}

// ListWeeks handles GET /api/v1/weeks
func (h *PoolHandler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	weeks, err := h.controller.ListWeeks(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Week, len(weeks))
	for i, week := range weeks {
		out[i] = response.WeekFromModel(week)
	}
	response.JSON(w, http.StatusOK, out)
}

// ListGames handles GET /api/v1/weeks/{number}/games
func (h *PoolHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("week number must be an integer"))
		return
	}

	games, err := h.controller.ListGamesByWeek(r.Context(), number)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Game, len(games))
	for i, game := range games {
		out[i] = response.GameFromModel(game)
	}
	response.JSON(w, http.StatusOK, out)
}

// PlaceBet handles POST /api/v1/bets
func (h *PoolHandler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	var req request.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.GameID == "" {
		WriteError(w, NewInvalidRequestError("game_id is required"))
		return
	}

	user := middleware.MustGetUser(r.Context())
	bet, err := h.controller.PlaceBet(r.Context(), user.ID, model.GameID(req.GameID), model.Prediction(req.Prediction))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.BetFromModel(bet))
}

// ListBets handles GET /api/v1/bets
func (h *PoolHandler) ListBets(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	bets, err := h.controller.ListBetsByUser(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Bet, len(bets))
	for i, bet := range bets {
		out[i] = response.BetFromModel(bet)
	}
	response.JSON(w, http.StatusOK, out)
}
