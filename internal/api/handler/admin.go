package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/cards10e/laquiniela247/internal/api/request"
	"github.com/cards10e/laquiniela247/internal/api/response"
	"github.com/cards10e/laquiniela247/internal/services/account"
	"github.com/cards10e/laquiniela247/internal/services/maintenance"
	"github.com/cards10e/laquiniela247/internal/services/pool"
	"github.com/cards10e/laquiniela247/internal/storage"
)

// AdminHandler handles the administrative endpoints
type AdminHandler struct {
	poolController *pool.Controller
	engine         *maintenance.Engine
	accountService *account.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(poolController *pool.Controller, engine *maintenance.Engine, accountService *account.Service) *AdminHandler {
	return &AdminHandler{
		poolController: poolController,
		engine:         engine,
		accountService: accountService,
	}
}

// CreateWeek handles POST /api/v1/admin/weeks
func (h *AdminHandler) CreateWeek(w http.ResponseWriter, r *http.Request) {
	var req request.CreateWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.WeekNumber <= 0 {
		WriteError(w, NewInvalidRequestError("week_number must be positive"))
		return
	}

	week, err := h.poolController.CreateWeek(r.Context(), req.WeekNumber)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.WeekFromModel(week))
}

// ScheduleGame handles POST /api/v1/admin/games
func (h *AdminHandler) ScheduleGame(w http.ResponseWriter, r *http.Request) {
	var req request.ScheduleGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.WeekNumber <= 0 {
		WriteError(w, NewInvalidRequestError("week_number must be positive"))
		return
	}
	if req.HomeTeam == "" || req.AwayTeam == "" {
		WriteError(w, NewInvalidRequestError("home_team and away_team are required"))
		return
	}

	matchDate, err := parseTime(req.MatchDate)
	if err != nil {
		WriteError(w, NewInvalidRequestError("match_date must be RFC 3339 or YYYY-MM-DD"))
		return
	}

	game, err := h.poolController.ScheduleGame(r.Context(), req.WeekNumber, req.HomeTeam, req.AwayTeam, matchDate)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(game))
}

// PurgeWeek handles DELETE /api/v1/admin/weeks/{number}
func (h *AdminHandler) PurgeWeek(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("week number must be an integer"))
		return
	}

	result, err := h.engine.PurgeWeek(r.Context(), number)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.WeekPurgeFromResult(result))
}

// PurgeGames handles POST /api/v1/admin/games/purge
func (h *AdminHandler) PurgeGames(w http.ResponseWriter, r *http.Request) {
	var req request.PurgeGamesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	criteria := storage.GameCriteria{
		MinWeekNumber: req.MinWeekNumber,
	}
	if req.CreatedSince != nil {
		since, err := parseTime(*req.CreatedSince)
		if err != nil {
			WriteError(w, NewInvalidRequestError("created_since must be RFC 3339 or YYYY-MM-DD"))
			return
		}
		criteria.CreatedSince = &since
	}

	result, err := h.engine.PurgeGamesByCriteria(r.Context(), criteria)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamePurgeFromResult(result))
}

// Users handles GET /api/v1/admin/users
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	entries, err := h.accountService.Directory(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DirectoryFromEntries(entries))
}

// parseTime accepts RFC 3339 timestamps or bare dates
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
