package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cards10e/laquiniela247/internal/api"
	"github.com/cards10e/laquiniela247/internal/api/response"
	"github.com/cards10e/laquiniela247/internal/factory"
	"github.com/cards10e/laquiniela247/internal/model"
	"github.com/cards10e/laquiniela247/internal/services/auth"
	"github.com/cards10e/laquiniela247/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
	auth    *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with a real clock
	app, err := factory.New(factory.Config{
		AuthConfig: auth.Config{
			SessionDuration: time.Hour,
			HashCost:        bcrypt.MinCost,
		},
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		AuthService:       app.AuthService,
		PoolController:    app.PoolController,
		MaintenanceEngine: app.MaintenanceEngine,
		AccountService:    app.AccountService,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
		auth:    app.AuthService,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	// Register
	registerBody := map[string]string{
		"email":      "alice@example.com",
		"password":   "secret123",
		"first_name": "Alice",
		"last_name":  "Lopez",
	}
	rr := ts.request(http.MethodPost, "/api/v1/auth/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &registerResp)
	require.NoError(t, err)
	assert.Equal(t, "Alice Lopez", registerResp.User.DisplayName)
	assert.Equal(t, "user", registerResp.User.Role)
	assert.NotEmpty(t, registerResp.SessionToken)

	// Registering the same email again conflicts
	rr = ts.request(http.MethodPost, "/api/v1/auth/register", registerBody, "")
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Login
	loginBody := map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	}
	rr = ts.request(http.MethodPost, "/api/v1/auth/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	err = json.Unmarshal(rr.Body.Bytes(), &loginResp)
	require.NoError(t, err)
	assert.Equal(t, registerResp.User.ID, loginResp.User.ID)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)

	token := registerUser(t, ts, "bob@example.com", "Bob", "Smith")

	rr := ts.request(http.MethodGet, "/api/v1/auth/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var meResp response.User
	err := json.Unmarshal(rr.Body.Bytes(), &meResp)
	require.NoError(t, err)
	assert.Equal(t, "Bob Smith", meResp.DisplayName)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	ts := newTestServer(t)

	token := registerUser(t, ts, "bob@example.com", "Bob", "")

	rr := ts.request(http.MethodPost, "/api/v1/auth/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/weeks", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/bets", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	ts := newTestServer(t)

	userToken := registerUser(t, ts, "alice@example.com", "Alice", "")

	body := map[string]int{"week_number": 12}
	rr := ts.request(http.MethodPost, "/api/v1/admin/weeks", body, userToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/admin/users", nil, userToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	adminToken := seedAdmin(t, ts, "admin@example.com")
	rr = ts.request(http.MethodPost, "/api/v1/admin/weeks", body, adminToken)
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestAdminBlockedFromBetting(t *testing.T) {
	ts := newTestServer(t)

	adminToken := seedAdmin(t, ts, "admin@example.com")
	createWeek(t, ts, adminToken, 12)
	gameID := scheduleGame(t, ts, adminToken, 12, "America", "Chivas")

	body := map[string]string{"game_id": gameID, "prediction": "home"}
	rr := ts.request(http.MethodPost, "/api/v1/bets", body, adminToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestWeeksAndGamesListing(t *testing.T) {
	ts := newTestServer(t)

	adminToken := seedAdmin(t, ts, "admin@example.com")
	createWeek(t, ts, adminToken, 12)
	scheduleGame(t, ts, adminToken, 12, "America", "Chivas")
	scheduleGame(t, ts, adminToken, 12, "Cruz Azul", "Pumas")

	userToken := registerUser(t, ts, "alice@example.com", "Alice", "")

	rr := ts.request(http.MethodGet, "/api/v1/weeks", nil, userToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var weeks []response.Week
	err := json.Unmarshal(rr.Body.Bytes(), &weeks)
	require.NoError(t, err)
	require.Len(t, weeks, 1)
	assert.Equal(t, 12, weeks[0].WeekNumber)

	rr = ts.request(http.MethodGet, "/api/v1/weeks/12/games", nil, userToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var games []response.Game
	err = json.Unmarshal(rr.Body.Bytes(), &games)
	require.NoError(t, err)
	assert.Len(t, games, 2)

	rr = ts.request(http.MethodGet, "/api/v1/weeks/99/games", nil, userToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPlaceAndListBets(t *testing.T) {
	ts := newTestServer(t)

	adminToken := seedAdmin(t, ts, "admin@example.com")
	createWeek(t, ts, adminToken, 12)
	gameID := scheduleGame(t, ts, adminToken, 12, "America", "Chivas")

	userToken := registerUser(t, ts, "alice@example.com", "Alice", "")

	body := map[string]string{"game_id": gameID, "prediction": "home"}
	rr := ts.request(http.MethodPost, "/api/v1/bets", body, userToken)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var bet response.Bet
	err := json.Unmarshal(rr.Body.Bytes(), &bet)
	require.NoError(t, err)
	assert.Equal(t, gameID, bet.GameID)
	assert.Equal(t, "home", bet.Prediction)
	assert.NotEmpty(t, bet.WeekID)

	// Second bet on the same game conflicts
	rr = ts.request(http.MethodPost, "/api/v1/bets", body, userToken)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Invalid prediction is rejected
	badBody := map[string]string{"game_id": gameID, "prediction": "maybe"}
	rr = ts.request(http.MethodPost, "/api/v1/bets", badBody, userToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/bets", nil, userToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var bets []response.Bet
	err = json.Unmarshal(rr.Body.Bytes(), &bets)
	require.NoError(t, err)
	assert.Len(t, bets, 1)
}

func TestPurgeWeekEndpoint(t *testing.T) {
	ts := newTestServer(t)

	adminToken := seedAdmin(t, ts, "admin@example.com")
	createWeek(t, ts, adminToken, 12)
	gameID := scheduleGame(t, ts, adminToken, 12, "America", "Chivas")

	userToken := registerUser(t, ts, "alice@example.com", "Alice", "")
	body := map[string]string{"game_id": gameID, "prediction": "home"}
	rr := ts.request(http.MethodPost, "/api/v1/bets", body, userToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/admin/weeks/12", nil, adminToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var purge response.WeekPurgeResponse
	err := json.Unmarshal(rr.Body.Bytes(), &purge)
	require.NoError(t, err)
	assert.True(t, purge.Found)
	assert.Equal(t, 1, purge.BetsDeleted)
	assert.Equal(t, 1, purge.GamesDeleted)
	assert.Equal(t, 1, purge.WeeksDeleted)

	// Purging an absent week is a benign no-op
	rr = ts.request(http.MethodDelete, "/api/v1/admin/weeks/12", nil, adminToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	err = json.Unmarshal(rr.Body.Bytes(), &purge)
	require.NoError(t, err)
	assert.False(t, purge.Found)
}

func TestPurgeGamesEndpoint(t *testing.T) {
	ts := newTestServer(t)

	adminToken := seedAdmin(t, ts, "admin@example.com")
	createWeek(t, ts, adminToken, 12)
	createWeek(t, ts, adminToken, 13)
	scheduleGame(t, ts, adminToken, 12, "America", "Chivas")
	scheduleGame(t, ts, adminToken, 13, "Cruz Azul", "Pumas")

	// Empty criteria is refused
	rr := ts.request(http.MethodPost, "/api/v1/admin/games/purge", map[string]any{}, adminToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	body := map[string]any{"min_week_number": 13}
	rr = ts.request(http.MethodPost, "/api/v1/admin/games/purge", body, adminToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var purge response.GamePurgeResponse
	err := json.Unmarshal(rr.Body.Bytes(), &purge)
	require.NoError(t, err)
	assert.Equal(t, 1, purge.Matched)
	assert.Equal(t, 1, purge.GamesDeleted)
}

func TestUserDirectoryEndpoint(t *testing.T) {
	ts := newTestServer(t)

	adminToken := seedAdmin(t, ts, "admin@example.com")
	registerUser(t, ts, "alice@example.com", "Alice", "Lopez")

	rr := ts.request(http.MethodGet, "/api/v1/admin/users", nil, adminToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var entries []response.DirectoryEntry
	err := json.Unmarshal(rr.Body.Bytes(), &entries)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

// Helper functions

func registerUser(t *testing.T, ts *testServer, email, firstName, lastName string) string {
	t.Helper()

	body := map[string]string{
		"email":      email,
		"password":   "secret123",
		"first_name": firstName,
		"last_name":  lastName,
	}
	rr := ts.request(http.MethodPost, "/api/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	return resp.SessionToken
}

// seedAdmin creates an admin directly in storage and logs them in. Admin
// accounts are never created through the register endpoint.
func seedAdmin(t *testing.T, ts *testServer, email string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.MinCost)
	require.NoError(t, err)

	err = ts.storage.SaveUser(context.Background(), &model.User{
		ID:           "admin-1",
		Email:        email,
		Role:         model.RoleAdmin,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)

	session, err := ts.auth.Login(context.Background(), email, "adminpass")
	require.NoError(t, err)
	return session.Token
}

func createWeek(t *testing.T, ts *testServer, token string, number int) {
	t.Helper()

	body := map[string]int{"week_number": number}
	rr := ts.request(http.MethodPost, "/api/v1/admin/weeks", body, token)
	require.Equal(t, http.StatusCreated, rr.Code)
}

func scheduleGame(t *testing.T, ts *testServer, token string, week int, home, away string) string {
	t.Helper()

	body := map[string]any{
		"week_number": week,
		"home_team":   home,
		"away_team":   away,
		"match_date":  "2024-03-16T19:00:00Z",
	}
	rr := ts.request(http.MethodPost, "/api/v1/admin/games", body, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Game
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp.ID
}
