package response

import (
	"time"

	"github.com/cards10e/laquiniela247/internal/model"
	"github.com/cards10e/laquiniela247/internal/services/account"
	"github.com/cards10e/laquiniela247/internal/services/auth"
	"github.com/cards10e/laquiniela247/internal/services/maintenance"
)

// User represents a user in API responses. The password hash never leaves
// the model layer.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:          string(u.ID),
		DisplayName: u.DisplayName(),
		Email:       u.Email,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		User:         UserFromModel(&s.User),
		SessionToken: s.Token,
	}
}

// Week represents a week in API responses
type Week struct {
	ID         string    `json:"id"`
	WeekNumber int       `json:"week_number"`
	CreatedAt  time.Time `json:"created_at"`
}

// WeekFromModel converts model.Week
func WeekFromModel(w *model.Week) Week {
	return Week{
		ID:         string(w.ID),
		WeekNumber: w.WeekNumber,
		CreatedAt:  w.CreatedAt,
	}
}

// Game represents a game in API responses
type Game struct {
	ID         string    `json:"id"`
	WeekNumber int       `json:"week_number"`
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	MatchDate  time.Time `json:"match_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// GameFromModel converts model.Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:         string(g.ID),
		WeekNumber: g.WeekNumber,
		HomeTeam:   g.HomeTeam,
		AwayTeam:   g.AwayTeam,
		MatchDate:  g.MatchDate,
		CreatedAt:  g.CreatedAt,
	}
}

// Bet represents a bet in API responses
type Bet struct {
	ID         string    `json:"id"`
	GameID     string    `json:"game_id"`
	WeekID     string    `json:"week_id"`
	UserID     string    `json:"user_id"`
	Prediction string    `json:"prediction"`
	CreatedAt  time.Time `json:"created_at"`
}

// BetFromModel converts model.Bet
func BetFromModel(b *model.Bet) Bet {
	return Bet{
		ID:         string(b.ID),
		GameID:     string(b.GameID),
		WeekID:     string(b.WeekID),
		UserID:     string(b.UserID),
		Prediction: string(b.Prediction),
		CreatedAt:  b.CreatedAt,
	}
}

// DirectoryEntry represents one row of the user directory report
type DirectoryEntry struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// DirectoryFromEntries converts account directory entries
func DirectoryFromEntries(entries []account.DirectoryEntry) []DirectoryEntry {
	out := make([]DirectoryEntry, len(entries))
	for i, e := range entries {
		out[i] = DirectoryEntry{
			ID:          string(e.ID),
			DisplayName: e.DisplayName,
			Email:       e.Email,
			Role:        string(e.Role),
			CreatedAt:   e.CreatedAt,
		}
	}
	return out
}

// GamePurgeResponse is the response for the criteria purge
type GamePurgeResponse struct {
	Matched      int `json:"matched"`
	BetsDeleted  int `json:"bets_deleted"`
	GamesDeleted int `json:"games_deleted"`
}

// GamePurgeFromResult converts a maintenance.GamePurgeResult
func GamePurgeFromResult(r *maintenance.GamePurgeResult) GamePurgeResponse {
	return GamePurgeResponse{
		Matched:      len(r.Matched),
		BetsDeleted:  r.BetsDeleted,
		GamesDeleted: r.GamesDeleted,
	}
}

// WeekPurgeResponse is the response for a week purge
type WeekPurgeResponse struct {
	Found        bool `json:"found"`
	WeekNumber   int  `json:"week_number"`
	BetsDeleted  int  `json:"bets_deleted"`
	GamesDeleted int  `json:"games_deleted"`
	WeeksDeleted int  `json:"weeks_deleted"`
}

// WeekPurgeFromResult converts a maintenance.WeekPurgeResult
func WeekPurgeFromResult(r *maintenance.WeekPurgeResult) WeekPurgeResponse {
	return WeekPurgeResponse{
		Found:        r.Found,
		WeekNumber:   r.WeekNumber,
		BetsDeleted:  r.BetsDeleted,
		GamesDeleted: r.GamesDeleted,
		WeeksDeleted: r.WeeksDeleted,
	}
}
