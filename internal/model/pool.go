package model

import "time"

// WeekID uniquely identifies a week record
type WeekID string

// GameID uniquely identifies a game
type GameID string

// BetID uniquely identifies a bet
type BetID string

// Week is a numbered scheduling period grouping a batch of games.
// At most one Week may exist per WeekNumber; duplicates are an
// anomaly that administrative purges must clean up.
type Week struct {
	ID         WeekID
	WeekNumber int
	CreatedAt  time.Time
}

// Game is a single match eligible for betting, scoped to one week.
// WeekNumber must reference an existing Week.
type Game struct {
	ID         GameID
	WeekNumber int
	HomeTeam   string
	AwayTeam   string
	MatchDate  time.Time
	CreatedAt  time.Time
}

// Prediction is a user's pick for a game outcome
type Prediction string

const (
	PredictHome Prediction = "home"
	PredictDraw Prediction = "draw"
	PredictAway Prediction = "away"
)

// ValidPrediction reports whether p is one of the three allowed outcomes
func ValidPrediction(p Prediction) bool {
	switch p {
	case PredictHome, PredictDraw, PredictAway:
		return true
	}
	return false
}

// Bet is a user's wager on a game. WeekID is denormalized from the
// owning game's week. A bet must never reference a game that does not
// exist: deletion proceeds strictly bottom-up (bets, games, weeks).
type Bet struct {
	ID         BetID
	GameID     GameID
	WeekID     WeekID
	UserID     UserID
	Prediction Prediction
	CreatedAt  time.Time
}
