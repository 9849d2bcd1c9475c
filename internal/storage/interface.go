package storage

import (
	"context"
	"time"

	"github.com/cards10e/laquiniela247/internal/model"
)

// GameCriteria selects a subset of games for bulk maintenance.
// All set fields must match; a zero-value criteria matches nothing
// so that a full-table purge can never happen by accident.
type GameCriteria struct {
	MinWeekNumber *int
	CreatedSince  *time.Time
}

// Empty reports whether no selection field is set
func (c GameCriteria) Empty() bool {
	return c.MinWeekNumber == nil && c.CreatedSince == nil
}

// Matches evaluates the criteria against a single game.
// Backend implementations without server-side filtering use this;
// SQL backends translate the criteria to a WHERE clause instead.
func (c GameCriteria) Matches(g *model.Game) bool {
	if c.Empty() {
		return false
	}
	if c.MinWeekNumber != nil && g.WeekNumber < *c.MinWeekNumber {
		return false
	}
	if c.CreatedSince != nil && g.CreatedAt.Before(*c.CreatedSince) {
		return false
	}
	return true
}

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUserPasswordHash(ctx context.Context, id model.UserID, hash string) error

	// Week operations
	SaveWeek(ctx context.Context, week *model.Week) error
	GetWeekByNumber(ctx context.Context, weekNumber int) (*model.Week, error)
	// FindWeeksByNumber returns every week row carrying the number,
	// which is more than one only in the duplicate-week anomaly.
	FindWeeksByNumber(ctx context.Context, weekNumber int) ([]*model.Week, error)
	ListWeeks(ctx context.Context) ([]*model.Week, error)
	DeleteWeeksByNumber(ctx context.Context, weekNumber int) (int, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	ListGamesByWeek(ctx context.Context, weekNumber int) ([]*model.Game, error)
	FindGamesByCriteria(ctx context.Context, criteria GameCriteria) ([]*model.Game, error)
	DeleteGamesByIDs(ctx context.Context, ids []model.GameID) (int, error)

	// Bet operations
	SaveBet(ctx context.Context, bet *model.Bet) error
	GetBetForGame(ctx context.Context, userID model.UserID, gameID model.GameID) (*model.Bet, error)
	ListBetsByUser(ctx context.Context, userID model.UserID) ([]*model.Bet, error)
	ListBetsByGame(ctx context.Context, gameID model.GameID) ([]*model.Bet, error)
	DeleteBetsByGameIDs(ctx context.Context, ids []model.GameID) (int, error)
	DeleteBetsByWeekIDs(ctx context.Context, ids []model.WeekID) (int, error)

	// Close releases the underlying connection. Administrative
	// operations must call it on every exit path.
	Close() error
}

// TxPurger is an optional interface for backends that can execute a
// bets-then-games (or bets-then-games-then-weeks) deletion as a single
// transaction, presenting all-or-nothing semantics to concurrent
// readers. Backends without transactions rely on the mandatory
// bottom-up ordering instead.
type TxPurger interface {
	PurgeGamesByIDs(ctx context.Context, ids []model.GameID) (betsDeleted, gamesDeleted int, err error)
	PurgeWeekNumber(ctx context.Context, weekNumber int, weekIDs []model.WeekID) (betsDeleted, gamesDeleted, weeksDeleted int, err error)
}
