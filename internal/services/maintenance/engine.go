package maintenance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cards10e/laquiniela247/internal/model"
	"github.com/cards10e/laquiniela247/internal/storage"
)

// Errors
var (
	// ErrEmptyCriteria is returned when a games purge is requested with
	// no selection fields set. A full-table purge must never happen by
	// accident.
	ErrEmptyCriteria = errors.New("refusing to purge games with empty criteria")
)

// GameSummary describes one matched game, emitted before deletion so an
// operator can audit the run from logs.
type GameSummary struct {
	ID         model.GameID
	WeekNumber int
	HomeTeam   string
	AwayTeam   string
	CreatedAt  time.Time
}

// GamePurgeResult reports the outcome of a criteria purge
type GamePurgeResult struct {
	Matched      []GameSummary
	BetsDeleted  int
	GamesDeleted int
}

// WeekPurgeResult reports the outcome of a week purge.
// Found is false when no week carried the number; that is a zero-effect
// success, not an error.
type WeekPurgeResult struct {
	Found        bool
	WeekNumber   int
	BetsDeleted  int
	GamesDeleted int
	WeeksDeleted int
}

// Engine executes referential-integrity-preserving bulk deletions over
// the week -> game -> bet hierarchy. Deletion order is always bottom-up:
// bets, then games, then weeks. A failure mid-run can leave orphaned
// games but never an orphaned bet.
type Engine struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new maintenance engine
func New(storage storage.Storage, logger *slog.Logger) *Engine {
	return &Engine{
		storage: storage,
		logger:  logger,
	}
}

// PurgeGamesByCriteria resolves the games matching the criteria, then
// deletes their bets and finally the games themselves. Running the same
// criteria twice is safe: the second run matches nothing.
func (e *Engine) PurgeGamesByCriteria(ctx context.Context, criteria storage.GameCriteria) (*GamePurgeResult, error) {
	if criteria.Empty() {
		return nil, ErrEmptyCriteria
	}

	games, err := e.storage.FindGamesByCriteria(ctx, criteria)
	if err != nil {
		return nil, err
	}

	result := &GamePurgeResult{
		Matched: make([]GameSummary, 0, len(games)),
	}

	// Emit the matched set before touching anything
	ids := make([]model.GameID, 0, len(games))
	for _, game := range games {
		ids = append(ids, game.ID)
		result.Matched = append(result.Matched, GameSummary{
			ID:         game.ID,
			WeekNumber: game.WeekNumber,
			HomeTeam:   game.HomeTeam,
			AwayTeam:   game.AwayTeam,
			CreatedAt:  game.CreatedAt,
		})
		e.logger.Info("game matched for purge",
			slog.String("game_id", string(game.ID)),
			slog.Int("week_number", game.WeekNumber),
			slog.String("home_team", game.HomeTeam),
			slog.String("away_team", game.AwayTeam),
			slog.Time("created_at", game.CreatedAt),
		)
	}

	if len(ids) == 0 {
		e.logger.Info("no games matched purge criteria")
		return result, nil
	}

	// Backends with transactions run both deletes as one unit of work
	if tp, ok := e.storage.(storage.TxPurger); ok {
		bets, deleted, err := tp.PurgeGamesByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		result.BetsDeleted = bets
		result.GamesDeleted = deleted
	} else {
		// Bets first. If the games delete then fails, the remaining
		// games are orphaned but no bet dangles.
		bets, err := e.storage.DeleteBetsByGameIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		result.BetsDeleted = bets

		deleted, err := e.storage.DeleteGamesByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		result.GamesDeleted = deleted
	}

	e.logger.Info("games purged",
		slog.Int("games_deleted", result.GamesDeleted),
		slog.Int("bets_deleted", result.BetsDeleted),
	)
	return result, nil
}

// PurgeWeek removes a week together with its games and their bets.
// An absent week number is a benign no-op reported as success. In the
// anomalous case of duplicate rows for the same number, all of them
// (and all of their bets) are cleaned up.
func (e *Engine) PurgeWeek(ctx context.Context, weekNumber int) (*WeekPurgeResult, error) {
	weeks, err := e.storage.FindWeeksByNumber(ctx, weekNumber)
	if err != nil {
		return nil, err
	}

	result := &WeekPurgeResult{WeekNumber: weekNumber}
	if len(weeks) == 0 {
		e.logger.Info("week not found, nothing to purge", slog.Int("week_number", weekNumber))
		return result, nil
	}
	result.Found = true

	weekIDs := make([]model.WeekID, 0, len(weeks))
	for _, week := range weeks {
		weekIDs = append(weekIDs, week.ID)
	}
	e.logger.Info("purging week",
		slog.Int("week_number", weekNumber),
		slog.Int("week_rows", len(weeks)),
	)

	if tp, ok := e.storage.(storage.TxPurger); ok {
		bets, games, deleted, err := tp.PurgeWeekNumber(ctx, weekNumber, weekIDs)
		if err != nil {
			return nil, err
		}
		result.BetsDeleted = bets
		result.GamesDeleted = games
		result.WeeksDeleted = deleted
	} else {
		// Any stage failure aborts the remaining stages; the partial
		// state is safe because deletion runs bottom-up.
		bets, err := e.storage.DeleteBetsByWeekIDs(ctx, weekIDs)
		if err != nil {
			return nil, err
		}
		result.BetsDeleted = bets

		games, err := e.storage.ListGamesByWeek(ctx, weekNumber)
		if err != nil {
			return nil, err
		}
		gameIDs := make([]model.GameID, 0, len(games))
		for _, game := range games {
			gameIDs = append(gameIDs, game.ID)
		}

		deletedGames, err := e.storage.DeleteGamesByIDs(ctx, gameIDs)
		if err != nil {
			return nil, err
		}
		result.GamesDeleted = deletedGames

		deletedWeeks, err := e.storage.DeleteWeeksByNumber(ctx, weekNumber)
		if err != nil {
			return nil, err
		}
		result.WeeksDeleted = deletedWeeks
	}

	e.logger.Info("week purged",
		slog.Int("week_number", weekNumber),
		slog.Int("bets_deleted", result.BetsDeleted),
		slog.Int("games_deleted", result.GamesDeleted),
		slog.Int("weeks_deleted", result.WeeksDeleted),
	)
	return result, nil
}
