package pool

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/cards10e/laquiniela247/internal/dependencies/clock"
	"github.com/cards10e/laquiniela247/internal/model"
	"github.com/cards10e/laquiniela247/internal/storage"
)

// Controller manages the week/game/bet hierarchy
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
}

// NewController creates a new pool controller
func NewController(storage storage.Storage, clock clock.Clock) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
	}
}

// CreateWeek opens a new betting week. Week numbers are unique; a
// duplicate number is rejected rather than silently doubled up.
func (c *Controller) CreateWeek(ctx context.Context, weekNumber int) (*model.Week, error) {
	_, err := c.storage.GetWeekByNumber(ctx, weekNumber)
	if err == nil {
		return nil, model.ErrWeekExists
	}
	if !errors.Is(err, model.ErrWeekNotFound) {
		return nil, err
	}

	week := &model.Week{
		ID:         model.WeekID(uuid.NewString()),
		WeekNumber: weekNumber,
		CreatedAt:  c.clock.Now(),
	}

	if err := c.storage.SaveWeek(ctx, week); err != nil {
		return nil, err
	}
	return week, nil
}

// ScheduleGame adds a game to an existing week. The week must exist;
// games never reference a week number without a week row behind it.
func (c *Controller) ScheduleGame(ctx context.Context, weekNumber int, homeTeam, awayTeam string, matchDate time.Time) (*model.Game, error) {
	if _, err := c.storage.GetWeekByNumber(ctx, weekNumber); err != nil {
		return nil, err
	}

	game := &model.Game{
		ID:         model.GameID(uuid.NewString()),
		WeekNumber: weekNumber,
		HomeTeam:   homeTeam,
		AwayTeam:   awayTeam,
		MatchDate:  matchDate,
		CreatedAt:  c.clock.Now(),
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// PlaceBet records a user's prediction for a game. The bet denormalizes
// the owning week's ID from the game. One bet per user per game.
func (c *Controller) PlaceBet(ctx context.Context, userID model.UserID, gameID model.GameID, prediction model.Prediction) (*model.Bet, error) {
	if !model.ValidPrediction(prediction) {
		return nil, model.ErrInvalidPrediction
	}

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	week, err := c.storage.GetWeekByNumber(ctx, game.WeekNumber)
	if err != nil {
		return nil, err
	}

	_, err = c.storage.GetBetForGame(ctx, userID, gameID)
	if err == nil {
		return nil, model.ErrBetExists
	}
	if !errors.Is(err, model.ErrBetNotFound) {
		return nil, err
	}

	bet := &model.Bet{
		ID:         model.BetID(uuid.NewString()),
		GameID:     gameID,
		WeekID:     week.ID,
		UserID:     userID,
		Prediction: prediction,
		CreatedAt:  c.clock.Now(),
	}

	if err := c.storage.SaveBet(ctx, bet); err != nil {
		return nil, err
	}
	return bet, nil
}

// ListWeeks returns all weeks ordered by week number
func (c *Controller) ListWeeks(ctx context.Context) ([]*model.Week, error) {
	weeks, err := c.storage.ListWeeks(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].WeekNumber < weeks[j].WeekNumber
	})
	return weeks, nil
}

// ListGamesByWeek returns a week's games ordered by match date
func (c *Controller) ListGamesByWeek(ctx context.Context, weekNumber int) ([]*model.Game, error) {
	if _, err := c.storage.GetWeekByNumber(ctx, weekNumber); err != nil {
		return nil, err
	}
	games, err := c.storage.ListGamesByWeek(ctx, weekNumber)
	if err != nil {
		return nil, err
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].MatchDate.Before(games[j].MatchDate)
	})
	return games, nil
}

// ListBetsByUser returns a user's bets, newest first
func (c *Controller) ListBetsByUser(ctx context.Context, userID model.UserID) ([]*model.Bet, error) {
	bets, err := c.storage.ListBetsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(bets, func(i, j int) bool {
		return bets[i].CreatedAt.After(bets[j].CreatedAt)
	})
	return bets, nil
}
