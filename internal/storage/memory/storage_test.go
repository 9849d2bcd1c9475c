package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cards10e/laquiniela247/internal/model"
	"github.com/cards10e/laquiniela247/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:        "user-1",
		FirstName: "Ana",
		LastName:  "Lopez",
		Email:     "ana@example.com",
		Role:      model.RoleUser,
		CreatedAt: time.Now(),
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(user.Email, retrieved.Email)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByEmail() {
	user := &model.User{ID: "user-1", Email: "ana@example.com"}
	_ = s.storage.SaveUser(s.ctx, user)

	retrieved, err := s.storage.GetUserByEmail(s.ctx, "ana@example.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), retrieved.ID)

	_, err = s.storage.GetUserByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestUpdateUserPasswordHash() {
	user := &model.User{ID: "user-1", Email: "ana@example.com", PasswordHash: "old"}
	_ = s.storage.SaveUser(s.ctx, user)

	err := s.storage.UpdateUserPasswordHash(s.ctx, "user-1", "new")
	s.Require().NoError(err)

	retrieved, _ := s.storage.GetUser(s.ctx, "user-1")
	s.Equal("new", retrieved.PasswordHash)
}

func (s *StorageSuite) TestUpdateUserPasswordHashNotFound() {
	err := s.storage.UpdateUserPasswordHash(s.ctx, "nonexistent", "new")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Week tests

func (s *StorageSuite) TestGetWeekByNumber() {
	week := &model.Week{ID: "week-1", WeekNumber: 12}
	_ = s.storage.SaveWeek(s.ctx, week)

	retrieved, err := s.storage.GetWeekByNumber(s.ctx, 12)
	s.Require().NoError(err)
	s.Equal(model.WeekID("week-1"), retrieved.ID)

	_, err = s.storage.GetWeekByNumber(s.ctx, 99)
	s.ErrorIs(err, model.ErrWeekNotFound)
}

func (s *StorageSuite) TestFindWeeksByNumberReturnsDuplicates() {
	_ = s.storage.SaveWeek(s.ctx, &model.Week{ID: "week-1", WeekNumber: 12})
	_ = s.storage.SaveWeek(s.ctx, &model.Week{ID: "week-2", WeekNumber: 12})

	weeks, err := s.storage.FindWeeksByNumber(s.ctx, 12)
	s.Require().NoError(err)
	s.Len(weeks, 2)
}

func (s *StorageSuite) TestDeleteWeeksByNumber() {
	_ = s.storage.SaveWeek(s.ctx, &model.Week{ID: "week-1", WeekNumber: 12})
	_ = s.storage.SaveWeek(s.ctx, &model.Week{ID: "week-2", WeekNumber: 12})
	_ = s.storage.SaveWeek(s.ctx, &model.Week{ID: "week-3", WeekNumber: 13})

	deleted, err := s.storage.DeleteWeeksByNumber(s.ctx, 12)
	s.Require().NoError(err)
	s.Equal(2, deleted)

	weeks, _ := s.storage.ListWeeks(s.ctx)
	s.Len(weeks, 1)
}

// Game tests

func (s *StorageSuite) TestFindGamesByCriteria() {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-1", WeekNumber: 10, CreatedAt: base})
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-2", WeekNumber: 12, CreatedAt: base.AddDate(0, 0, 7)})
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-3", WeekNumber: 12, CreatedAt: base.AddDate(0, 0, -7)})

	minWeek := 12
	since := base

	games, err := s.storage.FindGamesByCriteria(s.ctx, storage.GameCriteria{
		MinWeekNumber: &minWeek,
		CreatedSince:  &since,
	})
	s.Require().NoError(err)
	s.Len(games, 1)
	s.Equal(model.GameID("game-2"), games[0].ID)
}

func (s *StorageSuite) TestFindGamesByCriteriaEmptyMatchesNothing() {
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-1", WeekNumber: 10})

	games, err := s.storage.FindGamesByCriteria(s.ctx, storage.GameCriteria{})
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *StorageSuite) TestDeleteGamesByIDs() {
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-1", WeekNumber: 10})
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-2", WeekNumber: 10})

	deleted, err := s.storage.DeleteGamesByIDs(s.ctx, []model.GameID{"game-1", "game-2", "game-9"})
	s.Require().NoError(err)
	s.Equal(2, deleted)

	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Bet tests

func (s *StorageSuite) TestGetBetForGame() {
	bet := &model.Bet{ID: "bet-1", GameID: "game-1", WeekID: "week-1", UserID: "user-1"}
	_ = s.storage.SaveBet(s.ctx, bet)

	retrieved, err := s.storage.GetBetForGame(s.ctx, "user-1", "game-1")
	s.Require().NoError(err)
	s.Equal(model.BetID("bet-1"), retrieved.ID)

	_, err = s.storage.GetBetForGame(s.ctx, "user-2", "game-1")
	s.ErrorIs(err, model.ErrBetNotFound)
}

func (s *StorageSuite) TestDeleteBetsByGameIDs() {
	_ = s.storage.SaveBet(s.ctx, &model.Bet{ID: "bet-1", GameID: "game-1", UserID: "user-1"})
	_ = s.storage.SaveBet(s.ctx, &model.Bet{ID: "bet-2", GameID: "game-1", UserID: "user-2"})
	_ = s.storage.SaveBet(s.ctx, &model.Bet{ID: "bet-3", GameID: "game-2", UserID: "user-1"})

	deleted, err := s.storage.DeleteBetsByGameIDs(s.ctx, []model.GameID{"game-1"})
	s.Require().NoError(err)
	s.Equal(2, deleted)

	bets, _ := s.storage.ListBetsByGame(s.ctx, "game-1")
	s.Empty(bets)

	remaining, _ := s.storage.ListBetsByUser(s.ctx, "user-1")
	s.Len(remaining, 1)
}

func (s *StorageSuite) TestDeleteBetsByWeekIDs() {
	_ = s.storage.SaveBet(s.ctx, &model.Bet{ID: "bet-1", GameID: "game-1", WeekID: "week-1", UserID: "user-1"})
	_ = s.storage.SaveBet(s.ctx, &model.Bet{ID: "bet-2", GameID: "game-2", WeekID: "week-2", UserID: "user-1"})

	deleted, err := s.storage.DeleteBetsByWeekIDs(s.ctx, []model.WeekID{"week-1"})
	s.Require().NoError(err)
	s.Equal(1, deleted)
}
