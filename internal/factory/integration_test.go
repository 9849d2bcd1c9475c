package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cards10e/laquiniela247/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: season setup, betting and purge as one flow across the wired services
func (s *IntegrationSuite) TestSeasonFlow() {
	// Step 1: Register two users
	aliceSession, err := s.app.AuthService.Register(s.ctx, "alice@example.com", "secret123", "Alice", "Lopez")
	s.Require().NoError(err)
	bobSession, err := s.app.AuthService.Register(s.ctx, "bob@example.com", "secret456", "Bob", "")
	s.Require().NoError(err)

	// Step 2: Set up a week with two games
	_, err = s.app.PoolController.CreateWeek(s.ctx, 12)
	s.Require().NoError(err)

	matchDate := time.Date(2024, 3, 16, 19, 0, 0, 0, time.UTC)
	game1, err := s.app.PoolController.ScheduleGame(s.ctx, 12, "America", "Chivas", matchDate)
	s.Require().NoError(err)
	game2, err := s.app.PoolController.ScheduleGame(s.ctx, 12, "Cruz Azul", "Pumas", matchDate.Add(2*time.Hour))
	s.Require().NoError(err)

	// Step 3: Both users place bets
	_, err = s.app.PoolController.PlaceBet(s.ctx, aliceSession.UserID, game1.ID, model.PredictHome)
	s.Require().NoError(err)
	_, err = s.app.PoolController.PlaceBet(s.ctx, aliceSession.UserID, game2.ID, model.PredictDraw)
	s.Require().NoError(err)
	_, err = s.app.PoolController.PlaceBet(s.ctx, bobSession.UserID, game1.ID, model.PredictAway)
	s.Require().NoError(err)

	bets, err := s.app.PoolController.ListBetsByUser(s.ctx, aliceSession.UserID)
	s.Require().NoError(err)
	s.Len(bets, 2)

	// Step 4: Purge the week; everything under it goes, bottom-up
	result, err := s.app.MaintenanceEngine.PurgeWeek(s.ctx, 12)
	s.Require().NoError(err)
	s.True(result.Found)
	s.Equal(3, result.BetsDeleted)
	s.Equal(2, result.GamesDeleted)
	s.Equal(1, result.WeeksDeleted)

	// Step 5: No bets survive their games
	bets, err = s.app.PoolController.ListBetsByUser(s.ctx, aliceSession.UserID)
	s.Require().NoError(err)
	s.Empty(bets)

	_, err = s.app.PoolController.ListGamesByWeek(s.ctx, 12)
	s.ErrorIs(err, model.ErrWeekNotFound)
}

// Test: directory and credential reset through the wired account service
func (s *IntegrationSuite) TestAccountMaintenanceFlow() {
	_, err := s.app.AuthService.Register(s.ctx, "alice@example.com", "secret123", "Alice", "Lopez")
	s.Require().NoError(err)
	s.app.MockClock.Advance(time.Minute)
	_, err = s.app.AuthService.Register(s.ctx, "bob@example.com", "secret456", "", "")
	s.Require().NoError(err)

	entries, err := s.app.AccountService.Directory(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	// Newest first
	s.Equal("bob@example.com", entries[0].Email)
	s.Equal("(no name)", entries[0].DisplayName)
	s.Equal("Alice Lopez", entries[1].DisplayName)

	// Reset Alice's password; old secret stops working
	err = s.app.AccountService.ResetPassword(s.ctx, "alice@example.com", "newsecret")
	s.Require().NoError(err)

	_, err = s.app.AuthService.Login(s.ctx, "alice@example.com", "secret123")
	s.Error(err)
	_, err = s.app.AuthService.Login(s.ctx, "alice@example.com", "newsecret")
	s.NoError(err)
}
