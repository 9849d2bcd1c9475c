package memory

import (
	"context"
	"sync"

	"github.com/cards10e/laquiniela247/internal/model"
	"github.com/cards10e/laquiniela247/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users      map[model.UserID]*model.User
	emailIndex map[string]model.UserID
	weeks      map[model.WeekID]*model.Week
	games      map[model.GameID]*model.Game
	bets       map[model.BetID]*model.Bet
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:      make(map[model.UserID]*model.User),
		emailIndex: make(map[string]model.UserID),
		weeks:      make(map[model.WeekID]*model.Week),
		games:      make(map[model.GameID]*model.Game),
		bets:       make(map[model.BetID]*model.Bet),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Close is a no-op for the in-memory backend
func (s *Storage) Close() error {
	return nil
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	s.emailIndex[user.Email] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users, nil
}

func (s *Storage) UpdateUserPasswordHash(ctx context.Context, id model.UserID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.PasswordHash = hash
	return nil
}

// Week operations

func (s *Storage) SaveWeek(ctx context.Context, week *model.Week) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weeks[week.ID] = week
	return nil
}

func (s *Storage) GetWeekByNumber(ctx context.Context, weekNumber int) (*model.Week, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, week := range s.weeks {
		if week.WeekNumber == weekNumber {
			return week, nil
		}
	}
	return nil, model.ErrWeekNotFound
}

func (s *Storage) FindWeeksByNumber(ctx context.Context, weekNumber int) ([]*model.Week, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var weeks []*model.Week
	for _, week := range s.weeks {
		if week.WeekNumber == weekNumber {
			weeks = append(weeks, week)
		}
	}
	return weeks, nil
}

func (s *Storage) ListWeeks(ctx context.Context) ([]*model.Week, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	weeks := make([]*model.Week, 0, len(s.weeks))
	for _, week := range s.weeks {
		weeks = append(weeks, week)
	}
	return weeks, nil
}

func (s *Storage) DeleteWeeksByNumber(ctx context.Context, weekNumber int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for id, week := range s.weeks {
		if week.WeekNumber == weekNumber {
			delete(s.weeks, id)
			deleted++
		}
	}
	return deleted, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) ListGamesByWeek(ctx context.Context, weekNumber int) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var games []*model.Game
	for _, game := range s.games {
		if game.WeekNumber == weekNumber {
			games = append(games, game)
		}
	}
	return games, nil
}

func (s *Storage) FindGamesByCriteria(ctx context.Context, criteria storage.GameCriteria) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var games []*model.Game
	for _, game := range s.games {
		if criteria.Matches(game) {
			games = append(games, game)
		}
	}
	return games, nil
}

func (s *Storage) DeleteGamesByIDs(ctx context.Context, ids []model.GameID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for _, id := range ids {
		if _, ok := s.games[id]; ok {
			delete(s.games, id)
			deleted++
		}
	}
	return deleted, nil
}

// Bet operations

func (s *Storage) SaveBet(ctx context.Context, bet *model.Bet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bets[bet.ID] = bet
	return nil
}

func (s *Storage) GetBetForGame(ctx context.Context, userID model.UserID, gameID model.GameID) (*model.Bet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, bet := range s.bets {
		if bet.UserID == userID && bet.GameID == gameID {
			return bet, nil
		}
	}
	return nil, model.ErrBetNotFound
}

func (s *Storage) ListBetsByUser(ctx context.Context, userID model.UserID) ([]*model.Bet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var bets []*model.Bet
	for _, bet := range s.bets {
		if bet.UserID == userID {
			bets = append(bets, bet)
		}
	}
	return bets, nil
}

func (s *Storage) ListBetsByGame(ctx context.Context, gameID model.GameID) ([]*model.Bet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var bets []*model.Bet
	for _, bet := range s.bets {
		if bet.GameID == gameID {
			bets = append(bets, bet)
		}
	}
	return bets, nil
}

func (s *Storage) DeleteBetsByGameIDs(ctx context.Context, ids []model.GameID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gameSet := make(map[model.GameID]struct{}, len(ids))
	for _, id := range ids {
		gameSet[id] = struct{}{}
	}
	deleted := 0
	for id, bet := range s.bets {
		if _, ok := gameSet[bet.GameID]; ok {
			delete(s.bets, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Storage) DeleteBetsByWeekIDs(ctx context.Context, ids []model.WeekID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	weekSet := make(map[model.WeekID]struct{}, len(ids))
	for _, id := range ids {
		weekSet[id] = struct{}{}
	}
	deleted := 0
	for id, bet := range s.bets {
		if _, ok := weekSet[bet.WeekID]; ok {
			delete(s.bets, id)
			deleted++
		}
	}
	return deleted, nil
}
