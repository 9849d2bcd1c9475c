package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cards10e/laquiniela247/internal/model"
	"github.com/cards10e/laquiniela247/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, emailIndexKey(user.Email), string(user.ID), 0)
	pipe.SAdd(ctx, usersIndexKey(), string(user.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	userIDStr, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(userIDStr))
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	ids, err := s.client.SMembers(ctx, usersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.GetUser(ctx, model.UserID(id))
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				continue // stale index entry
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Storage) UpdateUserPasswordHash(ctx context.Context, id model.UserID, hash string) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.SaveUser(ctx, user)
}

// Week operations

func (s *Storage) SaveWeek(ctx context.Context, week *model.Week) error {
	data, err := json.Marshal(week)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, weekKey(week.ID), data, 0)
	pipe.SAdd(ctx, weeksIndexKey(), string(week.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetWeekByNumber(ctx context.Context, weekNumber int) (*model.Week, error) {
	weeks, err := s.FindWeeksByNumber(ctx, weekNumber)
	if err != nil {
		return nil, err
	}
	if len(weeks) == 0 {
		return nil, model.ErrWeekNotFound
	}
	return weeks[0], nil
}

func (s *Storage) FindWeeksByNumber(ctx context.Context, weekNumber int) ([]*model.Week, error) {
	all, err := s.ListWeeks(ctx)
	if err != nil {
		return nil, err
	}

	var weeks []*model.Week
	for _, week := range all {
		if week.WeekNumber == weekNumber {
			weeks = append(weeks, week)
		}
	}
	return weeks, nil
}

func (s *Storage) ListWeeks(ctx context.Context) ([]*model.Week, error) {
	ids, err := s.client.SMembers(ctx, weeksIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	weeks := make([]*model.Week, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, weekKey(model.WeekID(id))).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // stale index entry
			}
			return nil, err
		}
		var week model.Week
		if err := json.Unmarshal(data, &week); err != nil {
			return nil, err
		}
		weeks = append(weeks, &week)
	}
	return weeks, nil
}

func (s *Storage) DeleteWeeksByNumber(ctx context.Context, weekNumber int) (int, error) {
	weeks, err := s.FindWeeksByNumber(ctx, weekNumber)
	if err != nil {
		return 0, err
	}
	if len(weeks) == 0 {
		return 0, nil
	}

	pipe := s.client.Pipeline()
	for _, week := range weeks {
		pipe.Del(ctx, weekKey(week.ID))
		pipe.SRem(ctx, weeksIndexKey(), string(week.ID))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return len(weeks), nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, 0)
	pipe.SAdd(ctx, gamesIndexKey(), string(game.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) listGames(ctx context.Context) ([]*model.Game, error) {
	ids, err := s.client.SMembers(ctx, gamesIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(ids))
	for _, id := range ids {
		game, err := s.GetGame(ctx, model.GameID(id))
		if err != nil {
			if errors.Is(err, model.ErrGameNotFound) {
				continue // stale index entry
			}
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

func (s *Storage) ListGamesByWeek(ctx context.Context, weekNumber int) ([]*model.Game, error) {
	all, err := s.listGames(ctx)
	if err != nil {
		return nil, err
	}

	var games []*model.Game
	for _, game := range all {
		if game.WeekNumber == weekNumber {
			games = append(games, game)
		}
	}
	return games, nil
}

func (s *Storage) FindGamesByCriteria(ctx context.Context, criteria storage.GameCriteria) ([]*model.Game, error) {
	all, err := s.listGames(ctx)
	if err != nil {
		return nil, err
	}

	var games []*model.Game
	for _, game := range all {
		if criteria.Matches(game) {
			games = append(games, game)
		}
	}
	return games, nil
}

func (s *Storage) DeleteGamesByIDs(ctx context.Context, ids []model.GameID) (int, error) {
	deleted := 0
	for _, id := range ids {
		n, err := s.client.Del(ctx, gameKey(id)).Result()
		if err != nil {
			return deleted, err
		}
		if n > 0 {
			deleted++
		}
		if err := s.client.SRem(ctx, gamesIndexKey(), string(id)).Err(); err != nil {
			return deleted, err
		}
	}
	return deleted, nil
}

// Bet operations

func (s *Storage) SaveBet(ctx context.Context, bet *model.Bet) error {
	data, err := json.Marshal(bet)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, betKey(bet.ID), data, 0)
	pipe.SAdd(ctx, betsForGameIndexKey(bet.GameID), string(bet.ID))
	pipe.SAdd(ctx, betsForWeekIndexKey(bet.WeekID), string(bet.ID))
	pipe.SAdd(ctx, betsForUserIndexKey(bet.UserID), string(bet.ID))
	pipe.Set(ctx, userGameBetIndexKey(bet.UserID, bet.GameID), string(bet.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) getBet(ctx context.Context, id model.BetID) (*model.Bet, error) {
	data, err := s.client.Get(ctx, betKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrBetNotFound
		}
		return nil, err
	}

	var bet model.Bet
	if err := json.Unmarshal(data, &bet); err != nil {
		return nil, err
	}
	return &bet, nil
}

func (s *Storage) GetBetForGame(ctx context.Context, userID model.UserID, gameID model.GameID) (*model.Bet, error) {
	betIDStr, err := s.client.Get(ctx, userGameBetIndexKey(userID, gameID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrBetNotFound
		}
		return nil, err
	}
	return s.getBet(ctx, model.BetID(betIDStr))
}

func (s *Storage) ListBetsByUser(ctx context.Context, userID model.UserID) ([]*model.Bet, error) {
	return s.betsFromIndex(ctx, betsForUserIndexKey(userID))
}

func (s *Storage) ListBetsByGame(ctx context.Context, gameID model.GameID) ([]*model.Bet, error) {
	return s.betsFromIndex(ctx, betsForGameIndexKey(gameID))
}

func (s *Storage) betsFromIndex(ctx context.Context, indexKey string) ([]*model.Bet, error) {
	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	bets := make([]*model.Bet, 0, len(ids))
	for _, id := range ids {
		bet, err := s.getBet(ctx, model.BetID(id))
		if err != nil {
			if errors.Is(err, model.ErrBetNotFound) {
				continue // stale index entry
			}
			return nil, err
		}
		bets = append(bets, bet)
	}
	return bets, nil
}

func (s *Storage) DeleteBetsByGameIDs(ctx context.Context, ids []model.GameID) (int, error) {
	deleted := 0
	for _, gameID := range ids {
		bets, err := s.ListBetsByGame(ctx, gameID)
		if err != nil {
			return deleted, err
		}
		if err := s.deleteBets(ctx, bets); err != nil {
			return deleted, err
		}
		deleted += len(bets)
	}
	return deleted, nil
}

func (s *Storage) DeleteBetsByWeekIDs(ctx context.Context, ids []model.WeekID) (int, error) {
	deleted := 0
	for _, weekID := range ids {
		bets, err := s.betsFromIndex(ctx, betsForWeekIndexKey(weekID))
		if err != nil {
			return deleted, err
		}
		if err := s.deleteBets(ctx, bets); err != nil {
			return deleted, err
		}
		deleted += len(bets)
	}
	return deleted, nil
}

// deleteBets removes bet records together with every index entry pointing at them
func (s *Storage) deleteBets(ctx context.Context, bets []*model.Bet) error {
	if len(bets) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, bet := range bets {
		pipe.Del(ctx, betKey(bet.ID))
		pipe.SRem(ctx, betsForGameIndexKey(bet.GameID), string(bet.ID))
		pipe.SRem(ctx, betsForWeekIndexKey(bet.WeekID), string(bet.ID))
		pipe.SRem(ctx, betsForUserIndexKey(bet.UserID), string(bet.ID))
		pipe.Del(ctx, userGameBetIndexKey(bet.UserID, bet.GameID))
	}
	_, err := pipe.Exec(ctx)
	return err
}
