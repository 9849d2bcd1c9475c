package account

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cards10e/laquiniela247/internal/model"
	"github.com/cards10e/laquiniela247/internal/storage"
)

// Errors
var (
	ErrEmptyEmail    = errors.New("email must not be empty")
	ErrEmptyPassword = errors.New("new password must not be empty")
)

// DefaultHashCost is the bcrypt work factor used when no override is set
const DefaultHashCost = 12

// hashCostEnv is the environment variable overriding the work factor
const hashCostEnv = "BCRYPT_COST"

// Config holds configuration for the account service
type Config struct {
	HashCost int
}

// DefaultConfig returns default account configuration
func DefaultConfig() Config {
	return Config{
		HashCost: DefaultHashCost,
	}
}

// HashCostFromEnv reads the bcrypt work factor override from the
// environment. Unset, unparsable or out-of-range values fall back to
// the default cost.
func HashCostFromEnv() int {
	raw := os.Getenv(hashCostEnv)
	if raw == "" {
		return DefaultHashCost
	}
	cost, err := strconv.Atoi(raw)
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return DefaultHashCost
	}
	return cost
}

// DirectoryEntry is one row of the user directory report
type DirectoryEntry struct {
	ID          model.UserID
	DisplayName string
	Email       string
	Role        model.Role
	CreatedAt   time.Time
}

// Service handles out-of-band account maintenance: credential resets
// and the operator-facing user directory.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
	cfg     Config
}

// New creates a new account service
func New(storage storage.Storage, cfg Config, logger *slog.Logger) *Service {
	if cfg.HashCost == 0 {
		cfg = DefaultConfig()
	}
	return &Service{
		storage: storage,
		logger:  logger,
		cfg:     cfg,
	}
}

// ResetPassword overwrites the stored credential hash for the user with
// the given email. The prior credential is not required. The plaintext
// never reaches the logs.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if newPassword == "" {
		return ErrEmptyPassword
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.HashCost)
	if err != nil {
		return err
	}

	if err := s.storage.UpdateUserPasswordHash(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.logger.Info("password reset",
		slog.String("user_id", string(user.ID)),
		slog.String("email", user.Email),
	)
	return nil
}

// Directory returns every user ordered by creation time, newest first
func (s *Service) Directory(ctx context.Context) ([]DirectoryEntry, error) {
	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})

	entries := make([]DirectoryEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, DirectoryEntry{
			ID:          user.ID,
			DisplayName: user.DisplayName(),
			Email:       user.Email,
			Role:        user.Role,
			CreatedAt:   user.CreatedAt,
		})
	}
	return entries, nil
}
