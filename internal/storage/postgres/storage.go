package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/cards10e/laquiniela247/internal/model"
	"github.com/cards10e/laquiniela247/internal/storage"
)

// Storage is a Postgres-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New opens a Postgres connection and verifies it with a ping
func New(dsn string) (*Storage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Storage{db: db}, nil
}

// NewWithDB creates a Postgres storage with an existing handle (for testing)
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements both interfaces
var (
	_ storage.Storage  = (*Storage)(nil)
	_ storage.TxPurger = (*Storage)(nil)
)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, first_name, last_name, email, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			role = EXCLUDED.role,
			password_hash = EXCLUDED.password_hash`,
		string(user.ID), nullable(user.FirstName), nullable(user.LastName),
		user.Email, string(user.Role), user.PasswordHash, user.CreatedAt,
	)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, role, password_hash, created_at
		FROM users WHERE id = $1`, string(id)))
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, role, password_hash, created_at
		FROM users WHERE email = $1`, email))
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, role, password_hash, created_at
		FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := s.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *Storage) UpdateUserPasswordHash(ctx context.Context, id model.UserID, hash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, hash, string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func (s *Storage) scanUser(row scanner) (*model.User, error) {
	var (
		user      model.User
		id, role  string
		first     sql.NullString
		last      sql.NullString
		createdAt time.Time
	)
	err := row.Scan(&id, &first, &last, &user.Email, &role, &user.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	user.ID = model.UserID(id)
	user.FirstName = first.String
	user.LastName = last.String
	user.Role = model.ParseRole(role)
	user.CreatedAt = createdAt
	return &user, nil
}

// Week operations

func (s *Storage) SaveWeek(ctx context.Context, week *model.Week) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO weeks (id, week_number, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET week_number = EXCLUDED.week_number`,
		string(week.ID), week.WeekNumber, week.CreatedAt,
	)
	return err
}

func (s *Storage) GetWeekByNumber(ctx context.Context, weekNumber int) (*model.Week, error) {
	var (
		week model.Week
		id   string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, week_number, created_at FROM weeks
		WHERE week_number = $1 ORDER BY created_at LIMIT 1`, weekNumber).
		Scan(&id, &week.WeekNumber, &week.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrWeekNotFound
		}
		return nil, err
	}
	week.ID = model.WeekID(id)
	return &week, nil
}

func (s *Storage) FindWeeksByNumber(ctx context.Context, weekNumber int) ([]*model.Week, error) {
	return s.queryWeeks(ctx, `
		SELECT id, week_number, created_at FROM weeks WHERE week_number = $1`, weekNumber)
}

func (s *Storage) ListWeeks(ctx context.Context) ([]*model.Week, error) {
	return s.queryWeeks(ctx, `
		SELECT id, week_number, created_at FROM weeks ORDER BY week_number`)
}

func (s *Storage) queryWeeks(ctx context.Context, query string, args ...any) ([]*model.Week, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weeks []*model.Week
	for rows.Next() {
		var (
			week model.Week
			id   string
		)
		if err := rows.Scan(&id, &week.WeekNumber, &week.CreatedAt); err != nil {
			return nil, err
		}
		week.ID = model.WeekID(id)
		weeks = append(weeks, &week)
	}
	return weeks, rows.Err()
}

func (s *Storage) DeleteWeeksByNumber(ctx context.Context, weekNumber int) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM weeks WHERE week_number = $1`, weekNumber)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO games (id, week_number, home_team, away_team, match_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			week_number = EXCLUDED.week_number,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			match_date = EXCLUDED.match_date`,
		string(game.ID), game.WeekNumber, game.HomeTeam, game.AwayTeam,
		game.MatchDate, game.CreatedAt,
	)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, week_number, home_team, away_team, match_date, created_at
		FROM games WHERE id = $1`, string(id))

	game, err := scanGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

func (s *Storage) ListGamesByWeek(ctx context.Context, weekNumber int) ([]*model.Game, error) {
	return s.queryGames(ctx, `
		SELECT id, week_number, home_team, away_team, match_date, created_at
		FROM games WHERE week_number = $1 ORDER BY match_date`, weekNumber)
}

// FindGamesByCriteria translates the criteria into a WHERE clause so the
// predicate is evaluated server-side rather than in memory.
func (s *Storage) FindGamesByCriteria(ctx context.Context, criteria storage.GameCriteria) ([]*model.Game, error) {
	if criteria.Empty() {
		return nil, nil
	}

	var (
		conds []string
		args  []any
	)
	if criteria.MinWeekNumber != nil {
		args = append(args, *criteria.MinWeekNumber)
		conds = append(conds, fmt.Sprintf("week_number >= $%d", len(args)))
	}
	if criteria.CreatedSince != nil {
		args = append(args, *criteria.CreatedSince)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	query := `
		SELECT id, week_number, home_team, away_team, match_date, created_at
		FROM games WHERE ` + strings.Join(conds, " AND ")
	return s.queryGames(ctx, query, args...)
}

func (s *Storage) queryGames(ctx context.Context, query string, args ...any) ([]*model.Game, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*model.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func scanGame(row scanner) (*model.Game, error) {
	var (
		game model.Game
		id   string
	)
	err := row.Scan(&id, &game.WeekNumber, &game.HomeTeam, &game.AwayTeam,
		&game.MatchDate, &game.CreatedAt)
	if err != nil {
		return nil, err
	}
	game.ID = model.GameID(id)
	return &game, nil
}

func (s *Storage) DeleteGamesByIDs(ctx context.Context, ids []model.GameID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM games WHERE id = ANY($1)`, pq.Array(gameIDStrings(ids)))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// Bet operations

func (s *Storage) SaveBet(ctx context.Context, bet *model.Bet) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bets (id, game_id, week_id, user_id, prediction, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(bet.ID), string(bet.GameID), string(bet.WeekID),
		string(bet.UserID), string(bet.Prediction), bet.CreatedAt,
	)
	return err
}

func (s *Storage) GetBetForGame(ctx context.Context, userID model.UserID, gameID model.GameID) (*model.Bet, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, game_id, week_id, user_id, prediction, created_at
		FROM bets WHERE user_id = $1 AND game_id = $2`,
		string(userID), string(gameID))

	bet, err := scanBet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrBetNotFound
		}
		return nil, err
	}
	return bet, nil
}

func (s *Storage) ListBetsByUser(ctx context.Context, userID model.UserID) ([]*model.Bet, error) {
	return s.queryBets(ctx, `
		SELECT id, game_id, week_id, user_id, prediction, created_at
		FROM bets WHERE user_id = $1 ORDER BY created_at DESC`, string(userID))
}

func (s *Storage) ListBetsByGame(ctx context.Context, gameID model.GameID) ([]*model.Bet, error) {
	return s.queryBets(ctx, `
		SELECT id, game_id, week_id, user_id, prediction, created_at
		FROM bets WHERE game_id = $1`, string(gameID))
}

func (s *Storage) queryBets(ctx context.Context, query string, args ...any) ([]*model.Bet, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bets []*model.Bet
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, err
		}
		bets = append(bets, bet)
	}
	return bets, rows.Err()
}

func scanBet(row scanner) (*model.Bet, error) {
	var (
		bet                           model.Bet
		id, gameID, weekID, userID, p string
	)
	err := row.Scan(&id, &gameID, &weekID, &userID, &p, &bet.CreatedAt)
	if err != nil {
		return nil, err
	}
	bet.ID = model.BetID(id)
	bet.GameID = model.GameID(gameID)
	bet.WeekID = model.WeekID(weekID)
	bet.UserID = model.UserID(userID)
	bet.Prediction = model.Prediction(p)
	return &bet, nil
}

func (s *Storage) DeleteBetsByGameIDs(ctx context.Context, ids []model.GameID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM bets WHERE game_id = ANY($1)`, pq.Array(gameIDStrings(ids)))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *Storage) DeleteBetsByWeekIDs(ctx context.Context, ids []model.WeekID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = string(id)
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM bets WHERE week_id = ANY($1)`, pq.Array(strs))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// Transactional purges

// PurgeGamesByIDs deletes the bets for the given games and then the
// games themselves within a single transaction. Bets go first so that
// no intermediate state ever holds a bet without its game.
func (s *Storage) PurgeGamesByIDs(ctx context.Context, ids []model.GameID) (int, int, error) {
	if len(ids) == 0 {
		return 0, 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	arr := pq.Array(gameIDStrings(ids))

	res, err := tx.ExecContext(ctx, `DELETE FROM bets WHERE game_id = ANY($1)`, arr)
	if err != nil {
		return 0, 0, err
	}
	bets, err := res.RowsAffected()
	if err != nil {
		return 0, 0, err
	}

	res, err = tx.ExecContext(ctx, `DELETE FROM games WHERE id = ANY($1)`, arr)
	if err != nil {
		return 0, 0, err
	}
	games, err := res.RowsAffected()
	if err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return int(bets), int(games), nil
}

// PurgeWeekNumber deletes bets, games and week rows for a week number
// within a single transaction, bottom-up.
func (s *Storage) PurgeWeekNumber(ctx context.Context, weekNumber int, weekIDs []model.WeekID) (int, int, int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	strs := make([]string, len(weekIDs))
	for i, id := range weekIDs {
		strs[i] = string(id)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM bets WHERE week_id = ANY($1)`, pq.Array(strs))
	if err != nil {
		return 0, 0, 0, err
	}
	bets, err := res.RowsAffected()
	if err != nil {
		return 0, 0, 0, err
	}

	res, err = tx.ExecContext(ctx, `DELETE FROM games WHERE week_number = $1`, weekNumber)
	if err != nil {
		return 0, 0, 0, err
	}
	games, err := res.RowsAffected()
	if err != nil {
		return 0, 0, 0, err
	}

	res, err = tx.ExecContext(ctx, `DELETE FROM weeks WHERE week_number = $1`, weekNumber)
	if err != nil {
		return 0, 0, 0, err
	}
	weeks, err := res.RowsAffected()
	if err != nil {
		return 0, 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, 0, err
	}
	return int(bets), int(games), int(weeks), nil
}

func gameIDStrings(ids []model.GameID) []string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = string(id)
	}
	return strs
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
