package redis

import (
	"fmt"

	"github.com/cards10e/laquiniela247/internal/model"
)

// Key prefix for all quiniela data
const keyPrefix = "quiniela"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// usersIndexKey returns the Redis key for the SET of all user ids
func usersIndexKey() string {
	return fmt.Sprintf("%s:idx:users", keyPrefix)
}

// weekKey returns the Redis key for a Week
func weekKey(id model.WeekID) string {
	return fmt.Sprintf("%s:week:%s", keyPrefix, id)
}

// weeksIndexKey returns the Redis key for the SET of all week ids
func weeksIndexKey() string {
	return fmt.Sprintf("%s:idx:weeks", keyPrefix)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the SET of all game ids
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// betKey returns the Redis key for a Bet
func betKey(id model.BetID) string {
	return fmt.Sprintf("%s:bet:%s", keyPrefix, id)
}

// betsForGameIndexKey returns the Redis key for the SET of bets on a game
func betsForGameIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:bets_for_game:%s", keyPrefix, gameID)
}

// betsForWeekIndexKey returns the Redis key for the SET of bets in a week
func betsForWeekIndexKey(weekID model.WeekID) string {
	return fmt.Sprintf("%s:idx:bets_for_week:%s", keyPrefix, weekID)
}

// betsForUserIndexKey returns the Redis key for the SET of a user's bets
func betsForUserIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:bets_for_user:%s", keyPrefix, userID)
}

// userGameBetIndexKey returns the Redis key for the (user, game) -> bet_id index
func userGameBetIndexKey(userID model.UserID, gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:bet_by_user_game:%s:%s", keyPrefix, userID, gameID)
}
