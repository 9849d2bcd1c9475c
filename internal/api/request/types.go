package request

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PlaceBetRequest is the request body for placing a bet
type PlaceBetRequest struct {
	GameID     string `json:"game_id"`
	Prediction string `json:"prediction"`
}

// CreateWeekRequest is the request body for creating a week
type CreateWeekRequest struct {
	WeekNumber int `json:"week_number"`
}

// ScheduleGameRequest is the request body for scheduling a game
type ScheduleGameRequest struct {
	WeekNumber int    `json:"week_number"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	MatchDate  string `json:"match_date"`
}

// PurgeGamesRequest is the request body for the criteria purge
type PurgeGamesRequest struct {
	MinWeekNumber *int    `json:"min_week_number,omitempty"`
	CreatedSince  *string `json:"created_since,omitempty"`
}
