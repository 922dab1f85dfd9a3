// Package transport defines request DTOs for the leaderboard HTTP API.
package transport

// SetAPRequest overwrites the caller's AP figure for one period.
type SetAPRequest struct {
	Period string  `json:"period" binding:"required"`
	Amount float64 `json:"amount" binding:"gte=0"`
}

// AddAPRequest increments the caller's AP figure for one period.
type AddAPRequest struct {
	Period string  `json:"period" binding:"required"`
	Delta  float64 `json:"delta"`
}
