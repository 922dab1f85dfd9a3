// Package transport defines request DTOs for the gamification HTTP API.
package transport

// CompleteTrainingRequest records a finished training module.
type CompleteTrainingRequest struct {
	TrainingID string `json:"trainingId" binding:"required"`
	XPReward   int    `json:"xpReward" binding:"gte=0"`
}
