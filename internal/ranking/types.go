// Package ranking scores how related content items are to each other.
package ranking

import "github.com/hyperjump/contentkit/internal/models"

// ScoringContext is the pair of items being compared.
type ScoringContext struct {
	// Source is the item related content is computed for.
	Source *models.Item
	// Candidate is the sibling being scored.
	Candidate *models.Item
}

// Scorer is the interface for all scoring components.
type Scorer interface {
	// Score returns the weighted contribution for the pair.
	Score(ctx *ScoringContext) float64
	// Name returns the name of the scorer for debugging/logging.
	Name() string
}

// Result is a related item with its score.
type Result struct {
	Item  *models.Item `json:"item"`
	Score float64      `json:"score"`
}

// ScoreBreakdown explains a score per scorer.
type ScoreBreakdown struct {
	FinalScore float64            `json:"finalScore"`
	Scores     map[string]float64 `json:"scores"`
	SharedTags []string           `json:"sharedTags"`
}
