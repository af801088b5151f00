package ranking

import (
	"strings"

	"github.com/hyperjump/contentkit/internal/tags"
)

// CategoryScorer awards a fixed bonus when both items have the same category.
// Items without a category, such as releases, never earn it.
type CategoryScorer struct {
	weight float64
}

// NewCategoryScorer creates a CategoryScorer.
func NewCategoryScorer(weight float64) *CategoryScorer {
	return &CategoryScorer{weight: weight}
}

// Name returns the scorer name.
func (s *CategoryScorer) Name() string {
	return "category"
}

// Score returns the weight when categories match, ignoring case.
func (s *CategoryScorer) Score(ctx *ScoringContext) float64 {
	a, b := ctx.Source.Category, ctx.Candidate.Category
	if a == "" || b == "" || !strings.EqualFold(a, b) {
		return 0
	}
	return s.weight
}

// TagScorer awards weight for each candidate tag also carried by the source.
type TagScorer struct {
	weight float64
}

// NewTagScorer creates a TagScorer.
func NewTagScorer(weight float64) *TagScorer {
	return &TagScorer{weight: weight}
}

// Name returns the scorer name.
func (s *TagScorer) Name() string {
	return "tags"
}

// Score returns weight times the number of shared tags.
func (s *TagScorer) Score(ctx *ScoringContext) float64 {
	return s.weight * float64(len(SharedTags(ctx.Source.Tags, ctx.Candidate.Tags)))
}

// SharedTags returns the candidate tags that also appear in source, compared
// ignoring case, in candidate order.
func SharedTags(source, candidate []string) []string {
	var shared []string
	for _, ct := range candidate {
		for _, st := range source {
			if tags.Match(st, ct) {
				shared = append(shared, ct)
				break
			}
		}
	}
	return shared
}
