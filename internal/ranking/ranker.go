package ranking

import (
	"sort"

	"github.com/hyperjump/contentkit/internal/models"
)

// Ranker combines scorers to rank an item's siblings.
type Ranker struct {
	config  *RankingConfig
	scorers []Scorer
}

// NewRanker creates a new Ranker with the category and tag scorers.
func NewRanker(config *RankingConfig) *Ranker {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()

	return &Ranker{
		config: config,
		scorers: []Scorer{
			NewCategoryScorer(config.CategoryWeight),
			NewTagScorer(config.TagWeight),
		},
	}
}

// WithScorers replaces the scorers.
func (r *Ranker) WithScorers(scorers ...Scorer) *Ranker {
	r.scorers = scorers
	return r
}

// Score returns the sum of all scorers for candidate relative to source.
func (r *Ranker) Score(source, candidate *models.Item) float64 {
	ctx := &ScoringContext{Source: source, Candidate: candidate}
	score := 0.0
	for _, s := range r.scorers {
		score += s.Score(ctx)
	}
	return score
}

// Related ranks the siblings of the item with slug among items. The source itself and
// candidates scoring zero or less are never returned, even when that leaves fewer
// than limit results. Equal scores keep the input order. An unknown slug yields an
// empty result. limit <= 0 uses the configured limit.
func (r *Ranker) Related(items []*models.Item, slug string, limit int) []Result {
	results := []Result{}
	source := find(items, slug)
	if source == nil {
		return results
	}
	if limit <= 0 {
		limit = r.config.Limit
	}

	for _, candidate := range items {
		if candidate == source || candidate.ID() == source.ID() || candidate.Collection != source.Collection {
			continue
		}
		if score := r.Score(source, candidate); score > 0 {
			results = append(results, Result{Item: candidate, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Breakdown returns each scorer's contribution for candidate relative to source.
func (r *Ranker) Breakdown(source, candidate *models.Item) *ScoreBreakdown {
	ctx := &ScoringContext{Source: source, Candidate: candidate}
	b := &ScoreBreakdown{
		Scores:     make(map[string]float64, len(r.scorers)),
		SharedTags: SharedTags(source.Tags, candidate.Tags),
	}
	for _, s := range r.scorers {
		v := s.Score(ctx)
		b.Scores[s.Name()] = v
		b.FinalScore += v
	}
	if b.SharedTags == nil {
		b.SharedTags = []string{}
	}
	return b
}

func find(items []*models.Item, slug string) *models.Item {
	for _, it := range items {
		if it.Slug == slug {
			return it
		}
	}
	return nil
}
