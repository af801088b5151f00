// Package tags aggregates tag usage across content items.
package tags

import (
	"sort"

	"github.com/hyperjump/contentkit/internal/models"
	"golang.org/x/text/cases"
)

// DefaultRelatedLimit is the number of related tags returned when no limit is given.
const DefaultRelatedLimit = 10

// Aggregator counts tags. By default tags are counted by their exact spelling, so
// "Go" and "go" are distinct. Lookups by tag are always case-insensitive.
type Aggregator struct {
	foldCase bool
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithFoldCase merges tags that differ only in case, displayed with the first spelling seen.
func WithFoldCase(fold bool) Option {
	return func(a *Aggregator) { a.foldCase = fold }
}

// New creates an Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// fold returns the case-folded form of tag used for comparisons.
func fold(tag string) string {
	return cases.Fold().String(tag)
}

// Match reports whether two tags are equal ignoring case.
func Match(a, b string) bool {
	return a == b || fold(a) == fold(b)
}

func (a *Aggregator) key(tag string) string {
	if a.foldCase {
		return fold(tag)
	}
	return tag
}

// Count returns tag usage across items, most used first. Every occurrence counts,
// including repeats within one item and empty tags. Ties keep the order tags were
// first seen.
func (a *Aggregator) Count(items []*models.Item) []models.TagCount {
	return a.count(items, nil)
}

// count tallies tags on items, skipping tags for which skip returns true.
func (a *Aggregator) count(items []*models.Item, skip func(string) bool) []models.TagCount {
	out := []models.TagCount{}
	index := make(map[string]int)
	for _, it := range items {
		for _, tag := range it.Tags {
			if skip != nil && skip(tag) {
				continue
			}
			k := a.key(tag)
			if i, ok := index[k]; ok {
				out[i].Count++
				continue
			}
			index[k] = len(out)
			out = append(out, models.TagCount{Tag: tag, Count: 1})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// ByCollection counts tags separately for each collection.
func (a *Aggregator) ByCollection(byCollection map[models.Collection][]*models.Item) map[models.Collection][]models.TagCount {
	out := make(map[models.Collection][]models.TagCount, len(byCollection))
	for c, items := range byCollection {
		out[c] = a.Count(items)
	}
	return out
}

// Related returns the tags that co-occur with tag on the same items, most frequent
// first, without tag itself. Only direct co-occurrence is counted. limit <= 0 uses
// DefaultRelatedLimit.
func (a *Aggregator) Related(items []*models.Item, tag string, limit int) []models.TagCount {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	target := fold(tag)
	counts := a.count(Items(items, tag), func(t string) bool { return fold(t) == target })
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// Items returns the items carrying tag, ignoring case, in input order.
func Items(items []*models.Item, tag string) []*models.Item {
	out := []*models.Item{}
	if tag == "" {
		return out
	}
	target := fold(tag)
	for _, it := range items {
		for _, t := range it.Tags {
			if fold(t) == target {
				out = append(out, it)
				break
			}
		}
	}
	return out
}
