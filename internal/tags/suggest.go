package tags

import (
	"sort"

	"github.com/hyperjump/contentkit/internal/models"
)

const (
	// DefaultMaxDistance is the largest edit distance at which a tag is suggested.
	DefaultMaxDistance = 2
	maxSuggestions     = 5
)

// Suggestion is a known tag close to an unknown one.
type Suggestion struct {
	Tag      string `json:"tag"`
	Distance int    `json:"distance"`
	Count    int    `json:"count"`
}

// Suggest returns known tags within maxDistance edits of tag, ignoring case,
// nearest first and then most used. Transposed letters count as one edit.
func Suggest(tag string, known []models.TagCount, maxDistance int) []Suggestion {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	target := []rune(fold(tag))
	out := []Suggestion{}
	seen := make(map[string]bool)
	for _, tc := range known {
		candidate := fold(tc.Tag)
		if seen[candidate] || candidate == string(target) {
			continue
		}
		seen[candidate] = true
		runes := []rune(candidate)
		if abs(len(runes)-len(target)) > maxDistance {
			continue
		}
		if d := editDistance(target, runes); d <= maxDistance {
			out = append(out, Suggestion{Tag: tc.Tag, Distance: d, Count: tc.Count})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Count > out[j].Count
	})
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// editDistance is the optimal string alignment form of Damerau-Levenshtein distance:
// insertions, deletions, substitutions and adjacent transpositions.
func editDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	d := make([][]int, len(a)+1)
	for i := range d {
		d[i] = make([]int, len(b)+1)
		d[i][0] = i
	}
	for j := range d[0] {
		d[0][j] = j
	}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d[i][j] = min(d[i-1][j]+1, d[i][j-1]+1, d[i-1][j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				d[i][j] = min(d[i][j], d[i-2][j-2]+cost)
			}
		}
	}
	return d[len(a)][len(b)]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
