package content

import (
	"sort"
	"strings"

	"github.com/hyperjump/contentkit/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// The functions below operate on already loaded, draft-free items. They never modify
// their input; sorted results are new slices.

// SortByDate returns items newest first. Items without a parsable date come last;
// ties keep their input order.
func SortByDate(items []*models.Item) []*models.Item {
	out := append([]*models.Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].PublishedAt, out[j].PublishedAt
		if a.IsZero() {
			return false
		}
		return b.IsZero() || a.After(b)
	})
	return out
}

// SortByVersion returns releases highest version first, ignoring dates. A release
// outranks its own prereleases; invalid versions come last.
func SortByVersion(items []*models.Item) []*models.Item {
	out := append([]*models.Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return CompareVersions(out[i].Version, out[j].Version) > 0
	})
	return out
}

// Featured returns the featured items.
func Featured(items []*models.Item) []*models.Item {
	return filter(items, func(it *models.Item) bool { return it.Featured })
}

// Recent returns the n newest items. n <= 0 returns all of them.
func Recent(items []*models.Item, n int) []*models.Item {
	out := SortByDate(items)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// ByCategory returns items whose category equals category, ignoring case.
func ByCategory(items []*models.Item, category string) []*models.Item {
	return filter(items, func(it *models.Item) bool {
		return it.Category != "" && strings.EqualFold(it.Category, category)
	})
}

// Categories counts items per category, most used first. Categories differing only in
// case are merged under their first spelling.
func Categories(items []*models.Item) []models.CategoryCount {
	out := []models.CategoryCount{}
	index := make(map[string]int)
	for _, it := range items {
		if it.Category == "" {
			continue
		}
		key := strings.ToLower(it.Category)
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, models.CategoryCount{Category: it.Category, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Breaking returns releases flagged as breaking.
func Breaking(items []*models.Item) []*models.Item {
	return filter(items, func(it *models.Item) bool { return it.Breaking })
}

// Prereleases returns releases marked prerelease.
func Prereleases(items []*models.Item) []*models.Item {
	return filter(items, func(it *models.Item) bool { return it.Prerelease })
}

// Stable returns releases that are not prereleases.
func Stable(items []*models.Item) []*models.Item {
	return filter(items, func(it *models.Item) bool { return !it.Prerelease })
}

// LatestRelease returns the highest stable release, or the highest prerelease when
// there is no stable one. Returns nil for no releases.
func LatestRelease(items []*models.Item) *models.Item {
	sorted := SortByVersion(items)
	for _, it := range sorted {
		if !it.Prerelease {
			return it
		}
	}
	if len(sorted) > 0 {
		return sorted[0]
	}
	return nil
}

// Section groups docs sharing a first path segment.
type Section struct {
	Name  string         `json:"name"`
	Items []*models.Item `json:"items"`
}

// Sections groups docs by section, sections and their items ordered by name and title.
// Top-level docs form a section with an empty name, listed first.
func Sections(items []*models.Item) []Section {
	index := make(map[string]int)
	var out []Section
	for _, it := range items {
		i, ok := index[it.Section]
		if !ok {
			i = len(out)
			index[it.Section] = i
			out = append(out, Section{Name: it.Section})
		}
		out[i].Items = append(out[i].Items, it)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	for _, s := range out {
		sort.SliceStable(s.Items, func(i, j int) bool {
			return strings.ToLower(s.Items[i].Title) < strings.ToLower(s.Items[j].Title)
		})
	}
	return out
}

// sectionFor derives a display section from a doc path relative to the docs
// directory: "getting-started/install.mdx" belongs to "Getting Started".
func sectionFor(rel string) string {
	first, _, nested := strings.Cut(rel, "/")
	if !nested {
		return ""
	}
	words := strings.NewReplacer("-", " ", "_", " ").Replace(first)
	// Casers are stateful; one per call keeps concurrent loads safe.
	return cases.Title(language.English).String(words)
}

func filter(items []*models.Item, keep func(*models.Item) bool) []*models.Item {
	out := []*models.Item{}
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
