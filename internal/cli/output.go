// Package cli renders pipeline results for the contentkit command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/contentkit/internal/content"
	"github.com/hyperjump/contentkit/internal/models"
	"github.com/hyperjump/contentkit/internal/ranking"
	"github.com/hyperjump/contentkit/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact is one line per record, tab-separated, for shell pipelines.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a --output value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	case "":
		return OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, compact, or json)", s)
	}
}

const rule = "─────────────────────────────────────────────────────────"

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteItems writes an item listing. Bodies are never included.
func WriteItems(w io.Writer, items []*models.Item, format OutputFormat) error {
	switch format {
	case OutputJSON:
		out := make([]*models.Item, len(items))
		for i, it := range items {
			out[i] = it.Summary()
		}
		return writeJSON(w, out)
	case OutputCompact:
		for _, it := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.Slug, label(it), it.Title, strings.Join(it.Tags, ","))
		}
		return nil
	default:
		fmt.Fprintf(w, "\n%d items\n\n", len(items))
		for _, it := range items {
			writeItemHeader(w, it)
			if it.Description != "" {
				fmt.Fprintf(w, "\n%s\n", utils.Truncate(it.Description, 200))
			}
			fmt.Fprintln(w)
		}
		return nil
	}
}

// label is the date, or the version for releases.
func label(it *models.Item) string {
	if it.Version != "" {
		return it.Version
	}
	return it.Date
}

func writeItemHeader(w io.Writer, it *models.Item) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%s  %s\n", it.ID(), it.Title)
	var meta []string
	if l := label(it); l != "" {
		meta = append(meta, l)
	}
	if it.Category != "" {
		meta = append(meta, "category: "+it.Category)
	}
	if len(it.Tags) > 0 {
		meta = append(meta, "tags: "+strings.Join(it.Tags, ", "))
	}
	meta = append(meta, fmt.Sprintf("%d min read", it.ReadingTime))
	for _, f := range []struct {
		on   bool
		name string
	}{{it.Featured, "featured"}, {it.Breaking, "breaking"}, {it.Prerelease, "prerelease"}, {it.Draft, "draft"}} {
		if f.on {
			meta = append(meta, f.name)
		}
	}
	fmt.Fprintln(w, strings.Join(meta, " | "))
}

// WriteItem writes one item including its body.
func WriteItem(w io.Writer, it *models.Item, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, it)
	case OutputCompact:
		return WriteItems(w, []*models.Item{it}, format)
	default:
		writeItemHeader(w, it)
		if it.Author != "" {
			fmt.Fprintf(w, "by %s\n", it.Author)
		}
		if it.Description != "" {
			fmt.Fprintf(w, "\n%s\n", it.Description)
		}
		fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(it.Content))
		return nil
	}
}

// WriteSections writes docs grouped by section.
func WriteSections(w io.Writer, sections []content.Section, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, sections)
	}
	for _, s := range sections {
		name := s.Name
		if name == "" {
			name = "(top level)"
		}
		fmt.Fprintf(w, "%s\n", name)
		for _, it := range s.Items {
			fmt.Fprintf(w, "  %s\t%s\n", it.Slug, it.Title)
		}
	}
	return nil
}

// WriteTagCounts writes tag counts, most used first.
func WriteTagCounts(w io.Writer, counts []models.TagCount, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, counts)
	}
	for _, tc := range counts {
		if format == OutputCompact {
			fmt.Fprintf(w, "%s\t%d\n", tc.Tag, tc.Count)
		} else {
			fmt.Fprintf(w, "%5d  %s\n", tc.Count, tc.Tag)
		}
	}
	return nil
}

// WriteTagsByCollection writes per-collection tag counts in the given collection order.
func WriteTagsByCollection(w io.Writer, counts map[models.Collection][]models.TagCount, order []models.Collection, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, counts)
	}
	for _, c := range order {
		if format == OutputCompact {
			for _, tc := range counts[c] {
				fmt.Fprintf(w, "%s\t%s\t%d\n", c, tc.Tag, tc.Count)
			}
			continue
		}
		fmt.Fprintf(w, "[%s]\n", c)
		_ = WriteTagCounts(w, counts[c], format)
		fmt.Fprintln(w)
	}
	return nil
}

// RelatedEntry is a related item with an optional score explanation.
type RelatedEntry struct {
	Item      *models.Item            `json:"item"`
	Score     float64                 `json:"score"`
	Breakdown *ranking.ScoreBreakdown `json:"breakdown,omitempty"`
}

// WriteRelated writes related items for source.
func WriteRelated(w io.Writer, source *models.Item, entries []RelatedEntry, format OutputFormat) error {
	switch format {
	case OutputJSON:
		for i := range entries {
			entries[i].Item = entries[i].Item.Summary()
		}
		return writeJSON(w, struct {
			Source  *models.Item   `json:"source"`
			Related []RelatedEntry `json:"related"`
		}{source.Summary(), entries})
	case OutputCompact:
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%g\t%s\n", e.Item.Slug, e.Score, e.Item.Title)
		}
		return nil
	default:
		fmt.Fprintf(w, "\nRelated to %s (%s): %d\n\n", source.ID(), source.Title, len(entries))
		for i, e := range entries {
			fmt.Fprintf(w, "%d. [%g] %s  %s\n", i+1, e.Score, e.Item.Slug, e.Item.Title)
			if e.Breakdown != nil {
				fmt.Fprintf(w, "   category: %g  tags: %g", e.Breakdown.Scores["category"], e.Breakdown.Scores["tags"])
				if len(e.Breakdown.SharedTags) > 0 {
					fmt.Fprintf(w, " (%s)", strings.Join(e.Breakdown.SharedTags, ", "))
				}
				fmt.Fprintln(w)
			}
		}
		return nil
	}
}

// WriteReport writes load failures and validation warnings.
func WriteReport(w io.Writer, report *content.Report, format OutputFormat) error {
	if report == nil {
		report = &content.Report{}
	}
	if format == OutputJSON {
		return writeJSON(w, report)
	}
	for _, f := range report.Failures {
		if format == OutputCompact {
			fmt.Fprintf(w, "error\t%s\t%v\n", f.Path, f.Err)
		} else {
			fmt.Fprintf(w, "ERROR  %s: %v\n", f.Path, f.Err)
		}
	}
	for _, wn := range report.Warnings {
		for _, p := range wn.Problems {
			if format == OutputCompact {
				fmt.Fprintf(w, "warning\t%s\t%s\n", wn.Path, p.Error())
			} else {
				fmt.Fprintf(w, "WARN   %s: %s\n", wn.Path, p.Error())
			}
		}
	}
	if format == OutputText {
		fmt.Fprintf(w, "\n%d errors, %d warnings\n", len(report.Failures), len(report.Warnings))
	}
	return nil
}

// WriteSearchResults writes results from the external search API.
func WriteSearchResults(w io.Writer, results []models.SearchResult, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, models.SearchResponse{Results: results})
	case OutputCompact:
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Type, r.URL, r.Title)
		}
		return nil
	default:
		fmt.Fprintf(w, "\nFound %d results\n\n", len(results))
		for _, r := range results {
			fmt.Fprintln(w, rule)
			fmt.Fprintf(w, "[%s] %s\n", r.Type, r.Title)
			if len(r.Breadcrumbs) > 0 {
				fmt.Fprintf(w, "%s\n", strings.Join(r.Breadcrumbs, " › "))
			}
			fmt.Fprintf(w, "%s\n", r.URL)
			if r.Description != "" {
				fmt.Fprintf(w, "\n%s\n", utils.Truncate(r.Description, 200))
			}
			fmt.Fprintln(w)
		}
		return nil
	}
}
