package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/hyperjump/contentkit/internal/content"
	"github.com/hyperjump/contentkit/internal/models"
	"github.com/hyperjump/contentkit/internal/ranking"
)

func sampleItems() []*models.Item {
	return []*models.Item{
		{Collection: models.CollectionBlog, Slug: "hello", Title: "Hello", Date: "2024-01-01", Tags: []string{"go", "web"}, Category: "eng", ReadingTime: 2, Featured: true, Content: "body"},
		{Collection: models.CollectionReleases, Slug: "v1", Title: "One", Version: "v1.0.0", Tags: []string{}, ReadingTime: 1, Breaking: true},
	}
}

func TestParseOutputFormat(t *testing.T) {
	for in, want := range map[string]OutputFormat{"": OutputText, "text": OutputText, "JSON": OutputJSON, "compact": OutputCompact} {
		got, err := ParseOutputFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseOutputFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseOutputFormat("yaml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriteItems_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteItems(&buf, sampleItems(), OutputJSON); err != nil {
		t.Fatalf("WriteItems(json): %v", err)
	}
	var decoded []models.Item
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 2 || decoded[0].Slug != "hello" || decoded[0].Content != "" {
		t.Errorf("decoded: %+v", decoded)
	}
}

func TestWriteItems_Compact(t *testing.T) {
	var buf bytes.Buffer
	_ = WriteItems(&buf, sampleItems(), OutputCompact)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines: %q", lines)
	}
	if lines[0] != "hello\t2024-01-01\tHello\tgo,web" {
		t.Errorf("line 0: %q", lines[0])
	}
	if lines[1] != "v1\tv1.0.0\tOne\t" {
		t.Errorf("line 1: %q", lines[1])
	}
}

func TestWriteItems_Text(t *testing.T) {
	var buf bytes.Buffer
	_ = WriteItems(&buf, sampleItems(), OutputText)
	out := buf.String()
	for _, want := range []string{"2 items", "blog:hello  Hello", "tags: go, web", "2 min read", "featured", "breaking"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "body") {
		t.Error("listing should not include bodies")
	}
}

func TestWriteItem_TextIncludesBody(t *testing.T) {
	var buf bytes.Buffer
	_ = WriteItem(&buf, sampleItems()[0], OutputText)
	if !strings.Contains(buf.String(), "body") {
		t.Errorf("missing body:\n%s", buf.String())
	}
}

func TestWriteTagCounts(t *testing.T) {
	counts := []models.TagCount{{Tag: "a", Count: 2}, {Tag: "b", Count: 1}}
	var buf bytes.Buffer
	_ = WriteTagCounts(&buf, counts, OutputCompact)
	if buf.String() != "a\t2\nb\t1\n" {
		t.Errorf("compact: %q", buf.String())
	}
}

func TestWriteTagsByCollection(t *testing.T) {
	counts := map[models.Collection][]models.TagCount{
		models.CollectionBlog: {{Tag: "go", Count: 1}},
		models.CollectionDocs: {{Tag: "api", Count: 3}},
	}
	var buf bytes.Buffer
	_ = WriteTagsByCollection(&buf, counts, []models.Collection{models.CollectionDocs, models.CollectionBlog}, OutputCompact)
	if buf.String() != "docs\tapi\t3\nblog\tgo\t1\n" {
		t.Errorf("compact: %q", buf.String())
	}
}

func TestWriteRelated(t *testing.T) {
	items := sampleItems()
	entries := []RelatedEntry{{
		Item:      items[1],
		Score:     15,
		Breakdown: &ranking.ScoreBreakdown{FinalScore: 15, Scores: map[string]float64{"category": 10, "tags": 5}, SharedTags: []string{"go"}},
	}}
	var buf bytes.Buffer
	_ = WriteRelated(&buf, items[0], entries, OutputText)
	out := buf.String()
	if !strings.Contains(out, "1. [15] v1  One") || !strings.Contains(out, "category: 10  tags: 5 (go)") {
		t.Errorf("text:\n%s", out)
	}

	buf.Reset()
	_ = WriteRelated(&buf, items[0], entries, OutputJSON)
	var decoded struct {
		Source  models.Item `json:"source"`
		Related []struct {
			Score float64 `json:"score"`
		} `json:"related"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Source.Content != "" || len(decoded.Related) != 1 || decoded.Related[0].Score != 15 {
		t.Errorf("json: %s", buf.String())
	}
}

func TestWriteReport(t *testing.T) {
	report := &content.Report{
		Failures: []content.Failure{{Path: "blog/bad.mdx", Err: errors.New("parse front matter: boom")}},
		Warnings: []content.Warning{{Path: "blog/untitled.mdx", Problems: []content.FieldError{{Field: "title", Message: "is required"}}}},
	}
	var buf bytes.Buffer
	_ = WriteReport(&buf, report, OutputText)
	out := buf.String()
	for _, want := range []string{"ERROR  blog/bad.mdx: parse front matter: boom", "WARN   blog/untitled.mdx: title: is required", "1 errors, 1 warnings"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	_ = WriteReport(&buf, report, OutputJSON)
	var decoded struct {
		Failures []struct {
			Path  string `json:"path"`
			Error string `json:"error"`
		} `json:"failures"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Failures) != 1 || decoded.Failures[0].Error != "parse front matter: boom" {
		t.Errorf("json: %s", buf.String())
	}
}

func TestWriteSearchResults(t *testing.T) {
	results := []models.SearchResult{{ID: "1", Title: "Install", URL: "/docs/install", Type: models.SearchResultDocs, Breadcrumbs: []string{"Docs", "Install"}}}
	var buf bytes.Buffer
	_ = WriteSearchResults(&buf, results, OutputText)
	if !strings.Contains(buf.String(), "Found 1 results") || !strings.Contains(buf.String(), "Docs › Install") {
		t.Errorf("text:\n%s", buf.String())
	}

	buf.Reset()
	_ = WriteSearchResults(&buf, results, OutputJSON)
	var decoded models.SearchResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil || len(decoded.Results) != 1 {
		t.Errorf("json: %v %s", err, buf.String())
	}
}
