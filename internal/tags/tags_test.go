package tags

import (
	"testing"

	"github.com/hyperjump/contentkit/internal/models"
)

func tagged(slug string, tags ...string) *models.Item {
	return &models.Item{Slug: slug, Tags: tags}
}

func equalCounts(t *testing.T, got, want []models.TagCount) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCount(t *testing.T) {
	items := []*models.Item{tagged("1", "a", "b"), tagged("2", "a")}
	equalCounts(t, New().Count(items), []models.TagCount{{Tag: "a", Count: 2}, {Tag: "b", Count: 1}})
}

func TestCount_tiesKeepFirstSeenOrder(t *testing.T) {
	items := []*models.Item{tagged("1", "zeta", "alpha"), tagged("2", "mid", "alpha")}
	equalCounts(t, New().Count(items), []models.TagCount{
		{Tag: "alpha", Count: 2},
		{Tag: "zeta", Count: 1},
		{Tag: "mid", Count: 1},
	})
}

func TestCount_duplicatesWithinItemCount(t *testing.T) {
	items := []*models.Item{tagged("1", "go", "go")}
	equalCounts(t, New().Count(items), []models.TagCount{{Tag: "go", Count: 2}})
}

func TestCount_emptyTagOccurrencesCount(t *testing.T) {
	items := []*models.Item{tagged("1", "", "go"), tagged("2", "")}
	equalCounts(t, New().Count(items), []models.TagCount{{Tag: "", Count: 2}, {Tag: "go", Count: 1}})
}

func TestCount_caseSensitiveByDefault(t *testing.T) {
	items := []*models.Item{tagged("1", "JavaScript"), tagged("2", "javascript"), tagged("3", "javascript")}
	equalCounts(t, New().Count(items), []models.TagCount{
		{Tag: "javascript", Count: 2},
		{Tag: "JavaScript", Count: 1},
	})
	equalCounts(t, New(WithFoldCase(true)).Count(items), []models.TagCount{
		{Tag: "JavaScript", Count: 3},
	})
}

func TestCount_empty(t *testing.T) {
	got := New().Count(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Count(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestByCollection(t *testing.T) {
	got := New().ByCollection(map[models.Collection][]*models.Item{
		models.CollectionBlog:     {tagged("1", "go"), tagged("2", "go", "web")},
		models.CollectionReleases: {tagged("v1", "release")},
		models.CollectionDocs:     {},
	})
	equalCounts(t, got[models.CollectionBlog], []models.TagCount{{Tag: "go", Count: 2}, {Tag: "web", Count: 1}})
	equalCounts(t, got[models.CollectionReleases], []models.TagCount{{Tag: "release", Count: 1}})
	if len(got[models.CollectionDocs]) != 0 {
		t.Errorf("docs: %v", got[models.CollectionDocs])
	}
}

func TestRelated(t *testing.T) {
	items := []*models.Item{
		tagged("1", "Go", "web", "api"),
		tagged("2", "go", "web"),
		tagged("3", "rust", "web"),
		tagged("4", "GO", "cli"),
	}
	got := New().Related(items, "go", 0)
	equalCounts(t, got, []models.TagCount{
		{Tag: "web", Count: 2},
		{Tag: "api", Count: 1},
		{Tag: "cli", Count: 1},
	})

	equalCounts(t, New().Related(items, "go", 1), []models.TagCount{{Tag: "web", Count: 2}})
	if got := New().Related(items, "missing", 5); len(got) != 0 {
		t.Errorf("unknown tag: got %v", got)
	}
}

func TestRelated_oneHopOnly(t *testing.T) {
	// rust reaches go only through web; that is two hops.
	items := []*models.Item{tagged("1", "go", "web"), tagged("2", "web", "rust")}
	equalCounts(t, New().Related(items, "go", 10), []models.TagCount{{Tag: "web", Count: 1}})
}

func TestItems(t *testing.T) {
	items := []*models.Item{tagged("1", "Go"), tagged("2", "rust"), tagged("3", "go", "GO")}
	got := Items(items, "gO")
	if len(got) != 2 || got[0].Slug != "1" || got[1].Slug != "3" {
		t.Errorf("Items = %v", got)
	}
	if len(Items(items, "")) != 0 {
		t.Error("empty tag should match nothing")
	}
}

func TestMatch(t *testing.T) {
	if !Match("Straße", "STRASSE") {
		t.Error("full case folding should match ß and SS")
	}
	if Match("go", "golang") {
		t.Error("different tags matched")
	}
}

func TestSuggest(t *testing.T) {
	known := []models.TagCount{
		{Tag: "javascript", Count: 5},
		{Tag: "typescript", Count: 3},
		{Tag: "go", Count: 9},
		{Tag: "golang", Count: 1},
	}
	got := Suggest("javscript", known, 0)
	if len(got) != 1 || got[0].Tag != "javascript" || got[0].Distance != 1 {
		t.Fatalf("Suggest(javscript) = %v", got)
	}

	got = Suggest("og", known, 2)
	if len(got) == 0 || got[0].Tag != "go" || got[0].Distance != 1 {
		t.Errorf("transposition should be one edit, got %v", got)
	}

	for _, s := range Suggest("GO", known, 2) {
		if s.Tag == "go" {
			t.Errorf("the tag itself was suggested")
		}
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"ab", "ba", 1},
		{"日本", "日本語", 1},
	}
	for _, tt := range tests {
		if got := editDistance([]rune(tt.a), []rune(tt.b)); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
