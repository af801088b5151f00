package content

import (
	"fmt"
	"strings"

	"github.com/hyperjump/contentkit/internal/models"
)

// FieldError is one front matter validation problem.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError excludes an item under strict validation.
type ValidationError struct {
	Problems []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return "invalid front matter: " + strings.Join(msgs, "; ")
}

// schema names the required fields and the date field of a collection.
type schema struct {
	required  []string
	dateField string
}

func schemaFor(c models.Collection) schema {
	switch c {
	case models.CollectionReleases:
		return schema{required: []string{"version", "date", "title"}, dateField: "date"}
	case models.CollectionDocs:
		return schema{required: []string{"title"}, dateField: "publishedAt"}
	default:
		return schema{required: []string{"title", "publishedAt"}, dateField: "publishedAt"}
	}
}

func (fm *frontMatter) field(name string) string {
	switch name {
	case "title":
		return fm.Title
	case "publishedAt":
		return string(fm.PublishedAt)
	case "date":
		return string(fm.Date)
	case "version":
		return fm.Version
	}
	return ""
}

// validate checks fm against the collection schema. Problems are returned in a
// stable order: missing fields first, then malformed values.
func validate(c models.Collection, fm *frontMatter) []FieldError {
	s := schemaFor(c)
	var problems []FieldError
	for _, name := range s.required {
		if strings.TrimSpace(fm.field(name)) == "" {
			problems = append(problems, FieldError{Field: name, Message: "is required"})
		}
	}
	if raw := fm.field(s.dateField); strings.TrimSpace(raw) != "" {
		if _, ok := ParseDate(raw); !ok {
			problems = append(problems, FieldError{Field: s.dateField, Message: fmt.Sprintf("unrecognized date %q", raw)})
		}
	}
	if c == models.CollectionReleases && fm.Version != "" && !ValidVersion(fm.Version) {
		problems = append(problems, FieldError{Field: "version", Message: fmt.Sprintf("%q is not a semantic version", fm.Version)})
	}
	return problems
}
