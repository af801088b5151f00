package content

import (
	"bytes"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// frontMatter is the union of the blog, release and doc schemas. Which fields are
// read, and which are required, depends on the collection (see schemaFor).
type frontMatter struct {
	Title        string   `yaml:"title" toml:"title"`
	Description  string   `yaml:"description" toml:"description"`
	PublishedAt  rawDate  `yaml:"publishedAt" toml:"publishedAt"`
	UpdatedAt    rawDate  `yaml:"updatedAt" toml:"updatedAt"`
	Date         rawDate  `yaml:"date" toml:"date"`
	Tags         []string `yaml:"tags" toml:"tags"`
	Category     string   `yaml:"category" toml:"category"`
	Author       string   `yaml:"author" toml:"author"`
	AuthorAvatar string   `yaml:"authorAvatar" toml:"authorAvatar"`
	CoverImage   string   `yaml:"coverImage" toml:"coverImage"`
	Version      string   `yaml:"version" toml:"version"`
	Prerelease   bool     `yaml:"prerelease" toml:"prerelease"`
	Featured     bool     `yaml:"featured" toml:"featured"`
	Breaking     bool     `yaml:"breaking" toml:"breaking"`
	Draft        bool     `yaml:"draft" toml:"draft"`
}

// rawDate keeps a date field as authored. TOML date literals decode to time.Time and
// are formatted back to text.
type rawDate string

// UnmarshalTOML implements toml.Unmarshaler.
func (d *rawDate) UnmarshalTOML(v any) error {
	switch t := v.(type) {
	case string:
		*d = rawDate(t)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			*d = rawDate(t.Format(time.DateOnly))
		} else {
			*d = rawDate(t.Format(time.RFC3339))
		}
	default:
		return fmt.Errorf("unsupported date value %v", v)
	}
	return nil
}

var formats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// splitFrontMatter decodes the leading front matter block into fm and returns the body.
// A file without front matter is returned whole with fm left zero.
func splitFrontMatter(data []byte, fm *frontMatter) ([]byte, error) {
	body, err := frontmatter.Parse(bytes.NewReader(data), fm, formats...)
	if err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	return body, nil
}
