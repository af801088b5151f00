package content

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path"
	"strings"

	"github.com/hyperjump/contentkit/internal/config"
	"github.com/hyperjump/contentkit/internal/models"
)

var (
	// ErrInvalidSlug is returned for slugs that could escape the collection directory.
	ErrInvalidSlug = errors.New("invalid slug")
	// ErrNotFound is returned when no visible item has the slug.
	ErrNotFound = errors.New("content not found")
	// ErrDuplicateSlug is recorded for a file whose slug is already taken by a file
	// that lookups find first.
	ErrDuplicateSlug = errors.New("duplicate slug")
)

// ValidateSlug rejects traversal sequences without touching the filesystem. Blog and
// release slugs are single file names. Doc slugs may be nested with "/" but every
// segment must be a plain name.
func ValidateSlug(c models.Collection, slug string) error {
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, "\\\x00") {
		return ErrInvalidSlug
	}
	if c != models.CollectionDocs {
		if strings.Contains(slug, "/") {
			return ErrInvalidSlug
		}
		return nil
	}
	if strings.HasPrefix(slug, "/") {
		return ErrInvalidSlug
	}
	for _, seg := range strings.Split(slug, "/") {
		if seg == "" || seg == "." {
			return ErrInvalidSlug
		}
	}
	if !fs.ValidPath(slug) {
		return ErrInvalidSlug
	}
	return nil
}

// slugFor derives the slug of file p (slash-separated, relative to the content root)
// inside collection directory dir. Nested docs keep their relative path and index
// files take their directory's slug.
func slugFor(c models.Collection, dir, p string) string {
	rel := p
	if dir != "." {
		rel = strings.TrimPrefix(p, dir+"/")
	}
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	if c != models.CollectionDocs {
		return path.Base(rel)
	}
	if path.Base(rel) == "index" && path.Dir(rel) != "." {
		return path.Dir(rel)
	}
	return rel
}

// candidates lists the files that may hold slug, in lookup order.
func candidates(c models.Collection, dir string, exts []string, slug string) []string {
	names := make([]string, 0, 2*len(exts))
	for _, ext := range exts {
		names = append(names, path.Join(dir, slug+ext))
	}
	if c == models.CollectionDocs {
		for _, ext := range exts {
			names = append(names, path.Join(dir, slug, "index"+ext))
		}
	}
	return names
}

// lookupRank is the position of p among the candidates for slug, or -1 when lookups
// never reach p.
func lookupRank(c models.Collection, dir string, exts []string, slug, p string) int {
	for i, name := range candidates(c, dir, exts, slug) {
		if name == p {
			return i
		}
	}
	return -1
}

// dedupe keeps, for every slug, the file Get would resolve it to. Every other file with
// the same slug is recorded as a failure.
func dedupe(c models.Collection, cc config.CollectionConfig, files []string, report *Report) []string {
	rank := func(slug, p string) int {
		if r := lookupRank(c, cc.Dir, cc.Extensions, slug, p); r >= 0 {
			return r
		}
		return math.MaxInt
	}
	winners := make(map[string]string, len(files))
	for _, p := range files {
		slug := slugFor(c, cc.Dir, p)
		if cur, ok := winners[slug]; !ok || rank(slug, p) < rank(slug, cur) {
			winners[slug] = p
		}
	}
	if len(winners) == len(files) {
		return files
	}
	out := make([]string, 0, len(winners))
	for _, p := range files {
		slug := slugFor(c, cc.Dir, p)
		if w := winners[slug]; w != p {
			report.fail(p, fmt.Errorf("%w %q: shadowed by %s", ErrDuplicateSlug, slug, w))
			continue
		}
		out = append(out, p)
	}
	return out
}
