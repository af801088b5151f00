// Package models defines core data structures for content items, tag counts, and the
// search and contact wire contracts.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Collection names one category of content, each with its own directory and field schema.
type Collection string

const (
	// CollectionBlog holds blog posts (content/blog/*.mdx).
	CollectionBlog Collection = "blog"
	// CollectionReleases holds release notes (content/releases/*.mdx).
	CollectionReleases Collection = "releases"
	// CollectionDocs holds documentation pages (content/docs/**/*.{mdx,md}).
	CollectionDocs Collection = "docs"
)

// Collections lists every known collection in display order.
var Collections = []Collection{CollectionBlog, CollectionReleases, CollectionDocs}

// ParseCollection maps a user-supplied name to a Collection.
// "release" and "doc" are accepted as aliases.
func ParseCollection(s string) (Collection, error) {
	switch s {
	case "blog", "posts":
		return CollectionBlog, nil
	case "releases", "release":
		return CollectionReleases, nil
	case "docs", "doc":
		return CollectionDocs, nil
	default:
		names := make([]string, len(Collections))
		for i, c := range Collections {
			names[i] = string(c)
		}
		return "", fmt.Errorf("unknown collection %q (want one of: %s)", s, strings.Join(names, ", "))
	}
}

// Item is one parsed content file. Items are built once per load and never mutated afterwards.
type Item struct {
	Collection Collection `json:"collection"`
	Slug       string     `json:"slug"`
	// Path is the file path relative to the content root.
	Path string `json:"path"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Excerpt     string `json:"excerpt,omitempty"`

	// Date is the authored date string (publishedAt for blog/docs, date for releases).
	Date string `json:"date,omitempty"`
	// PublishedAt is Date parsed; zero when missing or unparsable.
	PublishedAt time.Time `json:"-"`
	UpdatedAt   string    `json:"updatedAt,omitempty"`

	Tags     []string `json:"tags"`
	Category string   `json:"category,omitempty"`

	Author       string `json:"author,omitempty"`
	AuthorAvatar string `json:"authorAvatar,omitempty"`
	CoverImage   string `json:"coverImage,omitempty"`

	Version    string `json:"version,omitempty"`
	Prerelease bool   `json:"prerelease,omitempty"`

	Featured bool `json:"featured,omitempty"`
	Breaking bool `json:"breaking,omitempty"`
	Draft    bool `json:"draft,omitempty"`

	// Section is the docs grouping derived from the first path segment.
	Section string `json:"section,omitempty"`

	Content     string `json:"content,omitempty"`
	ReadingTime int    `json:"readingTime"`
}

// ID returns a stable identifier unique across collections.
func (it *Item) ID() string {
	return string(it.Collection) + ":" + it.Slug
}

// Summary returns a copy without the body, for listing responses.
func (it *Item) Summary() *Item {
	c := *it
	c.Content = ""
	return &c
}

// TagCount is the number of occurrences of a tag across a set of items.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// CategoryCount is the number of items in a category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
