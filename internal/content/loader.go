// Package content loads content collections (blog posts, release notes, docs) from
// MDX/Markdown files with front matter into typed items.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/hyperjump/contentkit/internal/config"
	"github.com/hyperjump/contentkit/internal/models"
	"github.com/hyperjump/contentkit/pkg/utils"
	"go.uber.org/zap"
)

// Options configures a Loader.
type Options struct {
	Collections []config.CollectionConfig
	// Strict excludes items with validation problems instead of warning about them.
	Strict         bool
	WordsPerMinute int
	CharsPerMinute int
	ExcerptLength  int
}

// OptionsFromConfig builds loader options from application config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Collections:    cfg.Content.Collections,
		Strict:         cfg.Content.Strict,
		WordsPerMinute: cfg.Reading.WordsPerMinute,
		CharsPerMinute: cfg.Reading.CharsPerMinute,
		ExcerptLength:  cfg.Excerpt.MaxLength,
	}
}

// Loader reads collections from a content root. It holds no state between calls:
// every List and Get re-reads the files.
type Loader struct {
	fsys   fs.FS
	opts   Options
	logger *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger for validation warnings and aggregate failures.
func WithLogger(l *zap.Logger) LoaderOption {
	return func(ld *Loader) { ld.logger = l }
}

// NewLoader creates a loader over fsys, typically os.DirFS(contentRoot).
// Collections default to config.DefaultCollections when none are given.
func NewLoader(fsys fs.FS, opts Options, options ...LoaderOption) *Loader {
	if len(opts.Collections) == 0 {
		opts.Collections = config.DefaultCollections()
	}
	ld := &Loader{fsys: fsys, opts: opts, logger: zap.NewNop()}
	for _, opt := range options {
		opt(ld)
	}
	ld.logger = utils.OrNop(ld.logger)
	return ld
}

// Collections returns the configured collection names in configuration order.
func (l *Loader) Collections() []models.Collection {
	out := make([]models.Collection, len(l.opts.Collections))
	for i, cc := range l.opts.Collections {
		out[i] = models.Collection(cc.Name)
	}
	return out
}

func (l *Loader) collection(c models.Collection) (config.CollectionConfig, bool) {
	for _, cc := range l.opts.Collections {
		if cc.Name == string(c) {
			cc.Dir = cleanDir(cc.Dir)
			return cc, true
		}
	}
	return config.CollectionConfig{}, false
}

func cleanDir(dir string) string {
	dir = path.Clean(strings.ReplaceAll(dir, "\\", "/"))
	return strings.TrimPrefix(dir, "/")
}

// List returns every non-draft item of collection c, sorted newest first (releases by
// version, highest first). Missing directories, unreadable files and malformed front
// matter never fail the call: they are recorded in the report and logged once.
func (l *Loader) List(ctx context.Context, c models.Collection) ([]*models.Item, *Report) {
	items, report := l.scan(ctx, c, false)
	report.log(l.logger, string(c))
	return items, report
}

// Lint parses every file of collection c, drafts included, and returns the report
// without logging it.
func (l *Loader) Lint(ctx context.Context, c models.Collection) ([]*models.Item, *Report) {
	return l.scan(ctx, c, true)
}

func (l *Loader) scan(ctx context.Context, c models.Collection, withDrafts bool) ([]*models.Item, *Report) {
	report := &Report{}
	items := []*models.Item{}
	cc, ok := l.collection(c)
	if !ok {
		report.fail(string(c), fmt.Errorf("collection %q is not configured", c))
		return items, report
	}
	files, err := l.enumerate(ctx, cc)
	if err != nil {
		report.fail(cc.Dir, fmt.Errorf("read collection directory: %w", err))
		return items, report
	}
	for _, p := range dedupe(c, cc, files, report) {
		if ctx.Err() != nil {
			break
		}
		data, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			report.fail(p, fmt.Errorf("read file: %w", err))
			continue
		}
		item, problems, err := l.parse(cc, p, data)
		if err != nil {
			report.fail(p, err)
			continue
		}
		if item.Draft && !withDrafts {
			continue
		}
		if len(problems) > 0 {
			if l.opts.Strict {
				report.fail(p, &ValidationError{Problems: problems})
				continue
			}
			report.warn(p, problems)
		}
		items = append(items, item)
	}
	if c == models.CollectionReleases {
		return SortByVersion(items), report
	}
	return SortByDate(items), report
}

// enumerate returns the files of cc with a recognized extension in walk order.
func (l *Loader) enumerate(ctx context.Context, cc config.CollectionConfig) ([]string, error) {
	var files []string
	err := fs.WalkDir(l.fsys, cc.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if p != cc.Dir && (!cc.Recursive || strings.HasPrefix(d.Name(), ".")) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !hasExtension(p, cc.Extensions) {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return files, nil
	}
	return files, err
}

func hasExtension(p string, exts []string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// Get returns the visible item with slug in collection c. It reports false when the
// slug is rejected, no file matches, the file cannot be parsed, the item fails strict
// validation, or the item is a draft. Rejected slugs never reach the filesystem.
func (l *Loader) Get(ctx context.Context, c models.Collection, slug string) (*models.Item, bool) {
	item, err := l.find(ctx, c, slug)
	if err != nil {
		l.logger.Debug("content lookup miss",
			zap.String("collection", string(c)),
			zap.String("slug", slug),
			zap.Error(err))
		return nil, false
	}
	return item, true
}

func (l *Loader) find(ctx context.Context, c models.Collection, slug string) (*models.Item, error) {
	if err := ValidateSlug(c, slug); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cc, ok := l.collection(c)
	if !ok {
		return nil, ErrNotFound
	}
	for _, name := range candidates(c, cc.Dir, cc.Extensions, slug) {
		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		item, problems, err := l.parse(cc, name, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if item.Draft {
			return nil, ErrNotFound
		}
		if len(problems) > 0 {
			if l.opts.Strict {
				return nil, &ValidationError{Problems: problems}
			}
			(&Report{Warnings: []Warning{{Path: name, Problems: problems}}}).log(l.logger, string(c))
		}
		return item, nil
	}
	return nil, ErrNotFound
}

// Check parses a single file given by its path relative to the content root, drafts
// included. It reports false when the path belongs to no collection.
func (l *Loader) Check(p string) (*models.Item, *Report, bool) {
	p = cleanDir(p)
	cc, ok := l.collectionFor(p)
	if !ok {
		return nil, nil, false
	}
	report := &Report{}
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		report.fail(p, fmt.Errorf("read file: %w", err))
		return nil, report, true
	}
	item, problems, err := l.parse(cc, p, data)
	if err != nil {
		report.fail(p, err)
		return nil, report, true
	}
	if len(problems) > 0 {
		if l.opts.Strict {
			report.fail(p, &ValidationError{Problems: problems})
		} else {
			report.warn(p, problems)
		}
	}
	return item, report, true
}

// collectionFor finds the collection whose directory and extensions match p.
func (l *Loader) collectionFor(p string) (config.CollectionConfig, bool) {
	for _, cc := range l.opts.Collections {
		dir := cleanDir(cc.Dir)
		if !hasExtension(p, cc.Extensions) {
			continue
		}
		var rel string
		switch {
		case dir == ".":
			rel = p
		case strings.HasPrefix(p, dir+"/"):
			rel = strings.TrimPrefix(p, dir+"/")
		default:
			continue
		}
		if !cc.Recursive && strings.Contains(rel, "/") {
			continue
		}
		cc.Dir = dir
		return cc, true
	}
	return config.CollectionConfig{}, false
}

// parse builds an item from a file's bytes. The error is non-nil only when the front
// matter cannot be decoded; schema problems are returned separately.
func (l *Loader) parse(cc config.CollectionConfig, p string, data []byte) (*models.Item, []FieldError, error) {
	var fm frontMatter
	body, err := splitFrontMatter(data, &fm)
	if err != nil {
		return nil, nil, err
	}
	c := models.Collection(cc.Name)
	item := &models.Item{
		Collection:   c,
		Slug:         slugFor(c, cc.Dir, p),
		Path:         p,
		Title:        strings.TrimSpace(fm.Title),
		Description:  strings.TrimSpace(fm.Description),
		Tags:         fm.Tags,
		Author:       fm.Author,
		AuthorAvatar: fm.AuthorAvatar,
		CoverImage:   fm.CoverImage,
		Featured:     fm.Featured,
		Draft:        fm.Draft,
		Content:      string(body),
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	switch c {
	case models.CollectionReleases:
		item.Date = string(fm.Date)
		item.Version = strings.TrimSpace(fm.Version)
		item.Prerelease = fm.Prerelease || (item.Version != "" && IsPrerelease(item.Version))
		item.Breaking = fm.Breaking
	default:
		item.Date = string(fm.PublishedAt)
		item.UpdatedAt = string(fm.UpdatedAt)
		item.Category = strings.TrimSpace(fm.Category)
		if c == models.CollectionDocs {
			item.Section = sectionFor(strings.TrimPrefix(p, cc.Dir+"/"))
		}
	}
	if t, ok := ParseDate(item.Date); ok {
		item.PublishedAt = t
	}
	item.Excerpt = Excerpt(item.Content, l.opts.ExcerptLength)
	if item.Description == "" {
		item.Description = item.Excerpt
	}
	item.ReadingTime = ReadingTime(item.Content, l.opts.WordsPerMinute, l.opts.CharsPerMinute)
	return item, validate(c, &fm), nil
}
