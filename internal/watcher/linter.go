package watcher

import (
	"path/filepath"

	"github.com/hyperjump/contentkit/internal/content"
	"github.com/hyperjump/contentkit/internal/models"
	"github.com/hyperjump/contentkit/pkg/utils"
	"go.uber.org/zap"
)

// Result is the outcome of re-checking one changed file.
type Result struct {
	Path    string
	Removed bool
	Item    *models.Item
	Report  *content.Report
}

// Linter re-parses changed files through a loader and logs their problems. It keeps
// nothing between events.
type Linter struct {
	loader   *content.Loader
	root     string
	logger   *zap.Logger
	onResult func(Result)
}

// LinterOption configures a Linter.
type LinterOption func(*Linter)

// WithResultHook receives every result after it is logged.
func WithResultHook(fn func(Result)) LinterOption {
	return func(l *Linter) { l.onResult = fn }
}

// NewLinter creates a linter for files under root, which must be the directory the
// loader's filesystem is rooted at.
func NewLinter(loader *content.Loader, root string, logger *zap.Logger, opts ...LinterOption) *Linter {
	l := &Linter{loader: loader, root: filepath.Clean(root), logger: utils.OrNop(logger)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// rel converts an absolute path to the slash-separated form the loader expects.
func (l *Linter) rel(path string) (string, bool) {
	rel, err := filepath.Rel(l.root, path)
	if err != nil || !inDir(l.root, path) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Changed re-checks the file at path.
func (l *Linter) Changed(path string) {
	rel, ok := l.rel(path)
	if !ok {
		return
	}
	item, report, ok := l.loader.Check(rel)
	if !ok {
		l.logger.Debug("changed file is not in a collection", zap.String("path", rel))
		return
	}
	switch {
	case !report.OK():
		for _, f := range report.Failures {
			l.logger.Warn("content file invalid", zap.String("path", f.Path), zap.Error(f.Err))
		}
	case !report.Clean():
		for _, w := range report.Warnings {
			problems := make([]string, len(w.Problems))
			for i, p := range w.Problems {
				problems[i] = p.Error()
			}
			l.logger.Warn("front matter validation", zap.String("path", w.Path), zap.Strings("problems", problems))
		}
	default:
		l.logger.Info("content file ok",
			zap.String("path", rel),
			zap.String("id", item.ID()),
			zap.Bool("draft", item.Draft))
	}
	if l.onResult != nil {
		l.onResult(Result{Path: rel, Item: item, Report: report})
	}
}

// Removed logs a deleted file.
func (l *Linter) Removed(path string) {
	rel, ok := l.rel(path)
	if !ok {
		return
	}
	l.logger.Info("content file removed", zap.String("path", rel))
	if l.onResult != nil {
		l.onResult(Result{Path: rel, Removed: true})
	}
}
