package content

import (
	"context"
	"sync"

	"github.com/hyperjump/contentkit/internal/models"
)

// Library reads every configured collection of a Loader.
type Library struct {
	loader *Loader
}

// NewLibrary wraps loader.
func NewLibrary(loader *Loader) *Library {
	return &Library{loader: loader}
}

// Loader returns the underlying loader for single-collection reads.
func (lib *Library) Loader() *Loader {
	return lib.loader
}

// All loads every collection concurrently and joins the results. The report merges
// the per-collection reports in configuration order.
func (lib *Library) All(ctx context.Context) (map[models.Collection][]*models.Item, *Report) {
	return lib.fanOut(ctx, lib.loader.List)
}

// Lint parses every file of every collection, drafts included.
func (lib *Library) Lint(ctx context.Context) (map[models.Collection][]*models.Item, *Report) {
	return lib.fanOut(ctx, lib.loader.Lint)
}

type loadFunc func(context.Context, models.Collection) ([]*models.Item, *Report)

func (lib *Library) fanOut(ctx context.Context, load loadFunc) (map[models.Collection][]*models.Item, *Report) {
	collections := lib.loader.Collections()
	items := make([][]*models.Item, len(collections))
	reports := make([]*Report, len(collections))

	var wg sync.WaitGroup
	for i, c := range collections {
		wg.Add(1)
		go func(i int, c models.Collection) {
			defer wg.Done()
			items[i], reports[i] = load(ctx, c)
		}(i, c)
	}
	wg.Wait()

	out := make(map[models.Collection][]*models.Item, len(collections))
	report := &Report{}
	for i, c := range collections {
		out[c] = items[i]
		report.Merge(reports[i])
	}
	return out, report
}

// Flatten concatenates per-collection items in configuration order.
func (lib *Library) Flatten(byCollection map[models.Collection][]*models.Item) []*models.Item {
	var all []*models.Item
	for _, c := range lib.loader.Collections() {
		all = append(all, byCollection[c]...)
	}
	if all == nil {
		all = []*models.Item{}
	}
	return all
}
