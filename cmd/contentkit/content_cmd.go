package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyperjump/contentkit/internal/cli"
	"github.com/hyperjump/contentkit/internal/content"
	"github.com/hyperjump/contentkit/internal/models"
	"github.com/hyperjump/contentkit/internal/tags"
)

// listFilters are the narrowing flags of the list command, applied in field order to
// items already in collection order.
type listFilters struct {
	tag      string
	category string
	featured bool
	breaking bool
	channel  string
	latest   bool
	sections bool
	limit    int
}

func (f listFilters) apply(items []*models.Item) ([]*models.Item, error) {
	if f.tag != "" {
		items = tags.Items(items, f.tag)
	}
	if f.category != "" {
		items = content.ByCategory(items, f.category)
	}
	if f.featured {
		items = content.Featured(items)
	}
	if f.breaking {
		items = content.Breaking(items)
	}
	switch f.channel {
	case "":
	case "stable":
		items = content.Stable(items)
	case "prerelease":
		items = content.Prereleases(items)
	default:
		return nil, fmt.Errorf("unknown channel %q (want stable or prerelease)", f.channel)
	}
	if f.latest {
		if latest := content.LatestRelease(items); latest != nil {
			return []*models.Item{latest}, nil
		}
		return []*models.Item{}, nil
	}
	if f.limit > 0 && len(items) > f.limit {
		items = items[:f.limit]
	}
	return items, nil
}

// collection parses name and checks that the content config defines it.
func (a *app) collection(name string) (models.Collection, error) {
	c, err := models.ParseCollection(name)
	if err != nil {
		return "", err
	}
	if _, ok := a.cfg.Content.Collection(string(c)); !ok {
		return "", fmt.Errorf("collection %q is not configured", c)
	}
	return c, nil
}

func (a *app) listCmd() *cobra.Command {
	var f listFilters
	cmd := &cobra.Command{
		Use:   "list <collection>",
		Short: "List the items of a collection, newest first",
		Long:  "Lists blog posts, releases (highest version first) or docs. Drafts are never listed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.collection(args[0])
			if err != nil {
				return err
			}
			items, _ := a.loader().List(cmd.Context(), c)
			items, err = f.apply(items)
			if err != nil {
				return err
			}
			if f.sections {
				return cli.WriteSections(cmd.OutOrStdout(), content.Sections(items), a.format)
			}
			return cli.WriteItems(cmd.OutOrStdout(), items, a.format)
		},
	}
	cmd.Flags().StringVar(&f.tag, "tag", "", "only items carrying this tag (any case)")
	cmd.Flags().StringVar(&f.category, "category", "", "only items in this category")
	cmd.Flags().BoolVar(&f.featured, "featured", false, "only featured items")
	cmd.Flags().BoolVar(&f.breaking, "breaking", false, "only releases with breaking changes")
	cmd.Flags().StringVar(&f.channel, "channel", "", "releases channel: stable or prerelease")
	cmd.Flags().BoolVar(&f.latest, "latest", false, "only the latest release (stable preferred)")
	cmd.Flags().BoolVar(&f.sections, "sections", false, "group docs by section")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "maximum number of items (0 = all)")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <collection> <slug>",
		Short: "Show one item with its body",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.collection(args[0])
			if err != nil {
				return err
			}
			item, ok := a.loader().Get(cmd.Context(), c, args[1])
			if !ok {
				return fmt.Errorf("%s %q not found", c, args[1])
			}
			return cli.WriteItem(cmd.OutOrStdout(), item, a.format)
		},
	}
}

func (a *app) tagsCmd() *cobra.Command {
	var (
		collection   string
		byCollection bool
		related      string
	)
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Count tags across collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib := a.library()
			agg := a.aggregator()
			out := cmd.OutOrStdout()

			var items []*models.Item
			if collection != "" {
				c, err := a.collection(collection)
				if err != nil {
					return err
				}
				items, _ = lib.Loader().List(cmd.Context(), c)
			} else {
				all, _ := lib.All(cmd.Context())
				if byCollection {
					return cli.WriteTagsByCollection(out, agg.ByCollection(all), lib.Loader().Collections(), a.format)
				}
				items = lib.Flatten(all)
			}

			if related != "" {
				if len(tags.Items(items, related)) == 0 {
					return unknownTagError(related, tags.Suggest(related, agg.Count(items), tags.DefaultMaxDistance))
				}
				return cli.WriteTagCounts(out, agg.Related(items, related, a.cfg.Tags.RelatedLimit), a.format)
			}
			return cli.WriteTagCounts(out, agg.Count(items), a.format)
		},
	}
	cmd.Flags().StringVar(&collection, "collection", "", "count one collection only")
	cmd.Flags().BoolVar(&byCollection, "by-collection", false, "count each collection separately")
	cmd.Flags().StringVar(&related, "related", "", "tags that co-occur with this tag")
	return cmd
}

func unknownTagError(tag string, suggestions []tags.Suggestion) error {
	if len(suggestions) == 0 {
		return fmt.Errorf("no items tagged %q", tag)
	}
	names := make([]string, len(suggestions))
	for i, s := range suggestions {
		names[i] = s.Tag
	}
	return fmt.Errorf("no items tagged %q (did you mean: %s?)", tag, strings.Join(names, ", "))
}

func (a *app) relatedCmd() *cobra.Command {
	var (
		limit   int
		explain bool
	)
	cmd := &cobra.Command{
		Use:   "related <collection> <slug>",
		Short: "Rank items related to one item by shared category and tags",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.collection(args[0])
			if err != nil {
				return err
			}
			loader := a.loader()
			source, ok := loader.Get(cmd.Context(), c, args[1])
			if !ok {
				return fmt.Errorf("%s %q not found", c, args[1])
			}
			items, _ := loader.List(cmd.Context(), c)
			ranker := a.ranker()
			results := ranker.Related(items, source.Slug, limit)

			entries := make([]cli.RelatedEntry, len(results))
			for i, r := range results {
				entries[i] = cli.RelatedEntry{Item: r.Item, Score: r.Score}
				if explain {
					entries[i].Breakdown = ranker.Breakdown(source, r.Item)
				}
			}
			return cli.WriteRelated(cmd.OutOrStdout(), source, entries, a.format)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of related items (0 = configured limit)")
	cmd.Flags().BoolVar(&explain, "explain", false, "show each item's score breakdown")
	return cmd
}

func (a *app) lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Validate every content file, drafts included",
		Long:  "Parses every file of every collection and reports malformed files and front matter problems. Exits non-zero on any failure, or on any warning with --strict.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, report := a.library().Lint(cmd.Context())
			if err := cli.WriteReport(cmd.OutOrStdout(), report, a.format); err != nil {
				return err
			}
			return lintResult(report, a.cfg.Content.Strict)
		},
	}
}

// lintResult turns a report into the lint exit status.
func lintResult(report *content.Report, strict bool) error {
	if !report.OK() {
		return fmt.Errorf("lint: %d files failed", len(report.Failures))
	}
	if strict && !report.Clean() {
		return fmt.Errorf("lint: %d files have front matter warnings", len(report.Warnings))
	}
	return nil
}
