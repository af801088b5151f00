package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/contentkit/internal/cli"
	"github.com/hyperjump/contentkit/internal/models"
	"github.com/hyperjump/contentkit/internal/searchclient"
)

// addServerFlag registers --server, overriding search.base_url.
func addServerFlag(cmd *cobra.Command) {
	cmd.Flags().String("server", "", "search API base URL (default from config)")
}

func (a *app) searchClient() *searchclient.Client {
	return searchclient.New(a.cfg.Search.BaseURL, a.cfg.Search.Timeout, searchclient.WithLogger(a.logger))
}

// searchBackend returns the injected searcher, or a client for the configured API.
func (a *app) searchBackend() searchclient.Searcher {
	if a.searcher != nil {
		return a.searcher
	}
	return a.searchClient()
}

// userError logs the underlying failure and returns the message a visitor would see.
func (a *app) userError(msg string, err error) error {
	a.logger.Debug(msg, zap.Error(err))
	return errors.New(searchclient.UserMessage(err))
}

func (a *app) searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Query the site's search API",
		Long:  "Sends the query to GET /api/search on the search server. Query is all arguments joined by spaces.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.searchBackend().Search(cmd.Context(), joinArgs(args))
			if err != nil {
				return a.userError("search failed", err)
			}
			return cli.WriteSearchResults(cmd.OutOrStdout(), results, a.format)
		},
	}
	addServerFlag(cmd)
	return cmd
}

func (a *app) contactCmd() *cobra.Command {
	var req models.ContactRequest
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Submit a contact form request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.searchClient().SubmitContact(cmd.Context(), req); err != nil {
				return a.userError("contact submission failed", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Message sent.")
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "your name")
	cmd.Flags().StringVar(&req.Email, "email", "", "reply-to email address")
	cmd.Flags().StringVar(&req.Category, "category", "general", "request category")
	cmd.Flags().StringVar(&req.Subject, "subject", "", "subject line")
	cmd.Flags().StringVar(&req.Message, "message", "", "message body")
	addServerFlag(cmd)
	return cmd
}
