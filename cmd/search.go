/*
Copyright © 2026 The lexdb Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/lexlib/lexdb/internal/iodb"
	"github.com/lexlib/lexdb/internal/iofts"
	"github.com/lexlib/lexdb/pkg/lifecycle"
	"github.com/lexlib/lexdb/pkg/schema"
	"github.com/spf13/cobra"
)

// getSearchCmd returns the search command.
func getSearchCmd() *cobra.Command {
	var (
		principles bool
		limit      int
	)

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search judgments or principles",
		Long: `Search the full-text index of judgments or principles.

A result contains every word of the query. Punctuation and operator
words are matched as plain text. Arabic diacritics are ignored. Results are ordered by
relevance, matches in snippets are wrapped in [ and ].

The search uses the local index only, run 'lexdb reindex' after
changing the database outside of lexdb.

Examples:
  lexdb search "عقد إيجار"
  lexdb search --principles "الضرر"
  lexdb search -l 50 تعويض`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSearch(cmd, strings.Join(args, " "), principles, limit)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	searchCmd.Flags().BoolVarP(&principles, "principles", "p", false,
		"search principles instead of judgments")
	searchCmd.Flags().IntVarP(&limit, "limit", "l", iofts.DefaultLimit,
		"maximal number of results")

	return searchCmd
}

func runSearch(
	cmd *cobra.Command,
	query string,
	principles bool,
	limit int,
) error {
	ctx := cmd.Context()

	// search reads the local index only, no database connection
	ix, err := iofts.NewIndexer(cfg, iodb.NewPgxOperator())
	if err != nil {
		return err
	}
	defer ix.Close()

	q := lifecycle.SearchQuery{
		Text:  query,
		Table: schema.Judgment{}.TableName(),
		Limit: limit,
	}
	if principles {
		q.Table = schema.Principle{}.TableName()
	}

	hits, err := ix.Search(ctx, q)
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		gn.Info("No matches for <em>%s</em>", query)
		return nil
	}

	out := cmd.OutOrStdout()
	for _, h := range hits {
		key := h.Key
		if key == "" {
			key = fmt.Sprintf("#%d", h.ID)
		}
		fmt.Fprintf(out, "%s\t%s\n", key, h.Snippet)
	}
	return nil
}
