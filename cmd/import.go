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
	"context"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/lexlib/lexdb/internal/iofs"
	"github.com/lexlib/lexdb/internal/ioimport"
	"github.com/lexlib/lexdb/pkg/config"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	var (
		batchSize  int
		skipFailed bool
		extract    bool
		noReindex  bool
	)

	importCmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import judgments from a CSV file",
		Long: `Import court judgments from a CSV file into the judgments table.

The file is streamed and inserted in batches, each batch in its own
transaction. Headers are matched case-insensitively, known aliases are
accepted (for example "Case Number" for case_id, "Content" for text).
Missing columns are stored as NULL, extra columns are ignored. With
--extract-fields, NULL metadata columns are filled with the case number,
year, court, circuit, city, judgment number and date found in the text.

Judgments with an already known case_id are skipped, so a file can be
imported again safely. By default the first failing batch stops the
import, batches committed before it stay in the database.

The search index is rebuilt after the import, including an import that
stopped after storing some batches, unless --no-reindex is given.

Examples:
  lexdb import judgments.csv
  lexdb import judgments.csv --batch-size 500
  lexdb import texts-only.csv --extract-fields
  lexdb import judgments.csv --skip-failed-batches --no-reindex`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runImport(cmd, args[0], batchSize, skipFailed, extract,
				noReindex)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	importCmd.Flags().IntVarP(&batchSize, "batch-size", "b", 0,
		"rows per INSERT statement (default from config)")
	importCmd.Flags().BoolVar(&skipFailed, "skip-failed-batches", false,
		"log and skip batches that fail to insert")
	importCmd.Flags().BoolVar(&extract, "extract-fields", false,
		"fill empty metadata columns from the judgment text")
	noReindexFlag(importCmd, &noReindex)

	return importCmd
}

// reindexPartial rebuilds the search index after an import that
// stopped with some batches already committed. When the run was
// cancelled, or the rebuild fails, the user is told to reindex.
func reindexPartial(
	ctx context.Context,
	inserted int64,
	rebuild func(context.Context) error,
) bool {
	if inserted == 0 {
		return false
	}
	if ctx.Err() == nil {
		err := rebuild(ctx)
		if err == nil {
			return true
		}
		slog.Error("Cannot rebuild search index", "error", err)
	}
	gn.Warn("%s rows were stored, search index is stale: run <em>lexdb reindex</em>",
		humanize.Comma(inserted))
	return false
}

func runImport(
	cmd *cobra.Command,
	path string,
	batchSize int,
	skipFailed bool,
	extract bool,
	noReindex bool,
) error {
	ctx := cmd.Context()

	// fail fast before connecting to the database
	exists, err := iofs.FileExists(path)
	if err != nil {
		return err
	}
	if !exists {
		return ioimport.FileNotFoundError(path)
	}

	var importOpts []config.Option
	if cmd.Flags().Changed("batch-size") {
		importOpts = append(importOpts, config.OptImportBatchSize(batchSize))
	}
	if cmd.Flags().Changed("skip-failed-batches") {
		importOpts = append(importOpts,
			config.OptImportSkipFailedBatches(&skipFailed))
	}
	if cmd.Flags().Changed("extract-fields") {
		importOpts = append(importOpts,
			config.OptImportExtractFields(&extract))
	}
	if len(importOpts) > 0 {
		cfg.Update(importOpts)
	}

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if err = ensureSchema(ctx, op); err != nil {
		return err
	}

	im := ioimport.NewImporter(cfg, op)
	stats, err := im.Import(ctx, path)
	if err != nil {
		if !noReindex {
			reindexPartial(ctx, stats.Inserted, func(ctx context.Context) error {
				return reindex(ctx, op)
			})
		}
		return err
	}

	gn.Info("Imported <em>%s</em> of %s rows in %d batches (%s)",
		humanize.Comma(stats.Inserted), humanize.Comma(stats.Rows),
		stats.Batches, gnfmt.TimeString(stats.Duration.Seconds()))
	if dup := stats.Rows - stats.Inserted - stats.FailedRows; dup > 0 {
		gn.Info("%s rows had known case ids and were skipped",
			humanize.Comma(dup))
	}

	if noReindex {
		return nil
	}
	return reindex(ctx, op)
}
