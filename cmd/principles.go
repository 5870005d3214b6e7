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
	"github.com/gnames/gn"
	"github.com/lexlib/lexdb/internal/ioimport"
	"github.com/spf13/cobra"
)

// getPrinciplesCmd returns the principles command.
func getPrinciplesCmd() *cobra.Command {
	var noReindex bool

	principlesCmd := &cobra.Command{
		Use:   "principles <dir>",
		Short: "Replace judicial principles with JSON fixtures",
		Long: `Replace all judicial principles with entries of JSON fixture files.

The directory holds one file per court section:
  civil.json, penalty.json, administrative.json, public.json

Missing files are reported and skipped. Each file is a JSON array of
objects with "principle" (or "text"), optional "decision_numbers",
"source" and "source_ar" fields.

Old principles are deleted and new ones inserted in one transaction,
so a failed import leaves principles as they were.

Examples:
  lexdb principles ./fixtures
  lexdb principles ./fixtures --no-reindex`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPrinciples(cmd, args[0], noReindex)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	noReindexFlag(principlesCmd, &noReindex)

	return principlesCmd
}

func runPrinciples(cmd *cobra.Command, dir string, noReindex bool) error {
	ctx := cmd.Context()

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if err = ensureSchema(ctx, op); err != nil {
		return err
	}

	pi := ioimport.NewPrinciplesImporter(cfg, op)
	stats, err := pi.Import(ctx, dir)
	if err != nil {
		return err
	}

	gn.Info("Replaced %d principles with <em>%d</em> from %d files",
		stats.Deleted, stats.Inserted, stats.Files)
	if stats.Skipped > 0 {
		gn.Warn("Skipped %d entries without text", stats.Skipped)
	}
	if stats.Duplicates > 0 {
		gn.Warn("Merged %d duplicate entries into earlier ones",
			stats.Duplicates)
	}

	if noReindex {
		return nil
	}
	return reindex(ctx, op)
}
