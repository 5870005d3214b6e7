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
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/lexlib/lexdb/internal/iopurge"
	"github.com/spf13/cobra"
)

// getPurgeCmd returns the purge command.
func getPurgeCmd() *cobra.Command {
	var dryRun, noReindex bool

	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete invalid judgments",
		Long: `Delete judgments whose text fails data-quality criteria.

Criteria are applied in order, a judgment is counted under the first
one it matches:
  1. empty_or_short: no text, or less than 50 characters after trimming
  2. placeholder:    a loading indicator or a UI spinner leaked into text
  3. boilerplate:    portal footer or navigation without judgment text

All deletes run in one transaction. With --dry-run the counts are
reported and the transaction is rolled back.

Examples:
  lexdb purge --dry-run
  lexdb purge`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runPurge(cmd, dryRun, noReindex)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dryRunFlag(purgeCmd, &dryRun)
	noReindexFlag(purgeCmd, &noReindex)

	return purgeCmd
}

func runPurge(cmd *cobra.Command, dryRun, noReindex bool) error {
	ctx := cmd.Context()

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if err = ensureSchema(ctx, op); err != nil {
		return err
	}

	res, err := iopurge.NewPurger(op).Purge(ctx, dryRun)
	if err != nil {
		return err
	}

	for _, c := range res.Counts {
		gn.Info("  %-15s %s", c.Label, humanize.Comma(c.Deleted))
	}
	if dryRun {
		gn.Info("Dry run: <em>%s</em> judgments would be deleted",
			humanize.Comma(res.Total()))
		return nil
	}
	gn.Info("Deleted <em>%s</em> judgments", humanize.Comma(res.Total()))

	if noReindex || res.Total() == 0 {
		return nil
	}
	return reindex(ctx, op)
}
