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
	"github.com/lexlib/lexdb/internal/ionormalize"
	"github.com/lexlib/lexdb/pkg/textnorm"
	"github.com/spf13/cobra"
)

// getNormalizeCmd returns the normalize command.
func getNormalizeCmd() *cobra.Command {
	var dryRun, noReindex, ocr bool

	normalizeCmd := &cobra.Command{
		Use:   "normalize",
		Short: "Clean stored judgment texts",
		Long: `Clean texts of stored judgments.

Every line loses trailing source markers such as "/ق" or "/م." and
trailing whitespace, empty lines at the end of a text are dropped.
Only texts that change are updated, all updates are committed together.

With --ocr, texts of scanned documents are cleaned further: page break
markers, page number and printing footer lines are removed, Hijri dates
with the digit five misread as "ه" are repaired and runs of blank lines
are collapsed.

Examples:
  lexdb normalize --dry-run
  lexdb normalize
  lexdb normalize --ocr`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runNormalize(cmd, dryRun, noReindex, ocr)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dryRunFlag(normalizeCmd, &dryRun)
	noReindexFlag(normalizeCmd, &noReindex)
	normalizeCmd.Flags().BoolVar(&ocr, "ocr", false,
		"also remove OCR artifacts (page breaks, page numbers, footers)")

	return normalizeCmd
}

func runNormalize(cmd *cobra.Command, dryRun, noReindex, ocr bool) error {
	ctx := cmd.Context()

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if err = ensureSchema(ctx, op); err != nil {
		return err
	}

	steps := textnorm.Pipeline
	if ocr {
		steps = textnorm.OCRPipeline
	}

	res, err := ionormalize.NewNormalizer(op, steps...).Normalize(ctx, dryRun)
	if err != nil {
		return err
	}

	if dryRun {
		gn.Info("Dry run: <em>%s</em> of %s texts would change",
			humanize.Comma(res.Changed), humanize.Comma(res.Scanned))
		return nil
	}
	gn.Info("Normalized <em>%s</em> of %s texts",
		humanize.Comma(res.Changed), humanize.Comma(res.Scanned))

	if noReindex || res.Changed == 0 {
		return nil
	}
	return reindex(ctx, op)
}
