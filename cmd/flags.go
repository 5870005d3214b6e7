package cmd

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/lexlib/lexdb/internal/iodb"
	"github.com/lexlib/lexdb/internal/iofts"
	"github.com/lexlib/lexdb/pkg/db"
	"github.com/spf13/cobra"
)

// noReindexFlag adds --no-reindex to commands that change base tables.
func noReindexFlag(cmd *cobra.Command, noReindex *bool) {
	cmd.Flags().BoolVar(noReindex, "no-reindex", false,
		"do not rebuild the search index afterwards")
}

// dryRunFlag adds --dry-run to commands that run in one transaction.
func dryRunFlag(cmd *cobra.Command, dryRun *bool) {
	cmd.Flags().BoolVarP(dryRun, "dry-run", "n", false,
		"report changes and roll them back")
}

// connect opens the database configured in cfg. The caller closes the
// returned operator.
func connect(ctx context.Context) (db.Operator, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}

	cc := op.Pool().Config().ConnConfig
	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cc.User, cc.Host, cc.Port, cc.Database)

	return op, nil
}

// ensureSchema returns an error when the database has no tables yet.
func ensureSchema(ctx context.Context, op db.Operator) error {
	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		return iodb.EmptyDatabaseError(op.Pool().Config().ConnConfig.Database)
	}
	return nil
}

// reindex rebuilds the search index from the current base tables.
func reindex(ctx context.Context, op db.Operator) error {
	ix, err := iofts.NewIndexer(cfg, op)
	if err != nil {
		return err
	}
	defer ix.Close()

	res, err := ix.Rebuild(ctx)
	if err != nil {
		return err
	}

	var total int64
	for _, t := range res.Tables {
		total += t.Rows
	}
	gn.Info("Search index <em>%s</em> has %s entries",
		cfg.FTSPath(), humanize.Comma(total))
	return nil
}
