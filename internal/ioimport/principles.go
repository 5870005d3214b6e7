package ioimport

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/jackc/pgx/v5"
	"github.com/lexlib/lexdb/pkg/batch"
	"github.com/lexlib/lexdb/pkg/config"
	"github.com/lexlib/lexdb/pkg/db"
	"github.com/lexlib/lexdb/pkg/lifecycle"
	"github.com/lexlib/lexdb/pkg/schema"
)

// principleEntry is one element of a section fixture file.
type principleEntry struct {
	Principle       string `json:"principle"`
	Text            string `json:"text"`
	DecisionNumbers []any  `json:"decision_numbers"`
	Source          string `json:"source"`
	SourceAr        string `json:"source_ar"`
	SourceLocalized string `json:"source_localized"`
}

type principlesImporter struct {
	cfg      *config.Config
	operator db.Operator
	builder  batch.Builder
}

// NewPrinciplesImporter creates an importer of principle fixtures.
func NewPrinciplesImporter(
	cfg *config.Config,
	op db.Operator,
) lifecycle.PrinciplesImporter {
	return &principlesImporter{
		cfg:      cfg,
		operator: op,
		builder: batch.Builder{
			Table:      schema.Principle{}.TableName(),
			Columns:    schema.InsertColumns(schema.Principle{}),
			Trailer: []batch.Literal{batch.Now},
		},
	}
}

// Import replaces all principles with entries of <dir>/<section>.json
// files. Deleting old and inserting new principles happens in one
// transaction.
func (pi *principlesImporter) Import(
	ctx context.Context,
	dir string,
) (lifecycle.PrinciplesStats, error) {
	var stats lifecycle.PrinciplesStats

	if pi.operator.Pool() == nil {
		return stats, NotConnectedError()
	}

	principles, stats, err := loadPrinciples(dir)
	if err != nil {
		return stats, err
	}

	rows := make([][]any, len(principles))
	for i := range principles {
		rows[i] = principleRow(principles[i])
	}

	size := min(pi.cfg.Import.BatchSize,
		pi.builder.MaxRows(batch.MaxParamsPostgres))

	err = pgx.BeginFunc(ctx, pi.operator.Pool(), func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, "DELETE FROM "+schema.Principle{}.TableName())
		if err != nil {
			return err
		}
		stats.Deleted = tag.RowsAffected()

		for _, chunk := range batch.Split(rows, size) {
			q, args, err := pi.builder.Build(chunk)
			if err != nil {
				return err
			}
			tag, err = tx.Exec(ctx, q, args...)
			if err != nil {
				return err
			}
			stats.Inserted += tag.RowsAffected()
		}
		return nil
	})
	if err != nil {
		stats.Deleted, stats.Inserted = 0, 0
		slog.Error("Principles import rolled back", "error", err)
		return stats, PrinciplesInsertError(err)
	}

	slog.Info("Principles imported",
		"dir", dir,
		"files", stats.Files,
		"entries", stats.Entries,
		"skipped", stats.Skipped,
		"duplicates", stats.Duplicates,
		"deleted", stats.Deleted,
		"inserted", stats.Inserted,
	)
	return stats, nil
}

// loadPrinciples reads fixture files of all known sections. Missing
// files produce a warning, entries without text are skipped. An entry
// with the same text as an earlier entry of its section is merged into
// that entry: decision numbers are joined and missing sources filled.
func loadPrinciples(
	dir string,
) ([]schema.Principle, lifecycle.PrinciplesStats, error) {
	var stats lifecycle.PrinciplesStats
	var res []schema.Principle

	info, err := os.Stat(dir)
	if err != nil {
		return nil, stats, PrinciplesDirError(dir, err)
	}
	if !info.IsDir() {
		return nil, stats, PrinciplesDirError(dir,
			fmt.Errorf("%s is not a directory", dir))
	}

	enc := gnfmt.GNjson{}
	seen := make(map[string]int)
	var nums [][]string
	for _, section := range schema.Sections {
		path := filepath.Join(dir, string(section)+".json")
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			gn.Warn("No fixture for section <em>%s</em>", section)
			slog.Warn("Principles file is missing", "path", path)
			continue
		}
		if err != nil {
			return nil, stats, PrinciplesReadError(path, err)
		}
		stats.Files++

		var entries []principleEntry
		if err = enc.Decode(data, &entries); err != nil {
			return nil, stats, PrinciplesDecodeError(path, err)
		}

		for i, e := range entries {
			stats.Entries++
			p, ns, err := newPrinciple(section, e)
			if err != nil {
				stats.Skipped++
				slog.Warn("Principle skipped",
					"file", path, "entry", i, "reason", err)
				continue
			}
			if idx, ok := seen[p.UUID]; ok {
				stats.Duplicates++
				slog.Warn("Duplicate principle merged",
					"file", path, "entry", i, "uuid", p.UUID)
				res[idx] = mergePrinciple(res[idx], p)
				nums[idx] = mergeNumbers(nums[idx], ns)
				continue
			}
			seen[p.UUID] = len(res)
			res = append(res, p)
			nums = append(nums, ns)
		}
	}

	if stats.Files == 0 {
		return nil, stats, PrinciplesDirError(dir,
			errors.New("no section files"))
	}

	for i := range res {
		b, err := enc.Encode(nums[i])
		if err != nil {
			return nil, stats, PrinciplesDecodeError(dir, err)
		}
		res[i].DecisionNumbers = string(b)
	}
	return res, stats, nil
}

var errNoText = errors.New("principle text is blank")

// newPrinciple converts a fixture entry to a principle and its
// decision numbers. The numbers are encoded once all duplicates are
// merged.
func newPrinciple(
	section schema.Section,
	e principleEntry,
) (schema.Principle, []string, error) {
	var res schema.Principle

	text := strings.TrimSpace(e.Principle)
	if text == "" {
		text = strings.TrimSpace(e.Text)
	}
	if text == "" {
		return res, nil, errNoText
	}

	srcLocalized := e.SourceLocalized
	if srcLocalized == "" {
		srcLocalized = e.SourceAr
	}

	res = schema.Principle{
		UUID:            gnuuid.New(string(section) + "|" + text).String(),
		Section:         string(section),
		SectionName:     section.LocalizedName(),
		Text:            text,
		Source:          nullString(e.Source),
		SourceLocalized: nullString(srcLocalized),
	}
	return res, decisionNumbers(e.DecisionNumbers), nil
}

// mergePrinciple fills sources of p that are missing with the ones of
// dup.
func mergePrinciple(p, dup schema.Principle) schema.Principle {
	if !p.Source.Valid {
		p.Source = dup.Source
	}
	if !p.SourceLocalized.Valid {
		p.SourceLocalized = dup.SourceLocalized
	}
	return p
}

// mergeNumbers appends numbers of add that are not in nums yet.
func mergeNumbers(nums, add []string) []string {
	for _, n := range add {
		if !slices.Contains(nums, n) {
			nums = append(nums, n)
		}
	}
	return nums
}

// decisionNumbers converts numbers and strings of a fixture list to
// strings. Other values are dropped.
func decisionNumbers(vals []any) []string {
	res := make([]string, 0, len(vals))
	for _, v := range vals {
		var s string
		switch n := v.(type) {
		case string:
			s = strings.TrimSpace(n)
		case float64:
			s = strconv.FormatFloat(n, 'f', -1, 64)
		case json.Number:
			s = n.String()
		case int:
			s = strconv.Itoa(n)
		case int64:
			s = strconv.FormatInt(n, 10)
		}
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

func principleRow(p schema.Principle) []any {
	return []any{
		p.UUID,
		p.Section,
		p.SectionName,
		p.Text,
		p.DecisionNumbers,
		p.Source,
		p.SourceLocalized,
	}
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
