package schema

import (
	"fmt"
	"strings"
	"sync"

	gschema "gorm.io/gorm/schema"
)

// Model is a table-backed struct of this package.
type Model interface {
	TableName() string
}

// FTSTokenizer makes full-text matching insensitive to case and
// diacritics.
const FTSTokenizer = "unicode61 remove_diacritics 2"

// InsertColumns returns columns that a client supplies on INSERT,
// in struct order. Columns filled by the server are skipped.
func InsertColumns(m Model) []string {
	var res []string
	for _, f := range fields(m) {
		_, opts, _ := strings.Cut(f.Tag.Get("db"), ",")
		if opts == "server" {
			continue
		}
		res = append(res, f.DBName)
	}
	return res
}

// FTSColumns returns columns copied to the full-text index.
func FTSColumns(m Model) []string {
	var res []string
	for _, f := range fields(m) {
		if f.Tag.Get("fts") != "indexed" {
			continue
		}
		res = append(res, f.DBName)
	}
	return res
}

// FTSTable returns the name of the full-text index of a model.
func FTSTable(m Model) string {
	return m.TableName() + "_fts"
}

// FTSTableDDL returns the CREATE statement of the FTS5 virtual table
// of a model. The rowid of the index is the id of the base table.
func FTSTableDDL(m Model) string {
	return fmt.Sprintf(
		"CREATE VIRTUAL TABLE IF NOT EXISTS %s USING fts5(%s, tokenize='%s')",
		FTSTable(m),
		strings.Join(FTSColumns(m), ", "),
		FTSTokenizer,
	)
}

var parseCache sync.Map

// fields returns columns of a model in struct order as GORM sees them.
// Models are fixed at compile time, so a parse error is a programming
// error.
func fields(m Model) []*gschema.Field {
	s, err := gschema.Parse(m, &parseCache, gschema.NamingStrategy{})
	if err != nil {
		panic(fmt.Sprintf("cannot parse model %T: %s", m, err))
	}
	res := make([]*gschema.Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.DBName != "" {
			res = append(res, f)
		}
	}
	return res
}
