package ioimport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/lexlib/lexdb/pkg/extract"
	"github.com/lexlib/lexdb/pkg/textnorm"
	"golang.org/x/text/unicode/norm"
)

// headerAliases maps normalized CSV headers to judgments columns.
var headerAliases = map[string]string{
	"case":             "case_id",
	"case_id":          "case_id",
	"case_number":      "case_id",
	"id":               "case_id",
	"year":             "year",
	"year_hijri":       "year",
	"hijri_year":       "year",
	"city":             "city",
	"court":            "court_body",
	"court_body":       "court_body",
	"court_type":       "court_body",
	"circuit":          "circuit_type",
	"circuit_type":     "circuit_type",
	"court_circuit":    "circuit_type",
	"judgment_number":  "judgment_number",
	"judgement_number": "judgment_number",
	"judgment_date":    "judgment_date",
	"judgement_date":   "judgment_date",
	"date":             "judgment_date",
	"text":             "text",
	"full_text":        "text",
	"content":          "text",
}

var headerSepRe = regexp.MustCompile(`[\s\-_]+`)

const bom = "\ufeff"

// normalizeHeader lower-cases a header and collapses whitespace and
// dashes into single underscores.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, bom)
	h = strings.ToLower(strings.TrimSpace(h))
	return headerSepRe.ReplaceAllString(h, "_")
}

type coercer func(string) any

// csvSource reads CSV records as rows of judgments columns.
type csvSource struct {
	r        *csv.Reader
	columns  []string
	index    []int
	coercers []coercer

	// extract fills NULL metadata columns from the text column.
	extract bool
	textIdx int
}

// newCSVSource reads the header and prepares the mapping of CSV
// fields to columns. Missing columns become NULL, extra fields are
// ignored.
func newCSVSource(r io.Reader, columns []string) (*csvSource, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(bom)); err == nil && string(b) == bom {
		_, _ = br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errEmptyFile
	}
	if err != nil {
		return nil, err
	}

	pos := make(map[string]int)
	for i, h := range header {
		col, ok := headerAliases[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, seen := pos[col]; !seen {
			pos[col] = i
		}
	}
	if len(pos) == 0 {
		return nil, &headerError{headers: append([]string(nil), header...)}
	}

	res := &csvSource{
		r:        cr,
		columns:  columns,
		index:    make([]int, len(columns)),
		coercers: make([]coercer, len(columns)),
		textIdx:  -1,
	}
	for i, col := range columns {
		if col == "text" {
			res.textIdx = i
		}
		res.index[i] = -1
		if p, ok := pos[col]; ok {
			res.index[i] = p
		}
		res.coercers[i] = coerceText
		if col == "year" {
			res.coercers[i] = coerceYear
		}
	}
	return res, nil
}

// mapped returns the columns found in the header.
func (s *csvSource) mapped() []string {
	var res []string
	for i, col := range s.columns {
		if s.index[i] >= 0 {
			res = append(res, col)
		}
	}
	return res
}

// next returns the next row or io.EOF.
func (s *csvSource) next() ([]any, error) {
	rec, err := s.r.Read()
	if err != nil {
		return nil, err
	}

	row := make([]any, len(s.columns))
	for i, p := range s.index {
		if p < 0 || p >= len(rec) {
			continue
		}
		row[i] = s.coercers[i](rec[p])
	}
	if s.extract {
		s.fillFromText(row)
	}
	return row, nil
}

// fillFromText sets NULL columns to metadata found in the text of
// the row. Values from the CSV always win.
func (s *csvSource) fillFromText(row []any) {
	if s.textIdx < 0 {
		return
	}
	text, ok := row[s.textIdx].(string)
	if !ok {
		return
	}
	found := extract.FromText(text).Map()
	if len(found) == 0 {
		return
	}
	for i, col := range s.columns {
		if row[i] != nil {
			continue
		}
		if val, ok := found[col]; ok {
			row[i] = s.coercers[i](val)
		}
	}
}

// coerceText returns NULL for blank values, otherwise the value with
// broken UTF-8 repaired and composed to NFC.
func coerceText(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return norm.NFC.String(gnlib.FixUtf8(s))
}

// coerceYear parses a Hijri year. Arabic-Indic digits and the "هـ"
// suffix are accepted. Blank or unparsable values become NULL.
func coerceYear(s string) any {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "هـ")
	s = strings.TrimSuffix(s, "ه")
	s = strings.TrimSpace(textnorm.ToLatinDigits(s))
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return nil
	}
	return int32(n)
}
