package ioimport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/lexlib/lexdb/pkg/errcode"
	"github.com/lexlib/lexdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, section, content string) {
	t.Helper()
	path := filepath.Join(dir, section+".json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadPrinciples(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	writeFixture(t, dir, "civil", `[
  {"principle": " لا ضرر ولا ضرار ", "decision_numbers": [12, "34/1440"],
   "source": "Civil circuit", "source_ar": "الدائرة المدنية الأولى"},
  {"text": "العقد شريعة المتعاقدين"},
  {"principle": "   "}
]`)
	writeFixture(t, dir, "public", `[
  {"principle": "الأصل براءة الذمة", "source_localized": "الهيئة العامة",
   "source_ar": "ignored"}
]`)

	ps, stats, err := loadPrinciples(dir)
	require.NoError(t, err)

	assert.Equal(2, stats.Files)
	assert.Equal(4, stats.Entries)
	assert.Equal(1, stats.Skipped)
	require.Len(t, ps, 3)

	p := ps[0]
	assert.Equal("civil", p.Section)
	assert.Equal(schema.SectionCivil.LocalizedName(), p.SectionName)
	assert.Equal("لا ضرر ولا ضرار", p.Text)
	assert.Equal(`["12","34/1440"]`, p.DecisionNumbers)
	assert.Equal("Civil circuit", p.Source.String)
	assert.Equal("الدائرة المدنية الأولى", p.SourceLocalized.String)
	assert.Len(p.UUID, 36)

	p = ps[1]
	assert.Equal("العقد شريعة المتعاقدين", p.Text)
	assert.Equal("[]", p.DecisionNumbers)
	assert.False(p.Source.Valid)
	assert.False(p.SourceLocalized.Valid)

	p = ps[2]
	assert.Equal("public", p.Section)
	assert.Equal("الهيئة العامة", p.SourceLocalized.String)
}

// TestLoadPrinciples_StableUUID verifies that reimporting the same
// fixtures produces the same identifiers.
func TestLoadPrinciples_StableUUID(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "penalty", `[{"principle": "لا جريمة ولا عقوبة إلا بنص"}]`)
	writeFixture(t, dir, "civil", `[{"principle": "لا جريمة ولا عقوبة إلا بنص"}]`)

	ps1, _, err := loadPrinciples(dir)
	require.NoError(t, err)
	ps2, _, err := loadPrinciples(dir)
	require.NoError(t, err)

	require.Len(t, ps1, 2)
	assert.Equal(t, ps1[0].UUID, ps2[0].UUID)
	assert.Equal(t, ps1[1].UUID, ps2[1].UUID)
	assert.NotEqual(t, ps1[0].UUID, ps1[1].UUID,
		"same text in different sections")
}

func TestLoadPrinciples_Errors(t *testing.T) {
	tests := []struct {
		msg  string
		prep func(t *testing.T) string
		code gn.ErrorCode
	}{
		{"missing dir", func(t *testing.T) string {
			return filepath.Join(t.TempDir(), "none")
		}, errcode.PrinciplesDirError},
		{"file instead of dir", func(t *testing.T) string {
			path := filepath.Join(t.TempDir(), "civil.json")
			require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))
			return path
		}, errcode.PrinciplesDirError},
		{"no section files", func(t *testing.T) string {
			dir := t.TempDir()
			writeFixture(t, dir, "other", "[]")
			return dir
		}, errcode.PrinciplesDirError},
		{"not an array", func(t *testing.T) string {
			dir := t.TempDir()
			writeFixture(t, dir, "civil", `{"principle": "x"}`)
			return dir
		}, errcode.PrinciplesDecodeError},
		{"broken json", func(t *testing.T) string {
			dir := t.TempDir()
			writeFixture(t, dir, "civil", `[{"principle": `)
			return dir
		}, errcode.PrinciplesDecodeError},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, _, err := loadPrinciples(v.prep(t))
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, v.code, gnErr.Code)
		})
	}
}

func TestDecisionNumbers(t *testing.T) {
	vals := []any{
		"  7/1442 ", float64(15), json.Number("16"), 17, int64(18),
		"", true, nil, 1.5,
	}
	assert.Equal(t,
		[]string{"7/1442", "15", "16", "17", "18", "1.5"},
		decisionNumbers(vals))
	assert.Empty(t, decisionNumbers(nil))
}

func TestNewPrinciple(t *testing.T) {
	_, _, err := newPrinciple(schema.SectionCivil, principleEntry{Text: " "})
	assert.ErrorIs(t, err, errNoText)

	p, nums, err := newPrinciple(schema.SectionAdministrative,
		principleEntry{Principle: "a", Text: "b", DecisionNumbers: []any{"3"}})
	require.NoError(t, err)
	assert.Equal(t, "a", p.Text, "principle wins over text")
	assert.Equal(t, "administrative", p.Section)
	assert.Equal(t, []string{"3"}, nums)
}

// TestLoadPrinciples_Duplicates verifies that an entry repeating the
// text of an earlier one in the same section is merged into it.
func TestLoadPrinciples_Duplicates(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writeFixture(t, dir, "civil", `[
  {"principle": "مبدأ", "decision_numbers": [1, 2]},
  {"principle": "مبدأ", "decision_numbers": [2, 3], "source": "Circuit 4"},
  {"text": " مبدأ ", "source": "ignored"},
  {"principle": "مبدأ آخر"}
]`)
	writeFixture(t, dir, "public", `[{"principle": "مبدأ"}]`)

	ps, stats, err := loadPrinciples(dir)
	require.NoError(t, err)

	assert.Equal(5, stats.Entries)
	assert.Equal(2, stats.Duplicates)
	require.Len(t, ps, 3)

	p := ps[0]
	assert.Equal("مبدأ", p.Text)
	assert.Equal(`["1","2","3"]`, p.DecisionNumbers)
	assert.Equal("Circuit 4", p.Source.String, "first known source")

	assert.Equal("مبدأ آخر", ps[1].Text)
	assert.Equal("public", ps[2].Section, "other sections are not merged")

	uuids := make(map[string]bool)
	for _, p := range ps {
		uuids[p.UUID] = true
	}
	assert.Len(uuids, 3)
}
