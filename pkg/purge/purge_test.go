package purge_test

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"unicode"

	"github.com/lexlib/lexdb/pkg/purge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func byLabel(t *testing.T, label string) purge.Criterion {
	t.Helper()
	for _, c := range purge.Criteria() {
		if c.Label == label {
			return c
		}
	}
	require.FailNow(t, "criterion not found", label)
	return purge.Criterion{}
}

// validText is a realistic judgment text long enough to pass the
// length criterion.
var validText = "نص الحكم: حكمت المحكمة بقبول الدعوى شكلا ورفضها موضوعا " +
	"وإلزام المدعي بالمصروفات"

// TestCriteria_Order verifies first-match-wins order of criteria.
func TestCriteria_Order(t *testing.T) {
	var labels []string
	for _, c := range purge.Criteria() {
		labels = append(labels, c.Label)
	}
	assert.Equal(t,
		[]string{"empty_or_short", "placeholder", "boilerplate"}, labels)
}

// TestCriteria_SQLParameters verifies every SQL predicate uses exactly
// the parameters it carries, numbered from $1.
func TestCriteria_SQLParameters(t *testing.T) {
	re := regexp.MustCompile(`\$(\d+)`)
	for _, c := range purge.Criteria() {
		seen := make(map[int]struct{})
		for _, m := range re.FindAllStringSubmatch(c.Where, -1) {
			n, err := strconv.Atoi(m[1])
			require.NoError(t, err)
			seen[n] = struct{}{}
		}
		assert.Len(t, seen, len(c.Args), c.Label)
		for i := 1; i <= len(c.Args); i++ {
			assert.Contains(t, seen, i, "%s should use $%d", c.Label, i)
		}
	}
}

// TestEmptyOrShort verifies the empty and short text criterion.
func TestEmptyOrShort(t *testing.T) {
	c := byLabel(t, "empty_or_short")

	assert.True(t, c.Match(nil), "NULL text")
	assert.True(t, c.Match(ptr("")), "empty text")
	assert.True(t, c.Match(ptr(" \n\t ")), "blank text")
	assert.True(t, c.Match(ptr(" ok ")), "short text")
	assert.True(t, c.Match(ptr(strings.Repeat("ح", 49))), "49 chars")
	assert.False(t, c.Match(ptr(strings.Repeat("ح", 50))), "50 chars")
	assert.True(t, c.Match(ptr("  "+strings.Repeat("ح", 49)+"\n\n")),
		"length is counted after trim")
	assert.False(t, c.Match(ptr(validText)))
}

// TestEmptyOrShort_TrimSet verifies the SQL trim characters are exactly
// the runes Go treats as space.
func TestEmptyOrShort_TrimSet(t *testing.T) {
	c := byLabel(t, "empty_or_short")
	set, ok := c.Args[0].(string)
	require.True(t, ok)

	for r := rune(0); r <= unicode.MaxRune; r++ {
		if unicode.IsSpace(r) != strings.ContainsRune(set, r) {
			assert.Failf(t, "trim set differs", "rune %U", r)
		}
	}

	pad := "\u00a0\u3000"
	assert.True(t, c.Match(ptr(pad+strings.Repeat("ح", 49)+pad)))
	assert.False(t, c.Match(ptr(pad+strings.Repeat("ح", 50)+pad)))
}

// TestPlaceholder verifies the loading placeholder criterion.
func TestPlaceholder(t *testing.T) {
	c := byLabel(t, "placeholder")

	assert.True(t, c.Match(ptr("  Loading...please wait  ")))
	assert.True(t, c.Match(ptr("\nجاري التحميل ...")))
	assert.True(t, c.Match(ptr(validText+` <i class="fa fa-spinner"></i>`)))
	assert.True(t, c.Match(ptr(`<div class="spinner-border"></div>`)))
	assert.False(t, c.Match(ptr("The page stopped Loading")),
		"loading word must start the text")
	assert.False(t, c.Match(nil))
	assert.False(t, c.Match(ptr(validText)))
}

// TestBoilerplate verifies the portal boilerplate criterion.
func TestBoilerplate(t *testing.T) {
	c := byLabel(t, "boilerplate")

	assert.True(t, c.Match(ptr("جميع الحقوق محفوظة لوزارة العدل")))
	assert.True(t, c.Match(ptr("الرئيسية | اتصل بنا | خريطة الموقع")))
	assert.False(t, c.Match(ptr("نص الحكم: ... جميع الحقوق محفوظة")),
		"judgment marker keeps the text")
	assert.False(t, c.Match(ptr("حكمت المحكمة بما يلي")))
	assert.False(t, c.Match(nil))
}

// TestClassify verifies that a text is attributed to the first
// criterion it matches.
func TestClassify(t *testing.T) {
	tests := []struct {
		msg   string
		text  *string
		label string
	}{
		{"null", nil, "empty_or_short"},
		{"ok", ptr("ok"), "empty_or_short"},
		{"short placeholder counts as short", ptr("  Loading...please wait  "),
			"empty_or_short"},
		{"short boilerplate counts as short",
			ptr("جميع الحقوق محفوظة لوزارة العدل"), "empty_or_short"},
		{"long placeholder", ptr("Loading " + strings.Repeat(".", 60)),
			"placeholder"},
		{"long placeholder with portal phrase",
			ptr("جاري التحميل " + strings.Repeat("ـ", 50) + " اتصل بنا"),
			"placeholder"},
		{"long boilerplate", ptr(strings.Repeat("سياسة الخصوصية ", 5)),
			"boilerplate"},
	}

	for _, v := range tests {
		c, ok := purge.Classify(v.text)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.label, c.Label, v.msg)
	}

	_, ok := purge.Classify(ptr(validText))
	assert.False(t, ok, "valid text should be kept")

	_, ok = purge.Classify(ptr(validText + " جميع الحقوق محفوظة"))
	assert.False(t, ok, "boilerplate next to judgment marker is kept")
}
