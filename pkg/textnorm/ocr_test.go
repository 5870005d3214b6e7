package textnorm_test

import (
	"testing"

	"github.com/lexlib/lexdb/pkg/textnorm"
	"github.com/stretchr/testify/assert"
)

func TestRemovePageBreaks(t *testing.T) {
	tests := []struct {
		msg, in, out string
	}{
		{"between paragraphs", "أ\n\n---PAGE_BREAK---\n\nب", "أ\nب"},
		{"inside line", "أ---PAGE_BREAK---ب", "أ\nب"},
		{"repeated", "أ\n---PAGE_BREAK---\n---PAGE_BREAK---\nب", "أ\nب"},
		{"no break", "أ\n\nب", "أ\n\nب"},
	}

	for _, v := range tests {
		assert.Equal(t, v.out, textnorm.RemovePageBreaks(v.in), v.msg)
	}
}

func TestRemovePageNumbers(t *testing.T) {
	in := "نص\n12\nتابع\n- ٣ -\nصفحة ٤ من ١٠\nPage 5 of 9\nالمادة 12 من النظام"
	out := "نص\n\nتابع\n\n\n\nالمادة 12 من النظام"
	assert.Equal(t, out, textnorm.RemovePageNumbers(in))
}

func TestRemoveFooters(t *testing.T) {
	in := "نص\nwww.moj.gov.sa\nتاريخ الطباعة: 1445/3/2\nنهاية"
	assert.Equal(t, "نص\n\n\nنهاية", textnorm.RemoveFooters(in))
}

func TestCollapseBlankLines(t *testing.T) {
	assert.Equal(t, "a\n\nb\n\nc",
		textnorm.CollapseBlankLines("a\n\n\n\nb\n\nc"))
}

func TestFixOCRDates(t *testing.T) {
	tests := []struct {
		msg, in, out string
	}{
		{"day and month", "صدر في ه/ه/1445", "صدر في 5/5/1445"},
		{"day", "بتاريخ ه/3/1445", "بتاريخ 5/3/1445"},
		{"month", "12/ه/1445", "12/5/1445"},
		{"year first, day", "1445/3/ه ", "1445/3/5 "},
		{"year first at end", "1445/3/ه", "1445/3/5"},
		{"year first, month", "1445/ه/12", "1445/5/12"},
		{"arabic-indic day and month", "ه/ه/١٤٤٥", "٥/٥/١٤٤٥"},
		{"arabic-indic day", "ه/٣/١٤٤٥", "٥/٣/١٤٤٥"},
		{"arabic-indic year first", "١٤٤٥/٣/ه", "١٤٤٥/٣/٥"},
		{"hijri suffix", "1445/3/5 هو\n", "1445/3/5هـ\n"},
		{"suffix at end", "١٤٤٥/٣/٥ هو", "١٤٤٥/٣/٥هـ"},
		{"word after date", "1445/3/5 هوية", "1445/3/5 هوية"},
		{"no date", "هذه القضية", "هذه القضية"},
		{"not hijri year", "ه/3/2020", "ه/3/2020"},
	}

	for _, v := range tests {
		assert.Equal(t, v.out, textnorm.FixOCRDates(v.in), v.msg)
	}
}

func TestApply_OCRPipeline(t *testing.T) {
	in := "الحكم /ق\n---PAGE_BREAK---\n12\nصدر بتاريخ ه/3/1445 هو\n\n\n\n" +
		"www.example.com\n\n"
	out := "الحكم\n\nصدر بتاريخ 5/3/1445هـ"
	assert.Equal(t, out, textnorm.Apply(in, textnorm.OCRPipeline))

	// the default pipeline leaves OCR artifacts alone
	plain := "12\n---PAGE_BREAK---"
	assert.Equal(t, plain, textnorm.Normalize(plain))
}

func TestApply_OCRPipelineProperties(t *testing.T) {
	samples := []string{
		"",
		"---PAGE_BREAK---",
		"نص /ق---PAGE_BREAK---12",
		"أ\n\n\n\n- 4 -\n\n\nب /م.\n",
		"ه/ه/ه/1445 هو هو",
		"١٤٤٥/ه/ه\n\nصفحة 2 من 3\n\n",
		"www.x.org\n\n\n\nتمت الطباعة\n",
	}

	for _, s := range samples {
		once := textnorm.Apply(s, textnorm.OCRPipeline)
		twice := textnorm.Apply(once, textnorm.OCRPipeline)
		assert.Equal(t, once, twice, "OCR cleanup should be idempotent for %q", s)
		assert.LessOrEqual(t, len(once), len(s),
			"OCR cleanup should not grow %q", s)
	}
}

func TestToLatinDigits(t *testing.T) {
	assert.Equal(t, "1445", textnorm.ToLatinDigits("١٤٤٥"))
	assert.Equal(t, "1445", textnorm.ToLatinDigits("۱۴۴۵"))
	assert.Equal(t, "abc 12", textnorm.ToLatinDigits("abc 12"))
}
