package textnorm_test

import (
	"testing"

	"github.com/lexlib/lexdb/pkg/textnorm"
	"github.com/stretchr/testify/assert"
)

func TestStripSourceMarkers(t *testing.T) {
	tests := []struct {
		msg, in, out string
	}{
		{"no marker", "نص عادي", "نص عادي"},
		{"qaf marker", "حكم المحكمة /ق", "حكم المحكمة "},
		{"marker with period", "حكم المحكمة/م.", "حكم المحكمة"},
		{"marker with trailing space", "حكم /ن  \t", "حكم "},
		{"repeated markers", "حكم /ق /م.", "حكم "},
		{"not whitelisted", "حكم /ب", "حكم /ب"},
		{"marker inside line", "حكم /ق ثم نص", "حكم /ق ثم نص"},
		{"per line", "أ /ق\nب\nج /م", "أ \nب\nج "},
		{"slash only", "تاريخ 1445/", "تاريخ 1445/"},
	}

	for _, v := range tests {
		assert.Equal(t, v.out, textnorm.StripSourceMarkers(v.in), v.msg)
	}
}

func TestTrimTrailingSpace(t *testing.T) {
	in := "أولا  \n\tثانيا\t\n  \nثالثا \r"
	out := "أولا\n\tثانيا\n\nثالثا"
	assert.Equal(t, out, textnorm.TrimTrailingSpace(in))
}

func TestTrimTrailingEmptyLines(t *testing.T) {
	tests := []struct {
		msg, in, out string
	}{
		{"no trailing lines", "a\nb", "a\nb"},
		{"trailing lines", "a\nb\n\n\n", "a\nb"},
		{"whitespace lines", "a\n  \n\t\n", "a"},
		{"interior lines kept", "a\n\n\nb\n", "a\n\n\nb"},
		{"only blanks", "\n \n", ""},
		{"empty", "", ""},
	}

	for _, v := range tests {
		assert.Equal(t, v.out, textnorm.TrimTrailingEmptyLines(v.in), v.msg)
	}
}

func TestNormalize(t *testing.T) {
	in := "الحمد لله /ق\nنص الحكم:   \n\nحكمت المحكمة /م.  \n\n  \n"
	out := "الحمد لله\nنص الحكم:\n\nحكمت المحكمة"
	assert.Equal(t, out, textnorm.Normalize(in))
}

// TestNormalize_Properties verifies idempotence and that cleaning
// never makes a text longer.
func TestNormalize_Properties(t *testing.T) {
	samples := []string{
		"",
		"\n\n",
		"/ق",
		"/ق\n/م.\n",
		"abc /ق /ن /م.   \n",
		"line one\t\r\nline two /ق\r\n\r\n",
		"حكم /ق.\n\n\nمبدأ /ن \n \n",
		"text with /x and /ق inside /م",
		"   leading spaces stay",
		"a/ق/م/ن",
	}

	for _, s := range samples {
		once := textnorm.Normalize(s)
		twice := textnorm.Normalize(once)
		assert.Equal(t, once, twice, "Normalize should be idempotent for %q", s)
		assert.LessOrEqual(t, len(once), len(s),
			"Normalize should not grow %q", s)
	}
}

func TestStripDiacritics(t *testing.T) {
	assert.Equal(t, "محكمة", textnorm.StripDiacritics("مَحْكَمَة"))
	assert.Equal(t, "abc", textnorm.StripDiacritics("abc"))
}
