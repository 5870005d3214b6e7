// Package purge defines the data-quality criteria used to delete
// invalid judgments.
//
// Criteria form an ordered list. They are applied one after another,
// so a row matching several criteria is deleted, and counted, only
// under the first one. Every criterion carries both an SQL predicate
// for bulk deletes and an equivalent Go predicate for classification.
package purge

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinTextLength is the minimal number of characters of a trimmed
// valid text.
const MinTextLength = 50

// JudgmentMarker is the phrase that opens the actual judgment text.
const JudgmentMarker = "نص الحكم"

var (
	// LoadingPrefixes start texts captured before a page finished
	// loading.
	LoadingPrefixes = []string{"Loading", "جاري التحميل"}

	// SpinnerMarkers are UI spinner class names leaked into texts.
	SpinnerMarkers = []string{"fa-spinner", "spinner-border"}

	// BoilerplateMarkers are portal footer and navigation phrases.
	BoilerplateMarkers = []string{
		"جميع الحقوق محفوظة",
		"سياسة الخصوصية",
		"خريطة الموقع",
		"تسجيل الدخول",
		"اتصل بنا",
	}
)

// trimSet mirrors unicode.IsSpace for PostgreSQL btrim.
const trimSet = " \t\n\v\f\r\u0085\u00a0\u1680" +
	"\u2000\u2001\u2002\u2003\u2004\u2005\u2006\u2007\u2008\u2009\u200a" +
	"\u2028\u2029\u202f\u205f\u3000"

// Criterion is one rule for invalid texts.
type Criterion struct {
	// Label names the criterion in reports and logs.
	Label string

	// Where is an SQL boolean expression over the text column.
	// Its parameters are numbered from $1.
	Where string

	// Args are the values of Where parameters.
	Args []any

	// Match reports if a text (nil for NULL) violates the criterion.
	Match func(text *string) bool
}

// Criteria returns the ordered list of purge criteria.
func Criteria() []Criterion {
	return []Criterion{
		emptyOrShort(),
		placeholder(),
		boilerplate(),
	}
}

// Classify returns the first criterion matched by the text.
func Classify(text *string) (Criterion, bool) {
	for _, c := range Criteria() {
		if c.Match(text) {
			return c, true
		}
	}
	return Criterion{}, false
}

func emptyOrShort() Criterion {
	return Criterion{
		Label: "empty_or_short",
		Where: "text IS NULL OR char_length(btrim(text, $1)) < $2",
		Args:  []any{trimSet, MinTextLength},
		Match: func(text *string) bool {
			if text == nil {
				return true
			}
			return utf8.RuneCountInString(trim(*text)) < MinTextLength
		},
	}
}

func placeholder() Criterion {
	var conds []string
	var args []any
	args = append(args, trimSet)
	for _, p := range LoadingPrefixes {
		args = append(args, p)
		conds = append(conds,
			"starts_with(btrim(text, $1), $"+strconv.Itoa(len(args))+")")
	}
	for _, m := range SpinnerMarkers {
		args = append(args, m)
		conds = append(conds, "strpos(text, $"+strconv.Itoa(len(args))+") > 0")
	}

	return Criterion{
		Label: "placeholder",
		Where: strings.Join(conds, " OR "),
		Args:  args,
		Match: func(text *string) bool {
			if text == nil {
				return false
			}
			t := trim(*text)
			for _, p := range LoadingPrefixes {
				if strings.HasPrefix(t, p) {
					return true
				}
			}
			for _, m := range SpinnerMarkers {
				if strings.Contains(*text, m) {
					return true
				}
			}
			return false
		},
	}
}

func boilerplate() Criterion {
	var conds []string
	var args []any
	for _, m := range BoilerplateMarkers {
		args = append(args, m)
		conds = append(conds, "strpos(text, $"+strconv.Itoa(len(args))+") > 0")
	}
	args = append(args, JudgmentMarker)
	where := "(" + strings.Join(conds, " OR ") + ")" +
		" AND strpos(text, $" + strconv.Itoa(len(args)) + ") = 0"

	return Criterion{
		Label: "boilerplate",
		Where: where,
		Args:  args,
		Match: func(text *string) bool {
			if text == nil || strings.Contains(*text, JudgmentMarker) {
				return false
			}
			for _, m := range BoilerplateMarkers {
				if strings.Contains(*text, m) {
					return true
				}
			}
			return false
		},
	}
}

func trim(s string) string {
	return strings.TrimFunc(s, unicode.IsSpace)
}
