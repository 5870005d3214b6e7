// Package extract finds judgment metadata inside the judgment text.
//
// Published judgments open with a header that names the case number,
// the Hijri year, the court, its circuit and city, the judgment number
// and its date. Scraped CSV exports often keep only the text, so these
// fields are recovered from it. Matching is best effort: a field that
// is not found stays empty.
package extract

import (
	"regexp"
	"strings"

	"github.com/lexlib/lexdb/pkg/textnorm"
)

// CityWindow is the number of leading characters searched for a city
// name.
const CityWindow = 1000

// Cities are the city names recognized in judgment headers, in the
// order they are tried.
var Cities = []string{
	"الرياض", "جدة", "مكة المكرمة", "المدينة المنورة", "الدمام",
	"الأحساء", "الطائف", "بريدة", "تبوك", "القطيف", "خميس مشيط",
	"الخبر", "حفر الباطن", "الجبيل", "الخرج", "أبها", "حائل", "نجران",
	"ينبع", "صبيا", "الدوادمي", "بيشة", "أبو عريش", "سراة عبيدة",
	"القنفذة", "محايل", "عنيزة", "الرس", "عرعر", "سكاكا", "الباحة",
	"جازان",
}

const digit = `[0-9٠-٩۰-۹]`

var (
	spaceRe = regexp.MustCompile(`\s+`)

	caseIDRe = regexp.MustCompile(
		`(?:رقم القضية|القضية رقم)\s*[:\-]?\s*(` + digit + `+)`)
	yearRe = regexp.MustCompile(`(?:لعام|عام)\s*(` + digit + `{4})`)
	courtRe = regexp.MustCompile(
		`المحكمة\s+(?:التجارية|الجزائية|الأحوال الشخصية|العامة|العمالية|` +
			`الإدارية\s+العليا|الإدارية)`)
	circuitRe = regexp.MustCompile(
		`الدائرة\s+(?:الأولى|الثانية|الثالثة|الرابعة|الخامسة|السادسة|` +
			`الجزائية|التجارية|الحقوقية|المرورية|[^\s:،.]+(?:\s+[^\s:،.]+)?)`)
	judgmentNumberRe = regexp.MustCompile(
		`(?:رقم الحكم|الحكم رقم|الصك رقم|رقم الصك)\s*[:\-]?\s*(` + digit + `+)`)
	dateRe = regexp.MustCompile(
		`(?:التاريخ|تاريخ|بتاريخ)\s*[:\-]?\s*(` +
			digit + `{1,4}[/\-]` + digit + `{1,2}[/\-]` + digit + `{1,4})`)
)

// Fields are metadata found in a judgment text. Numbers use ASCII
// digits.
type Fields struct {
	CaseID         string
	Year           string
	CourtBody      string
	CircuitType    string
	City           string
	JudgmentNumber string
	JudgmentDate   string
}

// IsEmpty is true when nothing was found.
func (f Fields) IsEmpty() bool {
	return f == Fields{}
}

// FromText extracts Fields from a judgment text.
func FromText(text string) Fields {
	var res Fields
	if strings.TrimSpace(text) == "" {
		return res
	}
	text = strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))

	res.CaseID = number(caseIDRe, text)
	res.Year = number(yearRe, text)
	res.CourtBody = courtRe.FindString(text)
	res.CircuitType = strings.TrimSpace(circuitRe.FindString(text))
	res.City = city(text)
	res.JudgmentNumber = number(judgmentNumberRe, text)
	res.JudgmentDate = number(dateRe, text)
	return res
}

// Map returns found fields keyed by judgments column names.
func (f Fields) Map() map[string]string {
	res := make(map[string]string)
	add := func(col, val string) {
		if val != "" {
			res[col] = val
		}
	}
	add("case_id", f.CaseID)
	add("year", f.Year)
	add("court_body", f.CourtBody)
	add("circuit_type", f.CircuitType)
	add("city", f.City)
	add("judgment_number", f.JudgmentNumber)
	add("judgment_date", f.JudgmentDate)
	return res
}

func number(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return textnorm.ToLatinDigits(m[1])
}

func city(text string) string {
	if r := []rune(text); len(r) > CityWindow {
		text = string(r[:CityWindow])
	}
	for _, c := range Cities {
		if strings.Contains(text, c) {
			return c
		}
	}
	return ""
}
