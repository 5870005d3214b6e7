// Package textnorm cleans judgment and principle texts.
//
// Cleaning is an ordered pipeline of pure text-to-text steps. Each step
// only removes characters, so the result is never longer than its
// input, and running the pipeline twice gives the same result as
// running it once.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

// Step is one text-to-text transformation of the pipeline.
type Step func(string) string

// Pipeline is the ordered list of steps applied by Normalize.
var Pipeline = []Step{
	StripSourceMarkers,
	TrimTrailingSpace,
	TrimTrailingEmptyLines,
}

// OCRPipeline extends Pipeline with cleanup of texts that came from
// scanned documents. Page breaks go first so that lines joined by
// them are cleaned like any other line.
var OCRPipeline = []Step{
	RemovePageBreaks,
	StripSourceMarkers,
	TrimTrailingSpace,
	RemovePageNumbers,
	RemoveFooters,
	FixOCRDates,
	CollapseBlankLines,
	TrimTrailingEmptyLines,
}

// MarkerCodes are the single-letter codes of source-attribution markers.
const MarkerCodes = "قمن"

var markerRe = regexp.MustCompile(`/[` + MarkerCodes + `]\.?$`)

// arabicDiacriticsRe matches tashkeel and Quranic annotation marks.
var arabicDiacriticsRe = regexp.MustCompile(
	`[\x{064B}-\x{065F}\x{0670}\x{06D6}-\x{06DC}\x{06DF}-\x{06E4}` +
		`\x{06E7}-\x{06E8}\x{06EA}-\x{06ED}]`,
)

// Normalize runs text through all steps of the Pipeline.
func Normalize(text string) string {
	return Apply(text, Pipeline)
}

// Apply runs text through steps in order.
func Apply(text string, steps []Step) string {
	for _, step := range steps {
		text = step(text)
	}
	return text
}

// StripSourceMarkers removes trailing source-attribution markers such
// as "/ق" or "/م." from every line. Whitespace after a marker is
// tolerated, and repeated markers are removed until none is left.
func StripSourceMarkers(text string) string {
	return mapLines(text, func(line string) string {
		for {
			trimmed := trimRight(line)
			loc := markerRe.FindStringIndex(trimmed)
			if loc == nil {
				return line
			}
			line = trimmed[:loc[0]]
		}
	})
}

// TrimTrailingSpace removes trailing whitespace from every line.
func TrimTrailingSpace(text string) string {
	return mapLines(text, trimRight)
}

// TrimTrailingEmptyLines drops blank lines at the end of the text.
// Blank lines inside the text are kept.
func TrimTrailingEmptyLines(text string) string {
	lines := strings.Split(text, "\n")
	end := len(lines)
	for end > 0 && trimRight(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[:end], "\n")
}

// StripDiacritics removes Arabic diacritics. It is used for search
// index values and queries, not for stored texts.
func StripDiacritics(text string) string {
	return arabicDiacriticsRe.ReplaceAllString(text, "")
}

var digitsReplacer = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
)

// ToLatinDigits replaces Arabic-Indic and extended Arabic-Indic digits
// with ASCII digits.
func ToLatinDigits(text string) string {
	return digitsReplacer.Replace(text)
}

func mapLines(text string, fn func(string) string) string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = fn(lines[i])
	}
	return strings.Join(lines, "\n")
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
