package textnorm

import (
	"regexp"
	"strings"
)

// PageBreak is the marker OCR tools put between pages.
const PageBreak = "---PAGE_BREAK---"

var pageBreakRe = regexp.MustCompile(
	`\n*(?:` + regexp.QuoteMeta(PageBreak) + `\n*)+`)

var blankLinesRe = regexp.MustCompile(`\n{3,}`)

// PageNumberPatterns match lines that hold nothing but a page number,
// such as "12", "- 12 -", "صفحة ٣ من ١٠" or "Page 3 of 10".
var PageNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(
		`(?m)^[ \t]*[-\x{2013}\x{2014}]?[ \t]*[0-9٠-٩]{1,4}[ \t]*[-\x{2013}\x{2014}]?[ \t]*$`),
	regexp.MustCompile(
		`(?m)^[ \t]*(?:ال)?صفحة[ \t]*(?:رقم)?[ \t]*[0-9٠-٩]+` +
			`(?:[ \t]*(?:من|/)[ \t]*[0-9٠-٩]+)?[ \t]*$`),
	regexp.MustCompile(`(?im)^[ \t]*page[ \t]+[0-9]+(?:[ \t]+of[ \t]+[0-9]+)?[ \t]*$`),
}

// FooterPatterns match printing footers of exported documents.
var FooterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^[ \t]*(?:https?://|www\.)[^ \t\n]+[ \t]*$`),
	regexp.MustCompile(`(?m)^[ \t]*(?:تاريخ الطباعة|طبع بتاريخ|تمت الطباعة)[^\n]*$`),
}

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

// dateFixes turn the letter "ه" misread for the digit five back into a
// digit when it sits inside a Hijri date, and "هو" after a date into
// the Hijri suffix "هـ".
var dateFixes = []rewrite{
	{regexp.MustCompile(`ه/ه(/١[٣٤][٠-٩]{2})`), `٥/٥$1`},
	{regexp.MustCompile(`ه(/[٠-٩]{1,2}/١[٣٤][٠-٩]{2})`), `٥$1`},
	{regexp.MustCompile(`([٠-٩]{1,2}/)ه(/١[٣٤][٠-٩]{2})`), `${1}٥${2}`},
	{regexp.MustCompile(`(١[٣٤][٠-٩]{2}/[٠-٩]{1,2}/)ه([^0-9٠-٩]|$)`), `${1}٥${2}`},
	{regexp.MustCompile(`(١[٣٤][٠-٩]{2}/)ه(/[٠-٩]{1,2})`), `${1}٥${2}`},

	{regexp.MustCompile(`ه/ه(/1[34][0-9]{2})`), `5/5$1`},
	{regexp.MustCompile(`ه(/[0-9]{1,2}/1[34][0-9]{2})`), `5$1`},
	{regexp.MustCompile(`([0-9]{1,2}/)ه(/1[34][0-9]{2})`), `${1}5${2}`},
	{regexp.MustCompile(`(1[34][0-9]{2}/[0-9]{1,2}/)ه([^0-9٠-٩]|$)`), `${1}5${2}`},
	{regexp.MustCompile(`(1[34][0-9]{2}/)ه(/[0-9]{1,2})`), `${1}5${2}`},

	{regexp.MustCompile(
		`([0-9٠-٩]+[/\-.][0-9٠-٩]+[/\-.][0-9٠-٩]+)[ \t]*هو([^0-9٠-٩\p{L}\p{N}_]|$)`),
		`${1}هـ${2}`},
}

// RemovePageBreaks replaces runs of page break markers and the
// newlines around them with a single newline.
func RemovePageBreaks(text string) string {
	return pageBreakRe.ReplaceAllString(text, "\n")
}

// RemovePageNumbers empties lines that only contain a page number.
func RemovePageNumbers(text string) string {
	return removeAll(text, PageNumberPatterns)
}

// RemoveFooters empties lines with printing footers.
func RemoveFooters(text string) string {
	return removeAll(text, FooterPatterns)
}

// CollapseBlankLines keeps at most one blank line between paragraphs.
func CollapseBlankLines(text string) string {
	return blankLinesRe.ReplaceAllString(text, "\n\n")
}

// FixOCRDates repairs digits of Hijri dates (13xx and 14xx years) that
// OCR read as the letter "ه". Text outside of dates is not touched.
func FixOCRDates(text string) string {
	if !strings.Contains(text, "ه") {
		return text
	}
	return untilStable(text, func(s string) string {
		for _, f := range dateFixes {
			s = f.re.ReplaceAllString(s, f.repl)
		}
		return s
	})
}

func removeAll(text string, res []*regexp.Regexp) string {
	for _, re := range res {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

// untilStable applies fn until the text stops changing.
func untilStable(text string, fn func(string) string) string {
	for {
		next := fn(text)
		if next == text {
			return text
		}
		text = next
	}
}
