// Package markdown turns post bodies into plain-text summaries.
package markdown

import (
	"regexp"

	"github.com/philly/folio/internal/platform/textutil"
)

// DefaultExcerptLength is the summary length used for post excerpts and SEO
// descriptions.
const DefaultExcerptLength = 160

// Each pass replaces its matches with a single space. Order matters: images
// are removed before links so "![alt](src)" is not half-matched as a link.
var excerptPasses = []*regexp.Regexp{
	regexp.MustCompile("```[\\s\\S]*?```"),    // fenced code
	regexp.MustCompile("`[^`]*`"),             // inline code
	regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`), // images
	regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`),  // links
	regexp.MustCompile("[#>*_`~-]+"),          // structural symbols
}

var whitespaceRun = regexp.MustCompile(`[` + textutil.SpaceClass + `]+`)

// ExtractExcerpt strips markdown markup from text, folds whitespace and
// returns at most maxLength characters. Truncation counts runes and does not
// look for word boundaries. A negative maxLength yields "".
func ExtractExcerpt(text string, maxLength int) string {
	for _, re := range excerptPasses {
		text = re.ReplaceAllLiteralString(text, " ")
	}
	text = whitespaceRun.ReplaceAllLiteralString(text, " ")
	text = textutil.TrimSpace(text)

	return truncate(text, maxLength)
}

func truncate(s string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == maxLength {
			return s[:i]
		}
		n++
	}
	return s
}
