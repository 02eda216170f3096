package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	xmlBlockRe     = regexp.MustCompile(`(?s)<\?xml.*?\?>|<!\[CDATA\[.*?\]\]>|<[^>]{1,200}>`)
	letterSpacedRe = regexp.MustCompile(`\b(?:[A-Za-z] ){2,}[A-Za-z]\b`)
	digitSpacedRe  = regexp.MustCompile(`\b(?:[0-9] ){2,}[0-9]\b`)
	multiSpaceRe   = regexp.MustCompile(`[ \t]{2,}`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
	spaceBeforeNL  = regexp.MustCompile(`[ \t]+\n`)
)

// CleanText normalizes extractor output: strips markup and control bytes,
// re-joins letter-spaced words ("A g r e e m e n t" -> "Agreement") and
// collapses runs of whitespace and blank lines.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = xmlBlockRe.ReplaceAllString(text, " ")

	text = letterSpacedRe.ReplaceAllStringFunc(text, stripInnerSpaces)
	text = digitSpacedRe.ReplaceAllStringFunc(text, stripInnerSpaces)

	text = strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20 || r == 0x7f:
			return -1
		case !unicode.IsPrint(r):
			return -1
		}
		return r
	}, text)

	text = multiSpaceRe.ReplaceAllString(text, " ")
	text = spaceBeforeNL.ReplaceAllString(text, "\n")
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

func stripInnerSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
