package onix

import (
	"strings"

	"golang.org/x/net/html"
)

const (
	lineBreak = "<br>"

	// TextContent index that leads the description.
	leadTextIndex = 4
)

// assembleContent joins the TextContent entries: entry 4 first followed by a
// blank line, then entries 3 down to 0, each on its own line.
func assembleContent(textContents Node) string {
	if textContents.Len() == 0 {
		return ""
	}

	var b strings.Builder

	if text, ok := textContents.At(leadTextIndex).Get("Text").Text(); ok {
		b.WriteString(text)
		b.WriteString(lineBreak + lineBreak)
	}

	for i := leadTextIndex - 1; i >= 0; i-- {
		if text, ok := textContents.At(i).Get("Text").Text(); ok {
			b.WriteString(text)
			b.WriteString(lineBreak)
		}
	}

	return SanitizeContent(b.String())
}

// SanitizeContent removes every tag except br. Text is kept byte for byte,
// entities are not decoded.
func SanitizeContent(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))

	var b strings.Builder
	b.Grow(len(s))

	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Raw())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			raw := string(z.Raw())
			if name, _ := z.TagName(); string(name) == "br" {
				b.WriteString(raw)
			}
		}
	}
}
