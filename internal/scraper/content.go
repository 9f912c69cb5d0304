package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Elements that are not reader-facing body text: quoted posts, signatures,
// expand/collapse chrome and inline scripts.
const strippedContentNodes = "blockquote, .bbCodeBlock--quote, .message-signature, .js-unfurl, script, style"

// contentSelection locates the post body using the content wrapper class
// list, pattern first, defaults on a miss.
func (e *Extractor) contentSelection(container *goquery.Selection) *goquery.Selection {
	for _, class := range e.contentClasses() {
		if elem := container.Find("div." + class).First(); elem.Length() > 0 {
			return elem
		}
	}
	return nil
}

// plainText flattens the post body to visible text only. Quotes, signatures
// and script/style nodes are dropped before stripping so the result is what
// a reader sees, with whitespace collapsed.
func plainText(content *goquery.Selection) string {
	if content == nil || content.Length() == 0 {
		return ""
	}
	clone := content.Clone()
	clone.Find(strippedContentNodes).Remove()
	return strings.Join(strings.Fields(clone.Text()), " ")
}
