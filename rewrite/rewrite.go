// Package rewrite replaces shortened Shopee links inside post text with
// their affiliate equivalents. It is pure string transformation: no I/O, no
// state, safe for concurrent use.
package rewrite

import (
	"regexp"
	"strings"
)

// shortLinkPattern matches the shortened form Shopee renders inline:
// s.shopee.vn followed by an alphanumeric slug.
var shortLinkPattern = regexp.MustCompile(`s\.shopee\.vn/[A-Za-z0-9]+`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ReplaceShopeeLinks rewrites every shortened Shopee link found in content
// with its affiliate replacement. oldLinks and newLinks are positionally
// paired; a pairing is used for a match when its original either contains
// the matched short link or appears verbatim in the text. Trailing
// truncation markers (… or runs of periods) directly after a link are
// consumed, since the replacement is the full untruncated URL. The result
// has whitespace runs collapsed and is trimmed.
//
// With no pairings at all the content is returned untouched. Matches with
// no usable pairing (none applies, or the replacement is still empty) are
// left in place.
func ReplaceShopeeLinks(content string, oldLinks, newLinks []string) string {
	if len(oldLinks) == 0 || len(newLinks) == 0 {
		return content
	}

	pairs := len(oldLinks)
	if len(newLinks) < pairs {
		pairs = len(newLinks)
	}

	result := content

	seen := make(map[string]bool)
	for _, match := range shortLinkPattern.FindAllString(content, -1) {
		if seen[match] {
			continue
		}
		seen[match] = true

		for i := 0; i < pairs; i++ {
			oldLink, newLink := oldLinks[i], newLinks[i]
			if newLink == "" {
				// No resolution yet for this pairing
				continue
			}
			if !strings.Contains(oldLink, match) && !strings.Contains(result, oldLink) {
				continue
			}

			// First consume the link together with any trailing truncation
			// marker, then whatever bare occurrences remain.
			withMarker := regexp.MustCompile(regexp.QuoteMeta(match) + `[…\.]+`)
			result = withMarker.ReplaceAllString(result, newLink)
			result = strings.ReplaceAll(result, match, newLink)
			break
		}
	}

	result = whitespaceRun.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
