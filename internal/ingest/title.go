package ingest

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jmorf/pranks/pkg/utils/emoji"
)

// FallbackDisplayTitle replaces display titles that are all hashtags and
// emoji, which would otherwise render as blank.
const FallbackDisplayTitle = "TikTok Prank Video"

const (
	minTagLength = 2
	maxTagLength = 30
	maxTags      = 10
)

var hashtagPattern = regexp.MustCompile(`#\w+`)

// ParseTikTokTitle splits a raw TikTok title into a clean display title and
// the hashtag-derived tags. TikTok captions conventionally front-load the
// human text and trail off into hashtags, so everything before the first '#'
// is the display title and everything from it onward is scanned for tags.
//
// Tags come back lowercased, length-filtered, de-duplicated in first-seen
// order and capped. YouTube titles never pass through here; the orchestrator
// copies them to the display title verbatim.
func ParseTikTokTitle(fullTitle string) (displayTitle string, tags []string) {
	hashIdx := strings.Index(fullTitle, "#")
	if hashIdx == -1 {
		return strings.TrimSpace(fullTitle), []string{}
	}

	displayTitle = strings.TrimSpace(fullTitle[:hashIdx])

	// A title that is under 3 characters once emoji are gone carries no
	// usable text.
	textOnly := strings.TrimSpace(emoji.Strip(displayTitle))
	if utf8.RuneCountInString(textOnly) < 3 {
		displayTitle = FallbackDisplayTitle
	}

	tags = []string{}
	seen := map[string]struct{}{}
	for _, match := range hashtagPattern.FindAllString(fullTitle[hashIdx:], -1) {
		tag := strings.ToLower(strings.TrimPrefix(match, "#"))
		if len(tag) < minTagLength || len(tag) > maxTagLength {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
		if len(tags) == maxTags {
			break
		}
	}

	return displayTitle, tags
}
