// package emoji strips emoji code points from short user-facing strings.
// Both the TikTok title parser and the comment validator need to decide
// whether any real text remains once emoji are removed.
package emoji

import "strings"

// Strip removes emoji runes (and the joiners and modifiers that ride along
// with them) from s. Non-emoji text is left untouched.
func Strip(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if IsEmoji(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsEmoji reports whether r falls in one of the Unicode blocks used by
// emoji, or is one of the invisible companions (variation selector,
// zero-width joiner, keycap combiner) that only occur inside emoji
// sequences.
func IsEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF:
		// Emoticons, pictographs, transport, flags, supplemental blocks.
		return true
	case r >= 0x2600 && r <= 0x27BF:
		// Miscellaneous symbols and dingbats.
		return true
	case r >= 0x2B00 && r <= 0x2BFF:
		// Stars and geometric shapes used as emoji.
		return true
	case r == 0xFE0F, r == 0x200D, r == 0x20E3:
		return true
	}
	return false
}
