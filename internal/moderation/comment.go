// package moderation validates user-submitted comment text against a fixed,
// ordered chain of content policy checks. It is pure string work: no I/O, no
// state, deterministic output.
package moderation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jmorf/pranks/pkg/utils/emoji"
)

// Reason identifies which policy check rejected a comment.
type Reason string

const (
	ReasonTooShort             Reason = "too_short"
	ReasonTooLong              Reason = "too_long"
	ReasonLinksNotAllowed      Reason = "links_not_allowed"
	ReasonFlaggedAsSpam        Reason = "flagged_as_spam"
	ReasonNotFamilyFriendly    Reason = "not_family_friendly"
	ReasonExcessiveCaps        Reason = "excessive_caps"
	ReasonRepetitiveCharacters Reason = "repetitive_characters"
	ReasonNoRealText           Reason = "no_real_text"
)

// RejectionError carries the policy reason plus the message shown to the
// commenter.
type RejectionError struct {
	Reason  Reason
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

const (
	minCommentLength = 2
	maxCommentLength = 1000
)

// URL-like content: scheme-prefixed, www-prefixed, or a bare domain-looking
// token with an optional path.
var urlPattern = regexp.MustCompile(`(?i)(?:https?://|www\.)[^\s]+|[a-zA-Z0-9][-a-zA-Z0-9]*\.[a-zA-Z]{2,}(?:/[^\s]*)?`)

var spamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(viagra|cialis|casino|poker|lottery|bitcoin|crypto|nft|forex|trading)\b`),
	regexp.MustCompile(`(?i)\b(click here|check this|visit my|follow me|subscribe)\b`),
	regexp.MustCompile(`(?i)\b(make money|earn money|get rich|free money|easy cash)\b`),
	regexp.MustCompile(`(?i)\b(weight loss|diet pills|lose weight fast)\b`),
}

// Hand-maintained blocklist; whole-word so "classic" etc. stay clean.
var nsfwPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(fuck|shit|ass|bitch|cunt|dick|cock|pussy|nigger|faggot|retard)\b`),
	regexp.MustCompile(`(?i)\b(porn|xxx|nude|naked|sex|sexy|horny|slut|whore)\b`),
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// Check is a single named content policy predicate over the trimmed comment
// text. Checks are evaluated in order and the first failure wins, so the
// reported reason for a comment that trips several checks is stable.
type Check struct {
	Reason  Reason
	Message string
	Fails   func(trimmed string) bool
}

// Validator runs the policy chain. New checks slot into the list without
// touching the pipeline around it.
type Validator struct {
	checks []Check
}

func NewValidator() *Validator {
	return &Validator{checks: defaultChecks()}
}

// Validate applies every check to the trimmed comment text. On success it
// returns the sanitized content ready for storage; on failure it returns a
// *RejectionError naming the first check that failed.
func (v *Validator) Validate(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	for _, check := range v.checks {
		if check.Fails(trimmed) {
			return "", &RejectionError{Reason: check.Reason, Message: check.Message}
		}
	}
	return Sanitize(trimmed), nil
}

var sanitizer = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// Sanitize HTML-entity-escapes the characters that matter when the comment is
// later rendered into markup.
func Sanitize(content string) string {
	return strings.TrimSpace(sanitizer.Replace(content))
}

func defaultChecks() []Check {
	return []Check{
		{
			Reason:  ReasonTooShort,
			Message: "Comment is too short",
			Fails: func(s string) bool {
				return utf8.RuneCountInString(s) < minCommentLength
			},
		},
		{
			Reason:  ReasonTooLong,
			Message: "Comment is too long (max 1000 characters)",
			Fails: func(s string) bool {
				return utf8.RuneCountInString(s) > maxCommentLength
			},
		},
		{
			Reason:  ReasonLinksNotAllowed,
			Message: "Links are not allowed in comments",
			Fails:   urlPattern.MatchString,
		},
		{
			Reason:  ReasonFlaggedAsSpam,
			Message: "Your comment was flagged as spam",
			Fails: func(s string) bool {
				return matchesAny(spamPatterns, s)
			},
		},
		{
			Reason:  ReasonNotFamilyFriendly,
			Message: "Please keep comments family-friendly",
			Fails: func(s string) bool {
				return matchesAny(nsfwPatterns, s)
			},
		},
		{
			Reason:  ReasonExcessiveCaps,
			Message: "Please avoid using excessive capital letters",
			Fails:   hasExcessiveCaps,
		},
		{
			Reason:  ReasonRepetitiveCharacters,
			Message: "Please avoid repetitive characters",
			Fails:   hasRepetitiveChars,
		},
		{
			Reason:  ReasonNoRealText,
			Message: "Please include some actual text in your comment",
			Fails:   hasNoRealText,
		},
	}
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// hasExcessiveCaps flags shouting: among words longer than 3 characters, more
// than half being entirely uppercase. A word only counts as uppercase if it
// actually contains cased characters, so digit strings and emoji runs do not
// read as shouting.
func hasExcessiveCaps(s string) bool {
	var total, caps int
	for _, w := range strings.Fields(s) {
		if utf8.RuneCountInString(w) <= 3 {
			continue
		}
		total++
		if w == strings.ToUpper(w) && w != strings.ToLower(w) {
			caps++
		}
	}
	if total == 0 {
		return false
	}
	return float64(caps)/float64(total) > 0.5
}

// hasRepetitiveChars flags a single character repeated 5+ times in a row,
// case-insensitively ("heeeeey"). Astral-plane runes are exempt: a run of
// identical emoji is not keyboard mashing and is left for the no-real-text
// check to judge.
func hasRepetitiveChars(s string) bool {
	var prev rune
	run := 0
	for _, r := range strings.ToLower(s) {
		if r > 0xFFFF {
			prev = 0
			run = 0
			continue
		}
		if r == prev {
			run++
			if run >= 5 {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// hasNoRealText catches comments that are emoji or punctuation only but long
// enough to look substantive: strip emoji, then everything that is not
// alphanumeric or whitespace, and see whether anything meaningful is left.
func hasNoRealText(s string) bool {
	residual := strings.TrimSpace(emoji.Strip(s))
	residual = strings.TrimSpace(nonAlphanumeric.ReplaceAllString(residual, ""))
	return utf8.RuneCountInString(residual) < 2 && utf8.RuneCountInString(s) > 5
}
