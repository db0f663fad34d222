package ingest

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTikTokTitle_NoHashtags(t *testing.T) {
	display, tags := ParseTikTokTitle("  Caught my sister sleeping  ")
	require.Equal(t, "Caught my sister sleeping", display)
	require.Empty(t, tags)
}

func TestParseTikTokTitle_SplitsAtFirstHashtag(t *testing.T) {
	display, tags := ParseTikTokTitle("Caught my sister #prank #funny #prank")
	require.Equal(t, "Caught my sister", display)
	require.Equal(t, []string{"prank", "funny"}, tags, "duplicates removed, first-seen order kept")
}

func TestParseTikTokTitle_EmojiOnlyTitleFallsBack(t *testing.T) {
	display, tags := ParseTikTokTitle("🎉🎉 #funny #prank")
	require.Equal(t, FallbackDisplayTitle, display)
	require.Equal(t, []string{"funny", "prank"}, tags)
}

func TestParseTikTokTitle_ShortTitleFallsBack(t *testing.T) {
	display, _ := ParseTikTokTitle("ha #prank")
	require.Equal(t, FallbackDisplayTitle, display)
}

func TestParseTikTokTitle_TagFiltering(t *testing.T) {
	display, tags := ParseTikTokTitle("Best prank ever #a #ok #PRANK #" + // too short, mixed case
		"thistagiswaytoolongtobeusefulatallxx x")
	require.Equal(t, "Best prank ever", display)
	require.Equal(t, []string{"ok", "prank"}, tags)
}

func TestParseTikTokTitle_TagCapAndShape(t *testing.T) {
	display, tags := ParseTikTokTitle("Epic #t1 #t2 #t3 #t4 #t5 #t6 #t7 #t8 #t9 #t10 #t11 #t12")
	require.Equal(t, "Epic", display)
	require.Len(t, tags, 10)

	shape := regexp.MustCompile(`^[a-z0-9_]{2,30}$`)
	seen := map[string]bool{}
	for _, tag := range tags {
		require.Regexp(t, shape, tag)
		require.False(t, seen[tag], "tag %q repeated", tag)
		seen[tag] = true
	}
}

func TestParseTikTokTitle_HashtagsOnly(t *testing.T) {
	display, tags := ParseTikTokTitle("#prank #fail")
	require.Equal(t, FallbackDisplayTitle, display)
	require.Equal(t, []string{"prank", "fail"}, tags)
}
