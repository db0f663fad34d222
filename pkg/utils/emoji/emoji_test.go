package emoji

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"🎉🎉 party", " party"},
		{"no emoji here", "no emoji here"},
		{"😂", ""},
		{"thumbs 👍🏽 up", "thumbs  up"},
		{"stars ⭐✨", "stars "},
		{"keycap 1️⃣", "keycap 1"},
		{"", ""},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, Strip(tc.in), tc.in)
	}
}

func TestIsEmoji(t *testing.T) {
	require.True(t, IsEmoji('😂'))
	require.True(t, IsEmoji('⚽'))
	require.True(t, IsEmoji(0x200D))
	require.False(t, IsEmoji('a'))
	require.False(t, IsEmoji('5'))
	require.False(t, IsEmoji('#'))
	require.False(t, IsEmoji('ñ'))
}
