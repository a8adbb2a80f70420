package keyboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	require.Nil(t, NewBuilder().Row().Build())

	markup := NewBuilder().
		Row(Button("✅", "approve_request:1"), Button("❌", "reject_request:1")).
		Row(URLButton("🎥", "https://meet.google.com/abc")).
		Build()

	require.Len(t, markup.InlineKeyboard, 2)
	require.Equal(t, "reject_request:1", markup.InlineKeyboard[0][1].CallbackData)
	require.Equal(t, "https://meet.google.com/abc", markup.InlineKeyboard[1][0].URL)
}
