//go:build unit

package comment_test

import (
	"strings"
	"testing"

	"shareit/internal/domain/comment"
	"shareit/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComment(t *testing.T) {
	t.Run("text is trimmed and the timestamp kept", func(t *testing.T) {
		b := builder.NewCommentBuilder().WithText("  Great tool  ")
		c, err := b.BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "Great tool", c.Text())
		assert.True(t, b.Created.Equal(c.Created()))
		assert.Zero(t, c.ID())
	})

	t.Run("blank text", func(t *testing.T) {
		_, err := builder.NewCommentBuilder().WithText("\n ").BuildDomain()
		require.ErrorIs(t, err, comment.ErrEmptyText)
	})

	t.Run("text too long", func(t *testing.T) {
		_, err := builder.NewCommentBuilder().WithText(strings.Repeat("c", comment.MaxTextLength+1)).BuildDomain()
		require.ErrorIs(t, err, comment.ErrTextTooLong)
	})

	t.Run("limit counts characters not bytes", func(t *testing.T) {
		text := strings.Repeat("ж", comment.MaxTextLength)
		c, err := builder.NewCommentBuilder().WithText(text).BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, text, c.Text())

		_, err = builder.NewCommentBuilder().WithText(text + "ж").BuildDomain()
		require.ErrorIs(t, err, comment.ErrTextTooLong)
	})
}
