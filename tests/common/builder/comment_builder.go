//go:build unit || e2e

package builder

import (
	"time"

	"shareit/internal/domain/comment"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/usecase/queries"
)

type CommentBuilder struct {
	ID         int64
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Text       string
	Created    time.Time
}

func NewCommentBuilder() *CommentBuilder {
	return &CommentBuilder{
		ID:         1,
		ItemID:     1,
		AuthorID:   2,
		AuthorName: "Test User",
		Text:       "Worked great",
		Created:    time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *CommentBuilder) With(mutate func(*CommentBuilder)) *CommentBuilder {
	mutate(b)
	return b
}

func (b *CommentBuilder) BuildDomain() (*comment.Comment, error) {
	return comment.NewComment(b.ItemID, b.AuthorID, b.Text, b.Created)
}

func (b *CommentBuilder) BuildCreateRequestDTO() reqdto.AddCommentRequest {
	return reqdto.AddCommentRequest{Text: b.Text}
}

func (b *CommentBuilder) BuildView() *queries.CommentView {
	return &queries.CommentView{
		ID:         b.ID,
		ItemID:     b.ItemID,
		AuthorID:   b.AuthorID,
		AuthorName: b.AuthorName,
		Text:       b.Text,
		Created:    b.Created,
	}
}

func (b *CommentBuilder) WithText(text string) *CommentBuilder {
	b.Text = text
	return b
}
