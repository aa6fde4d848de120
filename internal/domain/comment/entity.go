package comment

import (
	"strings"
	"time"
	"unicode/utf8"

	"shareit/internal/pkg/errs"
)

const MaxTextLength = 2000

var (
	ErrEmptyText   = errs.Validation("comment text must not be blank")
	ErrTextTooLong = errs.Validation("comment text is too long")
	ErrNotEligible = errs.Validation("a comment can only be left after a completed booking")
)

type Comment struct {
	id       int64
	itemID   int64
	authorID int64
	text     string
	created  time.Time
}

func NewComment(itemID, authorID int64, text string, now time.Time) (*Comment, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil, ErrEmptyText
	}
	if utf8.RuneCountInString(t) > MaxTextLength {
		return nil, ErrTextTooLong
	}
	return &Comment{
		itemID:   itemID,
		authorID: authorID,
		text:     t,
		created:  now,
	}, nil
}

func ReconstructComment(id, itemID, authorID int64, text string, created time.Time) *Comment {
	return &Comment{
		id:       id,
		itemID:   itemID,
		authorID: authorID,
		text:     text,
		created:  created,
	}
}

func (c *Comment) WithID(id int64) *Comment {
	cp := *c
	cp.id = id
	return &cp
}

func (c *Comment) ID() int64          { return c.id }
func (c *Comment) ItemID() int64      { return c.itemID }
func (c *Comment) AuthorID() int64    { return c.authorID }
func (c *Comment) Text() string       { return c.text }
func (c *Comment) Created() time.Time { return c.created }
