//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"shareit/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	errItemMissing := errs.NotFound("item not found")

	testCases := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{name: "nil", err: nil, want: errs.KindUnknown},
		{name: "plain error", err: errors.New("boom"), want: errs.KindUnknown},
		{name: "not found", err: errItemMissing, want: errs.KindNotFound},
		{name: "wrapped not found", err: errs.Wrap(errItemMissing, "load item"), want: errs.KindNotFound},
		{name: "validation", err: errs.Validation("bad dates"), want: errs.KindValidation},
		{name: "conflict", err: errs.Conflict("email taken"), want: errs.KindConflict},
		{name: "not owner", err: errs.NotOwner("only the owner may approve"), want: errs.KindNotOwner},
		{name: "marked low-level error", err: errs.Mark(errors.New("driver"), errs.ErrConflict), want: errs.KindConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errs.KindOf(tc.err))
		})
	}
}

func TestWrapKeepsIdentity(t *testing.T) {
	sentinel := errs.Validation("status already changed")
	wrapped := errs.Wrap(sentinel, "approve booking")

	require.ErrorIs(t, wrapped, sentinel)
	assert.True(t, errs.Is(wrapped, errs.ErrValidation))
	assert.Contains(t, wrapped.Error(), "status already changed")
	assert.Nil(t, errs.Wrap(nil, "nothing"))
}

func TestMarkNil(t *testing.T) {
	assert.Equal(t, errs.ErrNotFound, errs.Mark(nil, errs.ErrNotFound))
}

func TestExtractStackLines(t *testing.T) {
	assert.Nil(t, errs.ExtractStackLines(nil, 3))

	lines := errs.ExtractStackLines(errs.New("boom"), 2)
	assert.LessOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[0], "boom")
}
