//go:build unit

package item_test

import (
	"strings"
	"testing"

	"shareit/internal/domain/item"
	"shareit/internal/pkg/ptr"
	"shareit/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*builder.ItemBuilder)
		errIs  error
	}{
		{name: "valid item", mutate: func(*builder.ItemBuilder) {}},
		{name: "unavailable item", mutate: func(b *builder.ItemBuilder) { b.WithAvailable(false) }},
		{name: "blank name", mutate: func(b *builder.ItemBuilder) { b.WithName(" \t") }, errIs: item.ErrEmptyName},
		{name: "blank description", mutate: func(b *builder.ItemBuilder) { b.WithDescription("") }, errIs: item.ErrEmptyDescription},
		{name: "name too long", mutate: func(b *builder.ItemBuilder) { b.WithName(strings.Repeat("x", item.MaxNameLength+1)) }, errIs: item.ErrNameTooLong},
		{name: "description too long", mutate: func(b *builder.ItemBuilder) { b.WithDescription(strings.Repeat("x", item.MaxDescriptionLength+1)) }, errIs: item.ErrDescriptionTooLong},
		{name: "multibyte name at limit", mutate: func(b *builder.ItemBuilder) { b.WithName(strings.Repeat("ж", item.MaxNameLength)) }},
		{name: "multibyte name too long", mutate: func(b *builder.ItemBuilder) { b.WithName(strings.Repeat("ж", item.MaxNameLength+1)) }, errIs: item.ErrNameTooLong},
		{name: "multibyte description at limit", mutate: func(b *builder.ItemBuilder) { b.WithDescription(strings.Repeat("ж", item.MaxDescriptionLength)) }},
		{name: "availability missing", mutate: func(b *builder.ItemBuilder) { b.WithoutAvailable() }, errIs: item.ErrAvailabilityRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := builder.NewItemBuilder().With(tt.mutate).BuildDomain()
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), got.OwnerID())
		})
	}
}

func TestItemApply(t *testing.T) {
	t.Run("partial patch", func(t *testing.T) {
		it := builder.NewItemBuilder().BuildStored()
		require.NoError(t, it.Apply(item.Patch{Available: ptr.To(false)}))

		want := builder.NewItemBuilder().WithAvailable(false).BuildStored()
		if diff := cmp.Diff(want, it, cmp.AllowUnexported(item.Item{})); diff != "" {
			t.Errorf("item mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("invalid field leaves the item untouched", func(t *testing.T) {
		it := builder.NewItemBuilder().BuildStored()
		err := it.Apply(item.Patch{Name: ptr.To("Hammer"), Description: ptr.To("  ")})
		require.ErrorIs(t, err, item.ErrEmptyDescription)
		assert.Equal(t, "Drill", it.Name())
	})

	t.Run("IsEmpty", func(t *testing.T) {
		assert.True(t, item.Patch{}.IsEmpty())
		assert.False(t, item.Patch{Name: ptr.To("x")}.IsEmpty())
	})
}

func TestMatchesText(t *testing.T) {
	available := builder.NewItemBuilder().WithName("Power DRILL").WithDescription("Makes holes").BuildStored()
	hidden := builder.NewItemBuilder().WithAvailable(false).BuildStored()

	tests := []struct {
		name string
		it   *item.Item
		text string
		want bool
	}{
		{name: "name, any case", it: available, text: "drill", want: true},
		{name: "description substring", it: available, text: "HOLE", want: true},
		{name: "no match", it: available, text: "saw", want: false},
		{name: "blank text matches nothing", it: available, text: "  ", want: false},
		{name: "unavailable never matches", it: hidden, text: "drill", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.it.MatchesText(tt.text))
		})
	}
}

func TestIsOwnedBy(t *testing.T) {
	it := builder.NewItemBuilder().WithOwner(3).BuildStored()
	assert.True(t, it.IsOwnedBy(3))
	assert.False(t, it.IsOwnedBy(4))
}
