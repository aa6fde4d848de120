package item

import (
	"strings"
	"unicode/utf8"

	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/patch"
)

const (
	MaxNameLength        = 255
	MaxDescriptionLength = 2000
)

var (
	ErrItemNotFound         = errs.NotFound("item not found")
	ErrNotItemOwner         = errs.NotFound("only the owner can edit the item")
	ErrEmptyName            = errs.Validation("item name must not be blank")
	ErrEmptyDescription     = errs.Validation("item description must not be blank")
	ErrNameTooLong          = errs.Validation("item name is too long")
	ErrDescriptionTooLong   = errs.Validation("item description is too long")
	ErrAvailabilityRequired = errs.Validation("item availability must be set")
)

type Item struct {
	id          int64
	ownerID     int64
	name        string
	description string
	available   bool
	requestID   *int64
}

type Spec struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

func NewItem(ownerID int64, spec Spec) (*Item, error) {
	name, err := validateName(spec.Name)
	if err != nil {
		return nil, err
	}
	description, err := validateDescription(spec.Description)
	if err != nil {
		return nil, err
	}
	if spec.Available == nil {
		return nil, ErrAvailabilityRequired
	}
	return &Item{
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   *spec.Available,
		requestID:   spec.RequestID,
	}, nil
}

func ReconstructItem(id, ownerID int64, name, description string, available bool, requestID *int64) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
	}
}

type Patch struct {
	Name        *string
	Description *string
	Available   *bool
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Available == nil
}

// Apply patches only supplied fields; the item is left untouched on error.
func (i *Item) Apply(p Patch) error {
	next := *i
	if p.Name != nil {
		name, err := validateName(*p.Name)
		if err != nil {
			return err
		}
		next.name = name
	}
	if p.Description != nil {
		description, err := validateDescription(*p.Description)
		if err != nil {
			return err
		}
		next.description = description
	}
	next.available = patch.Coalesce(p.Available, next.available)
	*i = next
	return nil
}

func (i *Item) IsOwnedBy(userID int64) bool {
	return i.ownerID == userID
}

func (i *Item) WithID(id int64) *Item {
	cp := *i
	cp.id = id
	return &cp
}

func (i *Item) ID() int64           { return i.id }
func (i *Item) OwnerID() int64      { return i.ownerID }
func (i *Item) Name() string        { return i.name }
func (i *Item) Description() string { return i.description }
func (i *Item) Available() bool     { return i.available }
func (i *Item) RequestID() *int64   { return i.requestID }

func validateName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(s) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return s, nil
}

func validateDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyDescription
	}
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return "", ErrDescriptionTooLong
	}
	return s, nil
}

// MatchesText is the catalogue search rule: case-insensitive substring of
// name or description, available items only. Blank text matches nothing.
func (i *Item) MatchesText(text string) bool {
	if strings.TrimSpace(text) == "" || !i.available {
		return false
	}
	needle := strings.ToLower(text)
	return strings.Contains(strings.ToLower(i.name), needle) ||
		strings.Contains(strings.ToLower(i.description), needle)
}
