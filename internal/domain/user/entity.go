package user

import (
	"shareit/internal/pkg/errs"
)

var (
	ErrUserNotFound   = errs.NotFound("user not found")
	ErrEmailDuplicate = errs.Conflict("email already in use")
)

type User struct {
	id    int64
	name  Name
	email Email
}

// NewUser builds an unsaved user; the id is assigned by storage.
func NewUser(name, email string) (*User, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	e, err := NewEmail(email)
	if err != nil {
		return nil, err
	}
	return &User{name: n, email: e}, nil
}

func ReconstructUser(id int64, name, email string) *User {
	return &User{
		id:    id,
		name:  Name{value: name},
		email: Email{value: email},
	}
}

type Patch struct {
	Name  *string
	Email *string
}

// Apply changes only supplied fields; the user is left untouched on error.
func (u *User) Apply(p Patch) error {
	name, email := u.name, u.email
	if p.Name != nil {
		n, err := NewName(*p.Name)
		if err != nil {
			return err
		}
		name = n
	}
	if p.Email != nil {
		e, err := NewEmail(*p.Email)
		if err != nil {
			return err
		}
		email = e
	}
	u.name, u.email = name, email
	return nil
}

func (u *User) WithID(id int64) *User {
	cp := *u
	cp.id = id
	return &cp
}

func (u *User) ID() int64     { return u.id }
func (u *User) Name() string  { return u.name.Value() }
func (u *User) Email() string { return u.email.Value() }
