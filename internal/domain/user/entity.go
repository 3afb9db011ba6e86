package user

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrNotACustomer = errors.New("user is not a customer")
)

// User is a customer or translator account. The booking core never mutates
// profiles; it reads them to match, address and notify.
type User struct {
	id      uuid.UUID
	kind    Kind
	email   string
	name    string
	mobile  string
	active  bool
	profile Profile
}

// Profile carries the matching- and notification-relevant attributes.
type Profile struct {
	ConsumerType string // customers: paid / rwsconsumer / ngo
	Category     TranslatorCategory
	Languages    []string
	Gender       string
	Level        CertificationLevel
	Town         string
	Prefs        NotificationPrefs
}

func ReconstructUser(id uuid.UUID, kind Kind, email, name, mobile string, active bool, profile Profile) *User {
	return &User{
		id:      id,
		kind:    kind,
		email:   email,
		name:    name,
		mobile:  mobile,
		active:  active,
		profile: profile,
	}
}

func (u *User) ID() uuid.UUID    { return u.id }
func (u *User) Kind() Kind       { return u.kind }
func (u *User) Email() string    { return u.email }
func (u *User) Name() string     { return u.name }
func (u *User) Mobile() string   { return u.mobile }
func (u *User) IsActive() bool   { return u.active }
func (u *User) Profile() Profile { return u.profile }

func (u *User) IsCustomer() bool   { return u.kind == KindCustomer }
func (u *User) IsTranslator() bool { return u.kind == KindTranslator }

func (u *User) Prefs() NotificationPrefs { return u.profile.Prefs }
