//go:build unit || integration

package builder

import (
	"interpreter-booking/internal/domain/matching"
	domuser "interpreter-booking/internal/domain/user"
	"interpreter-booking/internal/notify"
	"interpreter-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID           uuid.UUID
	Kind         domuser.Kind
	Email        string
	Name         string
	Mobile       string
	Active       bool
	ConsumerType string
	Category     domuser.TranslatorCategory
	Languages    []string
	Gender       string
	Level        domuser.CertificationLevel
	Town         string
	Prefs        domuser.NotificationPrefs
}

// NewUserBuilder defaults to an active paid customer.
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Kind:         domuser.KindCustomer,
		Email:        "customer@example.com",
		Name:         "Test Customer",
		Mobile:       "+46701234567",
		Active:       true,
		ConsumerType: "paid",
		Town:         "Stockholm",
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

func (b *UserBuilder) AsTranslator() *UserBuilder {
	b.Kind = domuser.KindTranslator
	b.Email = "translator@example.com"
	b.Name = "Test Translator"
	b.ConsumerType = ""
	b.Category = domuser.CategoryProfessional
	b.Languages = []string{"arabiska", "somaliska"}
	b.Level = domuser.LevelCertified
	return b
}

func (b *UserBuilder) WithID(id uuid.UUID) *UserBuilder {
	b.ID = id
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

func (b *UserBuilder) WithConsumerType(ct string) *UserBuilder {
	b.ConsumerType = ct
	return b
}

func (b *UserBuilder) WithCategory(cat domuser.TranslatorCategory) *UserBuilder {
	b.Category = cat
	return b
}

func (b *UserBuilder) WithLanguages(langs ...string) *UserBuilder {
	b.Languages = langs
	return b
}

func (b *UserBuilder) WithLevel(level domuser.CertificationLevel) *UserBuilder {
	b.Level = level
	return b
}

func (b *UserBuilder) WithTown(town string) *UserBuilder {
	b.Town = town
	return b
}

func (b *UserBuilder) WithPrefs(prefs domuser.NotificationPrefs) *UserBuilder {
	b.Prefs = prefs
	return b
}

func (b *UserBuilder) Inactive() *UserBuilder {
	b.Active = false
	return b
}

func (b *UserBuilder) BuildDomain() *domuser.User {
	return domuser.ReconstructUser(b.ID, b.Kind, b.Email, b.Name, b.Mobile, b.Active, domuser.Profile{
		ConsumerType: b.ConsumerType,
		Category:     b.Category,
		Languages:    b.Languages,
		Gender:       b.Gender,
		Level:        b.Level,
		Town:         b.Town,
		Prefs:        b.Prefs,
	})
}

func (b *UserBuilder) BuildMatchingProfile() matching.TranslatorProfile {
	return matching.TranslatorProfile{
		ID:        b.ID,
		Category:  b.Category,
		Languages: b.Languages,
		Gender:    b.Gender,
		Level:     b.Level,
		Town:      b.Town,
		Active:    b.Active,
	}
}

func (b *UserBuilder) BuildTranslatorRow() queries.TranslatorRow {
	return queries.TranslatorRow{
		Profile:   b.BuildMatchingProfile(),
		Recipient: b.BuildRecipient(),
	}
}

func (b *UserBuilder) BuildRecipient() notify.Recipient {
	return notify.Recipient{
		ID:     b.ID,
		Email:  b.Email,
		Name:   b.Name,
		Mobile: b.Mobile,
		Prefs:  b.Prefs,
	}
}
