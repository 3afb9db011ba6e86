package matching

import (
	"interpreter-booking/internal/domain/job"
	"interpreter-booking/internal/domain/user"

	"github.com/google/uuid"
)

// Engine decides translator/job eligibility. It is deliberately pure: both
// query directions (jobs for a translator, translators for a job) run every
// candidate through the same predicate, which keeps them symmetric by
// construction.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// TranslatorProfile is the matching-relevant slice of a translator account.
type TranslatorProfile struct {
	ID        uuid.UUID
	Category  user.TranslatorCategory
	Languages []string
	Gender    string
	Level     user.CertificationLevel
	Town      string
	Active    bool
}

// JobSpec is the matching-relevant slice of a booking.
type JobSpec struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	Status       job.Status
	Type         job.Type
	FromLanguage string
	Gender       *job.Gender
	Certified    job.CertificationRequirement
	Mode         job.ServiceMode
	CustomerTown string
	SpecificFor  *uuid.UUID
}

// Decision reports the outcome plus which rule settled it, for the audit
// log.
type Decision struct {
	Eligible bool
	Reason   string
	CertRule string
}

// JobTypeFor maps a translator category to the job payment type they serve.
func JobTypeFor(cat user.TranslatorCategory) job.Type {
	switch cat {
	case user.CategoryProfessional:
		return job.TypePaid
	case user.CategoryRWS:
		return job.TypeRWS
	default:
		return job.TypeUnpaid
	}
}

// Eligible is the single predicate behind both query directions. The
// blacklisted flag is resolved by the caller against the job's customer.
func (e *Engine) Eligible(p TranslatorProfile, spec JobSpec, blacklisted bool) Decision {
	if !p.Active {
		return Decision{Reason: "translator inactive"}
	}
	if spec.Status != job.StatusPending {
		return Decision{Reason: "job not pending"}
	}
	if spec.Type != JobTypeFor(p.Category) {
		return Decision{Reason: "payment type mismatch"}
	}
	if !hasLanguage(p.Languages, spec.FromLanguage) {
		return Decision{Reason: "language not offered"}
	}
	if spec.Gender != nil && string(*spec.Gender) != p.Gender {
		return Decision{Reason: "gender requirement not met"}
	}

	levels, rule := LevelsFor(spec.Certified)
	if !hasLevel(levels, p.Level) {
		return Decision{Reason: "certification level not in superset", CertRule: rule}
	}

	if spec.SpecificFor != nil && *spec.SpecificFor != p.ID {
		return Decision{Reason: "job earmarked for another translator", CertRule: rule}
	}
	if blacklisted {
		return Decision{Reason: "translator blacklisted by customer", CertRule: rule}
	}

	if spec.Mode.RequiresPresence() && !sameTown(p.Town, spec.CustomerTown) {
		return Decision{Reason: "physical job outside translator town", CertRule: rule}
	}

	return Decision{Eligible: true, CertRule: rule}
}

func hasLanguage(langs []string, want string) bool {
	for _, l := range langs {
		if l == want {
			return true
		}
	}
	return false
}

func hasLevel(levels []user.CertificationLevel, want user.CertificationLevel) bool {
	for _, l := range levels {
		if l == want {
			return true
		}
	}
	return false
}

func sameTown(a, b string) bool {
	return a != "" && a == b
}
