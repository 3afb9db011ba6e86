package queries

import (
	"context"
	"time"

	"interpreter-booking/internal/domain/job"
	"interpreter-booking/internal/domain/matching"
	"interpreter-booking/internal/domain/user"
	"interpreter-booking/internal/notify"
	"interpreter-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrTranslatorNotFound = errs.New("translator not found")

// JobView is the read model the API returns for a booking.
type JobView struct {
	ID            uuid.UUID  `json:"id"`
	CustomerID    uuid.UUID  `json:"customer_id"`
	Status        string     `json:"status"`
	Type          string     `json:"type"`
	FromLanguage  string     `json:"from_language"`
	Due           time.Time  `json:"due"`
	Duration      int        `json:"duration"`
	Immediate     bool       `json:"immediate"`
	Gender        *string    `json:"gender,omitempty"`
	Certified     string     `json:"certified,omitempty"`
	Mode          string     `json:"mode"`
	Town          string     `json:"town,omitempty"`
	Reference     string     `json:"reference,omitempty"`
	AdminComments string     `json:"admin_comments,omitempty"`
	SessionTime   *string    `json:"session_time,omitempty"`
	SpecificFor   *uuid.UUID `json:"specific_for,omitempty"`
	TranslatorID  *uuid.UUID `json:"translator_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	WillExpireAt  time.Time  `json:"will_expire_at"`
	EndAt         *time.Time `json:"end_at,omitempty"`
	WithdrawAt    *time.Time `json:"withdraw_at,omitempty"`
}

// spec projects the view onto the matching engine's input.
func (v *JobView) spec() matching.JobSpec {
	s := matching.JobSpec{
		ID:           v.ID,
		CustomerID:   v.CustomerID,
		Status:       job.Status(v.Status),
		Type:         job.Type(v.Type),
		FromLanguage: v.FromLanguage,
		Certified:    job.CertificationRequirement(v.Certified),
		Mode:         job.ServiceMode(v.Mode),
		CustomerTown: v.Town,
		SpecificFor:  v.SpecificFor,
	}
	if v.Gender != nil {
		g := job.Gender(*v.Gender)
		s.Gender = &g
	}
	return s
}

// TranslatorRow pairs a translator's matching profile with their
// notification address, so one read serves both filtering and dispatch.
type TranslatorRow struct {
	Profile   matching.TranslatorProfile
	Recipient notify.Recipient
}

type JobViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*JobView, error)
	PendingByType(ctx context.Context, t job.Type) ([]*JobView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*JobView, error)
	ListByTranslator(ctx context.Context, translatorID uuid.UUID) ([]*JobView, error)
}

type TranslatorReads interface {
	ProfileByID(ctx context.Context, id uuid.UUID) (*matching.TranslatorProfile, error)
	ActiveByCategory(ctx context.Context, cat user.TranslatorCategory) ([]TranslatorRow, error)
}

// BlacklistReads exposes the customer-translator block pairs in whichever
// direction a query filters from.
type BlacklistReads interface {
	BlockedCustomersOf(ctx context.Context, translatorID uuid.UUID) (map[uuid.UUID]struct{}, error)
	BlockedTranslatorsOf(ctx context.Context, customerID uuid.UUID) (map[uuid.UUID]struct{}, error)
}

type BookingQueries interface {
	GetJob(ctx context.Context, id uuid.UUID) (*JobView, error)
	ListJobsForCustomer(ctx context.Context, customerID uuid.UUID) ([]*JobView, error)
	ListJobsForTranslator(ctx context.Context, translatorID uuid.UUID) ([]*JobView, error)
	// EligibleJobsForTranslator is the translator's job board: pending jobs
	// of their payment type that pass every matching rule.
	EligibleJobsForTranslator(ctx context.Context, translatorID uuid.UUID) ([]*JobView, error)
	// PotentialTranslators is the inverse direction, used to address a
	// broadcast. Both run the same predicate.
	PotentialTranslators(ctx context.Context, spec matching.JobSpec) ([]notify.Recipient, error)
}

type bookingQueriesImpl struct {
	jobs        JobViewRepo
	translators TranslatorReads
	blacklist   BlacklistReads
	engine      *matching.Engine
}

func NewBookingQueries(jobs JobViewRepo, translators TranslatorReads, blacklist BlacklistReads, engine *matching.Engine) BookingQueries {
	return &bookingQueriesImpl{
		jobs:        jobs,
		translators: translators,
		blacklist:   blacklist,
		engine:      engine,
	}
}

func (q *bookingQueriesImpl) GetJob(ctx context.Context, id uuid.UUID) (*JobView, error) {
	return q.jobs.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) ListJobsForCustomer(ctx context.Context, customerID uuid.UUID) ([]*JobView, error) {
	return q.jobs.ListByCustomer(ctx, customerID)
}

func (q *bookingQueriesImpl) ListJobsForTranslator(ctx context.Context, translatorID uuid.UUID) ([]*JobView, error) {
	return q.jobs.ListByTranslator(ctx, translatorID)
}

func (q *bookingQueriesImpl) EligibleJobsForTranslator(ctx context.Context, translatorID uuid.UUID) ([]*JobView, error) {
	profile, err := q.translators.ProfileByID(ctx, translatorID)
	if err != nil {
		return nil, errs.Mark(err, ErrTranslatorNotFound)
	}

	pending, err := q.jobs.PendingByType(ctx, matching.JobTypeFor(profile.Category))
	if err != nil {
		return nil, err
	}

	blocked, err := q.blacklist.BlockedCustomersOf(ctx, translatorID)
	if err != nil {
		return nil, err
	}

	eligible := make([]*JobView, 0, len(pending))
	for _, v := range pending {
		spec := v.spec()
		_, blacklisted := blocked[spec.CustomerID]
		if q.engine.Eligible(*profile, spec, blacklisted).Eligible {
			eligible = append(eligible, v)
		}
	}
	return eligible, nil
}

func (q *bookingQueriesImpl) PotentialTranslators(ctx context.Context, spec matching.JobSpec) ([]notify.Recipient, error) {
	rows, err := q.translators.ActiveByCategory(ctx, categoryForType(spec.Type))
	if err != nil {
		return nil, err
	}

	blocked, err := q.blacklist.BlockedTranslatorsOf(ctx, spec.CustomerID)
	if err != nil {
		return nil, err
	}

	recipients := make([]notify.Recipient, 0, len(rows))
	for _, row := range rows {
		_, blacklisted := blocked[row.Profile.ID]
		if q.engine.Eligible(row.Profile, spec, blacklisted).Eligible {
			recipients = append(recipients, row.Recipient)
		}
	}
	return recipients, nil
}

func categoryForType(t job.Type) user.TranslatorCategory {
	switch t {
	case job.TypePaid:
		return user.CategoryProfessional
	case job.TypeRWS:
		return user.CategoryRWS
	default:
		return user.CategoryVolunteer
	}
}
