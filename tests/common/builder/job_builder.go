//go:build unit || integration

package builder

import (
	"time"

	domjob "interpreter-booking/internal/domain/job"
	reqdto "interpreter-booking/internal/handler/dto/request"
	"interpreter-booking/internal/pkg/clock"
	"interpreter-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// JobBuilder produces bookings in their various shapes. Defaults describe a
// plain pre-booked phone job two days out.
type JobBuilder struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	Status       domjob.Status
	Type         domjob.Type
	FromLanguage string
	Due          time.Time
	Duration     int
	Immediate    bool
	Gender       *domjob.Gender
	Certified    domjob.CertificationRequirement
	Mode         domjob.ServiceMode
	Town         string
	UserEmail    string
	Reference    string
	Comments     string
	SessionTime  *domjob.SessionTime
	SpecificFor  *uuid.UUID
	CreatedAt    time.Time
	WillExpireAt time.Time
	EndAt        *time.Time
	WithdrawAt   *time.Time
}

func NewJobBuilder() *JobBuilder {
	created := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	due := created.Add(48 * time.Hour)
	return &JobBuilder{
		ID:           uuid.New(),
		CustomerID:   uuid.New(),
		Status:       domjob.StatusPending,
		Type:         domjob.TypePaid,
		FromLanguage: "arabiska",
		Due:          due,
		Duration:     60,
		Mode:         domjob.ModePhone,
		Town:         "Stockholm",
		CreatedAt:    created,
		WillExpireAt: clock.WillExpireAt(due, created),
	}
}

func (b *JobBuilder) With(mutate func(*JobBuilder)) *JobBuilder {
	mutate(b)
	return b
}

func (b *JobBuilder) WithStatus(s domjob.Status) *JobBuilder {
	b.Status = s
	return b
}

func (b *JobBuilder) WithCustomerID(id uuid.UUID) *JobBuilder {
	b.CustomerID = id
	return b
}

func (b *JobBuilder) WithType(t domjob.Type) *JobBuilder {
	b.Type = t
	return b
}

func (b *JobBuilder) WithDue(due time.Time) *JobBuilder {
	b.Due = due
	b.WillExpireAt = clock.WillExpireAt(due, b.CreatedAt)
	return b
}

func (b *JobBuilder) WithMode(m domjob.ServiceMode) *JobBuilder {
	b.Mode = m
	return b
}

func (b *JobBuilder) WithTown(town string) *JobBuilder {
	b.Town = town
	return b
}

func (b *JobBuilder) WithCertified(c domjob.CertificationRequirement) *JobBuilder {
	b.Certified = c
	return b
}

func (b *JobBuilder) WithGender(g domjob.Gender) *JobBuilder {
	b.Gender = &g
	return b
}

func (b *JobBuilder) WithSpecificFor(id uuid.UUID) *JobBuilder {
	b.SpecificFor = &id
	return b
}

func (b *JobBuilder) AsImmediate() *JobBuilder {
	b.Immediate = true
	b.Mode = domjob.ModePhone
	return b
}

func (b *JobBuilder) BuildDomain() *domjob.Job {
	return domjob.ReconstructJob(
		b.ID, b.CustomerID,
		b.Status, b.Type,
		b.FromLanguage,
		b.Due, b.Duration, b.Immediate,
		b.Gender, b.Certified, b.Mode,
		b.Town, b.UserEmail, b.Reference, b.Comments,
		b.SessionTime, b.SpecificFor,
		false,
		b.CreatedAt, b.WillExpireAt,
		b.EndAt, b.WithdrawAt,
	)
}

func (b *JobBuilder) BuildView() *queries.JobView {
	v := &queries.JobView{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		Status:        string(b.Status),
		Type:          string(b.Type),
		FromLanguage:  b.FromLanguage,
		Due:           b.Due,
		Duration:      b.Duration,
		Immediate:     b.Immediate,
		Certified:     string(b.Certified),
		Mode:          string(b.Mode),
		Town:          b.Town,
		Reference:     b.Reference,
		AdminComments: b.Comments,
		SpecificFor:   b.SpecificFor,
		CreatedAt:     b.CreatedAt,
		WillExpireAt:  b.WillExpireAt,
		EndAt:         b.EndAt,
		WithdrawAt:    b.WithdrawAt,
	}
	if b.Gender != nil {
		g := string(*b.Gender)
		v.Gender = &g
	}
	if b.SessionTime != nil {
		raw := b.SessionTime.Raw()
		v.SessionTime = &raw
	}
	return v
}

func (b *JobBuilder) BuildCreateRequestDTO() reqdto.CreateJobRequest {
	return reqdto.CreateJobRequest{
		FromLanguage: b.FromLanguage,
		Due:          b.Due,
		Duration:     b.Duration,
		Immediate:    b.Immediate,
		Phone:        b.Mode.AcceptsPhone(),
		Physical:     b.Mode.RequiresPresence(),
	}
}
