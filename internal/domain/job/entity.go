package job

import (
	"errors"
	"time"

	"interpreter-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrDueInPast       = errors.New("booking due time is in the past")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrInvalidLanguage = errors.New("source language is required")
)

// Job is a booking request for an interpretation session. It is created once
// by a customer, assigned to at most one active translator at a time, and
// driven through its lifecycle by ApplyStatusChange.
type Job struct {
	id            uuid.UUID
	customerID    uuid.UUID
	status        Status
	jobType       Type
	fromLanguage  string
	due           time.Time
	duration      int // minutes
	immediate     bool
	gender        *Gender
	certified     CertificationRequirement
	mode          ServiceMode
	town          string
	userEmail     string
	reference     string
	adminComments string
	sessionTime   *SessionTime
	specificFor   *uuid.UUID // earmarked translator, if any
	byAdmin       bool
	createdAt     time.Time
	willExpireAt  time.Time
	endAt         *time.Time
	withdrawAt    *time.Time
}

type NewJobParams struct {
	FromLanguage string
	Due          time.Time
	Duration     int
	Immediate    bool
	Phone        bool
	Physical     bool
	For          []ForOption
	UserEmail    string
	Reference    string
	ByAdmin      bool
}

// CustomerSpec is the slice of the customer profile a new booking depends on.
type CustomerSpec struct {
	ID           uuid.UUID
	ConsumerType string
	Town         string
}

// NewJob builds a pending booking. Immediate bookings are due after the
// configured lead time and forced to phone mode; regular bookings must be
// due in the future.
func NewJob(clk clock.Clock, immediateLead time.Duration, customer CustomerSpec, p NewJobParams) (*Job, error) {
	if p.FromLanguage == "" {
		return nil, ErrInvalidLanguage
	}
	if p.Duration <= 0 {
		return nil, ErrInvalidDuration
	}

	now := clk.Now()
	due := p.Due
	mode := ServiceModeFromFlags(p.Phone, p.Physical)

	if p.Immediate {
		due = now.Add(immediateLead)
		mode = ModePhone
	} else if !due.After(now) {
		return nil, ErrDueInPast
	}

	return &Job{
		id:           uuid.New(),
		customerID:   customer.ID,
		status:       StatusPending,
		jobType:      TypeForConsumer(customer.ConsumerType),
		fromLanguage: p.FromLanguage,
		due:          due,
		duration:     p.Duration,
		immediate:    p.Immediate,
		gender:       DeriveGender(p.For),
		certified:    DeriveCertification(p.For),
		mode:         mode,
		town:         customer.Town,
		userEmail:    p.UserEmail,
		reference:    p.Reference,
		byAdmin:      p.ByAdmin,
		createdAt:    now,
		willExpireAt: clock.WillExpireAt(due, now),
	}, nil
}

func ReconstructJob(
	id, customerID uuid.UUID,
	status Status,
	jobType Type,
	fromLanguage string,
	due time.Time,
	duration int,
	immediate bool,
	gender *Gender,
	certified CertificationRequirement,
	mode ServiceMode,
	town, userEmail, reference, adminComments string,
	sessionTime *SessionTime,
	specificFor *uuid.UUID,
	byAdmin bool,
	createdAt, willExpireAt time.Time,
	endAt, withdrawAt *time.Time,
) *Job {
	return &Job{
		id:            id,
		customerID:    customerID,
		status:        status,
		jobType:       jobType,
		fromLanguage:  fromLanguage,
		due:           due,
		duration:      duration,
		immediate:     immediate,
		gender:        gender,
		certified:     certified,
		mode:          mode,
		town:          town,
		userEmail:     userEmail,
		reference:     reference,
		adminComments: adminComments,
		sessionTime:   sessionTime,
		specificFor:   specificFor,
		byAdmin:       byAdmin,
		createdAt:     createdAt,
		willExpireAt:  willExpireAt,
		endAt:         endAt,
		withdrawAt:    withdrawAt,
	}
}

func (j *Job) ID() uuid.UUID                       { return j.id }
func (j *Job) CustomerID() uuid.UUID               { return j.customerID }
func (j *Job) Status() Status                      { return j.status }
func (j *Job) Type() Type                          { return j.jobType }
func (j *Job) FromLanguage() string                { return j.fromLanguage }
func (j *Job) Due() time.Time                      { return j.due }
func (j *Job) Duration() int                       { return j.duration }
func (j *Job) Immediate() bool                     { return j.immediate }
func (j *Job) Gender() *Gender                     { return j.gender }
func (j *Job) Certified() CertificationRequirement { return j.certified }
func (j *Job) Mode() ServiceMode                   { return j.mode }
func (j *Job) Town() string                        { return j.town }
func (j *Job) UserEmail() string                   { return j.userEmail }
func (j *Job) Reference() string                   { return j.reference }
func (j *Job) AdminComments() string               { return j.adminComments }
func (j *Job) SessionTime() *SessionTime           { return j.sessionTime }
func (j *Job) SpecificFor() *uuid.UUID             { return j.specificFor }
func (j *Job) ByAdmin() bool                       { return j.byAdmin }
func (j *Job) CreatedAt() time.Time                { return j.createdAt }
func (j *Job) WillExpireAt() time.Time             { return j.willExpireAt }
func (j *Job) EndAt() *time.Time                   { return j.endAt }
func (j *Job) WithdrawAt() *time.Time              { return j.withdrawAt }

func (j *Job) IsPending() bool {
	return j.status == StatusPending
}

// DueHasPassed reports whether the booking's start time is already behind
// us; admin edits to such jobs suppress outgoing notifications.
func (j *Job) DueHasPassed(now time.Time) bool {
	return !j.due.After(now)
}

// HoursUntilDue is used by the cancellation policy (before/after the
// late-cancel window).
func (j *Job) HoursUntilDue(now time.Time) float64 {
	return j.due.Sub(now).Hours()
}

// Reschedule moves the booking's due time (admin edit). The expiry deadline
// follows the new due time.
func (j *Job) Reschedule(due time.Time, now time.Time) (oldDue time.Time) {
	oldDue = j.due
	j.due = due
	j.willExpireAt = clock.WillExpireAt(due, now)
	return oldDue
}

// ChangeLanguage swaps the source language (admin edit).
func (j *Job) ChangeLanguage(lang string) (oldLang string) {
	oldLang = j.fromLanguage
	j.fromLanguage = lang
	return oldLang
}

// SetAdminComments overwrites the admin comment trail.
func (j *Job) SetAdminComments(comments string) {
	j.adminComments = comments
}

func (j *Job) SetReference(ref string) {
	j.reference = ref
}

// SetUserEmail replaces the booking's contact address; mails for this job go
// there instead of the account email.
func (j *Job) SetUserEmail(email string) {
	j.userEmail = email
}

// Withdraw records the customer cancellation instant and resolves the
// terminal withdraw status against the late-cancel window.
func (j *Job) Withdraw(now time.Time, lateWindow time.Duration) Status {
	j.withdrawAt = &now
	if j.due.Sub(now) >= lateWindow {
		j.status = StatusWithdrawBefore
	} else {
		j.status = StatusWithdrawAfter
	}
	return j.status
}

// ReturnToPending puts an assigned job back on the market after a translator
// cancellation, resetting the expiry window.
func (j *Job) ReturnToPending(now time.Time) {
	j.status = StatusPending
	j.createdAt = now
	j.willExpireAt = clock.WillExpireAt(j.due, now)
}

// MarkAssigned is reserved for the assignment guard: the persistence port
// flips pending to assigned atomically and this keeps the loaded entity in
// step with the row.
func (j *Job) MarkAssigned() {
	j.status = StatusAssigned
}

// EndSession completes a started job with the measured interval.
func (j *Job) EndSession(now time.Time, st SessionTime) {
	j.status = StatusCompleted
	j.sessionTime = &st
	j.endAt = &now
}

// MarkNotCarriedOut records a customer no-show.
func (j *Job) MarkNotCarriedOut(now time.Time) {
	j.status = StatusNotCarriedOut
	j.endAt = &now
}

// MarkTimedOut expires an unaccepted pending booking.
func (j *Job) MarkTimedOut() {
	j.status = StatusTimedOut
}

// CloneForReopen duplicates a timed-out booking as a fresh pending one. The
// original row stays behind as history; the copy points back at it through
// the admin comment trail.
func (j *Job) CloneForReopen(now time.Time) *Job {
	clone := *j
	clone.id = uuid.New()
	clone.status = StatusPending
	clone.createdAt = now
	clone.willExpireAt = clock.WillExpireAt(j.due, now)
	clone.adminComments = "This booking is a reopening of booking #" + j.id.String()
	clone.sessionTime = nil
	clone.endAt = nil
	clone.withdrawAt = nil
	return &clone
}
