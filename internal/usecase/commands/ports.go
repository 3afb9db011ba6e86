package commands

import (
	"context"
	"time"

	"interpreter-booking/internal/domain/assignment"
	"interpreter-booking/internal/domain/job"
	"interpreter-booking/internal/domain/matching"
	"interpreter-booking/internal/domain/user"
	"interpreter-booking/internal/infra"
	"interpreter-booking/internal/notify"

	"github.com/google/uuid"
)

type JobRepository interface {
	Create(ctx context.Context, tx infra.DBTX, j *job.Job) error
	FindByID(ctx context.Context, db infra.DBTX, id uuid.UUID) (*job.Job, error)
	Update(ctx context.Context, tx infra.DBTX, j *job.Job) error
	// AssignIfPending flips pending to assigned in one statement and reports
	// whether this caller won. Losing means another translator got there
	// first.
	AssignIfPending(ctx context.Context, tx infra.DBTX, jobID uuid.UUID) (bool, error)
	FindExpiredPending(ctx context.Context, db infra.DBTX, now time.Time) ([]*job.Job, error)
}

type AssignmentRepository interface {
	Create(ctx context.Context, tx infra.DBTX, a *assignment.Assignment) error
	Update(ctx context.Context, tx infra.DBTX, a *assignment.Assignment) error
	// ActiveByJobID returns nil without error when the job has no live
	// assignment.
	ActiveByJobID(ctx context.Context, db infra.DBTX, jobID uuid.UUID) (*assignment.Assignment, error)
	// HasActiveAt reports whether the translator already holds a booking due
	// at exactly that instant.
	HasActiveAt(ctx context.Context, db infra.DBTX, translatorID uuid.UUID, due time.Time) (bool, error)
	CancelActiveByJobID(ctx context.Context, tx infra.DBTX, jobID uuid.UUID, now time.Time) error
}

type UserRepository interface {
	FindByID(ctx context.Context, db infra.DBTX, id uuid.UUID) (*user.User, error)
}

// TranslatorPool resolves which translators should hear about a pending job,
// already filtered through the matching rules and the customer's blacklist.
type TranslatorPool interface {
	PotentialTranslators(ctx context.Context, spec matching.JobSpec) ([]notify.Recipient, error)
}

// Notifier is the outbound side of every booking command. Implementations
// must be fire-and-forget: commands call these after commit.
type Notifier interface {
	BroadcastJobCreated(ctx context.Context, j notify.JobInfo, translators []notify.Recipient) int
	JobAccepted(ctx context.Context, j notify.JobInfo, customer notify.Recipient)
	TranslatorChanged(ctx context.Context, j notify.JobInfo, customer notify.Recipient, previous *notify.Recipient, replacement notify.Recipient)
	DateChanged(ctx context.Context, j notify.JobInfo, oldDue time.Time, customer, translator notify.Recipient)
	LanguageChanged(ctx context.Context, j notify.JobInfo, oldLanguage string, customer, translator notify.Recipient)
	SessionEnded(ctx context.Context, j notify.JobInfo, sessionTime string, customer, translator notify.Recipient)
	BookingReceived(ctx context.Context, j notify.JobInfo, customer notify.Recipient)
	AssignmentCancelled(ctx context.Context, j notify.JobInfo, translator notify.Recipient)
	CancelledByCustomer(ctx context.Context, j notify.JobInfo, translator notify.Recipient)
	CancelledByTranslator(ctx context.Context, j notify.JobInfo, customer notify.Recipient)
	WithdrawnNotice(ctx context.Context, j notify.JobInfo, customer notify.Recipient)
	JobExpired(ctx context.Context, j notify.JobInfo, customer notify.Recipient)
	SessionReminder(ctx context.Context, j notify.JobInfo, r notify.Recipient)
}

func jobInfo(j *job.Job) notify.JobInfo {
	return notify.JobInfo{
		ID:        j.ID(),
		Language:  j.FromLanguage(),
		Duration:  j.Duration(),
		Due:       j.Due(),
		Town:      j.Town(),
		Immediate: j.Immediate(),
		Physical:  j.Mode().RequiresPresence(),
	}
}

func jobSpec(j *job.Job) matching.JobSpec {
	return matching.JobSpec{
		ID:           j.ID(),
		CustomerID:   j.CustomerID(),
		Status:       j.Status(),
		Type:         j.Type(),
		FromLanguage: j.FromLanguage(),
		Gender:       j.Gender(),
		Certified:    j.Certified(),
		Mode:         j.Mode(),
		CustomerTown: j.Town(),
		SpecificFor:  j.SpecificFor(),
	}
}

func recipientOf(u *user.User) notify.Recipient {
	return notify.Recipient{
		ID:     u.ID(),
		Email:  u.Email(),
		Name:   u.Name(),
		Mobile: u.Mobile(),
		Prefs:  u.Prefs(),
	}
}
