package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"interpreter-booking/internal/domain/job"
	"interpreter-booking/internal/domain/user"
	reqdto "interpreter-booking/internal/handler/dto/request"
	"interpreter-booking/internal/infra"
	"interpreter-booking/internal/notify"
	"interpreter-booking/internal/pkg/clock"
	"interpreter-booking/internal/pkg/config"
	"interpreter-booking/internal/pkg/errs"
	"interpreter-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const officeCancelMessage = "Du kan inte avboka en bokning som sker inom 24 timmar. Vänligen ring på +46 73 75 86 865 och gör din avbokning över telefon. Tack!"

type BookingCommands interface {
	CreateJob(ctx context.Context, req reqdto.CreateJobRequest, customerID uuid.UUID, byAdmin bool) (shared.Result, error)
	AcceptJob(ctx context.Context, jobID, translatorID uuid.UUID) (shared.Result, error)
	AcceptJobByID(ctx context.Context, jobID, translatorID uuid.UUID) (shared.Result, error)
	CancelJob(ctx context.Context, jobID, actorID uuid.UUID) (shared.Result, error)
	EndJob(ctx context.Context, jobID, actorID uuid.UUID) (shared.Result, error)
	CustomerNoShow(ctx context.Context, jobID uuid.UUID) (shared.Result, error)
	ReopenJob(ctx context.Context, jobID uuid.UUID) (shared.Result, error)
	AdminUpdateJob(ctx context.Context, jobID uuid.UUID, req reqdto.AdminUpdateJobRequest) (shared.Result, error)
	ExpireOverdueJobs(ctx context.Context) (int, error)
}

type bookingUseCaseImpl struct {
	jobRepo        JobRepository
	assignmentRepo AssignmentRepository
	userRepo       UserRepository
	pool           TranslatorPool
	notifier       Notifier
	runner         shared.TxRunner
	clock          clock.Clock
	cfg            config.BookingConfig
	logger         *slog.Logger
}

func NewBookingUseCase(
	jobRepo JobRepository,
	assignmentRepo AssignmentRepository,
	userRepo UserRepository,
	pool TranslatorPool,
	notifier Notifier,
	runner shared.TxRunner,
	clk clock.Clock,
	cfg config.BookingConfig,
	logger *slog.Logger,
) BookingCommands {
	return &bookingUseCaseImpl{
		jobRepo:        jobRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		pool:           pool,
		notifier:       notifier,
		runner:         runner,
		clock:          clk,
		cfg:            cfg,
		logger:         logger,
	}
}

// CreateJob books a new interpretation session for a customer and broadcasts
// it to every matching translator.
func (b *bookingUseCaseImpl) CreateJob(
	ctx context.Context,
	req reqdto.CreateJobRequest,
	customerID uuid.UUID,
	byAdmin bool,
) (shared.Result, error) {
	customer, err := b.findUser(ctx, customerID)
	if err != nil {
		return shared.Result{}, err
	}
	if !customer.IsCustomer() {
		return shared.Fail("Translator can not create booking"), nil
	}

	newJob, err := job.NewJob(b.clock, b.cfg.ImmediateLeadTime, job.CustomerSpec{
		ID:           customer.ID(),
		ConsumerType: customer.Profile().ConsumerType,
		Town:         customer.Profile().Town,
	}, req.ToParams(byAdmin))
	if err != nil {
		if errors.Is(err, job.ErrDueInPast) {
			return shared.Fail("Can't create booking in the past"), nil
		}
		return shared.Result{}, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = b.runner.RunInTx(ctx, func(tx infra.DBTX) error {
		return b.jobRepo.Create(ctx, tx, newJob)
	})
	if err != nil {
		return shared.Result{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	b.broadcast(ctx, newJob)
	return shared.Success(jobInfo(newJob)), nil
}

// CancelJob handles both sides of a cancellation. Customers can always
// withdraw; translators can only hand a booking back more than the
// late-cancel window ahead of its start, in which case it goes back on the
// market.
func (b *bookingUseCaseImpl) CancelJob(ctx context.Context, jobID, actorID uuid.UUID) (shared.Result, error) {
	j, err := b.findJob(ctx, jobID)
	if err != nil {
		return shared.Result{}, err
	}
	actor, err := b.findUser(ctx, actorID)
	if err != nil {
		return shared.Result{}, err
	}

	if actor.Kind() == user.KindCustomer {
		return b.cancelByCustomer(ctx, j)
	}
	return b.cancelByTranslator(ctx, j)
}

func (b *bookingUseCaseImpl) cancelByCustomer(ctx context.Context, j *job.Job) (shared.Result, error) {
	now := b.clock.Now()
	active, err := b.assignmentRepo.ActiveByJobID(ctx, b.runner.DB(), j.ID())
	if err != nil {
		return shared.Result{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	j.Withdraw(now, b.cfg.LateCancelWindow)
	err = b.runner.RunInTx(ctx, func(tx infra.DBTX) error {
		if err := b.jobRepo.Update(ctx, tx, j); err != nil {
			return err
		}
		return b.assignmentRepo.CancelActiveByJobID(ctx, tx, j.ID(), now)
	})
	if err != nil {
		return shared.Result{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if active != nil {
		if translator, err := b.findUser(ctx, active.TranslatorID()); err == nil {
			b.notifier.CancelledByCustomer(ctx, jobInfo(j), recipientOf(translator))
		}
	}
	return shared.Success(map[string]any{"jobstatus": string(j.Status())}), nil
}

func (b *bookingUseCaseImpl) cancelByTranslator(ctx context.Context, j *job.Job) (shared.Result, error) {
	now := b.clock.Now()
	if j.Due().Sub(now) <= b.cfg.LateCancelWindow {
		return shared.Fail(officeCancelMessage), nil
	}

	customer, err := b.findUser(ctx, j.CustomerID())
	if err != nil {
		return shared.Result{}, err
	}

	j.ReturnToPending(now)
	err = b.runner.RunInTx(ctx, func(tx infra.DBTX) error {
		if err := b.jobRepo.Update(ctx, tx, j); err != nil {
			return err
		}
		return b.assignmentRepo.CancelActiveByJobID(ctx, tx, j.ID(), now)
	})
	if err != nil {
		return shared.Result{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	b.notifier.CancelledByTranslator(ctx, jobInfo(j), b.customerRecipient(j, customer))
	b.broadcast(ctx, j)
	return shared.Success(nil), nil
}

// EndJob closes a started session, completing the active assignment and
// mailing both parties their session receipt. Ending a job that never
// started is a no-op so double submits stay harmless.
func (b *bookingUseCaseImpl) EndJob(ctx context.Context, jobID, actorID uuid.UUID) (shared.Result, error) {
	j, err := b.findJob(ctx, jobID)
	if err != nil {
		return shared.Result{}, err
	}
	if j.Status() != job.StatusStarted {
		return shared.Success(nil), nil
	}

	now := b.clock.Now()
	st := job.SessionTimeBetween(j.Due(), now)
	j.EndSession(now, st)

	active, err := b.assignmentRepo.ActiveByJobID(ctx, b.runner.DB(), jobID)
	if err != nil {
		return shared.Result{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	err = b.runner.RunInTx(ctx, func(tx infra.DBTX) error {
		if err := b.jobRepo.Update(ctx, tx, j); err != nil {
			return err
		}
		if active == nil {
			return nil
		}
		if err := active.Complete(now, actorID); err != nil {
			return err
		}
		return b.assignmentRepo.Update(ctx, tx, active)
	})
	if err != nil {
		return shared.Result{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	customer, custErr := b.findUser(ctx, j.CustomerID())
	if active != nil && custErr == nil {
		if translator, err := b.findUser(ctx, active.TranslatorID()); err == nil {
			b.notifier.SessionEnded(ctx, jobInfo(j), st.Display(),
				b.customerRecipient(j, customer), recipientOf(translator))
		}
	}
	return shared.Success(nil), nil
}

// CustomerNoShow records that the customer never turned up. The translator
// keeps the assignment as completed for payroll; nobody is notified.
func (b *bookingUseCaseImpl) CustomerNoShow(ctx context.Context, jobID uuid.UUID) (shared.Result, error) {
	j, err := b.findJob(ctx, jobID)
	if err != nil {
		return shared.Result{}, err
	}

	now := b.clock.Now()
	j.MarkNotCarriedOut(now)

	active, err := b.assignmentRepo.ActiveByJobID(ctx, b.runner.DB(), jobID)
	if err != nil {
		return shared.Result{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	err = b.runner.RunInTx(ctx, func(tx infra.DBTX) error {
		if err := b.jobRepo.Update(ctx, tx, j); err != nil {
			return err
		}
		if active == nil {
			return nil
		}
		if err := active.Complete(now, active.TranslatorID()); err != nil {
			return err
		}
		return b.assignmentRepo.Update(ctx, tx, active)
	})
	if err != nil {
		return shared.Result{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return shared.Success(nil), nil
}

// ReopenJob puts a dead booking back on the market. Non-timedout bookings
// are reset in place; a timedout one spawns a fresh pending copy so the
// expired original stays visible in reports.
func (b *bookingUseCaseImpl) ReopenJob(ctx context.Context, jobID uuid.UUID) (shared.Result, error) {
	j, err := b.findJob(ctx, jobID)
	if err != nil {
		return shared.Result{}, err
	}

	now := b.clock.Now()
	reopened := j

	err = b.runner.RunInTx(ctx, func(tx infra.DBTX) error {
		if err := b.assignmentRepo.CancelActiveByJobID(ctx, tx, jobID, now); err != nil {
			return err
		}
		if j.Status() != job.StatusTimedOut {
			j.ReturnToPending(now)
			return b.jobRepo.Update(ctx, tx, j)
		}
		reopened = j.CloneForReopen(now)
		return b.jobRepo.Create(ctx, tx, reopened)
	})
	if err != nil {
		return shared.Result{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	b.broadcast(ctx, reopened)
	return shared.SuccessWithMessage("Job reopened successfully", jobInfo(reopened)), nil
}

// ExpireOverdueJobs times out pending bookings past their expiry deadline
// and tells each customer nobody accepted. Returns the number expired.
func (b *bookingUseCaseImpl) ExpireOverdueJobs(ctx context.Context) (int, error) {
	now := b.clock.Now()
	overdue, err := b.jobRepo.FindExpiredPending(ctx, b.runner.DB(), now)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	expired := 0
	for _, j := range overdue {
		j.MarkTimedOut()
		err := b.runner.RunInTx(ctx, func(tx infra.DBTX) error {
			return b.jobRepo.Update(ctx, tx, j)
		})
		if err != nil {
			b.logger.Error("failed to expire job", "job_id", j.ID(), "error", err)
			continue
		}
		expired++

		if customer, err := b.findUser(ctx, j.CustomerID()); err == nil {
			b.notifier.JobExpired(ctx, jobInfo(j), b.customerRecipient(j, customer))
		}
	}
	return expired, nil
}

func (b *bookingUseCaseImpl) broadcast(ctx context.Context, j *job.Job) {
	recipients, err := b.pool.PotentialTranslators(ctx, jobSpec(j))
	if err != nil {
		b.logger.Error("failed to resolve translators for broadcast", "job_id", j.ID(), "error", err)
		return
	}
	b.notifier.BroadcastJobCreated(ctx, jobInfo(j), recipients)
}

func (b *bookingUseCaseImpl) findJob(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	j, err := b.jobRepo.FindByID(ctx, b.runner.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrJobNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return j, nil
}

func (b *bookingUseCaseImpl) findUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := b.userRepo.FindByID(ctx, b.runner.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return u, nil
}

// customerRecipient prefers the booking's own contact address over the
// account email when one was entered on the form.
func (b *bookingUseCaseImpl) customerRecipient(j *job.Job, customer *user.User) notify.Recipient {
	r := recipientOf(customer)
	if j.UserEmail() != "" {
		r.Email = j.UserEmail()
	}
	return r
}

func formatDueForMessage(j *job.Job) string {
	return j.Due().Format("2006-01-02 15:04:05")
}

func acceptedMessage(j *job.Job) string {
	return fmt.Sprintf("Du har nu accepterat och fått bokningen för %stolk %dmin %s",
		j.FromLanguage(), j.Duration(), formatDueForMessage(j))
}
