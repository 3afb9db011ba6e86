package commands

import (
	"context"
	"fmt"

	"interpreter-booking/internal/domain/assignment"
	"interpreter-booking/internal/domain/job"
	"interpreter-booking/internal/infra"
	"interpreter-booking/internal/pkg/errs"
	"interpreter-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// AcceptJob is the app's "grab from the list" path. The double-booking guard
// runs first, then the atomic pending-to-assigned flip decides races between
// translators; the loser gets a business rejection, never a 500.
func (b *bookingUseCaseImpl) AcceptJob(ctx context.Context, jobID, translatorID uuid.UUID) (shared.Result, error) {
	j, err := b.findJob(ctx, jobID)
	if err != nil {
		return shared.Result{}, err
	}

	booked, err := b.assignmentRepo.HasActiveAt(ctx, b.runner.DB(), translatorID, j.Due())
	if err != nil {
		return shared.Result{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if booked {
		return shared.Fail("Du har redan en bokning den tiden! Bokningen är inte accepterad."), nil
	}

	won, err := b.tryAssign(ctx, j, translatorID)
	if err != nil {
		return shared.Result{}, err
	}
	if !won {
		return shared.Fail("Failed to assign the job."), nil
	}

	b.notifyAccepted(ctx, j)
	return shared.Success(jobInfo(j)), nil
}

// AcceptJobByID is the deep-link variant with verbose outcome messages.
func (b *bookingUseCaseImpl) AcceptJobByID(ctx context.Context, jobID, translatorID uuid.UUID) (shared.Result, error) {
	j, err := b.findJob(ctx, jobID)
	if err != nil {
		return shared.Result{}, err
	}

	booked, err := b.assignmentRepo.HasActiveAt(ctx, b.runner.DB(), translatorID, j.Due())
	if err != nil {
		return shared.Result{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if booked {
		return shared.Fail(fmt.Sprintf(
			"Du har redan en bokning den tiden %s. Du har inte fått denna tolkning",
			formatDueForMessage(j))), nil
	}

	won, err := b.tryAssign(ctx, j, translatorID)
	if err != nil {
		return shared.Result{}, err
	}
	if !won {
		return shared.Fail(fmt.Sprintf(
			"Denna %stolkning %dmin %s har redan accepterats av annan tolk. Du har inte fått denna tolkning",
			j.FromLanguage(), j.Duration(), formatDueForMessage(j))), nil
	}

	b.notifyAccepted(ctx, j)
	return shared.SuccessWithMessage(acceptedMessage(j), jobInfo(j)), nil
}

// tryAssign runs the assignment guard: the status flip and the assignment
// row are written in one transaction, so either this translator holds the
// job or nothing changed.
func (b *bookingUseCaseImpl) tryAssign(ctx context.Context, j *job.Job, translatorID uuid.UUID) (bool, error) {
	if !j.IsPending() {
		return false, nil
	}

	now := b.clock.Now()
	won := false
	err := b.runner.RunInTx(ctx, func(tx infra.DBTX) error {
		ok, err := b.jobRepo.AssignIfPending(ctx, tx, j.ID())
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		won = true
		return b.assignmentRepo.Create(ctx, tx, assignment.NewAssignment(j.ID(), translatorID, now))
	})
	if err != nil {
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if won {
		j.MarkAssigned()
	}
	return won, nil
}

func (b *bookingUseCaseImpl) notifyAccepted(ctx context.Context, j *job.Job) {
	customer, err := b.findUser(ctx, j.CustomerID())
	if err != nil {
		b.logger.Error("accepted booking but customer lookup failed", "job_id", j.ID(), "error", err)
		return
	}
	b.notifier.JobAccepted(ctx, jobInfo(j), b.customerRecipient(j, customer))
}
