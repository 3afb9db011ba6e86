package commands

import (
	"context"
	"errors"
	"time"

	"interpreter-booking/internal/domain/assignment"
	"interpreter-booking/internal/domain/job"
	"interpreter-booking/internal/domain/user"
	reqdto "interpreter-booking/internal/handler/dto/request"
	"interpreter-booking/internal/infra"
	"interpreter-booking/internal/notify"
	"interpreter-booking/internal/pkg/errs"
	"interpreter-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// adminEdit accumulates what changed during one admin update so the
// notifications go out once, after the transaction committed.
type adminEdit struct {
	dueChanged        bool
	oldDue            time.Time
	langChanged       bool
	oldLang           string
	emailChanged      bool
	translatorChanged bool
	previous          *user.User
	replacement       *user.User
	transition        job.Transition
}

// AdminUpdateJob applies a partial edit from the back office: reschedule,
// language fix, translator swap, status override, or any combination. All
// row changes commit atomically; notifications follow and are suppressed
// entirely for bookings whose start time already passed.
func (b *bookingUseCaseImpl) AdminUpdateJob(
	ctx context.Context,
	jobID uuid.UUID,
	req reqdto.AdminUpdateJobRequest,
) (shared.Result, error) {
	j, err := b.findJob(ctx, jobID)
	if err != nil {
		return shared.Result{}, err
	}

	now := b.clock.Now()
	edit := adminEdit{}

	newAssignment, fail, err := b.resolveTranslatorChange(ctx, j, req.TranslatorID, now, &edit)
	if err != nil {
		return shared.Result{}, err
	}
	if fail != nil {
		return *fail, nil
	}

	if req.Due != nil && !req.Due.Equal(j.Due()) {
		edit.oldDue = j.Reschedule(*req.Due, now)
		edit.dueChanged = true
	}
	if req.FromLanguage != nil && *req.FromLanguage != j.FromLanguage() {
		edit.oldLang = j.ChangeLanguage(*req.FromLanguage)
		edit.langChanged = true
	}
	if req.UserEmail != nil && *req.UserEmail != j.UserEmail() {
		j.SetUserEmail(*req.UserEmail)
		edit.emailChanged = true
	}
	if req.Reference != nil {
		j.SetReference(*req.Reference)
	}
	if req.AdminComments != nil {
		j.SetAdminComments(*req.AdminComments)
	}

	if req.Status != nil {
		fail, err := b.applyStatusEdit(j, *req.Status, req, now, &edit)
		if err != nil {
			return shared.Result{}, err
		}
		if fail != nil {
			return *fail, nil
		}
	}

	err = b.runner.RunInTx(ctx, func(tx infra.DBTX) error {
		if edit.translatorChanged {
			if err := b.assignmentRepo.CancelActiveByJobID(ctx, tx, j.ID(), now); err != nil {
				return err
			}
			if err := b.assignmentRepo.Create(ctx, tx, newAssignment); err != nil {
				return err
			}
		}
		return b.jobRepo.Update(ctx, tx, j)
	})
	if err != nil {
		return shared.Result{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !j.DueHasPassed(now) {
		b.sendAdminEditNotices(ctx, j, edit)
	}
	return shared.Success(jobInfo(j)), nil
}

// resolveTranslatorChange loads and validates a requested translator swap.
// A non-nil Result means a business rejection to surface as-is.
func (b *bookingUseCaseImpl) resolveTranslatorChange(
	ctx context.Context,
	j *job.Job,
	translatorID *uuid.UUID,
	now time.Time,
	edit *adminEdit,
) (*assignment.Assignment, *shared.Result, error) {
	if translatorID == nil {
		return nil, nil, nil
	}

	active, err := b.assignmentRepo.ActiveByJobID(ctx, b.runner.DB(), j.ID())
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if active != nil && active.TranslatorID() == *translatorID {
		return nil, nil, nil
	}

	replacement, err := b.findUser(ctx, *translatorID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			fail := shared.Fail("Translator not found")
			return nil, &fail, nil
		}
		return nil, nil, err
	}
	if !replacement.IsTranslator() {
		fail := shared.Fail("Assigned user is not a translator")
		return nil, &fail, nil
	}

	edit.translatorChanged = true
	edit.replacement = replacement
	if active != nil {
		if prev, err := b.findUser(ctx, active.TranslatorID()); err == nil {
			edit.previous = prev
		}
	}
	return assignment.NewAssignment(j.ID(), *translatorID, now), nil, nil
}

func (b *bookingUseCaseImpl) applyStatusEdit(
	j *job.Job,
	requested string,
	req reqdto.AdminUpdateJobRequest,
	now time.Time,
	edit *adminEdit,
) (*shared.Result, error) {
	ctx := job.ChangeContext{
		TranslatorChanged: edit.translatorChanged,
		Now:               now,
	}
	if req.AdminComments != nil {
		ctx.AdminComments = *req.AdminComments
	}
	if req.SessionTime != nil {
		ctx.SessionTime = *req.SessionTime
	}

	transition, err := j.ApplyStatusChange(job.Status(requested), ctx)
	switch {
	case err == nil:
		edit.transition = transition
		return nil, nil
	case errors.Is(err, job.ErrCommentRequired):
		fail := shared.Fail("Please, add comment")
		return &fail, nil
	case errors.Is(err, job.ErrSessionTimeRequired):
		fail := shared.Fail("Please, add session time")
		return &fail, nil
	case errors.Is(err, job.ErrUnsupportedTransition):
		fail := shared.Fail("Status can not be changed")
		return &fail, nil
	default:
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
}

func (b *bookingUseCaseImpl) sendAdminEditNotices(ctx context.Context, j *job.Job, edit adminEdit) {
	customer, err := b.findUser(ctx, j.CustomerID())
	if err != nil {
		b.logger.Error("admin edit committed but customer lookup failed", "job_id", j.ID(), "error", err)
		return
	}
	custRec := b.customerRecipient(j, customer)
	info := jobInfo(j)

	var translatorRec *notify.Recipient
	if edit.replacement != nil {
		r := recipientOf(edit.replacement)
		translatorRec = &r
	} else if active, err := b.assignmentRepo.ActiveByJobID(ctx, b.runner.DB(), j.ID()); err == nil && active != nil {
		if t, err := b.findUser(ctx, active.TranslatorID()); err == nil {
			r := recipientOf(t)
			translatorRec = &r
		}
	}

	if edit.emailChanged {
		b.notifier.BookingReceived(ctx, info, custRec)
	}
	if edit.translatorChanged {
		var previous *notify.Recipient
		if edit.previous != nil {
			r := recipientOf(edit.previous)
			previous = &r
		}
		b.notifier.TranslatorChanged(ctx, info, custRec, previous, recipientOf(edit.replacement))
	}
	if edit.dueChanged && translatorRec != nil {
		b.notifier.DateChanged(ctx, info, edit.oldDue, custRec, *translatorRec)
	}
	if edit.langChanged && translatorRec != nil {
		b.notifier.LanguageChanged(ctx, info, edit.oldLang, custRec, *translatorRec)
	}

	for _, effect := range edit.transition.Effects {
		switch effect {
		case job.EffectBroadcastCreated:
			b.broadcast(ctx, j)
		case job.EffectNotifyAccepted:
			b.notifier.JobAccepted(ctx, info, custRec)
		case job.EffectNotifyNewTranslator:
			// Covered by the TranslatorChanged fan-out above: the effect
			// only fires on edits that also swapped the translator.
		case job.EffectScheduleReminders:
			b.notifier.SessionReminder(ctx, info, custRec)
			if translatorRec != nil {
				b.notifier.SessionReminder(ctx, info, *translatorRec)
			}
		case job.EffectSessionEnded:
			if edit.transition.SessionTime != nil && translatorRec != nil {
				b.notifier.SessionEnded(ctx, info, edit.transition.SessionTime.Display(), custRec, *translatorRec)
			}
		case job.EffectWithdrawnNotice:
			b.notifier.WithdrawnNotice(ctx, info, custRec)
		case job.EffectCancellationNotices:
			b.notifier.WithdrawnNotice(ctx, info, custRec)
			if translatorRec != nil {
				b.notifier.AssignmentCancelled(ctx, info, *translatorRec)
			}
		}
	}
}
