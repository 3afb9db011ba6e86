package job

import (
	"errors"
	"time"

	"interpreter-booking/internal/pkg/clock"
)

var (
	// ErrUnsupportedTransition marks (old, new) pairs outside the allowed
	// table. Callers treat it as a silent no-op so repeated admin submits
	// stay idempotent.
	ErrUnsupportedTransition = errors.New("unsupported status transition")
	ErrCommentRequired       = errors.New("admin comment required for this transition")
	ErrSessionTimeRequired   = errors.New("parseable session time required")
)

// Effect names a notification side effect owed after a successful
// transition. The orchestrator resolves recipients and dispatches; a failed
// dispatch never rolls the transition back.
type Effect string

const (
	EffectBroadcastCreated    Effect = "broadcast_created"     // job reopened: push to all eligible translators
	EffectNotifyAccepted      Effect = "notify_accepted"       // confirmation mail to the customer
	EffectNotifyNewTranslator Effect = "notify_new_translator" // assignment mail to the incoming translator
	EffectScheduleReminders   Effect = "schedule_reminders"    // session start reminders to both parties
	EffectSessionEnded        Effect = "session_ended"         // faktura/lön mails to customer and translator
	EffectWithdrawnNotice     Effect = "withdrawn_notice"      // generic cancellation mail to the customer
	EffectCancellationNotices Effect = "cancellation_notices"  // cancellation to customer and active translator
)

// ChangeContext carries the admin edit input that a transition may require.
type ChangeContext struct {
	AdminComments     string
	SessionTime       string // raw "H:MM:SS" input, only read for started->completed
	TranslatorChanged bool
	Now               time.Time
}

// Transition is the committed outcome of ApplyStatusChange.
type Transition struct {
	From        Status
	To          Status
	Changed     bool
	SessionTime *SessionTime
	Effects     []Effect
}

// ApplyStatusChange validates requested against the transition table and, on
// success, mutates the job and reports the notification effects owed.
// Requesting the current status is a no-op. The job is left untouched on any
// error.
func (j *Job) ApplyStatusChange(requested Status, ctx ChangeContext) (Transition, error) {
	unchanged := Transition{From: j.status, To: j.status}

	if !requested.IsValid() {
		return unchanged, ErrUnsupportedTransition
	}
	if requested == j.status {
		return unchanged, nil
	}

	switch j.status {
	case StatusTimedOut:
		return j.changeFromTimedOut(requested, ctx)
	case StatusCompleted:
		return j.changeFromCompleted(requested, ctx)
	case StatusStarted:
		return j.changeFromStarted(requested, ctx)
	case StatusPending:
		return j.changeFromPending(requested, ctx)
	case StatusAssigned:
		return j.changeFromAssigned(requested, ctx)
	default:
		// withdrawbefore24, withdrawafter24, not_carried_out_customer:
		// nothing leaves these states through an admin edit.
		return unchanged, ErrUnsupportedTransition
	}
}

// A timed-out booking can be put back on the market, or confirmed as
// assigned when the same edit swapped in a translator.
func (j *Job) changeFromTimedOut(requested Status, ctx ChangeContext) (Transition, error) {
	from := j.status

	switch {
	case requested == StatusPending:
		j.status = StatusPending
		j.createdAt = ctx.Now
		j.willExpireAt = clock.WillExpireAt(j.due, ctx.Now)
		return Transition{From: from, To: requested, Changed: true,
			Effects: []Effect{EffectBroadcastCreated}}, nil

	case requested == StatusAssigned && ctx.TranslatorChanged:
		j.status = StatusAssigned
		return Transition{From: from, To: requested, Changed: true,
			Effects: []Effect{EffectNotifyAccepted}}, nil

	default:
		return Transition{From: from, To: from}, ErrUnsupportedTransition
	}
}

// A completed booking can only be retracted to timedout, and only with an
// explanation on record.
func (j *Job) changeFromCompleted(requested Status, ctx ChangeContext) (Transition, error) {
	from := j.status

	if requested != StatusTimedOut {
		return Transition{From: from, To: from}, ErrUnsupportedTransition
	}
	if ctx.AdminComments == "" {
		return Transition{From: from, To: from}, ErrCommentRequired
	}

	j.status = StatusTimedOut
	j.adminComments = ctx.AdminComments
	return Transition{From: from, To: requested, Changed: true}, nil
}

// A started session can be corrected to any status, always with a comment.
// Completing it additionally needs the measured session time and owes both
// parties their session-ended mail.
func (j *Job) changeFromStarted(requested Status, ctx ChangeContext) (Transition, error) {
	from := j.status

	if ctx.AdminComments == "" {
		return Transition{From: from, To: from}, ErrCommentRequired
	}

	if requested == StatusCompleted {
		st, err := ParseSessionTime(ctx.SessionTime)
		if err != nil {
			return Transition{From: from, To: from}, ErrSessionTimeRequired
		}
		j.status = StatusCompleted
		j.adminComments = ctx.AdminComments
		j.sessionTime = &st
		now := ctx.Now
		j.endAt = &now
		return Transition{From: from, To: requested, Changed: true,
			SessionTime: &st, Effects: []Effect{EffectSessionEnded}}, nil
	}

	j.status = requested
	j.adminComments = ctx.AdminComments
	return Transition{From: from, To: requested, Changed: true}, nil
}

func (j *Job) changeFromPending(requested Status, ctx ChangeContext) (Transition, error) {
	from := j.status

	switch requested {
	case StatusTimedOut:
		if ctx.AdminComments == "" {
			return Transition{From: from, To: from}, ErrCommentRequired
		}
		j.status = StatusTimedOut
		j.adminComments = ctx.AdminComments
		return Transition{From: from, To: requested, Changed: true}, nil

	case StatusAssigned:
		j.status = StatusAssigned
		j.adminComments = ctx.AdminComments
		if ctx.TranslatorChanged {
			return Transition{From: from, To: requested, Changed: true,
				Effects: []Effect{EffectNotifyAccepted, EffectNotifyNewTranslator, EffectScheduleReminders}}, nil
		}
		// Assigned without a translator swap reads as the booking being
		// taken off the market; the customer gets the withdrawal notice.
		return Transition{From: from, To: requested, Changed: true,
			Effects: []Effect{EffectWithdrawnNotice}}, nil

	case StatusWithdrawBefore, StatusWithdrawAfter:
		j.status = requested
		j.adminComments = ctx.AdminComments
		return Transition{From: from, To: requested, Changed: true,
			Effects: []Effect{EffectWithdrawnNotice}}, nil

	default:
		return Transition{From: from, To: from}, ErrUnsupportedTransition
	}
}

func (j *Job) changeFromAssigned(requested Status, ctx ChangeContext) (Transition, error) {
	from := j.status

	switch requested {
	case StatusTimedOut:
		if ctx.AdminComments == "" {
			return Transition{From: from, To: from}, ErrCommentRequired
		}
		j.status = StatusTimedOut
		j.adminComments = ctx.AdminComments
		return Transition{From: from, To: requested, Changed: true}, nil

	case StatusWithdrawBefore, StatusWithdrawAfter:
		j.status = requested
		j.adminComments = ctx.AdminComments
		now := ctx.Now
		j.withdrawAt = &now
		return Transition{From: from, To: requested, Changed: true,
			Effects: []Effect{EffectCancellationNotices}}, nil

	default:
		return Transition{From: from, To: from}, ErrUnsupportedTransition
	}
}
