package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"interpreter-booking/internal/pkg/clock"
)

// Dispatcher fans booking events out over push, SMS and mail. Delivery is
// best effort: a booking state change has already been committed when the
// dispatcher runs, so gateway failures are logged and swallowed rather than
// surfaced to the caller.
type Dispatcher struct {
	push   PushGateway
	sms    SMSGateway
	mail   MailGateway
	clk    clock.Clock
	logger *slog.Logger
}

func NewDispatcher(push PushGateway, sms SMSGateway, mail MailGateway, clk clock.Clock, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		push:   push,
		sms:    sms,
		mail:   mail,
		clk:    clk,
		logger: logger.With("component", "notify"),
	}
}

// BroadcastJobCreated pushes a new pending job to every eligible translator
// and texts them the details. Recipients who opted out of pushes are
// skipped, opt-outs of emergency pushes are honored for immediate jobs, and
// quiet-hour recipients get their push held until the next business morning.
// Returns the number of translators texted.
func (d *Dispatcher) BroadcastJobCreated(ctx context.Context, j JobInfo, translators []Recipient) int {
	var now, deferred []uuid.UUID
	for _, r := range translators {
		if r.Prefs.NoPush {
			continue
		}
		if j.Immediate && r.Prefs.NoEmergency {
			continue
		}
		if d.needsDelay(r) {
			deferred = append(deferred, r.ID)
		} else {
			now = append(now, r.ID)
		}
	}

	text := jobCreatedText(j)
	payload := Payload{NotificationType: KindSuitableJob, JobID: j.ID, Immediate: j.Immediate}
	d.logger.Info("broadcast job created",
		"job_id", j.ID, "send_now", len(now), "send_deferred", len(deferred), "text", text)

	d.sendPush(ctx, j.ID, now, payload, text, nil)
	if len(deferred) > 0 {
		after := d.clk.NextBusinessTime()
		d.sendPush(ctx, j.ID, deferred, payload, text, &after)
	}

	durationText := formatDurationText(j.Duration)
	message := phoneJobSMS(j, durationText)
	if j.Physical {
		message = physicalJobSMS(j, durationText)
	}
	sent := 0
	for _, r := range translators {
		if r.Mobile == "" {
			continue
		}
		if err := d.sms.Send(ctx, r.Mobile, message); err != nil {
			d.logger.Warn("sms send failed", "job_id", j.ID, "recipient", r.ID, "error", err)
			continue
		}
		d.logger.Info("sms sent", "job_id", j.ID, "recipient", r.ID)
		sent++
	}
	return sent
}

// JobAccepted confirms to the customer that a translator took the booking.
func (d *Dispatcher) JobAccepted(ctx context.Context, j JobInfo, customer Recipient) {
	d.sendMail(ctx, customer, acceptedSubject(j.ID), "emails.job-accepted", map[string]any{
		"job_id":   j.ID,
		"language": j.Language,
		"due":      formatDue(j.Due),
		"duration": j.Duration,
	})
	d.pushToOne(ctx, j, customer, KindJobAccepted, jobAcceptedText(j))
}

// BookingReceived mails the booking confirmation to the job's contact
// address, sent again whenever an admin corrects that address.
func (d *Dispatcher) BookingReceived(ctx context.Context, j JobInfo, customer Recipient) {
	d.sendMail(ctx, customer, bookingReceivedSubject(j.ID), "emails.job-created", map[string]any{
		"job_id":   j.ID,
		"language": j.Language,
		"due":      formatDue(j.Due),
		"duration": j.Duration,
	})
}

// TranslatorChanged tells everyone affected by a reassignment. The previous
// translator is optional since an admin can assign a timed-out job that has
// no active assignee.
func (d *Dispatcher) TranslatorChanged(ctx context.Context, j JobInfo, customer Recipient, previous *Recipient, replacement Recipient) {
	subject := translatorChangedSubject(j.ID)
	data := map[string]any{"job_id": j.ID, "language": j.Language, "due": formatDue(j.Due)}

	d.sendMail(ctx, customer, subject, "emails.job-changed-translator-customer", data)
	if previous != nil {
		d.sendMail(ctx, *previous, subject, "emails.job-changed-translator-old-translator", data)
	}
	d.sendMail(ctx, replacement, subject, "emails.job-changed-translator-new-translator", data)
	d.pushToOne(ctx, j, replacement, KindJobAccepted, jobAssignedText(j))
}

// DateChanged notifies the customer and the assigned translator of a
// rescheduled booking.
func (d *Dispatcher) DateChanged(ctx context.Context, j JobInfo, oldDue time.Time, customer, translator Recipient) {
	subject := bookingChangedSubject(j.ID)
	data := map[string]any{
		"job_id":   j.ID,
		"old_time": formatDue(oldDue),
		"new_time": formatDue(j.Due),
	}
	d.sendMail(ctx, customer, subject, "emails.job-changed-date", data)
	d.sendMail(ctx, translator, subject, "emails.job-changed-date", data)
}

// LanguageChanged notifies the customer and the assigned translator that the
// booking's language was corrected.
func (d *Dispatcher) LanguageChanged(ctx context.Context, j JobInfo, oldLanguage string, customer, translator Recipient) {
	subject := bookingChangedSubject(j.ID)
	data := map[string]any{
		"job_id":       j.ID,
		"old_language": oldLanguage,
		"new_language": j.Language,
	}
	d.sendMail(ctx, customer, subject, "emails.job-changed-lang", data)
	d.sendMail(ctx, translator, subject, "emails.job-changed-lang", data)
}

// SessionEnded mails both parties a receipt of the finished session: the
// customer's copy is framed for invoicing, the translator's for payroll.
func (d *Dispatcher) SessionEnded(ctx context.Context, j JobInfo, sessionTime string, customer, translator Recipient) {
	subject := sessionEndedSubject(j.ID)
	d.sendMail(ctx, customer, subject, "emails.session-ended", map[string]any{
		"job_id":       j.ID,
		"session_time": sessionTime,
		"for_text":     "faktura",
	})
	d.sendMail(ctx, translator, subject, "emails.session-ended", map[string]any{
		"job_id":       j.ID,
		"session_time": sessionTime,
		"for_text":     "lön",
	})
}

// CancelledByCustomer pushes the cancellation to the translator who held
// the booking.
func (d *Dispatcher) CancelledByCustomer(ctx context.Context, j JobInfo, translator Recipient) {
	d.pushToOne(ctx, j, translator, KindJobCancelled, cancelledByCustomerText(j))
}

// CancelledByTranslator tells the customer their translator backed out and
// a replacement is being searched for.
func (d *Dispatcher) CancelledByTranslator(ctx context.Context, j JobInfo, customer Recipient) {
	d.pushToOne(ctx, j, customer, KindJobCancelled, cancelledByTranslatorText(j))
}

// AssignmentCancelled mails the translator whose booking an admin withdrew.
func (d *Dispatcher) AssignmentCancelled(ctx context.Context, j JobInfo, translator Recipient) {
	d.sendMail(ctx, translator, sessionEndedSubject(j.ID), "emails.job-cancel-translator", map[string]any{
		"job_id":   j.ID,
		"language": j.Language,
		"due":      formatDue(j.Due),
	})
}

// WithdrawnNotice mails the customer that their booking left the queue.
func (d *Dispatcher) WithdrawnNotice(ctx context.Context, j JobInfo, customer Recipient) {
	d.sendMail(ctx, customer, cancellationSubject(j.ID),
		"emails.status-changed-from-pending-or-assigned-customer",
		map[string]any{"job_id": j.ID})
}

// JobExpired tells the customer nobody accepted before the deadline.
func (d *Dispatcher) JobExpired(ctx context.Context, j JobInfo, customer Recipient) {
	d.pushToOne(ctx, j, customer, KindJobExpired, jobExpiredText(j))
}

// SessionReminder pushes the pre-session reminder to one party.
func (d *Dispatcher) SessionReminder(ctx context.Context, j JobInfo, r Recipient) {
	d.pushToOne(ctx, j, r, KindSessionStartRemind, sessionReminderText(j))
}

func (d *Dispatcher) pushToOne(ctx context.Context, j JobInfo, r Recipient, kind Kind, text string) {
	if r.Prefs.NoPush {
		d.logger.Info("push skipped, recipient opted out", "job_id", j.ID, "recipient", r.ID)
		return
	}
	var after *time.Time
	if d.needsDelay(r) {
		t := d.clk.NextBusinessTime()
		after = &t
	}
	payload := Payload{NotificationType: kind, JobID: j.ID, Immediate: j.Immediate}
	d.sendPush(ctx, j.ID, []uuid.UUID{r.ID}, payload, text, after)
}

// needsDelay reports whether a push for this recipient has to wait for
// business hours.
func (d *Dispatcher) needsDelay(r Recipient) bool {
	return d.clk.IsNightTime() && r.Prefs.NoNightTime
}

func (d *Dispatcher) sendPush(ctx context.Context, jobID uuid.UUID, userIDs []uuid.UUID, payload Payload, text string, sendAfter *time.Time) {
	if len(userIDs) == 0 {
		return
	}
	if err := d.push.Send(ctx, userIDs, payload, pushTitle, text, sendAfter); err != nil {
		d.logger.Warn("push send failed", "job_id", jobID, "recipients", len(userIDs), "error", err)
		return
	}
	d.logger.Info("push sent",
		"job_id", jobID, "type", payload.NotificationType, "recipients", len(userIDs), "deferred", sendAfter != nil)
}

func (d *Dispatcher) sendMail(ctx context.Context, r Recipient, subject, template string, data map[string]any) {
	if r.Email == "" {
		return
	}
	if err := d.mail.Send(ctx, r.Email, r.Name, subject, template, data); err != nil {
		d.logger.Warn("mail send failed", "recipient", r.ID, "subject", subject, "error", err)
		return
	}
	d.logger.Info("mail sent", "recipient", r.ID, "template", template)
}
