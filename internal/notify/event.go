package notify

import (
	"time"

	"github.com/google/uuid"

	"interpreter-booking/internal/domain/user"
)

// Kind identifies the notification trigger. It travels in the push payload
// as notification_type so the mobile apps can route taps.
type Kind string

const (
	KindSuitableJob        Kind = "suitable_job"
	KindJobAccepted        Kind = "job_accepted"
	KindJobCancelled       Kind = "job_cancelled"
	KindSessionStartRemind Kind = "session_start_remind"
	KindJobExpired         Kind = "job_expired"
)

// Recipient is everything the dispatcher needs to address one user and to
// honor their opt-outs. Built from user rows by the caller.
type Recipient struct {
	ID     uuid.UUID
	Email  string
	Name   string
	Mobile string
	Prefs  user.NotificationPrefs
}

// JobInfo is the snapshot of a booking that message templates interpolate.
// Notifications render from this copy, not the live entity, so a concurrent
// update cannot change the text mid-dispatch.
type JobInfo struct {
	ID        uuid.UUID
	Language  string
	Duration  int
	Due       time.Time
	Town      string
	Immediate bool
	Physical  bool
}

// Payload is the structured part of a push message.
type Payload struct {
	NotificationType Kind
	JobID            uuid.UUID
	Immediate        bool
}
