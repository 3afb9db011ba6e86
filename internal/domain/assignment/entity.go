package assignment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCancelled = errors.New("assignment already cancelled")
	ErrAlreadyCompleted = errors.New("assignment already completed")
)

// Assignment links a job to the translator working one attempt at it. The
// log is append-only: reassignment and cancellation set cancel_at instead of
// deleting rows, so the full history of who held a booking survives.
type Assignment struct {
	id           uuid.UUID
	jobID        uuid.UUID
	translatorID uuid.UUID
	createdAt    time.Time
	cancelAt     *time.Time
	completedAt  *time.Time
	completedBy  *uuid.UUID
}

func NewAssignment(jobID, translatorID uuid.UUID, now time.Time) *Assignment {
	return &Assignment{
		id:           uuid.New(),
		jobID:        jobID,
		translatorID: translatorID,
		createdAt:    now,
	}
}

func ReconstructAssignment(
	id, jobID, translatorID uuid.UUID,
	createdAt time.Time,
	cancelAt, completedAt *time.Time,
	completedBy *uuid.UUID,
) *Assignment {
	return &Assignment{
		id:           id,
		jobID:        jobID,
		translatorID: translatorID,
		createdAt:    createdAt,
		cancelAt:     cancelAt,
		completedAt:  completedAt,
		completedBy:  completedBy,
	}
}

func (a *Assignment) ID() uuid.UUID           { return a.id }
func (a *Assignment) JobID() uuid.UUID        { return a.jobID }
func (a *Assignment) TranslatorID() uuid.UUID { return a.translatorID }
func (a *Assignment) CreatedAt() time.Time    { return a.createdAt }
func (a *Assignment) CancelAt() *time.Time    { return a.cancelAt }
func (a *Assignment) CompletedAt() *time.Time { return a.completedAt }
func (a *Assignment) CompletedBy() *uuid.UUID { return a.completedBy }

// IsActive reports whether this row is the one live assignment of its job:
// neither cancelled nor completed. At most one active assignment may exist
// per job at any time.
func (a *Assignment) IsActive() bool {
	return a.cancelAt == nil && a.completedAt == nil
}

// Cancel soft-deletes the assignment, preserving it as audit trail.
func (a *Assignment) Cancel(now time.Time) error {
	if a.cancelAt != nil {
		return ErrAlreadyCancelled
	}
	if a.completedAt != nil {
		return ErrAlreadyCompleted
	}
	a.cancelAt = &now
	return nil
}

// Complete closes the assignment after the session ended, recording who
// reported it.
func (a *Assignment) Complete(now time.Time, by uuid.UUID) error {
	if a.completedAt != nil {
		return ErrAlreadyCompleted
	}
	if a.cancelAt != nil {
		return ErrAlreadyCancelled
	}
	a.completedAt = &now
	a.completedBy = &by
	return nil
}
