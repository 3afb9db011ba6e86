package writerepo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"interpreter-booking/internal/domain/assignment"
	"interpreter-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AssignmentRepository struct {
	logger *slog.Logger
}

func NewAssignmentRepository(logger *slog.Logger) *AssignmentRepository {
	return &AssignmentRepository{logger: logger}
}

func (r *AssignmentRepository) Create(ctx context.Context, tx infra.DBTX, a *assignment.Assignment) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO assignments (id, job_id, translator_id, created_at, cancel_at, completed_at, completed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID(), a.JobID(), a.TranslatorID(), a.CreatedAt(), a.CancelAt(), a.CompletedAt(), a.CompletedBy(),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "assignment already exists", err)
		}
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to insert assignment", err)
	}
	return nil
}

func (r *AssignmentRepository) Update(ctx context.Context, tx infra.DBTX, a *assignment.Assignment) error {
	tag, err := tx.Exec(ctx, `
		UPDATE assignments SET cancel_at = $2, completed_at = $3, completed_by = $4
		WHERE id = $1`,
		a.ID(), a.CancelAt(), a.CompletedAt(), a.CompletedBy(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update assignment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "assignment not found for update", nil)
	}
	return nil
}

// ActiveByJobID returns nil when no live assignment exists; at most one row
// can match because reassignment always cancels the previous one first.
func (r *AssignmentRepository) ActiveByJobID(ctx context.Context, db infra.DBTX, jobID uuid.UUID) (*assignment.Assignment, error) {
	row := db.QueryRow(ctx, `
		SELECT id, job_id, translator_id, created_at, cancel_at, completed_at, completed_by
		FROM assignments
		WHERE job_id = $1 AND cancel_at IS NULL AND completed_at IS NULL`,
		jobID,
	)
	a, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to read active assignment", err)
	}
	return a, nil
}

// HasActiveAt implements the double-booking guard: an exact match on the due
// timestamp of another live assignment blocks the accept.
func (r *AssignmentRepository) HasActiveAt(ctx context.Context, db infra.DBTX, translatorID uuid.UUID, due time.Time) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM assignments a
			JOIN jobs j ON j.id = a.job_id
			WHERE a.translator_id = $1
			  AND a.cancel_at IS NULL AND a.completed_at IS NULL
			  AND j.due = $2
		)`,
		translatorID, due,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to check translator availability", err)
	}
	return exists, nil
}

func (r *AssignmentRepository) CancelActiveByJobID(ctx context.Context, tx infra.DBTX, jobID uuid.UUID, now time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE assignments SET cancel_at = $2
		WHERE job_id = $1 AND cancel_at IS NULL AND completed_at IS NULL`,
		jobID, now,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to cancel active assignments", err)
	}
	return nil
}

func scanAssignment(row pgx.Row) (*assignment.Assignment, error) {
	var (
		id, jobID, translatorID uuid.UUID
		createdAt               time.Time
		cancelAt, completedAt   *time.Time
		completedBy             *uuid.UUID
	)
	if err := row.Scan(&id, &jobID, &translatorID, &createdAt, &cancelAt, &completedAt, &completedBy); err != nil {
		return nil, err
	}
	return assignment.ReconstructAssignment(id, jobID, translatorID, createdAt, cancelAt, completedAt, completedBy), nil
}
