package writerepo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"interpreter-booking/internal/domain/job"
	"interpreter-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type JobRepository struct {
	logger *slog.Logger
}

func NewJobRepository(logger *slog.Logger) *JobRepository {
	return &JobRepository{logger: logger}
}

const insertJobSQL = `
INSERT INTO jobs (
	id, customer_id, status, job_type, from_language, due, duration,
	immediate, gender, certified, mode, town, user_email, reference,
	admin_comments, session_time, specific_for, by_admin,
	created_at, will_expire_at, end_at, withdraw_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
	$15, $16, $17, $18, $19, $20, $21, $22
)`

func (r *JobRepository) Create(ctx context.Context, tx infra.DBTX, j *job.Job) error {
	_, err := tx.Exec(ctx, insertJobSQL, jobArgs(j)...)
	if err != nil {
		if isDuplicateKey(err) {
			return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "job already exists", err)
		}
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to insert job", err)
	}
	return nil
}

const updateJobSQL = `
UPDATE jobs SET
	status = $2, from_language = $3, due = $4, admin_comments = $5,
	user_email = $6, reference = $7, session_time = $8, created_at = $9,
	will_expire_at = $10, end_at = $11, withdraw_at = $12
WHERE id = $1`

func (r *JobRepository) Update(ctx context.Context, tx infra.DBTX, j *job.Job) error {
	tag, err := tx.Exec(ctx, updateJobSQL,
		j.ID(), j.Status().String(), j.FromLanguage(), j.Due(), j.AdminComments(),
		j.UserEmail(), j.Reference(), sessionTimeRaw(j), j.CreatedAt(),
		j.WillExpireAt(), j.EndAt(), j.WithdrawAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update job", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "job not found for update", nil)
	}
	return nil
}

const selectJobSQL = `
SELECT
	id, customer_id, status, job_type, from_language, due, duration,
	immediate, gender, certified, mode, town, user_email, reference,
	admin_comments, session_time, specific_for, by_admin,
	created_at, will_expire_at, end_at, withdraw_at
FROM jobs`

func (r *JobRepository) FindByID(ctx context.Context, db infra.DBTX, id uuid.UUID) (*job.Job, error) {
	row := db.QueryRow(ctx, selectJobSQL+" WHERE id = $1", id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "job not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to read job", err)
	}
	return j, nil
}

// AssignIfPending is the assignment guard's critical statement: a single
// conditional UPDATE so that of N concurrent acceptors exactly one sees a
// row flip.
func (r *JobRepository) AssignIfPending(ctx context.Context, tx infra.DBTX, jobID uuid.UUID) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE jobs SET status = 'assigned' WHERE id = $1 AND status = 'pending'`, jobID)
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to assign job", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *JobRepository) FindExpiredPending(ctx context.Context, db infra.DBTX, now time.Time) ([]*job.Job, error) {
	rows, err := db.Query(ctx, selectJobSQL+" WHERE status = 'pending' AND will_expire_at <= $1", now)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query expired jobs", err)
	}
	defer rows.Close()

	var jobs []*job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan expired job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate expired jobs", err)
	}
	return jobs, nil
}

func jobArgs(j *job.Job) []any {
	return []any{
		j.ID(), j.CustomerID(), j.Status().String(), string(j.Type()), j.FromLanguage(),
		j.Due(), j.Duration(), j.Immediate(), genderRaw(j), string(j.Certified()),
		string(j.Mode()), j.Town(), j.UserEmail(), j.Reference(),
		j.AdminComments(), sessionTimeRaw(j), j.SpecificFor(), j.ByAdmin(),
		j.CreatedAt(), j.WillExpireAt(), j.EndAt(), j.WithdrawAt(),
	}
}

func genderRaw(j *job.Job) *string {
	if j.Gender() == nil {
		return nil
	}
	s := string(*j.Gender())
	return &s
}

func sessionTimeRaw(j *job.Job) *string {
	if j.SessionTime() == nil {
		return nil
	}
	s := j.SessionTime().Raw()
	return &s
}

func scanJob(row pgx.Row) (*job.Job, error) {
	var (
		id, customerID                  uuid.UUID
		status, jobType, fromLanguage   string
		due                             time.Time
		duration                        int
		immediate                       bool
		gender, sessionTime             *string
		certified, mode, town           string
		userEmail, reference, comments  string
		specificFor                     *uuid.UUID
		byAdmin                         bool
		createdAt, willExpireAt         time.Time
		endAt, withdrawAt               *time.Time
	)

	err := row.Scan(
		&id, &customerID, &status, &jobType, &fromLanguage, &due, &duration,
		&immediate, &gender, &certified, &mode, &town, &userEmail, &reference,
		&comments, &sessionTime, &specificFor, &byAdmin,
		&createdAt, &willExpireAt, &endAt, &withdrawAt,
	)
	if err != nil {
		return nil, err
	}

	var g *job.Gender
	if gender != nil {
		v := job.Gender(*gender)
		g = &v
	}
	var st *job.SessionTime
	if sessionTime != nil {
		if v, err := job.ParseSessionTime(*sessionTime); err == nil {
			st = &v
		}
	}

	return job.ReconstructJob(
		id, customerID,
		job.Status(status),
		job.Type(jobType),
		fromLanguage, due, duration, immediate,
		g, job.CertificationRequirement(certified), job.ServiceMode(mode),
		town, userEmail, reference, comments,
		st, specificFor, byAdmin,
		createdAt, willExpireAt, endAt, withdrawAt,
	), nil
}

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
