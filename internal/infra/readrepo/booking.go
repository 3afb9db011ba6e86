package readrepo

import (
	"context"
	"errors"
	"log/slog"

	"interpreter-booking/internal/domain/job"
	"interpreter-booking/internal/domain/matching"
	"interpreter-booking/internal/domain/user"
	"interpreter-booking/internal/infra"
	"interpreter-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// JobViewRepository serves the read side straight from the pool; view reads
// never join a write transaction.
type JobViewRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewJobViewRepository(db *pgxpool.Pool, logger *slog.Logger) *JobViewRepository {
	return &JobViewRepository{db: db, logger: logger}
}

const selectJobViewSQL = `
SELECT
	j.id, j.customer_id, j.status, j.job_type, j.from_language, j.due,
	j.duration, j.immediate, j.gender, j.certified, j.mode, j.town,
	j.reference, j.admin_comments, j.session_time, j.specific_for,
	a.translator_id,
	j.created_at, j.will_expire_at, j.end_at, j.withdraw_at
FROM jobs j
LEFT JOIN assignments a
	ON a.job_id = j.id AND a.cancel_at IS NULL AND a.completed_at IS NULL`

func (r *JobViewRepository) FindByID(ctx context.Context, id uuid.UUID) (*queries.JobView, error) {
	row := r.db.QueryRow(ctx, selectJobViewSQL+" WHERE j.id = $1", id)
	v, err := scanJobView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "job not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to read job view", err)
	}
	return v, nil
}

func (r *JobViewRepository) PendingByType(ctx context.Context, t job.Type) ([]*queries.JobView, error) {
	return r.list(ctx, selectJobViewSQL+" WHERE j.status = 'pending' AND j.job_type = $1 ORDER BY j.due", string(t))
}

func (r *JobViewRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*queries.JobView, error) {
	return r.list(ctx, selectJobViewSQL+" WHERE j.customer_id = $1 ORDER BY j.due DESC", customerID)
}

func (r *JobViewRepository) ListByTranslator(ctx context.Context, translatorID uuid.UUID) ([]*queries.JobView, error) {
	return r.list(ctx, selectJobViewSQL+" WHERE a.translator_id = $1 ORDER BY j.due DESC", translatorID)
}

func (r *JobViewRepository) list(ctx context.Context, sql string, arg any) ([]*queries.JobView, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query job views", err)
	}
	defer rows.Close()

	var views []*queries.JobView
	for rows.Next() {
		v, err := scanJobView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan job view", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate job views", err)
	}
	return views, nil
}

func scanJobView(row pgx.Row) (*queries.JobView, error) {
	var (
		v           queries.JobView
		gender      *string
		sessionTime *string
	)
	err := row.Scan(
		&v.ID, &v.CustomerID, &v.Status, &v.Type, &v.FromLanguage, &v.Due,
		&v.Duration, &v.Immediate, &gender, &v.Certified, &v.Mode, &v.Town,
		&v.Reference, &v.AdminComments, &sessionTime, &v.SpecificFor,
		&v.TranslatorID,
		&v.CreatedAt, &v.WillExpireAt, &v.EndAt, &v.WithdrawAt,
	)
	if err != nil {
		return nil, err
	}
	v.Gender = gender
	v.SessionTime = sessionTime
	return &v, nil
}

// TranslatorReadRepository feeds the matching engine with translator rows.
type TranslatorReadRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewTranslatorReadRepository(db *pgxpool.Pool, logger *slog.Logger) *TranslatorReadRepository {
	return &TranslatorReadRepository{db: db, logger: logger}
}

func (r *TranslatorReadRepository) ProfileByID(ctx context.Context, id uuid.UUID) (*matching.TranslatorProfile, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, category, gender, level, town, active
		FROM users
		WHERE id = $1 AND kind = 'translator'`,
		id,
	)

	var p matching.TranslatorProfile
	var category, level string
	if err := row.Scan(&p.ID, &category, &p.Gender, &level, &p.Town, &p.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "translator not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to read translator profile", err)
	}
	p.Category = user.TranslatorCategory(category)
	p.Level = user.CertificationLevel(level)

	languages, err := r.languagesOf(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Languages = languages
	return &p, nil
}

func (r *TranslatorReadRepository) ActiveByCategory(ctx context.Context, cat user.TranslatorCategory) ([]queries.TranslatorRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, email, name, mobile, category, gender, level, town, active,
		       no_push, no_emergency, no_nighttime
		FROM users
		WHERE kind = 'translator' AND active AND category = $1`,
		string(cat),
	)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query translators", err)
	}
	defer rows.Close()

	var result []queries.TranslatorRow
	for rows.Next() {
		var (
			row             queries.TranslatorRow
			category, level string
		)
		err := rows.Scan(
			&row.Profile.ID, &row.Recipient.Email, &row.Recipient.Name, &row.Recipient.Mobile,
			&category, &row.Profile.Gender, &level, &row.Profile.Town, &row.Profile.Active,
			&row.Recipient.Prefs.NoPush, &row.Recipient.Prefs.NoEmergency, &row.Recipient.Prefs.NoNightTime,
		)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan translator", err)
		}
		row.Recipient.ID = row.Profile.ID
		row.Profile.Category = user.TranslatorCategory(category)
		row.Profile.Level = user.CertificationLevel(level)

		languages, err := r.languagesOf(ctx, row.Profile.ID)
		if err != nil {
			return nil, err
		}
		row.Profile.Languages = languages
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate translators", err)
	}
	return result, nil
}

func (r *TranslatorReadRepository) languagesOf(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT language FROM user_languages WHERE user_id = $1`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query languages", err)
	}
	defer rows.Close()

	var languages []string
	for rows.Next() {
		var lang string
		if err := rows.Scan(&lang); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan language", err)
		}
		languages = append(languages, lang)
	}
	return languages, rows.Err()
}

// BlacklistReadRepository resolves customer-translator blocks, either
// direction.
type BlacklistReadRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewBlacklistReadRepository(db *pgxpool.Pool, logger *slog.Logger) *BlacklistReadRepository {
	return &BlacklistReadRepository{db: db, logger: logger}
}

func (r *BlacklistReadRepository) BlockedCustomersOf(ctx context.Context, translatorID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return r.idSet(ctx, `SELECT customer_id FROM blacklist WHERE translator_id = $1`, translatorID)
}

func (r *BlacklistReadRepository) BlockedTranslatorsOf(ctx context.Context, customerID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return r.idSet(ctx, `SELECT translator_id FROM blacklist WHERE customer_id = $1`, customerID)
}

func (r *BlacklistReadRepository) idSet(ctx context.Context, sql string, arg uuid.UUID) (map[uuid.UUID]struct{}, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query blacklist", err)
	}
	defer rows.Close()

	set := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan blacklist row", err)
		}
		set[id] = struct{}{}
	}
	return set, rows.Err()
}
