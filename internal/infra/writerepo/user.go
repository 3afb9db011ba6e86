package writerepo

import (
	"context"
	"errors"
	"log/slog"

	"interpreter-booking/internal/domain/user"
	"interpreter-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository reads account rows for the booking commands. Profiles are
// owned by the account service; this side never writes them.
type UserRepository struct {
	logger *slog.Logger
}

func NewUserRepository(logger *slog.Logger) *UserRepository {
	return &UserRepository{logger: logger}
}

func (r *UserRepository) FindByID(ctx context.Context, db infra.DBTX, id uuid.UUID) (*user.User, error) {
	row := db.QueryRow(ctx, `
		SELECT id, kind, email, name, mobile, active,
		       consumer_type, category, gender, level, town,
		       no_push, no_emergency, no_nighttime
		FROM users
		WHERE id = $1`,
		id,
	)

	var (
		uid                            uuid.UUID
		kind, email, name, mobile      string
		active                         bool
		consumerType, category, gender string
		level, town                    string
		noPush, noEmergency, noNight   bool
	)
	err := row.Scan(&uid, &kind, &email, &name, &mobile, &active,
		&consumerType, &category, &gender, &level, &town,
		&noPush, &noEmergency, &noNight)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "user not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to read user", err)
	}

	languages, err := r.languagesOf(ctx, db, uid)
	if err != nil {
		return nil, err
	}

	return user.ReconstructUser(uid, user.Kind(kind), email, name, mobile, active, user.Profile{
		ConsumerType: consumerType,
		Category:     user.TranslatorCategory(category),
		Languages:    languages,
		Gender:       gender,
		Level:        user.CertificationLevel(level),
		Town:         town,
		Prefs: user.NotificationPrefs{
			NoPush:      noPush,
			NoEmergency: noEmergency,
			NoNightTime: noNight,
		},
	}), nil
}

func (r *UserRepository) languagesOf(ctx context.Context, db infra.DBTX, userID uuid.UUID) ([]string, error) {
	rows, err := db.Query(ctx, `SELECT language FROM user_languages WHERE user_id = $1`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query user languages", err)
	}
	defer rows.Close()

	var languages []string
	for rows.Next() {
		var lang string
		if err := rows.Scan(&lang); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan user language", err)
		}
		languages = append(languages, lang)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate user languages", err)
	}
	return languages, nil
}
