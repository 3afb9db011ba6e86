package request

import (
	"strings"
	"time"

	"interpreter-booking/internal/domain/job"

	"github.com/google/uuid"
)

type CreateJobRequest struct {
	FromLanguage string    `json:"from_language" binding:"required"`
	Due          time.Time `json:"due"`
	Duration     int       `json:"duration" binding:"required,gt=0"`
	Immediate    bool      `json:"immediate"`
	Phone        bool      `json:"phone"`
	Physical     bool      `json:"physical"`
	JobFor       []string  `json:"job_for,omitempty"`
	UserEmail    *string   `json:"user_email,omitempty"`
	Reference    *string   `json:"reference,omitempty"`
}

func (r CreateJobRequest) ToParams(byAdmin bool) job.NewJobParams {
	opts := make([]job.ForOption, 0, len(r.JobFor))
	for _, o := range r.JobFor {
		opts = append(opts, job.ForOption(strings.TrimSpace(o)))
	}

	p := job.NewJobParams{
		FromLanguage: strings.TrimSpace(r.FromLanguage),
		Due:          r.Due,
		Duration:     r.Duration,
		Immediate:    r.Immediate,
		Phone:        r.Phone,
		Physical:     r.Physical,
		For:          opts,
		ByAdmin:      byAdmin,
	}
	if r.UserEmail != nil {
		p.UserEmail = strings.TrimSpace(*r.UserEmail)
	}
	if r.Reference != nil {
		p.Reference = strings.TrimSpace(*r.Reference)
	}
	return p
}

// AdminUpdateJobRequest is a partial update: nil fields are untouched.
type AdminUpdateJobRequest struct {
	Due           *time.Time `json:"due,omitempty"`
	FromLanguage  *string    `json:"from_language,omitempty"`
	TranslatorID  *uuid.UUID `json:"translator_id,omitempty"`
	Status        *string    `json:"status,omitempty"`
	AdminComments *string    `json:"admin_comments,omitempty"`
	UserEmail     *string    `json:"user_email,omitempty"`
	Reference     *string    `json:"reference,omitempty"`
	SessionTime   *string    `json:"session_time,omitempty"`
}
