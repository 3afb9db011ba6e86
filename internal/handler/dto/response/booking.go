package response

import (
	"time"

	"interpreter-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type JobResponse struct {
	ID            uuid.UUID  `json:"id"`
	CustomerID    uuid.UUID  `json:"customer_id"`
	Status        string     `json:"status"`
	Type          string     `json:"type"`
	FromLanguage  string     `json:"from_language"`
	Due           time.Time  `json:"due"`
	Duration      int        `json:"duration"`
	Immediate     bool       `json:"immediate"`
	Gender        *string    `json:"gender,omitempty"`
	Certified     string     `json:"certified,omitempty"`
	Mode          string     `json:"mode"`
	Town          string     `json:"town,omitempty"`
	Reference     string     `json:"reference,omitempty"`
	AdminComments string     `json:"admin_comments,omitempty"`
	SessionTime   *string    `json:"session_time,omitempty"`
	TranslatorID  *uuid.UUID `json:"translator_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	WillExpireAt  time.Time  `json:"will_expire_at"`
	EndAt         *time.Time `json:"end_at,omitempty"`
	WithdrawAt    *time.Time `json:"withdraw_at,omitempty"`
}

func FromJobView(v *queries.JobView) JobResponse {
	var resp JobResponse
	_ = copier.Copy(&resp, v)
	return resp
}

func FromJobViews(views []*queries.JobView) []JobResponse {
	out := make([]JobResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromJobView(v))
	}
	return out
}
