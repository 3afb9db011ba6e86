package shared

// ResultStatus mirrors the three-way outcome the mobile and admin clients
// consume: success, a business rejection with a user-facing message, or an
// internal error.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusFail    ResultStatus = "fail"
	StatusError   ResultStatus = "error"
)

// Result is the envelope every booking command resolves to. Fail carries a
// message the client shows verbatim; Data is operation specific.
type Result struct {
	Status  ResultStatus `json:"status"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
}

func Success(data any) Result {
	return Result{Status: StatusSuccess, Data: data}
}

func SuccessWithMessage(msg string, data any) Result {
	return Result{Status: StatusSuccess, Message: msg, Data: data}
}

func Fail(msg string) Result {
	return Result{Status: StatusFail, Message: msg}
}

func (r Result) IsSuccess() bool {
	return r.Status == StatusSuccess
}
