package errs

// Sentinels the booking usecases mark their failures with. Handlers map them
// to HTTP statuses; transition-level errors live with the job aggregate.
var (
	ErrJobNotFound             = New("job not found")
	ErrUserNotFound            = New("user not found")
	ErrDomainValidation        = New("domain validation error")
	ErrDatabaseOperationFailed = New("database operation failed")
)
