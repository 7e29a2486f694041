package spreadsheet

// AppErrorCode represents gRPC-style error codes for application-level errors.
// only the codes the calculation core can actually produce are defined.
type AppErrorCode int

const (
	// InvalidArgument indicates client specified an invalid argument, such
	// as formula text that does not parse.
	InvalidArgument AppErrorCode = 3

	// FailedPrecondition indicates operation was rejected because the
	// system is not in a state required for the operation's execution.
	// a formula that would close a dependency cycle falls here.
	FailedPrecondition AppErrorCode = 9

	// OutOfRange means operation was attempted past the valid range.
	OutOfRange AppErrorCode = 11
)

// AppError represents errors at the application level (not formula
// evaluation errors, which are values)
type AppError struct {
	Code    AppErrorCode
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewApplicationError creates a new application error
func NewApplicationError(code AppErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

var (
	ErrInvalidPosition    = NewApplicationError(OutOfRange, "invalid position")
	ErrFormulaSyntax      = NewApplicationError(InvalidArgument, "formula syntax error")
	ErrCircularDependency = NewApplicationError(FailedPrecondition, "circular dependency")
)
