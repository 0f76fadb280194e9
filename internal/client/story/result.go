package story

// Status tags a Result.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the observable state of one submission: Loading, Success with
// the server's confirmation, or Error with a human-readable reason.
type Result struct {
	Status  Status
	Message string
}

func Loading() Result {
	return Result{Status: StatusLoading}
}

func Success(message string) Result {
	return Result{Status: StatusSuccess, Message: message}
}

func Failure(message string) Result {
	return Result{Status: StatusError, Message: message}
}

// Terminal reports whether r ends a submission.
func (r Result) Terminal() bool {
	return r.Status == StatusSuccess || r.Status == StatusError
}
