package queue

// ResultStatusIgnored represents a task that was not processed because
// the processor does not recognize it.  The task will be passed to
// another processor, or error out permanently.
const ResultStatusIgnored = "IGNORED"

// ResultStatusSuccess represents a task that was completed successfully
const ResultStatusSuccess = "SUCCESS"

// ResultStatusFailure represents a task that experienced an error.
// Failures are absorbed by the worker that sees them; nothing is retried.
const ResultStatusFailure = "FAILURE"

// Result is the return value from a task processor
type Result struct {
	Status  string
	Message string
	Error   error
}

// IsSuccessful returns TRUE if the Result is a "SUCCESS"
func (result Result) IsSuccessful() bool {
	return result.Status == ResultStatusSuccess
}

// NotSuccessful returns TRUE if the Result is NOT a "SUCCESS"
func (result Result) NotSuccessful() bool {
	return !result.IsSuccessful()
}

// Ignored returns a Result object that has been "IGNORED"
// This happens when a processor does not recognize the task id
func Ignored() Result {
	return Result{
		Status: ResultStatusIgnored,
	}
}

// Success returns a Result object with a status of "SUCCESS",
// carrying the message that was produced for the task
func Success(message string) Result {
	return Result{
		Status:  ResultStatusSuccess,
		Message: message,
	}
}

// Failure returns a Result object with a status of "FAILURE"
func Failure(err error) Result {
	return Result{
		Status: ResultStatusFailure,
		Error:  err,
	}
}
