package errors

var (
	ErrRemoteReadFailure = &DomainError{
		Code:    "REMOTE_READ_FAILURE",
		Message: "failed to read from the data store",
	}
	ErrRemoteWriteFailure = &DomainError{
		Code:    "REMOTE_WRITE_FAILURE",
		Message: "failed to write to the data store",
	}
)
