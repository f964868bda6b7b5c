package transaction

import "errors"

var (
	// ErrInvalidTransaction indicates the candidate config failed validation
	ErrInvalidTransaction = errors.New("transaction is invalid")

	// ErrNotValidated indicates an attempt to execute before validation ran
	ErrNotValidated = errors.New("transaction has not been validated")

	// ErrTransactionFailed indicates the restore failed after validation
	ErrTransactionFailed = errors.New("transaction processing failed")

	// ErrNilConfig indicates that a nil candidate config was provided
	ErrNilConfig = errors.New("config cannot be nil")
)
