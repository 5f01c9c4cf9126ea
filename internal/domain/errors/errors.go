package errors

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrDuplicatePayment  = errors.New("approved payment already exists")
	ErrPaymentDeclined   = errors.New("payment declined")
)
