package enrollment

import "errors"

var (
	ErrSessionNotFound   = errors.New("enrollment session not found")
	ErrValidation        = errors.New("step validation failed")
	ErrFirstStep         = errors.New("already at the first step")
	ErrCompleted         = errors.New("enrollment already confirmed")
	ErrSubmitRequired    = errors.New("payment step is left by submitting")
	ErrNotAtPayment      = errors.New("submission is only possible at the payment step")
	ErrSubmitInFlight    = errors.New("a submission is already in progress")
	ErrPaymentRejected   = errors.New("payment proof was not accepted")
	ErrInvalidScreenshot = errors.New("invalid screenshot")
)
