package httperr

import "errors"

type BusinessError struct {
	Code string
	// Reason is a human readable explanation shown inline to the user.
	Reason string
}

func (e BusinessError) Error() string {
	if e.Reason != "" {
		return e.Code + ": " + e.Reason
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessReason(code, reason string) error {
	return BusinessError{Code: code, Reason: reason}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness extrai o BusinessError de uma cadeia de erros.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
