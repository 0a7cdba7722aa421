package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind maps a business rule violation to the HTTP status it is surfaced
// with. Use cases return BusinessError; handlers call WriteBusiness.
type Kind int

const (
	KindBadRequest Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
)

type BusinessError struct {
	Code string
	Kind Kind
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code, Kind: KindBadRequest}
}

func ErrNotFound(code string) error {
	return BusinessError{Code: code, Kind: KindNotFound}
}

func ErrForbidden(code string) error {
	return BusinessError{Code: code, Kind: KindForbidden}
}

func ErrConflict(code string) error {
	return BusinessError{Code: code, Kind: KindConflict}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// WriteBusiness writes a BusinessError with its mapped status, or a
// generic 500 for anything else.
func WriteBusiness(c *gin.Context, err error, message string) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", message)
		return
	}

	status := http.StatusBadRequest
	switch be.Kind {
	case KindNotFound:
		status = http.StatusNotFound
	case KindForbidden:
		status = http.StatusForbidden
	case KindConflict:
		status = http.StatusConflict
	}

	Write(c, status, be.Code, message)
}
