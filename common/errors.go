package common

import (
	"encoding/json"
	"errors"
	"go-game-api/logger"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Sentinel errors returned by the service layer. Handlers never inspect
// these directly; FromError is the single place that maps an error kind to
// an HTTP status.
var (
	// ErrNotFound covers both a missing account and a credential mismatch;
	// the wire-level response does not distinguish them.
	ErrNotFound     = errors.New("user not found")
	ErrDuplicate    = errors.New("duplicate value")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidCode  = errors.New("invalid authorization code")
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// FromError maps a service-layer error to its AppError. All error-kind to
// status decisions live here.
func FromError(err error) *AppError {
	switch {
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, err.Error(), err)
	case errors.Is(err, ErrDuplicate):
		return NewAppError(http.StatusConflict, err.Error(), err)
	case errors.Is(err, ErrUnauthorized):
		return NewAppError(http.StatusUnauthorized, err.Error(), err)
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrInvalidCode):
		return NewAppError(http.StatusBadRequest, err.Error(), err)
	default:
		return NewAppError(http.StatusInternalServerError, "Internal server error", err)
	}
}

func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(e)
}
