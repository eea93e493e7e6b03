package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hiremeplz/hiremeplz/internal/conversation"
	"github.com/hiremeplz/hiremeplz/internal/db"
)

// ErrEmailAlreadyExists indicates the email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the HTTP status code for an error.
func HTTPStatus(err error) int {
	var upstream *conversation.UpstreamError
	switch {
	case isType[*ErrValidation](err):
		return http.StatusBadRequest
	case isType[*ErrInvalidCredentials](err):
		return http.StatusUnauthorized
	case isType[*ErrEmailAlreadyExists](err), errors.Is(err, conversation.ErrTurnInProgress):
		return http.StatusConflict
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode returns the machine-readable code for an error, paired with
// HTTPStatus in the response envelope.
func ErrorCode(err error) string {
	var upstream *conversation.UpstreamError
	switch {
	case isType[*ErrValidation](err):
		return "validation_error"
	case isType[*ErrInvalidCredentials](err):
		return "invalid_credentials"
	case isType[*ErrEmailAlreadyExists](err):
		return "email_taken"
	case errors.Is(err, conversation.ErrTurnInProgress):
		return "turn_in_progress"
	case errors.As(err, &upstream):
		return "upstream_error"
	default:
		return "internal_error"
	}
}

func isType[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

// errorEnvelope is the JSON error response body.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError sends the {error:{code,message}} envelope for err.
func writeError(w http.ResponseWriter, err error) {
	writeErrorStatus(w, HTTPStatus(err), ErrorCode(err), err.Error())
}

func writeErrorStatus(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// mapDBError translates persistence sentinels into API errors.
func mapDBError(err error, email string) error {
	if errors.Is(err, db.ErrEmailTaken) {
		return &ErrEmailAlreadyExists{Email: email}
	}
	return err
}
