// Package apperr carries the error taxonomy handlers translate database and
// gateway failures into before anything reaches a client.
package apperr

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"sparkle/utils"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	Unauthorized
	Forbidden
	Conflict
	PaymentVerification
	// PostPaymentFailure means money moved but the order did not persist.
	// Never swallowed; always logged at top severity.
	PostPaymentFailure
	Upstream
)

type Error struct {
	Kind    Kind
	Message string // user-safe
	Err     error  // internal cause, never sent to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf unwraps err to its taxonomy kind, defaulting to Internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

func status(kind Kind) int {
	switch kind {
	case Validation, PaymentVerification:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	case Upstream:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Respond translates err into an HTTP response. Unclassified errors are
// logged and surfaced as a generic 500; post-payment failures get the
// support-directed message regardless of the internal cause.
func Respond(w http.ResponseWriter, err error) {
	var ae *Error
	if !errors.As(err, &ae) {
		log.Printf("internal error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	switch ae.Kind {
	case PostPaymentFailure:
		log.Printf("CRITICAL: post-payment order creation failure: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, ae.Message)
	case Internal:
		log.Printf("internal error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	case Upstream:
		log.Printf("upstream error: %v", err)
		if ae.Message == "" {
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.RespondWithError(w, status(ae.Kind), ae.Message)
	default:
		utils.RespondWithError(w, status(ae.Kind), ae.Message)
	}
}
