// Package apierror provides the canonical error envelope returned to clients
// and the typed domain errors raised by the sale pipeline. All errors cross
// the HTTP boundary through this package so internal details (stack traces,
// DB errors) are never leaked.
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
	// Redirect is set on authorization denials: the client should fall back
	// to this view instead of showing an error screen.
	Redirect string `json:"redirect,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ─── Typed domain errors ─────────────────────────────────────────────────────
// Precondition failures are decided before any mutation and leave state
// unchanged. Persistence faults are NOT wrapped into these kinds — they
// propagate verbatim and map to 500.

// ValidationError covers empty carts, non-positive quantities, and missing or
// malformed fields. Fields is populated by request binding, nil for
// service-level validation.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string { return e.Detail }

func Validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validación", Fields: fields}
}

// InsufficientPaymentError: cash tendered below the cart total.
// Shortfall = total − tendered.
type InsufficientPaymentError struct {
	Shortfall decimal.Decimal
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("Monto recibido insuficiente: faltan %s", e.Shortfall.StringFixed(2))
}

// NotFoundError: a referenced product, profile, or register does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " no encontrado" }

func NotFound(resource string) *NotFoundError { return &NotFoundError{Resource: resource} }

// AuthorizationError signals a routine navigation denial, not a fault: the
// caller falls back to the Redirect view.
type AuthorizationError struct {
	Redirect string
}

func (e *AuthorizationError) Error() string { return "Permisos insuficientes" }

// SuspendedAccountError: the operator's tenant is suspended. Every action
// except sign-out is blocked.
type SuspendedAccountError struct{}

func (e *SuspendedAccountError) Error() string {
	return "Cuenta suspendida. Contacta a soporte para más información."
}

// Register lifecycle errors carry no payload.
var (
	ErrRegisterClosed    = errors.New("No hay una caja abierta")
	ErrDuplicateRegister = errors.New("Ya existe una caja abierta")
)

// Status maps a domain error to its HTTP status code. Unknown errors are
// persistence or infrastructure faults and map to 500.
func Status(err error) int {
	var (
		ve *ValidationError
		ip *InsufficientPaymentError
		nf *NotFoundError
		ae *AuthorizationError
		se *SuspendedAccountError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &ip):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ae), errors.As(err, &se):
		return http.StatusForbidden
	case errors.Is(err, ErrRegisterClosed), errors.Is(err, ErrDuplicateRegister):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Envelope converts a domain error into the client-facing payload.
func Envelope(err error) *APIError {
	var ae *AuthorizationError
	if errors.As(err, &ae) {
		return &APIError{Detail: ae.Error(), Redirect: ae.Redirect}
	}
	if Status(err) == http.StatusInternalServerError {
		return New("Error interno del servidor")
	}
	return New(err.Error())
}
