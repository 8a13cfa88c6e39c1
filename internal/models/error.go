package models

import "errors"

// ErrorCode représente le code d'erreur
type ErrorCode string

const (
	ErrorCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrorCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrorCodeConflict       ErrorCode = "CONFLICT"
	ErrorCodeForbidden      ErrorCode = "FORBIDDEN"
	ErrorCodeInternal       ErrorCode = "INTERNAL"
)

// AppError représente une erreur métier avec un code stable
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implémente l'interface error
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap retourne l'erreur sous-jacente
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewInvalidInputError crée une erreur de validation
func NewInvalidInputError(message string) error {
	return &AppError{Code: ErrorCodeInvalidRequest, Message: message}
}

// NewNotFoundError crée une erreur de ressource introuvable
func NewNotFoundError(message string) error {
	return &AppError{Code: ErrorCodeNotFound, Message: message}
}

// NewConflictError crée une erreur de conflit (unicité violée)
func NewConflictError(message string) error {
	return &AppError{Code: ErrorCodeConflict, Message: message}
}

// NewForbiddenError crée une erreur d'invariant violé
func NewForbiddenError(message string) error {
	return &AppError{Code: ErrorCodeForbidden, Message: message}
}

// NewInternalError crée une erreur interne en conservant la cause
func NewInternalError(message string, err error) error {
	return &AppError{Code: ErrorCodeInternal, Message: message, Err: err}
}

// CodeOf retourne le code d'une erreur, INTERNAL par défaut
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrorCodeInternal
}

// ErrorDetail représente un détail spécifique de l'erreur
type ErrorDetail struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// ErrorResponse représente la réponse d'erreur standardisée
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

// ErrorInfo représente les informations de l'erreur
type ErrorInfo struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// NewErrorResponse crée une nouvelle réponse d'erreur
func NewErrorResponse(code ErrorCode, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorInfo{
			Code:    string(code),
			Message: message,
		},
	}
}

// NewValidationErrorResponse crée une réponse d'erreur de validation avec détails
func NewValidationErrorResponse(message string, details []ErrorDetail) ErrorResponse {
	return ErrorResponse{
		Error: ErrorInfo{
			Code:    string(ErrorCodeInvalidRequest),
			Message: message,
			Details: details,
		},
	}
}
