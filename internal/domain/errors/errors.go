package errors

import (
	"net/http"

	"pharmalink/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"Utilisateur introuvable",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"Cette adresse e-mail est déjà utilisée",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"E-mail ou mot de passe incorrect",
		"",
	)

	// Alert-related errors
	ErrAlertNotFound = NewBaseError(
		http.StatusNotFound,
		"ALERT_NOT_FOUND",
		"Alerte introuvable",
		"",
	)

	ErrAlertNotActive = NewBaseError(
		http.StatusConflict,
		"ALERT_NOT_ACTIVE",
		"Cette alerte n'est plus active",
		"",
	)

	ErrAlertExpired = NewBaseError(
		http.StatusConflict,
		"ALERT_EXPIRED",
		"Cette alerte a expiré",
		"",
	)

	ErrAlreadyResponded = NewBaseError(
		http.StatusConflict,
		"ALREADY_RESPONDED",
		"Vous avez déjà répondu à cette alerte",
		"",
	)

	ErrResponseNotFound = NewBaseError(
		http.StatusNotFound,
		"RESPONSE_NOT_FOUND",
		"Réponse introuvable pour cette alerte",
		"",
	)

	// ErrResponseStateConflict guards the response state machine: only an
	// interested response may be accepted or rejected.
	ErrResponseStateConflict = NewBaseError(
		http.StatusConflict,
		"RESPONSE_STATE_CONFLICT",
		"Cette réponse a déjà été traitée",
		"",
	)

	ErrNotAlertCreator = NewBaseError(
		http.StatusForbidden,
		"NOT_ALERT_CREATOR",
		"Vous n'êtes pas le créateur de cette alerte",
		"",
	)

	// ErrArbitrationConflict is retryable: the accept/reject/fill sequence
	// lost a race and must be re-attempted against fresh state.
	ErrArbitrationConflict = NewBaseError(
		http.StatusConflict,
		"ARBITRATION_CONFLICT",
		"L'alerte a été modifiée entre-temps, veuillez réessayer",
		"",
	)

	// Mission-related errors
	ErrMissionNotFound = NewBaseError(
		http.StatusNotFound,
		"MISSION_NOT_FOUND",
		"Mission introuvable",
		"",
	)

	ErrInvalidTransition = NewBaseError(
		http.StatusConflict,
		"INVALID_TRANSITION",
		"Cette action n'est pas possible dans l'état actuel de la mission",
		"",
	)

	ErrNotMissionClient = NewBaseError(
		http.StatusForbidden,
		"NOT_MISSION_CLIENT",
		"Vous n'êtes pas le client de cette mission",
		"",
	)

	ErrNotProposedAnimator = NewBaseError(
		http.StatusForbidden,
		"NOT_PROPOSED_ANIMATOR",
		"Cette mission n'attend plus votre réponse",
		"",
	)

	// Subscription-related errors
	ErrSubscriptionNotFound = NewBaseError(
		http.StatusNotFound,
		"SUBSCRIPTION_NOT_FOUND",
		"Abonnement introuvable",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Les données saisies sont invalides",
		"",
	)

	// Notification-related errors
	ErrNotificationNotFound = NewBaseError(
		http.StatusNotFound,
		"NOTIFICATION_NOT_FOUND",
		"Notification introuvable",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"La transaction a échoué",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Une erreur interne est survenue",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Accès refusé",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Ressource introuvable",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Conflit de ressource",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "L'accès à la base de données a échoué"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
