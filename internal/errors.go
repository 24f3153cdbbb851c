package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	ErrCodeEmptyPermissions ErrorCode = "EMPTY_PERMISSIONS"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserBlocked        ErrorCode = "USER_BLOCKED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodePermissionDenied   ErrorCode = "PERMISSION_DENIED"

	ErrCodeEmailAlreadyExists      ErrorCode = "EMAIL_ALREADY_EXISTS"
	ErrCodeSlugAlreadyExists       ErrorCode = "SLUG_ALREADY_EXISTS"
	ErrCodeNameAlreadyExists       ErrorCode = "NAME_ALREADY_EXISTS"
	ErrCodeEnterpriseAlreadyExists ErrorCode = "ENTERPRISE_ALREADY_EXISTS"

	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeRoleNotFound       ErrorCode = "ROLE_NOT_FOUND"
	ErrCodePermissionNotFound ErrorCode = "PERMISSION_NOT_FOUND"
	ErrCodeEnterpriseNotFound ErrorCode = "ENTERPRISE_NOT_FOUND"
	ErrCodeRoleNotEditable    ErrorCode = "ROLE_NOT_EDITABLE"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewConflictError reports uniqueness violations. Following the original API
// contract these surface as 422 rather than 409, with a machine-readable code.
func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so the
	// response never reveals which check failed.
	ErrInvalidCredentials = &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       ErrCodeInvalidCredentials,
		Message:    "Invalid email or password",
		StatusCode: http.StatusUnprocessableEntity,
	}
	ErrUserBlocked      = NewForbiddenError("User account is blocked", ErrCodeUserBlocked)
	ErrInvalidToken     = NewUnauthorizedError("Unauthorized", ErrCodeInvalidToken)
	ErrTokenExpired     = NewUnauthorizedError("Unauthorized", ErrCodeTokenExpired)
	ErrPermissionDenied = NewForbiddenError("Insufficient permissions", ErrCodePermissionDenied)

	ErrUserNotFound       = NewNotFoundError("User not found", ErrCodeUserNotFound)
	ErrRoleNotFound       = NewNotFoundError("Role not found", ErrCodeRoleNotFound)
	ErrPermissionNotFound = NewNotFoundError("Permission not found", ErrCodePermissionNotFound)
	ErrEnterpriseNotFound = NewNotFoundError("Enterprise not found", ErrCodeEnterpriseNotFound)
	ErrRoleNotEditable    = NewForbiddenError("Role is not editable", ErrCodeRoleNotEditable)

	ErrEmailAlreadyExists      = NewConflictError("Email already exists", ErrCodeEmailAlreadyExists)
	ErrSlugAlreadyExists       = NewConflictError("Slug already exists", ErrCodeSlugAlreadyExists)
	ErrNameAlreadyExists       = NewConflictError("Name already exists", ErrCodeNameAlreadyExists)
	ErrEnterpriseAlreadyExists = NewConflictError("Enterprise email or cell phone already exists", ErrCodeEnterpriseAlreadyExists)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
