// Package errors define el error estándar de la API y su serialización.
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// AppError es la estructura estándar para errores de la API.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"` // no se serializa, usado para el header
	Err        error  `json:"-"` // causa original, para logs; no se expone al cliente
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap permite acceder al error original.
func (e *AppError) Unwrap() error { return e.Err }

// WithDetail agrega detalle. Devuelve una COPIA para no mutar los globales base.
func (e *AppError) WithDetail(detail string) *AppError {
	ne := *e
	ne.Detail = detail
	return &ne
}

// WithCause agrega la causa original. Devuelve una COPIA.
func (e *AppError) WithCause(err error) *AppError {
	ne := *e
	ne.Err = err
	return &ne
}

// FromError convierte un error genérico en AppError.
// Lo que no es AppError se vuelve un 500 genérico conservando la causa.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrInternal.WithCause(err)
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteError serializa el error como JSON con el status correspondiente.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	resp := errorResponse{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Detail:    appErr.Detail,
		RequestID: w.Header().Get("X-Request-ID"),
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(resp)
}

// =================================================================================
// ERRORES PREDEFINIDOS
// =================================================================================

var (
	ErrInvalidJSON = &AppError{
		Code:       "INVALID_JSON",
		Message:    "el cuerpo de la solicitud no es un JSON válido",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrValidation = &AppError{
		Code:       "VALIDATION",
		Message:    "la solicitud contiene campos inválidos o faltantes",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrUnauthorized = &AppError{
		Code:       "UNAUTHORIZED",
		Message:    "se requiere una sesión autenticada",
		HTTPStatus: http.StatusUnauthorized,
	}

	// ErrForbidden es la cara HTTP de authz.AccessDeniedError: el único
	// fallo observable del kernel de autorización.
	ErrForbidden = &AppError{
		Code:       "FORBIDDEN",
		Message:    "rol insuficiente para esta operación",
		HTTPStatus: http.StatusForbidden,
	}

	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "el recurso no existe",
		HTTPStatus: http.StatusNotFound,
	}

	ErrConflict = &AppError{
		Code:       "CONFLICT",
		Message:    "el recurso ya existe",
		HTTPStatus: http.StatusConflict,
	}

	ErrSessionUnavailable = &AppError{
		Code:       "SESSION_UNAVAILABLE",
		Message:    "no se pudo resolver la sesión",
		HTTPStatus: http.StatusServiceUnavailable,
	}

	ErrInternal = &AppError{
		Code:       "INTERNAL",
		Message:    "error interno",
		HTTPStatus: http.StatusInternalServerError,
	}
)
