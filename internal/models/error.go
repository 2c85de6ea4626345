package models

import "errors"

var (
	// ErrNotFound indica que la entidad no existe
	ErrNotFound = errors.New("not found")
	// ErrConflict indica una clave única duplicada
	ErrConflict = errors.New("already exists")
	// ErrInvalidReference indica una referencia a un cliente inexistente
	ErrInvalidReference = errors.New("invalid reference")
)

// ErrorDetail representa un detalle específico del error
type ErrorDetail struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// ErrorResponse representa la respuesta de error de la API
type ErrorResponse struct {
	Error   string        `json:"error"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// NewErrorResponse crea una nueva respuesta de error
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// NewValidationError crea un error de validación con detalles
func NewValidationError(message string, details []ErrorDetail) ErrorResponse {
	return ErrorResponse{
		Error:   message,
		Details: details,
	}
}
