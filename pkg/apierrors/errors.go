package apierrors

import (
	"fmt"
	"net/http"
	"strings"
)

// ServiceError is the error shape rendered by the API. Serializing it
// produces the standard error body {"error": "<message>"}.
type ServiceError struct {
	Code    string `json:"-"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	return e.Message
}

// HTTPStatus returns the response status code for the error
func (e *ServiceError) HTTPStatus() int {
	switch e.Code {
	case "ValidationError", "InvalidRequest":
		return http.StatusBadRequest
	case "ItemNotFound":
		return http.StatusNotFound
	case "DatabaseError", "InternalError":
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewMissingFields reports every missing required field in one message
func NewMissingFields(fields []string) *ServiceError {
	return &ServiceError{
		Code:    "ValidationError",
		Message: fmt.Sprintf("Missing required fields: %s", strings.Join(fields, ", ")),
	}
}

// NewInvalidDataType reports a price/quantity parse failure
func NewInvalidDataType() *ServiceError {
	return &ServiceError{
		Code:    "ValidationError",
		Message: "Invalid data type for price or quantity",
	}
}

func NewItemNotFound() *ServiceError {
	return &ServiceError{Code: "ItemNotFound", Message: "Item not found"}
}

func NewUpdateFailed() *ServiceError {
	return &ServiceError{Code: "ItemNotFound", Message: "Item not found or update failed"}
}

func NewDeletionFailed() *ServiceError {
	return &ServiceError{Code: "ItemNotFound", Message: "Item not found or deletion failed"}
}

func NewDatabaseError(message string) *ServiceError {
	return &ServiceError{Code: "DatabaseError", Message: message}
}

func NewInternalError(message string) *ServiceError {
	return &ServiceError{Code: "InternalError", Message: message}
}
