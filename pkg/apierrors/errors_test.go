package apierrors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      *ServiceError
		expected int
	}{
		{"missing fields", NewMissingFields([]string{"price"}), http.StatusBadRequest},
		{"invalid data type", NewInvalidDataType(), http.StatusBadRequest},
		{"item not found", NewItemNotFound(), http.StatusNotFound},
		{"update failed", NewUpdateFailed(), http.StatusNotFound},
		{"deletion failed", NewDeletionFailed(), http.StatusNotFound},
		{"database error", NewDatabaseError("Error creating item"), http.StatusInternalServerError},
		{"internal error", NewInternalError("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.HTTPStatus())
		})
	}
}

func TestMissingFields_ListsEveryField(t *testing.T) {
	err := NewMissingFields([]string{"first-name", "price", "quantity"})
	assert.Equal(t, "Missing required fields: first-name, price, quantity", err.Message)
}

func TestSerializedShape(t *testing.T) {
	data, err := json.Marshal(NewItemNotFound())
	assert.NoError(t, err)
	// The code is internal; clients only see the standard error body
	assert.JSONEq(t, `{"error":"Item not found"}`, string(data))
}
