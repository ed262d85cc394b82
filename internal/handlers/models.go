package handlers

// ErrorResponse represents an error response
// @Description Error response with error message
type ErrorResponse struct {
	// Error message describing what went wrong
	Error string `json:"error" example:"Item not found"`
}

// MessageResponse represents a confirmation message response
// @Description Confirmation message after a successful operation
type MessageResponse struct {
	Message string `json:"message" example:"Item 1 deleted successfully"`
}

// HealthResponse represents the health check response
// @Description Service health status
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Timestamp string `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}

// ItemResponse represents an item response
// @Description Response with item details
type ItemResponse struct {
	// Item identifier, assigned by the store on creation
	ID int64 `json:"id" example:"1"`

	// Item name
	Name string `json:"name" example:"Widget"`

	// Optional description, null when absent
	Description *string `json:"description"`

	// Stock quantity
	Quantity int `json:"quantity" example:"3"`

	// Unit price
	Price float64 `json:"price" example:"9.99"`
}

// CreateItemForm carries the order form fields for item creation.
// Field names match the HTML form, not the stored item.
type CreateItemForm struct {
	FirstName   string `form:"first-name"`
	Description string `form:"description"`
	Quantity    string `form:"quantity"`
	Price       string `form:"price"`
}

// missingFields returns the names of required fields that were not provided
func (f *CreateItemForm) missingFields() []string {
	missing := make([]string, 0, 3)
	if f.FirstName == "" {
		missing = append(missing, "first-name")
	}
	if f.Price == "" {
		missing = append(missing, "price")
	}
	if f.Quantity == "" {
		missing = append(missing, "quantity")
	}
	return missing
}

// UpdateItemRequest documents the PUT body: any subset of item fields.
// @Description Partial item update; omitted fields are left unchanged
type UpdateItemRequest struct {
	Name        *string  `json:"name,omitempty" example:"Widget"`
	Description *string  `json:"description,omitempty" example:"A better widget"`
	Quantity    *int     `json:"quantity,omitempty" example:"5"`
	Price       *float64 `json:"price,omitempty" example:"12.50"`
}
