package models

// Item represents a stored item record
type Item struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// ItemPatch holds a partial update for an item.
// Nil fields are left unchanged. The ID is never part of a patch.
type ItemPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
}

// IsEmpty reports whether the patch changes nothing
func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Quantity == nil && p.Price == nil
}

// ToDict returns the event payload snapshot of the item
func (i *Item) ToDict() map[string]interface{} {
	var description interface{}
	if i.Description != nil {
		description = *i.Description
	}
	return map[string]interface{}{
		"id":          i.ID,
		"name":        i.Name,
		"description": description,
		"quantity":    i.Quantity,
		"price":       i.Price,
	}
}
