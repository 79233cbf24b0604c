package itinerary

// CreateItemRequest represents the request to add an itinerary item
type CreateItemRequest struct {
	GroupID  int64   `json:"group_id" validate:"required"`
	Day      int     `json:"day" validate:"required,min=1"`
	Title    string  `json:"title" validate:"required,min=1,max=255"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=255"`
}

// UpdateItemRequest represents the request to update an itinerary item
type UpdateItemRequest struct {
	Day      *int    `json:"day,omitempty" validate:"omitempty,min=1"`
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=255"`
}

// ItemResponse represents the response for an itinerary item
type ItemResponse struct {
	ID        int64   `json:"id"`
	GroupID   int64   `json:"group_id"`
	Day       int     `json:"day"`
	Title     string  `json:"title"`
	Notes     *string `json:"notes,omitempty"`
	Location  *string `json:"location,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// ToResponse converts an Item model to an ItemResponse DTO
func (i *Item) ToResponse() *ItemResponse {
	return &ItemResponse{
		ID:        i.ID,
		GroupID:   i.GroupID,
		Day:       i.Day,
		Title:     i.Title,
		Notes:     i.Notes,
		Location:  i.Location,
		CreatedAt: i.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
