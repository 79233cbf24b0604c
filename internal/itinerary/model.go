package itinerary

import "time"

// Item represents one entry in a group's day-by-day trip plan
type Item struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"group_id"`
	Day       int       `json:"day"`
	Title     string    `json:"title"`
	Notes     *string   `json:"notes,omitempty"`
	Location  *string   `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
