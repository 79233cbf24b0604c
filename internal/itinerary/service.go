package itinerary

import (
	"context"
	"errors"
)

// ErrItemNotFound is returned when an itinerary item does not exist
var ErrItemNotFound = errors.New("itinerary item not found")

// Store is the persistence surface the itinerary service needs. The trip
// package feature also writes through it when copying package items into a
// group's plan.
type Store interface {
	Insert(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	ListByGroupID(ctx context.Context, groupID int64) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id int64) error
}

// Service handles itinerary business logic
type Service struct {
	store Store
}

// NewService creates a new itinerary service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create adds an item to a group's itinerary
func (s *Service) Create(ctx context.Context, req *CreateItemRequest) (*Item, error) {
	item := &Item{
		GroupID:  req.GroupID,
		Day:      req.Day,
		Title:    req.Title,
		Notes:    req.Notes,
		Location: req.Location,
	}
	if err := s.store.Insert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID retrieves an item by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Item, error) {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// ListByGroupID retrieves a group's itinerary ordered by day
func (s *Service) ListByGroupID(ctx context.Context, groupID int64) ([]*Item, error) {
	return s.store.ListByGroupID(ctx, groupID)
}

// Update modifies an item
func (s *Service) Update(ctx context.Context, id int64, req *UpdateItemRequest) (*Item, error) {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	if req.Day != nil {
		item.Day = *req.Day
	}
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Notes != nil {
		item.Notes = req.Notes
	}
	if req.Location != nil {
		item.Location = req.Location
	}

	if err := s.store.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item
func (s *Service) Delete(ctx context.Context, id int64) error {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	return s.store.Delete(ctx, id)
}
