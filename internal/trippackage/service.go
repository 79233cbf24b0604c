package trippackage

import (
	"context"
	"errors"
	"fmt"

	"github.com/tripcrew/tripcrew/internal/itinerary"
	"github.com/tripcrew/tripcrew/internal/writecoord"
)

// ErrPackageNotFound is returned when a trip package does not exist
var ErrPackageNotFound = errors.New("trip package not found")

// Store is the persistence surface the trip package service needs
type Store interface {
	InsertPackage(ctx context.Context, p *TripPackage) error
	InsertItem(ctx context.Context, item *PackageItem) error
	GetPackageByID(ctx context.Context, id int64) (*TripPackage, error)
	GetItemsByPackageID(ctx context.Context, packageID int64) ([]*PackageItem, error)
	DeletePackage(ctx context.Context, id int64) error
	ListPackages(ctx context.Context, destination string) ([]*TripPackage, error)
	InsertApplied(ctx context.Context, a *AppliedPackage) error
	DeleteApplied(ctx context.Context, id int64) error
}

// Service handles trip package business logic
type Service struct {
	store Store
	items itinerary.Store
	coord *writecoord.Coordinator
}

// NewService creates a new trip package service
func NewService(store Store, items itinerary.Store, coord *writecoord.Coordinator) *Service {
	return &Service{store: store, items: items, coord: coord}
}

// Create persists a package and its template items as one coordinated write
func (s *Service) Create(ctx context.Context, req *CreatePackageRequest) (*PackageWithItems, error) {
	pkg := &TripPackage{
		Name:        req.Name,
		Description: req.Description,
		Destination: req.Destination,
		Days:        req.Days,
	}

	items := make([]*PackageItem, len(req.Items))
	for i, in := range req.Items {
		items[i] = &PackageItem{
			Day:      in.Day,
			Title:    in.Title,
			Notes:    in.Notes,
			Location: in.Location,
		}
	}

	// Item steps carry no compensation of their own: deleting the package
	// cascades to whatever items already landed.
	steps := []writecoord.Step{{
		Name: "insert package",
		Run: func(ctx context.Context) error {
			return s.store.InsertPackage(ctx, pkg)
		},
		Compensate: func(ctx context.Context) error {
			return s.store.DeletePackage(ctx, pkg.ID)
		},
	}}
	for _, item := range items {
		steps = append(steps, writecoord.Step{
			Name: fmt.Sprintf("insert item %q", item.Title),
			Run: func(ctx context.Context) error {
				item.PackageID = pkg.ID
				return s.store.InsertItem(ctx, item)
			},
		})
	}

	if err := s.coord.Execute(ctx, "package.create", steps...); err != nil {
		return nil, err
	}

	return &PackageWithItems{Package: pkg, Items: items}, nil
}

// GetByID retrieves a package with its template items
func (s *Service) GetByID(ctx context.Context, id int64) (*PackageWithItems, error) {
	pkg, err := s.store.GetPackageByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}

	items, err := s.store.GetItemsByPackageID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PackageWithItems{Package: pkg, Items: items}, nil
}

// List retrieves packages, optionally filtered by destination
func (s *Service) List(ctx context.Context, destination string) ([]*TripPackage, error) {
	return s.store.ListPackages(ctx, destination)
}

// Apply copies a package's template items into a group's itinerary and
// records the application, as one coordinated write. A failure while copying
// removes the items already copied and the applied-package record, so the
// group's plan is never left half-populated.
func (s *Service) Apply(ctx context.Context, packageID, appliedBy int64, req *ApplyPackageRequest) (*AppliedPackage, int, error) {
	pkg, err := s.GetByID(ctx, packageID)
	if err != nil {
		return nil, 0, err
	}

	applied := &AppliedPackage{
		GroupID:   req.GroupID,
		PackageID: packageID,
		AppliedBy: appliedBy,
	}

	steps := []writecoord.Step{{
		Name: "record applied package",
		Run: func(ctx context.Context) error {
			return s.store.InsertApplied(ctx, applied)
		},
		Compensate: func(ctx context.Context) error {
			return s.store.DeleteApplied(ctx, applied.ID)
		},
	}}

	copied := make([]*itinerary.Item, len(pkg.Items))
	for i, tmpl := range pkg.Items {
		steps = append(steps, writecoord.Step{
			Name: fmt.Sprintf("copy item %q", tmpl.Title),
			Run: func(ctx context.Context) error {
				item := &itinerary.Item{
					GroupID:  req.GroupID,
					Day:      tmpl.Day,
					Title:    tmpl.Title,
					Notes:    tmpl.Notes,
					Location: tmpl.Location,
				}
				if err := s.items.Insert(ctx, item); err != nil {
					return err
				}
				copied[i] = item
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.items.Delete(ctx, copied[i].ID)
			},
		})
	}

	if err := s.coord.Execute(ctx, "package.apply", steps...); err != nil {
		return nil, 0, err
	}

	return applied, len(pkg.Items), nil
}
