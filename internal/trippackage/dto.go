package trippackage

// CreatePackageRequest represents the request to create a trip package
type CreatePackageRequest struct {
	Name        string              `json:"name" validate:"required,min=1,max=255"`
	Description *string             `json:"description,omitempty" validate:"omitempty,max=2000"`
	Destination string              `json:"destination" validate:"required,min=1,max=255"`
	Days        int                 `json:"days" validate:"required,min=1"`
	Items       []*PackageItemInput `json:"items" validate:"required,min=1,dive"`
}

// PackageItemInput is one template entry in a create request
type PackageItemInput struct {
	Day      int     `json:"day" validate:"required,min=1"`
	Title    string  `json:"title" validate:"required,min=1,max=255"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=255"`
}

// ApplyPackageRequest represents the request to apply a package to a group
type ApplyPackageRequest struct {
	GroupID int64 `json:"group_id" validate:"required"`
}

// PackageResponse represents the response for a trip package
type PackageResponse struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	Description *string                `json:"description,omitempty"`
	Destination string                 `json:"destination"`
	Days        int                    `json:"days"`
	CreatedAt   string                 `json:"created_at"`
	Items       []*PackageItemResponse `json:"items,omitempty"`
}

// PackageItemResponse represents the response for a package item
type PackageItemResponse struct {
	ID       int64   `json:"id"`
	Day      int     `json:"day"`
	Title    string  `json:"title"`
	Notes    *string `json:"notes,omitempty"`
	Location *string `json:"location,omitempty"`
}

// AppliedPackageResponse represents the response for an applied package
type AppliedPackageResponse struct {
	ID         int64  `json:"id"`
	GroupID    int64  `json:"group_id"`
	PackageID  int64  `json:"package_id"`
	AppliedBy  int64  `json:"applied_by"`
	AppliedAt  string `json:"applied_at"`
	ItemsAdded int    `json:"items_added"`
}

// ToResponse converts a TripPackage model to a PackageResponse DTO
func (p *TripPackage) ToResponse() *PackageResponse {
	return &PackageResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Destination: p.Destination,
		Days:        p.Days,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a PackageItem model to a PackageItemResponse DTO
func (i *PackageItem) ToResponse() *PackageItemResponse {
	return &PackageItemResponse{
		ID:       i.ID,
		Day:      i.Day,
		Title:    i.Title,
		Notes:    i.Notes,
		Location: i.Location,
	}
}
