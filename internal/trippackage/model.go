package trippackage

import "time"

// TripPackage is a curated, reusable itinerary template for a destination
type TripPackage struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Destination string    `json:"destination"`
	Days        int       `json:"days"`
	CreatedAt   time.Time `json:"created_at"`
}

// PackageItem is one template entry inside a trip package
type PackageItem struct {
	ID        int64   `json:"id"`
	PackageID int64   `json:"package_id"`
	Day       int     `json:"day"`
	Title     string  `json:"title"`
	Notes     *string `json:"notes,omitempty"`
	Location  *string `json:"location,omitempty"`
}

// AppliedPackage records that a package was applied to a group
type AppliedPackage struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"group_id"`
	PackageID int64     `json:"package_id"`
	AppliedBy int64     `json:"applied_by"`
	AppliedAt time.Time `json:"applied_at"`
}

// PackageWithItems combines a package with its template items
type PackageWithItems struct {
	Package *TripPackage
	Items   []*PackageItem
}
