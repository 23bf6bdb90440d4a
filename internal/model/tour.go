package model

import "time"

// Tour statuses follow the trip lifecycle; Planned is the creation default.
const (
	TourStatusPlanned   = "Planned"
	TourStatusOngoing   = "Ongoing"
	TourStatusCompleted = "Completed"
)

type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type Tour struct {
	ID          string     `json:"id"`
	OwnerID     int64      `json:"owner"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	BudgetLimit float64    `json:"budgetLimit"`
	Status      string     `json:"status"`
	Locations   []Location `json:"locations"`
	CoverImage  string     `json:"coverImage,omitempty"`
	CoverKey    string     `json:"-"`
	IsPublic    bool       `json:"isPublic"`
	IsDraft     bool       `json:"isDraft"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (t *Tour) OwnedBy() int64 { return t.OwnerID }

// Published reports whether non-owners may read this tour.
func (t *Tour) Published() bool { return t.IsPublic && !t.IsDraft }

func ValidTourStatus(s string) bool {
	switch s {
	case TourStatusPlanned, TourStatusOngoing, TourStatusCompleted:
		return true
	}
	return false
}

type TourListResponse struct {
	Tours      []Tour `json:"tours"`
	TotalTours int    `json:"totalTours"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}
