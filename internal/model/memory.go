package model

import "time"

const (
	MediaTypeImage = "IMAGE"
	MediaTypeVideo = "VIDEO"
)

type Memory struct {
	ID           string    `json:"id"`
	TourID       string    `json:"tour"`
	OwnerID      int64     `json:"owner"`
	Type         string    `json:"type"`
	MediaURL     string    `json:"mediaUrl"`
	MediaKey     string    `json:"-"`
	Caption      string    `json:"caption"`
	LocationName string    `json:"locationName"`
	Mood         string    `json:"mood"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (m *Memory) OwnedBy() int64 { return m.OwnerID }

type UpdateMemoryRequest struct {
	Caption      *string `json:"caption"`
	Mood         *string `json:"mood"`
	LocationName *string `json:"locationName"`
}
