package dto

import "time"

// CreateAreaRequest payload.
type CreateAreaRequest struct {
	Name     string `json:"name"`
	Building string `json:"building"`
}

// UpdateAreaRequest payload; omitted fields stay unchanged.
type UpdateAreaRequest struct {
	Name     *string `json:"name"`
	Building *string `json:"building"`
}

// AreaResponse describes an area.
type AreaResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Building  string    `json:"building"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeletionResponse confirms a delete.
type DeletionResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
