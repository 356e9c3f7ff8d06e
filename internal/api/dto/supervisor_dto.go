package dto

import "time"

// CreateSupervisorRequest payload.
type CreateSupervisorRequest struct {
	Name         string `json:"name"`
	FieldOfStudy string `json:"fieldOfStudy"`
	Shift        string `json:"shift"`
}

// UpdateSupervisorRequest payload; omitted fields stay unchanged.
type UpdateSupervisorRequest struct {
	Name         *string `json:"name"`
	FieldOfStudy *string `json:"fieldOfStudy"`
	Shift        *string `json:"shift"`
}

// SupervisorResponse describes a supervisor.
type SupervisorResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	FieldOfStudy string    `json:"fieldOfStudy"`
	Shift        string    `json:"shift"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
