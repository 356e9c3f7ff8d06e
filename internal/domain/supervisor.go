package domain

import "time"

// Supervisor models a manager that can be assigned to departments.
type Supervisor struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	FieldOfStudy string    `json:"fieldOfStudy"`
	Shift        string    `json:"shift"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
