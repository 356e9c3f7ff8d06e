package dto

import "time"

// CreateDepartmentRequest payload. Area and Supervisor are ids.
type CreateDepartmentRequest struct {
	Name       string `json:"name"`
	Area       string `json:"area"`
	Supervisor string `json:"supervisor"`
}

// UpdateDepartmentRequest payload; omitted fields stay unchanged.
type UpdateDepartmentRequest struct {
	Name       *string `json:"name"`
	Area       *string `json:"area"`
	Supervisor *string `json:"supervisor"`
}

// DepartmentResponse describes a department with its area and supervisor embedded. Either is
// null when the reference no longer resolves.
type DepartmentResponse struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	DepartmentNumber int64               `json:"departmentNumber"`
	Area             *AreaResponse       `json:"area"`
	Supervisor       *SupervisorResponse `json:"supervisor"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}
