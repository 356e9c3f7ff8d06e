package domain

import "time"

// Department is an organizational unit placed in one Area and managed by one Supervisor.
// AreaID and SupervisorID hold references only; names are resolved on read.
type Department struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Number       int64     `json:"departmentNumber"`
	AreaID       string    `json:"area"`
	SupervisorID *string   `json:"supervisor,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DepartmentView is a Department with its Area and Supervisor embedded.
// Either may be nil when the stored reference no longer resolves.
type DepartmentView struct {
	ID         string
	Name       string
	Number     int64
	Area       *Area
	Supervisor *Supervisor
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DepartmentSequence names the counter that hands out department numbers.
const DepartmentSequence = "departments"
