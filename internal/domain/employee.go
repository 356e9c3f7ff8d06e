package domain

import (
	"strings"
	"time"
)

// Gender enumerates accepted employee genders.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ParseGender accepts Male and Female in any case and Other verbatim.
func ParseGender(raw string) (Gender, bool) {
	switch {
	case strings.EqualFold(raw, string(GenderMale)):
		return GenderMale, true
	case strings.EqualFold(raw, string(GenderFemale)):
		return GenderFemale, true
	case raw == string(GenderOther):
		return GenderOther, true
	}
	return "", false
}

// EmployeeDepartmentCount is the exact number of departments every employee belongs to.
const EmployeeDepartmentCount = 3

// DepartmentRef points at a department and keeps a display copy of its name.
type DepartmentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Employee is a staff record linked to exactly three departments.
type Employee struct {
	ID          string          `json:"id"`
	Number      int64           `json:"employeeNumber"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Age         int             `json:"age"`
	Gender      string          `json:"gender"`
	Departments []DepartmentRef `json:"departments"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// DepartmentIDs lists the referenced department ids in stored order.
func (e *Employee) DepartmentIDs() []string {
	ids := make([]string, 0, len(e.Departments))
	for _, ref := range e.Departments {
		ids = append(ids, ref.ID)
	}
	return ids
}

// EmployeeView is an Employee with its departments embedded.
type EmployeeView struct {
	ID          string
	Number      int64
	FirstName   string
	LastName    string
	Age         int
	Gender      string
	Departments []Department
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Deletion confirms a removed record.
type Deletion struct {
	ID      string
	Message string
}
