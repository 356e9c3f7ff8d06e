package dto

import "time"

// CreateEmployeeRequest payload. Departments lists exactly three department ids.
type CreateEmployeeRequest struct {
	EmployeeNumber *int64   `json:"employeeNumber"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Age            *int     `json:"age"`
	Gender         string   `json:"gender"`
	Departments    []string `json:"departments"`
}

// UpdateEmployeeRequest payload; omitted fields stay unchanged.
type UpdateEmployeeRequest struct {
	EmployeeNumber *int64   `json:"employeeNumber"`
	FirstName      *string  `json:"firstName"`
	LastName       *string  `json:"lastName"`
	Age            *int     `json:"age"`
	Gender         *string  `json:"gender"`
	Departments    []string `json:"departments"`
}

// EmployeeDepartment is a department as embedded in an employee.
type EmployeeDepartment struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	DepartmentNumber int64   `json:"departmentNumber"`
	Area             string  `json:"area"`
	Supervisor       *string `json:"supervisor"`
}

// EmployeeResponse describes an employee with departments embedded.
type EmployeeResponse struct {
	ID             string               `json:"id"`
	EmployeeNumber int64                `json:"employeeNumber"`
	FirstName      string               `json:"firstName"`
	LastName       string               `json:"lastName"`
	Age            int                  `json:"age"`
	Gender         string               `json:"gender"`
	Departments    []EmployeeDepartment `json:"departments"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}
