package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAreaCreated       EventType = "area_created"
	EventAreaUpdated       EventType = "area_updated"
	EventAreaDeleted       EventType = "area_deleted"
	EventDepartmentCreated EventType = "department_created"
	EventDepartmentUpdated EventType = "department_updated"
	EventDepartmentDeleted EventType = "department_deleted"
	EventSupervisorCreated EventType = "supervisor_created"
	EventSupervisorUpdated EventType = "supervisor_updated"
	EventSupervisorDeleted EventType = "supervisor_deleted"
	EventEmployeeCreated   EventType = "employee_created"
	EventEmployeeUpdated   EventType = "employee_updated"
	EventEmployeeDeleted   EventType = "employee_deleted"

	EventEmployeesDepartmentRenamed EventType = "employees_department_renamed"
)

// AllTypes lists every event type in publication order.
var AllTypes = []EventType{
	EventAreaCreated, EventAreaUpdated, EventAreaDeleted,
	EventDepartmentCreated, EventDepartmentUpdated, EventDepartmentDeleted,
	EventSupervisorCreated, EventSupervisorUpdated, EventSupervisorDeleted,
	EventEmployeeCreated, EventEmployeeUpdated, EventEmployeeDeleted,
	EventEmployeesDepartmentRenamed,
}

// Entity names carried by events.
const (
	EntityArea       = "area"
	EntityDepartment = "department"
	EntitySupervisor = "supervisor"
	EntityEmployee   = "employee"
)

// Event represents a change emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Entity    string      `json:"entity"`
	EntityID  string      `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, entity, entityID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Entity:    entity,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// DepartmentRenamedPayload describes a rename cascade onto employees.
type DepartmentRenamedPayload struct {
	OldName   string `json:"old_name"`
	NewName   string `json:"new_name"`
	Employees int64  `json:"employees"`
}
