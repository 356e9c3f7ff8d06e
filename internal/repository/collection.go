package repository

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned when no document matches an id or filter.
var ErrNotFound = errors.New("document not found")

// Collection names shared by every store implementation.
const (
	AreasCollection       = "areas"
	DepartmentsCollection = "departments"
	SupervisorsCollection = "supervisors"
	EmployeesCollection   = "employees"
)

// Filter selects documents by JSON containment: a document matches when it contains every
// field of the filter. Nested objects are matched field by field and an array in the filter
// matches when each of its elements is contained in some element of the document's array.
// A nil or empty filter matches every document.
type Filter map[string]any

// Patch holds top-level document fields that replace the stored values.
type Patch map[string]any

// Collection is a document collection without cross-collection transactions.
type Collection[T any] interface {
	Find(ctx context.Context, filter Filter) ([]T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	FindByIDs(ctx context.Context, ids []string) ([]T, error)
	FindOne(ctx context.Context, filter Filter) (*T, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Insert(ctx context.Context, id string, doc T) error
	UpdateMany(ctx context.Context, filter Filter, patch Patch) (int64, error)
	DeleteByID(ctx context.Context, id string) error
}

// ByID builds the filter matching a single document id.
func ByID(id string) Filter {
	return Filter{"id": id}
}

// normalize round-trips v through JSON so Go values compare the same way stored documents do.
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// contains reports whether doc contains frag under the Filter rules.
func contains(doc, frag any) bool {
	switch f := frag.(type) {
	case map[string]any:
		d, ok := doc.(map[string]any)
		if !ok {
			return false
		}
		for key, want := range f {
			got, ok := d[key]
			if !ok || !contains(got, want) {
				return false
			}
		}
		return true
	case []any:
		d, ok := doc.([]any)
		if !ok {
			return false
		}
		for _, want := range f {
			found := false
			for _, got := range d {
				if contains(got, want) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	default:
		return doc == frag
	}
}
