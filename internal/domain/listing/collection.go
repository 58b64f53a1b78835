package listing

import "fmt"

// Collection is one of the tables the listing view can show.
type Collection string

const (
	CollectionDepartments    Collection = "departments"
	CollectionEmployees      Collection = "employees"
	CollectionAttendanceLogs Collection = "attendanceLogs"
)

// AllCollections is the fetch set of a mount or filter change.
func AllCollections() []Collection {
	return []Collection{CollectionDepartments, CollectionEmployees, CollectionAttendanceLogs}
}

func ParseCollection(s string) (Collection, error) {
	switch Collection(s) {
	case CollectionDepartments, CollectionEmployees, CollectionAttendanceLogs:
		return Collection(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, s)
	}
}

// Label is the lower-case name used in messages.
func (c Collection) Label() string {
	switch c {
	case CollectionAttendanceLogs:
		return "attendance logs"
	default:
		return string(c)
	}
}

// Cascade lists the collections to re-fetch after a row of c is deleted. Employees carry the department
// name and logs carry both the employee and department names, so a department delete refreshes all three.
func Cascade(c Collection) ([]Collection, error) {
	switch c {
	case CollectionDepartments:
		return []Collection{CollectionDepartments, CollectionEmployees, CollectionAttendanceLogs}, nil
	case CollectionEmployees:
		return []Collection{CollectionEmployees, CollectionAttendanceLogs}, nil
	case CollectionAttendanceLogs:
		return nil, fmt.Errorf("%w: %s", ErrNotDeletable, c)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
}
