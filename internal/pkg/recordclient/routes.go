package recordclient

import (
	"net/url"
	"strconv"
	"strings"
)

// Resource names a record store collection in logs and fallback messages.
type Resource string

const (
	ResourceDepartments    Resource = "departments"
	ResourceEmployees      Resource = "employees"
	ResourceAttendance     Resource = "attendance"
	ResourceAttendanceLogs Resource = "attendance logs"
)

// CollectionRoutes locate one CRUD collection. Item contains the "{id}" placeholder.
type CollectionRoutes struct {
	List   string
	Create string
	Item   string
}

func (r CollectionRoutes) item(id uint) string {
	return strings.ReplaceAll(r.Item, "{id}", strconv.FormatUint(uint64(id), 10))
}

// Routes is the URL layout of the record store, relative to the base URL.
type Routes struct {
	Departments CollectionRoutes
	Employees   CollectionRoutes
	CheckIn     string
	// CheckOut contains the "{code}" placeholder for the attendance code.
	CheckOut       string
	AttendanceLogs string
}

func (r Routes) checkOut(code string) string {
	return strings.ReplaceAll(r.CheckOut, "{code}", url.PathEscape(code))
}

func (r Routes) collection(res Resource) (CollectionRoutes, bool) {
	switch res {
	case ResourceDepartments:
		return r.Departments, true
	case ResourceEmployees:
		return r.Employees, true
	default:
		return CollectionRoutes{}, false
	}
}

// DefaultRoutes matches the record store's published paths, including its "departement" spelling.
var DefaultRoutes = Routes{
	Departments: CollectionRoutes{
		List:   "/departements",
		Create: "/departement",
		Item:   "/departement/{id}",
	},
	Employees: CollectionRoutes{
		List:   "/employees",
		Create: "/employee",
		Item:   "/employee/{id}",
	},
	CheckIn:        "/attendance",
	CheckOut:       "/attendance/{code}",
	AttendanceLogs: "/attendance/logs",
}
