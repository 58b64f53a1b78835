package form

import (
	"testing"

	"github.com/cmlabs-hris/hris-console/internal/domain/department"
	"github.com/cmlabs-hris/hris-console/internal/domain/employee"
	"github.com/cmlabs-hris/hris-console/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateTime(t *testing.T) {
	cases := map[string]string{
		"08:30:00": "08:30",
		"08:30":    "08:30",
		"17:05:59": "17:05",
		" 09:00 ":  "09:00",
		"":         "",
		"8.30":     "",
		"25:00:00": "",
		"noon":     "",
	}
	for in, want := range cases {
		assert.Equal(t, want, TruncateTime(in), "input %q", in)
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("employees")
	require.NoError(t, err)
	assert.Equal(t, KindEmployee, k)
	assert.Equal(t, "Employees", k.Title())

	_, err = ParseKind("attendance")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestDepartmentRoundTrip(t *testing.T) {
	original := department.Department{ID: 3, DepartmentName: "Finance", MaxClockInTime: "08:30:00", MaxClockOutTime: "17:00:00"}

	fields := DepartmentFromWire(original)
	assert.Equal(t, "Finance", fields.Name)
	assert.Equal(t, "08:30", fields.MaxClockIn)
	assert.Equal(t, "17:00", fields.MaxClockOut)

	payload, err := DepartmentPayload(*fields, &original)
	require.NoError(t, err)
	assert.Equal(t, "08:30", payload.MaxClockInTimeStr)
	assert.Equal(t, "17:00", payload.MaxClockOutTimeStr)
}

func TestDepartmentPayload_EditFallback(t *testing.T) {
	original := department.Department{ID: 3, DepartmentName: "Ops", MaxClockInTime: "08:00:00", MaxClockOutTime: "17:00:00"}
	fields := DepartmentForm{Name: "Operations", MaxClockIn: "07:45"}

	payload, err := DepartmentPayload(fields, &original)
	require.NoError(t, err)
	assert.Equal(t, "Operations", payload.DepartmentName)
	assert.Equal(t, "07:45", payload.MaxClockInTimeStr)
	assert.Equal(t, "17:00", payload.MaxClockOutTimeStr)
}

func TestDepartmentPayload_MissingOriginalValue(t *testing.T) {
	original := department.Department{ID: 3, DepartmentName: "Ops", MaxClockInTime: "08:00:00"}
	fields := DepartmentForm{Name: "Ops", MaxClockIn: "08:00"}

	_, err := DepartmentPayload(fields, &original)
	first, ok := validator.First(err)
	require.True(t, ok)
	assert.Equal(t, "max_clock_out_time", first.Field)
}

func TestDepartmentPayload_CreateRequiresThresholds(t *testing.T) {
	_, err := DepartmentPayload(DepartmentForm{Name: "Ops", MaxClockOut: "17:00"}, nil)
	first, ok := validator.First(err)
	require.True(t, ok)
	assert.Equal(t, "max_clock_in_time", first.Field)
}

func TestDepartmentPayload_InvalidFormat(t *testing.T) {
	_, err := DepartmentPayload(DepartmentForm{Name: "Ops", MaxClockIn: "8 am", MaxClockOut: "17:00"}, nil)
	first, ok := validator.First(err)
	require.True(t, ok)
	assert.Equal(t, "max_clock_in_time", first.Field)
	assert.Contains(t, first.Message, "is invalid")
}

func TestDepartmentForm_ValidateOrder(t *testing.T) {
	cases := []struct {
		name  string
		form  DepartmentForm
		field string
	}{
		{"all empty", DepartmentForm{}, "department_name"},
		{"missing thresholds", DepartmentForm{Name: "Ops"}, "max_clock_in_time"},
		{"missing out", DepartmentForm{Name: "Ops", MaxClockIn: "08:00"}, "max_clock_out_time"},
		{"name blank with thresholds", DepartmentForm{Name: "  ", MaxClockIn: "08:00", MaxClockOut: "17:00"}, "department_name"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			first, ok := validator.First(c.form.Validate(nil))
			require.True(t, ok)
			assert.Equal(t, c.field, first.Field)
		})
	}

	edit := DepartmentForm{Name: "Ops"}
	assert.NoError(t, edit.Validate(&department.Department{ID: 1}))
}

func TestEmployeeForm_ValidateOrder(t *testing.T) {
	cases := []struct {
		name  string
		form  EmployeeForm
		field string
	}{
		{"all empty", EmployeeForm{}, "department_id"},
		{"missing name", EmployeeForm{DepartmentID: "2"}, "name"},
		{"missing address", EmployeeForm{DepartmentID: "2", Name: "Rina"}, "address"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			first, ok := validator.First(c.form.Validate())
			require.True(t, ok)
			assert.Equal(t, c.field, first.Field)
		})
	}
	assert.NoError(t, (&EmployeeForm{DepartmentID: "2", Name: "Rina", Address: "Jl. Merdeka 1"}).Validate())
}

func TestEmployeeProjection(t *testing.T) {
	e := employee.Employee{ID: 7, EmployeeCode: "EMP-007", DepartmentID: 2, Name: "Rina", Address: "Bandung"}

	fields := EmployeeFromWire(e)
	assert.Equal(t, "2", fields.DepartmentID)
	assert.Equal(t, "EMP-007", fields.EmployeeCode)

	payload, err := EmployeePayload(*fields)
	require.NoError(t, err)
	assert.Equal(t, uint(2), payload.DepartmentID)
	assert.Equal(t, "Rina", payload.Name)
	assert.Equal(t, "EMP-007", payload.EmployeeCode)

	assert.Empty(t, EmployeeFromWire(employee.Employee{Name: "New"}).DepartmentID)
}

func TestEmployeePayload_BadDepartment(t *testing.T) {
	for _, ref := range []string{"abc", "0", "-1"} {
		_, err := EmployeePayload(EmployeeForm{DepartmentID: ref, Name: "A", Address: "B"})
		first, ok := validator.First(err)
		require.True(t, ok, ref)
		assert.Equal(t, "department_id", first.Field)
	}
}

func TestFromWire(t *testing.T) {
	state, err := FromWire(KindDepartment, department.Department{DepartmentName: "HR", MaxClockInTime: "08:00:00"})
	require.NoError(t, err)
	assert.Equal(t, KindDepartment, state.Kind())
	assert.Equal(t, "08:00", state.Values()[FieldMaxClockIn])

	_, err = FromWire(KindEmployee, department.Department{})
	assert.ErrorIs(t, err, ErrOriginalMismatch)
}

func TestState_SetRejectsForeignField(t *testing.T) {
	state, err := New(KindDepartment)
	require.NoError(t, err)

	err = state.Set(FieldAddress, "x")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, "", state.Values()[FieldDepartmentName])

	require.NoError(t, state.Set(FieldDepartmentName, "Legal"))
	assert.Equal(t, "Legal", state.Values()[FieldDepartmentName])
}
