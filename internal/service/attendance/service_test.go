package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-console/internal/domain/department"
	"github.com/cmlabs-hris/hris-console/internal/domain/employee"
	"github.com/cmlabs-hris/hris-console/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-console/internal/pkg/recordclient"
	"github.com/cmlabs-hris/hris-console/internal/pkg/recordclient/recordtest"
	"github.com/cmlabs-hris/hris-console/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	seen []notify.Notification
}

func (r *recorder) Notify(_ context.Context, n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

func (r *recorder) last() notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.seen) == 0 {
		return notify.Notification{}
	}
	return r.seen[len(r.seen)-1]
}

var wib = time.FixedZone("WIB", 7*60*60)

func setup(t *testing.T) (*recordtest.Store, attendance.Controller, *recorder) {
	t.Helper()
	store := recordtest.NewStore(t)
	ops := store.SeedDepartment(department.Department{DepartmentName: "Ops"})
	store.SeedEmployee(employee.Employee{ID: 4, DepartmentID: ops.ID, Name: "Rina"})

	client, err := recordclient.New(store.URL())
	require.NoError(t, err)
	rec := &recorder{}
	ctrl := NewAttendanceController(client, rec, wib)
	require.NoError(t, ctrl.Mount(context.Background()))
	store.ResetCalls()
	return store, ctrl, rec
}

func checkIn(t *testing.T, ctrl attendance.Controller) {
	t.Helper()
	ctrl.SetMode(attendance.ModeCheckIn)
	require.NoError(t, ctrl.UpdateField(attendance.FieldEmployee, "4"))
	require.NoError(t, ctrl.UpdateField(attendance.FieldClockIn, "2024-01-10T08:00"))
	_, err := ctrl.Submit(context.Background())
	require.NoError(t, err)
}

func TestMount_LoadsEmployeeOptions(t *testing.T) {
	_, ctrl, _ := setup(t)

	snap := ctrl.Snapshot()
	assert.True(t, snap.OptionsLoaded)
	assert.Equal(t, []attendance.EmployeeOption{{ID: 4, Code: "EMP-004", Label: "Rina"}}, snap.EmployeeOptions)
	assert.Equal(t, attendance.ModeCheckIn, snap.Form.Mode)
}

func TestMount_Failure(t *testing.T) {
	store := recordtest.NewStore(t)
	store.Fail(recordtest.ListEmployees, http.StatusInternalServerError, `{}`)
	client, err := recordclient.New(store.URL())
	require.NoError(t, err)
	rec := &recorder{}
	ctrl := NewAttendanceController(client, rec, wib)

	assert.Error(t, ctrl.Mount(context.Background()))
	assert.Equal(t, "Failed to fetch employees", rec.last().Message)
	assert.False(t, ctrl.Snapshot().OptionsLoaded)
}

func TestCheckIn_SendsCodeAndUTCTimestamp(t *testing.T) {
	store, ctrl, rec := setup(t)

	checkIn(t, ctrl)

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(store.LastBody(recordtest.CheckIn)), &body))
	assert.Equal(t, map[string]string{"employee_id": "EMP-004", "clock_in": "2024-01-10 01:00:00"}, body)
	assert.Equal(t, "Check-in successful", rec.last().Message)

	snap := ctrl.Snapshot()
	assert.Empty(t, snap.Form.EmployeeID)
	assert.Empty(t, snap.Form.ClockIn)
	require.NotNil(t, snap.LastRecord)
	assert.Equal(t, "ATT-001", snap.LastRecord.AttendanceCode)
	assert.True(t, snap.LastRecord.IsOpen())
}

func TestCheckIn_ValidationOrder(t *testing.T) {
	store, ctrl, rec := setup(t)
	ctx := context.Background()

	_, err := ctrl.Submit(ctx)
	first, _ := validator.First(err)
	assert.Equal(t, "Employee cannot be empty", first.Message)
	assert.Equal(t, "Employee cannot be empty", rec.last().Message)

	require.NoError(t, ctrl.UpdateField(attendance.FieldEmployee, "4"))
	_, err = ctrl.Submit(ctx)
	first, _ = validator.First(err)
	assert.Equal(t, "Clock In time cannot be empty", first.Message)

	require.NoError(t, ctrl.UpdateField(attendance.FieldClockIn, "tomorrow"))
	_, err = ctrl.Submit(ctx)
	first, _ = validator.First(err)
	assert.Equal(t, "clock_in", first.Field)

	require.NoError(t, ctrl.UpdateField(attendance.FieldEmployee, "99"))
	require.NoError(t, ctrl.UpdateField(attendance.FieldClockIn, "2024-01-10T08:00"))
	_, err = ctrl.Submit(ctx)
	first, _ = validator.First(err)
	assert.Equal(t, "Employee is invalid", first.Message)

	assert.Equal(t, 0, store.TotalCalls())
}

func TestCheckOut(t *testing.T) {
	store, ctrl, rec := setup(t)
	checkIn(t, ctrl)

	ctrl.SetMode(attendance.ModeCheckOut)
	require.NoError(t, ctrl.UpdateField(attendance.FieldAttendanceID, "ATT-001"))
	require.NoError(t, ctrl.UpdateField(attendance.FieldClockOut, "2024-01-10T17:00"))

	msg, err := ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Check-out successful", msg)
	assert.Equal(t, notify.LevelSuccess, rec.last().Level)
	assert.JSONEq(t, `{"clock_out":"2024-01-10 10:00:00"}`, store.LastBody(recordtest.CheckOut))

	snap := ctrl.Snapshot()
	assert.Empty(t, snap.Form.AttendanceID)
	assert.Empty(t, snap.Form.ClockOut)
	require.NotNil(t, snap.LastRecord)
	assert.False(t, snap.LastRecord.IsOpen())
}

func TestCheckOut_FailureMessages(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
		kind   notify.Kind
	}{
		{"404", http.StatusNotFound, `{"error":"Attendance not found"}`, "Attendance ID is invalid", notify.KindNotFound},
		{"404 without body", http.StatusNotFound, ``, "Attendance ID is invalid", notify.KindNotFound},
		{"400", http.StatusBadRequest, `{"error":"Already checked out"}`, "Bad request: Please check your input", notify.KindBadRequest},
		{"400 mentioning not found", http.StatusBadRequest, `{"error":"record not found"}`, "Bad request: Please check your input", notify.KindBadRequest},
		{"500 mentioning not found", http.StatusInternalServerError, `{"message":"Attendance Not Found"}`, "Attendance ID is invalid", notify.KindNotFound},
		{"500 mentioning bad request", http.StatusInternalServerError, `{"error":"bad request"}`, "Bad request: Please check your input", notify.KindBadRequest},
		{"500 other", http.StatusInternalServerError, `{"error":"database locked"}`, "database locked", notify.KindGeneric},
		{"500 empty", http.StatusInternalServerError, ``, "Check-out failed", notify.KindGeneric},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, ctrl, rec := setup(t)
			store.Fail(recordtest.CheckOut, tc.status, tc.body)

			ctrl.SetMode(attendance.ModeCheckOut)
			require.NoError(t, ctrl.UpdateField(attendance.FieldAttendanceID, "ATT-404"))
			require.NoError(t, ctrl.UpdateField(attendance.FieldClockOut, "2024-01-10T17:00"))

			_, err := ctrl.Submit(context.Background())

			var failed *notify.Error
			require.True(t, errors.As(err, &failed))
			assert.Equal(t, tc.kind, failed.Kind)
			assert.Equal(t, tc.want, failed.Message)
			assert.Equal(t, tc.want, rec.last().Message)
			assert.Equal(t, "ATT-404", ctrl.Snapshot().Form.AttendanceID)
		})
	}
}

func TestCheckOut_UnknownAttendance(t *testing.T) {
	_, ctrl, rec := setup(t)

	ctrl.SetMode(attendance.ModeCheckOut)
	require.NoError(t, ctrl.UpdateField(attendance.FieldAttendanceID, "ATT-999"))
	require.NoError(t, ctrl.UpdateField(attendance.FieldClockOut, "2024-01-10T17:00"))

	_, err := ctrl.Submit(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "Attendance ID is invalid", rec.last().Message)
}

func TestCheckIn_NetworkFailure(t *testing.T) {
	store, ctrl, rec := setup(t)
	store.Close()

	require.NoError(t, ctrl.UpdateField(attendance.FieldEmployee, "4"))
	require.NoError(t, ctrl.UpdateField(attendance.FieldClockIn, "2024-01-10T08:00"))
	_, err := ctrl.Submit(context.Background())

	var failed *notify.Error
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, notify.KindNetwork, failed.Kind)
	assert.Equal(t, "Check-in failed", rec.last().Message)
}

func TestSetMode_KeepsOtherModeInputs(t *testing.T) {
	_, ctrl, _ := setup(t)

	require.NoError(t, ctrl.UpdateField(attendance.FieldEmployee, "4"))
	ctrl.SetMode(attendance.ModeCheckOut)
	assert.ErrorIs(t, ctrl.UpdateField(attendance.FieldEmployee, "5"), attendance.ErrUnknownField)
	ctrl.SetMode(attendance.ModeCheckIn)

	assert.Equal(t, "4", ctrl.Snapshot().Form.EmployeeID)
}
