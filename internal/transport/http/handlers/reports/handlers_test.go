package reportshandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/domain/reports"
	"hrdesk/internal/transport/http/middleware"
)

const (
	secret    = "reports-handler-secret"
	managerID = "5e2d7c1a-9b3f-4e8d-a6c2-1f0b9d8e7a64"
	teamMate  = "0b8c3c5e-6a47-4b0e-8f3e-2d9a1c7e4b20"
)

type fakeReporter struct {
	actor         leave.Actor
	leaveFilter   reports.LeaveFilter
	payrollFilter reports.PayrollFilter
	role          string
}

func (f *fakeReporter) LeaveReport(_ context.Context, actor leave.Actor, filter reports.LeaveFilter) (reports.LeaveReport, error) {
	f.actor = actor
	f.leaveFilter = filter
	return reports.LeaveReport{
		Total:        4,
		ByStatus:     map[string]int{leave.StatusApproved: 3, leave.StatusPending: 1},
		ApprovedDays: map[string]float64{leave.TypeCasual: 6.5},
	}, nil
}

func (f *fakeReporter) PayrollReport(_ context.Context, role string, filter reports.PayrollFilter) (reports.PayrollReport, error) {
	f.role = role
	f.payrollFilter = filter
	return reports.PayrollReport{
		Records:    2,
		TotalGross: decimal.NewFromInt(70000),
		TotalNet:   decimal.NewFromInt(61000),
		ByStatus:   map[string]int{"pending": 2},
	}, nil
}

func newRouter() (*fakeReporter, chi.Router) {
	svc := &fakeReporter{}
	r := chi.NewRouter()
	r.Use(middleware.Auth(secret, nil))
	NewHandler(svc, auth.StaticPermissions{}).RegisterRoutes(r)
	return svc, r
}

func get(t *testing.T, router http.Handler, role, employeeID, path string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.GenerateToken(secret, auth.Claims{UserID: "user-" + role, EmployeeID: employeeID, RoleName: role}, time.Minute)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLeaveReportPassesFiltersAndActor(t *testing.T) {
	svc, router := newRouter()

	rec := get(t, router, auth.RoleManager, managerID, "/reports/leave?employeeId="+teamMate+"&leaveType=Casual&from=2024-03-01&to=2024-03-31")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, managerID, svc.actor.EmployeeID)
	assert.Equal(t, auth.RoleManager, svc.actor.Role)
	assert.Equal(t, teamMate, svc.leaveFilter.EmployeeID)
	assert.Equal(t, leave.TypeCasual, svc.leaveFilter.LeaveType)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), svc.leaveFilter.From)
	assert.Equal(t, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), svc.leaveFilter.To)

	var env struct {
		Data reports.LeaveReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 4, env.Data.Total)
	assert.Equal(t, 6.5, env.Data.ApprovedDays[leave.TypeCasual])
}

func TestLeaveReportValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{name: "bad employee", query: "?employeeId=abc", field: "employeeId"},
		{name: "bad type", query: "?leaveType=holiday", field: "leaveType"},
		{name: "bad date", query: "?from=03/01/2024", field: "from"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, router := newRouter()
			rec := get(t, router, auth.RoleHR, "", "/reports/leave"+tt.query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.field)
		})
	}
}

func TestLeaveReportNeedsApprovePermission(t *testing.T) {
	_, router := newRouter()
	rec := get(t, router, auth.RoleEmployee, teamMate, "/reports/leave")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPayrollReport(t *testing.T) {
	svc, router := newRouter()

	rec := get(t, router, auth.RoleHR, "", "/reports/payroll?month=March&year=2024&employeeCode=EMP-1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, reports.PayrollFilter{EmployeeCode: "EMP-1", MonthNumber: 3, Year: 2024}, svc.payrollFilter)
	assert.Equal(t, auth.RoleHR, svc.role)
	assert.Contains(t, rec.Body.String(), `"totalGross":"70000"`)
}

func TestPayrollReportGuards(t *testing.T) {
	_, router := newRouter()

	rec := get(t, router, auth.RoleSubAdmin, "", "/reports/payroll")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = get(t, router, auth.RoleAdmin, "", "/reports/payroll?year=twenty")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "year")
}
