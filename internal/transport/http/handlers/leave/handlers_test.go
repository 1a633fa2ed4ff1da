package leavehandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk/internal/domain/apperr"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/core"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/platform/metrics"
	"hrdesk/internal/transport/http/middleware"
)

const (
	secret     = "leave-handler-secret"
	leaveReqID = "7d1f9a52-3c7b-4d53-9a4f-0c8e5b2a6f11"
	otherEmp   = "0b8c3c5e-6a47-4b0e-8f3e-2d9a1c7e4b20"
	selfEmp    = "5e2d7c1a-9b3f-4e8d-a6c2-1f0b9d8e7a64"
)

type fakeWorkflow struct {
	submitted   leave.SubmitInput
	rejectedWhy string
	approveErr  error
	lastActor   leave.Actor
	balanceFor  string
}

func (f *fakeWorkflow) Submit(_ context.Context, actor leave.Actor, in leave.SubmitInput) (leave.LeaveRequest, error) {
	f.lastActor = actor
	f.submitted = in
	return leave.LeaveRequest{ID: leaveReqID, EmployeeID: actor.EmployeeID, LeaveType: in.LeaveType, Stage: leave.StageAwaitingManager, Status: leave.StatusPending}, nil
}

func (f *fakeWorkflow) Approve(_ context.Context, approver leave.Actor, id string) (leave.LeaveRequest, error) {
	f.lastActor = approver
	if f.approveErr != nil {
		return leave.LeaveRequest{}, f.approveErr
	}
	return leave.LeaveRequest{ID: id, Stage: leave.StageApproved, Status: leave.StatusApproved}, nil
}

func (f *fakeWorkflow) Reject(_ context.Context, _ leave.Actor, id, reason string) (leave.LeaveRequest, error) {
	f.rejectedWhy = reason
	return leave.LeaveRequest{ID: id, Stage: leave.StageRejected, Status: leave.StatusRejected, RejectionReason: reason}, nil
}

func (f *fakeWorkflow) Cancel(_ context.Context, _ leave.Actor, id string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{ID: id, Stage: leave.StageCancelled, Status: leave.StatusCancelled}, nil
}

func (f *fakeWorkflow) Get(_ context.Context, _ leave.Actor, id string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{}, leave.ErrRequestNotFound
}

func (f *fakeWorkflow) List(_ context.Context, _ leave.Actor, filter leave.ListFilter) (leave.RequestList, error) {
	return leave.RequestList{Items: []leave.LeaveRequest{}, Total: filter.Limit}, nil
}

func (f *fakeWorkflow) PendingQueue(_ context.Context, _ leave.Actor, _ leave.ListFilter) (leave.RequestList, error) {
	return leave.RequestList{Items: []leave.LeaveRequest{}}, nil
}

func (f *fakeWorkflow) BalanceSummary(_ context.Context, employeeID string) (core.LeaveBalance, error) {
	f.balanceFor = employeeID
	return core.LeaveBalance{Casual: 12, Sick: -3, Paid: 15}, nil
}

func (f *fakeWorkflow) Dashboard(context.Context, leave.Actor) (leave.Dashboard, error) {
	return leave.Dashboard{RecentRequests: []leave.LeaveRequest{}}, nil
}

func (f *fakeWorkflow) Reconcile(context.Context, leave.Actor, string) (core.Ledger, error) {
	return core.Ledger{}, nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func setup(t *testing.T) (*fakeWorkflow, *metrics.Collector, http.Handler) {
	t.Helper()
	wf := &fakeWorkflow{}
	collector := metrics.New()
	r := chi.NewRouter()
	r.Use(middleware.Auth(secret, nil))
	NewHandler(wf, auth.StaticPermissions{}, nil, collector).RegisterRoutes(r)
	return wf, collector, r
}

func call(t *testing.T, router http.Handler, role, employeeID, method, path, body string) (int, envelope) {
	t.Helper()
	token, err := auth.GenerateToken(secret, auth.Claims{UserID: "user-" + role, EmployeeID: employeeID, RoleName: role}, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestSubmitParsesDates(t *testing.T) {
	wf, collector, router := setup(t)

	code, _ := call(t, router, auth.RoleEmployee, selfEmp, http.MethodPost, "/leave/requests",
		`{"leaveType":"casual","startDate":"2025-03-10","endDate":"2025-03-14","reason":"family trip"}`)

	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, selfEmp, wf.lastActor.EmployeeID)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), wf.submitted.StartDate)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), wf.submitted.EndDate)
	assert.Equal(t, uint64(1), collector.Snapshot()["events"].(map[string]uint64)["leave.submit"])
}

func TestSubmitRejectsMalformedDates(t *testing.T) {
	_, _, router := setup(t)

	code, env := call(t, router, auth.RoleEmployee, selfEmp, http.MethodPost, "/leave/requests",
		`{"leaveType":"casual","startDate":"10/03/2025","endDate":"2025-03-14","reason":"x"}`)

	require.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Error.Code)
}

func TestApproveMapsDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		code string
	}{
		{"insufficient", &apperr.InsufficientBalanceError{LeaveType: "sick", Available: 1, Requested: 2}, http.StatusUnprocessableEntity, "insufficient_balance"},
		{"not pending", leave.ErrNotPending, http.StatusConflict, "invalid_state"},
		{"wrong manager", leave.ErrNotDirectManager, http.StatusForbidden, "forbidden"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wf, _, router := setup(t)
			wf.approveErr = tt.err
			code, env := call(t, router, auth.RoleManager, "mgr-1", http.MethodPost, "/leave/requests/"+leaveReqID+"/approve", "")
			assert.Equal(t, tt.want, code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestMalformedRequestIDIsNotFound(t *testing.T) {
	_, _, router := setup(t)
	code, env := call(t, router, auth.RoleHR, "", http.MethodPost, "/leave/requests/not-a-uuid/approve", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", env.Error.Code)
}

func TestPendingRequiresApprovePermission(t *testing.T) {
	_, _, router := setup(t)
	code, _ := call(t, router, auth.RoleEmployee, selfEmp, http.MethodGet, "/leave/requests/pending", "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = call(t, router, auth.RoleManager, "mgr-1", http.MethodGet, "/leave/requests/pending", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestRejectPassesReason(t *testing.T) {
	wf, _, router := setup(t)
	code, _ := call(t, router, auth.RoleHR, "", http.MethodPost, "/leave/requests/"+leaveReqID+"/reject", `{"reason":"  team offsite  "}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "team offsite", wf.rejectedWhy)
}

func TestListValidatesFilters(t *testing.T) {
	_, _, router := setup(t)
	code, env := call(t, router, auth.RoleEmployee, selfEmp, http.MethodGet, "/leave/requests?status=archived&stage=done", "")
	require.Equal(t, http.StatusBadRequest, code)
	fields := env.Error.Details["fields"].([]any)
	assert.Len(t, fields, 2)
}

func TestBalanceScope(t *testing.T) {
	wf, _, router := setup(t)

	code, env := call(t, router, auth.RoleEmployee, selfEmp, http.MethodGet, "/leave/balance", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, selfEmp, wf.balanceFor)
	var summary core.LeaveBalance
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, -3.0, summary.Sick)

	code, _ = call(t, router, auth.RoleEmployee, selfEmp, http.MethodGet, "/leave/balance?employeeId="+otherEmp, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = call(t, router, auth.RoleHR, "", http.MethodGet, "/leave/balance?employeeId="+otherEmp, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, otherEmp, wf.balanceFor)
}

func TestReconcileRequiresLeaveAdmin(t *testing.T) {
	_, _, router := setup(t)
	code, _ := call(t, router, auth.RoleManager, "mgr-1", http.MethodPost, "/leave/balance/"+otherEmp+"/reconcile", "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = call(t, router, auth.RoleAdmin, "", http.MethodPost, "/leave/balance/"+otherEmp+"/reconcile", "")
	assert.Equal(t, http.StatusOK, code)
}
