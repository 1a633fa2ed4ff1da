package leave

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"hrdesk/internal/domain/core"
	"hrdesk/internal/domain/notifications"
)

type ledgerRow struct {
	granted float64
	balance float64
}

type memState struct {
	employees map[string]EmployeeRef
	roles     map[string]string
	ledgers   map[string]map[string]ledgerRow
	requests  map[string]LeaveRequest
	notes     []notifications.Message
	seq       int
}

func (s *memState) clone() *memState {
	out := &memState{
		employees: maps.Clone(s.employees),
		roles:     maps.Clone(s.roles),
		ledgers:   map[string]map[string]ledgerRow{},
		requests:  maps.Clone(s.requests),
		notes:     slices.Clone(s.notes),
		seq:       s.seq,
	}
	for id, rows := range s.ledgers {
		out.ledgers[id] = maps.Clone(rows)
	}
	return out
}

// memRepo keeps everything in memory. A single mutex held for the whole transaction
// stands in for the row locks, and a failed callback discards the working copy.
type memRepo struct {
	mu         sync.Mutex
	state      *memState
	failNotify bool
}

func newMemRepo() *memRepo {
	return &memRepo{state: &memState{
		employees: map[string]EmployeeRef{},
		roles:     map[string]string{},
		ledgers:   map[string]map[string]ledgerRow{},
		requests:  map[string]LeaveRequest{},
	}}
}

func (m *memRepo) addEmployee(id, name, managerID, role string, casual, sick, paid float64) {
	m.state.employees[id] = EmployeeRef{ID: id, Name: name, ManagerID: managerID}
	m.state.roles[id] = role
	m.state.ledgers[id] = map[string]ledgerRow{
		TypeCasual: {casual, casual},
		TypeSick:   {sick, sick},
		TypePaid:   {paid, paid},
	}
}

func (m *memRepo) balance(employeeID, leaveType string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.ledgers[employeeID][leaveType].balance
}

func (m *memRepo) request(id string) LeaveRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.requests[id]
}

func (m *memRepo) notes() []notifications.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.state.notes)
}

func (m *memRepo) WithinTx(ctx context.Context, fn func(tx TxRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	work := m.state.clone()
	if err := fn(&memTx{st: work, repo: m}); err != nil {
		return err
	}
	m.state = work
	return nil
}

func (m *memRepo) GetRequest(_ context.Context, id string) (LeaveRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.state.requests[id]
	if !ok {
		return LeaveRequest{}, ErrRequestNotFound
	}
	return req, nil
}

func (m *memRepo) ListRequests(_ context.Context, scope Scope, filter ListFilter) ([]LeaveRequest, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []LeaveRequest
	for _, req := range m.state.requests {
		emp := m.state.employees[req.EmployeeID]
		if !scope.Includes(emp.ID, emp.ManagerID) {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		if filter.LeaveType != "" && req.LeaveType != filter.LeaveType {
			continue
		}
		if filter.Stage != "" && req.Stage != filter.Stage {
			continue
		}
		matched = append(matched, req)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	total := len(matched)
	if filter.Offset < len(matched) {
		matched = matched[filter.Offset:]
	} else {
		matched = nil
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (m *memRepo) CountPending(ctx context.Context, scope Scope) (int, error) {
	_, total, err := m.ListRequests(ctx, scope, ListFilter{Status: StatusPending})
	return total, err
}

func (m *memRepo) ApprovedDays(_ context.Context, employeeID string) (core.LeaveBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out core.LeaveBalance
	for _, req := range m.state.requests {
		if req.EmployeeID == employeeID && req.Status == StatusApproved {
			out.Set(req.LeaveType, out.Get(req.LeaveType)+req.TotalDays)
		}
	}
	return out, nil
}

func (m *memRepo) Ledger(_ context.Context, employeeID string) (core.Ledger, map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ledgerOf(m.state, employeeID)
}

func (m *memRepo) Employee(_ context.Context, employeeID string) (EmployeeRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	emp, ok := m.state.employees[employeeID]
	if !ok {
		return EmployeeRef{}, ErrEmployeeNotFound
	}
	return emp, nil
}

func ledgerOf(st *memState, employeeID string) (core.Ledger, map[string]bool, error) {
	var out core.Ledger
	present := map[string]bool{}
	for leaveType, row := range st.ledgers[employeeID] {
		out.Granted.Set(leaveType, row.granted)
		out.Remaining.Set(leaveType, row.balance)
		present[leaveType] = true
	}
	return out, present, nil
}

type memTx struct {
	st   *memState
	repo *memRepo
}

func (t *memTx) Employee(_ context.Context, employeeID string) (EmployeeRef, error) {
	emp, ok := t.st.employees[employeeID]
	if !ok {
		return EmployeeRef{}, ErrEmployeeNotFound
	}
	return emp, nil
}

func (t *memTx) EmployeeIDsByRole(_ context.Context, roles ...string) ([]string, error) {
	var out []string
	for id, role := range t.st.roles {
		if slices.Contains(roles, role) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (t *memTx) Ledger(_ context.Context, employeeID string) (core.Ledger, map[string]bool, error) {
	return ledgerOf(t.st, employeeID)
}

func (t *memTx) LockLedger(context.Context, string, string) error { return nil }

func (t *memTx) ApprovedDaysOfType(_ context.Context, employeeID, leaveType string) (float64, error) {
	var days float64
	for _, req := range t.st.requests {
		if req.EmployeeID == employeeID && req.LeaveType == leaveType && req.Status == StatusApproved {
			days += req.TotalDays
		}
	}
	return days, nil
}

func (t *memTx) InsertRequest(_ context.Context, req *LeaveRequest) error {
	t.st.seq++
	req.ID = fmt.Sprintf("lr-%d", t.st.seq)
	req.Status = req.Stage.Status()
	req.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(t.st.seq) * time.Minute)
	req.UpdatedAt = req.CreatedAt
	t.st.requests[req.ID] = *req
	return nil
}

func (t *memTx) LockRequest(_ context.Context, id string) (LeaveRequest, error) {
	req, ok := t.st.requests[id]
	if !ok {
		return LeaveRequest{}, ErrRequestNotFound
	}
	return req, nil
}

func (t *memTx) UpdateRequest(_ context.Context, req LeaveRequest) error {
	req.Status = req.Stage.Status()
	t.st.requests[req.ID] = req
	return nil
}

func (t *memTx) Deduct(_ context.Context, employeeID, leaveType string, days, grant float64) (float64, error) {
	rows := t.st.ledgers[employeeID]
	if rows == nil {
		rows = map[string]ledgerRow{}
		t.st.ledgers[employeeID] = rows
	}
	row, ok := rows[leaveType]
	if !ok {
		row = ledgerRow{granted: grant, balance: grant}
	}
	row.balance = ClampedDeduct(row.balance, days)
	rows[leaveType] = row
	return row.balance, nil
}

func (t *memTx) SetLedgerEntry(_ context.Context, employeeID, leaveType string, granted, remaining float64) error {
	if t.st.ledgers[employeeID] == nil {
		t.st.ledgers[employeeID] = map[string]ledgerRow{}
	}
	t.st.ledgers[employeeID][leaveType] = ledgerRow{granted: granted, balance: remaining}
	return nil
}

func (t *memTx) Notify(_ context.Context, msg notifications.Message) error {
	if t.repo.failNotify {
		return errors.New("notification insert failed")
	}
	t.st.notes = append(t.st.notes, msg)
	return nil
}

type recordingDeliverer struct {
	mu   sync.Mutex
	sent []notifications.Message
}

func (r *recordingDeliverer) Deliver(_ context.Context, msgs ...notifications.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msgs...)
}
