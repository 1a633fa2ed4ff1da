package auth

import (
	"context"
	"slices"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
	RoleSubAdmin = "subadmin"
)

const (
	PermEmployeesRead  = "employees.read"
	PermEmployeesWrite = "employees.write"
	PermLeaveRead      = "leave.read"
	PermLeaveWrite     = "leave.write"
	PermLeaveApprove   = "leave.approve"
	PermLeaveAdmin     = "leave.admin"
	PermPayrollRead    = "payroll.read"
	PermPayrollWrite   = "payroll.write"
	PermPayrollUpdate  = "payroll.update"
	PermAuditRead      = "audit.read"
)

var Roles = []string{RoleEmployee, RoleManager, RoleHR, RoleAdmin, RoleSubAdmin}

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermLeaveRead,
	PermLeaveWrite,
	PermLeaveApprove,
	PermLeaveAdmin,
	PermPayrollRead,
	PermPayrollWrite,
	PermPayrollUpdate,
	PermAuditRead,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermEmployeesRead,
		PermLeaveRead,
		PermLeaveWrite,
		PermPayrollRead,
	},
	RoleManager: {
		PermEmployeesRead,
		PermLeaveRead,
		PermLeaveWrite,
		PermLeaveApprove,
		PermPayrollRead,
	},
	RoleSubAdmin: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermLeaveRead,
		PermLeaveWrite,
		PermLeaveApprove,
		PermLeaveAdmin,
		PermPayrollRead,
		PermPayrollWrite,
	},
	RoleHR:    DefaultPermissions,
	RoleAdmin: DefaultPermissions,
}

// IsFinalApprover reports whether role can give the last signature on a leave request.
func IsFinalApprover(role string) bool {
	return role == RoleHR || role == RoleAdmin || role == RoleSubAdmin
}

// SeesAllRecords reports whether role reads every employee's leave and salary data.
func SeesAllRecords(role string) bool {
	return IsFinalApprover(role)
}

func ValidRole(role string) bool {
	return slices.Contains(Roles, role)
}

// StaticPermissions resolves permissions from RolePermissions.
type StaticPermissions struct{}

func (StaticPermissions) HasPermission(_ context.Context, role, permission string) (bool, error) {
	return slices.Contains(RolePermissions[role], permission), nil
}
