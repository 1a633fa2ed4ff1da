package auth

import (
	"context"
	"testing"
)

func TestRolePermissionsSubset(t *testing.T) {
	allowed := map[string]struct{}{}
	for _, perm := range DefaultPermissions {
		allowed[perm] = struct{}{}
	}

	for _, role := range Roles {
		perms := RolePermissions[role]
		if len(perms) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
		for _, perm := range perms {
			if _, ok := allowed[perm]; !ok {
				t.Fatalf("role %s has unknown permission %s", role, perm)
			}
		}
	}
}

func TestDefaultPermissionsUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for _, perm := range DefaultPermissions {
		if _, ok := seen[perm]; ok {
			t.Fatalf("duplicate permission %s", perm)
		}
		seen[perm] = struct{}{}
	}
}

func TestStaticPermissions(t *testing.T) {
	perms := StaticPermissions{}
	cases := []struct {
		role string
		perm string
		want bool
	}{
		{RoleEmployee, PermLeaveWrite, true},
		{RoleEmployee, PermLeaveApprove, false},
		{RoleManager, PermLeaveApprove, true},
		{RoleManager, PermPayrollWrite, false},
		{RoleSubAdmin, PermPayrollWrite, true},
		{RoleSubAdmin, PermPayrollUpdate, false},
		{RoleHR, PermPayrollUpdate, true},
		{RoleAdmin, PermAuditRead, true},
		{"unknown", PermLeaveRead, false},
	}
	for _, tc := range cases {
		got, err := perms.HasPermission(context.Background(), tc.role, tc.perm)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tc.want {
			t.Fatalf("%s/%s: expected %v, got %v", tc.role, tc.perm, tc.want, got)
		}
	}
}

func TestIsFinalApprover(t *testing.T) {
	for _, role := range []string{RoleHR, RoleAdmin, RoleSubAdmin} {
		if !IsFinalApprover(role) {
			t.Fatalf("expected %s to be a final approver", role)
		}
	}
	for _, role := range []string{RoleEmployee, RoleManager} {
		if IsFinalApprover(role) {
			t.Fatalf("did not expect %s to be a final approver", role)
		}
	}
}
