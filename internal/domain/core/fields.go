package core

import "hrdesk/internal/domain/auth"

// FilterEmployeeFields strips account details the viewer has no business seeing.
func FilterEmployeeFields(emp *Employee, user auth.UserContext) {
	if auth.SeesAllRecords(user.RoleName) {
		return
	}
	if emp.ID == user.EmployeeID {
		return
	}
	emp.UserID = ""
	emp.Role = ""
}
