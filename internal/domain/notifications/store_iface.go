package notifications

import (
	"context"

	"hrdesk/internal/platform/db"
)

type StoreAPI interface {
	Insert(ctx context.Context, q db.Querier, msg Message) (string, error)
	Create(ctx context.Context, msg Message) (string, error)
	EmployeeEmail(ctx context.Context, employeeID string) (string, error)
	ListNotifications(ctx context.Context, employeeID string, unreadOnly bool, limit, offset int) ([]Notification, error)
	CountNotifications(ctx context.Context, employeeID string, unreadOnly bool) (int, error)
	MarkRead(ctx context.Context, employeeID, notificationID string) (bool, error)
	MarkAllRead(ctx context.Context, employeeID string) (int64, error)
	Delete(ctx context.Context, employeeID, notificationID string) (bool, error)
}
