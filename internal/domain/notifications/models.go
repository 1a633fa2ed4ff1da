package notifications

import "time"

// Message is one notification addressed to an employee.
type Message struct {
	EmployeeID  string
	Type        string
	Title       string
	Body        string
	RelatedID   string
	RelatedType string
}

type Notification struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	RelatedID   string     `json:"relatedId,omitempty"`
	RelatedType string     `json:"relatedType,omitempty"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
