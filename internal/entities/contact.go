package entities

import "time"

// Contact status values
const (
	ContactPending    = "pending"
	ContactInProgress = "in_progress"
	ContactResolved   = "resolved"
	ContactClosed     = "closed"
)

type Contact struct {
	ID          int        `json:"id"`
	UserID      *int       `json:"userId"` // linked account, set by the public site when known
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Type        string     `json:"type"` // comment, custom_page, support, other
	Subject     string     `json:"subject"`
	Message     string     `json:"message"`
	Status      string     `json:"status"`
	AdminNotes  string     `json:"adminNotes"`
	ReplyText   string     `json:"replyText,omitempty"`
	RespondedAt *time.Time `json:"respondedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func ValidContactStatus(s string) bool {
	switch s {
	case ContactPending, ContactInProgress, ContactResolved, ContactClosed:
		return true
	}
	return false
}
