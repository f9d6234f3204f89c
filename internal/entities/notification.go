package entities

import "time"

// Notification audiences
const (
	AudienceAll        = "all"
	AudiencePro        = "pro"
	AudienceFree       = "free"
	AudienceIndividual = "individual"
)

type Notification struct {
	ID             int        `json:"id"`
	UserID         *int       `json:"userId"` // set for individual sends
	Audience       string     `json:"audience"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Type           string     `json:"type"` // info, success, warning, promo
	Icon           string     `json:"icon,omitempty"`
	ActionURL      string     `json:"actionUrl,omitempty"`
	ActionText     string     `json:"actionText,omitempty"`
	RecipientCount int        `json:"recipientCount"`
	ReadCount      int        `json:"readCount"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type NotificationStats struct {
	Total     int            `json:"total"`
	TotalSent int            `json:"totalSent"`
	TotalRead int            `json:"totalRead"`
	ByType    map[string]int `json:"byType"`
}
