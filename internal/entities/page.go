package entities

import "time"

// PageOwner is the slim owner view joined into page listings.
type PageOwner struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type Page struct {
	ID             int        `json:"id"`
	ShortID        string     `json:"shortId"`
	Title          string     `json:"title"`
	RecipientName  string     `json:"recipientName"`
	PageType       string     `json:"pageType"` // "free" or "pro"
	Theme          string     `json:"theme"`
	Views          int        `json:"views"`
	TotalResponses int        `json:"totalResponses"`
	YesCount       int        `json:"yesCount"`
	NoCount        int        `json:"noCount"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	Owner          *PageOwner `json:"owner"`
}

// PageResponse is a single yes/no answer left by a visitor.
type PageResponse struct {
	ID          int       `json:"id"`
	Answer      string    `json:"answer"` // "yes" or "no"
	RespondedAt time.Time `json:"respondedAt"`
	IPAddress   string    `json:"ipAddress,omitempty"`
	UserAgent   string    `json:"userAgent,omitempty"`
}

type PageStats struct {
	Views          int     `json:"views"`
	UniqueViews    int     `json:"uniqueViews"`
	TotalResponses int     `json:"totalResponses"`
	YesCount       int     `json:"yesCount"`
	NoCount        int     `json:"noCount"`
	YesPercentage  float64 `json:"yesPercentage"`
	NoPercentage   float64 `json:"noPercentage"`
}

type PageDetail struct {
	Page
	Message     string         `json:"message"`
	UniqueViews int            `json:"uniqueViews"`
	CustomHTML  *string        `json:"customHTML"`
	CustomCSS   *string        `json:"customCSS"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Responses   []PageResponse `json:"responses"`
	Stats       PageStats      `json:"stats"`
}
