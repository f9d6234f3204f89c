package entities

// Pagination is the metadata block returned with every list response.
// The backend computes it; callers echo it and never derive totals locally.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type DashboardStats struct {
	TotalUsers        int `json:"totalUsers"`
	ProUsers          int `json:"proUsers"`
	TotalPages        int `json:"totalPages"`
	ActivePages       int `json:"activePages"`
	TotalContacts     int `json:"totalContacts"`
	PendingContacts   int `json:"pendingContacts"`
	NewUsersLast7Days int `json:"newUsersLast7Days"`
	NewPagesLast7Days int `json:"newPagesLast7Days"`
}
