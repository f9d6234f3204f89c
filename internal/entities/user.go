package entities

import "time"

type User struct {
	ID           int        `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"displayName"`
	PhotoURL     *string    `json:"photoURL"`
	PasswordHash string     `json:"-"`
	IsPro        bool       `json:"isPro"`
	IsAdmin      bool       `json:"isAdmin"`
	ProExpiresAt *time.Time `json:"proExpiresAt"`
	PagesCreated int        `json:"pagesCreated"`
	LastLogin    time.Time  `json:"lastLogin"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
