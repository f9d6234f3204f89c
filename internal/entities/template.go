package entities

import "time"

// EditableField describes one {{KEY}} token a template exposes for editing.
type EditableField struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	Type         string `json:"type"` // text, textarea, color, image_url
	DefaultValue string `json:"defaultValue"`
	Placeholder  string `json:"placeholder"`
	MaxLength    int    `json:"maxLength"`
	Required     bool   `json:"required"`
	Order        int    `json:"order"`
}

func ValidFieldType(t string) bool {
	switch t {
	case "text", "textarea", "color", "image_url":
		return true
	}
	return false
}

type Template struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	PreviewImageURL string          `json:"previewImageUrl"`
	Category        string          `json:"category"`
	HTML            string          `json:"html"`
	CSS             string          `json:"css"`
	EditableFields  []EditableField `json:"editableFields"`
	IsPro           bool            `json:"isPro"`
	IsActive        bool            `json:"isActive"`
	SortOrder       int             `json:"sortOrder"`
	Tags            []string        `json:"tags"`
	UsageCount      int             `json:"usageCount"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
