package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lovepages-admin/internal/entities"
	"lovepages-admin/internal/listquery"
	"lovepages-admin/internal/repository"
	"lovepages-admin/internal/usecases"
)

// templateBody is the create/update payload. Pointers distinguish "omitted"
// from zero values so PATCH can be partial.
type templateBody struct {
	Name            *string                   `json:"name"`
	Description     *string                   `json:"description"`
	PreviewImageURL *string                   `json:"previewImageUrl"`
	Category        *string                   `json:"category"`
	HTML            *string                   `json:"html"`
	CSS             *string                   `json:"css"`
	EditableFields  *[]entities.EditableField `json:"editableFields"`
	IsPro           *bool                     `json:"isPro"`
	IsActive        *bool                     `json:"isActive"`
	SortOrder       *int                      `json:"sortOrder"`
	Tags            *[]string                 `json:"tags"`
}

// validateFields checks the editable-field set: unique uppercase keys,
// labels present, known input types, positive max lengths.
func validateFields(c *gin.Context, fields []entities.EditableField) bool {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if !ValidFieldKey(f.Key) {
			respondError(c, http.StatusBadRequest, "Invalid field key: "+f.Key)
			return false
		}
		if seen[f.Key] {
			respondError(c, http.StatusBadRequest, "Duplicate field key: "+f.Key)
			return false
		}
		seen[f.Key] = true
		if !ValidateLength(f.Label, 1, MaxTitleLength) {
			respondError(c, http.StatusBadRequest, "Field label required for "+f.Key)
			return false
		}
		if !entities.ValidFieldType(f.Type) {
			respondError(c, http.StatusBadRequest, "Invalid field type: "+f.Type)
			return false
		}
		if f.MaxLength <= 0 {
			respondError(c, http.StatusBadRequest, "Field maxLength must be positive for "+f.Key)
			return false
		}
	}
	return true
}

func (b *templateBody) apply(t *entities.Template) {
	if b.Name != nil {
		t.Name = SanitizeString(*b.Name)
	}
	if b.Description != nil {
		t.Description = SanitizeString(*b.Description)
	}
	if b.PreviewImageURL != nil {
		t.PreviewImageURL = *b.PreviewImageURL
	}
	if b.Category != nil {
		t.Category = *b.Category
	}
	if b.HTML != nil {
		t.HTML = *b.HTML
	}
	if b.CSS != nil {
		t.CSS = *b.CSS
	}
	if b.EditableFields != nil {
		t.EditableFields = *b.EditableFields
	}
	if b.IsPro != nil {
		t.IsPro = *b.IsPro
	}
	if b.IsActive != nil {
		t.IsActive = *b.IsActive
	}
	if b.SortOrder != nil {
		t.SortOrder = *b.SortOrder
	}
	if b.Tags != nil {
		t.Tags = *b.Tags
	}
}

func (h *Handler) ListTemplates(c *gin.Context) {
	params := listquery.Parse(c.Request.URL.Query(), repository.TemplateListSpec)
	templates, total, err := h.templateRepo.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch templates")
		return
	}
	if templates == nil {
		templates = []entities.Template{}
	}
	respondList(c, templates, listquery.NewPagination(total, params.Page, params.Limit))
}

func (h *Handler) CreateTemplate(c *gin.Context) {
	var body templateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	t := entities.Template{
		Category:       "otro",
		IsActive:       true,
		EditableFields: []entities.EditableField{},
		Tags:           []string{},
	}
	body.apply(&t)

	if !ValidateLength(t.Name, 1, MaxTitleLength) {
		respondError(c, http.StatusBadRequest, "Name required")
		return
	}
	if !ValidateLength(t.HTML, 0, MaxBodyLength) || !ValidateLength(t.CSS, 0, MaxBodyLength) {
		respondError(c, http.StatusBadRequest, "Template body too large")
		return
	}
	if !validateFields(c, t.EditableFields) {
		return
	}

	if err := h.templateRepo.Create(c.Request.Context(), &t); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create template")
		return
	}

	h.audit(c, "templates", t.ID, "create", t.Name)
	respondCreated(c, t)
}

func (h *Handler) UpdateTemplate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var body templateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.templateRepo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Template not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch template")
		return
	}

	body.apply(t)

	if !ValidateLength(t.Name, 1, MaxTitleLength) {
		respondError(c, http.StatusBadRequest, "Name required")
		return
	}
	if !ValidateLength(t.HTML, 0, MaxBodyLength) || !ValidateLength(t.CSS, 0, MaxBodyLength) {
		respondError(c, http.StatusBadRequest, "Template body too large")
		return
	}
	if !validateFields(c, t.EditableFields) {
		return
	}

	if err := h.templateRepo.Update(c.Request.Context(), t); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}

	h.audit(c, "templates", id, "update", t.Name)
	respondOK(c, t)
}

func (h *Handler) ToggleTemplate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	active, err := h.templateRepo.ToggleActive(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Template not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to toggle template")
		return
	}

	h.audit(c, "templates", id, "toggle", map[bool]string{true: "activated", false: "deactivated"}[active])
	respondOK(c, gin.H{"id": id, "isActive": active})
}

func (h *Handler) DeleteTemplate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	err := h.templateRepo.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Template not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete template")
		return
	}

	h.audit(c, "templates", id, "delete", "")
	respondOK(c, gin.H{"id": id, "deleted": true})
}

// PreviewTemplate renders a draft into a standalone document. The sandbox
// CSP keeps the markup from running with the console's credentials when the
// frontend points an iframe straight at this endpoint.
func (h *Handler) PreviewTemplate(c *gin.Context) {
	var payload struct {
		HTML           string                   `json:"html"`
		CSS            string                   `json:"css"`
		EditableFields []entities.EditableField `json:"editableFields"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !ValidateLength(payload.HTML, 0, MaxBodyLength) || !ValidateLength(payload.CSS, 0, MaxBodyLength) {
		respondError(c, http.StatusBadRequest, "Template body too large")
		return
	}

	doc := usecases.RenderPreview(payload.HTML, payload.CSS, payload.EditableFields)

	c.Writer.Header().Del("X-Frame-Options") // the preview is meant to be framed
	c.Header("Content-Security-Policy", "sandbox allow-scripts; default-src 'none'; style-src 'unsafe-inline'; img-src https: data:")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}
