package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lovepages-admin/internal/entities"
	"lovepages-admin/internal/listquery"
	"lovepages-admin/internal/repository"
)

func (h *Handler) ListContacts(c *gin.Context) {
	params := listquery.Parse(c.Request.URL.Query(), repository.ContactListSpec)
	contacts, total, err := h.contactRepo.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch contacts")
		return
	}
	if contacts == nil {
		contacts = []entities.Contact{}
	}
	respondList(c, contacts, listquery.NewPagination(total, params.Page, params.Limit))
}

func (h *Handler) GetContact(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	contact, err := h.contactRepo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Contact not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch contact")
		return
	}
	respondOK(c, contact)
}

// UpdateContact patches status and/or admin notes. Omitted fields stay as
// they are.
func (h *Handler) UpdateContact(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var payload struct {
		Status     *string `json:"status"`
		AdminNotes *string `json:"adminNotes"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Status == nil && payload.AdminNotes == nil {
		respondError(c, http.StatusBadRequest, "Nothing to update")
		return
	}
	if payload.Status != nil && !entities.ValidContactStatus(*payload.Status) {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}
	if payload.AdminNotes != nil {
		notes := SanitizeString(*payload.AdminNotes)
		if !ValidateLength(notes, 0, MaxNotesLength) {
			respondError(c, http.StatusBadRequest, "Notes too long")
			return
		}
		payload.AdminNotes = &notes
	}

	contact, err := h.contactRepo.Update(c.Request.Context(), id, payload.Status, payload.AdminNotes)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Contact not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update contact")
		return
	}

	h.audit(c, "contacts", id, "update", contact.Status)
	respondOK(c, contact)
}

// ReplyContact stores the reply and notifies the linked account when there
// is one. The response reports whether a notification went out.
func (h *Handler) ReplyContact(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var payload struct {
		ReplyMessage string `json:"replyMessage"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	payload.ReplyMessage = SanitizeString(payload.ReplyMessage)
	if !ValidateLength(payload.ReplyMessage, 1, MaxMessageLength) {
		respondError(c, http.StatusBadRequest, "Reply message required")
		return
	}

	contact, err := h.contactRepo.Reply(c.Request.Context(), id, payload.ReplyMessage)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Contact not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to reply")
		return
	}

	sent, err := h.notifications.NotifyContactReply(c.Request.Context(), contact)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Reply saved but notification failed")
		return
	}

	h.audit(c, "contacts", id, "reply", "")
	respondOK(c, gin.H{"contact": contact, "notificationSent": sent})
}

func (h *Handler) DeleteContact(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	err := h.contactRepo.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Contact not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete contact")
		return
	}

	h.audit(c, "contacts", id, "delete", "")
	respondOK(c, gin.H{"id": id, "deleted": true})
}
