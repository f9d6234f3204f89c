package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lovepages-admin/internal/entities"
	"lovepages-admin/internal/listquery"
	"lovepages-admin/internal/repository"
	"lovepages-admin/internal/usecases"
)

// notificationBody is the shared composer payload.
type notificationBody struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	Icon       string `json:"icon"`
	ActionURL  string `json:"actionUrl"`
	ActionText string `json:"actionText"`
	ExpiresAt  string `json:"expiresAt"` // RFC 3339, optional
}

func (b *notificationBody) toInput(c *gin.Context) (usecases.NotificationInput, bool) {
	b.Title = SanitizeString(b.Title)
	b.Message = SanitizeString(b.Message)
	if !ValidateLength(b.Title, 1, MaxTitleLength) || !ValidateLength(b.Message, 1, MaxMessageLength) {
		respondError(c, http.StatusBadRequest, "Title and message required")
		return usecases.NotificationInput{}, false
	}

	in := usecases.NotificationInput{
		Title:      b.Title,
		Message:    b.Message,
		Type:       b.Type,
		Icon:       b.Icon,
		ActionURL:  b.ActionURL,
		ActionText: b.ActionText,
	}
	if b.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, b.ExpiresAt)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid expiresAt")
			return usecases.NotificationInput{}, false
		}
		in.ExpiresAt = &t
	}
	return in, true
}

func (h *Handler) SendNotification(c *gin.Context) {
	var payload struct {
		UserID int `json:"userId"`
		notificationBody
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.UserID <= 0 {
		respondError(c, http.StatusBadRequest, "userId required")
		return
	}
	in, ok := payload.toInput(c)
	if !ok {
		return
	}

	n, err := h.notifications.SendToUser(c.Request.Context(), payload.UserID, in)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to send notification")
		return
	}

	h.audit(c, "notifications", n.ID, "send", n.Title)
	respondCreated(c, n)
}

func (h *Handler) BroadcastNotification(c *gin.Context) {
	var payload struct {
		Audience string `json:"audience"`
		notificationBody
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	switch payload.Audience {
	case entities.AudienceAll, entities.AudiencePro, entities.AudienceFree:
	default:
		respondError(c, http.StatusBadRequest, "audience must be all, pro or free")
		return
	}
	in, ok := payload.toInput(c)
	if !ok {
		return
	}

	n, err := h.notifications.Broadcast(c.Request.Context(), payload.Audience, in)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to broadcast")
		return
	}

	h.audit(c, "notifications", n.ID, "broadcast", payload.Audience)
	respondCreated(c, n)
}

func (h *Handler) SendBulkNotifications(c *gin.Context) {
	var payload struct {
		UserIDs []int `json:"userIds"`
		notificationBody
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(payload.UserIDs) == 0 {
		respondError(c, http.StatusBadRequest, "userIds required")
		return
	}
	in, ok := payload.toInput(c)
	if !ok {
		return
	}

	sent, err := h.notifications.SendBulk(c.Request.Context(), payload.UserIDs, in)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Bulk send failed")
		return
	}

	h.audit(c, "notifications", 0, "send-bulk", in.Title)
	respondCreated(c, gin.H{"sent": sent})
}

func (h *Handler) ListNotifications(c *gin.Context) {
	params := listquery.Parse(c.Request.URL.Query(), repository.NotificationListSpec)
	items, total, err := h.notificationRepo.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}
	if items == nil {
		items = []entities.Notification{}
	}
	respondList(c, items, listquery.NewPagination(total, params.Page, params.Limit))
}

func (h *Handler) GetNotificationStats(c *gin.Context) {
	stats, err := h.notificationRepo.Stats(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	respondOK(c, stats)
}

func (h *Handler) DeleteNotification(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	err := h.notificationRepo.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Notification not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete notification")
		return
	}

	h.audit(c, "notifications", id, "delete", "")
	respondOK(c, gin.H{"id": id, "deleted": true})
}
