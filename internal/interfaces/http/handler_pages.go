package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"lovepages-admin/internal/entities"
	"lovepages-admin/internal/listquery"
	"lovepages-admin/internal/repository"
)

func (h *Handler) ListPages(c *gin.Context) {
	params := listquery.Parse(c.Request.URL.Query(), repository.PageListSpec)
	pages, total, err := h.pageRepo.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch pages")
		return
	}
	if pages == nil {
		pages = []entities.Page{}
	}
	respondList(c, pages, listquery.NewPagination(total, params.Page, params.Limit))
}

func (h *Handler) GetPage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	detail, err := h.pageRepo.GetDetail(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Page not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch page")
		return
	}
	respondOK(c, detail)
}

// TogglePage flips the active flag. The server decides the new value; the
// response tells the caller what it became.
func (h *Handler) TogglePage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	active, err := h.pageRepo.ToggleActive(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Page not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to toggle page")
		return
	}

	detail := "deactivated"
	if active {
		detail = "activated"
	}
	h.audit(c, "pages", id, "toggle", detail)
	respondOK(c, gin.H{"id": id, "isActive": active})
}

func (h *Handler) DeletePage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	err := h.pageRepo.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Page not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete page")
		return
	}

	h.audit(c, "pages", id, "delete", "")
	respondOK(c, gin.H{"id": id, "deleted": true})
}

// GetPageQR returns a QR PNG for the page's public share link.
func (h *Handler) GetPageQR(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	shortID, err := h.pageRepo.ShortID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Page not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch page")
		return
	}

	link := strings.TrimSuffix(h.frontendURL, "/") + "/p/" + shortID
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
